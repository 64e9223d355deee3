package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/engine"
)

func (c *CLI) playCommand() *cobra.Command {
	var (
		f         opFlags
		cellWidth int
	)
	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Drag and resize items interactively",
		Long: `Play opens a layout in an interactive terminal view backed by the engine.
Select an item with tab, drag it with the arrow keys and resize it with
shift+arrows. Enter commits the interaction and esc cancels it. With
--output the final layout is saved on quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, args, &f, cellWidth)
		},
	}
	f.gridFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "save the final layout to this file")
	cmd.Flags().IntVar(&cellWidth, "cell-width", defaultCellWidth, "terminal columns per grid column")
	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, args []string, f *opFlags, cellWidth int) error {
	doc, format, err := readDocument(cmd, args, f.docFlags)
	if err != nil {
		return err
	}
	opts, err := c.loadOptions()
	if err != nil {
		return err
	}
	if err := f.apply(cmd, &opts, doc); err != nil {
		return err
	}
	if _, err := checkLayout(doc, &opts); err != nil {
		return err
	}
	env, err := opts.Env()
	if err != nil {
		return err
	}

	// The engine logger stays silent; log lines would garble the view.
	g, err := engine.NewGrid(env, doc.Layout)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewPlayModel(g, cellWidth),
		tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	m := final.(PlayModel)

	out := newPrinter(cmd.ErrOrStderr())
	out.info("%d committed interactions", m.Commits)
	if f.output == "" {
		return nil
	}
	doc.Cols = env.Options.Cols
	doc.Layout = m.Grid.Layout()
	return writeDocument(cmd, doc, format, f.docFlags)
}
