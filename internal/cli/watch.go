package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

func (c *CLI) watchCommand() *cobra.Command {
	var (
		gf        gridFlags
		cellWidth int
	)
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate and preview a document on every save",
		Long: `Watch validates the document, compacts it with the configured options and
draws a preview. It repeats whenever the file is written until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args[0], &gf, cellWidth)
		},
	}
	gf.register(cmd)
	cmd.Flags().IntVar(&cellWidth, "cell-width", defaultCellWidth, "terminal columns per grid column")
	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, path string, gf *gridFlags, cellWidth int) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so the directory is watched instead.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching", "path", abs)

	render := func() {
		c.renderWatched(cmd, abs, gf, cellWidth)
	}
	render()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("file changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			render()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// renderWatched reloads path and draws it. Errors are printed, not returned,
// so the watch keeps running.
func (c *CLI) renderWatched(cmd *cobra.Command, path string, gf *gridFlags, cellWidth int) {
	out := cmd.OutOrStdout()
	status := newPrinter(cmd.ErrOrStderr())
	fmt.Fprintf(out, "\n%s %s\n", StyleTitle.Render(filepath.Base(path)), StyleDim.Render(time.Now().Format("15:04:05")))

	l, cols, err := c.loadWatched(cmd, path, gf)
	if err != nil {
		status.failure("%s", gerrors.UserMessage(err))
		return
	}
	writePreview(out, l, cols, cellWidth)
	status.success("%d items, %d rows", len(l), grid.Bottom(l))
}

func (c *CLI) loadWatched(cmd *cobra.Command, path string, gf *gridFlags) (grid.Layout, int, error) {
	doc, _, err := readDocument(cmd, []string{path}, docFlags{})
	if err != nil {
		return nil, 0, err
	}
	opts, err := c.loadOptions()
	if err != nil {
		return nil, 0, err
	}
	if err := gf.apply(cmd, &opts, doc); err != nil {
		return nil, 0, err
	}
	g, err := checkLayout(doc, &opts)
	if err != nil {
		return nil, 0, err
	}
	return settle(doc.Layout, g), g.Cols, nil
}

func writePreview(w io.Writer, l grid.Layout, cols, cellWidth int) {
	fmt.Fprintln(w, preview{cellWidth: cellWidth, selected: -1}.render(l, cols))
}
