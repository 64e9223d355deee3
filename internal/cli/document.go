package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/config"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/layoutio"
)

// stdinPath selects standard input as the document source.
const stdinPath = "-"

// docFlags selects where documents are read from and written to.
type docFlags struct {
	output string
	format string
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "document format: json or yaml (default: from file extension)")
}

// gridFlags override grid options from the command line.
type gridFlags struct {
	cols             int
	compactType      string
	preventCollision bool
	allowOverlap     bool
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cols, "cols", 0, "column count (default: document cols, then config)")
	cmd.Flags().StringVar(&f.compactType, "compact-type", "", "compaction: vertical, horizontal or none")
	cmd.Flags().BoolVar(&f.preventCollision, "prevent-collision", false, "reject moves onto other items")
	cmd.Flags().BoolVar(&f.allowOverlap, "allow-overlap", false, "let items overlap without compaction")
}

// apply writes the flags the user set into opts. A document that records
// its column count wins over the config when --cols is not given.
func (f *gridFlags) apply(cmd *cobra.Command, opts *config.Options, doc layoutio.Document) error {
	flags := cmd.Flags()
	switch {
	case flags.Changed("cols"):
		if f.cols < 1 {
			return gerrors.New(gerrors.ErrCodeInvalidConfig, "--cols must be positive, got %d", f.cols)
		}
		opts.Cols = f.cols
	case doc.Cols > 0:
		opts.Cols = doc.Cols
	}
	if flags.Changed("compact-type") {
		if _, err := grid.ParseCompactType(f.compactType); err != nil {
			return gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "--compact-type")
		}
		opts.CompactType = f.compactType
	}
	if flags.Changed("prevent-collision") {
		opts.PreventCollision = f.preventCollision
	}
	if flags.Changed("allow-overlap") {
		opts.AllowOverlap = f.allowOverlap
	}
	return nil
}

// readDocument loads the document named by args, or standard input when
// args is empty or "-". It returns the format the document was read in.
func readDocument(cmd *cobra.Command, args []string, f docFlags) (layoutio.Document, layoutio.Format, error) {
	path := stdinPath
	if len(args) > 0 {
		path = args[0]
	}

	format, err := inputFormat(path, f.format)
	if err != nil {
		return layoutio.Document{}, "", err
	}
	if path == stdinPath {
		doc, err := layoutio.Read(cmd.InOrStdin(), format)
		return doc, format, err
	}
	if f.format == "" {
		doc, err := layoutio.Import(path)
		return doc, format, err
	}
	doc, err := readFileAs(path, format)
	return doc, format, err
}

func inputFormat(path, flag string) (layoutio.Format, error) {
	switch {
	case flag != "":
		return layoutio.ParseFormat(flag)
	case path == stdinPath:
		return layoutio.FormatJSON, nil
	}
	return layoutio.FormatFromPath(path)
}

// writeDocument writes doc to --output, or to stdout in the input format.
func writeDocument(cmd *cobra.Command, doc layoutio.Document, in layoutio.Format, f docFlags) error {
	if f.output == "" {
		format := in
		if f.format != "" {
			var err error
			if format, err = layoutio.ParseFormat(f.format); err != nil {
				return err
			}
		}
		return layoutio.Write(doc, cmd.OutOrStdout(), format)
	}
	if err := layoutio.Export(doc, f.output); err != nil {
		return err
	}
	out := newPrinter(cmd.ErrOrStderr())
	out.success("Wrote %d items", len(doc.Layout))
	out.file(f.output)
	out.nextStep("Preview", "gridkit preview "+f.output)
	return nil
}

// checkLayout validates the document's flat layout against the effective
// column count and returns the grid options to run with.
func checkLayout(doc layoutio.Document, opts *config.Options) (grid.Options, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return grid.Options{}, err
	}
	g := opts.GridOptions()
	if err := grid.ValidateLayout(doc.Layout, g.Cols, "layout"); err != nil {
		return grid.Options{}, err
	}
	return g, nil
}

func readFileAs(path string, format layoutio.Format) (layoutio.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return layoutio.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return layoutio.Read(f, format)
}
