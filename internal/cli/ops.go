package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/layoutio"
	"github.com/matzehuels/gridkit/pkg/responsive"
)

// opFlags are shared by every command that transforms a document.
type opFlags struct {
	docFlags
	gridFlags
}

func (f *opFlags) register(cmd *cobra.Command) {
	f.docFlags.register(cmd)
	f.gridFlags.register(cmd)
}

// layoutOp transforms a loaded document and returns a one-line summary.
type layoutOp func(doc *layoutio.Document, opts grid.Options) (string, error)

// runOp loads the document and options, runs op and writes the result.
func (c *CLI) runOp(cmd *cobra.Command, args []string, f *opFlags, name string, op layoutOp) error {
	prog := newProgress(loggerFromContext(cmd.Context()), name)

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
	g, err := checkLayout(doc, &opts)
	if err != nil {
		return err
	}

	summary, err := op(&doc, g)
	if err != nil {
		return err
	}
	doc.Cols = g.Cols
	prog.done(len(doc.Layout))

	if summary != "" {
		newPrinter(cmd.ErrOrStderr()).info("%s", summary)
	}
	return writeDocument(cmd, doc, format, f.docFlags)
}

// settle compacts a layout unless overlap is allowed.
func settle(l grid.Layout, opts grid.Options) grid.Layout {
	if opts.AllowOverlap {
		return l
	}
	return grid.Compact(l, opts)
}

// =============================================================================
// compact
// =============================================================================

func (c *CLI) compactCommand() *cobra.Command {
	var f opFlags
	cmd := &cobra.Command{
		Use:   "compact [file]",
		Short: "Compact a layout toward its gravity axis",
		Long: `Compact removes gaps by moving every movable item as far as it can go
toward the top (vertical) or left (horizontal). Static items never move.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOp(cmd, args, &f, "compact", func(doc *layoutio.Document, opts grid.Options) (string, error) {
				doc.Layout = grid.Compact(doc.Layout, opts)
				return "", nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

// =============================================================================
// move
// =============================================================================

func (c *CLI) moveCommand() *cobra.Command {
	var (
		f          opFlags
		id         string
		x, y       int
		userAction bool
	)
	cmd := &cobra.Command{
		Use:   "move [file] --id ID --x X --y Y",
		Short: "Move one item and resolve collisions",
		Long: `Move places an item at a new grid position. Items it lands on are pushed
out of the way, and the result is compacted unless overlap is allowed.
With --prevent-collision a move onto another item is rejected instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOp(cmd, args, &f, "move", func(doc *layoutio.Document, opts grid.Options) (string, error) {
				if err := requireItem(doc.Layout, id); err != nil {
					return "", err
				}
				l, res := grid.MoveElement(doc.Layout, id, x, y, userAction, opts)
				doc.Layout = settle(l, opts)
				return fmt.Sprintf("move %s: %s", id, res), nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "item id (required)")
	cmd.Flags().IntVar(&x, "x", 0, "target column")
	cmd.Flags().IntVar(&y, "y", 0, "target row")
	cmd.Flags().BoolVar(&userAction, "user-action", true, "treat the move as a user drag")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// =============================================================================
// resize
// =============================================================================

func (c *CLI) resizeCommand() *cobra.Command {
	var (
		f    opFlags
		id   string
		w, h int
	)
	cmd := &cobra.Command{
		Use:   "resize [file] --id ID --w W --h H",
		Short: "Resize one item within its constraints",
		Long: `Resize sets an item's span, clamped to its min and max constraints and the
column count. Items below are pushed down. With --prevent-collision the
item shrinks to fit instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOp(cmd, args, &f, "resize", func(doc *layoutio.Document, opts grid.Options) (string, error) {
				if err := requireItem(doc.Layout, id); err != nil {
					return "", err
				}
				l, res := grid.ResizeElement(doc.Layout, id, w, h, opts)
				doc.Layout = settle(l, opts)
				return fmt.Sprintf("resize %s: %s", id, res), nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "item id (required)")
	cmd.Flags().IntVar(&w, "w", 1, "width in columns")
	cmd.Flags().IntVar(&h, "h", 1, "height in rows")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// =============================================================================
// sync
// =============================================================================

func (c *CLI) syncCommand() *cobra.Command {
	var (
		f     opFlags
		items []string
	)
	cmd := &cobra.Command{
		Use:   "sync [file]",
		Short: "Reconcile a layout with the declared item set",
		Long: `Sync keeps layout entries for declared items, drops the rest and places
new items at the bottom. The declared set comes from --items, then the
document's "items" list, then the layout's own ids.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOp(cmd, args, &f, "sync", func(doc *layoutio.Document, opts grid.Options) (string, error) {
				declared := doc.DeclaredOrIDs()
				if cmd.Flags().Changed("items") {
					declared = grid.DeclaredIDs(items...)
				}
				l, err := grid.Synchronize(doc.Layout, declared, opts)
				if err != nil {
					return "", err
				}
				added, dropped := diffIDs(doc.Layout, l)
				doc.Layout = l
				return fmt.Sprintf("sync: %d added, %d dropped", added, dropped), nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringSliceVar(&items, "items", nil, "declared item ids, comma separated")
	return cmd
}

// diffIDs counts ids present only in after and only in before.
func diffIDs(before, after grid.Layout) (added, dropped int) {
	for _, it := range after {
		if before.Index(it.ID) < 0 {
			added++
		}
	}
	for _, it := range before {
		if after.Index(it.ID) < 0 {
			dropped++
		}
	}
	return added, dropped
}

// =============================================================================
// resolve
// =============================================================================

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		f          docFlags
		width      float64
		breakpoint string
		last       string
	)
	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Pick the layout for a breakpoint",
		Long: `Resolve selects the breakpoint for a container width and returns its layout.
A breakpoint without a stored layout inherits the nearest one, searching
wider breakpoints first, and is compacted for its column count.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args, f, width, breakpoint, last)
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&width, "width", 0, "container width in pixels (default: config container_width)")
	cmd.Flags().StringVar(&breakpoint, "breakpoint", "", "force a breakpoint instead of using the width")
	cmd.Flags().StringVar(&last, "last", "", "breakpoint the layout is coming from (default: the target)")
	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, args []string, f docFlags, width float64, target, last string) error {
	prog := newProgress(loggerFromContext(cmd.Context()), "resolve")

	doc, format, err := readDocument(cmd, args, f)
	if err != nil {
		return err
	}
	opts, err := c.loadOptions()
	if err != nil {
		return err
	}
	cfg, err := opts.Responsive()
	if err != nil {
		return err
	}

	if width <= 0 {
		width = opts.ContainerWidth
	}
	if target == "" {
		target = cfg.Breakpoint
	}
	if target == "" {
		target = responsive.BreakpointForWidth(cfg.Breakpoints, width)
	}
	if _, ok := cfg.Breakpoints[target]; !ok {
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown breakpoint %q (have %s)",
			target, strings.Join(responsive.SortBreakpoints(cfg.Breakpoints), ", "))
	}
	if last == "" {
		last = target
	}

	layouts := doc.Layouts.Clone()
	if layouts == nil {
		layouts = responsive.Layouts{}
	}
	// A flat layout stands in for the breakpoint it is coming from.
	if _, ok := layouts[last]; !ok && len(doc.Layout) > 0 {
		layouts[last] = doc.Layout.Clone()
	}

	g, err := cfg.GridOptions(target)
	if err != nil {
		return err
	}
	l := responsive.ResolveLayout(layouts, cfg.Breakpoints, target, last, g)
	layouts[target] = l.Clone()

	doc.Cols = g.Cols
	doc.Layout = l
	doc.Layouts = layouts
	prog.done(len(l), "breakpoint", target)

	newPrinter(cmd.ErrOrStderr()).info("breakpoint %s (%d cols)", StyleHighlight.Render(target), g.Cols)
	return writeDocument(cmd, doc, format, f)
}

// =============================================================================
// validate
// =============================================================================

func (c *CLI) validateCommand() *cobra.Command {
	var (
		f    docFlags
		cols int
	)
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a layout document without changing it",
		Long: `Validate reports the first malformed entry of a document: an empty or
repeated id, a span smaller than 1x1 or an item outside the grid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := readDocument(cmd, args, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cols") {
				if err := grid.ValidateLayout(doc.Layout, cols, "layout"); err != nil {
					return err
				}
			}
			out := newPrinter(cmd.ErrOrStderr())
			out.success("Layout is valid")
			if cmd.Flags().Changed("cols") {
				out.detail("bounds checked against %d cols", cols)
			}
			out.keyValue("items", fmt.Sprint(len(doc.Layout)))
			if len(doc.Layouts) > 0 {
				out.keyValue("breakpoints", strings.Join(slices.Sorted(maps.Keys(doc.Layouts)), ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "document format: json or yaml (default: from file extension)")
	cmd.Flags().IntVar(&cols, "cols", 0, "also check right-edge bounds against this column count")
	return cmd
}

// requireItem fails with ITEM_NOT_FOUND, suggesting close ids.
func requireItem(l grid.Layout, id string) error {
	if _, ok := l.Get(id); ok {
		return nil
	}
	if hint := suggestIDs(id, l.IDs()); len(hint) > 0 {
		return gerrors.New(gerrors.ErrCodeItemNotFound, "no item %q in layout (did you mean %s?)", id, strings.Join(hint, ", "))
	}
	return gerrors.New(gerrors.ErrCodeItemNotFound, "no item %q in layout", id)
}
