package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/render"
	"github.com/matzehuels/gridkit/pkg/responsive"
)

const (
	// defaultCellWidth is the number of terminal columns per grid column.
	defaultCellWidth = 6

	// emptyCell marks an unoccupied grid cell.
	emptyCell = -1
)

var (
	styleFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	styleEmpty = lipgloss.NewStyle().Foreground(colorDim)
	styleCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("232"))
)

// cellGrid maps every grid cell to the layout index of the item covering
// it, or emptyCell. Items later in the layout or with a higher z win where
// they overlap. Cells right of cols are clipped.
func cellGrid(l grid.Layout, cols int) [][]int {
	rows := grid.Bottom(l)
	cells := make([][]int, rows)
	for y := range cells {
		cells[y] = make([]int, cols)
		for x := range cells[y] {
			cells[y][x] = emptyCell
		}
	}
	for i, it := range l {
		for y := it.Y; y < it.Y+it.H && y < rows; y++ {
			for x := max(it.X, 0); x < it.X+it.W && x < cols; x++ {
				if prev := cells[y][x]; prev != emptyCell && l[prev].Z > it.Z {
					continue
				}
				cells[y][x] = i
			}
		}
	}
	return cells
}

// preview renders a layout as a framed terminal grid. The item at index
// selected is drawn with a bold label; pass -1 for none. A placeholder, if
// given, is drawn where the active item would land.
type preview struct {
	cellWidth   int
	selected    int
	placeholder *grid.Item
}

func (p preview) render(l grid.Layout, cols int) string {
	cw := p.cellWidth
	if cw < 1 {
		cw = defaultCellWidth
	}

	cells := cellGrid(l, cols)
	var b strings.Builder
	for y, row := range cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cols; {
			idx := row[x]
			end := x + 1
			for end < cols && row[end] == idx {
				end++
			}
			if idx == emptyCell {
				b.WriteString(p.empty(x, y, end, cw))
			} else {
				b.WriteString(p.segment(l, idx, x, y, (end-x)*cw))
			}
			x = end
		}
	}
	if len(cells) == 0 {
		b.WriteString(styleEmpty.Render(strings.Repeat(" ", cols*cw)))
	}
	return styleFrame.Render(b.String())
}

// empty renders the unoccupied cells x to end-1 of row y, shading those
// the placeholder covers.
func (p preview) empty(x, y, end, cw int) string {
	var b strings.Builder
	for ; x < end; x++ {
		if p.coveredByPlaceholder(x, y) {
			b.WriteString(strings.Repeat("░", cw))
			continue
		}
		b.WriteString(fitLabel("·", cw))
	}
	return styleEmpty.Render(b.String())
}

func (p preview) coveredByPlaceholder(x, y int) bool {
	ph := p.placeholder
	return ph != nil && x >= ph.X && x < ph.X+ph.W && y >= ph.Y && y < ph.Y+ph.H
}

func (p preview) segment(l grid.Layout, idx, x, y, width int) string {
	it := l[idx]
	text := strings.Repeat(" ", width)
	if y == it.Y && x == max(it.X, 0) {
		text = fitLabel(it.ID, width)
	}

	style := styleCell.Background(itemPalette[idx%len(itemPalette)])
	if it.Static {
		style = styleCell.Background(colorGray)
	}
	if idx == p.selected {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(text)
}

// fitLabel pads or truncates id to exactly width terminal columns with a
// leading space.
func fitLabel(id string, width int) string {
	label := runewidth.Truncate(" "+id, width, "")
	return runewidth.FillRight(label, width)
}

// =============================================================================
// preview command
// =============================================================================

func (c *CLI) previewCommand() *cobra.Command {
	var (
		f          opFlags
		cellWidth  int
		breakpoint string
		svgPath    string
	)
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a layout in the terminal",
		Long: `Preview draws a layout as a grid of colored blocks. Static items are gray.
With --breakpoint the layout of that breakpoint is drawn with its column
count, inherited from a neighbor when none is stored. With --svg the layout
is also written as an SVG drawing at the configured container width.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, p, err := c.previewLayout(cmd, args, &f, breakpoint)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			writePreview(w, l, p.Cols, cellWidth)
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d items · %d cols · %d rows", len(l), p.Cols, grid.Bottom(l))))

			if svgPath == "" {
				return nil
			}
			if err := os.WriteFile(svgPath, render.RenderSVG(l, p), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", svgPath, err)
			}
			out := newPrinter(cmd.ErrOrStderr())
			out.success("Rendered SVG")
			out.file(svgPath)
			return nil
		},
	}
	f.gridFlags.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "document format: json or yaml (default: from file extension)")
	cmd.Flags().IntVar(&cellWidth, "cell-width", defaultCellWidth, "terminal columns per grid column")
	cmd.Flags().StringVar(&breakpoint, "breakpoint", "", "draw the layout of this breakpoint")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write an SVG drawing to this file")
	return cmd
}

// previewLayout loads the layout to draw and the pixel frame to draw it in.
func (c *CLI) previewLayout(cmd *cobra.Command, args []string, f *opFlags, breakpoint string) (grid.Layout, grid.PositionParams, error) {
	doc, _, err := readDocument(cmd, args, f.docFlags)
	if err != nil {
		return nil, grid.PositionParams{}, err
	}
	opts, err := c.loadOptions()
	if err != nil {
		return nil, grid.PositionParams{}, err
	}

	if breakpoint == "" {
		if err := f.apply(cmd, &opts, doc); err != nil {
			return nil, grid.PositionParams{}, err
		}
		if _, err := checkLayout(doc, &opts); err != nil {
			return nil, grid.PositionParams{}, err
		}
		return doc.Layout, opts.PositionParams(0), nil
	}

	cfg, err := opts.Responsive()
	if err != nil {
		return nil, grid.PositionParams{}, err
	}
	g, err := cfg.GridOptions(breakpoint)
	if err != nil {
		return nil, grid.PositionParams{}, err
	}
	p := opts.PositionParams(0)
	p.Cols = g.Cols
	p.Margin, p.ContainerPadding = cfg.Spacing(breakpoint)
	return responsive.ResolveLayout(doc.Layouts, cfg.Breakpoints, breakpoint, breakpoint, g), p, nil
}
