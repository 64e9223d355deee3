package grid

import (
	"math"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
)

// Spacing is an [x, y] pixel pair used for margins and container padding.
type Spacing [2]float64

// X returns the horizontal component.
func (s Spacing) X() float64 { return s[0] }

// Y returns the vertical component.
func (s Spacing) Y() float64 { return s[1] }

// RowHeight is either a fixed pixel height or a function of the resolved
// column width. The zero value is a fixed height of 0.
type RowHeight struct {
	fixed float64
	fn    func(colWidth float64) float64
}

// FixedRowHeight returns a row height of px pixels.
func FixedRowHeight(px float64) RowHeight { return RowHeight{fixed: px} }

// ComputedRowHeight returns a row height derived from the column width.
// fn must be pure; it is invoked once per conversion.
func ComputedRowHeight(fn func(colWidth float64) float64) RowHeight { return RowHeight{fn: fn} }

// IsComputed reports whether the height depends on the column width.
func (r RowHeight) IsComputed() bool { return r.fn != nil }

// Resolve returns the row height in pixels for the given column width.
func (r RowHeight) Resolve(colWidth float64) float64 {
	if r.fn != nil {
		return r.fn(colWidth)
	}
	return r.fixed
}

// PositionParams is the frame of reference for converting between grid
// units and pixels. It is rebuilt for every conversion from the current
// container measurement and never persisted.
type PositionParams struct {
	Cols             int
	Margin           Spacing
	ContainerPadding Spacing
	ContainerWidth   float64
	RowHeight        RowHeight
	MaxRows          int // 0 means unbounded
}

// resolved holds the per-conversion column width and row height so the row
// height function is read exactly once.
type resolved struct {
	colWidth  float64
	rowHeight float64
}

func (p PositionParams) resolve() resolved {
	cw := ColumnWidth(p)
	return resolved{colWidth: cw, rowHeight: p.RowHeight.Resolve(cw)}
}

func (p PositionParams) maxRows() int {
	if p.MaxRows <= 0 {
		return math.MaxInt32
	}
	return p.MaxRows
}

// Position is an item's pixel rectangle.
type Position struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Z      int `json:"z"`
}

// PixelPoint is a top/left pixel offset inside the container.
type PixelPoint struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// PixelSize is a width/height in pixels.
type PixelSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Override carries the live pixel values of an in-progress interaction.
// Dragging replaces top/left, Resizing replaces width/height.
type Override struct {
	Dragging *PixelPoint
	Resizing *PixelSize
}

// ColumnWidth returns the pixel width of one column. It is not finite when
// Cols is zero; callers must not pass such params.
func ColumnWidth(p PositionParams) float64 {
	return (p.ContainerWidth - p.Margin.X()*float64(p.Cols-1) - p.ContainerPadding.X()*2) / float64(p.Cols)
}

// ItemSizeInPixels converts a span of grid units to pixels, including the
// margins between the spanned cells. An infinite span is returned as-is so
// that unbounded max constraints stay unbounded instead of becoming NaN.
func ItemSizeInPixels(gridUnits, cellSize, marginPx float64) float64 {
	if math.IsInf(gridUnits, 0) || math.IsNaN(gridUnits) {
		return gridUnits
	}
	return math.Round(cellSize*gridUnits + math.Max(0, gridUnits-1)*marginPx)
}

// GridItemPosition returns the pixel rectangle for an item at x, y with span
// w, h. An active override replaces the derived values for the axis pair it
// carries.
func GridItemPosition(p PositionParams, x, y, z, w, h int, ov *Override) Position {
	r := p.resolve()
	out := Position{Z: z}

	if ov != nil && ov.Resizing != nil {
		out.Width = int(math.Round(ov.Resizing.Width))
		out.Height = int(math.Round(ov.Resizing.Height))
	} else {
		out.Width = int(ItemSizeInPixels(float64(w), r.colWidth, p.Margin.X()))
		out.Height = int(ItemSizeInPixels(float64(h), r.rowHeight, p.Margin.Y()))
	}

	if ov != nil && ov.Dragging != nil {
		out.Top = int(math.Round(ov.Dragging.Top))
		out.Left = int(math.Round(ov.Dragging.Left))
	} else {
		out.Top = int(math.Round((r.rowHeight+p.Margin.Y())*float64(y) + p.ContainerPadding.Y()))
		out.Left = int(math.Round((r.colWidth+p.Margin.X())*float64(x) + p.ContainerPadding.X()))
	}

	return out
}

// PixelsToGridUnits translates a top/left pixel offset into grid
// coordinates for an item of span w, h, clamped so the item stays inside
// the grid.
func PixelsToGridUnits(p PositionParams, top, left float64, w, h int) (x, y int) {
	r := p.resolve()
	x = int(math.Round((left - p.Margin.X()) / (r.colWidth + p.Margin.X())))
	y = int(math.Round((top - p.Margin.Y()) / (r.rowHeight + p.Margin.Y())))

	x = clamp(x, 0, p.Cols-w)
	y = clamp(y, 0, p.maxRows()-h)
	return x, y
}

// PixelSizeToGridUnits translates a pixel size into a grid span for an item
// at x, y, clamped to the space remaining to the right and below.
func PixelSizeToGridUnits(p PositionParams, width, height float64, x, y int) (w, h int) {
	r := p.resolve()
	w = int(math.Round((width + p.Margin.X()) / (r.colWidth + p.Margin.X())))
	h = int(math.Round((height + p.Margin.Y()) / (r.rowHeight + p.Margin.Y())))

	w = clamp(w, 0, p.Cols-x)
	h = clamp(h, 0, p.maxRows()-y)
	return w, h
}

// ContainerHeight returns the pixel height needed to show every row of the
// layout, including the vertical padding.
func ContainerHeight(p PositionParams, l Layout) float64 {
	rows := float64(Bottom(l))
	r := p.resolve()
	return rows*r.rowHeight + math.Max(0, rows-1)*p.Margin.Y() + p.ContainerPadding.Y()*2
}

// PercentRect is a position expressed relative to the container width, used
// when rendering before the container can be measured in pixels.
type PercentRect struct {
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Top    int     `json:"top"`
	Height int     `json:"height"`
}

// PercentPosition converts left and width to fractions of the container
// width. It fails when the container width is unknown, since a guessed width
// would corrupt every stored pixel layout derived from it.
func PercentPosition(pos Position, containerWidth float64) (PercentRect, error) {
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return PercentRect{}, gerrors.New(gerrors.ErrCodeMissingContainerWidth, "container width is missing")
	}
	return PercentRect{
		Left:   float64(pos.Left) / containerWidth,
		Width:  float64(pos.Width) / containerWidth,
		Top:    pos.Top,
		Height: pos.Height,
	}, nil
}

// clamp bounds n to [lo, hi]; when hi < lo the lower bound wins.
func clamp(n, lo, hi int) int {
	return max(min(n, hi), lo)
}
