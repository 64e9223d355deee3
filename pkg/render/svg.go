package render

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/gridkit/pkg/grid"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       Style
	placeholder *grid.Item
}

// WithStyle replaces the default [Simple] style.
func WithStyle(s Style) SVGOption {
	return func(r *svgRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithPlaceholder draws the drop target of an active drag or resize.
func WithPlaceholder(it *grid.Item) SVGOption { return func(r *svgRenderer) { r.placeholder = it } }

// RenderSVG draws l in the pixel frame p. The drawing is p.ContainerWidth
// wide and as tall as the container needs to be for l.
func RenderSVG(l grid.Layout, p grid.PositionParams, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	blocks := buildBlocks(l, p)
	height := grid.ContainerHeight(p, l)
	if ph := r.placeholder; ph != nil {
		height = max(height, grid.ContainerHeight(p, grid.Layout{*ph}))
	}
	w, h := int(math.Round(p.ContainerWidth)), int(math.Round(height))

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))

	r.style.RenderDefs(canvas)
	r.style.RenderBackground(canvas, w, h)
	if ph := r.placeholder; ph != nil {
		r.style.RenderPlaceholder(canvas, blockFor(p, *ph, staticColor))
	}
	for _, b := range blocks {
		r.style.RenderBlock(canvas, b)
	}
	for _, b := range blocks {
		r.style.RenderText(canvas, b)
	}

	canvas.End()
	return buf.Bytes()
}

// buildBlocks converts items to pixel blocks in paint order: ascending z,
// then layout order.
func buildBlocks(l grid.Layout, p grid.PositionParams) []Block {
	blocks := make([]Block, 0, len(l))
	for i, it := range l {
		color := palette[i%len(palette)]
		if it.Static {
			color = staticColor
		}
		blocks = append(blocks, blockFor(p, it, color))
	}
	slices.SortStableFunc(blocks, func(a, b Block) int {
		return cmp.Compare(a.Z, b.Z)
	})
	return blocks
}

func blockFor(p grid.PositionParams, it grid.Item, color string) Block {
	pos := grid.GridItemPosition(p, it.X, it.Y, it.Z, it.W, it.H, nil)
	return Block{
		ID:     it.ID,
		Label:  it.ID,
		X:      pos.Left,
		Y:      pos.Top,
		W:      pos.Width,
		H:      pos.Height,
		Z:      it.Z,
		Static: it.Static,
		Color:  color,
	}
}
