package render_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/render"
)

func ExampleRenderSVG() {
	l := grid.Layout{
		{ID: "header", X: 0, Y: 0, W: 12, H: 1, Static: true},
		{ID: "chart", X: 0, Y: 1, W: 8, H: 2},
		{ID: "notes", X: 8, Y: 1, W: 4, H: 2},
	}
	p := grid.PositionParams{
		Cols:             12,
		Margin:           grid.Spacing{10, 10},
		ContainerPadding: grid.Spacing{10, 10},
		ContainerWidth:   1210,
		RowHeight:        grid.FixedRowHeight(40),
	}

	svg := render.RenderSVG(l, p)
	fmt.Println(bytes.Count(svg, []byte(`class="item`)), "items")
	fmt.Println(bytes.Contains(svg, []byte(`viewBox="0 0 1210 160"`)))
	// Output:
	// 3 items
	// true
}
