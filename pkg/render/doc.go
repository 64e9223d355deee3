// Package render draws grid layouts as SVG.
//
// # Overview
//
// [RenderSVG] places every item at the pixel rectangle the geometry
// converter computes for it, so the drawing matches what a browser host
// would show for the same [grid.PositionParams]. Items are painted in
// ascending z order; static items and the drag placeholder get their own
// CSS classes. Output is written through the svgo canvas.
//
//	svg := render.RenderSVG(layout, params, render.WithPlaceholder(ph))
//	os.WriteFile("layout.svg", svg, 0o644)
//
// # Styles
//
// The look is pluggable through [Style]. [Simple] draws flat rounded
// rectangles with centered labels and is the default.
package render
