// Package responsive selects a layout per container width.
//
// A responsive grid keeps one [grid.Layout] per named breakpoint. Each
// breakpoint has a minimum container width and a column count. When the
// measured width crosses a threshold the active breakpoint changes, the
// current layout is preserved under the old name and the layout for the new
// breakpoint is resolved: taken as-is when one exists, otherwise inherited
// from the nearest wider breakpoint (then the last active one, then the
// nearest narrower one) and re-bounded to the new column count.
//
// # Pure Functions
//
//	bp := responsive.DefaultBreakpoints
//	name := responsive.BreakpointForWidth(bp, 800) // "sm"
//	cols, err := responsive.ColsForBreakpoint(name, responsive.DefaultCols)
//
// # State
//
// [State] is an immutable value. [State.OnWidth] returns the next state and
// an [Update] describing what a rendering consumer must be told. The
// stateful wrapper lives in the engine package.
package responsive
