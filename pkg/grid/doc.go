// Package grid implements the layout computation core of gridkit.
//
// A grid has a fixed number of columns and an unbounded (or MaxRows-bounded)
// number of rows. Items are rectangles placed in grid units; this package
// converts between grid units and pixels, detects collisions, compacts
// layouts toward an edge, cascades moves and resizes, and reconciles a
// layout with a declared set of items.
//
// # Core Types
//
//   - [Item]: one placed rectangle (x, y, w, h plus constraints)
//   - [Layout]: an ordered collection of items for one breakpoint
//   - [Options]: column count, row bound and collision policy
//   - [PositionParams]: the pixel frame of reference for geometry conversion
//
// # Operations
//
// All operations are pure: they take a [Layout] and return a new one. The
// input slice and its items are never modified, so callers can compare the
// old and new value to decide whether anything changed.
//
//	l := grid.Layout{
//	    {ID: "a", X: 0, Y: 0, W: 2, H: 1},
//	    {ID: "b", X: 2, Y: 3, W: 2, H: 1},
//	}
//	opts := grid.Options{Cols: 12, CompactType: grid.Vertical}
//	l = grid.Compact(l, opts)                    // b settles to y=0
//	l, res := grid.MoveElement(l, "a", 2, 0, true, opts)
//
// # Compaction
//
// [Compact] settles items toward the top ([Vertical]) or the left
// ([Horizontal]) edge. Static items never move and act as obstacles. With
// [NoCompaction] items keep their position but overlaps are still resolved
// by pushing items down. With [Options.AllowOverlap] compaction is skipped
// entirely.
//
// # Collision Handling
//
// [MoveElement] relocates an item and displaces whatever it lands on. With
// [Options.PreventCollision] a move that would collide is rejected instead,
// and [ResizeElement] shrinks the item to the free space rather than
// rejecting it.
package grid
