package grid

import (
	"cmp"
	"slices"
)

type axis int

const (
	axisX axis = iota
	axisY
)

// SortItems returns a copy of the layout ordered for compaction: static
// items first by row then column, then the rest by row then column
// (vertical and none) or by column then row (horizontal). Ties keep layout
// order.
func SortItems(l Layout, ct CompactType) Layout {
	out := l.Clone()
	slices.SortStableFunc(out, itemOrder(ct))
	return out
}

// sortedIndices is SortItems over positions into l.
func sortedIndices(l Layout, ct CompactType) []int {
	idx := make([]int, len(l))
	for i := range idx {
		idx[i] = i
	}
	order := itemOrder(ct)
	slices.SortStableFunc(idx, func(a, b int) int { return order(l[a], l[b]) })
	return idx
}

func itemOrder(ct CompactType) func(a, b Item) int {
	return func(a, b Item) int {
		if a.Static != b.Static {
			if a.Static {
				return -1
			}
			return 1
		}
		if ct == Horizontal && !a.Static {
			return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
		}
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	}
}

// Compact removes gaps by settling every non-static item toward the edge
// selected by opts.CompactType. The layout is bounds-corrected first and,
// when MaxRows is set, clamped to it afterwards. With AllowOverlap the
// layout is returned unchanged (as a clone).
func Compact(l Layout, opts Options) Layout {
	if opts.AllowOverlap {
		return l.Clone()
	}

	corrected := CorrectBounds(l, opts)
	order := sortedIndices(corrected, opts.CompactType)

	sorted := make(Layout, len(order))
	for i, j := range order {
		sorted[i] = corrected[j]
	}

	placed := sorted.Statics()
	out := make(Layout, len(corrected))
	for i := range sorted {
		it := sorted[i]
		if !it.Static {
			it = compactItem(placed, it, i, sorted, opts)
			placed = append(placed, it)
		}
		out[order[i]] = it
	}

	if opts.boundedRows() {
		for i := range out {
			clampRows(&out[i], opts.MaxRows)
		}
	}
	return out
}

// compactItem settles one item against the already placed ones. sorted is
// the full working set; items after idx may be pushed ahead of time when
// this item is forced past a collision.
func compactItem(placed Layout, it Item, idx int, sorted Layout, opts Options) Item {
	switch opts.CompactType {
	case Vertical:
		it.Y = min(Bottom(placed), it.Y)
		for it.Y > 0 {
			if _, hit := FirstCollision(placed, it); hit {
				break
			}
			it.Y--
		}
	case Horizontal:
		for it.X > 0 {
			if _, hit := FirstCollision(placed, it); hit {
				break
			}
			it.X--
		}
	}

	for {
		c, hit := FirstCollision(placed, it)
		if !hit {
			break
		}
		if opts.CompactType == Horizontal {
			resolveCompactionCollision(sorted, &it, idx, c.X+c.W, axisX)
		} else {
			resolveCompactionCollision(sorted, &it, idx, c.Y+c.H, axisY)
		}
		// Wrap to the next row once the item runs off the right edge.
		if opts.CompactType == Horizontal && it.X+it.W > opts.Cols {
			it.X = opts.Cols - it.W
			it.Y++
			for it.X > 0 {
				if _, hit := FirstCollision(placed, it); hit {
					break
				}
				it.X--
			}
		}
	}

	it.X = max(it.X, 0)
	it.Y = max(it.Y, 0)
	return it
}

// resolveCompactionCollision moves item to moveTo on the given axis and
// first pushes every later item it would land on a step further, so the
// cascade stays ordered.
func resolveCompactionCollision(sorted Layout, item *Item, idx, moveTo int, ax axis) {
	size := item.H
	if ax == axisX {
		size = item.W
	}
	shift(item, ax, 1)

	for i := idx + 1; i < len(sorted); i++ {
		other := &sorted[i]
		if other.Static {
			continue
		}
		// Sorted by row: nothing further down can be reached.
		if other.Y > item.Y+item.H {
			break
		}
		if Collides(*item, *other) {
			resolveCompactionCollision(sorted, other, i, moveTo+size, ax)
		}
	}

	set(item, ax, moveTo)
}

func shift(it *Item, ax axis, d int) {
	if ax == axisX {
		it.X += d
	} else {
		it.Y += d
	}
}

func set(it *Item, ax axis, v int) {
	if ax == axisX {
		it.X = v
	} else {
		it.Y = v
	}
}

// CorrectBounds returns a copy of the layout with every item inside the
// grid: x+w <= cols (an item wider than the grid is shrunk to it), y >= 0
// and, when MaxRows is set, y+h <= MaxRows. Static items that end up
// overlapping an earlier item are pushed down until free.
func CorrectBounds(l Layout, opts Options) Layout {
	out := l.Clone()
	var seen []int
	for i := range out {
		if out[i].Static {
			seen = append(seen, i)
		}
	}

	for i := range out {
		it := &out[i]
		if opts.Cols > 0 {
			if it.X+it.W > opts.Cols {
				it.X = opts.Cols - it.W
			}
			if it.X < 0 {
				it.X = 0
				it.W = opts.Cols
			}
		}
		if it.Y < 0 {
			it.Y = 0
		}
		if opts.boundedRows() {
			clampRows(it, opts.MaxRows)
		}
		if !it.Static {
			seen = append(seen, i)
			continue
		}
		for collidesAny(out, seen, *it) {
			it.Y++
		}
	}
	return out
}

func clampRows(it *Item, maxRows int) {
	if it.H > maxRows {
		it.H = maxRows
	}
	if it.Y+it.H > maxRows {
		it.Y = maxRows - it.H
	}
}
