package grid

import (
	"math"
)

// ResizeResult reports what [ResizeElement] did.
type ResizeResult int

const (
	// Resized means the requested span was applied.
	Resized ResizeResult = iota
	// NotResized means the span did not change or the item is missing.
	NotResized
	// Shrunk means collision prevention cut the span to the free space.
	Shrunk
)

// String returns the result name.
func (r ResizeResult) String() string {
	switch r {
	case Resized:
		return "resized"
	case NotResized:
		return "unchanged"
	case Shrunk:
		return "shrunk"
	}
	return "unknown"
}

// ClampSize bounds a requested span by the item's constraints and the room
// left to the right of it. MinW and MinH are at least 1.
func ClampSize(it Item, w, h, cols int) (int, int) {
	minW, minH := max(it.MinW, 1), max(it.MinH, 1)
	maxW, maxH := math.MaxInt32, math.MaxInt32
	if it.MaxW > 0 {
		maxW = it.MaxW
	}
	if it.MaxH > 0 {
		maxH = it.MaxH
	}
	if cols > 0 {
		maxW = min(maxW, cols-it.X)
	}
	w = max(min(w, maxW), minW)
	h = max(min(h, maxH), minH)
	return w, h
}

// ResizeElement sets the span of the item with the given id, growing from
// the bottom-right corner. It is [ResizeElementFrom] with [HandleSE].
func ResizeElement(l Layout, id string, w, h int, opts Options) (Layout, ResizeResult) {
	return ResizeElementFrom(l, id, HandleSE, w, h, opts)
}

// ResizeElementFrom sets the span of the item with the given id from handle.
// The edges opposite the handle stay put and the span is clamped with
// [ResizeFrom]. With opts.PreventCollision (and no overlap) a span that
// would cover another item is cut back at the nearest collider on each side
// the item grows toward, instead of being rejected.
//
// Items the resize lands on are left in place; the caller compacts
// afterwards.
func ResizeElementFrom(l Layout, id string, handle Handle, w, h int, opts Options) (Layout, ResizeResult) {
	out := l.Clone()
	i := out.Index(id)
	if i < 0 {
		return out, NotResized
	}
	orig := out[i]

	target := ResizeFrom(orig, handle, w, h, opts.Cols)
	if sameRect(orig, target) {
		return out, NotResized
	}

	res := Resized
	if opts.PreventCollision && !opts.AllowOverlap {
		if cut := cutToFree(out, orig, target); !sameRect(cut, target) {
			target, res = cut, Shrunk
		}
	}

	out[i].X, out[i].Y, out[i].W, out[i].H = target.X, target.Y, target.W, target.H
	return out, res
}

// cutToFree trims target so it no longer covers items beyond the edges of
// orig. A collider past orig's right or bottom edge bounds the far edge; one
// past orig's left or top edge bounds the near edge. orig is assumed not to
// overlap anything.
func cutToFree(l Layout, orig, target Item) Item {
	left, top := target.X, target.Y
	right, bottom := target.X+target.W, target.Y+target.H

	for _, c := range AllCollisions(l, target) {
		switch {
		case c.X >= orig.X+orig.W:
			right = min(right, c.X)
		case c.X+c.W <= orig.X:
			left = max(left, c.X+c.W)
		}
		switch {
		case c.Y >= orig.Y+orig.H:
			bottom = min(bottom, c.Y)
		case c.Y+c.H <= orig.Y:
			top = max(top, c.Y+c.H)
		}
	}

	cut := target
	cut.X, cut.Y, cut.W, cut.H = left, top, right-left, bottom-top
	return cut
}

func sameRect(a, b Item) bool {
	return a.X == b.X && a.Y == b.Y && a.W == b.W && a.H == b.H
}

// ResizeFrom returns the item resized to w, h from the given handle. West and
// north handles move the origin so the opposite edge stays put; the span is
// clamped with [ClampSize] against the new origin.
func ResizeFrom(it Item, handle Handle, w, h, cols int) Item {
	out := it.Clone()
	right, bottom := it.X+it.W, it.Y+it.H

	if handle.West() {
		w = min(w, right)
		out.X = right - w
	}
	if handle.North() {
		h = min(h, bottom)
		out.Y = bottom - h
	}

	out.W, out.H = ClampSize(out, w, h, cols)
	if handle.West() {
		out.X = max(right-out.W, 0)
	}
	if handle.North() {
		out.Y = max(bottom-out.H, 0)
	}
	return out
}
