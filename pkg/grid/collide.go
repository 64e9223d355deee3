package grid

// Collides reports whether two distinct items overlap. Rectangles are
// half-open, so items that only share an edge do not collide.
func Collides(a, b Item) bool {
	if a.ID == b.ID {
		return false
	}
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// FirstCollision returns the first item in layout order that collides with
// it.
func FirstCollision(l Layout, it Item) (Item, bool) {
	for _, other := range l {
		if Collides(other, it) {
			return other, true
		}
	}
	return Item{}, false
}

// AllCollisions returns every item colliding with it, in layout order.
func AllCollisions(l Layout, it Item) []Item {
	var out []Item
	for _, other := range l {
		if Collides(other, it) {
			out = append(out, other)
		}
	}
	return out
}

// collidesAny reports whether it collides with any of the indexed items.
func collidesAny(l Layout, idx []int, it Item) bool {
	for _, i := range idx {
		if Collides(l[i], it) {
			return true
		}
	}
	return false
}
