package grid

import "testing"

// assertNoOverlap fails if any two items in l collide.
func assertNoOverlap(t *testing.T, l Layout) {
	t.Helper()
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if Collides(l[i], l[j]) {
				t.Errorf("items %q %+v and %q %+v overlap", l[i].ID, l[i], l[j].ID, l[j])
			}
		}
	}
}

// assertAt fails unless the item with the given id sits at x, y.
func assertAt(t *testing.T, l Layout, id string, x, y int) {
	t.Helper()
	it, ok := l.Get(id)
	if !ok {
		t.Fatalf("item %q missing from layout %v", id, l.IDs())
	}
	if it.X != x || it.Y != y {
		t.Errorf("item %q at (%d,%d), want (%d,%d)", id, it.X, it.Y, x, y)
	}
}
