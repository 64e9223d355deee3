package grid

import "testing"

func TestCollides(t *testing.T) {
	a := Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	tests := []struct {
		name string
		b    Item
		want bool
	}{
		{"overlap", Item{ID: "b", X: 1, Y: 1, W: 2, H: 2}, true},
		{"contained", Item{ID: "b", X: 0, Y: 0, W: 1, H: 1}, true},
		{"touching right edge", Item{ID: "b", X: 2, Y: 0, W: 1, H: 1}, false},
		{"touching bottom edge", Item{ID: "b", X: 0, Y: 2, W: 1, H: 1}, false},
		{"disjoint", Item{ID: "b", X: 5, Y: 5, W: 1, H: 1}, false},
		{"same id", Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(a, tt.b); got != tt.want {
				t.Errorf("Collides() = %v, want %v", got, tt.want)
			}
			if got := Collides(tt.b, a); got != tt.want {
				t.Errorf("Collides() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstAndAllCollisions(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 2, Y: 0, W: 2, H: 1},
		{ID: "c", X: 0, Y: 1, W: 4, H: 1},
	}
	probe := Item{ID: "p", X: 1, Y: 0, W: 2, H: 1}

	first, ok := FirstCollision(l, probe)
	if !ok || first.ID != "a" {
		t.Errorf("FirstCollision() = %q, %v, want a, true", first.ID, ok)
	}

	all := AllCollisions(l, probe)
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("AllCollisions() = %v, want [a b]", Layout(all).IDs())
	}

	if _, ok := FirstCollision(l, Item{ID: "p", X: 0, Y: 5, W: 1, H: 1}); ok {
		t.Error("FirstCollision() found a collision for a free slot")
	}
}
