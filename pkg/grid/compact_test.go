package grid

import (
	"testing"
)

func TestSortItems(t *testing.T) {
	l := Layout{
		{ID: "late", X: 0, Y: 3, W: 1, H: 1},
		{ID: "right", X: 4, Y: 0, W: 1, H: 1},
		{ID: "static", X: 8, Y: 5, W: 1, H: 1, Static: true},
		{ID: "left", X: 0, Y: 0, W: 1, H: 1},
	}

	tests := []struct {
		ct   CompactType
		want []string
	}{
		{Vertical, []string{"static", "left", "right", "late"}},
		{NoCompaction, []string{"static", "left", "right", "late"}},
		{Horizontal, []string{"static", "left", "late", "right"}},
	}
	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			got := SortItems(l, tt.ct).IDs()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortItems() = %v, want %v", got, tt.want)
				}
			}
		})
	}

	if l[0].ID != "late" {
		t.Error("SortItems() modified its input")
	}
}

func TestCompact_Vertical(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 2, Y: 3, W: 2, H: 1},
		{ID: "c", X: 0, Y: 5, W: 2, H: 2},
	}
	opts := Options{Cols: 12, CompactType: Vertical}

	got := Compact(l, opts)

	assertAt(t, got, "a", 0, 0)
	assertAt(t, got, "b", 2, 0)
	assertAt(t, got, "c", 0, 1)
	assertNoOverlap(t, got)
	if got.IDs()[2] != "c" {
		t.Errorf("Compact() reordered items: %v", got.IDs())
	}
	assertAt(t, l, "b", 2, 3)
}

func TestCompact_StaticObstacle(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 3, W: 2, H: 1},
		{ID: "s", X: 0, Y: 0, W: 4, H: 1, Static: true},
	}
	got := Compact(l, Options{Cols: 12, CompactType: Vertical})
	assertAt(t, got, "s", 0, 0)
	assertAt(t, got, "a", 0, 1)
}

func TestCompact_Horizontal(t *testing.T) {
	l := Layout{
		{ID: "a", X: 3, Y: 0, W: 2, H: 1},
		{ID: "b", X: 6, Y: 0, W: 1, H: 1},
	}
	got := Compact(l, Options{Cols: 12, CompactType: Horizontal})
	assertAt(t, got, "a", 0, 0)
	assertAt(t, got, "b", 2, 0)
}

func TestCompact_HorizontalWraps(t *testing.T) {
	l := Layout{
		{ID: "s", X: 0, Y: 0, W: 4, H: 1, Static: true},
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
	}
	got := Compact(l, Options{Cols: 4, CompactType: Horizontal})
	assertAt(t, got, "a", 0, 1)
	assertNoOverlap(t, got)
}

func TestCompact_NoCompactionResolvesOverlap(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", X: 0, Y: 1, W: 2, H: 1},
		{ID: "c", X: 5, Y: 4, W: 1, H: 1},
	}
	got := Compact(l, Options{Cols: 12, CompactType: NoCompaction})
	assertAt(t, got, "a", 0, 0)
	assertAt(t, got, "b", 0, 2)
	assertAt(t, got, "c", 5, 4)
}

func TestCompact_AllowOverlap(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", X: 0, Y: 1, W: 2, H: 1},
	}
	got := Compact(l, Options{Cols: 12, CompactType: Vertical, AllowOverlap: true})
	if !got.Equal(l) {
		t.Errorf("Compact() with overlap = %+v, want unchanged", got)
	}
}

func TestCompact_Idempotent(t *testing.T) {
	layouts := map[string]Layout{
		"gaps": {
			{ID: "a", X: 0, Y: 4, W: 3, H: 2},
			{ID: "b", X: 2, Y: 9, W: 4, H: 1},
			{ID: "c", X: 5, Y: 1, W: 2, H: 3},
			{ID: "d", X: 0, Y: 7, W: 12, H: 1},
		},
		"overlaps": {
			{ID: "a", X: 0, Y: 0, W: 4, H: 4},
			{ID: "b", X: 1, Y: 1, W: 4, H: 4},
			{ID: "c", X: 2, Y: 2, W: 4, H: 4},
		},
		"statics": {
			{ID: "s", X: 2, Y: 2, W: 4, H: 1, Static: true},
			{ID: "a", X: 0, Y: 5, W: 6, H: 1},
			{ID: "b", X: 3, Y: 0, W: 2, H: 2},
		},
	}
	for _, ct := range []CompactType{Vertical, Horizontal, NoCompaction} {
		for name, l := range layouts {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				opts := Options{Cols: 12, CompactType: ct}
				once := Compact(l, opts)
				twice := Compact(once, opts)
				if !once.Equal(twice) {
					t.Errorf("Compact() not idempotent:\n once  %+v\n twice %+v", once, twice)
				}
				assertNoOverlap(t, once)
				for _, it := range once {
					if it.X < 0 || it.Y < 0 || it.X+it.W > opts.Cols {
						t.Errorf("item %q out of bounds: %+v", it.ID, it)
					}
				}
			})
		}
	}
}

func TestCorrectBounds(t *testing.T) {
	tests := []struct {
		name  string
		in    Item
		opts  Options
		wantX int
		wantY int
		wantW int
		wantH int
	}{
		{"overflow right", Item{ID: "a", X: 3, Y: 0, W: 2, H: 1}, Options{Cols: 4}, 2, 0, 2, 1},
		{"wider than grid", Item{ID: "a", X: 0, Y: 0, W: 6, H: 1}, Options{Cols: 4}, 0, 0, 4, 1},
		{"negative y", Item{ID: "a", X: 0, Y: -3, W: 1, H: 1}, Options{Cols: 4}, 0, 0, 1, 1},
		{"max rows", Item{ID: "a", X: 0, Y: 5, W: 1, H: 2}, Options{Cols: 4, MaxRows: 3}, 0, 1, 1, 2},
		{"taller than max rows", Item{ID: "a", X: 0, Y: 0, W: 1, H: 5}, Options{Cols: 4, MaxRows: 3}, 0, 0, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CorrectBounds(Layout{tt.in}, tt.opts)[0]
			if got.X != tt.wantX || got.Y != tt.wantY || got.W != tt.wantW || got.H != tt.wantH {
				t.Errorf("CorrectBounds() = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					got.X, got.Y, got.W, got.H, tt.wantX, tt.wantY, tt.wantW, tt.wantH)
			}
		})
	}

	t.Run("static pushed below", func(t *testing.T) {
		l := Layout{
			{ID: "a", X: 0, Y: 0, W: 2, H: 1},
			{ID: "s", X: 0, Y: 0, W: 2, H: 1, Static: true},
		}
		got := CorrectBounds(l, Options{Cols: 12})
		assertAt(t, got, "a", 0, 0)
		assertAt(t, got, "s", 0, 1)
	})
}
