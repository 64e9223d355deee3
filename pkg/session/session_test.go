package session

import (
	"testing"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// testEnv has 100px columns and 50px rows, so one column step is 110px and
// one row step is 60px.
func testEnv(opts grid.Options) Env {
	opts.Cols = 12
	return Env{
		Options: opts,
		Params: grid.PositionParams{
			Cols:             12,
			Margin:           grid.Spacing{10, 10},
			ContainerPadding: grid.Spacing{10, 10},
			ContainerWidth:   1330,
			RowHeight:        grid.FixedRowHeight(50),
			MaxRows:          opts.MaxRows,
		},
		IsDraggable: true,
		IsResizable: true,
	}
}

func row() grid.Layout {
	return grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 2, Y: 0, W: 2, H: 1},
		{ID: "c", X: 4, Y: 0, W: 2, H: 1},
	}
}

func assertItem(t *testing.T, l grid.Layout, id string, x, y, w, h int) {
	t.Helper()
	it, ok := l.Get(id)
	if !ok {
		t.Fatalf("item %q missing", id)
	}
	if it.X != x || it.Y != y || it.W != w || it.H != h {
		t.Errorf("item %q = (%d,%d,%d,%d), want (%d,%d,%d,%d)", id, it.X, it.Y, it.W, it.H, x, y, w, h)
	}
}

func TestDrag(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	s := Idle(row())

	s, tick, err := DragStart(s, env, "a")
	if err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	if s.Phase != PhaseDragging || tick.Position.Left != 10 || tick.Position.Top != 10 {
		t.Errorf("DragStart() = %s, position %+v", s.Phase, tick.Position)
	}

	s, tick, err = DragMove(s, env, 330, 0)
	if err != nil {
		t.Fatalf("DragMove() error = %v", err)
	}
	if tick.X != 3 || tick.Y != 0 {
		t.Errorf("DragMove() tick = (%d,%d), want (3,0)", tick.X, tick.Y)
	}
	if tick.Position.Left != 340 {
		t.Errorf("DragMove() left = %d, want 340 (follows the pointer)", tick.Position.Left)
	}
	if tick.Placeholder == nil || tick.Placeholder.X != 3 {
		t.Errorf("DragMove() placeholder = %+v", tick.Placeholder)
	}
	if tick.PlaceholderPosition.Left != 340 {
		t.Errorf("placeholder left = %d, want 340", tick.PlaceholderPosition.Left)
	}
	assertItem(t, s.Working, "b", 2, 1, 2, 1)
	assertItem(t, s.Committed, "a", 0, 0, 2, 1)

	s, out, err := DragStop(s, env)
	if err != nil {
		t.Fatalf("DragStop() error = %v", err)
	}
	if s.Phase != PhaseIdle || !out.Changed || out.Restored {
		t.Errorf("DragStop() = %s, outcome %+v", s.Phase, out)
	}
	assertItem(t, s.Committed, "a", 3, 0, 2, 1)
	assertItem(t, s.Committed, "b", 2, 1, 2, 1)
	assertItem(t, s.Committed, "c", 4, 1, 2, 1)
}

func TestDrag_RejectedRestores(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical, PreventCollision: true})
	committed := grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 2, Y: 0, W: 2, H: 1},
	}
	s := Idle(committed)

	s, _, err := DragStart(s, env, "a")
	if err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	s, tick, err := DragMove(s, env, 110, 0)
	if err != nil {
		t.Fatalf("DragMove() error = %v", err)
	}
	if tick.Placeholder.X != 0 {
		t.Errorf("placeholder x = %d, want 0 (move rejected)", tick.Placeholder.X)
	}

	s, out, err := DragStop(s, env)
	if err != nil {
		t.Fatalf("DragStop() error = %v", err)
	}
	if !out.Restored || out.Changed {
		t.Errorf("DragStop() outcome = %+v, want restored", out)
	}
	if !s.Committed.Equal(committed) {
		t.Errorf("committed = %+v, want unchanged", s.Committed)
	}
}

func TestDrag_Bounded(t *testing.T) {
	layout := grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 4, Y: 0, W: 2, H: 1},
	}

	tests := []struct {
		name    string
		bounded bool
		wantY   int
	}{
		{"unbounded", false, 10},
		{"bounded", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(grid.Options{})
			env.IsBounded = tt.bounded
			s, _, err := DragStart(Idle(layout), env, "a")
			if err != nil {
				t.Fatalf("DragStart() error = %v", err)
			}
			s, tick, err := DragMove(s, env, -500, 600)
			if err != nil {
				t.Fatalf("DragMove() error = %v", err)
			}
			if tick.X != 0 || tick.Y != tt.wantY {
				t.Errorf("DragMove() = (%d,%d), want (0,%d)", tick.X, tick.Y, tt.wantY)
			}
			if tt.bounded && (s.Pixel.Left != 0 || s.Pixel.Top != 20) {
				t.Errorf("bounded pixel = %+v, want top 20 left 0", s.Pixel)
			}
		})
	}
}

func TestResize(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	s := Idle(row())

	s, tick, err := ResizeStart(s, env, "a", "")
	if err != nil {
		t.Fatalf("ResizeStart() error = %v", err)
	}
	if s.Handle != grid.HandleSE || tick.Position.Width != 210 {
		t.Errorf("ResizeStart() handle %q width %d", s.Handle, tick.Position.Width)
	}

	s, tick, err = ResizeMove(s, env, 320, 110)
	if err != nil {
		t.Fatalf("ResizeMove() error = %v", err)
	}
	if tick.W != 3 || tick.H != 2 {
		t.Errorf("ResizeMove() span = %dx%d, want 3x2", tick.W, tick.H)
	}
	if tick.Position.Width != 320 {
		t.Errorf("ResizeMove() width = %d, want 320 (follows the pointer)", tick.Position.Width)
	}

	s, out, err := ResizeStop(s, env)
	if err != nil {
		t.Fatalf("ResizeStop() error = %v", err)
	}
	if !out.Changed || s.Active() {
		t.Errorf("ResizeStop() outcome = %+v", out)
	}
	assertItem(t, s.Committed, "a", 0, 0, 3, 2)
	assertItem(t, s.Committed, "b", 2, 2, 2, 1)
	assertItem(t, s.Committed, "c", 4, 0, 2, 1)
}

func TestResize_West(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	env.ResizeHandles = []grid.Handle{grid.HandleSE, grid.HandleW}

	s, _, err := ResizeStart(Idle(row()), env, "c", grid.HandleW)
	if err != nil {
		t.Fatalf("ResizeStart() error = %v", err)
	}
	s, tick, err := ResizeMove(s, env, 430, 50)
	if err != nil {
		t.Fatalf("ResizeMove() error = %v", err)
	}
	if tick.X != 2 || tick.W != 4 {
		t.Errorf("ResizeMove() = x %d w %d, want x 2 w 4", tick.X, tick.W)
	}
	for i := range s.Working {
		for j := i + 1; j < len(s.Working); j++ {
			if grid.Collides(s.Working[i], s.Working[j]) {
				t.Errorf("%q and %q overlap", s.Working[i].ID, s.Working[j].ID)
			}
		}
	}
}

func TestResizePreventCollisionFromHandle(t *testing.T) {
	tests := []struct {
		name     string
		compact  grid.CompactType
		layout   grid.Layout
		handle   grid.Handle
		px       [2]float64 // width, height
		want     [4]int     // x, y, w, h of "t"
		neighbor [2]int     // x, y of "n"
	}{
		{
			name:     "west held at neighbor",
			compact:  grid.Vertical,
			layout:   grid.Layout{{ID: "n", X: 0, Y: 0, W: 2, H: 1}, {ID: "t", X: 2, Y: 0, W: 2, H: 1}},
			handle:   grid.HandleW,
			px:       [2]float64{430, 50},
			want:     [4]int{2, 0, 2, 1},
			neighbor: [2]int{0, 0},
		},
		{
			name:     "north held at neighbor",
			compact:  grid.Vertical,
			layout:   grid.Layout{{ID: "n", X: 0, Y: 0, W: 1, H: 1}, {ID: "t", X: 0, Y: 1, W: 1, H: 1}},
			handle:   grid.HandleN,
			px:       [2]float64{100, 170},
			want:     [4]int{0, 1, 1, 1},
			neighbor: [2]int{0, 0},
		},
		{
			name:     "north west grows to neighbor corner",
			compact:  grid.NoCompaction,
			layout:   grid.Layout{{ID: "n", X: 0, Y: 0, W: 2, H: 2}, {ID: "t", X: 3, Y: 3, W: 1, H: 1}},
			handle:   grid.HandleNW,
			px:       [2]float64{430, 230},
			want:     [4]int{2, 2, 2, 2},
			neighbor: [2]int{0, 0},
		},
		{
			name:     "south west grows to neighbor edges",
			compact:  grid.NoCompaction,
			layout:   grid.Layout{{ID: "n", X: 0, Y: 3, W: 1, H: 2}, {ID: "t", X: 2, Y: 0, W: 2, H: 2}},
			handle:   grid.HandleSW,
			px:       [2]float64{430, 230},
			want:     [4]int{1, 0, 3, 3},
			neighbor: [2]int{0, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(grid.Options{CompactType: tt.compact, PreventCollision: true})
			env.ResizeHandles = []grid.Handle{grid.HandleW, grid.HandleN, grid.HandleNW, grid.HandleSW}

			s, _, err := ResizeStart(Idle(tt.layout), env, "t", tt.handle)
			if err != nil {
				t.Fatalf("ResizeStart() error = %v", err)
			}
			s, tick, err := ResizeMove(s, env, tt.px[0], tt.px[1])
			if err != nil {
				t.Fatalf("ResizeMove() error = %v", err)
			}
			if [4]int{tick.X, tick.Y, tick.W, tick.H} != tt.want {
				t.Errorf("ResizeMove() = (%d,%d,%d,%d), want %v", tick.X, tick.Y, tick.W, tick.H, tt.want)
			}

			s, _, err = ResizeStop(s, env)
			if err != nil {
				t.Fatalf("ResizeStop() error = %v", err)
			}
			assertItem(t, s.Committed, "t", tt.want[0], tt.want[1], tt.want[2], tt.want[3])
			n, _ := s.Committed.Get("n")
			if n.X != tt.neighbor[0] || n.Y != tt.neighbor[1] {
				t.Errorf("neighbor at (%d,%d), want %v", n.X, n.Y, tt.neighbor)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	s, _, _ := DragStart(Idle(row()), env, "a")
	s, _, _ = DragMove(s, env, 330, 0)

	s, out := Cancel(s)
	if s.Active() || !out.Restored {
		t.Errorf("Cancel() = %s, outcome %+v", s.Phase, out)
	}
	if !s.Committed.Equal(row()) {
		t.Errorf("Cancel() committed = %+v, want original", s.Committed)
	}

	again, out := Cancel(s)
	if again.Active() || out.Restored {
		t.Error("Cancel() on idle state should be a no-op")
	}
}

func TestProtocolErrors(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	layout := append(row(), grid.Item{ID: "s", X: 8, Y: 0, W: 1, H: 1, Static: true})
	idle := Idle(layout)
	dragging, _, err := DragStart(idle, env, "a")
	if err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}

	tests := []struct {
		name string
		run  func() error
		code gerrors.Code
	}{
		{"move without start", func() error { _, _, err := DragMove(idle, env, 1, 1); return err }, gerrors.ErrCodeSessionProtocol},
		{"stop without start", func() error { _, _, err := DragStop(idle, env); return err }, gerrors.ErrCodeSessionProtocol},
		{"resize stop without start", func() error { _, _, err := ResizeStop(idle, env); return err }, gerrors.ErrCodeSessionProtocol},
		{"resize move while dragging", func() error { _, _, err := ResizeMove(dragging, env, 1, 1); return err }, gerrors.ErrCodeSessionProtocol},
		{"second start", func() error { _, _, err := DragStart(dragging, env, "b"); return err }, gerrors.ErrCodeSessionActive},
		{"resize while dragging", func() error { _, _, err := ResizeStart(dragging, env, "b", ""); return err }, gerrors.ErrCodeSessionActive},
		{"unknown item", func() error { _, _, err := DragStart(idle, env, "zz"); return err }, gerrors.ErrCodeItemNotFound},
		{"static item", func() error { _, _, err := DragStart(idle, env, "s"); return err }, gerrors.ErrCodeNotDraggable},
		{"static resize", func() error { _, _, err := ResizeStart(idle, env, "s", ""); return err }, gerrors.ErrCodeNotResizable},
		{"disabled handle", func() error { _, _, err := ResizeStart(idle, env, "a", grid.HandleN); return err }, gerrors.ErrCodeNotResizable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !gerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestState_Layout(t *testing.T) {
	env := testEnv(grid.Options{CompactType: grid.Vertical})
	s := Idle(row())
	if !s.Layout().Equal(s.Committed) {
		t.Error("Layout() on idle state should be the committed layout")
	}
	s, _, _ = DragStart(s, env, "a")
	s, _, _ = DragMove(s, env, 330, 0)
	if a, _ := s.Layout().Get("a"); a.X != 3 {
		t.Errorf("Layout() while dragging: a.x = %d, want 3", a.X)
	}
}
