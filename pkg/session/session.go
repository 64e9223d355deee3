package session

import (
	"slices"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Phase is the interaction currently in progress.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResizing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	}
	return "unknown"
}

// Env is the grid an interaction runs against. Params.Cols and
// Params.MaxRows must match Options.
type Env struct {
	Options       grid.Options
	Params        grid.PositionParams
	IsDraggable   bool
	IsResizable   bool
	IsBounded     bool
	ResizeHandles []grid.Handle
}

// DefaultHandles are the resize handles enabled when none are configured.
var DefaultHandles = []grid.Handle{grid.HandleSE}

func (e Env) handles() []grid.Handle {
	if len(e.ResizeHandles) == 0 {
		return DefaultHandles
	}
	return e.ResizeHandles
}

// State is one grid's interaction state. Committed is the layout as of the
// last stop; Working follows the pointer while a session is active.
type State struct {
	Phase       Phase           `json:"phase"`
	ItemID      string          `json:"itemId,omitempty"`
	Handle      grid.Handle     `json:"handle,omitempty"`
	Committed   grid.Layout     `json:"committed"`
	Working     grid.Layout     `json:"working,omitempty"`
	Placeholder *grid.Item      `json:"placeholder,omitempty"`
	Origin      grid.Item       `json:"origin"`
	Pixel       grid.PixelPoint `json:"pixel"`
	Size        grid.PixelSize  `json:"size"`
	Start       grid.Position   `json:"start"`
}

// Idle returns an idle state holding the committed layout.
func Idle(committed grid.Layout) State {
	return State{Phase: PhaseIdle, Committed: committed.Clone()}
}

// Active reports whether an interaction is in progress.
func (s State) Active() bool { return s.Phase != PhaseIdle }

// Layout returns the layout to render: the working layout while a session
// is active, the committed one otherwise.
func (s State) Layout() grid.Layout {
	if s.Active() {
		return s.Working
	}
	return s.Committed
}

// Tick is the result of a start or move: the item's live grid placement,
// its pixel rectangle and the placeholder marking where it would land.
type Tick struct {
	ItemID              string        `json:"itemId"`
	X                   int           `json:"x"`
	Y                   int           `json:"y"`
	W                   int           `json:"w"`
	H                   int           `json:"h"`
	Position            grid.Position `json:"position"`
	Placeholder         *grid.Item    `json:"placeholder,omitempty"`
	PlaceholderPosition grid.Position `json:"placeholderPosition"`
	Layout              grid.Layout   `json:"layout"`
}

// Outcome is the result of a stop or cancel.
type Outcome struct {
	ItemID   string      `json:"itemId"`
	Layout   grid.Layout `json:"layout"`
	Changed  bool        `json:"changed"`
	Restored bool        `json:"restored"`
}

// DragStart begins dragging the item with the given id.
func DragStart(s State, env Env, id string) (State, Tick, error) {
	it, err := startable(s, id)
	if err != nil {
		return s, Tick{}, err
	}
	if !it.Draggable(env.IsDraggable) {
		return s, Tick{}, gerrors.New(gerrors.ErrCodeNotDraggable, "item %q is not draggable", id)
	}

	pos := grid.GridItemPosition(env.Params, it.X, it.Y, it.Z, it.W, it.H, nil)
	next := State{
		Phase:     PhaseDragging,
		ItemID:    id,
		Committed: s.Committed,
		Working:   s.Committed.Clone(),
		Origin:    it.Clone(),
		Pixel:     grid.PixelPoint{Top: float64(pos.Top), Left: float64(pos.Left)},
		Start:     pos,
	}
	next.Placeholder = placeholder(next.Working, id)

	ov := &grid.Override{Dragging: &next.Pixel}
	return next, next.tick(env, ov), nil
}

// DragMove applies a pixel delta to the dragged item. The item follows the
// pointer and the working layout is re-cascaded and compacted. A move
// rejected by collision prevention keeps the previous working layout.
func DragMove(s State, env Env, dx, dy float64) (State, Tick, error) {
	if s.Phase != PhaseDragging {
		return s, Tick{}, protocolError("drag move", s)
	}

	next := s.clone()
	it, _ := next.Working.Get(s.ItemID)
	next.Pixel = next.bound(env, it, grid.PixelPoint{Top: s.Pixel.Top + dy, Left: s.Pixel.Left + dx})

	x, y := grid.PixelsToGridUnits(env.Params, next.Pixel.Top, next.Pixel.Left, it.W, it.H)
	moved, res := grid.MoveElement(next.Working, s.ItemID, x, y, true, env.Options)
	if res != grid.Rejected {
		next.Working = settle(moved, env.Options)
	}
	next.Placeholder = placeholder(next.Working, s.ItemID)

	ov := &grid.Override{Dragging: &next.Pixel}
	return next, next.tick(env, ov), nil
}

// DragStop ends the drag. The final placement is re-run against the working
// layout; when it is rejected the committed layout is restored unchanged.
func DragStop(s State, env Env) (State, Outcome, error) {
	if s.Phase != PhaseDragging {
		return s, Outcome{}, protocolError("drag stop", s)
	}

	it, _ := s.Working.Get(s.ItemID)
	x, y := grid.PixelsToGridUnits(env.Params, s.Pixel.Top, s.Pixel.Left, it.W, it.H)
	moved, res := grid.MoveElement(s.Working, s.ItemID, x, y, true, env.Options)
	if res == grid.Rejected {
		return Idle(s.Committed), Outcome{ItemID: s.ItemID, Layout: s.Committed.Clone(), Restored: true}, nil
	}
	return s.commit(settle(moved, env.Options))
}

// ResizeStart begins resizing the item with the given id from handle. An
// empty handle selects the item's first enabled handle.
func ResizeStart(s State, env Env, id string, handle grid.Handle) (State, Tick, error) {
	it, err := startable(s, id)
	if err != nil {
		return s, Tick{}, err
	}
	if !it.Resizable(env.IsResizable) {
		return s, Tick{}, gerrors.New(gerrors.ErrCodeNotResizable, "item %q is not resizable", id)
	}
	enabled := it.Handles(env.handles())
	if handle == "" {
		handle = enabled[0]
	}
	if !slices.Contains(enabled, handle) {
		return s, Tick{}, gerrors.New(gerrors.ErrCodeNotResizable, "item %q has no %q resize handle", id, handle)
	}

	pos := grid.GridItemPosition(env.Params, it.X, it.Y, it.Z, it.W, it.H, nil)
	next := State{
		Phase:     PhaseResizing,
		ItemID:    id,
		Handle:    handle,
		Committed: s.Committed,
		Working:   s.Committed.Clone(),
		Origin:    it.Clone(),
		Size:      grid.PixelSize{Width: float64(pos.Width), Height: float64(pos.Height)},
		Start:     pos,
	}
	next.Placeholder = placeholder(next.Working, id)

	ov := &grid.Override{Resizing: &next.Size}
	return next, next.tick(env, ov), nil
}

// ResizeMove sets the resized item's pixel size. The span is derived from
// the size, clamped by the item's constraints and applied from the active
// handle; the working layout is then compacted.
func ResizeMove(s State, env Env, width, height float64) (State, Tick, error) {
	if s.Phase != PhaseResizing {
		return s, Tick{}, protocolError("resize move", s)
	}

	next := s.clone()
	next.Size = grid.PixelSize{Width: width, Height: height}

	// West and north handles grow toward the origin, so the span is only
	// bounded by the far edge of the grid.
	ox, oy := s.Origin.X, s.Origin.Y
	if s.Handle.West() {
		ox = 0
	}
	if s.Handle.North() {
		oy = 0
	}
	w, h := grid.PixelSizeToGridUnits(env.Params, width, height, ox, oy)

	// Every tick resizes from the committed layout, so the anchored edges
	// are the ones the item had at ResizeStart.
	resized, _ := grid.ResizeElementFrom(s.Committed, s.ItemID, s.Handle, w, h, env.Options)
	next.Working = settle(resized, env.Options)
	next.Placeholder = placeholder(next.Working, s.ItemID)

	ov := &grid.Override{Resizing: &next.Size}
	return next, next.tick(env, ov), nil
}

// ResizeStop ends the resize and commits the working layout.
func ResizeStop(s State, env Env) (State, Outcome, error) {
	if s.Phase != PhaseResizing {
		return s, Outcome{}, protocolError("resize stop", s)
	}
	return s.commit(settle(s.Working, env.Options))
}

// Cancel discards the active interaction and restores the committed layout.
// Cancelling an idle state is a no-op.
func Cancel(s State) (State, Outcome) {
	if !s.Active() {
		return s, Outcome{Layout: s.Committed.Clone()}
	}
	return Idle(s.Committed), Outcome{ItemID: s.ItemID, Layout: s.Committed.Clone(), Restored: true}
}

func startable(s State, id string) (grid.Item, error) {
	if s.Active() {
		return grid.Item{}, gerrors.New(gerrors.ErrCodeSessionActive, "%s %q is in progress", s.Phase, s.ItemID)
	}
	it, ok := s.Committed.Get(id)
	if !ok {
		return grid.Item{}, gerrors.New(gerrors.ErrCodeItemNotFound, "item %q not found", id)
	}
	return it, nil
}

func protocolError(event string, s State) error {
	return gerrors.New(gerrors.ErrCodeSessionProtocol, "%s while %s", event, s.Phase)
}

func (s State) clone() State {
	out := s
	out.Committed = s.Committed.Clone()
	out.Working = s.Working.Clone()
	if s.Placeholder != nil {
		p := s.Placeholder.Clone()
		out.Placeholder = &p
	}
	out.Origin = s.Origin.Clone()
	return out
}

func (s State) commit(l grid.Layout) (State, Outcome, error) {
	out := Outcome{
		ItemID:  s.ItemID,
		Layout:  l,
		Changed: !l.Equal(s.Committed),
	}
	return Idle(l), out, nil
}

// bound clamps a drag position to the container when the item is bounded.
func (s State) bound(env Env, it grid.Item, p grid.PixelPoint) grid.PixelPoint {
	if !it.Bounded(env.IsBounded, it.Draggable(env.IsDraggable)) {
		return p
	}
	colWidth := grid.ColumnWidth(env.Params)
	rowHeight := env.Params.RowHeight.Resolve(colWidth)
	itemW := grid.ItemSizeInPixels(float64(it.W), colWidth, env.Params.Margin.X())
	itemH := grid.ItemSizeInPixels(float64(it.H), rowHeight, env.Params.Margin.Y())

	bottom := grid.ContainerHeight(env.Params, s.Working) - itemH
	right := env.Params.ContainerWidth - itemW
	p.Top = max(min(p.Top, bottom), 0)
	p.Left = max(min(p.Left, right), 0)
	return p
}

func (s State) tick(env Env, ov *grid.Override) Tick {
	it, _ := s.Working.Get(s.ItemID)
	t := Tick{
		ItemID:      s.ItemID,
		X:           it.X,
		Y:           it.Y,
		W:           it.W,
		H:           it.H,
		Position:    grid.GridItemPosition(env.Params, it.X, it.Y, it.Z, it.W, it.H, ov),
		Placeholder: s.Placeholder,
		Layout:      s.Working,
	}
	if p := s.Placeholder; p != nil {
		t.PlaceholderPosition = grid.GridItemPosition(env.Params, p.X, p.Y, p.Z, p.W, p.H, nil)
	}
	return t
}

// settle compacts a working layout unless overlap is allowed.
func settle(l grid.Layout, opts grid.Options) grid.Layout {
	if opts.AllowOverlap {
		return l
	}
	return grid.Compact(l, opts)
}

// placeholder returns a copy of the item as it sits in the layout.
func placeholder(l grid.Layout, id string) *grid.Item {
	it, ok := l.Get(id)
	if !ok {
		return nil
	}
	ph := it.Clone()
	return &ph
}
