package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/observability"
	"github.com/matzehuels/gridkit/pkg/responsive"
	"github.com/matzehuels/gridkit/pkg/session"
)

// Option configures an engine.
type Option func(*options)

type options struct {
	logger   *log.Logger
	listener Listener
}

// WithLogger sets the engine logger. Engines log at debug level only.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithListener sets the rendering consumer.
func WithListener(l Listener) Option {
	return func(o *options) {
		if l != nil {
			o.listener = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		listener: NopListener{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Grid is a single-grid engine.
type Grid struct {
	env      session.Env
	state    session.State
	declared []grid.Declared
	started  time.Time

	logger   *log.Logger
	listener Listener
}

// NewGrid creates an engine for the initial layout. The layout is validated,
// bounds-corrected and compacted; a listener is told when that changed it.
func NewGrid(env session.Env, initial grid.Layout, opts ...Option) (*Grid, error) {
	if err := grid.ValidateLayout(initial, 0, "initial layout"); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	g := &Grid{
		env:      env,
		state:    session.Idle(initial),
		logger:   o.logger,
		listener: o.listener,
	}
	g.commit(settle(grid.CorrectBounds(initial, env.Options), env.Options))
	return g, nil
}

// Layout returns a copy of the committed layout.
func (g *Grid) Layout() grid.Layout { return g.state.Committed.Clone() }

// Session returns the interaction state.
func (g *Grid) Session() session.State { return g.state }

// Env returns the grid environment.
func (g *Grid) Env() session.Env { return g.env }

// Declared returns the declared item set, or nil when none was set.
func (g *Grid) Declared() []grid.Declared { return g.declared }

// Position returns the pixel rectangle of an item in the rendered layout.
func (g *Grid) Position(id string) (grid.Position, bool) {
	it, ok := g.state.Layout().Get(id)
	if !ok {
		return grid.Position{}, false
	}
	return grid.GridItemPosition(g.env.Params, it.X, it.Y, it.Z, it.W, it.H, nil), true
}

// Handle processes one interaction event.
func (g *Grid) Handle(ev Event) (Result, error) {
	if ev.Phase == PhaseCancel {
		return g.cancel(), nil
	}

	switch ev.Kind {
	case KindDrag:
		return g.handleDrag(ev)
	case KindResize:
		return g.handleResize(ev)
	}
	return Result{}, gerrors.New(gerrors.ErrCodeSessionProtocol, "unknown event kind %q", ev.Kind)
}

func (g *Grid) handleDrag(ev Event) (Result, error) {
	switch ev.Phase {
	case PhaseStart:
		next, tick, err := session.DragStart(g.state, g.env, ev.ItemID)
		if err != nil {
			return Result{}, err
		}
		return g.begin(ev, next, tick), nil
	case PhaseMove:
		next, tick, err := session.DragMove(g.state, g.env, ev.Delta.DX, ev.Delta.DY)
		if err != nil {
			return Result{}, err
		}
		return g.ticked(ev, next, tick), nil
	case PhaseStop:
		next, out, err := session.DragStop(g.state, g.env)
		if err != nil {
			return Result{}, err
		}
		return g.stopped(ev, next, out), nil
	}
	return Result{}, gerrors.New(gerrors.ErrCodeSessionProtocol, "unknown event phase %q", ev.Phase)
}

func (g *Grid) handleResize(ev Event) (Result, error) {
	switch ev.Phase {
	case PhaseStart:
		next, tick, err := session.ResizeStart(g.state, g.env, ev.ItemID, ev.Handle)
		if err != nil {
			return Result{}, err
		}
		return g.begin(ev, next, tick), nil
	case PhaseMove:
		next, tick, err := session.ResizeMove(g.state, g.env, ev.Size.Width, ev.Size.Height)
		if err != nil {
			return Result{}, err
		}
		return g.ticked(ev, next, tick), nil
	case PhaseStop:
		next, out, err := session.ResizeStop(g.state, g.env)
		if err != nil {
			return Result{}, err
		}
		return g.stopped(ev, next, out), nil
	}
	return Result{}, gerrors.New(gerrors.ErrCodeSessionProtocol, "unknown event phase %q", ev.Phase)
}

func (g *Grid) begin(ev Event, next session.State, tick session.Tick) Result {
	g.state = next
	g.started = time.Now()
	observability.Engine().OnInteractionStart(string(ev.Kind), ev.ItemID)
	g.logger.Debug("interaction started", "kind", ev.Kind, "item", ev.ItemID, "x", tick.X, "y", tick.Y)
	g.listener.OnInteraction(ev, tick)
	return Result{Tick: &tick}
}

func (g *Grid) ticked(ev Event, next session.State, tick session.Tick) Result {
	g.state = next
	g.logger.Debug("interaction tick", "kind", ev.Kind, "item", tick.ItemID,
		"x", tick.X, "y", tick.Y, "w", tick.W, "h", tick.H)
	g.listener.OnInteraction(ev, tick)
	return Result{Tick: &tick}
}

func (g *Grid) stopped(ev Event, next session.State, out session.Outcome) Result {
	g.finish(ev.Kind, next, out)

	tick := session.Tick{ItemID: out.ItemID, Layout: out.Layout}
	if it, ok := out.Layout.Get(out.ItemID); ok {
		tick.X, tick.Y, tick.W, tick.H = it.X, it.Y, it.W, it.H
		tick.Position = grid.GridItemPosition(g.env.Params, it.X, it.Y, it.Z, it.W, it.H, nil)
	}
	g.listener.OnInteraction(ev, tick)
	return Result{Outcome: &out}
}

func (g *Grid) cancel() Result {
	kind := KindDrag
	if g.state.Phase == session.PhaseResizing {
		kind = KindResize
	}
	active := g.state.Active()
	next, out := session.Cancel(g.state)
	if active {
		g.finish(kind, next, out)
	}
	return Result{Outcome: &out}
}

func (g *Grid) finish(kind Kind, next session.State, out session.Outcome) {
	g.state = next
	observability.Engine().OnInteractionStop(string(kind), out.ItemID, out.Changed, out.Restored, time.Since(g.started))
	g.logger.Debug("interaction stopped", "kind", kind, "item", out.ItemID,
		"changed", out.Changed, "restored", out.Restored)
	if out.Changed {
		g.notify(out.Layout)
	}
}

// SetLayout replaces the committed layout. The layout is validated like the
// initial one; replacing it during an interaction fails with SESSION_ACTIVE.
func (g *Grid) SetLayout(l grid.Layout) error {
	if err := g.idle("set layout"); err != nil {
		return err
	}
	if err := grid.ValidateLayout(l, 0, "layout"); err != nil {
		return err
	}
	if g.declared != nil {
		synced, err := grid.Synchronize(l, g.declared, g.env.Options)
		if err != nil {
			return err
		}
		g.commit(synced)
		return nil
	}
	g.commit(settle(grid.CorrectBounds(l, g.env.Options), g.env.Options))
	return nil
}

// SetDeclared reconciles the committed layout with the declared item set.
func (g *Grid) SetDeclared(declared []grid.Declared) error {
	if err := g.idle("set declared items"); err != nil {
		return err
	}
	synced, err := grid.Synchronize(g.state.Committed, declared, g.env.Options)
	if err != nil {
		return err
	}
	g.declared = declared
	g.commit(synced)
	return nil
}

// SetWidth records a container measurement and reports the resolved
// spacing.
func (g *Grid) SetWidth(width float64) responsive.WidthChange {
	g.env.Params.ContainerWidth = width
	wc := responsive.WidthChange{
		ContainerWidth:   width,
		Margin:           g.env.Params.Margin,
		Cols:             g.env.Options.Cols,
		ContainerPadding: g.env.Params.ContainerPadding,
	}
	g.listener.OnWidthChange(wc)
	return wc
}

// reset replaces the environment and committed layout without notifying.
func (g *Grid) reset(env session.Env, l grid.Layout) {
	g.env = env
	g.state = session.Idle(l)
}

func (g *Grid) idle(op string) error {
	if g.state.Active() {
		return gerrors.New(gerrors.ErrCodeSessionActive, "cannot %s: %s %q is in progress", op, g.state.Phase, g.state.ItemID)
	}
	return nil
}

// commit replaces the committed layout and notifies when it changed.
func (g *Grid) commit(l grid.Layout) bool {
	if l.Equal(g.state.Committed) {
		return false
	}
	g.state = session.Idle(l)
	g.notify(l)
	return true
}

func (g *Grid) notify(l grid.Layout) {
	observability.Engine().OnLayoutCommit(len(l))
	g.logger.Debug("layout committed", "items", len(l))
	g.listener.OnLayoutChange(LayoutChange{Layout: l.Clone()})
}

func settle(l grid.Layout, opts grid.Options) grid.Layout {
	if opts.AllowOverlap {
		return l
	}
	return grid.Compact(l, opts)
}
