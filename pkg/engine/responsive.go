package engine

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/observability"
	"github.com/matzehuels/gridkit/pkg/responsive"
	"github.com/matzehuels/gridkit/pkg/session"
)

// Responsive is a grid engine that switches layouts by container width.
// Base supplies everything of the inner grid's environment that does not
// vary by breakpoint; columns, spacing and width are filled in per
// breakpoint.
type Responsive struct {
	cfg      responsive.Config
	base     session.Env
	state    responsive.State
	inner    *Grid
	declared []grid.Declared
	width    float64

	logger   *log.Logger
	listener Listener
}

// NewResponsive creates a responsive engine and evaluates the initial width.
func NewResponsive(cfg responsive.Config, base session.Env, width float64, layouts responsive.Layouts, opts ...Option) (*Responsive, error) {
	for name, l := range layouts {
		if err := grid.ValidateLayout(l, 0, "layout "+name); err != nil {
			return nil, err
		}
	}
	state, err := responsive.NewState(cfg, width, layouts)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	r := &Responsive{
		cfg:      cfg,
		base:     base,
		state:    state,
		width:    width,
		logger:   o.logger,
		listener: o.listener,
	}
	env, err := r.envFor(state.Breakpoint, width)
	if err != nil {
		return nil, err
	}
	r.inner = &Grid{
		env:      env,
		state:    session.Idle(state.Layout),
		logger:   o.logger,
		listener: innerListener{r},
	}
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

// Breakpoint returns the active breakpoint.
func (r *Responsive) Breakpoint() string { return r.state.Breakpoint }

// Cols returns the active column count.
func (r *Responsive) Cols() int { return r.state.Cols }

// Layout returns a copy of the committed layout for the active breakpoint.
func (r *Responsive) Layout() grid.Layout { return r.inner.Layout() }

// Layouts returns a copy of every stored breakpoint layout.
func (r *Responsive) Layouts() responsive.Layouts { return r.state.Layouts.Clone() }

// Grid returns the inner grid engine.
func (r *Responsive) Grid() *Grid { return r.inner }

// Session returns the inner grid's interaction state.
func (r *Responsive) Session() session.State { return r.inner.Session() }

// Handle forwards an interaction event to the inner grid.
func (r *Responsive) Handle(ev Event) (Result, error) { return r.inner.Handle(ev) }

// SetWidth evaluates a container measurement. When the layout is
// re-derived an active session is cancelled first, then the layout and
// breakpoint changes are reported. The width change is always reported.
func (r *Responsive) SetWidth(width float64) error {
	next, up, err := r.state.OnWidth(r.cfg, width, r.declared)
	if err != nil {
		return err
	}
	r.width = width

	if up.Reevaluated {
		if r.inner.Session().Active() {
			r.logger.Debug("cancelling interaction on breakpoint change", "item", r.inner.Session().ItemID)
			r.inner.cancel()
			// Cancelling never changes the committed layout, so next is
			// still derived from the right state.
		}
		env, err := r.envFor(next.Breakpoint, width)
		if err != nil {
			return err
		}
		from := r.state.Breakpoint
		r.state = next
		r.inner.reset(env, next.Layout)

		observability.Engine().OnBreakpointChange(from, next.Breakpoint, next.Cols)
		r.logger.Debug("breakpoint evaluated", "from", from, "to", next.Breakpoint, "cols", next.Cols)
		r.listener.OnLayoutChange(r.change(next.Layout))
		r.listener.OnBreakpointChange(next.Breakpoint, next.Cols)
	} else {
		r.state = next
		r.inner.env.Params.ContainerWidth = width
	}

	r.listener.OnWidthChange(up.Width)
	return nil
}

// SetDeclared reconciles the active layout with the declared item set. The
// set is also applied to every layout derived on later breakpoint changes.
func (r *Responsive) SetDeclared(declared []grid.Declared) error {
	if err := r.inner.SetDeclared(declared); err != nil {
		return err
	}
	r.declared = declared
	return nil
}

// SetLayouts replaces the stored breakpoint layouts and re-resolves the
// active one.
func (r *Responsive) SetLayouts(layouts responsive.Layouts) error {
	if err := r.inner.idle("set layouts"); err != nil {
		return err
	}
	for name, l := range layouts {
		if err := grid.ValidateLayout(l, 0, "layout "+name); err != nil {
			return err
		}
	}
	next, err := r.state.WithLayouts(r.cfg, layouts)
	if err != nil {
		return err
	}
	l := next.Layout
	if r.declared != nil {
		if l, err = grid.Synchronize(l, r.declared, r.inner.env.Options); err != nil {
			return err
		}
	}
	r.state = next.OnLayoutChange(l)
	r.inner.reset(r.inner.env, l)
	r.listener.OnLayoutChange(r.change(l))
	return nil
}

func (r *Responsive) envFor(name string, width float64) (session.Env, error) {
	opts, err := r.cfg.GridOptions(name)
	if err != nil {
		return session.Env{}, err
	}
	margin, padding := r.cfg.Spacing(name)

	env := r.base
	env.Options = opts
	env.Params.Cols = opts.Cols
	env.Params.MaxRows = opts.MaxRows
	env.Params.Margin = margin
	env.Params.ContainerPadding = padding
	env.Params.ContainerWidth = width
	return env, nil
}

func (r *Responsive) change(l grid.Layout) LayoutChange {
	return LayoutChange{
		Layout:     l.Clone(),
		Layouts:    r.state.Layouts.Clone(),
		Breakpoint: r.state.Breakpoint,
	}
}

// innerListener records the inner grid's commits under the active
// breakpoint before passing them on.
type innerListener struct{ r *Responsive }

func (l innerListener) OnLayoutChange(ch LayoutChange) {
	l.r.state = l.r.state.OnLayoutChange(ch.Layout)
	l.r.listener.OnLayoutChange(l.r.change(ch.Layout))
}

func (l innerListener) OnInteraction(ev Event, tick session.Tick) {
	l.r.listener.OnInteraction(ev, tick)
}

func (l innerListener) OnBreakpointChange(string, int)       {}
func (l innerListener) OnWidthChange(responsive.WidthChange) {}
