package responsive

import (
	"github.com/matzehuels/gridkit/pkg/grid"
)

// PerBreakpoint is a spacing that is either one value for every breakpoint
// or a per-name map. A name missing from ByName falls back to All.
type PerBreakpoint struct {
	All    *grid.Spacing
	ByName map[string]grid.Spacing
}

// Uniform returns a PerBreakpoint with the same spacing everywhere.
func Uniform(s grid.Spacing) PerBreakpoint { return PerBreakpoint{All: &s} }

// Resolve returns the spacing for the named breakpoint.
func (p PerBreakpoint) Resolve(name string) (grid.Spacing, bool) {
	if s, ok := p.ByName[name]; ok {
		return s, true
	}
	if p.All != nil {
		return *p.All, true
	}
	return grid.Spacing{}, false
}

// DefaultMargin is the item margin used when none is configured.
var DefaultMargin = grid.Spacing{10, 10}

// Config is the responsive policy. Breakpoint, when set, forces the active
// breakpoint regardless of width.
type Config struct {
	Breakpoints      Breakpoints
	Cols             map[string]int
	Margin           PerBreakpoint
	ContainerPadding PerBreakpoint
	CompactType      grid.CompactType
	MaxRows          int
	PreventCollision bool
	AllowOverlap     bool
	Breakpoint       string
}

// GridOptions returns the grid options for the named breakpoint.
func (c Config) GridOptions(name string) (grid.Options, error) {
	cols, err := ColsForBreakpoint(name, c.Cols)
	if err != nil {
		return grid.Options{}, err
	}
	return grid.Options{
		Cols:             cols,
		MaxRows:          c.MaxRows,
		CompactType:      c.CompactType,
		PreventCollision: c.PreventCollision,
		AllowOverlap:     c.AllowOverlap,
	}, nil
}

// Spacing returns the margin and container padding for the named
// breakpoint. Padding defaults to the margin.
func (c Config) Spacing(name string) (margin, padding grid.Spacing) {
	margin, ok := c.Margin.Resolve(name)
	if !ok {
		margin = DefaultMargin
	}
	padding, ok = c.ContainerPadding.Resolve(name)
	if !ok {
		padding = margin
	}
	return margin, padding
}

// target returns the breakpoint a width selects under this config.
func (c Config) target(width float64) string {
	if c.Breakpoint != "" {
		return c.Breakpoint
	}
	return BreakpointForWidth(c.Breakpoints, width)
}

// WidthChange is reported on every width evaluation.
type WidthChange struct {
	ContainerWidth   float64      `json:"containerWidth"`
	Margin           grid.Spacing `json:"margin"`
	Cols             int          `json:"cols"`
	ContainerPadding grid.Spacing `json:"containerPadding"`
}

// Update describes what changed in a transition. Reevaluated is set when the
// layout was re-derived; consumers then receive both the breakpoint and the
// layout change.
type Update struct {
	Reevaluated bool
	Breakpoint  string
	Cols        int
	Width       WidthChange
}

// State is the responsive resolver's value. The zero value has no
// breakpoint and no layouts; use [NewState] to derive the initial layout.
type State struct {
	Breakpoint string
	Cols       int
	Layout     grid.Layout
	Layouts    Layouts

	evaluated   bool
	fingerprint string
}

// NewState derives the initial state for a container of the given width.
// The initial layout is resolved without overlap. A forced breakpoint counts
// as already evaluated, so the first [State.OnWidth] only reports widths.
func NewState(cfg Config, width float64, layouts Layouts) (State, error) {
	name := cfg.target(width)
	opts, err := cfg.GridOptions(name)
	if err != nil {
		return State{}, err
	}
	opts.AllowOverlap = false

	return State{
		Breakpoint:  name,
		Cols:        opts.Cols,
		Layout:      ResolveLayout(layouts, cfg.Breakpoints, name, name, opts),
		Layouts:     layouts.Clone(),
		evaluated:   cfg.Breakpoint != "",
		fingerprint: fingerprint(cfg.Breakpoints, cfg.Cols),
	}, nil
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Layout = s.Layout.Clone()
	out.Layouts = s.Layouts.Clone()
	return out
}

// OnWidth evaluates a width measurement. The layout is re-derived on the
// first evaluation, when the selected breakpoint changes, or when the
// breakpoint or column maps differ from the last evaluation; a nil declared
// set skips synchronization. The width change is always reported.
func (s State) OnWidth(cfg Config, width float64, declared []grid.Declared) (State, Update, error) {
	name := cfg.target(width)
	opts, err := cfg.GridOptions(name)
	if err != nil {
		return s, Update{}, err
	}

	next := s.Clone()
	fp := fingerprint(cfg.Breakpoints, cfg.Cols)
	up := Update{Breakpoint: name, Cols: opts.Cols}

	if !s.evaluated || s.Breakpoint != name || s.fingerprint != fp {
		last := s.Breakpoint
		layouts := s.Layouts.Clone()
		if layouts == nil {
			layouts = Layouts{}
		}
		if _, ok := layouts[last]; !ok && last != "" {
			layouts[last] = s.Layout.Clone()
		}

		_, exists := s.Layouts[name]
		widening := last == name || cfg.Breakpoints[name] > cfg.Breakpoints[last]
		opts.AllowOverlap = cfg.AllowOverlap && (exists || widening)

		layout := ResolveLayout(layouts, cfg.Breakpoints, name, last, opts)
		if declared != nil {
			if layout, err = grid.Synchronize(layout, declared, opts); err != nil {
				return s, Update{}, err
			}
		} else {
			layout = grid.CorrectBounds(layout, opts)
		}
		layouts[name] = layout

		next.Breakpoint = name
		next.Cols = opts.Cols
		next.Layout = layout.Clone()
		next.Layouts = layouts
		next.evaluated = true
		next.fingerprint = fp
		up.Reevaluated = true
	}

	margin, padding := cfg.Spacing(name)
	up.Width = WidthChange{
		ContainerWidth:   width,
		Margin:           margin,
		Cols:             next.Cols,
		ContainerPadding: padding,
	}
	return next, up, nil
}

// OnLayoutChange stores a committed layout under the active breakpoint.
func (s State) OnLayoutChange(l grid.Layout) State {
	next := s.Clone()
	if next.Layouts == nil {
		next.Layouts = Layouts{}
	}
	next.Layout = l.Clone()
	next.Layouts[s.Breakpoint] = l.Clone()
	return next
}

// WithLayouts replaces the per-breakpoint layouts and re-resolves the layout
// for the active breakpoint.
func (s State) WithLayouts(cfg Config, layouts Layouts) (State, error) {
	opts, err := cfg.GridOptions(s.Breakpoint)
	if err != nil {
		return s, err
	}
	opts.AllowOverlap = false

	next := s.Clone()
	next.Layouts = layouts.Clone()
	next.Layout = ResolveLayout(layouts, cfg.Breakpoints, s.Breakpoint, s.Breakpoint, opts)
	next.Cols = opts.Cols
	return next, nil
}
