package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/gridkit/pkg/buildinfo"
	"github.com/matzehuels/gridkit/pkg/config"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/responsive"
)

// =============================================================================
// Request and Response Types
// =============================================================================

type layoutRequest struct {
	Options config.Options `json:"options"`
	Layout  grid.Layout    `json:"layout"`
}

type moveRequest struct {
	Options    config.Options `json:"options"`
	Layout     grid.Layout    `json:"layout"`
	ItemID     string         `json:"itemId"`
	X          int            `json:"x"`
	Y          int            `json:"y"`
	UserAction bool           `json:"userAction"`
}

type resizeRequest struct {
	Options config.Options `json:"options"`
	Layout  grid.Layout    `json:"layout"`
	ItemID  string         `json:"itemId"`
	W       int            `json:"w"`
	H       int            `json:"h"`
}

type syncRequest struct {
	Options config.Options  `json:"options"`
	Layout  grid.Layout     `json:"layout"`
	Items   []grid.Declared `json:"items"`
}

type validateRequest struct {
	Cols   int         `json:"cols,omitempty"`
	Layout grid.Layout `json:"layout"`
}

type resolveRequest struct {
	Options        config.Options     `json:"options"`
	Layouts        responsive.Layouts `json:"layouts"`
	Width          float64            `json:"width,omitempty"`
	Breakpoint     string             `json:"breakpoint,omitempty"`
	LastBreakpoint string             `json:"lastBreakpoint,omitempty"`
}

type layoutResponse struct {
	Layout grid.Layout `json:"layout"`
	Result string      `json:"result,omitempty"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
	Items int  `json:"items"`
}

type breakpointResponse struct {
	Breakpoint string      `json:"breakpoint"`
	Cols       int         `json:"cols"`
	Layout     grid.Layout `json:"layout,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.memoize(w, r, "compact", req, func() (any, error) {
		opts, err := prepare(&req.Options, req.Layout)
		if err != nil {
			return nil, err
		}
		return layoutResponse{Layout: grid.Compact(req.Layout, opts)}, nil
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.memoize(w, r, "move", req, func() (any, error) {
		opts, err := prepare(&req.Options, req.Layout)
		if err != nil {
			return nil, err
		}
		if _, ok := req.Layout.Get(req.ItemID); !ok {
			return nil, itemNotFound(req.ItemID)
		}
		l, res := grid.MoveElement(req.Layout, req.ItemID, req.X, req.Y, req.UserAction, opts)
		return layoutResponse{Layout: settle(l, opts), Result: res.String()}, nil
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.memoize(w, r, "resize", req, func() (any, error) {
		opts, err := prepare(&req.Options, req.Layout)
		if err != nil {
			return nil, err
		}
		if _, ok := req.Layout.Get(req.ItemID); !ok {
			return nil, itemNotFound(req.ItemID)
		}
		l, res := grid.ResizeElement(req.Layout, req.ItemID, req.W, req.H, opts)
		return layoutResponse{Layout: settle(l, opts), Result: res.String()}, nil
	})
}

func (s *Server) handleSynchronize(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.memoize(w, r, "synchronize", req, func() (any, error) {
		if err := req.Options.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
		items := req.Items
		if items == nil {
			items = grid.DeclaredIDs(req.Layout.IDs()...)
		}
		l, err := grid.Synchronize(req.Layout, items, req.Options.GridOptions())
		if err != nil {
			return nil, err
		}
		return layoutResponse{Layout: l}, nil
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := grid.ValidateLayout(req.Layout, req.Cols, "layout"); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Items: len(req.Layout)})
}

func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("width")
	if raw == "" {
		s.writeError(w, r, gerrors.New(gerrors.ErrCodeMissingContainerWidth, "width query parameter is required"))
		return
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil || width < 0 {
		s.writeError(w, r, badRequest("invalid width %q", raw))
		return
	}
	name := responsive.BreakpointForWidth(responsive.DefaultBreakpoints, width)
	cols, err := responsive.ColsForBreakpoint(name, responsive.DefaultCols)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, breakpointResponse{Breakpoint: name, Cols: cols})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.memoize(w, r, "resolve", req, func() (any, error) {
		cfg, err := req.Options.Responsive()
		if err != nil {
			return nil, err
		}
		for _, name := range responsive.SortBreakpoints(cfg.Breakpoints) {
			if err := grid.ValidateLayout(req.Layouts[name], 0, "layouts."+name); err != nil {
				return nil, err
			}
		}
		target := req.Breakpoint
		if target == "" {
			target = cfg.Breakpoint
		}
		if target == "" {
			target = responsive.BreakpointForWidth(cfg.Breakpoints, req.Width)
		}
		if _, ok := cfg.Breakpoints[target]; !ok {
			return nil, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown breakpoint %q", target)
		}
		last := req.LastBreakpoint
		if last == "" {
			last = target
		}
		opts, err := cfg.GridOptions(target)
		if err != nil {
			return nil, err
		}
		l := responsive.ResolveLayout(req.Layouts, cfg.Breakpoints, target, last, opts)
		return breakpointResponse{Breakpoint: target, Cols: opts.Cols, Layout: l}, nil
	})
}

// prepare applies option defaults and validates the layout against them.
func prepare(o *config.Options, l grid.Layout) (grid.Options, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return grid.Options{}, err
	}
	opts := o.GridOptions()
	if err := grid.ValidateLayout(l, opts.Cols, "layout"); err != nil {
		return grid.Options{}, err
	}
	return opts, nil
}

func settle(l grid.Layout, opts grid.Options) grid.Layout {
	if opts.AllowOverlap {
		return l
	}
	return grid.Compact(l, opts)
}
