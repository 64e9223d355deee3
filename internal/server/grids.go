package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/gridkit/pkg/config"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/engine"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/responsive"
)

// gridSession is one server-held engine. Fixed grids have a nil resp.
// mu serializes every request on the grid, deletion included. deleted is
// set under mu once the grid has left the registry.
type gridSession struct {
	mu      sync.Mutex
	deleted bool
	id      string
	grid    *engine.Grid
	resp    *engine.Responsive
	rec     *changeRecorder
	created time.Time
}

// changeRecorder keeps the notifications of the request being handled.
type changeRecorder struct {
	engine.NopListener
	commits     int
	breakpoints int
	width       *responsive.WidthChange
}

func (c *changeRecorder) OnLayoutChange(engine.LayoutChange) { c.commits++ }

func (c *changeRecorder) OnBreakpointChange(string, int) { c.breakpoints++ }

func (c *changeRecorder) OnWidthChange(wc responsive.WidthChange) { c.width = &wc }

func (c *changeRecorder) reset() { *c = changeRecorder{} }

type createGridRequest struct {
	Options    config.Options     `json:"options"`
	Responsive bool               `json:"responsive,omitempty"`
	Width      float64            `json:"width,omitempty"`
	Layout     grid.Layout        `json:"layout,omitempty"`
	Layouts    responsive.Layouts `json:"layouts,omitempty"`
	Items      []grid.Declared    `json:"items,omitempty"`
}

type widthRequest struct {
	Width float64 `json:"width"`
}

type gridView struct {
	ID         string                  `json:"id"`
	Responsive bool                    `json:"responsive"`
	Breakpoint string                  `json:"breakpoint,omitempty"`
	Cols       int                     `json:"cols"`
	Phase      string                  `json:"phase"`
	Layout     grid.Layout             `json:"layout"`
	Layouts    responsive.Layouts      `json:"layouts,omitempty"`
	Committed  bool                    `json:"committed,omitempty"`
	Width      *responsive.WidthChange `json:"widthChange,omitempty"`
	Created    time.Time               `json:"created"`
}

type eventResponse struct {
	engine.Result
	Grid gridView `json:"grid"`
}

func (g *gridSession) view() gridView {
	v := gridView{
		ID:        g.id,
		Cols:      g.grid.Env().Options.Cols,
		Phase:     g.grid.Session().Phase.String(),
		Layout:    g.grid.Layout(),
		Committed: g.rec.commits > 0,
		Width:     g.rec.width,
		Created:   g.created,
	}
	if g.resp != nil {
		v.Responsive = true
		v.Breakpoint = g.resp.Breakpoint()
		v.Cols = g.resp.Cols()
		v.Layouts = g.resp.Layouts()
	}
	return v
}

func (s *Server) handleCreateGrid(w http.ResponseWriter, r *http.Request) {
	var req createGridRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.newGridSession(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	if len(s.grids) >= s.maxGrids {
		s.mu.Unlock()
		s.writeError(w, r, gerrors.New(gerrors.ErrCodeSessionProtocol, "too many grids (max %d)", s.maxGrids))
		return
	}
	s.grids[g.id] = g
	s.mu.Unlock()

	s.logger.Info("grid created", "id", g.id, "responsive", g.resp != nil, "items", len(g.grid.Layout()))
	writeJSON(w, http.StatusCreated, g.view())
}

func (s *Server) newGridSession(req createGridRequest) (*gridSession, error) {
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	env, err := req.Options.Env()
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		env.Params.ContainerWidth = req.Width
	}

	g := &gridSession{
		id:      uuid.NewString(),
		rec:     &changeRecorder{},
		created: time.Now().UTC(),
	}
	opts := []engine.Option{
		engine.WithLogger(s.logger.With("grid", g.id)),
		engine.WithListener(g.rec),
	}

	if req.Responsive {
		cfg, err := req.Options.Responsive()
		if err != nil {
			return nil, err
		}
		layouts := req.Layouts
		if layouts == nil && req.Layout != nil {
			name := responsive.BreakpointForWidth(cfg.Breakpoints, env.Params.ContainerWidth)
			if cfg.Breakpoint != "" {
				name = cfg.Breakpoint
			}
			layouts = responsive.Layouts{name: req.Layout}
		}
		resp, err := engine.NewResponsive(cfg, env, env.Params.ContainerWidth, layouts, opts...)
		if err != nil {
			return nil, err
		}
		g.resp, g.grid = resp, resp.Grid()
		if req.Items != nil {
			if err := resp.SetDeclared(req.Items); err != nil {
				return nil, err
			}
		}
	} else {
		eg, err := engine.NewGrid(env, req.Layout, opts...)
		if err != nil {
			return nil, err
		}
		g.grid = eg
		if req.Items != nil {
			if err := eg.SetDeclared(req.Items); err != nil {
				return nil, err
			}
		}
	}
	g.rec.reset()
	return g, nil
}

// lookup returns the session for the {id} route parameter.
func (s *Server) lookup(r *http.Request) (*gridSession, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound("grid", id)
	}
	s.mu.RLock()
	g, ok := s.grids[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound("grid", id)
	}
	return g, nil
}

// acquire looks up the session and locks it. A grid deleted while the
// request waited for the lock is reported as not found. On success the
// caller must unlock g.mu.
func (s *Server) acquire(r *http.Request) (*gridSession, error) {
	g, err := s.lookup(r)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	if g.deleted {
		g.mu.Unlock()
		return nil, notFound("grid", g.id)
	}
	g.rec.reset()
	return g, nil
}

func (s *Server) handleGetGrid(w http.ResponseWriter, r *http.Request) {
	g, err := s.acquire(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()
	writeJSON(w, http.StatusOK, g.view())
}

func (s *Server) handleDeleteGrid(w http.ResponseWriter, r *http.Request) {
	g, err := s.acquire(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	s.mu.Lock()
	delete(s.grids, g.id)
	s.mu.Unlock()
	g.deleted = true

	s.logger.Info("grid deleted", "id", g.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGridEvent(w http.ResponseWriter, r *http.Request) {
	var ev engine.Event
	if err := decode(w, r, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.acquire(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	var res engine.Result
	if g.resp != nil {
		res, err = g.resp.Handle(ev)
	} else {
		res, err = g.grid.Handle(ev)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Result: res, Grid: g.view()})
}

func (s *Server) handleGridWidth(w http.ResponseWriter, r *http.Request) {
	var req widthRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Width <= 0 {
		s.writeError(w, r, gerrors.New(gerrors.ErrCodeMissingContainerWidth, "width must be positive"))
		return
	}

	g, err := s.acquire(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	if g.resp != nil {
		if err := g.resp.SetWidth(req.Width); err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		g.grid.SetWidth(req.Width)
	}
	writeJSON(w, http.StatusOK, g.view())
}
