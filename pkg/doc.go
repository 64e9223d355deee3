// Package pkg provides the core libraries of gridkit, a grid layout engine.
//
// # Overview
//
// gridkit places rectangular items on a grid with a fixed number of columns.
// It handles drag-to-move, resize, collision resolution, gravity compaction
// and responsive breakpoints. Rendering, pointer capture and persistence
// belong to the host; the libraries exchange plain values with it.
//
// The pkg directory is organized leaf-first:
//
//  1. [errors] - Error codes shared by every layer
//  2. [grid] - Items, layouts and the pure layout operations
//  3. [responsive] - Breakpoint selection and per-breakpoint layouts
//  4. [session] - Drag and resize interactions as explicit state values
//  5. [engine] - Stateful engines that drive sessions and notify a listener
//
// # Architecture
//
// The typical flow of one interaction:
//
//	Pointer events (host)
//	         ↓
//	    [engine] Grid.Handle (event protocol, notifications)
//	         ↓
//	    [session] DragMove / ResizeMove (pure transitions)
//	         ↓
//	    [grid] MoveElement / ResizeElement / Compact
//	         ↓
//	    Listener.OnInteraction / OnLayoutChange (host renders)
//
// # Quick Start
//
// Compact a layout and move an item:
//
//	import "github.com/matzehuels/gridkit/pkg/grid"
//
//	opts := grid.Options{Cols: 12, CompactType: grid.Vertical}
//	l := grid.Compact(layout, opts)
//	l, res := grid.MoveElement(l, "chart", 4, 0, true, opts)
//	if res == grid.Moved {
//	    l = grid.Compact(l, opts)
//	}
//
// Drive a drag through an engine:
//
//	env, _ := opts.Env() // config.Options
//	g, _ := engine.NewGrid(env, layout, engine.WithListener(ui))
//	g.Handle(engine.Event{ItemID: "chart", Kind: engine.KindDrag, Phase: engine.PhaseStart})
//	g.Handle(engine.Event{ItemID: "chart", Kind: engine.KindDrag, Phase: engine.PhaseMove,
//	    Delta: engine.Delta{DX: 120}})
//	g.Handle(engine.Event{ItemID: "chart", Kind: engine.KindDrag, Phase: engine.PhaseStop})
//
// # Supporting Packages
//
// [config] - Grid options loaded from TOML, YAML or JSON with defaults and
// validation. Converts to [grid.Options], [session.Env] and responsive
// configurations.
//
// [layoutio] - Layout documents (flat layout, per-breakpoint layouts and the
// declared item set) in JSON or YAML.
//
// [render] - SVG drawings of layouts at their pixel positions.
//
// [cache] - Memoization for the HTTP API: null and in-memory TTL caches.
//
// [observability] - Hook registry for engine, cache and HTTP events with no-op
// defaults.
//
// [buildinfo] - Version information stamped at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                # All tests
//	go test ./pkg/grid/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/errors
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/grid
// [responsive]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/responsive
// [session]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/session
// [engine]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/engine
// [config]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/config
// [layoutio]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/layoutio
// [render]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/buildinfo
// [grid.Options]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/grid#Options
// [session.Env]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/session#Env
package pkg
