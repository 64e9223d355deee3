// Package engine drives a grid from discrete interaction events.
//
// A [Grid] owns one committed layout and at most one active drag or resize
// session. Events are processed in arrival order; each one reads the current
// state, computes the next one with the pure transitions of the session
// package and replaces it before returning. A [Responsive] engine wraps a
// Grid with the breakpoint state machine and swaps the inner grid's layout
// when the container width crosses a threshold.
//
// Engines are not safe for concurrent use. Callers that share one across
// goroutines (the HTTP server does) serialize access themselves.
//
// # Notifications
//
// A [Listener] receives committed layout changes, interaction ticks,
// breakpoint transitions and width resolutions:
//
//	g, err := engine.NewGrid(env, layout, engine.WithListener(l))
//	res, err := g.Handle(engine.Event{ItemID: "a", Kind: engine.KindDrag, Phase: engine.PhaseStart})
//	res, err = g.Handle(engine.Event{ItemID: "a", Kind: engine.KindDrag, Phase: engine.PhaseMove, Delta: engine.Delta{DX: 110}})
//	res, err = g.Handle(engine.Event{ItemID: "a", Kind: engine.KindDrag, Phase: engine.PhaseStop})
package engine
