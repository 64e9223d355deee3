// Package session models drag and resize interactions on one grid.
//
// An interaction is a sequence of ticks bounded by a start and a stop. The
// [State] value keeps the last committed layout apart from the working
// layout that follows the pointer, so a stop that finds no valid placement
// can restore the committed layout unchanged.
//
// # Transitions
//
// Every transition is a pure function from a State (plus the grid
// environment) to the next State:
//
//	s := session.Idle(layout)
//	s, tick, err := session.DragStart(s, env, "a")
//	s, tick, err = session.DragMove(s, env, 110, 0)
//	s, out, err := session.DragStop(s, env)
//	layout = out.Layout
//
// Starting while an interaction is active fails with SESSION_ACTIVE; a move
// or stop without a start fails with SESSION_PROTOCOL.
package session
