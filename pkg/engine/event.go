package engine

import (
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/responsive"
	"github.com/matzehuels/gridkit/pkg/session"
)

// Kind is the interaction an event belongs to.
type Kind string

const (
	KindDrag   Kind = "drag"
	KindResize Kind = "resize"
)

// Phase is an event's position in its interaction.
type Phase string

const (
	PhaseStart  Phase = "start"
	PhaseMove   Phase = "move"
	PhaseStop   Phase = "stop"
	PhaseCancel Phase = "cancel"
)

// Delta is a pointer movement in pixels since the previous tick.
type Delta struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Size is an absolute pixel size reported by a resize tick.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event is one tick from the pointer capture layer. Drag moves carry a
// Delta, resize moves a Size; Handle selects the resize handle on start.
type Event struct {
	ItemID string      `json:"itemId"`
	Kind   Kind        `json:"kind"`
	Phase  Phase       `json:"phase"`
	Delta  Delta       `json:"delta,omitzero"`
	Size   Size        `json:"size,omitzero"`
	Handle grid.Handle `json:"handle,omitempty"`
}

// Result is what handling an event produced: a tick for starts and moves,
// an outcome for stops and cancels.
type Result struct {
	Tick    *session.Tick    `json:"tick,omitempty"`
	Outcome *session.Outcome `json:"outcome,omitempty"`
}

// LayoutChange is a committed layout. Layouts and Breakpoint are only set
// by responsive engines.
type LayoutChange struct {
	Layout     grid.Layout        `json:"layout"`
	Layouts    responsive.Layouts `json:"layouts,omitempty"`
	Breakpoint string             `json:"breakpoint,omitempty"`
}

// Listener is the rendering consumer of an engine.
type Listener interface {
	OnLayoutChange(ch LayoutChange)
	OnInteraction(ev Event, tick session.Tick)
	OnBreakpointChange(name string, cols int)
	OnWidthChange(wc responsive.WidthChange)
}

// NopListener ignores every notification. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnLayoutChange(LayoutChange)          {}
func (NopListener) OnInteraction(Event, session.Tick)    {}
func (NopListener) OnBreakpointChange(string, int)       {}
func (NopListener) OnWidthChange(responsive.WidthChange) {}
