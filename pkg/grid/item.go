package grid

import (
	"slices"
)

// Handle is a resize handle direction.
type Handle string

// Resize handle directions: compass points of the item's bounding box.
const (
	HandleS  Handle = "s"
	HandleW  Handle = "w"
	HandleE  Handle = "e"
	HandleN  Handle = "n"
	HandleSW Handle = "sw"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleNE Handle = "ne"
)

// ValidHandles is the set of supported resize handles.
var ValidHandles = map[Handle]bool{
	HandleS: true, HandleW: true, HandleE: true, HandleN: true,
	HandleSW: true, HandleNW: true, HandleSE: true, HandleNE: true,
}

// West reports whether the handle drags the left edge.
func (h Handle) West() bool { return h == HandleW || h == HandleSW || h == HandleNW }

// North reports whether the handle drags the top edge.
func (h Handle) North() bool { return h == HandleN || h == HandleNW || h == HandleNE }

// Item is one placed rectangle on the grid. Coordinates and spans are in
// grid units.
//
// Zero values for MinW and MinH mean 1; zero values for MaxW and MaxH mean
// unbounded. The pointer overrides are nil when the container-level setting
// applies.
type Item struct {
	ID string `json:"i" yaml:"i"`
	X  int    `json:"x" yaml:"x"`
	Y  int    `json:"y" yaml:"y"`
	W  int    `json:"w" yaml:"w"`
	H  int    `json:"h" yaml:"h"`
	Z  int    `json:"z,omitempty" yaml:"z,omitempty"`

	MinW int `json:"minW,omitempty" yaml:"minW,omitempty"`
	MinH int `json:"minH,omitempty" yaml:"minH,omitempty"`
	MaxW int `json:"maxW,omitempty" yaml:"maxW,omitempty"`
	MaxH int `json:"maxH,omitempty" yaml:"maxH,omitempty"`

	Static        bool     `json:"static,omitempty" yaml:"static,omitempty"`
	IsDraggable   *bool    `json:"isDraggable,omitempty" yaml:"isDraggable,omitempty"`
	IsResizable   *bool    `json:"isResizable,omitempty" yaml:"isResizable,omitempty"`
	IsBounded     *bool    `json:"isBounded,omitempty" yaml:"isBounded,omitempty"`
	ResizeHandles []Handle `json:"resizeHandles,omitempty" yaml:"resizeHandles,omitempty"`
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.IsDraggable = cloneBool(it.IsDraggable)
	out.IsResizable = cloneBool(it.IsResizable)
	out.IsBounded = cloneBool(it.IsBounded)
	out.ResizeHandles = slices.Clone(it.ResizeHandles)
	return out
}

// Draggable resolves whether the item can be dragged given the container
// default. An explicit override wins; otherwise static items are fixed.
func (it Item) Draggable(containerDefault bool) bool {
	if it.IsDraggable != nil {
		return *it.IsDraggable
	}
	return !it.Static && containerDefault
}

// Resizable resolves whether the item can be resized given the container
// default.
func (it Item) Resizable(containerDefault bool) bool {
	if it.IsResizable != nil {
		return *it.IsResizable
	}
	return !it.Static && containerDefault
}

// Bounded resolves whether drags of this item are clamped to the container.
// Only draggable items can be bounded, and an explicit false opts out.
func (it Item) Bounded(containerDefault, draggable bool) bool {
	return draggable && containerDefault && (it.IsBounded == nil || *it.IsBounded)
}

// Handles returns the item's resize handles, falling back to the container
// default.
func (it Item) Handles(containerDefault []Handle) []Handle {
	if len(it.ResizeHandles) > 0 {
		return it.ResizeHandles
	}
	return containerDefault
}

// Bool returns a pointer to b, for the optional item overrides.
func Bool(b bool) *bool { return &b }

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Layout is an ordered collection of items. Order carries no placement
// meaning but is the tie-break for sorting and compaction.
type Layout []Item

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	for i, it := range l {
		out[i] = it.Clone()
	}
	return out
}

// Index returns the position of the item with the given id, or -1.
func (l Layout) Index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the item with the given id.
func (l Layout) Get(id string) (Item, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Item{}, false
}

// IDs returns the item ids in layout order.
func (l Layout) IDs() []string {
	ids := make([]string, len(l))
	for i := range l {
		ids[i] = l[i].ID
	}
	return ids
}

// Statics returns the static items, in layout order.
func (l Layout) Statics() Layout {
	var out Layout
	for _, it := range l {
		if it.Static {
			out = append(out, it)
		}
	}
	return out
}

// Equal reports whether two layouts hold the same items in the same order.
func (l Layout) Equal(o Layout) bool {
	return slices.EqualFunc(l, o, itemEqual)
}

func itemEqual(a, b Item) bool {
	return a.ID == b.ID && a.X == b.X && a.Y == b.Y && a.W == b.W && a.H == b.H && a.Z == b.Z &&
		a.MinW == b.MinW && a.MinH == b.MinH && a.MaxW == b.MaxW && a.MaxH == b.MaxH &&
		a.Static == b.Static &&
		boolPtrEqual(a.IsDraggable, b.IsDraggable) &&
		boolPtrEqual(a.IsResizable, b.IsResizable) &&
		boolPtrEqual(a.IsBounded, b.IsBounded) &&
		slices.Equal(a.ResizeHandles, b.ResizeHandles)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Bottom returns the first row below every item (the maximum y+h), or 0 for
// an empty layout.
func Bottom(l Layout) int {
	var max int
	for _, it := range l {
		if b := it.Y + it.H; b > max {
			max = b
		}
	}
	return max
}
