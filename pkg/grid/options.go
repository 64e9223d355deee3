package grid

import (
	"fmt"
)

// CompactType selects the axis items settle along.
type CompactType string

const (
	// Vertical settles items toward row 0.
	Vertical CompactType = "vertical"
	// Horizontal settles items toward column 0.
	Horizontal CompactType = "horizontal"
	// NoCompaction leaves items in place; overlaps are still pushed down.
	NoCompaction CompactType = ""
)

// ParseCompactType accepts "vertical", "horizontal" and "none" (or empty).
func ParseCompactType(s string) (CompactType, error) {
	switch s {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	case "", "none", "null":
		return NoCompaction, nil
	}
	return NoCompaction, fmt.Errorf("invalid compact type: %q (must be one of: vertical, horizontal, none)", s)
}

// String returns the compact type name, "none" for NoCompaction.
func (c CompactType) String() string {
	if c == NoCompaction {
		return "none"
	}
	return string(c)
}

// Options is the grid-level policy shared by compaction, moves, resizes and
// synchronization.
type Options struct {
	Cols             int
	MaxRows          int // 0 means unbounded
	CompactType      CompactType
	PreventCollision bool
	AllowOverlap     bool
}

func (o Options) boundedRows() bool { return o.MaxRows > 0 }
