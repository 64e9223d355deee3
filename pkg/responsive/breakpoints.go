package responsive

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Breakpoints maps a breakpoint name to its minimum container width in
// pixels.
type Breakpoints map[string]int

// Layouts maps a breakpoint name to its layout.
type Layouts map[string]grid.Layout

// DefaultBreakpoints are the breakpoint thresholds used when none are
// configured.
var DefaultBreakpoints = Breakpoints{"lg": 1200, "md": 996, "sm": 768, "xs": 480, "xxs": 0}

// DefaultCols are the per-breakpoint column counts used when none are
// configured.
var DefaultCols = map[string]int{"lg": 12, "md": 10, "sm": 6, "xs": 4, "xxs": 2}

// Clone returns a deep copy of the layouts.
func (l Layouts) Clone() Layouts {
	if l == nil {
		return nil
	}
	out := make(Layouts, len(l))
	for name, layout := range l {
		out[name] = layout.Clone()
	}
	return out
}

// SortBreakpoints returns the breakpoint names ordered by ascending width.
// Equal widths are ordered by name.
func SortBreakpoints(bp Breakpoints) []string {
	names := slices.Collect(maps.Keys(bp))
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(bp[a], bp[b]), cmp.Compare(a, b))
	})
	return names
}

// BreakpointForWidth returns the widest breakpoint whose threshold is at
// most width. When width is below every threshold the narrowest breakpoint
// is returned. An empty set yields "".
func BreakpointForWidth(bp Breakpoints, width float64) string {
	sorted := SortBreakpoints(bp)
	if len(sorted) == 0 {
		return ""
	}
	match := sorted[0]
	for _, name := range sorted[1:] {
		if float64(bp[name]) <= width {
			match = name
		}
	}
	return match
}

// ColsForBreakpoint returns the column count for the named breakpoint. A
// missing or non-positive entry is a configuration error.
func ColsForBreakpoint(name string, cols map[string]int) (int, error) {
	n, ok := cols[name]
	if !ok {
		return 0, gerrors.New(gerrors.ErrCodeMissingCols, "no column count for breakpoint %q", name)
	}
	if n <= 0 {
		return 0, gerrors.New(gerrors.ErrCodeMissingCols, "column count for breakpoint %q must be positive, got %d", name, n)
	}
	return n, nil
}

// fingerprint identifies a breakpoint and column configuration so a state
// can tell when either map was replaced.
func fingerprint(bp Breakpoints, cols map[string]int) string {
	var b strings.Builder
	for _, name := range SortBreakpoints(bp) {
		fmt.Fprintf(&b, "%s=%d;", name, bp[name])
	}
	b.WriteByte('|')
	names := slices.Sorted(maps.Keys(cols))
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%d;", name, cols[name])
	}
	return b.String()
}
