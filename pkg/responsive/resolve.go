package responsive

import (
	"slices"

	"github.com/matzehuels/gridkit/pkg/grid"
)

// ResolveLayout returns the layout for the target breakpoint. An existing
// layout is returned as a clone. Otherwise the layout is inherited from the
// nearest wider breakpoint that has one, then from last, then from the
// nearest narrower one; with nothing to inherit the result is empty.
//
// Inherited layouts are re-bounded to opts.Cols and compacted unless
// opts.AllowOverlap is set.
func ResolveLayout(layouts Layouts, bp Breakpoints, target, last string, opts grid.Options) grid.Layout {
	if l, ok := layouts[target]; ok {
		return l.Clone()
	}

	found, ok := inherit(layouts, bp, target, last)
	if !ok {
		return grid.Layout{}
	}
	return compactUnlessOverlap(grid.CorrectBounds(found, opts), opts)
}

func compactUnlessOverlap(l grid.Layout, opts grid.Options) grid.Layout {
	if opts.AllowOverlap {
		return l
	}
	return grid.Compact(l, opts)
}

func inherit(layouts Layouts, bp Breakpoints, target, last string) (grid.Layout, bool) {
	sorted := SortBreakpoints(bp)
	at := slices.Index(sorted, target)

	if at >= 0 {
		for _, name := range sorted[at+1:] {
			if l, ok := layouts[name]; ok {
				return l, true
			}
		}
	}
	if l, ok := layouts[last]; ok && last != "" {
		return l, true
	}
	if at >= 0 {
		for i := at - 1; i >= 0; i-- {
			if l, ok := layouts[sorted[i]]; ok {
				return l, true
			}
		}
	}
	return nil, false
}
