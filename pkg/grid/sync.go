package grid

import (
	"slices"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
)

// Declared is one item the host requires to be present in the layout. W and
// H are the default span for a newly placed item (zero means 1). Template,
// when set, is the explicit placement used instead of the bin-fill; its ID
// is ignored.
type Declared struct {
	ID       string `json:"i" yaml:"i"`
	W        int    `json:"w,omitempty" yaml:"w,omitempty"`
	H        int    `json:"h,omitempty" yaml:"h,omitempty"`
	Template *Item  `json:"template,omitempty" yaml:"template,omitempty"`
}

// DeclaredIDs returns a declared set with default spans for the given ids.
func DeclaredIDs(ids ...string) []Declared {
	out := make([]Declared, len(ids))
	for i, id := range ids {
		out[i] = Declared{ID: id}
	}
	return out
}

// Synchronize reconciles a layout with the declared item set. The result
// holds exactly the declared items, in declared order: items already in
// initial keep their placement, new items are placed from their template or
// bin-filled left to right in rows starting below the existing items.
// Undeclared items are dropped.
//
// Malformed input (duplicate or empty ids, spans below 1, negative
// coordinates) is reported as a validation error and never repaired. The
// result is bounds-corrected and compacted unless opts.AllowOverlap is set.
func Synchronize(initial Layout, declared []Declared, opts Options) (Layout, error) {
	if err := ValidateLayout(initial, 0, "initial layout"); err != nil {
		return nil, err
	}
	if err := ValidateDeclared(declared); err != nil {
		return nil, err
	}

	out := make(Layout, 0, len(declared))
	var fresh []int
	for _, d := range declared {
		if it, ok := initial.Get(d.ID); ok {
			out = append(out, it.Clone())
			continue
		}
		if d.Template != nil {
			it := d.Template.Clone()
			it.ID = d.ID
			out = append(out, it)
			continue
		}
		fresh = append(fresh, len(out))
		out = append(out, Item{ID: d.ID, W: max(d.W, 1), H: max(d.H, 1)})
	}

	if len(fresh) > 0 {
		bottom := 0
		for i := range out {
			if !slices.Contains(fresh, i) {
				bottom = max(bottom, out[i].Y+out[i].H)
			}
		}
		binFill(out, fresh, bottom, opts.Cols)
	}

	out = CorrectBounds(out, opts)
	if err := ValidateLayout(out, opts.Cols, "synchronized layout"); err != nil {
		return nil, err
	}
	if !opts.AllowOverlap {
		out = Compact(out, opts)
	}
	return out, nil
}

// binFill places the indexed items left to right starting at row y,
// wrapping to a new row when the next item does not fit.
func binFill(l Layout, idx []int, y, cols int) {
	x, rowH := 0, 0
	for _, i := range idx {
		it := &l[i]
		if cols > 0 {
			it.W = min(it.W, cols)
			if x > 0 && x+it.W > cols {
				y += rowH
				x, rowH = 0, 0
			}
		}
		it.X, it.Y = x, y
		x += it.W
		rowH = max(rowH, it.H)
	}
}

// ValidateDeclared checks that declared ids are valid and unique and that
// default spans and templates are usable.
func ValidateDeclared(declared []Declared) error {
	seen := make(map[string]bool, len(declared))
	for _, d := range declared {
		if err := gerrors.ValidateItemID(d.ID); err != nil {
			return gerrors.Wrap(gerrors.ErrCodeInvalidID, err, "declared items")
		}
		if seen[d.ID] {
			return gerrors.New(gerrors.ErrCodeDuplicateID, "declared items: duplicate item id %q", d.ID)
		}
		seen[d.ID] = true
		if d.W < 0 || d.H < 0 {
			return gerrors.New(gerrors.ErrCodeInvalidSpan, "declared items: item %q: negative default span %dx%d", d.ID, d.W, d.H)
		}
		if t := d.Template; t != nil {
			if t.W < 1 || t.H < 1 {
				return gerrors.New(gerrors.ErrCodeInvalidSpan, "declared items: item %q: template span %dx%d must be at least 1x1", d.ID, t.W, t.H)
			}
			if t.X < 0 || t.Y < 0 {
				return gerrors.New(gerrors.ErrCodeOutOfBounds, "declared items: item %q: template position (%d,%d) is negative", d.ID, t.X, t.Y)
			}
		}
	}
	return nil
}

// ValidateLayout checks that every id is valid and unique, every span is at
// least 1x1 and every item lies inside the grid. cols <= 0 skips the right
// edge check. context prefixes the error message.
func ValidateLayout(l Layout, cols int, context string) error {
	seen := make(map[string]bool, len(l))
	for _, it := range l {
		if err := gerrors.ValidateItemID(it.ID); err != nil {
			return gerrors.Wrap(gerrors.ErrCodeInvalidID, err, "%s", context)
		}
		if seen[it.ID] {
			return gerrors.New(gerrors.ErrCodeDuplicateID, "%s: duplicate item id %q", context, it.ID)
		}
		seen[it.ID] = true
		if it.W < 1 || it.H < 1 {
			return gerrors.New(gerrors.ErrCodeInvalidSpan, "%s: item %q: span %dx%d must be at least 1x1", context, it.ID, it.W, it.H)
		}
		if it.X < 0 || it.Y < 0 {
			return gerrors.New(gerrors.ErrCodeOutOfBounds, "%s: item %q: position (%d,%d) is negative", context, it.ID, it.X, it.Y)
		}
		if cols > 0 && it.X+it.W > cols {
			return gerrors.New(gerrors.ErrCodeOutOfBounds, "%s: item %q: x+w=%d exceeds %d columns", context, it.ID, it.X+it.W, cols)
		}
	}
	return nil
}
