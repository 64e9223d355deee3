package layoutio

import (
	"path/filepath"
	"slices"
	"strings"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/responsive"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", gerrors.New(gerrors.ErrCodeInvalidFormat, "unsupported document format %q (must be json or yaml)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Document is the persisted state of one grid container.
type Document struct {
	// Cols is the column count the layouts were saved for. Zero skips the
	// right-edge bounds check.
	Cols int `json:"cols,omitempty" yaml:"cols,omitempty"`

	Layout   grid.Layout        `json:"layout" yaml:"layout"`
	Layouts  responsive.Layouts `json:"layouts,omitempty" yaml:"layouts,omitempty"`
	Declared []grid.Declared    `json:"items,omitempty" yaml:"items,omitempty"`
}

// Validate checks every layout and the declared set.
func (d Document) Validate() error {
	if d.Cols < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "document: negative cols %d", d.Cols)
	}
	if err := grid.ValidateLayout(d.Layout, d.Cols, "layout"); err != nil {
		return err
	}
	for _, name := range sortedNames(d.Layouts) {
		// Breakpoint layouts may use a different column count.
		if err := grid.ValidateLayout(d.Layouts[name], 0, "layouts."+name); err != nil {
			return err
		}
	}
	if d.Declared != nil {
		return grid.ValidateDeclared(d.Declared)
	}
	return nil
}

// DeclaredOrIDs returns the declared set, or one declaration per layout
// item when the document has none.
func (d Document) DeclaredOrIDs() []grid.Declared {
	if d.Declared != nil {
		return d.Declared
	}
	return grid.DeclaredIDs(d.Layout.IDs()...)
}

func sortedNames(l responsive.Layouts) []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
