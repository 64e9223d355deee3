// Package config loads and validates gridkit configuration.
//
// A configuration file describes one grid container: its column count,
// row height, spacing, compaction mode, collision policy and item
// capabilities. Responsive setups add per-breakpoint thresholds, column
// counts and spacing. Files may be TOML, YAML or JSON and are selected
// by extension.
//
// # Usage
//
//	opts, err := config.Load("grid.toml")
//	if err != nil {
//	    return err
//	}
//	env, err := opts.Env()
//
// Options read from other sources should go through
// [Options.ValidateAndSetDefaults] before use.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/responsive"
	"github.com/matzehuels/gridkit/pkg/session"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCols is the column count of a non-responsive grid.
	DefaultCols = 12

	// DefaultRowHeight is the row height in pixels.
	DefaultRowHeight = 150.0

	// DefaultContainerWidth is the container width used when no
	// measurement is available, e.g. for CLI previews.
	DefaultContainerWidth = 1200.0

	// DefaultCompactType is the compaction mode when none is configured.
	DefaultCompactType = "vertical"
)

// =============================================================================
// Options
// =============================================================================

// Options is the configuration surface of a grid container.
type Options struct {
	// Grid geometry
	Cols             int           `toml:"cols" yaml:"cols" json:"cols,omitempty"`
	RowHeight        float64       `toml:"row_height" yaml:"row_height" json:"row_height,omitempty"`
	RowHeightRatio   float64       `toml:"row_height_ratio" yaml:"row_height_ratio" json:"row_height_ratio,omitempty"` // row height as a fraction of the column width
	Margin           *grid.Spacing `toml:"margin" yaml:"margin" json:"margin,omitempty"`
	ContainerPadding *grid.Spacing `toml:"container_padding" yaml:"container_padding" json:"container_padding,omitempty"` // defaults to margin
	ContainerWidth   float64       `toml:"container_width" yaml:"container_width" json:"container_width,omitempty"`
	MaxRows          int           `toml:"max_rows" yaml:"max_rows" json:"max_rows,omitempty"`

	// Layout policy
	CompactType      string `toml:"compact_type" yaml:"compact_type" json:"compact_type,omitempty"`
	PreventCollision bool   `toml:"prevent_collision" yaml:"prevent_collision" json:"prevent_collision,omitempty"`
	AllowOverlap     bool   `toml:"allow_overlap" yaml:"allow_overlap" json:"allow_overlap,omitempty"`

	// Item capability defaults
	IsBounded     bool     `toml:"is_bounded" yaml:"is_bounded" json:"is_bounded,omitempty"`
	IsDraggable   *bool    `toml:"is_draggable" yaml:"is_draggable" json:"is_draggable,omitempty"`
	IsResizable   *bool    `toml:"is_resizable" yaml:"is_resizable" json:"is_resizable,omitempty"`
	ResizeHandles []string `toml:"resize_handles" yaml:"resize_handles" json:"resize_handles,omitempty"`

	// Responsive
	Breakpoints          map[string]int          `toml:"breakpoints" yaml:"breakpoints" json:"breakpoints,omitempty"`
	ColsPerBreakpoint    map[string]int          `toml:"cols_per_breakpoint" yaml:"cols_per_breakpoint" json:"cols_per_breakpoint,omitempty"`
	MarginPerBreakpoint  map[string]grid.Spacing `toml:"margin_per_breakpoint" yaml:"margin_per_breakpoint" json:"margin_per_breakpoint,omitempty"`
	PaddingPerBreakpoint map[string]grid.Spacing `toml:"padding_per_breakpoint" yaml:"padding_per_breakpoint" json:"padding_per_breakpoint,omitempty"`
	Breakpoint           string                  `toml:"breakpoint" yaml:"breakpoint" json:"breakpoint,omitempty"` // forces a breakpoint regardless of width

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" yaml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Load reads options from path and validates them. The format is chosen
// by extension: .toml, .yaml, .yml or .json.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "read config")
	}
	opts, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Options{}, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Parse decodes options in the format named by ext without validating them.
func Parse(data []byte, ext string) (Options, error) {
	var opts Options
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		err = toml.Unmarshal(data, &opts)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &opts)
	case "json":
		err = json.Unmarshal(data, &opts)
	default:
		return Options{}, gerrors.New(gerrors.ErrCodeInvalidFormat, "unsupported config format %q (must be toml, yaml or json)", ext)
	}
	if err != nil {
		return Options{}, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "parse %s config", strings.TrimPrefix(ext, "."))
	}
	return opts, nil
}

// ValidateAndSetDefaults checks field ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with their default values.
func (o *Options) SetDefaults() {
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.RowHeight == 0 && o.RowHeightRatio == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Margin == nil {
		m := responsive.DefaultMargin
		o.Margin = &m
	}
	if o.ContainerWidth == 0 {
		o.ContainerWidth = DefaultContainerWidth
	}
	if o.CompactType == "" {
		o.CompactType = DefaultCompactType
	}
	if o.IsDraggable == nil {
		o.IsDraggable = grid.Bool(true)
	}
	if o.IsResizable == nil {
		o.IsResizable = grid.Bool(true)
	}
	if len(o.Breakpoints) == 0 {
		o.Breakpoints = copyInts(responsive.DefaultBreakpoints)
		if len(o.ColsPerBreakpoint) == 0 {
			o.ColsPerBreakpoint = copyInts(responsive.DefaultCols)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks field ranges. Call SetDefaults first.
func (o *Options) Validate() error {
	switch {
	case o.Cols < 1:
		return invalid("cols must be positive, got %d", o.Cols)
	case o.RowHeight < 0:
		return invalid("row_height must not be negative, got %v", o.RowHeight)
	case o.RowHeightRatio < 0:
		return invalid("row_height_ratio must not be negative, got %v", o.RowHeightRatio)
	case o.RowHeight > 0 && o.RowHeightRatio > 0:
		return invalid("row_height and row_height_ratio are mutually exclusive")
	case o.ContainerWidth < 0:
		return invalid("container_width must not be negative, got %v", o.ContainerWidth)
	case o.MaxRows < 0:
		return invalid("max_rows must not be negative, got %d", o.MaxRows)
	}
	if err := validateSpacing("margin", *o.Margin); err != nil {
		return err
	}
	if o.ContainerPadding != nil {
		if err := validateSpacing("container_padding", *o.ContainerPadding); err != nil {
			return err
		}
	}
	if _, err := grid.ParseCompactType(o.CompactType); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "compact_type")
	}
	for _, h := range o.ResizeHandles {
		if !grid.ValidHandles[grid.Handle(h)] {
			return invalid("invalid resize handle %q (must be one of: s, w, e, n, sw, nw, se, ne)", h)
		}
	}
	return o.validateResponsive()
}

func (o *Options) validateResponsive() error {
	for name, cols := range o.ColsPerBreakpoint {
		if cols < 1 {
			return invalid("cols_per_breakpoint.%s must be positive, got %d", name, cols)
		}
	}
	for name, width := range o.Breakpoints {
		if width < 0 {
			return invalid("breakpoints.%s must not be negative, got %d", name, width)
		}
		if _, ok := o.ColsPerBreakpoint[name]; !ok {
			return gerrors.New(gerrors.ErrCodeMissingCols, "breakpoint %q has no entry in cols_per_breakpoint", name)
		}
	}
	if o.Breakpoint != "" {
		if _, ok := o.Breakpoints[o.Breakpoint]; !ok {
			return invalid("breakpoint %q is not defined in breakpoints", o.Breakpoint)
		}
	}
	for name, s := range o.MarginPerBreakpoint {
		if err := validateSpacing("margin_per_breakpoint."+name, s); err != nil {
			return err
		}
	}
	for name, s := range o.PaddingPerBreakpoint {
		if err := validateSpacing("padding_per_breakpoint."+name, s); err != nil {
			return err
		}
	}
	return nil
}

func validateSpacing(field string, s grid.Spacing) error {
	if s.X() < 0 || s.Y() < 0 {
		return invalid("%s must not be negative, got %v", field, s)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return gerrors.New(gerrors.ErrCodeInvalidConfig, format, args...)
}

func copyInts[M ~map[string]int](m M) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// Conversions
// =============================================================================

// GridOptions returns the options of a non-responsive grid.
func (o *Options) GridOptions() grid.Options {
	ct, _ := grid.ParseCompactType(o.CompactType)
	return grid.Options{
		Cols:             o.Cols,
		MaxRows:          o.MaxRows,
		CompactType:      ct,
		PreventCollision: o.PreventCollision,
		AllowOverlap:     o.AllowOverlap,
	}
}

// RowHeightValue returns the configured row height variant.
func (o *Options) RowHeightValue() grid.RowHeight {
	if o.RowHeightRatio > 0 {
		ratio := o.RowHeightRatio
		return grid.ComputedRowHeight(func(colWidth float64) float64 { return colWidth * ratio })
	}
	return grid.FixedRowHeight(o.RowHeight)
}

// PositionParams returns the pixel frame of a non-responsive grid whose
// container is width pixels wide. A width of zero uses ContainerWidth.
func (o *Options) PositionParams(width float64) grid.PositionParams {
	if width <= 0 {
		width = o.ContainerWidth
	}
	margin := *o.Margin
	padding := margin
	if o.ContainerPadding != nil {
		padding = *o.ContainerPadding
	}
	return grid.PositionParams{
		Cols:             o.Cols,
		Margin:           margin,
		ContainerPadding: padding,
		ContainerWidth:   width,
		RowHeight:        o.RowHeightValue(),
		MaxRows:          o.MaxRows,
	}
}

// Env returns the interaction environment of a non-responsive grid.
func (o *Options) Env() (session.Env, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return session.Env{}, err
	}
	handles := make([]grid.Handle, len(o.ResizeHandles))
	for i, h := range o.ResizeHandles {
		handles[i] = grid.Handle(h)
	}
	return session.Env{
		Options:       o.GridOptions(),
		Params:        o.PositionParams(0),
		IsDraggable:   *o.IsDraggable,
		IsResizable:   *o.IsResizable,
		IsBounded:     o.IsBounded,
		ResizeHandles: handles,
	}, nil
}

// Responsive returns the responsive resolver configuration.
func (o *Options) Responsive() (responsive.Config, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return responsive.Config{}, err
	}
	ct, _ := grid.ParseCompactType(o.CompactType)
	cfg := responsive.Config{
		Breakpoints:      responsive.Breakpoints(copyInts(o.Breakpoints)),
		Cols:             copyInts(o.ColsPerBreakpoint),
		Margin:           responsive.PerBreakpoint{All: o.Margin, ByName: o.MarginPerBreakpoint},
		ContainerPadding: responsive.PerBreakpoint{All: o.ContainerPadding, ByName: o.PaddingPerBreakpoint},
		CompactType:      ct,
		MaxRows:          o.MaxRows,
		PreventCollision: o.PreventCollision,
		AllowOverlap:     o.AllowOverlap,
		Breakpoint:       o.Breakpoint,
	}
	return cfg, nil
}
