package config

import (
	"os"
	"path/filepath"
	"testing"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

const tomlConfig = `
cols = 6
row_height = 40
margin = [5, 8]
compact_type = "horizontal"
prevent_collision = true
is_resizable = false
resize_handles = ["se", "w"]

[breakpoints]
wide = 900
narrow = 0

[cols_per_breakpoint]
wide = 6
narrow = 2

[margin_per_breakpoint]
narrow = [2, 2]
`

const yamlConfig = `
cols: 6
row_height: 40
margin: [5, 8]
compact_type: horizontal
prevent_collision: true
is_resizable: false
resize_handles: [se, w]
breakpoints:
  wide: 900
  narrow: 0
cols_per_breakpoint:
  wide: 6
  narrow: 2
margin_per_breakpoint:
  narrow: [2, 2]
`

const jsonConfig = `{
  "cols": 6,
  "row_height": 40,
  "margin": [5, 8],
  "compact_type": "horizontal",
  "prevent_collision": true,
  "is_resizable": false,
  "resize_handles": ["se", "w"],
  "breakpoints": {"wide": 900, "narrow": 0},
  "cols_per_breakpoint": {"wide": 6, "narrow": 2},
  "margin_per_breakpoint": {"narrow": [2, 2]}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "grid.toml", tomlConfig},
		{"yaml", "grid.yaml", yamlConfig},
		{"yml", "grid.yml", yamlConfig},
		{"json", "grid.json", jsonConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if opts.Cols != 6 || opts.RowHeight != 40 {
				t.Errorf("cols/row_height = %d/%v, want 6/40", opts.Cols, opts.RowHeight)
			}
			if *opts.Margin != (grid.Spacing{5, 8}) {
				t.Errorf("margin = %v, want [5 8]", *opts.Margin)
			}
			if got := opts.GridOptions(); got.CompactType != grid.Horizontal || !got.PreventCollision {
				t.Errorf("GridOptions() = %+v", got)
			}
			if *opts.IsResizable || !*opts.IsDraggable {
				t.Errorf("is_resizable/is_draggable = %v/%v, want false/true", *opts.IsResizable, *opts.IsDraggable)
			}
			if opts.Breakpoints["wide"] != 900 || opts.ColsPerBreakpoint["narrow"] != 2 {
				t.Errorf("responsive maps = %v / %v", opts.Breakpoints, opts.ColsPerBreakpoint)
			}
			if opts.MarginPerBreakpoint["narrow"] != (grid.Spacing{2, 2}) {
				t.Errorf("margin_per_breakpoint = %v", opts.MarginPerBreakpoint)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    gerrors.Code
	}{
		{"unknown extension", "grid.ini", "cols=1", gerrors.ErrCodeInvalidFormat},
		{"malformed toml", "grid.toml", "cols = [", gerrors.ErrCodeInvalidFormat},
		{"malformed json", "grid.json", "{", gerrors.ErrCodeInvalidFormat},
		{"negative cols", "grid.json", `{"cols": -1}`, gerrors.ErrCodeInvalidConfig},
		{"bad compact type", "grid.json", `{"compact_type": "diagonal"}`, gerrors.ErrCodeInvalidConfig},
		{"bad handle", "grid.json", `{"resize_handles": ["x"]}`, gerrors.ErrCodeInvalidConfig},
		{"both row heights", "grid.json", `{"row_height": 10, "row_height_ratio": 0.5}`, gerrors.ErrCodeInvalidConfig},
		{"missing breakpoint cols", "grid.json", `{"breakpoints": {"a": 0}, "cols_per_breakpoint": {"b": 3}}`, gerrors.ErrCodeMissingCols},
		{"unknown forced breakpoint", "grid.json", `{"breakpoint": "huge"}`, gerrors.ErrCodeInvalidConfig},
		{"negative margin", "grid.json", `{"margin": [-1, 0]}`, gerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !gerrors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Cols != DefaultCols || opts.RowHeight != DefaultRowHeight {
		t.Errorf("cols/row_height = %d/%v", opts.Cols, opts.RowHeight)
	}
	if got := opts.GridOptions().CompactType; got != grid.Vertical {
		t.Errorf("default compact type = %v, want vertical", got)
	}
	if opts.Breakpoints["lg"] != 1200 || opts.ColsPerBreakpoint["xxs"] != 2 {
		t.Errorf("default breakpoints not applied: %v %v", opts.Breakpoints, opts.ColsPerBreakpoint)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestCompactTypeNone(t *testing.T) {
	opts := Options{CompactType: "none"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if got := opts.GridOptions().CompactType; got != grid.NoCompaction {
		t.Errorf("compact type = %v, want none", got)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Cols: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := *opts.Margin
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if *opts.Margin != first || opts.Cols != 4 {
		t.Error("second call changed options")
	}
}

func TestPositionParams(t *testing.T) {
	pad := grid.Spacing{0, 0}
	opts := Options{Cols: 12, RowHeight: 30, ContainerPadding: &pad, ContainerWidth: 1310}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	p := opts.PositionParams(0)
	if p.ContainerWidth != 1310 || p.ContainerPadding != pad || p.Margin != (grid.Spacing{10, 10}) {
		t.Errorf("PositionParams(0) = %+v", p)
	}
	if got := grid.ColumnWidth(p); got != 100 {
		t.Errorf("ColumnWidth = %v, want 100", got)
	}
	if got := opts.PositionParams(610).ContainerWidth; got != 610 {
		t.Errorf("explicit width = %v, want 610", got)
	}
}

func TestRowHeightRatio(t *testing.T) {
	opts := Options{Cols: 2, RowHeightRatio: 0.5, ContainerWidth: 230}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	rh := opts.RowHeightValue()
	if !rh.IsComputed() {
		t.Fatal("ratio should produce a computed row height")
	}
	if got := rh.Resolve(100); got != 50 {
		t.Errorf("Resolve(100) = %v, want 50", got)
	}
}

func TestEnv(t *testing.T) {
	opts := Options{Cols: 4, IsBounded: true, ResizeHandles: []string{"e", "s"}}
	env, err := opts.Env()
	if err != nil {
		t.Fatal(err)
	}
	if env.Options.Cols != 4 || env.Params.Cols != 4 {
		t.Errorf("cols = %d/%d, want 4/4", env.Options.Cols, env.Params.Cols)
	}
	if !env.IsDraggable || !env.IsResizable || !env.IsBounded {
		t.Errorf("capabilities = %+v", env)
	}
	if len(env.ResizeHandles) != 2 || env.ResizeHandles[0] != grid.HandleE {
		t.Errorf("handles = %v", env.ResizeHandles)
	}
}

func TestResponsive(t *testing.T) {
	opts, err := Parse([]byte(yamlConfig), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := opts.Responsive()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Cols["wide"] != 6 || cfg.Breakpoints["narrow"] != 0 {
		t.Errorf("breakpoints/cols = %v / %v", cfg.Breakpoints, cfg.Cols)
	}
	margin, padding := cfg.Spacing("narrow")
	if margin != (grid.Spacing{2, 2}) || padding != margin {
		t.Errorf("narrow spacing = %v/%v, want [2 2]/[2 2]", margin, padding)
	}
	margin, _ = cfg.Spacing("wide")
	if margin != (grid.Spacing{5, 8}) {
		t.Errorf("wide margin = %v, want [5 8]", margin)
	}
	if cfg.CompactType != grid.Horizontal || !cfg.PreventCollision {
		t.Errorf("policy = %+v", cfg)
	}
}
