package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridkit/pkg/buildinfo"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/layoutio"
)

const twoItems = `{"layout":[{"i":"a","x":0,"y":0,"w":2,"h":1},{"i":"b","x":2,"y":0,"w":2,"h":1}]}`

// execute runs the root command with isolated config and captured output.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return run(context.Background(), stdin, args...)
}

// executeContext is execute for commands that run until ctx is done. It
// does not touch the environment, so it may run in a goroutine.
func executeContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return run(ctx, "", args...)
}

func run(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func decodeDoc(t *testing.T, s string) layoutio.Document {
	t.Helper()
	doc, err := layoutio.Read(strings.NewReader(s), layoutio.FormatJSON)
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, s)
	}
	return doc
}

func TestCompactCommand(t *testing.T) {
	stdout, _, err := execute(t, `{"layout":[{"i":"a","x":0,"y":3,"w":2,"h":1}]}`, "compact")
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	doc := decodeDoc(t, stdout)
	if doc.Cols != 12 {
		t.Errorf("cols = %d, want 12", doc.Cols)
	}
	if a, _ := doc.Layout.Get("a"); a.Y != 0 {
		t.Errorf("a.y = %d, want 0", a.Y)
	}
}

func TestCompactNone(t *testing.T) {
	stdout, _, err := execute(t, `{"layout":[{"i":"a","x":0,"y":3,"w":2,"h":1}]}`, "compact", "--compact-type", "none")
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if a, _ := decodeDoc(t, stdout).Layout.Get("a"); a.Y != 3 {
		t.Errorf("a.y = %d, want 3", a.Y)
	}
}

func TestMoveCommand(t *testing.T) {
	stdout, stderr, err := execute(t, twoItems, "move", "--id", "a", "--x", "2", "--y", "0")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !strings.Contains(stderr, "move a: moved") {
		t.Errorf("stderr = %q, want move summary", stderr)
	}
	l := decodeDoc(t, stdout).Layout
	a, _ := l.Get("a")
	b, _ := l.Get("b")
	if a.X != 2 || a.Y != 0 {
		t.Errorf("a = (%d,%d), want (2,0)", a.X, a.Y)
	}
	if b.Y != 1 {
		t.Errorf("b.y = %d, want 1", b.Y)
	}
}

func TestMovePreventCollision(t *testing.T) {
	stdout, stderr, err := execute(t, twoItems, "move", "--id", "a", "--x", "2", "--y", "0", "--prevent-collision")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !strings.Contains(stderr, "rejected") {
		t.Errorf("stderr = %q, want rejected", stderr)
	}
	if a, _ := decodeDoc(t, stdout).Layout.Get("a"); a.X != 0 {
		t.Errorf("a.x = %d, want 0", a.X)
	}
}

func TestMoveUnknownItem(t *testing.T) {
	layout := `{"layout":[{"i":"alpha","x":0,"y":0,"w":1,"h":1},{"i":"beta","x":1,"y":0,"w":1,"h":1}]}`
	_, _, err := execute(t, layout, "move", "--id", "alp", "--x", "3")
	if !gerrors.Is(err, gerrors.ErrCodeItemNotFound) {
		t.Fatalf("err = %v, want ITEM_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "did you mean alpha") {
		t.Errorf("err = %q, want suggestion", err)
	}
}

func TestResizeCommand(t *testing.T) {
	stdout, stderr, err := execute(t, twoItems, "resize", "--id", "a", "--w", "4", "--h", "2")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if !strings.Contains(stderr, "resized") {
		t.Errorf("stderr = %q, want resized", stderr)
	}
	if a, _ := decodeDoc(t, stdout).Layout.Get("a"); a.W != 4 || a.H != 2 {
		t.Errorf("a = %dx%d, want 4x2", a.W, a.H)
	}
}

func TestSyncCommand(t *testing.T) {
	stdout, stderr, err := execute(t, twoItems, "sync", "--items", "a,c")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !strings.Contains(stderr, "1 added, 1 dropped") {
		t.Errorf("stderr = %q, want sync summary", stderr)
	}
	ids := decodeDoc(t, stdout).Layout.IDs()
	if strings.Join(ids, ",") != "a,c" {
		t.Errorf("ids = %v, want [a c]", ids)
	}
}

func TestResolveCommand(t *testing.T) {
	in := `{"layouts":{"lg":[{"i":"a","x":0,"y":0,"w":2,"h":1}]}}`
	stdout, stderr, err := execute(t, in, "resolve", "--width", "500")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(stderr, "xs") {
		t.Errorf("stderr = %q, want breakpoint xs", stderr)
	}
	doc := decodeDoc(t, stdout)
	if doc.Cols != 4 {
		t.Errorf("cols = %d, want 4", doc.Cols)
	}
	if _, ok := doc.Layouts["xs"]; !ok {
		t.Errorf("layouts = %v, want xs entry", doc.Layouts)
	}
	if !doc.Layout.Equal(doc.Layouts["xs"]) {
		t.Errorf("layout %v differs from layouts.xs %v", doc.Layout, doc.Layouts["xs"])
	}
}

func TestResolveUnknownBreakpoint(t *testing.T) {
	_, _, err := execute(t, `{"layout":[]}`, "resolve", "--breakpoint", "huge")
	if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		code  gerrors.Code
	}{
		{name: "valid", input: twoItems},
		{
			name:  "duplicate",
			input: `{"layout":[{"i":"a","x":0,"y":0,"w":1,"h":1},{"i":"a","x":1,"y":0,"w":1,"h":1}]}`,
			code:  gerrors.ErrCodeDuplicateID,
		},
		{
			name:  "out of bounds",
			input: twoItems,
			args:  []string{"--cols", "3"},
			code:  gerrors.ErrCodeOutOfBounds,
		},
		{name: "malformed", input: `{"layout":`, code: gerrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.input, append([]string{"validate"}, tt.args...)...)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				if !strings.Contains(stderr, "Layout is valid") {
					t.Errorf("stderr = %q", stderr)
				}
				return
			}
			if got := gerrors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.yaml")
	stdout, stderr, err := execute(t, twoItems, "compact", "-o", out)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Wrote 2 items") {
		t.Errorf("stderr = %q", stderr)
	}
	doc, err := layoutio.Import(out)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(doc.Layout) != 2 {
		t.Errorf("items = %d, want 2", len(doc.Layout))
	}
}

func TestYAMLInput(t *testing.T) {
	in := "layout:\n  - {i: a, x: 0, y: 2, w: 1, h: 1}\n"
	stdout, _, err := execute(t, in, "compact", "--format", "yaml")
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if !strings.Contains(stdout, "layout:") {
		t.Errorf("stdout = %q, want yaml", stdout)
	}
	doc, err := layoutio.Read(strings.NewReader(stdout), layoutio.FormatYAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a, _ := doc.Layout.Get("a"); a.Y != 0 {
		t.Errorf("a.y = %d, want 0", a.Y)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "grid.toml")
	if err := os.WriteFile(cfg, []byte("cols = 6\ncompact_type = \"horizontal\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"cols = 6", `compact_type = "horizontal"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}

	in := `{"layout":[{"i":"a","x":4,"y":0,"w":1,"h":1}]}`
	stdout, _, err = execute(t, in, "--config", cfg, "compact")
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	doc := decodeDoc(t, stdout)
	if doc.Cols != 6 {
		t.Errorf("cols = %d, want 6", doc.Cols)
	}
	if a, _ := doc.Layout.Get("a"); a.X != 0 {
		t.Errorf("a.x = %d, want 0", a.X)
	}
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "grid.toml")
	if err := os.WriteFile(cfg, []byte("cols = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, twoItems, "--config", cfg, "compact")
	if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestConfigPathCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), filepath.Join(appName, configFile)) {
		t.Errorf("config path = %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(stdout) != buildinfo.String() {
		t.Errorf("version = %q, want %q", stdout, buildinfo.String())
	}
}

func TestPreviewCommand(t *testing.T) {
	stdout, _, err := execute(t, twoItems, "preview", "--cell-width", "4")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, want := range []string{" a", " b", "2 items · 12 cols · 1 rows"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("preview missing %q:\n%s", want, stdout)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(stdout, appName) {
		t.Error("bash completion does not mention the binary")
	}
}

func TestPreviewSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.svg")
	_, stderr, err := execute(t, twoItems, "preview", "--svg", path)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(stderr, "Rendered SVG") {
		t.Errorf("stderr = %q", stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`id="item-a"`, `id="item-b"`, "</svg>"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestPreviewBreakpoint(t *testing.T) {
	in := `{"layouts":{"lg":[{"i":"a","x":0,"y":0,"w":2,"h":1}]}}`
	stdout, _, err := execute(t, in, "preview", "--breakpoint", "sm")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(stdout, "1 items · 6 cols") {
		t.Errorf("preview = %q, want sm columns", stdout)
	}
}
