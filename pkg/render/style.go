package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	svg "github.com/ajstarks/svgo"
)

// Style defines the visual appearance of a rendered layout.
type Style interface {
	// RenderDefs writes <defs> and <style> content.
	RenderDefs(canvas *svg.SVG)
	// RenderBackground writes the container frame.
	RenderBackground(canvas *svg.SVG, width, height int)
	// RenderBlock writes the shape of one item.
	RenderBlock(canvas *svg.SVG, b Block)
	// RenderText writes the label of one item.
	RenderText(canvas *svg.SVG, b Block)
	// RenderPlaceholder writes the drop target of an active interaction.
	RenderPlaceholder(canvas *svg.SVG, b Block)
}

// Block is one item in pixel space.
type Block struct {
	ID         string // Item id
	Label      string // Display text
	X, Y, W, H int    // Position and dimensions
	Z          int    // Stacking order
	Static     bool   // Fixed item
	Color      string // Fill color
}

// Center returns the center of the block.
func (b Block) Center() (cx, cy int) {
	return b.X + b.W/2, b.Y + b.H/2
}

// palette fills movable items, cycling by layout index.
var palette = []string{
	"#4e9f9a", "#5b8fd9", "#9a7ad1", "#e0a24a",
	"#5fae6e", "#d9668a", "#c9a86a", "#7aa7c7",
}

const (
	staticColor = "#a0a0a0"
	frameColor  = "#f6f6f6"
	textColor   = "#1e1e1e"
	cornerRound = 4
)

const simpleCSS = `
.item { stroke: #00000030; stroke-width: 1; }
.item.static { stroke-dasharray: 4 2; }
.placeholder { fill: #b0b0b0; fill-opacity: 0.35; stroke: #808080; stroke-dasharray: 6 3; }
.label { font-family: sans-serif; dominant-baseline: middle; text-anchor: middle; }
`

// Simple draws flat rounded rectangles with centered labels.
type Simple struct{}

func (Simple) RenderDefs(canvas *svg.SVG) {
	canvas.Def()
	canvas.Style("text/css", simpleCSS)
	canvas.DefEnd()
}

func (Simple) RenderBackground(canvas *svg.SVG, width, height int) {
	canvas.Rect(0, 0, width, height, `class="frame"`, attr("fill", frameColor))
}

func (Simple) RenderBlock(canvas *svg.SVG, b Block) {
	class := "item"
	if b.Static {
		class += " static"
	}
	canvas.Roundrect(b.X, b.Y, b.W, b.H, cornerRound, cornerRound,
		attr("id", "item-"+b.ID), attr("class", class), attr("fill", b.Color))
}

func (Simple) RenderText(canvas *svg.SVG, b Block) {
	cx, cy := b.Center()
	size := FontSize(b)
	canvas.Text(cx, cy, TruncateLabel(b, size),
		`class="label"`, fmt.Sprintf(`font-size="%.1f"`, size), attr("fill", textColor))
}

func (Simple) RenderPlaceholder(canvas *svg.SVG, b Block) {
	canvas.Roundrect(b.X, b.Y, b.W, b.H, cornerRound, cornerRound, `class="placeholder"`)
}

// attr formats an escaped name="value" pair. svgo passes arguments that
// contain "=" through as raw attributes.
func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, EscapeXML(value))
}

// =============================================================================
// Text
// =============================================================================

const (
	fontHeightRatio = 0.4
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 20.0
)

// FontSize picks a label size that fits the block.
func FontSize(b Block) float64 {
	n := max(1, len([]rune(b.Label)))
	byHeight := float64(b.H) * fontHeightRatio
	byWidth := (float64(b.W) * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label to what fits at the given font size.
func TruncateLabel(b Block, fontSize float64) string {
	label := []rune(b.Label)
	maxChars := max(int(float64(b.W)*fontWidthRatio/(fontSize*fontCharWidth)), 3)
	if len(label) <= maxChars {
		return b.Label
	}
	return string(label[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
