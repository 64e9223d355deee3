package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorBlue  = lipgloss.Color("75")  // Light blue - commands
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// itemPalette colors movable items in previews, cycling by layout index.
var itemPalette = []lipgloss.Color{
	lipgloss.Color("36"),
	lipgloss.Color("75"),
	lipgloss.Color("141"),
	lipgloss.Color("214"),
	lipgloss.Color("35"),
	lipgloss.Color("204"),
	lipgloss.Color("179"),
	lipgloss.Color("110"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleStatic  = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines. Commands point it at stderr so that
// documents written to stdout stay pipeable.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer {
	return printer{w: w}
}

func (p printer) status(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) {
	p.status(iconSuccess, styleIconSuccess, format, args...)
}

func (p printer) failure(format string, args ...any) {
	p.status(iconError, styleIconError, format, args...)
}

func (p printer) info(format string, args ...any) {
	p.status(iconInfo, styleIconInfo, format, args...)
}

// detail prints an indented, dimmed line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints the path of a written file.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

var styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
