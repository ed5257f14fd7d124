package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fractal/pkg/tree"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success, true
	colorRed   = lipgloss.Color("167") // Soft red - errors, false
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

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

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleTrue  = lipgloss.NewStyle().Foreground(colorGreen)
	styleFalse = lipgloss.NewStyle().Foreground(colorRed)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(16)
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
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printKeyBool prints a labeled yes/no value.
func printKeyBool(w io.Writer, key string, v bool) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+formatBool(v))
}

func formatBool(v bool) string {
	if v {
		return styleTrue.Render("yes")
	}
	return styleFalse.Render("no")
}

// =============================================================================
// Classification Display
// =============================================================================

// printClassification prints every measurement of a tree, one per line.
func printClassification(w io.Writer, c tree.Classification) {
	rank := StyleDim.Render("undefined")
	if c.Ranked {
		rank = StyleNumber.Render(strconv.Itoa(c.Rank))
	}
	printKeyValue(w, "json", c.JSON)
	printKeyValue(w, "rank", rank)
	printKeyValue(w, "max depth", StyleNumber.Render(strconv.Itoa(c.MaxDepth)))
	printKeyValue(w, "vertices", StyleNumber.Render(strconv.Itoa(c.Size)))
	printKeyBool(w, "semi-fractal", c.SemiFractal)
	printKeyBool(w, "C(W) = W", c.CutFixedPoint)
	printKeyBool(w, "fractal", c.Fractal)
}
