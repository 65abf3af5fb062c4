package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette shared by all commands. The inspect TUI reuses the raw
// colors for its list styles.
var (
	colorCyan  = lipgloss.Color("36")  // headings, numbers
	colorGreen = lipgloss.Color("35")  // success, cache hits
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for counts in summaries.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// printSuccess prints a checkmarked status line.
func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// printInfo prints an informational status line.
func printInfo(format string, args ...any) {
	fmt.Println(styleNote.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value in a fixed-width key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printGraphSummary prints the filtered graph's node and edge counts and
// whether it was served from the cache.
func printGraphSummary(nodes, edges int, cached bool) {
	origin := styleNote.Render("fresh")
	if cached {
		origin = styleOK.Render("cached")
	}
	counts := fmt.Sprintf("%d nodes · %d edges · ", nodes, edges)
	fmt.Println("  " + StyleDim.Render(counts) + origin)
}
