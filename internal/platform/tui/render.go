package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorStyles maps core.Color roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorFlyer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f5f5f5")),
	core.ColorBeak:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc850")),
	core.ColorPipe:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3cc878")),
	core.ColorPipeCap: lipgloss.NewStyle().Foreground(lipgloss.Color("#1e7846")),
	core.ColorGround:  lipgloss.NewStyle().Foreground(lipgloss.Color("#28aa5a")),
	core.ColorGrass:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1e7846")),
	core.ColorHill:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5a9bf0")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f5f5f5")).Bold(true),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc850")).Bold(true),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
