package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroids-pilot/internal/core"
)

// roleColors maps cell roles to terminal colors. Ship and projectile use the
// game's own RGB values.
var roleColors = map[core.Color]lipgloss.TerminalColor{
	core.ColorDim:        lipgloss.Color("240"),
	core.ColorHUD:        lipgloss.Color("250"),
	core.ColorRadius:     lipgloss.Color("237"),
	core.ColorObstacle:   lipgloss.Color("208"),
	core.ColorProjectile: lipgloss.Color("#75B5EF"),
	core.ColorShip:       lipgloss.Color("#F08080"),
	core.ColorThreat:     lipgloss.Color("11"),
}

func cellStyle(fg, bg core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := roleColors[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := roleColors[bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
