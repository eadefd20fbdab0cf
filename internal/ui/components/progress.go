package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Countdown renders remaining/limit seconds as a draining bar. The bar turns
// amber at half time and red in the last third.
func Countdown(remaining, limit, width int) string {
	if limit <= 0 {
		return ""
	}
	label := fmt.Sprintf("%2ds", remaining)
	barWidth := max(width-lipgloss.Width(label)-2, 4)

	frac := float64(remaining) / float64(limit)
	filled := min(max(int(float64(barWidth)*frac), 0), barWidth)

	return lipgloss.NewStyle().Background(countdownColor(frac)).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		"  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)
}

func countdownColor(frac float64) color.Color {
	switch {
	case frac <= 1.0/3:
		return theme.Error
	case frac <= 0.5:
		return theme.Accent
	default:
		return theme.Secondary
	}
}

// Progress renders "done of total" as a row of pips, e.g. ●●●○○.
func Progress(done, total int) string {
	if total <= 0 {
		return ""
	}
	done = min(max(done, 0), total)
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("●", done)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("○", total-done))
}
