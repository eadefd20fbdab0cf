package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

const bannerArt = `
 ╔═╗ ╦ ╦ ╦ ╔═╗ ╔╗  ╔═╗ ═╗ ╦
 ║ ║ ║ ║ ║ ╔═╝ ╠╩╗ ║ ║ ╔╩╦╝
 ╚═╩═╚═╝ ╩ ╚═╝ ╚═╝ ╚═╝ ╩ ╚═`

const bannerCompact = "Q U I Z B O X"

// RenderBanner returns the QUIZBOX banner, or a one-line fallback for
// terminals narrower than 32 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
