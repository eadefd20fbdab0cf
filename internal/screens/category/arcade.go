package category

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/stats"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const titleFull = ` ██████╗ ██╗   ██╗██╗███████╗██████╗  ██████╗ ██╗  ██╗
██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔═══██╗╚██╗██╔╝
██║   ██║██║   ██║██║  ███╔╝ ██████╔╝██║   ██║ ╚███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝  ██╔══██╗██║   ██║ ██╔██╗
╚██████╔╝╚██████╔╝██║███████╗██████╔╝╚██████╔╝██╔╝ ██╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const titleCompact = "Q · U · I · Z · B · O · X"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	art := titleFull
	if compact || cw < lipgloss.Width(titleFull) {
		art = titleCompact
	}
	return theme.Centered(lipgloss.NewStyle(), cw, style.Render(art))
}

func renderStatsBar(l stats.Lifetime, cw int, compact bool) string {
	quizzes := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	accuracy := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	pct := int(l.Accuracy()*100 + 0.5)
	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			quizzes.Render(fmt.Sprintf("▣%d", l.TotalQuizzes)),
			accuracy.Render(fmt.Sprintf("✓%d%%", pct)),
			streak.Render(fmt.Sprintf("★%d", l.BestStreak)))
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			quizzes.Render(fmt.Sprintf("▣ %d QUIZZES", l.TotalQuizzes)),
			accuracy.Render(fmt.Sprintf("✓ %d%% CORRECT", pct)),
			streak.Render(fmt.Sprintf("★ BEST STREAK %d", l.BestStreak)))
	}
	return components.StatsBar(line, cw)
}
