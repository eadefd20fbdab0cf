// Package results shows the outcome of a finished session.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ResultsScreen displays PhaseFinished.
type ResultsScreen struct {
	quiz   screen.Quiz
	offset int // first review row shown
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func New(q screen.Quiz) *ResultsScreen {
	return &ResultsScreen{quiz: q}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Categories"},
		{Key: "P", Description: "Play again"},
		{Key: "S", Description: "Settings"},
		{Key: "↑↓", Description: "Scroll"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		s.quiz.Dispatch(quiz.BackToCategories{})
	case "s", "S":
		s.quiz.Dispatch(quiz.OpenSettings{})
	case "p", "P":
		s.playAgain()
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset = min(s.offset+1, max(len(s.quiz.Snapshot().Review)-1, 0))
	}
	return s, nil
}

// playAgain starts a new session with the same category and difficulty.
func (s *ResultsScreen) playAgain() {
	snap := s.quiz.Snapshot()
	steps := []quiz.Action{
		quiz.BackToCategories{},
		quiz.SelectCategory{Category: snap.Category},
		quiz.SelectDifficulty{Difficulty: snap.Difficulty},
		quiz.StartSession{},
	}
	for _, a := range steps {
		if _, err := s.quiz.Dispatch(a); err != nil {
			return
		}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	snap := s.quiz.Snapshot()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Centered(theme.Title, cw, "Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Subtitle, cw, fmt.Sprintf("%s · %s", snap.Category, snap.Difficulty)))
	b.WriteString("\n\n")

	pct := 0.0
	if snap.Total > 0 {
		pct = float64(snap.Score) / float64(snap.Total) * 100
	}
	score := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(pct)).
		Render(fmt.Sprintf("%d / %d  (%.0f%%)", snap.Score, snap.Total, pct))
	b.WriteString(components.StatsBar(score, cw))
	b.WriteString("\n")

	if snap.NewHighScore {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight), cw, "★ NEW HIGH SCORE ★"))
	} else {
		b.WriteString(theme.Centered(theme.Hint, cw, fmt.Sprintf("High score: %d / %d", snap.HighScore, snap.Total)))
	}
	b.WriteString("\n\n")

	b.WriteString(s.renderReview(snap.Review, cw, max(height-14, 3)))

	if snap.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Notice, cw, snap.Notice))
	}

	return components.CabinetFrame(b.String(), width, height)
}

func (s *ResultsScreen) renderReview(items []quiz.ReviewItem, cw, rows int) string {
	if len(items) == 0 {
		return ""
	}
	start := min(s.offset, len(items)-1)
	end := min(start+rows, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, renderItem(i+1, items[i], cw-4))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func renderItem(n int, it quiz.ReviewItem, width int) string {
	var mark string
	switch {
	case it.Correct:
		mark = theme.Correct.Render("✓")
	case it.TimedOut:
		mark = lipgloss.NewStyle().Foreground(theme.Warning).Render("⏱")
	default:
		mark = theme.Incorrect.Render("✗")
	}

	line := fmt.Sprintf("%s %2d. %s", mark, n, truncate(it.Question, width-20))
	if it.Correct {
		return line
	}
	given := it.Submitted
	if given == "" {
		given = "-"
	}
	return line + "\n" + theme.Hint.Render(fmt.Sprintf("       you: %s   answer: %s", given, it.Answer))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func scoreColor(pct float64) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
