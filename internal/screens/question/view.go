package question

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

func (s *QuestionScreen) View(width, height int) string {
	snap := s.quiz.Snapshot()
	s.sync(snap)
	if snap.Question == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No question open.")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(snap, cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	if snap.TimerRunning || snap.TimedOut {
		b.WriteString(components.Countdown(snap.RemainingSeconds, snap.TimeLimit, cw))
		b.WriteString("\n\n")
	}

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	b.WriteString(components.Card(questionStyle.Render(snap.Question.Text), cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle(), cw, "Answer: "+s.input.View()))

	switch {
	case snap.HintLoading:
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Hint, cw, "Thinking of a hint..."))
	case snap.Hint != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Hint, cw, "Hint: "+snap.Hint))
	}

	if snap.Phase == quiz.PhaseReview {
		b.WriteString("\n\n")
		b.WriteString(renderFeedback(snap, cw))
	}

	if s.confirmQuit {
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Notice, cw, "Quit this quiz? Nothing will be saved. (y/n)"))
	} else if snap.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Notice, cw, snap.Notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuestionScreen) renderInfoLine(snap quiz.Snapshot, cw int) string {
	done := snap.Index
	if snap.Answered {
		done++
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Q %d/%d", snap.Number(), snap.Total))
	right := components.Progress(done, snap.Total)

	pad := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderFeedback(snap quiz.Snapshot, cw int) string {
	lines := []string{}
	switch {
	case snap.Correct:
		lines = append(lines, theme.Centered(theme.Correct, cw, snap.Feedback))
	default:
		lines = append(lines, theme.Centered(theme.Incorrect, cw, snap.Feedback))
	}
	if !snap.Correct && snap.RevealedAnswer != "" {
		lines = append(lines, theme.Centered(theme.Body, cw, "Correct answer: "+snap.RevealedAnswer))
	}
	if snap.Streak > 1 {
		lines = append(lines, theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent), cw,
			fmt.Sprintf("%d in a row!", snap.Streak)))
	}
	return strings.Join(lines, "\n")
}
