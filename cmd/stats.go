package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics and high scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		lt := d.records.Lifetime()
		fmt.Fprintf(out, "Quizzes finished:   %d\n", lt.TotalQuizzes)
		fmt.Fprintf(out, "Questions answered: %d\n", lt.TotalAnswered)
		fmt.Fprintf(out, "Correct answers:    %d\n", lt.TotalCorrect)
		fmt.Fprintf(out, "Accuracy:           %.0f%%\n", lt.Accuracy()*100)
		fmt.Fprintf(out, "Best streak:        %d\n", lt.BestStreak)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "High Scores")
		fmt.Fprintln(out, strings.Repeat("─", 48))
		fmt.Fprintf(out, "%-28s  %-8s  %s\n", "Category", "Level", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 48))
		for _, hs := range d.records.HighScores(ctx) {
			fmt.Fprintf(out, "%-28s  %-8s  %d\n", truncate(hs.Category, 28), hs.Difficulty, hs.Score)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
