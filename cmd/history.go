package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/screens/history"
	"github.com/abhisek/quizbox/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.HistoryRepo().RecentSessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No finished quizzes yet.")
			return nil
		}

		fmt.Println(strings.Repeat("─", 64))
		for _, rec := range sessions {
			fmt.Println(history.FormatRecord(rec))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
}
