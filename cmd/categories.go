package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List question categories with counts per difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBank(cmd)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-28s  %6s  %6s  %6s\n", "Category", "Easy", "Medium", "Hard")
		fmt.Fprintln(out, strings.Repeat("─", 54))
		for _, name := range b.Categories() {
			counts := bank.Count(b, name)
			fmt.Fprintf(out, "%-28s  %6d  %6d  %6d\n",
				truncate(name, 28), counts[bank.Easy], counts[bank.Medium], counts[bank.Hard])
		}
		return nil
	},
}
