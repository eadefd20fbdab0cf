package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/hints"
	"github.com/abhisek/quizbox/internal/llm"
	"github.com/abhisek/quizbox/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz (same as running quizbox with no command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	d, err := openDeps(ctx, cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := quiz.Options{
		Bank:    d.bank,
		Records: d.records,
		LoadErr: d.loadErr,
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, d.events())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Only built-in hints will be available.")
	} else {
		hcfg := hints.DefaultConfig()
		hcfg.Timeout = cfg.Timeout
		opts.Hints = hints.NewService(provider, hcfg)
		fmt.Fprintf(os.Stderr, "Hints from %s (%s)\n", cfg.Provider, cfg.Model())
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	return app.Run(ctx, app.Options{
		Machine: quiz.New(opts),
		Bank:    d.bank,
		History: d.history(),
	})
}
