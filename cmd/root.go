package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/store"
)

const defaultDebugLog = "quizbox-debug.log"

var rootCmd = &cobra.Command{
	Use:   "quizbox",
	Short: "Terminal trivia quiz",
	Long:  "Quizbox is a terminal trivia quiz with timed questions, streaks and high scores.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZBOX_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (overrides QUIZBOX_BANK env var)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep everything in memory; nothing is saved")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads KEY=value pairs from path into the environment. Variables
// that are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZBOX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveBank loads the --bank file, then QUIZBOX_BANK, then the embedded bank.
func resolveBank(cmd *cobra.Command) (*bank.StaticBank, error) {
	p, _ := cmd.Flags().GetString("bank")
	if p == "" {
		p = os.Getenv("QUIZBOX_BANK")
	}
	if p == "" {
		return bank.Default(), nil
	}
	return bank.LoadFile(p)
}

// setupLogging sends the log package to the QUIZBOX_DEBUG file, or discards
// it. The TUI owns stdout and stderr while it runs. The returned func closes
// the log file.
func setupLogging() (func(), error) {
	path, ok := os.LookupEnv("QUIZBOX_DEBUG")
	if !ok {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if path == "" || path == "1" || path == "true" {
		path = defaultDebugLog
	}
	f, err := tea.LogToFile(path, "quizbox")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}
