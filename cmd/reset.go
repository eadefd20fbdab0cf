package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/stats"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all high scores and lifetime stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Erase all high scores and stats?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return nil
		}

		d, err := openDeps(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		err = resetStats(d.records)
		if cerr := d.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All stats reset.")
		return nil
	},
}

// resetStats zeroes every counter and high score and waits for the write.
// Every write failure seen on the way is returned.
func resetStats(records *stats.Manager) error {
	var writeErr error
	records.OnWriteError(func(err error) { writeErr = errors.Join(writeErr, err) })
	records.Reset()
	if err := records.Close(); err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("reset stats: %w", writeErr)
	}
	return nil
}

// confirm asks a y/N question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
