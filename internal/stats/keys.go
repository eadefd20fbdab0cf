package stats

import (
	"fmt"
	"strconv"

	"github.com/abhisek/quizbox/internal/bank"
)

// Durable store keys.
const (
	KeyTimerEnabled  = "settings_timer_enabled"
	KeyTotalQuizzes  = "stats_total_quizzes"
	KeyTotalAnswered = "stats_total_answered"
	KeyTotalCorrect  = "stats_total_correct"
	KeyBestStreak    = "stats_best_streak"
)

// HighScoreKey returns the store key of the high score for a pair.
func HighScoreKey(category string, d bank.Difficulty) string {
	return fmt.Sprintf("highScore_%s_%s", category, d)
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q", s)
	}
}

func decodeCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
