package bank

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the difficulty tag of a question.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// difficultyLimits is the per-question time limit table.
var difficultyLimits = [...]int{
	Easy:   15,
	Medium: 10,
	Hard:   7,
}

// Difficulties returns all difficulties in display order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// TimeLimitSeconds returns the countdown length for questions of this difficulty.
func (d Difficulty) TimeLimitSeconds() int {
	if !d.Valid() {
		return 0
	}
	return difficultyLimits[d]
}

// TimeLimit is TimeLimitSeconds as a duration.
func (d Difficulty) TimeLimit() time.Duration {
	return time.Duration(d.TimeLimitSeconds()) * time.Second
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}
