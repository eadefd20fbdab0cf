package bank

import "slices"

// Question is an immutable quiz question.
type Question struct {
	Text       string
	Answer     string
	Hint       string
	Difficulty Difficulty
}

// HasHint reports whether the question carries a static hint.
func (q Question) HasHint() bool {
	return q.Hint != ""
}

// Bank is a read-only source of questions keyed by category.
type Bank interface {
	// Categories returns category names in display order.
	Categories() []string

	// Get returns the questions of a category in bank order.
	// Unknown categories yield nil.
	Get(category string) []Question
}

// Filter returns the questions of category tagged with difficulty d.
func Filter(b Bank, category string, d Difficulty) []Question {
	var out []Question
	for _, q := range b.Get(category) {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Count returns the number of questions per difficulty for category.
func Count(b Bank, category string) map[Difficulty]int {
	counts := make(map[Difficulty]int, 3)
	for _, q := range b.Get(category) {
		counts[q.Difficulty]++
	}
	return counts
}

// StaticBank is an in-memory Bank built from a fixed set of categories.
type StaticBank struct {
	order []string
	byCat map[string][]Question
}

// Category is one named group of questions.
type Category struct {
	Name      string
	Questions []Question
}

// NewStatic builds a StaticBank. Category order is preserved.
func NewStatic(categories ...Category) *StaticBank {
	b := &StaticBank{byCat: make(map[string][]Question, len(categories))}
	for _, c := range categories {
		if _, dup := b.byCat[c.Name]; !dup {
			b.order = append(b.order, c.Name)
		}
		b.byCat[c.Name] = slices.Clone(c.Questions)
	}
	return b
}

func (b *StaticBank) Categories() []string {
	return slices.Clone(b.order)
}

func (b *StaticBank) Get(category string) []Question {
	return slices.Clone(b.byCat[category])
}
