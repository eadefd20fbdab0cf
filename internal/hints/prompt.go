package hints

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/bank"
)

const systemPrompt = `You write hints for a general-knowledge quiz played in a terminal. A hint nudges the player toward the answer without giving it away.`

func buildUserMessage(q bank.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Answer (never reveal it): %s\n", q.Answer)
	fmt.Fprintf(&b, "Difficulty: %s\n", q.Difficulty)

	b.WriteString(`
Instructions:
1. Write exactly one sentence of at most 20 words.
2. Do not include the answer, any part of it, or an obvious spelling of it.
3. Prefer a related fact, a category or a first-letter clue on Hard questions.
4. Plain ASCII text only.`)

	return b.String()
}
