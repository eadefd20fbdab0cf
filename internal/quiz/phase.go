package quiz

// Phase is the screen-level state of the machine.
type Phase int

const (
	PhaseCategorySelect   Phase = iota // Choosing a category
	PhaseDifficultySelect              // Choosing a difficulty for the chosen category
	PhaseQuestion                      // Current question is open for an answer
	PhaseReview                        // Current question is locked in, feedback shown
	PhaseFinished                      // Results of the last session
	PhaseSettings                      // Timer setting and stats reset
)

func (p Phase) String() string {
	switch p {
	case PhaseCategorySelect:
		return "CategorySelect"
	case PhaseDifficultySelect:
		return "DifficultySelect"
	case PhaseQuestion:
		return "Question"
	case PhaseReview:
		return "Review"
	case PhaseFinished:
		return "Finished"
	case PhaseSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// InSession reports whether a session is running in phase p.
func (p Phase) InSession() bool {
	return p == PhaseQuestion || p == PhaseReview
}
