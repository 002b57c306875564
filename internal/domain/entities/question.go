package entities

// AcceptFunc decides whether a free-text answer is accepted.
type AcceptFunc func(input string) bool

// Question is a single generated quiz item. It is immutable once built.
type Question struct {
	Mode    Mode     `json:"mode"`
	Prompt  string   `json:"prompt"`
	Correct string   `json:"-"`
	Options []string `json:"options,omitempty"`
	Meta    string   `json:"meta"`

	accept AcceptFunc
}

// NewTypedQuestion creates a free-text question graded by accept.
func NewTypedQuestion(prompt, correct string, accept AcceptFunc) Question {
	return Question{
		Mode:    ModeType,
		Prompt:  prompt,
		Correct: correct,
		Meta:    ModeType.Label(),
		accept:  accept,
	}
}

// NewChoiceQuestion creates a multiple choice question.
func NewChoiceQuestion(mode Mode, prompt, correct string, options []string) Question {
	return Question{
		Mode:    mode,
		Prompt:  prompt,
		Correct: correct,
		Options: options,
		Meta:    mode.Label(),
	}
}

// Accepts grades an answer. Multiple choice answers must equal the correct
// option exactly; free-text answers go through the acceptance predicate.
func (q *Question) Accepts(input string) bool {
	if q.accept != nil {
		return q.accept(input)
	}
	return input == q.Correct
}

// IsMultipleChoice reports whether the question is answered by picking an option.
func (q *Question) IsMultipleChoice() bool {
	return q.Options != nil
}
