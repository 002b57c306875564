package service

import (
	"strings"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// AnswerValidator validates typed answers.
type AnswerValidator struct{}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Validate checks if the user's answer matches the correct answer,
// ignoring surrounding whitespace and letter case.
func (v *AnswerValidator) Validate(userAnswer, correctAnswer string) bool {
	return strings.EqualFold(v.normalize(userAnswer), v.normalize(correctAnswer))
}

// Acceptor returns the acceptance predicate for a typed question.
func (v *AnswerValidator) Acceptor(correctAnswer string) entities.AcceptFunc {
	return func(input string) bool {
		return v.Validate(input, correctAnswer)
	}
}

func (v *AnswerValidator) normalize(s string) string {
	return strings.TrimSpace(s)
}
