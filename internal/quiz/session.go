// Package quiz runs a multiple-choice quiz. Sessions live in memory only.
package quiz

import "github.com/julianstephens/hearth/internal/models"

// Session tracks progress through a fixed list of questions.
type Session struct {
	questions []models.QuizQuestion
	index     int
	score     int
	selected  int // -1 when nothing is selected
}

// NewSession starts a quiz over questions.
func NewSession(questions []models.QuizQuestion) *Session {
	return &Session{questions: questions, selected: -1}
}

// Total returns the number of questions.
func (s *Session) Total() int {
	return len(s.questions)
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int {
	return s.index
}

// Current returns the question being answered. ok is false once finished.
func (s *Session) Current() (q models.QuizQuestion, ok bool) {
	if s.IsFinished() {
		return models.QuizQuestion{}, false
	}
	return s.questions[s.index], true
}

// Select picks an option for the current question. Out-of-range choices are ignored.
func (s *Session) Select(option int) bool {
	q, ok := s.Current()
	if !ok || option < 0 || option >= len(q.Options) {
		return false
	}
	s.selected = option
	return true
}

// Selected returns the chosen option, or -1.
func (s *Session) Selected() int {
	return s.selected
}

// Confirm scores the selected option and advances. Without a selection it does nothing.
func (s *Session) Confirm() (correct, ok bool) {
	q, live := s.Current()
	if !live || s.selected < 0 {
		return false, false
	}
	correct = s.selected == q.AnswerIndex
	if correct {
		s.score++
	}
	s.index++
	s.selected = -1
	return correct, true
}

// Reset returns to the first question with a zero score.
func (s *Session) Reset() {
	s.index = 0
	s.score = 0
	s.selected = -1
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.index == len(s.questions)-1
}

// IsFinished reports whether every question has been answered.
func (s *Session) IsFinished() bool {
	return s.index >= len(s.questions)
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	return s.score
}
