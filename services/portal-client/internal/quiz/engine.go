// Package quiz drives one quiz attempt as a small state machine:
// InProgress -> Answered -> InProgress ... -> Finished.
package quiz

import "math"

// Question is one multiple-choice question. CorrectAnswer is the index into
// Options of the designated correct option.
type Question struct {
	ID            int
	Text          string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

// noSelection marks the cleared selection state
const noSelection = -1

// PassThreshold returns the minimum passing score for a quiz of
// questionCount questions: 70 percent, rounded up. A 3-question quiz
// therefore requires all 3 correct (ceil(2.1) == 3).
func PassThreshold(questionCount int) int {
	return int(math.Ceil(float64(questionCount) * 0.7))
}

// Engine runs a single quiz attempt. State is ephemeral: it lives for one
// attempt and Retry discards it. Persistence happens only through the
// injected completion callback, invoked once per passing attempt.
type Engine struct {
	questions []Question
	onPass    func()

	index        int
	selected     int
	answered     bool
	finished     bool
	score        int
	passReported bool
}

// NewEngine creates an engine for an ordered question list. Questions are
// presented strictly in the given order, there is no shuffling. onPass may
// be nil when no completion side effect is wanted.
func NewEngine(questions []Question, onPass func()) *Engine {
	return &Engine{
		questions: questions,
		onPass:    onPass,
		selected:  noSelection,
	}
}

// Len returns the number of questions
func (e *Engine) Len() int {
	return len(e.questions)
}

// QuestionIndex returns the zero-based index of the current question
func (e *Engine) QuestionIndex() int {
	return e.index
}

// Current returns the current question, or nil when the quiz is finished
func (e *Engine) Current() *Question {
	if e.finished || e.index >= len(e.questions) {
		return nil
	}
	return &e.questions[e.index]
}

// Score returns the number of correctly answered questions so far
func (e *Engine) Score() int {
	return e.score
}

// Answered reports whether the current question has been answered
func (e *Engine) Answered() bool {
	return e.answered
}

// Selected returns the currently selected option index and whether one is selected
func (e *Engine) Selected() (int, bool) {
	if e.selected == noSelection {
		return 0, false
	}
	return e.selected, true
}

// Finished reports whether the attempt has reached its terminal state
func (e *Engine) Finished() bool {
	return e.finished
}

// SelectOption selects an option for the current question. Once the question
// is answered the options are locked, so late or repeated selections are
// ignored rather than rejected.
func (e *Engine) SelectOption(option int) {
	if e.answered || e.finished {
		return
	}
	if option < 0 || option >= len(e.questions[e.index].Options) {
		return
	}
	e.selected = option
}

// SubmitAnswer scores the selected option against the current question.
// It reports whether the selection was correct; ok is false when there is
// no selection to submit or the question was already answered.
func (e *Engine) SubmitAnswer() (correct, ok bool) {
	if e.answered || e.finished || e.selected == noSelection {
		return false, false
	}

	e.answered = true
	correct = e.selected == e.questions[e.index].CorrectAnswer
	if correct {
		e.score++
	}
	return correct, true
}

// Next advances past an answered question, clearing the selection. When no
// questions remain the attempt finishes; a passing score fires the
// completion callback, exactly once for this attempt.
func (e *Engine) Next() {
	if !e.answered || e.finished {
		return
	}

	if e.index < len(e.questions)-1 {
		e.index++
		e.selected = noSelection
		e.answered = false
		return
	}

	e.finished = true
	if e.Passed() && !e.passReported {
		e.passReported = true
		if e.onPass != nil {
			e.onPass()
		}
	}
}

// Passed reports whether the score meets the pass threshold. The result is
// only meaningful once the attempt is finished.
func (e *Engine) Passed() bool {
	return e.score >= PassThreshold(len(e.questions))
}

// Retry resets the ephemeral attempt state back to question zero. Progress
// already persisted by a previous passing attempt is untouched; a fresh
// attempt may fire the completion callback again.
func (e *Engine) Retry() {
	if !e.finished {
		return
	}

	e.index = 0
	e.selected = noSelection
	e.answered = false
	e.finished = false
	e.score = 0
	e.passReported = false
}
