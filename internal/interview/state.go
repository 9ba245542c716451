// Package interview runs a mock interview: it serves questions, scores each
// answer or skip exactly once and produces the final report.
package interview

import (
	"errors"
	"time"
)

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Step is the state of the current question while in progress.
type Step int

const (
	StepAsking    Step = iota // Question shown or spoken
	StepListening             // Capturing the answer
	StepScored                // Answer scored, feedback pending
	StepSkipped               // Question skipped
)

func (s Step) String() string {
	switch s {
	case StepAsking:
		return "asking"
	case StepListening:
		return "listening"
	case StepScored:
		return "scored"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

var (
	ErrNotStarted     = errors.New("interview has not started")
	ErrAlreadyStarted = errors.New("interview already started")
	ErrCompleted      = errors.New("interview already completed")
	ErrInProgress     = errors.New("interview still in progress")
)

// AnswerEvent is an answer or skip for one question index.
type AnswerEvent struct {
	QuestionIndex int
	Text          string
	Skipped       bool
	// Timestamp defaults to the session clock when zero.
	Timestamp time.Time
}

// Answered builds an answer event.
func Answered(index int, text string) AnswerEvent {
	return AnswerEvent{QuestionIndex: index, Text: text}
}

// Skipped builds a skip event.
func Skipped(index int) AnswerEvent {
	return AnswerEvent{QuestionIndex: index, Skipped: true}
}
