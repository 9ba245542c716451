package report

import "fmt"

// DuplicateEventError is returned when a question index is scored twice.
// The first score is kept.
type DuplicateEventError struct {
	QuestionIndex int
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("question %d already has a scored answer", e.QuestionIndex)
}

// IndexOutOfRangeError is returned for a question index outside [0, Total).
type IndexOutOfRangeError struct {
	QuestionIndex int
	Total         int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("question index %d out of range [0, %d)", e.QuestionIndex, e.Total)
}

// InvalidScoreError is returned for a score outside [0, 10].
type InvalidScoreError struct {
	QuestionIndex int
	Score         float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("question %d: score %v outside [0, 10]", e.QuestionIndex, e.Score)
}
