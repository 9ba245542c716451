// Package report aggregates per-question scores into the final interview
// report: overall score, grade, category breakdown and written guidance.
package report

import (
	"slices"

	"github.com/abhisek/mockview/internal/question"
)

// Grade is the letter grade of an interview.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// gradeBands is evaluated high to low; the first floor met wins.
var gradeBands = []struct {
	floor int
	grade Grade
}{
	{90, GradeAPlus},
	{80, GradeA},
	{70, GradeBPlus},
	{60, GradeB},
	{50, GradeCPlus},
	{40, GradeC},
	{30, GradeD},
}

// GradeFor maps an overall score in [0, 100] to a grade.
func GradeFor(overall int) Grade {
	for _, b := range gradeBands {
		if overall >= b.floor {
			return b.grade
		}
	}
	return GradeF
}

// Readiness is the placement verdict.
type Readiness string

const (
	ReadinessReady     Readiness = "Ready"
	ReadinessNeedsWork Readiness = "Needs Work"
	ReadinessNotReady  Readiness = "Not Ready"
)

// ReadinessFor maps an overall score to a placement verdict.
func ReadinessFor(overall int) Readiness {
	switch {
	case overall >= 70:
		return ReadinessReady
	case overall >= 50:
		return ReadinessNeedsWork
	default:
		return ReadinessNotReady
	}
}

// ScoredAnswer is the score of one question. Skipped answers score 0.
type ScoredAnswer struct {
	QuestionIndex int     `json:"question_index"`
	Score         float64 `json:"score"`
	Skipped       bool    `json:"skipped"`
}

// Report is the final interview report. Field names are part of the
// external JSON contract.
type Report struct {
	OverallScore           int                       `json:"overall_score"`
	Grade                  Grade                     `json:"grade"`
	QuestionsAnswered      int                       `json:"questions_answered"`
	QuestionsSkipped       int                       `json:"questions_skipped"`
	CategoryScores         map[question.Category]int `json:"category_scores"`
	Strengths              []string                  `json:"strengths"`
	Weaknesses             []string                  `json:"weaknesses"`
	ImprovementSuggestions []string                  `json:"improvement_suggestions"`
	PlacementReady         Readiness                 `json:"placement_ready"`
}

// TotalQuestions is the number of questions the report covers.
func (r *Report) TotalQuestions() int {
	return r.QuestionsAnswered + r.QuestionsSkipped
}

// Categories returns the report's category keys with built-in categories
// first in their canonical order, then any others alphabetically.
func (r *Report) Categories() []question.Category {
	cats := make([]question.Category, 0, len(r.CategoryScores))
	for c := range r.CategoryScores {
		cats = append(cats, c)
	}
	rank := func(c question.Category) int {
		if i := slices.Index(question.AllCategories, c); i >= 0 {
			return i
		}
		return len(question.AllCategories)
	}
	slices.SortFunc(cats, func(a, b question.Category) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return cats
}
