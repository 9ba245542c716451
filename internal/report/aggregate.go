package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/mockview/internal/question"
)

const (
	strongCategoryFloor  = 70
	weakCategoryCeiling  = 40
	answeredAllFloor     = 60
	fluencyCeiling       = 70
	categoryReviewCeil   = 60
	mockInterviewCeiling = 50
)

const (
	defaultStrength   = "Participated in the interview"
	defaultWeakness   = "No major weaknesses identified"
	answeredAll       = "Answered all questions"
	defaultSuggestion = "Continue practicing to maintain your skills"

	suggestFluency       = "Practice answering questions out loud to improve fluency"
	suggestTechnical     = "Review core technical concepts and practice coding problems"
	suggestBehavioral    = "Prepare STAR method responses for behavioral questions"
	suggestAttemptAll    = "Attempt every question, even with a partial answer"
	suggestMockInterview = "Consider taking mock interviews to build confidence"
)

// Aggregate builds the report for an interview. Questions are validated and
// scored answers reconciled first; any error aborts without a report.
// Question indices without a scored answer count as skipped with score 0.
func Aggregate(questions []question.Question, scored []ScoredAnswer) (*Report, error) {
	if err := question.ValidateAll(questions); err != nil {
		return nil, err
	}
	answers, err := Reconcile(len(questions), scored)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return emptyReport(), nil
	}

	r := &Report{CategoryScores: make(map[question.Category]int)}

	var total float64
	catTotals := make(map[question.Category]float64)
	catCounts := make(map[question.Category]int)
	var order []question.Category

	for i, a := range answers {
		total += a.Score
		if a.Skipped {
			r.QuestionsSkipped++
		} else {
			r.QuestionsAnswered++
		}

		cat := questions[i].Category
		if catCounts[cat] == 0 {
			order = append(order, cat)
		}
		catTotals[cat] += a.Score
		catCounts[cat]++
	}

	r.OverallScore = roundedMean(total, len(answers))
	r.Grade = GradeFor(r.OverallScore)
	r.PlacementReady = ReadinessFor(r.OverallScore)
	for _, cat := range order {
		r.CategoryScores[cat] = roundedMean(catTotals[cat], catCounts[cat])
	}

	r.Strengths, r.Weaknesses = assess(r, order)
	r.ImprovementSuggestions = suggest(r)
	return r, nil
}

// Reconcile returns exactly one answer per question index in order. Missing
// indices become skipped answers with score 0. Duplicate, out-of-range and
// invalid entries are rejected; all such errors are joined.
func Reconcile(total int, scored []ScoredAnswer) ([]ScoredAnswer, error) {
	out := make([]ScoredAnswer, total)
	seen := make([]bool, total)
	var errs []error

	for _, a := range scored {
		if a.QuestionIndex < 0 || a.QuestionIndex >= total {
			errs = append(errs, &IndexOutOfRangeError{QuestionIndex: a.QuestionIndex, Total: total})
			continue
		}
		if seen[a.QuestionIndex] {
			errs = append(errs, &DuplicateEventError{QuestionIndex: a.QuestionIndex})
			continue
		}
		if a.Skipped {
			a.Score = 0
		} else if math.IsNaN(a.Score) || a.Score < 0 || a.Score > 10 {
			errs = append(errs, &InvalidScoreError{QuestionIndex: a.QuestionIndex, Score: a.Score})
			continue
		}
		seen[a.QuestionIndex] = true
		out[a.QuestionIndex] = a
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("reconcile answers: %w", errors.Join(errs...))
	}

	for i := range out {
		if !seen[i] {
			out[i] = ScoredAnswer{QuestionIndex: i, Skipped: true}
		}
	}
	return out, nil
}

func assess(r *Report, order []question.Category) (strengths, weaknesses []string) {
	for _, cat := range order {
		score := r.CategoryScores[cat]
		switch {
		case score >= strongCategoryFloor:
			strengths = append(strengths, fmt.Sprintf("Strong %s skills", cat))
		case score < weakCategoryCeiling:
			weaknesses = append(weaknesses, fmt.Sprintf("Needs improvement in %s areas", cat))
		}
	}
	if r.QuestionsSkipped > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Skipped %d question(s)", r.QuestionsSkipped))
	} else if r.OverallScore >= answeredAllFloor {
		strengths = append(strengths, answeredAll)
	}

	if len(strengths) == 0 {
		strengths = []string{defaultStrength}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{defaultWeakness}
	}
	return strengths, weaknesses
}

func suggest(r *Report) []string {
	var out []string
	if r.OverallScore < fluencyCeiling {
		out = append(out, suggestFluency)
	}
	if s, ok := r.CategoryScores[question.CategoryTechnical]; ok && s < categoryReviewCeil {
		out = append(out, suggestTechnical)
	}
	if s, ok := r.CategoryScores[question.CategoryHR]; ok && s < categoryReviewCeil {
		out = append(out, suggestBehavioral)
	}
	if r.QuestionsSkipped > 0 {
		out = append(out, suggestAttemptAll)
	}
	if r.OverallScore < mockInterviewCeiling {
		out = append(out, suggestMockInterview)
	}
	if len(out) == 0 {
		out = []string{defaultSuggestion}
	}
	return out
}

// emptyReport is the report for an interview with no questions.
func emptyReport() *Report {
	return &Report{
		OverallScore:           0,
		Grade:                  GradeFor(0),
		CategoryScores:         map[question.Category]int{},
		Strengths:              []string{defaultStrength},
		Weaknesses:             []string{defaultWeakness},
		ImprovementSuggestions: []string{defaultSuggestion},
		PlacementReady:         ReadinessFor(0),
	}
}

// roundingSlack absorbs binary drift in sums of decimal scores, so that a
// mean of exactly x.5 tenths is not rounded down.
const roundingSlack = 1e-9

// roundedMean returns round(sum/n*10) with halves rounded up, for sum >= 0.
func roundedMean(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Floor(sum/float64(n)*10 + 0.5 + roundingSlack))
}
