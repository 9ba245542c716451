package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockview/internal/question"
)

func questions(cats ...question.Category) []question.Question {
	qs := make([]question.Question, len(cats))
	for i, c := range cats {
		qs[i] = question.Question{Index: i, Text: fmt.Sprintf("Question %d", i+1), Category: c}
	}
	return qs
}

func repeat(c question.Category, n int) []question.Category {
	out := make([]question.Category, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func answered(idx int, score float64) ScoredAnswer {
	return ScoredAnswer{QuestionIndex: idx, Score: score}
}

func TestAggregate_TwoSkippedOfFive(t *testing.T) {
	qs := questions(repeat(question.CategoryTechnical, 5)...)
	r, err := Aggregate(qs, []ScoredAnswer{
		answered(0, 8), answered(1, 6), answered(2, 4),
		{QuestionIndex: 3, Skipped: true},
	})
	require.NoError(t, err)

	// (8+6+4+0+0)/5*10 = 36. Index 4 is missing and reconciled as skipped.
	// 36 falls in the D band (35-49); the worked example that labels it C
	// contradicts the band table, and the band table wins.
	assert.Equal(t, 36, r.OverallScore)
	assert.Equal(t, GradeD, r.Grade)
	assert.Equal(t, ReadinessNotReady, r.PlacementReady)
	assert.Equal(t, 3, r.QuestionsAnswered)
	assert.Equal(t, 2, r.QuestionsSkipped)
	assert.Equal(t, map[question.Category]int{question.CategoryTechnical: 36}, r.CategoryScores)
	assert.Equal(t, []string{"Needs improvement in technical areas", "Skipped 2 question(s)"}, r.Weaknesses)
	assert.Equal(t, []string{"Participated in the interview"}, r.Strengths)
	assert.Equal(t, []string{
		"Practice answering questions out loud to improve fluency",
		"Review core technical concepts and practice coding problems",
		"Attempt every question, even with a partial answer",
		"Consider taking mock interviews to build confidence",
	}, r.ImprovementSuggestions)
}

func TestAggregate_AllSkipped(t *testing.T) {
	qs := questions(repeat(question.CategoryHR, 10)...)
	var scored []ScoredAnswer
	for i := range qs {
		scored = append(scored, ScoredAnswer{QuestionIndex: i, Skipped: true})
	}
	r, err := Aggregate(qs, scored)
	require.NoError(t, err)

	assert.Equal(t, 0, r.OverallScore)
	assert.Equal(t, GradeF, r.Grade)
	assert.Equal(t, ReadinessNotReady, r.PlacementReady)
	assert.Contains(t, r.Weaknesses, "Skipped 10 question(s)")
	assert.Equal(t, 0, r.QuestionsAnswered)
	assert.Equal(t, 10, r.QuestionsSkipped)
}

func TestAggregate_NoEventsAtAll(t *testing.T) {
	r, err := Aggregate(questions(question.CategoryHR, question.CategoryProject), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.QuestionsSkipped)
	assert.Equal(t, 2, r.TotalQuestions())
}

func TestAggregate_EmptyQuestionSet(t *testing.T) {
	r, err := Aggregate(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, r.OverallScore)
	assert.Equal(t, GradeF, r.Grade)
	assert.Empty(t, r.CategoryScores)
	assert.NotNil(t, r.CategoryScores)
	assert.Equal(t, []string{"Participated in the interview"}, r.Strengths)
	assert.Equal(t, []string{"No major weaknesses identified"}, r.Weaknesses)
	assert.Equal(t, []string{"Continue practicing to maintain your skills"}, r.ImprovementSuggestions)
	assert.Equal(t, ReadinessNotReady, r.PlacementReady)
}

func TestAggregate_StrongCandidate(t *testing.T) {
	qs := questions(question.CategoryTechnical, question.CategoryTechnical, question.CategoryHR, question.CategoryScenario)
	r, err := Aggregate(qs, []ScoredAnswer{answered(0, 9.1), answered(1, 8.7), answered(2, 7.4), answered(3, 6.6)})
	require.NoError(t, err)

	// (91+87+74+66)/4 = 79.5 → 80
	assert.Equal(t, 80, r.OverallScore)
	assert.Equal(t, GradeA, r.Grade)
	assert.Equal(t, ReadinessReady, r.PlacementReady)
	assert.Equal(t, map[question.Category]int{
		question.CategoryTechnical: 89,
		question.CategoryHR:        74,
		question.CategoryScenario:  66,
	}, r.CategoryScores)
	assert.Equal(t, []string{"Strong technical skills", "Strong hr skills", "Answered all questions"}, r.Strengths)
	assert.Equal(t, []string{"No major weaknesses identified"}, r.Weaknesses)
	assert.Equal(t, []string{"Continue practicing to maintain your skills"}, r.ImprovementSuggestions)
}

func TestAggregate_BehavioralSuggestionOnlyWhenHRPresent(t *testing.T) {
	qs := questions(question.CategoryProject, question.CategoryHR)
	r, err := Aggregate(qs, []ScoredAnswer{answered(0, 7), answered(1, 5)})
	require.NoError(t, err)

	assert.Equal(t, 60, r.OverallScore)
	assert.Equal(t, []string{"Strong project skills", "Answered all questions"}, r.Strengths)
	assert.Equal(t, []string{
		"Practice answering questions out loud to improve fluency",
		"Prepare STAR method responses for behavioral questions",
	}, r.ImprovementSuggestions)
	assert.NotContains(t, r.ImprovementSuggestions, "Review core technical concepts and practice coding problems")
}

func TestAggregate_SkippingIsMonotonic(t *testing.T) {
	qs := questions(repeat(question.CategoryGeneral, 6)...)
	scores := []float64{7.5, 6.2, 9.0, 3.3, 5.8, 8.1}

	prev := 101
	for skipped := 0; skipped <= len(scores); skipped++ {
		var scored []ScoredAnswer
		for i, s := range scores {
			if i < skipped {
				scored = append(scored, ScoredAnswer{QuestionIndex: i, Skipped: true})
				continue
			}
			scored = append(scored, answered(i, s))
		}
		r, err := Aggregate(qs, scored)
		require.NoError(t, err)
		assert.LessOrEqual(t, r.OverallScore, prev, "skipping %d raised the score", skipped)
		assert.Equal(t, len(qs), r.QuestionsAnswered+r.QuestionsSkipped)
		prev = r.OverallScore
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	qs := questions(question.CategoryTechnical, question.CategoryHR, question.CategoryProject)
	scored := []ScoredAnswer{answered(2, 4.4), answered(0, 6.1), answered(1, 5.5)}
	a, err := Aggregate(qs, scored)
	require.NoError(t, err)
	b, err := Aggregate(qs, []ScoredAnswer{scored[1], scored[2], scored[0]})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAggregate_RejectsDuplicate(t *testing.T) {
	qs := questions(question.CategoryHR, question.CategoryHR)
	_, err := Aggregate(qs, []ScoredAnswer{answered(0, 5), answered(0, 9)})

	var dup *DuplicateEventError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 0, dup.QuestionIndex)
}

func TestAggregate_RejectsOutOfRange(t *testing.T) {
	qs := questions(question.CategoryHR)
	_, err := Aggregate(qs, []ScoredAnswer{answered(1, 5), answered(-1, 5)})

	var oor *IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 1, oor.QuestionIndex)
	assert.Equal(t, 1, oor.Total)
}

func TestAggregate_RejectsInvalidScore(t *testing.T) {
	_, err := Aggregate(questions(question.CategoryHR), []ScoredAnswer{answered(0, 11)})
	var inv *InvalidScoreError
	assert.ErrorAs(t, err, &inv)
}

func TestAggregate_RejectsMalformedQuestion(t *testing.T) {
	qs := []question.Question{{Index: 0, Text: "Tell me about yourself."}}
	r, err := Aggregate(qs, nil)
	assert.Nil(t, r)

	var verr *question.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)
}

func TestReconcile_SkippedScoreIsZeroed(t *testing.T) {
	got, err := Reconcile(2, []ScoredAnswer{{QuestionIndex: 1, Score: 7, Skipped: true}})
	require.NoError(t, err)
	assert.Equal(t, []ScoredAnswer{
		{QuestionIndex: 0, Skipped: true},
		{QuestionIndex: 1, Skipped: true},
	}, got)
}

func TestRoundedMean(t *testing.T) {
	assert.Equal(t, 0, roundedMean(0, 0))
	assert.Equal(t, 80, roundedMean(31.8, 4)) // 79.5
	assert.Equal(t, 79, roundedMean(31.7, 4)) // 79.25
	assert.Equal(t, 36, roundedMean(18, 5))
	assert.Equal(t, 1, roundedMean(0.1+0.1+0.1, 3))
	assert.Equal(t, 73, roundedMean(7.3+7.2, 2)) // 72.5
}

func TestAggregate_ScoresFinerThanTenths(t *testing.T) {
	qs := questions(question.CategoryTechnical, question.CategoryTechnical)
	r, err := Aggregate(qs, []ScoredAnswer{answered(0, 6.25), answered(1, 6.24)})
	require.NoError(t, err)

	// mean 6.245 -> 62.45 -> 62. Rounding each score first would give 63.
	assert.Equal(t, 62, r.OverallScore)
	assert.Equal(t, map[question.Category]int{question.CategoryTechnical: 62}, r.CategoryScores)
}
