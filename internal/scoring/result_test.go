package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mockview/internal/question"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{10, TierExcellent},
		{8, TierExcellent},
		{7.9, TierGood},
		{6, TierGood},
		{5.9, TierAdequate},
		{4, TierAdequate},
		{3.9, TierNeedsImprovement},
		{1, TierNeedsImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %v", tt.score)
	}
}

func TestEvaluate_Skipped(t *testing.T) {
	r := Evaluate("ignored text", true, technical("x"))
	assert.True(t, r.Skipped)
	assert.Zero(t, r.Score)
	assert.Equal(t, TierSkipped, r.Tier)
}

func TestEvaluate_TooShort(t *testing.T) {
	r := Evaluate("no", false, technical("recursion"))
	assert.False(t, r.Skipped)
	assert.Zero(t, r.Score)
	assert.Equal(t, TierTooShort, r.Tier)
	assert.Equal(t, "Response too short", r.Brief)
	assert.Equal(t, []string{"recursion"}, r.MissedKeywords)
}

func TestEvaluate_FeedbackMentionsFirstThreeMissed(t *testing.T) {
	q := technical("alpha", "beta", "gamma", "delta")
	r := Evaluate("I would rather talk about something else entirely.", false, q)
	assert.Equal(t, TierNeedsImprovement, r.Tier)
	assert.Equal(t,
		"Your response could be improved. Try to provide more detailed explanations. Consider mentioning: alpha, beta, gamma",
		r.Detailed)
	assert.Len(t, r.MissedKeywords, 4)
}

func TestEvaluate_RecursionExample(t *testing.T) {
	q := technical("recursion", "base case")
	r := Evaluate("Recursion works by breaking a problem into a base case and smaller subproblems, for example computing factorial.", false, q)
	assert.InDelta(t, 6.3, r.Score, epsilon)
	assert.Equal(t, TierGood, r.Tier)
	assert.Equal(t, "Good answer, could add more detail.", r.Brief)
	assert.Equal(t, "Good response. Try to provide more detailed explanations.", r.Detailed)
	assert.Equal(t, []string{"recursion", "base case"}, r.MatchedKeywords)
	assert.Empty(t, r.MissedKeywords)
	assert.Equal(t, 17, r.WordCount)
	assert.InDelta(t, 10, r.Breakdown.Keyword, epsilon)
	assert.InDelta(t, 6, r.Breakdown.Structure, epsilon)
}

func TestEvaluate_Excellent(t *testing.T) {
	answer := "First, I would profile the service because guessing wastes time. Second, I would check logs and metrics, " +
		"such as latency percentiles and error rates, then use profiling to find hot paths. Third, I would fix the slowest step and measure again."
	r := Evaluate(answer, false, question.Question{
		Text:             "If a production system is running slow, how would you debug it?",
		Category:         question.CategoryScenario,
		ExpectedKeywords: []string{"logs", "metrics", "profiling"},
	})
	assert.Equal(t, TierExcellent, r.Tier)
	assert.Equal(t, "Great job! Your response was comprehensive and well-structured.", r.Detailed)
}
