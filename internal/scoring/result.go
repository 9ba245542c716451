package scoring

import (
	"strings"

	"github.com/abhisek/mockview/internal/question"
)

// Tier is the qualitative band of a score.
type Tier string

const (
	TierSkipped          Tier = "skipped"
	TierTooShort         Tier = "too_short"
	TierNeedsImprovement Tier = "needs_improvement"
	TierAdequate         Tier = "adequate"
	TierGood             Tier = "good"
	TierExcellent        Tier = "excellent"
)

// TierFor maps a scored (non-skipped, non-trivial) answer to its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 8:
		return TierExcellent
	case score >= 6:
		return TierGood
	case score >= 4:
		return TierAdequate
	default:
		return TierNeedsImprovement
	}
}

// Brief returns the one-line feedback shown next to a score.
func (t Tier) Brief() string {
	switch t {
	case TierSkipped:
		return "Question skipped"
	case TierTooShort:
		return "Response too short"
	case TierExcellent:
		return "Excellent response!"
	case TierGood:
		return "Good answer, could add more detail."
	case TierAdequate:
		return "Adequate, but needs improvement."
	default:
		return "Needs significant improvement."
	}
}

// Result is the full evaluation of one answer.
type Result struct {
	Score           float64   `json:"score"`
	Skipped         bool      `json:"skipped"`
	Tier            Tier      `json:"tier"`
	Brief           string    `json:"brief_feedback"`
	Detailed        string    `json:"detailed_feedback"`
	Breakdown       Breakdown `json:"breakdown"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
	MissedKeywords  []string  `json:"missed_keywords,omitempty"`
	WordCount       int       `json:"word_count"`
}

const maxMentionedKeywords = 3

// Evaluate scores an answer and explains the score. A skip always scores 0.
func Evaluate(answer string, skipped bool, q question.Question) Result {
	if skipped {
		return Result{
			Skipped:  true,
			Tier:     TierSkipped,
			Brief:    TierSkipped.Brief(),
			Detailed: "No answer was given for this question.",
		}
	}

	keywords := q.Keywords()
	s, breakdown, ok := score(answer, keywords)
	if !ok {
		return Result{
			Tier:           TierTooShort,
			Brief:          TierTooShort.Brief(),
			Detailed:       "Please provide a more detailed answer.",
			MissedKeywords: keywords,
			WordCount:      len(strings.Fields(answer)),
		}
	}

	matched, missed := matchKeywords(strings.ToLower(answer), keywords)
	words := len(strings.Fields(answer))
	tier := TierFor(s)
	return Result{
		Score:           s,
		Tier:            tier,
		Brief:           tier.Brief(),
		Detailed:        detailedFeedback(s, words, missed),
		Breakdown:       breakdown,
		MatchedKeywords: matched,
		MissedKeywords:  missed,
		WordCount:       words,
	}
}

func detailedFeedback(score float64, words int, missed []string) string {
	var parts []string
	switch {
	case score >= 8:
		parts = append(parts, "Great job! Your response was comprehensive and well-structured.")
	case score >= 6:
		parts = append(parts, "Good response.")
	default:
		parts = append(parts, "Your response could be improved.")
	}
	if words < DetailedWordCount {
		parts = append(parts, "Try to provide more detailed explanations.")
	}
	if len(missed) > 0 {
		if len(missed) > maxMentionedKeywords {
			missed = missed[:maxMentionedKeywords]
		}
		parts = append(parts, "Consider mentioning: "+strings.Join(missed, ", "))
	}
	return strings.Join(parts, " ")
}
