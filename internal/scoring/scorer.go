// Package scoring turns a single transcribed answer into a bounded score,
// a tier label and written feedback.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mockview/internal/question"
)

const (
	// MinAnswerLength is the trimmed rune count below which an answer scores 0.
	MinAnswerLength = 5

	// NeutralKeywordScore is used when a question defines no keywords.
	NeutralKeywordScore = 5.0

	// DetailedWordCount is the word count that earns the structure bonus.
	DetailedWordCount = 30

	baseStructureScore = 4.0
	structureBonus     = 2.0

	keywordWeight   = 0.4
	lengthWeight    = 0.3
	structureWeight = 0.3
)

var (
	connectives        = []string{"for example", "such as", "because", "therefore"}
	enumerationMarkers = []string{"first", "second", "third", "step"}
)

// Breakdown holds the three sub-scores, each in [0, 10] before weighting.
type Breakdown struct {
	Keyword   float64 `json:"keyword"`
	Length    float64 `json:"length"`
	Structure float64 `json:"structure"`
}

// Score returns the score of a non-skipped answer in [0, 10]. Answers whose
// trimmed length is under MinAnswerLength score exactly 0; everything else is
// clamped to [1, 10] and rounded to one decimal.
func Score(answer string, q question.Question) float64 {
	score, _, _ := score(answer, q.Keywords())
	return score
}

// score is the shared implementation of Score and Evaluate. ok is false when
// the answer is too short to be scored.
func score(answer string, keywords []string) (float64, Breakdown, bool) {
	trimmed := strings.TrimSpace(answer)
	if utf8.RuneCountInString(trimmed) < MinAnswerLength {
		return 0, Breakdown{}, false
	}

	lower := strings.ToLower(trimmed)
	words := len(strings.Fields(trimmed))

	b := Breakdown{
		Keyword:   keywordScore(lower, keywords),
		Length:    math.Min(10, float64(words)/10),
		Structure: structureScore(lower, words),
	}
	raw := b.Keyword*keywordWeight + b.Length*lengthWeight + b.Structure*structureWeight
	return roundTenth(clamp(raw, 1, 10)), b, true
}

func keywordScore(lower string, keywords []string) float64 {
	if len(keywords) == 0 {
		return NeutralKeywordScore
	}
	matched, _ := matchKeywords(lower, keywords)
	return 10 * float64(len(matched)) / float64(len(keywords))
}

func structureScore(lower string, words int) float64 {
	s := baseStructureScore
	if containsAny(lower, connectives) {
		s += structureBonus
	}
	if containsAny(lower, enumerationMarkers) {
		s += structureBonus
	}
	if words >= DetailedWordCount {
		s += structureBonus
	}
	return s
}

// matchKeywords splits keywords into those found in lower (as
// case-insensitive substrings) and those missed, preserving order.
func matchKeywords(lower string, keywords []string) (matched, missed []string) {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missed = append(missed, kw)
		}
	}
	return matched, missed
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
