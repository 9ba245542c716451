// Package analytics measures communication quality from answer transcripts.
package analytics

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var fillerWords = []string{"um", "uh", "like", "you know", "basically", "actually", "so", "well"}

var technicalTerms = []string{
	"algorithm", "implement", "optimize", "database", "framework",
	"architecture", "scalable", "performance", "design", "pattern",
	"function", "class", "method", "api", "interface",
}

var (
	fillerPatterns = compileFillers(fillerWords)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

func compileFillers(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

// Transcript holds text-based communication metrics for one answer.
type Transcript struct {
	WordCount   int `json:"word_count"`
	FillerCount int `json:"filler_word_count"`
	// FillerRatio is the share of filler words, in percent.
	FillerRatio       float64 `json:"filler_word_ratio"`
	AvgSentenceLength float64 `json:"average_sentence_length"`
	// VocabularyDiversity is unique words over total words, in percent.
	VocabularyDiversity float64 `json:"vocabulary_diversity"`
	TechnicalTerms      int     `json:"technical_keyword_count"`
	// CommunicationScore is in [0, 100].
	CommunicationScore float64 `json:"communication_score"`
}

// AnalyzeTranscript computes communication metrics. An empty transcript
// yields the zero value.
func AnalyzeTranscript(text string) Transcript {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Transcript{}
	}
	lower := strings.ToLower(text)

	var fillers int
	for _, re := range fillerPatterns {
		fillers += len(re.FindAllStringIndex(lower, -1))
	}

	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	sentences = max(sentences, 1)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}

	var tech int
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			tech++
		}
	}

	n := float64(len(words))
	fillerRatio := float64(fillers) / n
	diversity := float64(len(unique)) / n

	return Transcript{
		WordCount:           len(words),
		FillerCount:         fillers,
		FillerRatio:         round(fillerRatio*100, 2),
		AvgSentenceLength:   round(n/float64(sentences), 1),
		VocabularyDiversity: round(diversity*100, 2),
		TechnicalTerms:      tech,
		CommunicationScore:  communicationScore(fillerRatio, diversity, tech),
	}
}

// communicationScore weights few fillers, a varied vocabulary and use of
// technical terms. Inputs are fractions, not percentages.
func communicationScore(fillerRatio, diversity float64, tech int) float64 {
	filler := math.Max(0, 100-fillerRatio*500)
	vocab := math.Min(100, diversity*200)
	bonus := math.Min(20, float64(tech)*2)
	score := filler*0.3 + vocab*0.5 + bonus*0.2
	return round(math.Max(0, math.Min(100, score)), 1)
}

// ResponseTimeScore rates how long a candidate took to start answering.
// Very quick answers are penalised mildly and slow ones progressively.
func ResponseTimeScore(d time.Duration) float64 {
	secs := d.Seconds()
	switch {
	case secs > 30:
		return math.Max(50, 100-(secs-30)*2)
	case secs < 2:
		return 70
	default:
		return 100
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
