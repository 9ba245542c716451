package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/abhisek/mockview/internal/question"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func technical(keywords ...string) question.Question {
	return question.Question{
		Text:             "Explain the concept.",
		Category:         question.CategoryTechnical,
		ExpectedKeywords: keywords,
	}
}

func TestScore_RecursionExample(t *testing.T) {
	q := technical("recursion", "base case")
	answer := "Recursion works by breaking a problem into a base case and smaller subproblems, for example computing factorial."
	// keyword 10*0.4 + length 1.7*0.3 + structure 6*0.3 = 4 + 0.51 + 1.8 = 6.31
	if got := Score(answer, q); !almostEqual(got, 6.3) {
		t.Errorf("Score = %v, want 6.3", got)
	}
}

func TestScore_TooShortIsZero(t *testing.T) {
	q := technical("recursion")
	for _, answer := range []string{"", "    ", "abcd", "  ok  ", "\tyes\n", "日本語"} {
		if got := Score(answer, q); got != 0 {
			t.Errorf("Score(%q) = %v, want exactly 0", answer, got)
		}
	}
}

func TestScore_MinimumLengthAnswerIsFloored(t *testing.T) {
	// One word, no keyword: 0 + 0.1*0.3 + 4*0.3 = 1.23
	if got := Score("hello", technical("recursion")); !almostEqual(got, 1.2) {
		t.Errorf("Score = %v, want 1.2", got)
	}
}

func TestScore_NeutralKeywordDefault(t *testing.T) {
	// 7 words: 5*0.4 + 0.7*0.3 + 4*0.3 = 3.41
	got := Score("I am not sure about this one", technical())
	if !almostEqual(got, 3.4) {
		t.Errorf("Score = %v, want 3.4", got)
	}
}

func TestScore_StructureBonuses(t *testing.T) {
	q := technical("cache", "eviction")
	answer := "First, a cache stores hot data because memory is faster. Second, eviction removes old entries such as with LRU."
	// 19 words: 10*0.4 + 1.9*0.3 + 8*0.3 = 6.97
	if got := Score(answer, q); !almostEqual(got, 7.0) {
		t.Errorf("Score = %v, want 7.0", got)
	}
}

func TestScore_LongDetailedAnswer(t *testing.T) {
	answer := strings.Repeat("word ", 120) + "first because"
	// 5*0.4 + 10*0.3 + 10*0.3 = 8.0
	if got := Score(answer, technical()); !almostEqual(got, 8.0) {
		t.Errorf("Score = %v, want 8.0", got)
	}
}

func TestScore_KeywordMatchIsCaseInsensitiveSubstring(t *testing.T) {
	q := technical("Hash Map", "O(n)")
	a := Score("Use a HASHMAP lookup in o(n) time", q)
	b := Score("Use a hash map lookup in O(n) time", q)
	if !(b > a) {
		t.Errorf("expected exact phrase to outscore partial: %v vs %v", b, a)
	}
}

func TestScore_BoundsAndStability(t *testing.T) {
	q := technical("scope", "closure", "lexical")
	answers := []string{
		"hello",
		"A closure captures lexical scope.",
		strings.Repeat("step first because therefore scope closure lexical ", 40),
		"random words without any structure at all but long enough to matter somewhat",
	}
	for _, a := range answers {
		got := Score(a, q)
		if got < 1 || got > 10 {
			t.Errorf("Score(%q) = %v, want in [1,10]", a, got)
		}
		if again := Score(a, q); again != got {
			t.Errorf("Score not stable: %v then %v", got, again)
		}
		if !almostEqual(got*10, math.Round(got*10)) {
			t.Errorf("Score %v not rounded to one decimal", got)
		}
	}
}
