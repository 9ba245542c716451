package question

import (
	"errors"
	"fmt"
	"strings"
)

// Question is one interview prompt. It is treated as immutable once an
// interview starts.
type Question struct {
	// Index is the 0-based, stable position in the interview.
	Index int `json:"index" yaml:"index"`

	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`

	// ExpectedKeywords is a set; order carries no meaning and may be empty.
	ExpectedKeywords []string `json:"expected_keywords,omitempty" yaml:"expected_keywords,omitempty"`

	// Skill and Difficulty are informational; scoring ignores them.
	Skill      string `json:"skill,omitempty" yaml:"skill,omitempty"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// ValidationError reports a malformed question record.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s %s", e.Index, e.Field, e.Reason)
}

// Validate checks that the question carries text and a category.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Index: q.Index, Field: "text", Reason: "is required"}
	}
	if strings.TrimSpace(string(q.Category)) == "" {
		return &ValidationError{Index: q.Index, Field: "category", Reason: "is required"}
	}
	return nil
}

// ValidateAll validates every question and checks that indices match their
// positions. All violations are joined into the returned error.
func ValidateAll(qs []Question) error {
	var errs []error
	for i, q := range qs {
		if q.Index != i {
			errs = append(errs, &ValidationError{
				Index:  i,
				Field:  "index",
				Reason: fmt.Sprintf("is %d, want %d", q.Index, i),
			})
		}
		if err := q.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reindex returns a copy of qs with indices set to their positions.
func Reindex(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Index = i
		q.ExpectedKeywords = append([]string(nil), q.ExpectedKeywords...)
		out[i] = q
	}
	return out
}

// Keywords returns the normalized expected keyword set.
func (q Question) Keywords() []string {
	return NormalizeKeywords(q.ExpectedKeywords)
}

// NormalizeKeywords trims keywords, drops blanks and removes
// case-insensitive duplicates while keeping first-seen order.
func NormalizeKeywords(kws []string) []string {
	if len(kws) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(kws))
	out := make([]string, 0, len(kws))
	for _, kw := range kws {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
