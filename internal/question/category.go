package question

import (
	"errors"
	"strings"
)

// Category is the topical classification of a question. The built-in
// categories are listed below; other non-empty names are accepted in
// normalized form so that report keys always match question categories.
type Category string

const (
	CategoryTechnical      Category = "technical"
	CategoryHR             Category = "hr"
	CategoryProject        Category = "project"
	CategoryScenario       Category = "scenario"
	CategoryProblemSolving Category = "problem_solving"
	CategoryGeneral        Category = "general"
)

// AllCategories lists the built-in categories in display order.
var AllCategories = []Category{
	CategoryTechnical,
	CategoryHR,
	CategoryProject,
	CategoryScenario,
	CategoryProblemSolving,
	CategoryGeneral,
}

var categoryAliases = map[string]Category{
	"behavioral":    CategoryHR,
	"behavioural":   CategoryHR,
	"system_design": CategoryScenario,
}

// ErrEmptyCategory is returned by ParseCategory for a blank name.
var ErrEmptyCategory = errors.New("category is empty")

// ParseCategory normalizes a category name. Known names and aliases map to
// their constant; unknown names are kept (lower-case, underscores).
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return "", ErrEmptyCategory
	}
	norm = strings.Join(strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	if alias, ok := categoryAliases[norm]; ok {
		return alias, nil
	}
	return Category(norm), nil
}

// CategoryOrGeneral parses s and falls back to CategoryGeneral when s is blank.
func CategoryOrGeneral(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		return CategoryGeneral
	}
	return c
}

// Known reports whether c is one of the built-in categories.
func (c Category) Known() bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Label returns a human-readable name, e.g. "Problem Solving" or "HR".
func (c Category) Label() string {
	if c == CategoryHR {
		return "HR"
	}
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (c Category) String() string { return string(c) }

// UnmarshalText normalizes decoded names. A blank name decodes to the empty
// category so that Question.Validate reports it.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		*c = ""
		return nil
	}
	*c = parsed
	return nil
}
