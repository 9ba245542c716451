package question

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
)

// Difficulty levels understood by the planner.
const (
	DifficultyEasy     = "easy"
	DifficultyMedium   = "medium"
	DifficultyAdvanced = "advanced"
)

const (
	maxPlannedSkills   = 5
	projectPlaceholder = "{project_name}"
)

// Distribution is the percentage share of each category in a plan.
type Distribution struct {
	Technical int
	HR        int
	Project   int
	Scenario  int
}

var distributions = map[string]Distribution{
	DifficultyEasy:     {Technical: 40, HR: 40, Project: 20, Scenario: 0},
	DifficultyMedium:   {Technical: 40, HR: 30, Project: 20, Scenario: 10},
	DifficultyAdvanced: {Technical: 50, HR: 10, Project: 20, Scenario: 20},
}

// DistributionFor returns the category mix for a difficulty. Unknown
// difficulties use the medium mix.
func DistributionFor(difficulty string) Distribution {
	if d, ok := distributions[strings.ToLower(difficulty)]; ok {
		return d
	}
	return distributions[DifficultyMedium]
}

// Plan describes the interview to generate.
type Plan struct {
	Count      int
	Difficulty string
	// Skills steer technical questions; only the first five are used.
	Skills []string
	// Projects each receive one project question, up to the project share.
	Projects []string
	Seed     uint64
}

// ErrEmptyPlan is returned when a plan asks for no questions.
var ErrEmptyPlan = errors.New("plan must request at least one question")

// Select builds an ordered question list from the bank. The result depends
// only on the bank and the plan, so a fixed seed reproduces an interview.
func (b *Bank) Select(p Plan) ([]Question, error) {
	if p.Count <= 0 {
		return nil, ErrEmptyPlan
	}
	difficulty := strings.ToLower(p.Difficulty)
	if _, ok := distributions[difficulty]; !ok {
		difficulty = DifficultyMedium
	}
	dist := DistributionFor(difficulty)
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	s := &selector{rng: rng, used: make(map[string]bool)}

	share := func(pct int) int { return p.Count * pct / 100 }

	techCount := share(dist.Technical)
	skills := p.Skills
	if len(skills) > maxPlannedSkills {
		skills = skills[:maxPlannedSkills]
	}
	for _, skill := range skills {
		if len(s.out) >= techCount {
			break
		}
		if t, ok := s.pick(b.Technical(skill)); ok {
			s.add(t, strings.TrimSpace(skill), difficulty)
		}
	}
	general := b.Technical("general")
	for len(s.out) < techCount {
		t, ok := s.pick(general)
		if !ok {
			break
		}
		s.add(t, "general", difficulty)
	}

	projectCount := share(dist.Project)
	projects := p.Projects
	if len(projects) > projectCount {
		projects = projects[:projectCount]
	}
	for _, name := range projects {
		t, ok := s.pick(b.ByCategory(CategoryProject))
		if !ok {
			break
		}
		s.used[t.Text] = true
		name = strings.TrimSpace(name)
		if name == "" {
			name = "your project"
		}
		t.Text = strings.ReplaceAll(t.Text, projectPlaceholder, name)
		s.add(t, "project", difficulty)
	}

	s.fill(b.ByCategory(CategoryHR), share(dist.HR), "soft_skills", DifficultyMedium)
	s.fill(b.ByCategory(CategoryScenario), share(dist.Scenario), "problem_solving", difficulty)

	if len(s.out) < p.Count {
		topUp := slices.Concat(general, b.ByCategory(CategoryProblemSolving))
		s.fill(topUp, p.Count-len(s.out), "general", difficulty)
	}

	rng.Shuffle(len(s.out), func(i, j int) { s.out[i], s.out[j] = s.out[j], s.out[i] })
	if len(s.out) > p.Count {
		s.out = s.out[:p.Count]
	}
	return Reindex(s.out), nil
}

type selector struct {
	rng  *rand.Rand
	used map[string]bool
	out  []Question
}

// pick chooses a template, preferring ones not yet asked.
func (s *selector) pick(pool []Template) (Template, bool) {
	if len(pool) == 0 {
		return Template{}, false
	}
	var fresh []Template
	for _, t := range pool {
		if !s.used[t.Text] {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}
	return fresh[s.rng.IntN(len(fresh))], true
}

func (s *selector) add(t Template, skill, difficulty string) {
	s.used[t.Text] = true
	s.out = append(s.out, Question{
		Index:            len(s.out),
		Text:             t.Text,
		Category:         t.Category,
		ExpectedKeywords: append([]string(nil), t.Keywords...),
		Skill:            skill,
		Difficulty:       difficulty,
	})
}

func (s *selector) fill(pool []Template, n int, skill, difficulty string) {
	for range n {
		t, ok := s.pick(pool)
		if !ok {
			return
		}
		s.add(t, skill, difficulty)
	}
}
