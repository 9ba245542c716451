// Package config loads mockview settings from defaults, an optional YAML
// file and MOCKVIEW_* environment variables, in that order.
package config

import (
	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/llm"
	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
)

// Config is the complete mockview configuration.
type Config struct {
	Interview InterviewConfig `yaml:"interview"`

	// Bank is a YAML or JSON question bank. Empty uses the built-in bank.
	Bank string `yaml:"bank"`

	// DB is the SQLite database path. Empty uses store.DefaultDBPath.
	DB string `yaml:"db"`

	Log   logging.Config `yaml:"log"`
	LLM   llm.Config     `yaml:"llm"`
	Coach coach.Config   `yaml:"coach"`
}

// InterviewConfig describes the interview that play generates.
type InterviewConfig struct {
	Candidate  string   `yaml:"candidate"`
	Count      int      `yaml:"count"`
	Difficulty string   `yaml:"difficulty"`
	Skills     []string `yaml:"skills"`
	Projects   []string `yaml:"projects"`
	// Seed fixes question selection. Zero picks a random seed per run.
	Seed uint64 `yaml:"seed"`
	// Coach requests coaching notes after each interview when an LLM
	// provider is configured. On by default.
	Coach bool `yaml:"coach"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interview: InterviewConfig{
			Count:      10,
			Difficulty: question.DifficultyMedium,
			Coach:      true,
		},
		Log:   logging.DefaultConfig(),
		LLM:   llm.DefaultConfig(),
		Coach: coach.DefaultConfig(),
	}
}

// Plan converts the interview settings into a question plan.
func (c InterviewConfig) Plan() question.Plan {
	return question.Plan{
		Count:      c.Count,
		Difficulty: c.Difficulty,
		Skills:     c.Skills,
		Projects:   c.Projects,
		Seed:       c.Seed,
	}
}
