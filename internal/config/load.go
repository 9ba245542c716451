package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
)

const maxQuestions = 50

// DefaultPath returns $XDG_CONFIG_HOME/mockview/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mockview", "config.yaml")
}

// Load reads the config at path on top of the defaults, applies environment
// overrides and validates the result. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := Parse(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Parse decodes YAML into cfg, expanding ${VAR} references first. Unknown
// keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := []struct {
		env string
		dst *string
	}{
		{"MOCKVIEW_CANDIDATE", &c.Interview.Candidate},
		{"MOCKVIEW_DIFFICULTY", &c.Interview.Difficulty},
		{"MOCKVIEW_BANK", &c.Bank},
		{"MOCKVIEW_DB", &c.DB},
		{"MOCKVIEW_LOG_LEVEL", &c.Log.Level},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
		}
	}
	if v := os.Getenv("MOCKVIEW_LOG_FORMAT"); v != "" {
		c.Log.Format = logging.Format(v)
	}
	if v := os.Getenv("MOCKVIEW_SKILLS"); v != "" {
		c.Interview.Skills = splitList(v)
	}
	if v := os.Getenv("MOCKVIEW_PROJECTS"); v != "" {
		c.Interview.Projects = splitList(v)
	}
	if v := os.Getenv("MOCKVIEW_QUESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MOCKVIEW_QUESTIONS: %w", err)
		}
		c.Interview.Count = n
	}
	if v := os.Getenv("MOCKVIEW_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MOCKVIEW_SEED: %w", err)
		}
		c.Interview.Seed = n
	}
	c.LLM.ApplyEnv()
	return nil
}

// Validate checks every section and joins the problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.Interview.Count < 1 || c.Interview.Count > maxQuestions {
		errs = append(errs, fmt.Errorf("interview.count must be between 1 and %d, got %d", maxQuestions, c.Interview.Count))
	}
	switch strings.ToLower(c.Interview.Difficulty) {
	case question.DifficultyEasy, question.DifficultyMedium, question.DifficultyAdvanced:
	default:
		errs = append(errs, fmt.Errorf("interview.difficulty must be easy, medium or advanced, got %q", c.Interview.Difficulty))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch logging.Format(strings.ToLower(string(c.Log.Format))) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("llm: %w", err))
	}
	if c.Coach.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("coach.max_tokens must not be negative"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
