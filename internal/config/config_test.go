package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MOCKVIEW_CANDIDATE", "MOCKVIEW_DIFFICULTY", "MOCKVIEW_BANK", "MOCKVIEW_DB",
		"MOCKVIEW_LOG_LEVEL", "MOCKVIEW_LOG_FORMAT", "MOCKVIEW_SKILLS", "MOCKVIEW_PROJECTS",
		"MOCKVIEW_QUESTIONS", "MOCKVIEW_SEED", "MOCKVIEW_LLM_PROVIDER", "MOCKVIEW_LLM_MODEL",
		"MOCKVIEW_ANTHROPIC_API_KEY", "MOCKVIEW_OPENAI_API_KEY", "MOCKVIEW_GEMINI_API_KEY",
		"MOCKVIEW_OPENROUTER_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEAM_NAME", "Payments")
	path := writeConfig(t, `
interview:
  candidate: Sam
  count: 6
  difficulty: advanced
  skills: [go, sql]
  projects: ["${TEAM_NAME} API"]
  seed: 42
log:
  level: debug
  format: json
llm:
  provider: mock
  timeout: 5s
coach:
  max_tokens: 300
`)
	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "Sam", cfg.Interview.Candidate)
	assert.Equal(t, []string{"Payments API"}, cfg.Interview.Projects)
	assert.Equal(t, logging.FormatJSON, cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts, "defaults kept for unset keys")
	assert.Equal(t, 300, cfg.Coach.MaxTokens)

	plan := cfg.Interview.Plan()
	assert.Equal(t, question.Plan{Count: 6, Difficulty: "advanced", Skills: []string{"go", "sql"},
		Projects: []string{"Payments API"}, Seed: 42}, plan)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview:\n  count: 6\n  difficulty: easy\n")
	t.Setenv("MOCKVIEW_QUESTIONS", "12")
	t.Setenv("MOCKVIEW_SKILLS", "python, ,docker")
	t.Setenv("MOCKVIEW_DIFFICULTY", "medium")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Interview.Count)
	assert.Equal(t, "medium", cfg.Interview.Difficulty)
	assert.Equal(t, []string{"python", "docker"}, cfg.Interview.Skills)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOCKVIEW_SEED", "-1")
	_, err := Load("", false)
	assert.ErrorContains(t, err, "MOCKVIEW_SEED")
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview:\n  questions: 5\n")
	_, err := Load(path, true)
	assert.ErrorContains(t, err, "questions")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Interview.Count = 0
	cfg.Interview.Difficulty = "brutal"
	cfg.Log.Level = "loud"
	cfg.LLM.Provider = "anthropic"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"interview.count", "interview.difficulty", "log.level", "MOCKVIEW_ANTHROPIC_API_KEY"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/mockview/config.yaml", DefaultPath())
}
