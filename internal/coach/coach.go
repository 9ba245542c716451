// Package coach asks an LLM for coaching notes on a finished interview.
// The notes supplement the deterministic report and never alter it.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/llm"
	"github.com/abhisek/mockview/internal/logging"
)

// maxAnswerRunes caps each answer in the prompt.
const maxAnswerRunes = 1200

// ErrNoAnswers is returned when every question was skipped.
var ErrNoAnswers = errors.New("no answered questions to coach on")

// Config holds coaching request settings.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns sensible defaults for coaching requests.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.4,
	}
}

// Notes are coaching notes for one interview.
type Notes struct {
	Summary      string   `json:"summary"`
	FocusAreas   []string `json:"focus_areas"`
	PracticePlan []string `json:"practice_plan"`
}

// Service generates coaching notes.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a coaching service. logger may be nil.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// Notes asks the provider for coaching notes on res.
func (s *Service) Notes(ctx context.Context, res *interview.Result) (*Notes, error) {
	if res == nil || res.Report == nil {
		return nil, fmt.Errorf("coach: result has no report")
	}
	if res.Report.QuestionsAnswered == 0 {
		return nil, ErrNoAnswers
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeCoach)
	ctx = logging.WithAttrs(ctx, slog.String("session_id", res.SessionID))

	userMsg, err := buildUserMessage(trimAnswers(res))
	if err != nil {
		return nil, fmt.Errorf("build coaching prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      NotesSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM coaching failed: %w", err)
	}

	var notes Notes
	if err := json.Unmarshal(resp.Content, &notes); err != nil {
		return nil, fmt.Errorf("failed to parse coaching response: %w", err)
	}
	notes.FocusAreas = compact(notes.FocusAreas)
	notes.PracticePlan = compact(notes.PracticePlan)
	notes.Summary = strings.TrimSpace(notes.Summary)

	s.logger.DebugContext(ctx, "coaching notes generated",
		slog.Int("focus_areas", len(notes.FocusAreas)),
		slog.Int("practice_steps", len(notes.PracticePlan)))
	return &notes, nil
}

// trimAnswers returns a shallow copy of res with long answers cut short.
func trimAnswers(res *interview.Result) *interview.Result {
	cp := *res
	cp.Questions = make([]interview.QuestionResult, len(res.Questions))
	for i, q := range res.Questions {
		if r := []rune(q.Answer); len(r) > maxAnswerRunes {
			q.Answer = string(r[:maxAnswerRunes]) + "..."
		}
		cp.Questions[i] = q
	}
	return &cp
}

func compact(items []string) []string {
	out := items[:0]
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
