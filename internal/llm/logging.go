package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event and logs it.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Provider with event recording. repo and logger may
// each be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	ctx = logging.WithAttrs(ctx, slog.String("llm_purpose", purpose))

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			data.ResponseBody = string(invalid.Content)
		}
		l.logger.WarnContext(ctx, "llm request failed",
			slog.String("model", data.Model), slog.Any("error", err))
	} else {
		l.logger.DebugContext(ctx, "llm request",
			slog.String("model", data.Model),
			slog.Int64("latency_ms", data.LatencyMs),
			slog.Int("input_tokens", data.InputTokens),
			slog.Int("output_tokens", data.OutputTokens))
	}

	// A failed write never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.WarnContext(ctx, "failed to record llm request", slog.Any("error", logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
