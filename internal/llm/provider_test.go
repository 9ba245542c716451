package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notesSchema mirrors the shape of the coaching notes schema.
func notesSchema() *Schema {
	return &Schema{
		Name:        "test-notes",
		Description: "Coaching notes",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":     map[string]any{"type": "string"},
				"focus_areas": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
			},
			"required":             []any{"summary", "focus_areas"},
			"additionalProperties": false,
		},
	}
}

const validNotes = `{"summary":"Solid answers.","focus_areas":["Use examples"]}`

func coachRequest(schema *Schema) Request {
	return Request{
		System:    "You coach candidates.",
		Messages:  []Message{{Role: RoleUser, Content: "Here is the interview."}},
		Schema:    schema,
		MaxTokens: 256,
	}
}

// jsonServer answers every request with status and body, recording the
// last request body and headers.
type jsonServer struct {
	*httptest.Server
	lastBody   map[string]any
	lastHeader http.Header
}

func newJSONServer(t *testing.T, status int, body any, header http.Header) *jsonServer {
	t.Helper()
	s := &jsonServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastHeader = r.Header.Clone()
		s.lastBody = nil
		_ = json.NewDecoder(r.Body).Decode(&s.lastBody)
		for k, vs := range header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestFinish(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		resp, err := finish(Request{}, completion{text: "hello", usage: Usage{InputTokens: 3, OutputTokens: 2}, model: "m"})
		require.NoError(t, err)
		assert.Equal(t, "hello", string(resp.Content))
		assert.Equal(t, 5, resp.Usage.TotalTokens)
		assert.Equal(t, StopEnd, resp.StopReason)
	})

	t.Run("code fence stripped for schema requests", func(t *testing.T) {
		resp, err := finish(coachRequest(notesSchema()), completion{text: "```json\n" + validNotes + "\n```"})
		require.NoError(t, err)
		assert.JSONEq(t, validNotes, string(resp.Content))
	})

	t.Run("truncated structured output", func(t *testing.T) {
		_, err := finish(coachRequest(notesSchema()), completion{text: `{"summary":"Sol`, stop: StopMaxTokens})
		var maxTok *ErrMaxTokensExceeded
		require.ErrorAs(t, err, &maxTok)
		assert.Equal(t, `{"summary":"Sol`, string(maxTok.Content))
	})

	t.Run("truncated text is returned", func(t *testing.T) {
		resp, err := finish(Request{}, completion{text: "partial", stop: StopMaxTokens})
		require.NoError(t, err)
		assert.Equal(t, StopMaxTokens, resp.StopReason)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		_, err := finish(coachRequest(notesSchema()), completion{text: `{"summary":"x"}`})
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestStripCodeFence(t *testing.T) {
	for in, want := range map[string]string{
		`{"a":1}`:                  `{"a":1}`,
		"  {\"a\":1}\n":            `{"a":1}`,
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"```\n{\"a\":1}```":        `{"a":1}`,
		"```json\n{\"a\":1}\n``` ": `{"a":1}`,
	} {
		assert.Equal(t, want, string(stripCodeFence([]byte(in))), "input %q", in)
	}
}

func TestSystemText(t *testing.T) {
	assert.Equal(t, "sys", systemText(Request{System: "sys"}))
	assert.Equal(t, "sys\n\nRespond with JSON: Coaching notes.", systemText(Request{System: "sys", Schema: notesSchema()}))
	assert.Equal(t, "Respond with JSON: Coaching notes.", systemText(Request{Schema: notesSchema()}))
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "custom-model-id", resolveModel("custom-model-id", openaiModels))
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(429, http.Header{"Retry-After": {"7"}}, cause), &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
	assert.ErrorIs(t, rl, cause)

	require.ErrorAs(t, classifyStatus(429, http.Header{"Retry-After": {"Wed, 21 Oct 2026 07:28:00 GMT"}}, cause), &rl)
	assert.Zero(t, rl.RetryAfter)

	var auth *ErrAuth
	require.ErrorAs(t, classifyStatus(403, nil, cause), &auth)
	assert.Equal(t, 403, auth.StatusCode)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(503, nil, cause), &unavail)
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(validNotes), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, coachRequest(notesSchema()))
	require.NoError(t, err)
	assert.JSONEq(t, validNotes, string(resp.Content))
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "mock", resp.Model)

	var rl *ErrRateLimit
	_, err = mock.Generate(ctx, Request{})
	assert.ErrorAs(t, err, &rl)

	var unavail *ErrProviderUnavailable
	_, err = mock.Generate(ctx, Request{})
	assert.ErrorAs(t, err, &unavail, "script exhausted")

	mock.Enqueue(MockResponse{Content: json.RawMessage(`"late"`)})
	resp, err = mock.Generate(ctx, Request{System: "last"})
	require.NoError(t, err)
	assert.Equal(t, `"late"`, string(resp.Content))

	reqs := mock.Requests()
	require.Len(t, reqs, 4)
	assert.Equal(t, "You coach candidates.", reqs[0].System)
	assert.Equal(t, "last", reqs[3].System)
	assert.Equal(t, 4, mock.CallCount())
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"summary":1}`)})
	_, err := mock.Generate(context.Background(), coachRequest(notesSchema()))
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestMockProvider_CanceledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeCoach, PurposeFrom(WithPurpose(ctx, PurposeCoach)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "no provider disables coaching", cfg: Config{}},
		{name: "mock needs no key", cfg: Config{Provider: ProviderMock}},
		{name: "anthropic with key", cfg: Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}},
		{name: "anthropic without key", cfg: Config{Provider: ProviderAnthropic}, wantErr: "MOCKVIEW_ANTHROPIC_API_KEY"},
		{name: "openai without key", cfg: Config{Provider: ProviderOpenAI}, wantErr: "MOCKVIEW_OPENAI_API_KEY"},
		{name: "openrouter without key", cfg: Config{Provider: ProviderOpenRouter}, wantErr: "MOCKVIEW_OPENROUTER_API_KEY"},
		{name: "unknown provider", cfg: Config{Provider: "bard"}, wantErr: "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
