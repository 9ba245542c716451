package llm

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouter_SendsAttributionAndModel(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, chatCompletion(validNotes, "stop"), nil)
	p, err := newOpenRouter(OpenRouterConfig{
		APIKey:  "or-key",
		Model:   "anthropic/claude-3.5-haiku",
		BaseURL: srv.URL + "/api/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3.5-haiku", p.ModelID())

	resp, err := p.Generate(context.Background(), coachRequest(notesSchema()))
	require.NoError(t, err)
	assert.JSONEq(t, validNotes, string(resp.Content))

	assert.Equal(t, "anthropic/claude-3.5-haiku", srv.lastBody["model"])
	assert.Equal(t, "mockview", srv.lastHeader.Get("X-Title"))
	assert.NotEmpty(t, srv.lastHeader.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer or-key", srv.lastHeader.Get("Authorization"))
}

func TestOpenRouter_RequiresKey(t *testing.T) {
	_, err := newOpenRouter(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.Error(t, err)
}
