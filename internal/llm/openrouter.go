package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// newOpenRouter targets OpenRouter's OpenAI-compatible API. Model IDs are
// OpenRouter's own ("vendor/model") and pass through unmapped.
func newOpenRouter(cfg OpenRouterConfig) (*openaiChat, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	conf.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	conf.HTTPClient = &http.Client{Transport: openRouterAttribution{base: http.DefaultTransport}}
	return newOpenAIWithConfig(conf, cfg.Model), nil
}

// openRouterAttribution adds the headers OpenRouter uses to attribute
// traffic to an app.
type openRouterAttribution struct {
	base http.RoundTripper
}

func (t openRouterAttribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", "mockview")
	r.Header.Set("HTTP-Referer", "https://github.com/abhisek/mockview")
	return t.base.RoundTrip(r)
}
