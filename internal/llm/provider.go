package llm

import (
	"bytes"
	"context"
	"encoding/json"
)

// Provider generates a completion from an LLM. Coaching is the only caller,
// so requests are single-turn and usually carry a Schema.
type Provider interface {
	// Generate sends req and returns the model's reply. When req.Schema is
	// set, Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Coaching sends one user message.
	Messages []Message

	// Schema, when set, asks for JSON output in the provider's native
	// structured mode. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StopReason says why generation ended, normalized across providers.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the LLM's output.
type Response struct {
	// Content is validated JSON for schema requests and raw text otherwise.
	Content json.RawMessage

	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is a provider reply before the shared checks in finish.
type completion struct {
	text  string
	usage Usage
	model string
	stop  StopReason
}

// finish turns a provider reply into a Response. For schema requests it
// strips a Markdown code fence, rejects output cut off at the token limit
// and validates the JSON.
func finish(req Request, c completion) (*Response, error) {
	content := json.RawMessage(c.text)
	if req.Schema != nil {
		content = stripCodeFence(content)
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := req.Schema.Validate(content); err != nil {
			return nil, err
		}
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	if c.stop == "" {
		c.stop = StopEnd
	}
	return &Response{
		Content:    content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add around
// structured output.
func stripCodeFence(b []byte) []byte {
	t := bytes.TrimSpace(b)
	if !bytes.HasPrefix(t, []byte("```")) {
		return t
	}
	t = t[3:]
	if nl := bytes.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = bytes.TrimSuffix(bytes.TrimSpace(t), []byte("```"))
	return bytes.TrimSpace(t)
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through as direct IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// systemText is the system prompt plus, for schema requests, the schema
// description, for providers whose structured mode has no description field.
func systemText(req Request) string {
	if req.Schema == nil || req.Schema.Description == "" {
		return req.System
	}
	if req.System == "" {
		return "Respond with JSON: " + req.Schema.Description + "."
	}
	return req.System + "\n\nRespond with JSON: " + req.Schema.Description + "."
}
