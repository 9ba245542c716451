package llm

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
)

// MockResponse is one scripted reply. Content goes through the same schema
// checks as real provider output.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason StopReason
	Err        error
}

// MockProvider replays scripted responses in order and records requests.
// Once the script runs out every call fails with ErrProviderUnavailable.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	requests []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	var next MockResponse
	exhausted := len(m.script) == 0
	if !exhausted {
		next, m.script = m.script[0], m.script[1:]
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if exhausted {
		return nil, &ErrProviderUnavailable{Err: errors.New("mock script exhausted")}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, completion{
		text:  string(next.Content),
		usage: next.Usage,
		model: "mock",
		stop:  next.StopReason,
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

// Enqueue appends responses to the script.
func (m *MockProvider) Enqueue(rs ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, rs...)
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
