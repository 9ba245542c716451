package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure expected from the LLM. Use it by
// pointer; the compiled form is cached on first Validate.
type Schema struct {
	// Name is the tool or schema name sent to providers, kebab-case.
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Validate checks raw against the schema. Failures, including malformed
// JSON, are *ErrInvalidResponse.
func (s *Schema) Validate(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	s.once.Do(s.compile)
	if s.err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", s.Name, s.err)}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("does not match schema %q: %w", s.Name, err)}
	}
	return nil
}

func (s *Schema) compile() {
	// The compiler wants decoded JSON values, so round-trip the Go map.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = err
		return
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		s.err = err
		return
	}
	url := "mockview://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		s.err = err
		return
	}
	s.compiled, s.err = c.Compile(url)
}
