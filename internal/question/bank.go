package question

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBankYAML []byte

//go:embed bank.schema.json
var bankSchemaJSON []byte

// Template is a question blueprint in a bank.
type Template struct {
	Category Category `json:"category" yaml:"category"`
	Skill    string   `json:"skill,omitempty" yaml:"skill,omitempty"`
	Text     string   `json:"text" yaml:"text"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Bank is a collection of templates that questions are selected from.
type Bank struct {
	Templates []Template `json:"templates" yaml:"templates"`
}

// Format identifies the encoding of a bank file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatForPath picks a format from the file extension. Anything other than
// .json is treated as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

var defaultBank = sync.OnceValue(func() *Bank {
	b, err := ParseBank(defaultBankYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return b
})

// DefaultBank returns the built-in bank. Callers must not modify it.
func DefaultBank() *Bank {
	return defaultBank()
}

// LoadBank reads and validates a bank file.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := ParseBank(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return b, nil
}

// ParseBank decodes a bank document, checks it against the bank schema and
// normalizes its templates.
func ParseBank(data []byte, format Format) (*Bank, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var b Bank
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &b)
	default:
		err = yaml.Unmarshal(data, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	for i := range b.Templates {
		t := &b.Templates[i]
		t.Skill = strings.ToLower(strings.TrimSpace(t.Skill))
		t.Text = strings.TrimSpace(t.Text)
		t.Keywords = NormalizeKeywords(t.Keywords)
		if t.Category == "" {
			return nil, fmt.Errorf("template %d: category is required", i)
		}
	}
	return &b, nil
}

// decodeDocument returns the generic JSON value the schema validator expects.
// YAML is round-tripped through JSON so numbers and maps have JSON types.
func decodeDocument(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

var compiledBankSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	const url = "schema://question-bank.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// ByCategory returns the templates of one category in bank order.
func (b *Bank) ByCategory(c Category) []Template {
	var out []Template
	for _, t := range b.Templates {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// Technical returns the technical templates for a skill, falling back to the
// "general" technical pool when the skill has none.
func (b *Bank) Technical(skill string) []Template {
	skill = strings.ToLower(strings.TrimSpace(skill))
	var pool, general []Template
	for _, t := range b.Templates {
		if t.Category != CategoryTechnical {
			continue
		}
		switch t.Skill {
		case skill:
			pool = append(pool, t)
		case "general", "":
			general = append(general, t)
		}
	}
	if len(pool) == 0 {
		return general
	}
	return pool
}

// Categories returns the distinct categories present, in first-seen order.
func (b *Bank) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, t := range b.Templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
