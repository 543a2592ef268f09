package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds compiled response schemas keyed by name and
// definition. The classifier's label enum comes from the label artifact,
// so one name can carry several definitions.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// validateResponse checks a reply against s. A nil schema accepts
// anything; failures are *ErrInvalidResponse.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	invalid := func(format string, err error) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, err)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := compileSchema(s)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %s: %w", s.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	key := s.Name + "\x00" + string(def)
	if cached, ok := compiledSchemas.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	url := "schema://moodcheck/llm/" + s.Name + ".json"
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiledSchemas.Store(key, compiled)
	return compiled, nil
}
