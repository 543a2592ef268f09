// Package llm talks to hosted language models for the LLM-backed
// classifier. Every request is one system prompt plus one user prompt, and
// normally a JSON Schema the reply must satisfy.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt and returns the model's reply.
type Provider interface {
	// Generate runs req. When req.Schema is set the reply Content is JSON
	// that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider is configured to use.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema constrains the reply through the provider's native structured
	// output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default, which for
	// classification should be close to deterministic anyway.
	Temperature float64
}

// Schema is a named JSON Schema. Name is sent as the tool or format name,
// e.g. "emotion-classification".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the validated JSON when the request had a Schema, and the
	// raw reply text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may be a
	// dated ID for an alias.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
