// Package model defines the minimal language model interface driven by
// model-backed workflow nodes, plus a deterministic MockModel for tests
// and examples. Provider adapters live in the subpackages anthropic and
// openai; each converts at the boundary once so callers never see
// provider-specific response shapes.
package model

import (
	"context"
	"fmt"
)

// Request is the normalized single-turn model input.
type Request struct {
	// Instructions is the system prompt. Optional.
	Instructions string `json:"instructions,omitempty"`

	// Input is the user turn.
	Input string `json:"input"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the normalized model output: the final answer text after any
// provider-side tool chatter.
type Response struct {
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the interface required by model-backed nodes to drive one turn
// of generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed by exact input text; unknown inputs get an echo
// response so graphs stay runnable without canned data.
type MockModel struct {
	info      Info
	responses map[string]string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input.
func (m *MockModel) AddResponse(input, response string) { m.responses[input] = response }

// Generate implements Model.
func (m *MockModel) Generate(_ context.Context, req Request) (*Response, error) {
	if resp, ok := m.responses[req.Input]; ok {
		return &Response{Text: resp}, nil
	}
	return &Response{Text: fmt.Sprintf("Mock response to: %s", req.Input)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
