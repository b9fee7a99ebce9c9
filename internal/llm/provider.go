package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a completion, optionally constrained to a JSON schema.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the returned Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model identifier.
	ModelID() string
}

// Request is a single completion call.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil for free text
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// UserRequest builds a single-turn request.
func UserRequest(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema used for structured output.
//
// Name is kebab-case ("health-report") and doubles as the cache key for the
// compiled validator, so two schemas must not share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the output of a Generate call.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage is token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type purposeKey struct{}

// WithPurpose tags ctx so event logging can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
