package llm

import "context"

// Request is a single-turn completion request
type Request struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
}

// Response is the text answer of a completion request
type Response struct {
	Text  string
	Usage Usage
}

// Provider is a model client bound to one provider and one model identifier.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, req Request) (Response, error)
}
