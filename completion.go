package sportsense

import "context"

// CompletionOptions controls a single completion call.
type CompletionOptions struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"maxTokens"`
	Language     string  `json:"language"` // desired output language
	SystemPrompt string  `json:"systemPrompt"`
}

// Completer generates text from a prompt via an LLM backend.
type Completer interface {
	// Complete returns generated text for the prompt.
	// Fails with EUNAVAILABLE if the backend is unreachable.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
