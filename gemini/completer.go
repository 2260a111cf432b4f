// Package gemini implements the completion interface and token counting
// using Google Gemini.
package gemini

import (
	"context"

	"github.com/sportsense/sportsense"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var _ sportsense.Completer = (*Completer)(nil)

// Completer generates text using the Gemini API.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a Completer using the given default model.
// An empty model falls back to DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete returns generated text for the prompt.
func (c *Completer) Complete(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	config := &genai.GenerateContentConfig{}
	if system := systemInstruction(opts); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if opts.Temperature > 0 {
		temp := float32(opts.Temperature)
		config.Temperature = &temp
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", sportsense.Errorf(sportsense.EUNAVAILABLE, "completion request: %v", err)
	}
	if result == nil {
		return "", sportsense.Errorf(sportsense.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// systemInstruction merges the system prompt with the output language
// requirement.
func systemInstruction(opts sportsense.CompletionOptions) string {
	system := opts.SystemPrompt
	if opts.Language != "" {
		if system != "" {
			system += "\n"
		}
		system += "Respond in " + opts.Language + "."
	}
	return system
}
