// Package openai implements the completion and embedding interfaces on
// OpenAI-compatible backends. Pointing the base URL at a local Ollama
// server works the same way; only the model names change.
package openai

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sportsense/sportsense"
)

// NewClient creates an OpenAI API client. An empty baseURL targets the
// official API; set it to reach a compatible local server.
func NewClient(apiKey, baseURL string) openai.Client {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}

var _ sportsense.Completer = (*Completer)(nil)

// Completer generates text through the chat completions API.
type Completer struct {
	client openai.Client
	model  string
}

// NewCompleter creates a Completer using the given default model.
func NewCompleter(client openai.Client, model string) *Completer {
	return &Completer{client: client, model: model}
}

// Complete returns generated text for the prompt.
func (c *Completer) Complete(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if system := systemInstruction(opts); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", sportsense.Errorf(sportsense.EUNAVAILABLE, "completion request: %v", err)
	}
	if len(response.Choices) == 0 {
		return "", sportsense.Errorf(sportsense.EUNAVAILABLE, "completion backend returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

var _ sportsense.Embedder = (*Embedder)(nil)

// Embedder converts text into vectors through the embeddings API.
type Embedder struct {
	client openai.Client
	model  string
}

// NewEmbedder creates an Embedder using the given embedding model.
func NewEmbedder(client openai.Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// EmbedTexts returns one vector per input text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	response, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EUNAVAILABLE, "embedding request: %v", err)
	}
	if len(response.Data) != len(texts) {
		return nil, sportsense.Errorf(sportsense.EINTERNAL, "embedding backend returned %d vectors for %d texts", len(response.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, data := range response.Data {
		i := int(data.Index)
		if i < 0 || i >= len(vectors) {
			return nil, sportsense.Errorf(sportsense.EINTERNAL, "embedding index %d out of range", i)
		}
		vector := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vector[j] = float32(v)
		}
		vectors[i] = vector
	}
	return vectors, nil
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
