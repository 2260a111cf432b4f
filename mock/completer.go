package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.Completer = (*Completer)(nil)

// Completer is a mock implementation of sportsense.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}
