package llm

import (
	"context"
)

// Client is a text-generation backend: one prompt in, one reply out.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
