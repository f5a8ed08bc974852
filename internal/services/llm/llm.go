// Package llm abstracts the generative-text API used by the prompt chain.
package llm

import "context"

// Client is the minimal surface the prompt chain needs from a model
// provider. Implementations must be safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
