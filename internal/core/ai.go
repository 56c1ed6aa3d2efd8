package core

import "context"

// LLMProvider is the external text-generation collaborator. The gateway
// builds a complete prompt; providers are interchangeable behind this.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
