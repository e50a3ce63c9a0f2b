package medibot

import "context"

// Asker sends a prompt to a text-generation model and returns its reply.
type Asker interface {
	// Ask answers prompt. History holds the earlier turns of the
	// conversation and may be empty.
	// Returns EINVALID if the prompt is empty.
	Ask(ctx context.Context, history Transcript, prompt string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
