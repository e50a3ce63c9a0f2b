package mock

import (
	"context"

	"github.com/fwojciec/medibot"
)

var _ medibot.Asker = (*Asker)(nil)

// Asker is a mock implementation of medibot.Asker.
type Asker struct {
	AskFn func(ctx context.Context, history medibot.Transcript, prompt string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, history medibot.Transcript, prompt string) (string, error) {
	return a.AskFn(ctx, history, prompt)
}
