package bot

import (
	"context"

	"github.com/fwojciec/medibot"
	"golang.org/x/time/rate"
)

var _ medibot.Asker = (*LimitedAsker)(nil)

// LimitedAsker wraps an Asker with a token bucket so that calls stay within
// the model provider's request quota. Calls block until a token is available
// or ctx is done.
type LimitedAsker struct {
	next    medibot.Asker
	limiter *rate.Limiter
}

// NewLimitedAsker allows rps requests per second with a burst of 1.
// A non-positive rps disables limiting.
func NewLimitedAsker(next medibot.Asker, rps float64) *LimitedAsker {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &LimitedAsker{next: next, limiter: rate.NewLimiter(limit, 1)}
}

// Ask waits for the limiter and delegates to the wrapped Asker.
func (a *LimitedAsker) Ask(ctx context.Context, history medibot.Transcript, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return a.next.Ask(ctx, history, prompt)
}
