package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medibot"
)

// Ensure LoggingAsker implements medibot.Asker.
var _ medibot.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging. Prompt and reply text are not
// logged, only their sizes.
type LoggingAsker struct {
	next   medibot.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next medibot.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped Asker and logs the exchange.
func (a *LoggingAsker) Ask(ctx context.Context, history medibot.Transcript, prompt string) (reply string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("llm ask",
			"history", history.Len(),
			"prompt_bytes", len(prompt),
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, history, prompt)
}
