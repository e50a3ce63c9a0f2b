package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	medihttp "github.com/fwojciec/medibot/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the server fails or the
// process receives SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := medihttp.NewServer(deps.Bot, deps.Logger)
	s.Addr = c.Addr

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.ListenAndServe(); err != nil {
			return fmt.Errorf("listen on %s: %w", c.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	fmt.Fprintf(deps.Stdout, "Serving on %s\n", c.Addr)
	return g.Wait()
}
