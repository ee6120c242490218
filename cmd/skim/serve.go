package main

import (
	"fmt"

	skimhttp "github.com/fwojciec/skim/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Addr
	}

	s := skimhttp.NewServer(deps.Logger)
	s.Addr = addr
	s.Extractor = deps.Extractor
	s.Summarizer = deps.Summarizer

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	fmt.Fprintf(deps.Stdout, "listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")
	return s.Close()
}
