// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdzip/internal/archive"
	"github.com/matt-FFFFFF/cmdzip/internal/config"
	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdzip/internal/namegen"
)

// commentMarker starts a command line that is echoed to diagnostics
// and never executed.
const commentMarker = "#"

// Scheduler dispatches commands to a fixed pool of workers and owns
// the run's fatal-error state. Configuration, the name generator and
// the sink are shared read-only; the sink serializes its own writes.
type Scheduler struct {
	cfg    *config.Config
	gen    namegen.Generator
	sink   *archive.Sink
	stdout io.Writer // per-command completion lines
	stderr io.Writer // warnings and lifecycle diagnostics

	mu    sync.Mutex
	fatal *multierror.Error
}

// New creates a scheduler. Completion lines go to stdout, everything
// else to stderr, matching the tool's diagnostic contract.
func New(cfg *config.Config, gen namegen.Generator, sink *archive.Sink, stdout, stderr io.Writer) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		gen:    gen,
		sink:   sink,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run dispatches every non-comment command to the worker pool, joins
// all workers, and finalizes the archive exactly once. Dispatch is
// fire-and-forget up to the pool size; a full pool applies
// backpressure through the unbuffered job channel.
//
// Naming and archive errors are fatal: dispatch stops, in-flight
// children drain (they are never aborted), the sink is abandoned
// without finalizing (in append mode the original archive is left
// untouched) and the error is returned. A context cancellation stops
// dispatch the same way but still finalizes what was captured.
func (s *Scheduler) Run(ctx context.Context, commands []string) error {
	logger := ctxlog.Logger(ctx).With("workers", s.cfg.Workers())
	logger.Debug("starting worker pool")

	jobs := make(chan string)
	wg := &sync.WaitGroup{}

	for range s.cfg.Workers() {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for raw := range jobs {
				if err := s.runJob(ctx, raw); err != nil {
					s.recordFatal(err)
				}
			}
		}()
	}

	dispatched := 0

dispatch:
	for _, raw := range commands {
		if strings.HasPrefix(raw, commentMarker) {
			fmt.Fprintf(s.stderr, "## %s\n", strings.TrimPrefix(raw, commentMarker))
			continue
		}

		if s.cfg.Limit != config.NoLimit && dispatched >= s.cfg.Limit {
			fmt.Fprintln(s.stderr, "!! Reached command limit")
			break
		}

		if s.hasFatal() {
			break
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.stderr, "!! Interrupted, dispatching no further commands")
			break dispatch
		default:
		}

		dispatched++
		jobs <- raw
	}

	close(jobs)

	fmt.Fprintln(s.stderr, "-- Waiting for all children to finish...")
	wg.Wait()

	logger.Debug("all workers finished", "dispatched", dispatched)

	if err := s.fatalErr(); err != nil {
		if abortErr := s.sink.Abort(); abortErr != nil {
			err = multierror.Append(err, abortErr)
		}

		return err
	}

	if err := s.sink.Close(); err != nil {
		return err
	}

	fmt.Fprintln(s.stderr, "-- Done!")

	return nil
}

func (s *Scheduler) recordFatal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fatal = multierror.Append(s.fatal, err)
}

func (s *Scheduler) hasFatal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fatal != nil
}

func (s *Scheduler) fatalErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fatal.ErrorOrNil()
}
