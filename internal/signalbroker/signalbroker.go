// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker reacts to termination signals during a run.
// The first signal cancels the run's context so no further commands
// are dispatched and in-flight children drain; a second signal of the
// same type gives up on the drain and terminates the process.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New registers the process for the given termination signals and
// returns the delivery channel. With no signals supplied it listens
// for the default termination set.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "registering for signals", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
