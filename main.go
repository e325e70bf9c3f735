// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the cmdzip command-line application.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cmdzip/cmd"
	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdzip/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := cmd.RootCmd.Run(ctx, os.Args)

	// os.Exit skips deferred calls, so release the context first.
	cancel()

	if err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}
}
