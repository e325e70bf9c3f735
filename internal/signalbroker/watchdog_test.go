// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func watchTest(t *testing.T) (context.Context, chan os.Signal, *sync.WaitGroup) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 2)
	wg := &sync.WaitGroup{}

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	return ctx, sigCh, wg
}

func TestWatchFirstSignalCancelsContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, sigCh, wg := watchTest(t)

	sigCh <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled by the first signal")
	}

	close(sigCh)
	wg.Wait()
}

func TestWatchRepeatedSignalForcesExit(t *testing.T) {
	defer goleak.VerifyNone(t)

	exitCode := -1
	osExit = func(code int) { exitCode = code }

	t.Cleanup(func() { osExit = os.Exit })

	ctx, sigCh, wg := watchTest(t)

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	wg.Wait()

	assert.Equal(t, forcedExitCode, exitCode)
	require.Error(t, ctx.Err())

	// Watch closed the channel itself before exiting.
	_, open := <-sigCh
	assert.False(t, open)
}

func TestWatchDistinctSignalsDoNotForceExit(t *testing.T) {
	defer goleak.VerifyNone(t)

	exited := false
	osExit = func(int) { exited = true }

	t.Cleanup(func() { osExit = os.Exit })

	ctx, sigCh, wg := watchTest(t)

	sigCh <- os.Interrupt
	sigCh <- os.Kill

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}

	close(sigCh)
	wg.Wait()

	assert.False(t, exited, "distinct signal types must drain, not terminate")
}
