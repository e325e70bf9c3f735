package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
)

const forcedExitCode = 130

// osExit is swapped out in tests.
var osExit = os.Exit

// Watch handles delivered signals. The first signal of any type
// cancels the context: the scheduler stops dispatching and waits for
// running children, since a dispatched child cannot be aborted. A
// second signal of the same type means the user does not want to wait,
// so the process terminates immediately with a non-zero status.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Logger(ctx).Error("watchdog", "detail", "repeated signal, terminating without waiting for children", "signal", sig.String())

			// Unregister before closing: os/signal keeps delivering to
			// the channel otherwise, and a send on the closed channel
			// would panic the process on a third signal.
			signal.Stop(sigCh)
			close(sigCh)
			osExit(forcedExitCode)

			return
		}

		seen[sig] = struct{}{}

		ctxlog.Logger(ctx).Warn("watchdog", "detail", "signal received, dispatching no further commands; repeat to terminate immediately", "signal", sig.String())
		cancel()
	}
}
