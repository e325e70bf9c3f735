// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/matt-FFFFFF/cmdzip/internal/cmdline"
	"github.com/matt-FFFFFF/cmdzip/internal/ctxlog"
)

const (
	dryRunSuffix  = ".txt"
	failureSuffix = ".err"
)

// runJob executes one command end-to-end: name generation, assembly,
// execution (or dry-run), output selection and the archive append.
// The returned error is fatal for the run; per-command failures are
// converted into ".err" entries instead.
func (s *Scheduler) runJob(ctx context.Context, raw string) error {
	raw = cmdline.Normalize(raw)
	full := cmdline.Assemble(s.cfg.CmdPrefix, raw, s.cfg.CmdPostfix)

	// Names are derived from the command as supplied, without the
	// prefix and postfix.
	name, err := s.gen.Generate(raw)
	if err != nil {
		return err
	}

	var stdout, stderr []byte

	success := true

	if s.cfg.DryRun {
		name += dryRunSuffix
		stdout = []byte(full)
	} else {
		stdout, stderr, success = s.execute(ctx, full)
	}

	stream := "stdout"

	if len(stdout) == 0 {
		fmt.Fprintf(s.stderr, "!! Command had no stdout, writing stderr instead: %s\n", full)

		stdout, stderr = stderr, stdout //nolint:staticcheck // stderr is spent after the swap
		stream = "stderr"
	}

	if !success {
		fmt.Fprintf(s.stderr, "!! Command failed: %s\n%s", full, stdout)

		name += failureSuffix
	}

	fmt.Fprintf(s.stdout, "`%s` << %d bytes from %s << `%s`\n", name, len(stdout), stream, full)

	return s.sink.Append(name, stdout)
}

// execute runs the assembled command as a child process and blocks
// until it exits. The blocking wait is deliberate backpressure: it
// caps concurrent children at the pool size. Lex and launch failures
// are isolated to the command, with the error text captured in place
// of process output.
func (s *Scheduler) execute(ctx context.Context, full string) (stdout, stderr []byte, success bool) {
	exe, err := cmdline.Split(full)
	if err != nil {
		return nil, []byte(err.Error() + "\n"), false
	}

	logger := ctxlog.Logger(ctx)
	logger.Debug("running command", "path", exe.Path, "args", exe.Args)

	var outBuf, errBuf bytes.Buffer

	cmd := exec.Command(exe.Path, exe.Args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process never launched; record why in the entry.
			fmt.Fprintf(&errBuf, "cmdzip: %v\n", runErr)
		}

		logger.Debug("command failed", "command", full, "error", runErr)

		return outBuf.Bytes(), errBuf.Bytes(), false
	}

	return outBuf.Bytes(), errBuf.Bytes(), true
}
