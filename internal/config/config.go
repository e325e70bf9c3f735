// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"regexp"
	"runtime"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoOutput is returned when the output path is empty.
	ErrNoOutput = errors.New("output path must not be empty")
	// ErrReplaceWithoutPattern is returned when a name replacement is configured without a name pattern.
	ErrReplaceWithoutPattern = errors.New("name replacement requires a name pattern")
	// ErrInvalidPattern is returned when the name pattern does not compile.
	ErrInvalidPattern = errors.New("name pattern is not a valid regular expression")
	// ErrNegativeThreads is returned when the thread count is negative.
	ErrNegativeThreads = errors.New("thread count must not be negative")
	// ErrNegativeLimit is returned when the command limit is below NoLimit.
	ErrNegativeLimit = errors.New("command limit must not be negative")
)

// NoLimit disables the maximum-commands limit.
const NoLimit = -1

// Config is the immutable snapshot of resolved options for one run.
type Config struct {
	// Output is the path of the zip archive to write.
	Output string
	// Append adds entries to an existing archive instead of replacing it.
	Append bool
	// DryRun archives the assembled command text instead of running anything.
	DryRun bool
	// Input is an optional file of commands, one per line; "-" reads stdin.
	Input string
	// CmdPrefix is prepended to every command. It does not partake in name generation.
	CmdPrefix string
	// CmdPostfix is appended to every command. It does not partake in name generation.
	CmdPostfix string
	// NamePattern is the regex used to extract an entry name from each command.
	NamePattern string
	// NameReplace is the expansion template applied to NamePattern's captures.
	NameReplace string
	// NamePrefix is prepended to every generated name, after match/replace.
	NamePrefix string
	// NamePostfix is appended to every generated name, after NamePrefix.
	NamePostfix string
	// Threads is the number of parallel workers; 0 means all cores.
	Threads int
	// Limit caps the number of dispatched commands; NoLimit disables the cap.
	Limit int
	// Commands are the positional command lines, run after any Input lines.
	Commands []string
}

// Validate checks the configuration before any command is dispatched.
// All problems are reported together rather than one at a time.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Output == "" {
		result = multierror.Append(result, ErrNoOutput)
	}

	if c.NameReplace != "" && c.NamePattern == "" {
		result = multierror.Append(result, ErrReplaceWithoutPattern)
	}

	if c.NamePattern != "" {
		if _, err := regexp.Compile(c.NamePattern); err != nil {
			result = multierror.Append(result, errors.Join(ErrInvalidPattern, err))
		}
	}

	if c.Threads < 0 {
		result = multierror.Append(result, ErrNegativeThreads)
	}

	if c.Limit < NoLimit {
		result = multierror.Append(result, ErrNegativeLimit)
	}

	return result.ErrorOrNil()
}

// Workers returns the effective worker-pool size: Threads, or the
// number of CPU cores when Threads is 0.
func (c *Config) Workers() int {
	if c.Threads == 0 {
		return runtime.NumCPU()
	}

	return c.Threads
}
