// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import (
	"errors"
	"fmt"

	"github.com/google/shlex"
)

var (
	// ErrEmptyCommand is returned when a command line contains no words.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrBadSyntax is returned when a command line cannot be split, e.g. an unterminated quote.
	ErrBadSyntax = errors.New("malformed command line")
)

// Executable is a program invocation prepared from a command line.
type Executable struct {
	Path string   // The program name or path, resolved against PATH at execution time.
	Args []string // Arguments to the program, not including the program itself.
}

// Assemble joins the command prefix, the raw command and the command
// postfix into the full command line. The prefix is separated from the
// command by a single space; the postfix is appended verbatim, so a
// postfix that needs separation must carry its own leading space.
func Assemble(prefix, command, postfix string) string {
	if prefix != "" {
		command = prefix + " " + command
	}

	return command + postfix
}

// Split divides a full command line into an Executable using POSIX
// shell word-splitting rules.
func Split(full string) (Executable, error) {
	words, err := shlex.Split(full)
	if err != nil {
		return Executable{}, fmt.Errorf("%w: %w", ErrBadSyntax, err)
	}

	if len(words) == 0 {
		return Executable{}, ErrEmptyCommand
	}

	return Executable{
		Path: words[0],
		Args: words[1:],
	}, nil
}
