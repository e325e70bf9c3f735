// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"bufio"
	"errors"
	"io"

	"github.com/matt-FFFFFF/cmdzip/internal/config"
	"github.com/spf13/afero"
)

// StdinPlaceholder selects standard input as the command source.
const StdinPlaceholder = "-"

var (
	// ErrOpenInput is returned when the input file cannot be opened.
	ErrOpenInput = errors.New("failed to open input file")
	// ErrReadInput is returned when reading the input source fails.
	ErrReadInput = errors.New("failed to read input source")
)

// Commands resolves the full command sequence for a run: lines from
// the input source first, in file order, then the positional commands.
func Commands(fsys afero.Fs, stdin io.Reader, cfg *config.Config) ([]string, error) {
	if cfg.Input == "" {
		return cfg.Commands, nil
	}

	r := stdin

	if cfg.Input != StdinPlaceholder {
		f, err := fsys.Open(cfg.Input)
		if err != nil {
			return nil, errors.Join(ErrOpenInput, err)
		}
		defer f.Close() //nolint:errcheck

		r = f
	}

	var commands []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		commands = append(commands, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Join(ErrReadInput, err)
	}

	return append(commands, cfg.Commands...), nil
}
