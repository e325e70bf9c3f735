// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package namegen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"
)

var (
	// ErrReplaceWithoutPattern is returned when a replacement template is supplied without a pattern.
	ErrReplaceWithoutPattern = errors.New("cannot specify a name replacement without a name pattern")
	// ErrInvalidPattern is returned when the name pattern does not compile.
	ErrInvalidPattern = errors.New("invalid name pattern")
	// ErrNoMatch is returned when the name pattern does not match a command.
	ErrNoMatch = errors.New("name pattern did not match command")
)

// Generator maps a raw command line to an archive entry name.
// Generate may be called concurrently from any worker.
type Generator interface {
	// Generate returns the entry name for the given command.
	Generate(command string) (string, error)
	// Strategy returns a short human-readable description of the base strategy.
	Strategy() string
}

// Options selects the base naming strategy and its decoration.
// Pattern and Replace correspond to the name-pattern and name-replace
// flags; Prefix and Postfix are applied after the base strategy, in
// that order.
type Options struct {
	Pattern string
	Replace string
	Prefix  string
	Postfix string
}

// New builds a generator from the given options.
// A replacement without a pattern is a configuration error.
func New(opts Options) (Generator, error) {
	if opts.Replace != "" && opts.Pattern == "" {
		return nil, ErrReplaceWithoutPattern
	}

	var gen Generator

	switch {
	case opts.Pattern == "":
		gen = &counter{}
	default:
		re, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}

		if opts.Replace == "" {
			gen = &match{re: re}
		} else {
			gen = &expand{re: re, template: opts.Replace}
		}
	}

	// Decoration order is fixed: prefix first, then postfix.
	if opts.Prefix != "" {
		gen = &prefixed{inner: gen, prefix: opts.Prefix}
	}

	if opts.Postfix != "" {
		gen = &postfixed{inner: gen, postfix: opts.Postfix}
	}

	return gen, nil
}

// counter names entries with a shared monotonically increasing
// integer, starting at 0. Claiming a value is atomic, so no two
// invocations observe the same number regardless of concurrency.
type counter struct {
	next atomic.Uint64
}

func (c *counter) Generate(_ string) (string, error) {
	return strconv.FormatUint(c.next.Add(1)-1, 10), nil
}

func (c *counter) Strategy() string {
	return "numeric"
}

// match names entries with the full substring matched by the pattern.
type match struct {
	re *regexp.Regexp
}

func (m *match) Generate(command string) (string, error) {
	loc := m.re.FindStringIndex(command)
	if loc == nil {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, command)
	}

	return command[loc[0]:loc[1]], nil
}

func (m *match) Strategy() string {
	return "regex match: " + m.re.String()
}

// expand names entries by expanding the replacement template against
// the pattern's capture groups. Both positional ($1) and named ($name)
// references are supported.
type expand struct {
	re       *regexp.Regexp
	template string
}

func (e *expand) Generate(command string) (string, error) {
	idx := e.re.FindStringSubmatchIndex(command)
	if idx == nil {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, command)
	}

	return string(e.re.ExpandString(nil, e.template, command, idx)), nil
}

func (e *expand) Strategy() string {
	return fmt.Sprintf("regex replace: %s / %s", e.re.String(), e.template)
}

type prefixed struct {
	inner  Generator
	prefix string
}

func (p *prefixed) Generate(command string) (string, error) {
	name, err := p.inner.Generate(command)
	if err != nil {
		return "", err
	}

	return p.prefix + name, nil
}

func (p *prefixed) Strategy() string {
	return p.inner.Strategy()
}

type postfixed struct {
	inner   Generator
	postfix string
}

func (p *postfixed) Generate(command string) (string, error) {
	name, err := p.inner.Generate(command)
	if err != nil {
		return "", err
	}

	return name + p.postfix, nil
}

func (p *postfixed) Strategy() string {
	return p.inner.Strategy()
}
