// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isColorEnabled(), "NO_COLOR must disable color")

	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, isColorEnabled(), "NO_COLOR wins over FORCE_COLOR")

	t.Setenv("NO_COLOR", "")
	assert.True(t, isColorEnabled(), "FORCE_COLOR enables color with NO_COLOR unset")
}

// setEnabled overrides the startup decision for the duration of a test.
func setEnabled(t *testing.T, v bool) {
	t.Helper()

	prev := enabled
	enabled = v

	t.Cleanup(func() { enabled = prev })
}

func TestColorizeWrapsAndResets(t *testing.T) {
	setEnabled(t, true)

	assert.Equal(t, "\033[31mERROR\033[0m", Colorize("ERROR", FgRed))
	assert.Equal(t, "\033[93;97mWARN\033[0m", Colorize("WARN", FgHiYellow, FgHiWhite))
}

func TestColorizeDisabledReturnsInputUnchanged(t *testing.T) {
	setEnabled(t, false)

	assert.Equal(t, "ERROR", Colorize("ERROR", FgRed))
}

func BenchmarkColorize(b *testing.B) {
	for b.Loop() {
		Colorize("running command", FgHiWhite)
	}
}
