// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIsANoOpOffWindows(t *testing.T) {
	assert.Equal(t, `copy a\b c/d`, Normalize(`copy a\b c/d`))
}
