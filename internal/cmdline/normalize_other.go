// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package cmdline

// Normalize is a no-op outside Windows. See normalize_windows.go for
// the backslash compatibility shim it applies there.
func Normalize(raw string) string {
	return raw
}
