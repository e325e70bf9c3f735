// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package cmdline

import "strings"

// Normalize rewrites backward slashes in a raw command to forward
// slashes. Glob expansion on Windows produces backslash path
// separators, which break word splitting; this is a compatibility shim
// for those tokens, not a general path-normalization policy. It is
// applied to the raw command only, never to the prefix or postfix.
func Normalize(raw string) string {
	return strings.ReplaceAll(raw, `\`, "/")
}
