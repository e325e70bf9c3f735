// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdline assembles and splits command lines. Assembly applies
// the configured command prefix and postfix; splitting follows POSIX
// shell word-splitting rules, so quoting and escaping are honoured.
package cmdline
