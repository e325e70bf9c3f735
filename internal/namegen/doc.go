// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package namegen derives archive entry names from raw command lines.
// A generator is built once from the resolved options and is then
// invoked concurrently by every worker, so all implementations must be
// safe for unsynchronized shared use.
package namegen
