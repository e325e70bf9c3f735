// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scheduler runs the command list through a fixed-size worker
// pool. Each worker executes one command at a time, blocking for the
// full lifetime of its child process, which bounds the number of
// concurrent children to the pool size. Captured output is appended to
// the shared archive sink; the dispatch loop joins all workers before
// the archive is finalized.
package scheduler
