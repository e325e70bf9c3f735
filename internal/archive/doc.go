// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package archive provides the shared zip sink that workers append
// captured command output to. A single mutex serializes every entry
// append and the final close, so concurrent workers never interleave
// writes to the underlying file.
package archive
