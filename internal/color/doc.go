// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color applies ANSI foreground colors to log output. Whether
// color is used is decided once at startup from the NO_COLOR and
// FORCE_COLOR environment variables and terminal detection.
package color
