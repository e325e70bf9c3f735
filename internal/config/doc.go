// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the resolved run configuration. A Config is
// built once from the command line (optionally seeded from a YAML
// defaults file), validated before any command is dispatched, and
// shared read-only by every worker afterwards.
package config
