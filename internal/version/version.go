// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the release version stamped at build time.
package version

// Version is overridden via -ldflags at release build time.
var Version = "dev"
