// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// notebookd is the main package for the notebookd chunk-output cache daemon.
// It wires the CLI, delegates to internal packages, and serves as the entry
// point.
package main
