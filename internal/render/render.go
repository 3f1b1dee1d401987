// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package render defines the boundary to the engine that turns chunk source
// into a self-contained HTML file. The engine itself is opaque to the cache
// subsystem.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Renderer renders one chunk synchronously. Shared assets go under libDir;
// the finished fragment must land at outputFile.
type Renderer interface {
	Render(ctx context.Context, options, content, libDir, outputFile string) error
}

// Func adapts a plain function to Renderer.
type Func func(ctx context.Context, options, content, libDir, outputFile string) error

func (f Func) Render(ctx context.Context, options, content, libDir, outputFile string) error {
	return f(ctx, options, content, libDir, outputFile)
}

// ExecRenderer shells out to an external rendering command. The chunk source
// arrives on stdin; options and target paths are passed in the environment.
type ExecRenderer struct {
	Command string
	Args    []string
}

func (r ExecRenderer) Render(ctx context.Context, options, content, libDir, outputFile string) error {
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Env = append(os.Environ(),
		"NB_CHUNK_OPTIONS="+options,
		"NB_LIB_DIR="+libDir,
		"NB_OUTPUT_FILE="+outputFile,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A chunk's own runtime error is meaningful output; pass it along
		// untouched.
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("render failed: %s: %w", msg, err)
		}
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
