// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package scheduler provides the deferred-work capability used to replay
// cached output after the triggering request has already returned.
package scheduler

import "time"

// Scheduler runs fn once after roughly d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Timers schedules on real timers.
type Timers struct{}

func (Timers) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Inline runs the work immediately on the calling goroutine. Intended for
// tests that need deterministic ordering.
type Inline struct{}

func (Inline) After(_ time.Duration, fn func()) {
	fn()
}

// Func adapts a plain function to Scheduler.
type Func func(d time.Duration, fn func())

func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}
