// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package input

import "time"

// DefaultDebounce is the quiet period before a preview lookup fires.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer tracks generations of an edited value.
//
// Every edit calls Bump. A timer or lookup started for generation g may only
// act if IsCurrent(g) still holds when it completes. Nothing is cancelled:
// superseded work simply finds its generation stale and is dropped.
type Debouncer struct {
	delay time.Duration
	gen   uint64
}

// NewDebouncer creates a debouncer with the given delay.
// A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Bump starts a new generation and returns it.
func (d *Debouncer) Bump() uint64 {
	d.gen++
	return d.gen
}

// Current returns the latest generation.
func (d *Debouncer) Current() uint64 {
	return d.gen
}

// IsCurrent reports whether gen is still the latest generation.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	return gen == d.gen
}

// Delay returns the debounce delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
