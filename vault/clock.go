// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import "time"

// Clock supplies the timestamp written into created_at fields. The spec
// leaves timestamp precision and monotonicity implementation-defined;
// making it an injectable interface rather than calling time.Now()
// directly keeps tests deterministic and resolves that open question
// explicitly instead of hard-coding wall-clock time.
type Clock interface {
	Now() uint64
}

// SystemClock is the default Clock, backed by wall-clock time.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// FixedClock is a Clock that always reports the same timestamp, or one
// advanced manually by tests that need control over created_at ordering.
type FixedClock struct {
	t uint64
}

// NewFixedClock returns a FixedClock starting at t.
func NewFixedClock(t uint64) *FixedClock {
	return &FixedClock{t: t}
}

// Now implements Clock.
func (c *FixedClock) Now() uint64 {
	return c.t
}

// Advance moves the clock forward by delta seconds.
func (c *FixedClock) Advance(delta uint64) {
	c.t += delta
}
