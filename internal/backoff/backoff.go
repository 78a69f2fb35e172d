// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package backoff centralizes the retry/backoff policies shared by the
// lock-free and fine-grained-locked containers in this module.
//
// Each policy mirrors one of the retry strategies described for the ring
// queue: FAST for tight CAS loops, PATIENT for blocking-mode waits,
// COMPLEX for multi-step reader paths and GROW/WRITE status spins, and
// CRITICAL for the overwrite-mode stolen-head path that must fail fast.
// Centralizing the sleep/yield math here keeps the call sites (ringq,
// hashtable, deque) readable.
package backoff

import (
	"math/rand/v2"
	"runtime"
	"time"
)

// Strategy names a retry/backoff policy.
type Strategy int

const (
	// Fast is for simple CAS operations: yield first, then micro-sleeps
	// capped around 100µs.
	Fast Strategy = iota
	// Patient is for blocking-mode waits: yields then exponential backoff
	// capped around 10ms.
	Patient
	// Complex is for multi-step reader paths and HT status spins: longer
	// delays capped around 5ms.
	Complex
	// Critical is for the overwrite-mode stolen-head path: very short
	// delays capped around 50µs, intended to fail fast.
	Critical
)

// caps holds, per strategy, the number of pure-yield iterations before
// sleeping and the maximum sleep duration once sleeping starts.
var caps = [...]struct {
	yields int
	max    time.Duration
}{
	Fast:     {yields: 10, max: 100 * time.Microsecond},
	Patient:  {yields: 5, max: 10 * time.Millisecond},
	Complex:  {yields: 3, max: 5 * time.Millisecond},
	Critical: {yields: 5, max: 50 * time.Microsecond},
}

// Backoff tracks retry progress for one strategy across a retry loop.
// It is not safe for concurrent use; each goroutine should hold its own.
type Backoff struct {
	strategy Strategy
	attempt  int
}

// New returns a Backoff tracker for the given strategy.
func New(s Strategy) Backoff {
	return Backoff{strategy: s}
}

// Wait performs one yield or sleep step and advances the retry counter.
func (b *Backoff) Wait() {
	b.attempt++
	c := caps[b.strategy]
	if b.attempt <= c.yields {
		runtime.Gosched()
		return
	}
	shift := uint(b.attempt - c.yields - 1)
	if shift > 20 {
		shift = 20
	}
	d := time.Duration(1<<shift) * time.Microsecond
	if d > c.max {
		d = c.max
	}
	// +/-25% jitter to avoid thundering herds on shared cache lines.
	jitter := d/4 - time.Duration(rand.Int64N(int64(d/2+1)))
	d += jitter
	if d < time.Microsecond {
		d = time.Microsecond
	}
	time.Sleep(d)
}

// Reset clears the retry counter so the tracker can be reused.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempt returns the number of Wait calls performed so far.
func (b *Backoff) Attempt() int {
	return b.attempt
}
