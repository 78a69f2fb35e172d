// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "unsafe"

// Mode selects how Write behaves once the ring is full.
type Mode int

const (
	// Blocking writers return ErrQueueFull once the ring is full.
	Blocking Mode = iota
	// Overwrite writers steal the oldest unread page once the ring is
	// full, discarding its value.
	Overwrite
)

// FreeValueFunc releases resources owned by a value that is being
// discarded: overwritten in Overwrite mode.
type FreeValueFunc func(unsafe.Pointer)

// Options configures ring creation.
type Options struct {
	capacity  int
	mode      Mode
	freeValue FreeValueFunc
}

// Builder creates a Ring with fluent configuration.
//
// Example:
//
//	r := ringq.BuildPtr(ringq.New(1024).Mode(ringq.Overwrite))
type Builder struct {
	opts Options
}

// New creates a ring builder for the given capacity: the maximum
// number of pending, unread values the ring holds at once.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("ringq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Mode sets the ring's overflow behavior. Default is Blocking.
func (b *Builder) Mode(m Mode) *Builder {
	b.opts.mode = m
	return b
}

// FreeValueCallback registers cb to be called for every value
// discarded by an overwrite.
func (b *Builder) FreeValueCallback(cb FreeValueFunc) *Builder {
	b.opts.freeValue = cb
	return b
}

// BuildPtr creates the Ring described by b.
func BuildPtr(b *Builder) *Ring {
	return newRing(b.opts)
}

// Build creates a TypedRing[T] described by b.
func Build[T any](b *Builder) *TypedRing[T] {
	return newTypedRing[T](newRing(b.opts))
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padPtr is padding to fill a cache line after a pointer-sized field.
type padPtr [64 - ptrSize]byte
