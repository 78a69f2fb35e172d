// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "unsafe"

// TypedRing wraps a Ring to write and read T values instead of
// unsafe.Pointer, boxing each value on the heap. TypedRing[T]
// satisfies Queue[T].
type TypedRing[T any] struct {
	ring *Ring
}

func newTypedRing[T any](r *Ring) *TypedRing[T] {
	return &TypedRing[T]{ring: r}
}

// Ring returns the underlying opaque-pointer ring, for callers that
// need direct access to Stats, SetMode, or the Ptr-tier interfaces.
func (q *TypedRing[T]) Ring() *Ring {
	return q.ring
}

// Cap returns the ring's capacity.
func (q *TypedRing[T]) Cap() int {
	return q.ring.Cap()
}

// Write stores a copy of *elem into the ring.
func (q *TypedRing[T]) Write(elem *T) error {
	v := *elem
	return q.ring.Write(unsafe.Pointer(&v))
}

// WriteWait retries Write with backoff until it succeeds.
func (q *TypedRing[T]) WriteWait(elem *T) error {
	v := *elem
	return q.ring.WriteWait(unsafe.Pointer(&v))
}

// Read removes and returns the oldest unread element.
func (q *TypedRing[T]) Read() (T, error) {
	p, err := q.ring.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	return *(*T)(p), nil
}

// ReadWait blocks, with backoff, until an element is available.
func (q *TypedRing[T]) ReadWait() T {
	return *(*T)(q.ring.ReadWait())
}
