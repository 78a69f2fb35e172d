// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package deque implements an unbounded, lock-free, doubly-linked
// deque supporting concurrent push/pop from both ends, in the style
// of Sundell & Tsigas's marked-pointer lists: each node carries a
// deleted flag instead of stealing a tag bit from its own pointer, so
// deletion is a single CAS on that flag followed by best-effort
// unlinking that any concurrent walker helps finish.
//
// Forward links (next) are the structure's source of truth; backward
// links (prev) are maintained as a best-effort optimization and are
// always re-derived by scanning when they might be stale, which is
// what keeps every operation correct without a full two-pointer
// helping protocol.
//
// Node termination is reported through refcnt: each node starts with
// one implicit reference representing "still linked in the deque",
// which PopLeft/PopRight release once they win the unlink, firing the
// registry's TerminateFunc exactly once per node.
package deque

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/ds/internal/backoff"
	"code.hybscloud.com/ds/refcnt"
)

type node[T any] struct {
	next    atomic.Pointer[node[T]]
	prev    atomic.Pointer[node[T]]
	deleted atomix.Bool
	ref     *refcnt.Node[T]
}

// Deque is an unbounded lock-free double-ended queue of T values.
// The zero Deque is not usable; construct one with New.
type Deque[T any] struct {
	head     node[T]
	tail     node[T]
	length   atomix.Int64
	registry *refcnt.Registry[T]
}

// New creates an empty Deque. terminate, if non-nil, is invoked once
// per node the moment it is fully unlinked by a Pop.
func New[T any](terminate refcnt.TerminateFunc[T]) *Deque[T] {
	d := &Deque[T]{registry: refcnt.New(terminate)}
	d.head.next.Store(&d.tail)
	d.tail.prev.Store(&d.head)
	return d
}

// Len returns the approximate number of elements currently in the
// deque.
func (d *Deque[T]) Len() int {
	return int(d.length.LoadAcquire())
}

// IsEmpty reports whether the deque currently holds no elements.
func (d *Deque[T]) IsEmpty() bool {
	return d.length.LoadAcquire() == 0
}

func (d *Deque[T]) insertAfter(pred *node[T], n *node[T]) bool {
	next := pred.next.Load()
	if pred.deleted.LoadAcquire() {
		return false
	}
	n.next.Store(next)
	n.prev.Store(pred)
	if !pred.next.CompareAndSwap(next, n) {
		return false
	}
	next.prev.CompareAndSwap(pred, n)
	return true
}

// PushLeft inserts v as the new head of the deque.
func (d *Deque[T]) PushLeft(v T) {
	n := &node[T]{}
	n.ref = d.registry.NewNode(v, n)
	bo := backoff.New(backoff.Fast)
	for !d.insertAfter(&d.head, n) {
		bo.Wait()
	}
	d.length.AddAcqRel(1)
}

// findLastLive returns the last non-deleted node before the tail
// sentinel, or the head sentinel if the deque is empty. Used as the
// insertion anchor for PushRight when the cached backlink is stale.
func (d *Deque[T]) findLastLive() *node[T] {
	pred := &d.head
	cur := d.head.next.Load()
	for cur != &d.tail {
		if !cur.deleted.LoadAcquire() {
			pred = cur
		}
		cur = cur.next.Load()
	}
	return pred
}

// PushRight inserts v as the new tail of the deque.
func (d *Deque[T]) PushRight(v T) {
	n := &node[T]{}
	n.ref = d.registry.NewNode(v, n)
	bo := backoff.New(backoff.Fast)
	for {
		pred := d.tail.prev.Load()
		if pred.deleted.LoadAcquire() || pred.next.Load() != &d.tail {
			pred = d.findLastLive()
		}
		if d.insertAfter(pred, n) {
			d.length.AddAcqRel(1)
			return
		}
		bo.Wait()
	}
}

// PopLeft removes and returns the current head element.
// Returns (zero-value, false) if the deque is empty.
func (d *Deque[T]) PopLeft() (T, bool) {
	bo := backoff.New(backoff.Fast)
	for {
		cur := d.head.next.Load()
		for cur != &d.tail && cur.deleted.LoadAcquire() {
			next := cur.next.Load()
			d.head.next.CompareAndSwap(cur, next)
			cur = d.head.next.Load()
		}
		if cur == &d.tail {
			var zero T
			return zero, false
		}
		if cur.deleted.CompareAndSwapAcqRel(false, true) {
			next := cur.next.Load()
			d.head.next.CompareAndSwap(cur, next)
			next.prev.CompareAndSwap(cur, &d.head)
			d.length.AddAcqRel(-1)
			v := cur.ref.Value()
			d.registry.Release(cur.ref)
			return v, true
		}
		bo.Wait()
	}
}

// PopRight removes and returns the current tail element.
// Returns (zero-value, false) if the deque is empty.
func (d *Deque[T]) PopRight() (T, bool) {
	bo := backoff.New(backoff.Fast)
	for {
		var last, lastPred *node[T]
		pred := &d.head
		cur := d.head.next.Load()
		for cur != &d.tail {
			if !cur.deleted.LoadAcquire() {
				last, lastPred = cur, pred
			}
			pred = cur
			cur = cur.next.Load()
		}
		if last == nil {
			var zero T
			return zero, false
		}
		if last.deleted.CompareAndSwapAcqRel(false, true) {
			next := last.next.Load()
			lastPred.next.CompareAndSwap(last, next)
			next.prev.CompareAndSwap(last, lastPred)
			d.length.AddAcqRel(-1)
			v := last.ref.Value()
			d.registry.Release(last.ref)
			return v, true
		}
		bo.Wait()
	}
}

// PeekLeft returns the current head element without removing it.
func (d *Deque[T]) PeekLeft() (T, bool) {
	cur := d.head.next.Load()
	for cur != &d.tail {
		if !cur.deleted.LoadAcquire() {
			return cur.ref.Value(), true
		}
		cur = cur.next.Load()
	}
	var zero T
	return zero, false
}

// PeekRight returns the current tail element without removing it.
func (d *Deque[T]) PeekRight() (T, bool) {
	last := d.findLastLive()
	if last == &d.head {
		var zero T
		return zero, false
	}
	return last.ref.Value(), true
}
