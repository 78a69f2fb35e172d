// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package refcnt implements a lock-free reference-counting registry
// for nodes shared between multiple threads, the way deque uses it to
// decide when a node it has unlinked is actually safe to reclaim.
//
// Go's garbage collector already reclaims memory, so Registry does
// not free anything itself; what it gives deque is the same
// termination protocol libhl's refcnt.c gives its callers: retain
// before you touch a node reachable through a shared link, release
// when you are done, and get a single callback the moment nobody
// else can still be holding it. deque installs the TerminateFunc its
// own caller passed to deque.New, and it only ever fires once.
package refcnt

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// TerminateFunc is called exactly once per node, the moment its
// reference count reaches zero and no other goroutine can retain it
// anymore. It is the place to drop the node's own links to other
// nodes, mirroring libhl's "terminate_node" callback.
type TerminateFunc[T any] func(*Node[T])

// Node is a refcounted wrapper around a value of type T.
//
// A Node starts life with a refcount of 1, representing the implicit
// reference its creator holds. Every other goroutine that wants to
// touch the node must Retain it first and Release it when done.
type Node[T any] struct {
	value   T
	refs    atomix.Int64
	marked  atomix.Bool
	priv    any
}

// Value returns the value the node wraps. Safe to call without
// holding a reference only while the caller already knows the node is
// reachable (e.g. immediately after Retain or NewNode).
func (n *Node[T]) Value() T {
	return n.value
}

// Priv returns the private data passed to NewNode, handed back
// unchanged to TerminateFunc.
func (n *Node[T]) Priv() any {
	return n.priv
}

// RefCount returns the node's current reference count. Intended for
// debugging only: under concurrent Retain/Release the value is stale
// the instant it is read.
func (n *Node[T]) RefCount() int64 {
	return n.refs.LoadAcquire()
}

// Marked reports whether the node has been marked for deletion.
func (n *Node[T]) Marked() bool {
	return n.marked.LoadAcquire()
}

// Registry creates and tracks nodes of type T, invoking a
// TerminateFunc exactly once per node when its refcount reaches zero.
type Registry[T any] struct {
	terminate TerminateFunc[T]

	mu      sync.Mutex
	pending []*Node[T]
}

// New creates a Registry. terminate is called once per node when its
// last reference is released; it may be nil.
func New[T any](terminate TerminateFunc[T]) *Registry[T] {
	return &Registry[T]{terminate: terminate}
}

// NewNode creates a node wrapping v with an initial refcount of 1.
// priv is opaque data handed back to TerminateFunc.
func (r *Registry[T]) NewNode(v T, priv any) *Node[T] {
	n := &Node[T]{value: v, priv: priv}
	n.refs.StoreRelaxed(1)
	return n
}

// Retain increases n's refcount by one and returns n, unless n has
// already been marked for deletion, in which case it returns nil.
func (r *Registry[T]) Retain(n *Node[T]) *Node[T] {
	if n == nil {
		return nil
	}
	for {
		if n.marked.LoadAcquire() {
			return nil
		}
		cur := n.refs.LoadAcquire()
		if cur <= 0 {
			return nil
		}
		if n.refs.CompareAndSwapAcqRel(cur, cur+1) {
			return n
		}
	}
}

// Mark flags n for deletion without touching its refcount: subsequent
// Retain calls will fail, but existing holders must still Release
// normally.
func (r *Registry[T]) Mark(n *Node[T]) {
	n.marked.StoreRelease(true)
}

// Release decreases n's refcount by one. When the count reaches zero,
// Release invokes the registry's TerminateFunc exactly once for n.
func (r *Registry[T]) Release(n *Node[T]) {
	if n == nil {
		return
	}
	for {
		cur := n.refs.LoadAcquire()
		next := cur - 1
		if !n.refs.CompareAndSwapAcqRel(cur, next) {
			continue
		}
		if next == 0 {
			r.terminateNode(n)
		}
		return
	}
}

func (r *Registry[T]) terminateNode(n *Node[T]) {
	n.marked.StoreRelease(true)
	if r.terminate != nil {
		r.terminate(n)
	}
	r.mu.Lock()
	r.pending = append(r.pending, n)
	r.mu.Unlock()
}

// Pending returns, and clears, the list of nodes terminated since the
// last call. deque calls this from its own bookkeeping to know which
// nodes it can stop worrying about; the slice itself is otherwise
// unused since Go's GC, not Registry, owns reclamation.
func (r *Registry[T]) Pending() []*Node[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return nil
	}
	out := r.pending
	r.pending = nil
	return out
}
