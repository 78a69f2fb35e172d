// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package binheap implements a binary heap over []byte keys, usable
// as either a min-heap or a max-heap, ordered through a
// comparator.Func. No concurrency contract: callers synchronize
// externally if needed.
package binheap

import "code.hybscloud.com/ds/comparator"

// Mode selects whether a Heap pops its smallest or largest key first.
type Mode int

const (
	// Min pops the smallest key first.
	Min Mode = iota
	// Max pops the largest key first.
	Max
)

type item[V any] struct {
	key   []byte
	value V
}

// Heap is a binary heap mapping []byte keys to values of type V.
type Heap[V any] struct {
	items []item[V]
	cmp   comparator.Func
	mode  Mode
}

// New creates an empty Heap in the given Mode. cmp orders keys; if
// nil, comparator.Bytes is used.
func New[V any](mode Mode, cmp comparator.Func) *Heap[V] {
	if cmp == nil {
		cmp = comparator.Bytes
	}
	return &Heap[V]{cmp: cmp, mode: mode}
}

// Count returns the number of items stored.
func (h *Heap[V]) Count() int {
	return len(h.items)
}

// less reports whether the item at i should sit above the item at j,
// accounting for Mode.
func (h *Heap[V]) less(i, j int) bool {
	c := h.cmp(h.items[i].key, h.items[j].key)
	if h.mode == Min {
		return c < 0
	}
	return c > 0
}

func (h *Heap[V]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *Heap[V]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap[V]) siftDown(i int) {
	n := len(h.items)
	for {
		l, r := 2*i+1, 2*i+2
		best := i
		if l < n && h.less(l, best) {
			best = l
		}
		if r < n && h.less(r, best) {
			best = r
		}
		if best == i {
			return
		}
		h.swap(i, best)
		i = best
	}
}

// Insert adds key/value to the heap.
func (h *Heap[V]) Insert(key []byte, value V) {
	h.items = append(h.items, item[V]{key: key, value: value})
	h.siftUp(len(h.items) - 1)
}

// Peek returns the root key/value without removing it.
func (h *Heap[V]) Peek() (key []byte, value V, ok bool) {
	if len(h.items) == 0 {
		var zero V
		return nil, zero, false
	}
	return h.items[0].key, h.items[0].value, true
}

// Delete removes and returns the root key/value: the minimum if the
// Heap is in Min mode, the maximum if in Max mode.
func (h *Heap[V]) Delete() (key []byte, value V, ok bool) {
	n := len(h.items)
	if n == 0 {
		var zero V
		return nil, zero, false
	}
	root := h.items[0]
	last := h.items[n-1]
	h.items = h.items[:n-1]
	if n > 1 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root.key, root.value, true
}

// Merge absorbs every item from other, leaving other empty. Both
// heaps must share the same Mode and comparator.
func (h *Heap[V]) Merge(other *Heap[V]) {
	for _, it := range other.items {
		h.Insert(it.key, it.value)
	}
	other.items = nil
}

// UpdateKey replaces the key of the first item found equal to oldKey
// with newKey and re-establishes heap order. Reports whether an item
// was found. Item identity is determined by key equality rather than
// a retained handle, so UpdateKey is O(n); callers with a high update
// rate should keep their own index into the heap.
func (h *Heap[V]) UpdateKey(oldKey, newKey []byte) bool {
	for i := range h.items {
		if h.cmp(h.items[i].key, oldKey) != 0 {
			continue
		}
		h.items[i].key = newKey
		h.siftUp(i)
		h.siftDown(i)
		return true
	}
	return false
}
