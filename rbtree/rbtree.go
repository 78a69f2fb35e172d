// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rbtree implements a left-leaning red-black tree keyed by
// []byte, ordered through a comparator.Func. No concurrency contract:
// callers synchronize externally if needed.
package rbtree

import "code.hybscloud.com/ds/comparator"

const (
	red   = true
	black = false
)

type node[V any] struct {
	key         []byte
	value       V
	left, right *node[V]
	color       bool
}

// Tree is a red-black tree mapping []byte keys to values of type V.
type Tree[V any] struct {
	root *node[V]
	cmp  comparator.Func
	size int
}

// New creates an empty Tree. cmp orders keys; if nil,
// comparator.Bytes is used.
func New[V any](cmp comparator.Func) *Tree[V] {
	if cmp == nil {
		cmp = comparator.Bytes
	}
	return &Tree[V]{cmp: cmp}
}

// Len returns the number of keys stored.
func (t *Tree[V]) Len() int {
	return t.size
}

func isRed[V any](n *node[V]) bool {
	return n != nil && n.color == red
}

func rotateLeft[V any](n *node[V]) *node[V] {
	r := n.right
	n.right = r.left
	r.left = n
	r.color = n.color
	n.color = red
	return r
}

func rotateRight[V any](n *node[V]) *node[V] {
	l := n.left
	n.left = l.right
	l.right = n
	l.color = n.color
	n.color = red
	return l
}

func flipColors[V any](n *node[V]) {
	n.color = !n.color
	n.left.color = !n.left.color
	n.right.color = !n.right.color
}

func fixUp[V any](n *node[V]) *node[V] {
	if isRed(n.right) && !isRed(n.left) {
		n = rotateLeft(n)
	}
	if isRed(n.left) && isRed(n.left.left) {
		n = rotateRight(n)
	}
	if isRed(n.left) && isRed(n.right) {
		flipColors(n)
	}
	return n
}

// Add inserts or replaces the value stored for key. Reports whether
// an existing key was replaced.
func (t *Tree[V]) Add(key []byte, value V) bool {
	var replaced bool
	t.root, replaced = t.add(t.root, key, value)
	t.root.color = black
	if !replaced {
		t.size++
	}
	return replaced
}

func (t *Tree[V]) add(n *node[V], key []byte, value V) (*node[V], bool) {
	if n == nil {
		return &node[V]{key: key, value: value, color: red}, false
	}
	c := t.cmp(key, n.key)
	var replaced bool
	switch {
	case c < 0:
		n.left, replaced = t.add(n.left, key, value)
	case c > 0:
		n.right, replaced = t.add(n.right, key, value)
	default:
		n.value = value
		return n, true
	}
	return fixUp(n), replaced
}

// Find returns the value stored for key, and whether it was found.
func (t *Tree[V]) Find(key []byte) (V, bool) {
	n := t.root
	for n != nil {
		c := t.cmp(key, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

func moveRedLeft[V any](n *node[V]) *node[V] {
	flipColors(n)
	if isRed(n.right.left) {
		n.right = rotateRight(n.right)
		n = rotateLeft(n)
		flipColors(n)
	}
	return n
}

func moveRedRight[V any](n *node[V]) *node[V] {
	flipColors(n)
	if isRed(n.left.left) {
		n = rotateRight(n)
		flipColors(n)
	}
	return n
}

func minNode[V any](n *node[V]) *node[V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func removeMin[V any](n *node[V]) *node[V] {
	if n.left == nil {
		return nil
	}
	if !isRed(n.left) && !isRed(n.left.left) {
		n = moveRedLeft(n)
	}
	n.left = removeMin(n.left)
	return fixUp(n)
}

// Remove deletes key, returning its value and whether it was present.
func (t *Tree[V]) Remove(key []byte) (V, bool) {
	if _, ok := t.Find(key); !ok {
		var zero V
		return zero, false
	}
	if t.root != nil && !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.color = red
	}
	var removed V
	t.root, removed = t.remove(t.root, key)
	if t.root != nil {
		t.root.color = black
	}
	t.size--
	return removed, true
}

func (t *Tree[V]) remove(n *node[V], key []byte) (*node[V], V) {
	var removed V
	if t.cmp(key, n.key) < 0 {
		if !isRed(n.left) && !isRed(n.left.left) {
			n = moveRedLeft(n)
		}
		n.left, removed = t.remove(n.left, key)
	} else {
		if isRed(n.left) {
			n = rotateRight(n)
		}
		if t.cmp(key, n.key) == 0 && n.right == nil {
			return nil, n.value
		}
		if !isRed(n.right) && !isRed(n.right.left) {
			n = moveRedRight(n)
		}
		if t.cmp(key, n.key) == 0 {
			removed = n.value
			succ := minNode(n.right)
			n.key, n.value = succ.key, succ.value
			n.right = removeMin(n.right)
		} else {
			n.right, removed = t.remove(n.right, key)
		}
	}
	return fixUp(n), removed
}

// WalkFunc is called for each key/value pair during a walk. Returning
// false stops the walk early.
type WalkFunc[V any] func(key []byte, value V) bool

// Walk visits every key in ascending order.
func (t *Tree[V]) Walk(fn WalkFunc[V]) {
	var walk func(n *node[V]) bool
	walk = func(n *node[V]) bool {
		if n == nil {
			return true
		}
		if !walk(n.left) {
			return false
		}
		if !fn(n.key, n.value) {
			return false
		}
		return walk(n.right)
	}
	walk(t.root)
}
