// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hashtable implements a chained hash table with per-bucket
// spin-locks for ordinary Get/Set/Delete traffic, coordinated by one
// table-wide status word for the operations that touch every bucket
// at once: growing and clearing.
//
// The status word cycles through four named states:
//
//   - Clear: set once while New is still building the table; never
//     seen again afterwards.
//   - Write: held by Clear while it replaces every bucket.
//   - Grow: held by tryGrow while it doubles the bucket array and
//     rehashes every entry into it.
//   - Idle (+n): the baseline. Every Get, Set, Delete, and open
//     Iterator registers as a reader, bumping the word by one above
//     Idle; Clear waits for the count to fall back to Idle before
//     taking exclusive ownership, and tryGrow skips its round unless
//     the word is exactly Idle, so neither a resize nor a clear can
//     run out from under a live iteration.
//
// Bucket chains themselves use a tight spin.Wait-based lock, since
// the critical section is always a handful of pointer comparisons;
// the slower internal/backoff strategies are reserved for the
// table-wide status word, which can be contended for much longer.
//
// Keys shorter than 33 bytes are stored inline in the entry to avoid
// a second allocation and pointer chase per lookup; longer keys spill
// to a heap-allocated copy.
package hashtable

import (
	"bytes"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"github.com/cespare/xxhash/v2"

	"code.hybscloud.com/ds/comparator"
	"code.hybscloud.com/ds/internal/backoff"
)

const (
	statusClear uint64 = iota
	statusWrite
	statusGrow
	statusIdle
)

const inlineKeyLen = 32

type entry[V any] struct {
	hash   uint64
	small  [inlineKeyLen]byte
	key    []byte
	keyLen int
	value  V
	next   *entry[V]
}

func newEntry[V any](key []byte, hash uint64, v V) *entry[V] {
	e := &entry[V]{hash: hash, keyLen: len(key), value: v}
	if len(key) <= inlineKeyLen {
		copy(e.small[:], key)
	} else {
		e.key = append([]byte(nil), key...)
	}
	return e
}

func (e *entry[V]) keyBytes() []byte {
	if e.key == nil {
		return e.small[:e.keyLen]
	}
	return e.key
}

type bucket[V any] struct {
	lock atomix.Bool
	head *entry[V]
}

// Table is a concurrent chained hash table mapping []byte keys to
// values of type V. The zero Table is not usable; construct one with
// New.
type Table[V any] struct {
	buckets       atomic.Pointer[[]bucket[V]]
	count         atomix.Int64
	status        atomix.Uint64
	cmp           comparator.Func
	growThreshold float64
}

// New creates a Table with the given initial bucket count, rounded up
// to the next power of 2 (minimum 16). cmp, if non-nil, is used for
// key equality instead of the default byte-for-byte comparison; use
// this when keys are fixed-width integers and a comparator.Int64-style
// function is more meaningful than lexicographic byte comparison.
func New[V any](initialBuckets int, cmp comparator.Func) *Table[V] {
	n := 16
	for n < initialBuckets {
		n <<= 1
	}
	bs := make([]bucket[V], n)
	t := &Table[V]{cmp: cmp, growThreshold: 1.0}
	t.buckets.Store(&bs)
	t.status.StoreRelaxed(statusIdle)
	return t
}

func hashKey(key []byte) uint64 {
	return xxhash.Sum64(key)
}

func (t *Table[V]) keyEqual(a, b []byte) bool {
	if t.cmp != nil {
		return t.cmp(a, b) == 0
	}
	return bytes.Equal(a, b)
}

func (t *Table[V]) acquireRead() {
	bo := backoff.New(backoff.Complex)
	for {
		s := t.status.LoadAcquire()
		if s == statusGrow || s == statusWrite || s == statusClear {
			bo.Wait()
			continue
		}
		if t.status.CompareAndSwapAcqRel(s, s+1) {
			return
		}
	}
}

func (t *Table[V]) releaseRead() {
	for {
		s := t.status.LoadAcquire()
		if t.status.CompareAndSwapAcqRel(s, s-1) {
			return
		}
	}
}

func lockBucket[V any](b *bucket[V]) {
	w := spin.Wait{}
	for !b.lock.CompareAndSwapAcqRel(false, true) {
		w.Once()
	}
}

func unlockBucket[V any](b *bucket[V]) {
	b.lock.StoreRelease(false)
}

// Len returns the number of entries currently stored.
func (t *Table[V]) Len() int {
	return int(t.count.LoadAcquire())
}

// Get returns the value stored for key, and whether it was found.
func (t *Table[V]) Get(key []byte) (V, bool) {
	h := hashKey(key)
	t.acquireRead()
	defer t.releaseRead()

	bs := *t.buckets.Load()
	b := &bs[h&uint64(len(bs)-1)]
	lockBucket(b)
	defer unlockBucket(b)

	for e := b.head; e != nil; e = e.next {
		if e.hash == h && t.keyEqual(e.keyBytes(), key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Set stores v for key, replacing any existing value. Reports whether
// an existing entry was replaced.
func (t *Table[V]) Set(key []byte, v V) bool {
	h := hashKey(key)
	t.acquireRead()

	bs := *t.buckets.Load()
	b := &bs[h&uint64(len(bs)-1)]
	lockBucket(b)

	replaced := false
	for e := b.head; e != nil; e = e.next {
		if e.hash == h && t.keyEqual(e.keyBytes(), key) {
			e.value = v
			replaced = true
			break
		}
	}
	if !replaced {
		ne := newEntry(key, h, v)
		ne.next = b.head
		b.head = ne
		t.count.AddAcqRel(1)
	}
	unlockBucket(b)

	grow := !replaced && float64(t.count.LoadAcquire())/float64(len(bs)) > t.growThreshold
	t.releaseRead()
	if grow {
		t.tryGrow(len(bs))
	}
	return replaced
}

// Delete removes key, returning its value and whether it was present.
func (t *Table[V]) Delete(key []byte) (V, bool) {
	h := hashKey(key)
	t.acquireRead()
	defer t.releaseRead()

	bs := *t.buckets.Load()
	b := &bs[h&uint64(len(bs)-1)]
	lockBucket(b)
	defer unlockBucket(b)

	var prev *entry[V]
	for e := b.head; e != nil; e = e.next {
		if e.hash == h && t.keyEqual(e.keyBytes(), key) {
			if prev == nil {
				b.head = e.next
			} else {
				prev.next = e.next
			}
			t.count.AddAcqRel(-1)
			return e.value, true
		}
		prev = e
	}
	var zero V
	return zero, false
}

// tryGrow doubles the bucket array if the table is still idle and no
// other goroutine grew it since the caller observed oldLen buckets.
// It is opportunistic: if the status word is not Idle right now
// (another grow, a clear, or a live iterator holds it), tryGrow simply
// skips this round; the next Set that crosses the load factor will
// try again.
func (t *Table[V]) tryGrow(oldLen int) {
	if !t.status.CompareAndSwapAcqRel(statusIdle, statusGrow) {
		return
	}
	defer t.status.StoreRelease(statusIdle)

	old := *t.buckets.Load()
	if len(old) != oldLen {
		return // someone already grew it
	}
	newSize := len(old) * 2
	nb := make([]bucket[V], newSize)
	for i := range old {
		for e := old[i].head; e != nil; {
			next := e.next
			idx := e.hash & uint64(newSize-1)
			e.next = nb[idx].head
			nb[idx].head = e
			e = next
		}
	}
	t.buckets.Store(&nb)
}

// Clear removes every entry, keeping the current bucket count.
func (t *Table[V]) Clear() {
	bo := backoff.New(backoff.Patient)
	for !t.status.CompareAndSwapAcqRel(statusIdle, statusWrite) {
		bo.Wait()
	}
	defer t.status.StoreRelease(statusIdle)

	nb := make([]bucket[V], len(*t.buckets.Load()))
	t.buckets.Store(&nb)
	t.count.StoreRelease(0)
}

// Iterator walks every entry in the bucket array that was current when
// Iterate was called. It is not a snapshot: Set and Delete keep running
// while it is open, so entries they add or remove may or may not be
// seen. It must be closed to release its read registration; an open
// Iterator blocks Grow and Clear from proceeding.
type Iterator[V any] struct {
	t   *Table[V]
	bs  []bucket[V]
	bi  int
	cur *entry[V]
}

// Iterate returns an Iterator over the table's current contents.
// The caller must call Close when done.
func (t *Table[V]) Iterate() *Iterator[V] {
	t.acquireRead()
	return &Iterator[V]{t: t, bs: *t.buckets.Load()}
}

// Next advances the iterator, returning the next key/value pair.
// Returns ok=false once every entry has been visited.
func (it *Iterator[V]) Next() (key []byte, value V, ok bool) {
	for {
		if it.cur != nil {
			b := &it.bs[it.bi-1]
			lockBucket(b)
			e := it.cur
			it.cur = e.next
			k, v := append([]byte(nil), e.keyBytes()...), e.value
			unlockBucket(b)
			return k, v, true
		}
		if it.bi >= len(it.bs) {
			var zero V
			return nil, zero, false
		}
		b := &it.bs[it.bi]
		lockBucket(b)
		it.cur = b.head
		unlockBucket(b)
		it.bi++
	}
}

// Close releases the iterator's read registration. Safe to call more
// than once.
func (it *Iterator[V]) Close() {
	if it.bs == nil {
		return
	}
	it.t.releaseRead()
	it.bs = nil
}
