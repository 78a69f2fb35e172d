// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/ds/internal/backoff"
)

// flagHead marks the one link whose index names the current head page.
// When the tail page's own link carries it, there is no free page
// between tail and head: the ring is full.
const flagHead uint64 = 1
const flagMask uint64 = 0x3

// encodeLink packs a page index and a small flag set into one tagged
// 64-bit word. idx is offset by one so the zero word can mean "unset".
func encodeLink(idx int, flags uint64) uint64 {
	return uint64(idx+1)<<2 | (flags & flagMask)
}

func linkIndex(tag uint64) int {
	return int(tag>>2) - 1
}

func linkFlags(tag uint64) uint64 {
	return tag & flagMask
}

// page is one node of the ring's fixed cycle. Its address never
// changes after creation; only the tagged links between pages move.
type page struct {
	value unsafe.Pointer
	next  atomix.Uint64
	prev  atomix.Uint64
}

// Ring is a bounded, lock-free, multi-producer multi-consumer ring
// queue of unsafe.Pointer values. See the package doc for the
// Blocking/Overwrite mode distinction and the page-cycle layout.
//
// The zero Ring is not usable; construct one with New and BuildPtr,
// or with Build for the generic TypedRing[T] wrapper.
type Ring struct {
	_     pad
	pages []page
	size  uint64

	_      pad
	head   atomix.Uint64
	_      pad
	tail   atomix.Uint64
	_      pad
	commit atomix.Uint64
	_      pad
	reader atomix.Uint64

	_    pad
	mode atomix.Uint64

	_         pad
	readSync  atomix.Bool
	_         pad
	writeSync atomix.Bool

	freeValue atomic.Pointer[FreeValueFunc]

	stats stats
}

func newRing(opts Options) *Ring {
	n := opts.capacity
	readerIdx := n + 1
	r := &Ring{
		pages: make([]page, n+2),
		size:  uint64(n),
	}
	for i := 0; i <= n; i++ {
		next := i + 1
		if next > n {
			next = 0
		}
		prev := i - 1
		if prev < 0 {
			prev = n
		}
		r.pages[i].next.StoreRelaxed(encodeLink(next, 0))
		r.pages[i].prev.StoreRelaxed(encodeLink(prev, 0))
	}
	// Close the cycle: the tail's link to the head carries flagHead.
	r.pages[n].next.StoreRelaxed(encodeLink(0, flagHead))

	// The extra page sits off-cycle, ready to be spliced in by the
	// first reader.
	r.pages[readerIdx].next.StoreRelaxed(encodeLink(0, 0))
	r.pages[readerIdx].prev.StoreRelaxed(encodeLink(n, 0))

	r.head.StoreRelaxed(encodeLink(0, 0))
	r.tail.StoreRelaxed(encodeLink(0, 0))
	r.commit.StoreRelaxed(encodeLink(0, 0))
	r.reader.StoreRelaxed(encodeLink(readerIdx, 0))
	r.mode.StoreRelaxed(uint64(opts.mode))
	if opts.freeValue != nil {
		cb := opts.freeValue
		r.freeValue.Store(&cb)
	}
	return r
}

// Cap returns the ring's capacity: the maximum number of pending,
// unread values it holds at once.
func (r *Ring) Cap() int {
	return int(r.size)
}

// Mode returns the ring's current overflow mode.
func (r *Ring) Mode() Mode {
	return Mode(r.mode.LoadAcquire())
}

// SetMode changes the ring's overflow mode. Safe to call concurrently
// with Write and Read.
func (r *Ring) SetMode(m Mode) {
	r.mode.StoreRelease(uint64(m))
}

// SetFreeValueCallback registers cb to be invoked, exactly once, for
// every value an Overwrite-mode Write discards. A nil cb disables the
// callback.
func (r *Ring) SetFreeValueCallback(cb FreeValueFunc) {
	if cb == nil {
		r.freeValue.Store(nil)
		return
	}
	r.freeValue.Store(&cb)
}

func (r *Ring) freeValueFn() FreeValueFunc {
	p := r.freeValue.Load()
	if p == nil {
		return nil
	}
	return *p
}

// IsEmpty reports whether the ring currently holds no unread value.
// The result is racy the instant it returns under concurrent writers.
func (r *Ring) IsEmpty() bool {
	return linkIndex(r.head.LoadAcquire()) == linkIndex(r.tail.LoadAcquire())
}

// WriteCount returns the number of values successfully written so
// far.
func (r *Ring) WriteCount() uint64 {
	return r.stats.writes.LoadAcquire()
}

// ReadCount returns the number of values successfully read so far.
func (r *Ring) ReadCount() uint64 {
	return r.stats.reads.LoadAcquire()
}

// Write stores v in the ring.
//
// In Blocking mode, Write returns ErrQueueFull immediately once the
// ring has no free page; it does not wait. Use WriteWait to retry with
// backoff until space opens up.
//
// In Overwrite mode, Write always succeeds: once full, it steals the
// oldest unread page, discarding its value (through the free-value
// callback if one is set). The newest value Write ever accepted is
// always the first one a subsequent Read returns.
func (r *Ring) Write(v unsafe.Pointer) error {
	boContend := backoff.New(backoff.Fast)
	boSteal := backoff.New(backoff.Critical)
	for {
		for !r.writeSync.CompareAndSwapAcqRel(false, true) {
			r.stats.writerContention.AddAcqRel(1)
			boContend.Wait()
		}

		tailIdx := linkIndex(r.tail.LoadAcquire())
		nextTag := r.pages[tailIdx].next.LoadAcquire()
		nextIdx := linkIndex(nextTag)

		if linkFlags(nextTag) == flagHead {
			headIdx := linkIndex(r.head.LoadAcquire())
			if nextIdx != headIdx {
				r.writeSync.StoreRelease(false)
				r.stats.topologyChange.AddAcqRel(1)
				boContend.Wait()
				continue
			}

			if Mode(r.mode.LoadAcquire()) == Blocking {
				r.writeSync.StoreRelease(false)
				r.stats.queueFull.AddAcqRel(1)
				return ErrQueueFull
			}

			if !r.readSync.CompareAndSwapAcqRel(false, true) {
				r.writeSync.StoreRelease(false)
				r.stats.stolenHeadContention.AddAcqRel(1)
				boSteal.Wait()
				continue
			}
			if linkIndex(r.head.LoadAcquire()) != headIdx {
				r.readSync.StoreRelease(false)
				r.writeSync.StoreRelease(false)
				boSteal.Wait()
				continue
			}

			// Ring full under Overwrite: the head page is reused in
			// place for the new value. Head, tail and every link stay
			// untouched, so the ring stays full and a reader always
			// sees the page we just wrote before anything older.
			oldValue := r.pages[headIdx].value
			r.pages[headIdx].value = v
			r.readSync.StoreRelease(false)
			r.writeSync.StoreRelease(false)

			if cb := r.freeValueFn(); cb != nil && oldValue != nil {
				cb(oldValue)
			}
			r.stats.overwrites.AddAcqRel(1)
			r.stats.writes.AddAcqRel(1)
			return nil
		}

		r.pages[tailIdx].value = v
		r.tail.StoreRelease(encodeLink(nextIdx, 0))
		r.commit.StoreRelease(encodeLink(nextIdx, 0))
		r.writeSync.StoreRelease(false)
		r.stats.writes.AddAcqRel(1)
		return nil
	}
}

// WriteWait retries Write, backing off with the Patient strategy,
// until it succeeds. Only useful in Blocking mode: Overwrite-mode
// writes never fail, so WriteWait there behaves exactly like Write.
func (r *Ring) WriteWait(v unsafe.Pointer) error {
	bo := backoff.New(backoff.Patient)
	for {
		err := r.Write(v)
		if err == nil {
			return nil
		}
		if !IsWouldBlock(err) && err != ErrQueueFull {
			return err
		}
		bo.Wait()
	}
}

// Read removes and returns the oldest unread value.
// Returns (nil, ErrWouldBlock) if the ring currently holds nothing
// unread.
func (r *Ring) Read() (unsafe.Pointer, error) {
	bo := backoff.New(backoff.Complex)
	for !r.readSync.CompareAndSwapAcqRel(false, true) {
		r.stats.readerContention.AddAcqRel(1)
		bo.Wait()
	}
	defer r.readSync.StoreRelease(false)

	headIdx := linkIndex(r.head.LoadAcquire())
	tailIdx := linkIndex(r.tail.LoadAcquire())
	if headIdx == tailIdx {
		r.stats.emptyReads.AddAcqRel(1)
		return nil, ErrWouldBlock
	}

	value := r.pages[headIdx].value
	nextTag := r.pages[headIdx].next.LoadAcquire()
	newHeadIdx := linkIndex(nextTag)

	// Splice: retire headIdx out to the off-ring reader slot, and
	// bring the previous off-ring page into the cycle in its place.
	// This rotates a different page out on every read instead of
	// ever re-touching a page a concurrent writer might still hold.
	readerIdx := linkIndex(r.reader.LoadAcquire())
	prevTag := r.pages[headIdx].prev.LoadAcquire()
	prevIdx := linkIndex(prevTag)

	// flagHead always marks the one link whose target is the current
	// head. headIdx is leaving that role, so the flag moves off
	// prevIdx's link (now pointing at the reader page, demoted to
	// flagHead-free) onto the reader's own link (now the new
	// predecessor of newHeadIdx).
	r.pages[readerIdx].value = nil
	r.pages[readerIdx].next.StoreRelease(encodeLink(newHeadIdx, flagHead))
	r.pages[readerIdx].prev.StoreRelease(encodeLink(prevIdx, 0))
	r.pages[prevIdx].next.StoreRelease(encodeLink(readerIdx, 0))
	r.pages[newHeadIdx].prev.StoreRelease(encodeLink(readerIdx, 0))

	r.head.StoreRelease(encodeLink(newHeadIdx, 0))
	r.reader.StoreRelease(encodeLink(headIdx, 0))

	r.stats.reads.AddAcqRel(1)
	return value, nil
}

// ReadWait retries Read, backing off with the Complex strategy, until
// a value is available.
func (r *Ring) ReadWait() unsafe.Pointer {
	bo := backoff.New(backoff.Complex)
	for {
		v, err := r.Read()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}
