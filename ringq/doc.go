// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq implements a bounded, lock-free, multi-producer
// multi-consumer ring queue built from a fixed cycle of pre-allocated
// pages linked by tagged indices instead of raw pointers.
//
// # Modes
//
// Two modes are supported, chosen at construction and switchable at
// runtime with Ring.SetMode:
//
//   - Blocking: Write returns ErrQueueFull once every page ahead of
//     the slowest reader already holds an unread value.
//   - Overwrite: Write never fails on capacity. Once the ring is full
//     it steals the oldest unread page from the reader side and
//     discards whatever value that page held. The next Read always
//     returns the newest value a writer produced, never a value that
//     was just overwritten.
//
// # Layout
//
// New pre-allocates size+2 pages and never reallocates them: size+1
// pages form the write cycle, and one extra page is held off-cycle as
// the reader's splice point. Only the tagged links between pages move;
// page addresses are stable for the life of the Ring. Each link is a
// single 64-bit atomic word with the neighbor's page index packed into
// the high bits and a HEAD flag in the low bits, which keeps the hot
// path free of unsafe.Pointer tag-bit tricks while still giving every
// CAS a single machine word to operate on.
//
// Values themselves are stored as unsafe.Pointer, matching the Ptr
// tier of the Queue/Producer/Consumer interfaces in types.go.
// TypedRing[T] wraps a Ring to hand back *T values for callers who
// would rather not deal with unsafe.Pointer.
//
// # Contention
//
// Producers and consumers retry through internal/backoff using one of
// four named strategies: Fast for the common single-CAS path, Patient
// while waiting for room in Blocking mode, Complex for the multi-step
// reader splice, and Critical for the Overwrite-mode stolen-head race.
//
// # Errors
//
// Read and Write report contention and capacity through the error
// values in errors.go, built on code.hybscloud.com/iox so callers can
// distinguish "would block" from a genuine failure with
// iox.IsWouldBlock / iox.IsSemantic.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and internal/backoff for every retry path.
package ringq
