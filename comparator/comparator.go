// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package comparator provides the key-ordering function shared by the
// ordered containers in this module: avltree, rbtree, skiplist, and
// binheap all order keys through a comparator.Func instead of assuming
// a single built-in key type. pqueue (int64 priorities) and trie
// (string keys walked byte by byte) do not use it.
package comparator

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Func compares two keys and reports their order: negative if a < b,
// zero if equal, positive if a > b. Implementations mirror Go's
// bytes.Compare contract so a Func can stand in wherever that
// contract is expected.
type Func func(a, b []byte) int

// Bytes compares two keys lexicographically. This is the default
// comparator used when a container is created without one.
func Bytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Int16 compares two keys as big-endian signed 16-bit integers.
func Int16(a, b []byte) int {
	x, y := int16(binary.BigEndian.Uint16(a)), int16(binary.BigEndian.Uint16(b))
	return cmpSigned(int64(x), int64(y))
}

// Int32 compares two keys as big-endian signed 32-bit integers.
func Int32(a, b []byte) int {
	x, y := int32(binary.BigEndian.Uint32(a)), int32(binary.BigEndian.Uint32(b))
	return cmpSigned(int64(x), int64(y))
}

// Int64 compares two keys as big-endian signed 64-bit integers.
func Int64(a, b []byte) int {
	x, y := int64(binary.BigEndian.Uint64(a)), int64(binary.BigEndian.Uint64(b))
	return cmpSigned(x, y)
}

// Uint16 compares two keys as big-endian unsigned 16-bit integers.
func Uint16(a, b []byte) int {
	x, y := binary.BigEndian.Uint16(a), binary.BigEndian.Uint16(b)
	return cmpUnsigned(uint64(x), uint64(y))
}

// Uint32 compares two keys as big-endian unsigned 32-bit integers.
func Uint32(a, b []byte) int {
	x, y := binary.BigEndian.Uint32(a), binary.BigEndian.Uint32(b)
	return cmpUnsigned(uint64(x), uint64(y))
}

// Uint64 compares two keys as big-endian unsigned 64-bit integers.
func Uint64(a, b []byte) int {
	x, y := binary.BigEndian.Uint64(a), binary.BigEndian.Uint64(b)
	return cmpUnsigned(x, y)
}

// Float32 compares two keys as big-endian IEEE-754 32-bit floats.
func Float32(a, b []byte) int {
	x := math.Float32frombits(binary.BigEndian.Uint32(a))
	y := math.Float32frombits(binary.BigEndian.Uint32(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Float64 compares two keys as big-endian IEEE-754 64-bit floats.
func Float64(a, b []byte) int {
	x := math.Float64frombits(binary.BigEndian.Uint64(a))
	y := math.Float64frombits(binary.BigEndian.Uint64(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpSigned(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpUnsigned(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// PutInt64 encodes v as a big-endian key suitable for Int64.
func PutInt64(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// PutUint64 encodes v as a big-endian key suitable for Uint64.
func PutUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
