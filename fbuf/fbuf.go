// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fbuf implements a growable byte buffer with independent
// fast/slow growth increments, a minimum and maximum length, and
// read/write helpers on top of io.Reader/io.Writer. No concurrency
// contract: callers synchronize externally if needed.
package fbuf

import (
	"fmt"
	"io"
)

const (
	defaultMinLen       = 32
	defaultFastGrowSize = 4096
	defaultSlowGrowSize = 256
	fastGrowThreshold   = 65536
)

// Buffer is a growable byte buffer.
type Buffer struct {
	data     []byte
	minLen   int
	maxLen   int // 0 means unbounded
	fastGrow int
	slowGrow int
}

// New creates an empty Buffer with the default minimum length and
// growth increments, and no maximum length.
func New() *Buffer {
	return &Buffer{
		minLen:   defaultMinLen,
		fastGrow: defaultFastGrowSize,
		slowGrow: defaultSlowGrowSize,
	}
}

// SetMinLen sets the smallest capacity the buffer allocates when its
// backing array first has to grow.
func (b *Buffer) SetMinLen(n int) {
	b.minLen = n
}

// SetMaxLen sets the maximum length the buffer may grow to. 0 means
// unbounded.
func (b *Buffer) SetMaxLen(n int) {
	b.maxLen = n
}

// SetFastGrowSize sets the increment used once the buffer has grown
// past the fast-grow threshold.
func (b *Buffer) SetFastGrowSize(n int) {
	b.fastGrow = n
}

// SetSlowGrowSize sets the increment used while the buffer is still
// small.
func (b *Buffer) SetSlowGrowSize(n int) {
	b.slowGrow = n
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Data returns the buffer's contents. The returned slice aliases the
// buffer's backing array and is invalidated by the next mutating
// call.
func (b *Buffer) Data() []byte {
	return b.data
}

// growthIncrement picks slowGrow while the buffer is small and
// fastGrow once it crosses fastGrowThreshold, mirroring the idea that
// small buffers grow conservatively while large ones front-load bigger
// jumps to amortize reallocation.
func (b *Buffer) growthIncrement() int {
	if len(b.data) >= fastGrowThreshold {
		return b.fastGrow
	}
	return b.slowGrow
}

func (b *Buffer) ensure(extra int) error {
	want := len(b.data) + extra
	if b.maxLen > 0 && want > b.maxLen {
		return fmt.Errorf("fbuf: growing by %d bytes would exceed max length %d", extra, b.maxLen)
	}
	if want <= cap(b.data) {
		return nil
	}
	newCap := cap(b.data)
	if newCap < b.minLen {
		newCap = b.minLen
	}
	for newCap < want {
		newCap += b.growthIncrement()
	}
	if b.maxLen > 0 && newCap > b.maxLen {
		newCap = b.maxLen
	}
	nd := make([]byte, len(b.data), newCap)
	copy(nd, b.data)
	b.data = nd
	return nil
}

// Add appends p to the buffer, growing if necessary.
func (b *Buffer) Add(p []byte) error {
	if err := b.ensure(len(p)); err != nil {
		return err
	}
	b.data = append(b.data, p...)
	return nil
}

// AddLn appends p followed by a newline.
func (b *Buffer) AddLn(p []byte) error {
	if err := b.Add(p); err != nil {
		return err
	}
	return b.Add([]byte{'\n'})
}

// Prepend inserts p at the front of the buffer.
func (b *Buffer) Prepend(p []byte) error {
	if err := b.ensure(len(p)); err != nil {
		return err
	}
	nd := make([]byte, len(p)+len(b.data))
	copy(nd, p)
	copy(nd[len(p):], b.data)
	b.data = nd
	return nil
}

// Concat appends the contents of other to b.
func (b *Buffer) Concat(other *Buffer) error {
	return b.Add(other.data)
}

// Copy replaces b's contents with a copy of other's.
func (b *Buffer) Copy(other *Buffer) {
	b.data = append([]byte(nil), other.data...)
}

// Duplicate returns a new Buffer with the same contents and settings.
func (b *Buffer) Duplicate() *Buffer {
	nb := *b
	nb.data = append([]byte(nil), b.data...)
	return &nb
}

// Set replaces b's contents with p.
func (b *Buffer) Set(p []byte) error {
	b.data = b.data[:0]
	return b.Add(p)
}

// Clear empties the buffer without releasing its backing array.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
}

// Extend grows the buffer by n zero bytes and returns them.
func (b *Buffer) Extend(n int) ([]byte, error) {
	if err := b.ensure(n); err != nil {
		return nil, err
	}
	start := len(b.data)
	b.data = b.data[:start+n]
	for i := start; i < start+n; i++ {
		b.data[i] = 0
	}
	return b.data[start:], nil
}

// Shrink truncates the buffer to n bytes. It is a no-op if n >= Len().
func (b *Buffer) Shrink(n int) {
	if n < len(b.data) {
		b.data = b.data[:n]
	}
}

// Remove deletes n bytes starting at offset.
func (b *Buffer) Remove(offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(b.data) {
		return fmt.Errorf("fbuf: Remove(%d, %d) out of range for length %d", offset, n, len(b.data))
	}
	b.data = append(b.data[:offset], b.data[offset+n:]...)
	return nil
}

// Trim removes trailing bytes equal to c.
func (b *Buffer) Trim(c byte) {
	n := len(b.data)
	for n > 0 && b.data[n-1] == c {
		n--
	}
	b.data = b.data[:n]
}

// RTrim removes trailing ASCII whitespace.
func (b *Buffer) RTrim() {
	n := len(b.data)
	for n > 0 && isSpace(b.data[n-1]) {
		n--
	}
	b.data = b.data[:n]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Printf appends the formatted string to the buffer.
func (b *Buffer) Printf(format string, args ...any) error {
	return b.Add([]byte(fmt.Sprintf(format, args...)))
}

// ReadFrom reads all remaining bytes from r into the buffer,
// implementing io.ReaderFrom.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	chunk := make([]byte, 4096)
	var total int64
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if aerr := b.Add(chunk[:n]); aerr != nil {
				return total, aerr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes the buffer's contents to w, implementing
// io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}
