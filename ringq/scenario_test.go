// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"testing"
	"unsafe"
)

func boxInt(v int) unsafe.Pointer {
	n := v
	return unsafe.Pointer(&n)
}

func unboxInt(p unsafe.Pointer) int {
	return *(*int)(p)
}

func TestBlockingModeRejectsWritesPastCapacity(t *testing.T) {
	r := BuildPtr(New(2))

	if err := r.Write(boxInt(1)); err != nil {
		t.Fatalf("write 1: %v", err)
	}
	if err := r.Write(boxInt(2)); err != nil {
		t.Fatalf("write 2: %v", err)
	}
	if err := r.Write(boxInt(3)); err != ErrQueueFull {
		t.Fatalf("write 3: want ErrQueueFull, got %v", err)
	}

	v, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := unboxInt(v); got != 1 {
		t.Fatalf("read: want 1, got %d", got)
	}

	if err := r.Write(boxInt(3)); err != nil {
		t.Fatalf("write 3 after drain: %v", err)
	}
}

func TestOverwriteModeReturnsNewestAfterFull(t *testing.T) {
	r := BuildPtr(New(2).Mode(Overwrite))

	if err := r.Write(boxInt(0x1)); err != nil {
		t.Fatalf("write 0x1: %v", err)
	}
	if err := r.Write(boxInt(0x2)); err != nil {
		t.Fatalf("write 0x2: %v", err)
	}
	// The ring is now full (capacity 2). This write must succeed by
	// discarding the oldest unread value (0x1).
	if err := r.Write(boxInt(0x3)); err != nil {
		t.Fatalf("write 0x3: %v", err)
	}

	v, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := unboxInt(v); got != 0x3 {
		t.Fatalf("first read after overwrite: want 0x3 (newest), got %#x", got)
	}

	v, err = r.Read()
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if got := unboxInt(v); got != 0x2 {
		t.Fatalf("second read: want 0x2, got %#x", got)
	}

	if _, err := r.Read(); err != ErrWouldBlock {
		t.Fatalf("third read: want ErrWouldBlock, got %v", err)
	}
}

func TestOverwriteCallbackFiresForDiscardedValue(t *testing.T) {
	r := BuildPtr(New(1).Mode(Overwrite))

	var freed []int
	r.SetFreeValueCallback(func(p unsafe.Pointer) {
		freed = append(freed, unboxInt(p))
	})

	if err := r.Write(boxInt(10)); err != nil {
		t.Fatalf("write 10: %v", err)
	}
	if err := r.Write(boxInt(20)); err != nil {
		t.Fatalf("write 20: %v", err)
	}

	if len(freed) != 1 || freed[0] != 10 {
		t.Fatalf("free-value callback: want [10], got %v", freed)
	}

	v, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := unboxInt(v); got != 20 {
		t.Fatalf("read: want 20, got %d", got)
	}
}

func TestIsEmptyAndCounts(t *testing.T) {
	r := BuildPtr(New(4))
	if !r.IsEmpty() {
		t.Fatalf("new ring should be empty")
	}
	if err := r.Write(boxInt(1)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if r.IsEmpty() {
		t.Fatalf("ring should not be empty after write")
	}
	if _, err := r.Read(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if r.WriteCount() != 1 || r.ReadCount() != 1 {
		t.Fatalf("counts: want 1/1, got %d/%d", r.WriteCount(), r.ReadCount())
	}
}

func TestTypedRingRoundTrip(t *testing.T) {
	q := Build[string](New(4))
	s := "hello"
	if err := q.Write(&s); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := q.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "hello" {
		t.Fatalf("want %q, got %q", "hello", got)
	}
	if _, err := q.Read(); err != ErrWouldBlock {
		t.Fatalf("drained read: want ErrWouldBlock, got %v", err)
	}
}
