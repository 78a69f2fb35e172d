// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package skiplist

import (
	"fmt"
	"testing"
)

func TestInsertSearchRemove(t *testing.T) {
	sl := New[int](nil)
	for i := 0; i < 300; i++ {
		sl.Insert([]byte(fmt.Sprintf("k%04d", i)), i)
	}
	if sl.Count() != 300 {
		t.Fatalf("Count() = %d, want 300", sl.Count())
	}
	for i := 0; i < 300; i++ {
		v, ok := sl.Search([]byte(fmt.Sprintf("k%04d", i)))
		if !ok || v != i {
			t.Fatalf("Search(k%04d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
	for i := 0; i < 300; i += 3 {
		if _, ok := sl.Remove([]byte(fmt.Sprintf("k%04d", i))); !ok {
			t.Fatalf("Remove(k%04d) should succeed", i)
		}
	}
	if sl.Count() != 200 {
		t.Fatalf("Count() after removes = %d, want 200", sl.Count())
	}
	if _, ok := sl.Search([]byte("k0000")); ok {
		t.Fatalf("removed key should not be found")
	}
}

func TestInsertReplacesExisting(t *testing.T) {
	sl := New[int](nil)
	if sl.Insert([]byte("a"), 1) {
		t.Fatalf("first Insert should not report a replacement")
	}
	if !sl.Insert([]byte("a"), 2) {
		t.Fatalf("second Insert should report a replacement")
	}
	v, ok := sl.Search([]byte("a"))
	if !ok || v != 2 {
		t.Fatalf("Search(a) = %d, %v; want 2, true", v, ok)
	}
	if sl.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", sl.Count())
	}
}

func TestWalkAscendingOrder(t *testing.T) {
	sl := New[int](nil)
	for _, k := range []string{"d", "b", "a", "c"} {
		sl.Insert([]byte(k), 0)
	}
	var order []string
	sl.Walk(func(key []byte, _ int) bool {
		order = append(order, string(key))
		return true
	})
	want := []string{"a", "b", "c", "d"}
	for i, k := range want {
		if order[i] != k {
			t.Fatalf("order[%d] = %q, want %q", i, order[i], k)
		}
	}
}
