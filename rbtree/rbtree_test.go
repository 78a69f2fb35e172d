// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rbtree

import (
	"fmt"
	"testing"
)

func TestAddFindRemove(t *testing.T) {
	tr := New[int](nil)
	for i := 0; i < 200; i++ {
		tr.Add([]byte(fmt.Sprintf("k%03d", i)), i)
	}
	if tr.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", tr.Len())
	}
	for i := 0; i < 200; i++ {
		v, ok := tr.Find([]byte(fmt.Sprintf("k%03d", i)))
		if !ok || v != i {
			t.Fatalf("Find(k%03d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
	for i := 0; i < 200; i += 2 {
		if _, ok := tr.Remove([]byte(fmt.Sprintf("k%03d", i))); !ok {
			t.Fatalf("Remove(k%03d) should succeed", i)
		}
	}
	if tr.Len() != 100 {
		t.Fatalf("Len() after removes = %d, want 100", tr.Len())
	}
	for i := 1; i < 200; i += 2 {
		v, ok := tr.Find([]byte(fmt.Sprintf("k%03d", i)))
		if !ok || v != i {
			t.Fatalf("surviving Find(k%03d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
}

func TestWalkAscendingOrder(t *testing.T) {
	tr := New[int](nil)
	for _, k := range []string{"d", "b", "a", "c", "e"} {
		tr.Add([]byte(k), 0)
	}
	var order []string
	tr.Walk(func(key []byte, _ int) bool {
		order = append(order, string(key))
		return true
	})
	want := []string{"a", "b", "c", "d", "e"}
	for i, k := range want {
		if order[i] != k {
			t.Fatalf("order[%d] = %q, want %q", i, order[i], k)
		}
	}
}

func TestReplaceExistingKey(t *testing.T) {
	tr := New[int](nil)
	if tr.Add([]byte("a"), 1) {
		t.Fatalf("first Add should not report replacement")
	}
	if !tr.Add([]byte("a"), 2) {
		t.Fatalf("second Add should report replacement")
	}
	v, ok := tr.Find([]byte("a"))
	if !ok || v != 2 {
		t.Fatalf("Find(a) = %d, %v; want 2, true", v, ok)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}
