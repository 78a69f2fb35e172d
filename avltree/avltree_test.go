// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package avltree

import (
	"fmt"
	"testing"
)

func TestAddFindRemove(t *testing.T) {
	tr := New[int](nil)
	for i := 0; i < 100; i++ {
		tr.Add([]byte(fmt.Sprintf("k%03d", i)), i)
	}
	if tr.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", tr.Len())
	}
	for i := 0; i < 100; i++ {
		v, ok := tr.Find([]byte(fmt.Sprintf("k%03d", i)))
		if !ok || v != i {
			t.Fatalf("Find(k%03d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
	for i := 0; i < 50; i++ {
		if _, ok := tr.Remove([]byte(fmt.Sprintf("k%03d", i))); !ok {
			t.Fatalf("Remove(k%03d) should succeed", i)
		}
	}
	if tr.Len() != 50 {
		t.Fatalf("Len() after removes = %d, want 50", tr.Len())
	}
}

func TestWalkSortedOrder(t *testing.T) {
	tr := New[int](nil)
	for _, k := range []string{"d", "b", "a", "c"} {
		tr.Add([]byte(k), 0)
	}
	var order []string
	tr.WalkSorted(func(key []byte, _ int) bool {
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
