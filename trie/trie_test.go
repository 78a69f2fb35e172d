// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trie

import "testing"

func TestInsertFindRemove(t *testing.T) {
	tr := New[int]()
	words := map[string]int{"cat": 1, "car": 2, "cart": 3, "dog": 4}
	for w, v := range words {
		tr.Insert(w, v)
	}
	if tr.Count() != len(words) {
		t.Fatalf("Count() = %d, want %d", tr.Count(), len(words))
	}
	for w, v := range words {
		got, ok := tr.Find(w)
		if !ok || got != v {
			t.Fatalf("Find(%q) = %d, %v; want %d, true", w, got, ok, v)
		}
	}
	if _, ok := tr.Find("ca"); ok {
		t.Fatalf("Find on non-terminal prefix should miss")
	}

	if _, ok := tr.Remove("car"); !ok {
		t.Fatalf("Remove(car) should succeed")
	}
	if _, ok := tr.Find("car"); ok {
		t.Fatalf("Find(car) after Remove should miss")
	}
	if _, ok := tr.Find("cart"); !ok {
		t.Fatalf("Find(cart) should survive removing car")
	}
	if _, ok := tr.Find("cat"); !ok {
		t.Fatalf("Find(cat) should survive removing car")
	}
}

func TestHasPrefix(t *testing.T) {
	tr := New[int]()
	tr.Insert("hello", 1)
	if !tr.HasPrefix("he") {
		t.Fatalf("HasPrefix(he) should be true")
	}
	if tr.HasPrefix("world") {
		t.Fatalf("HasPrefix(world) should be false")
	}
}

func TestInsertReplacesExisting(t *testing.T) {
	tr := New[int]()
	if tr.Insert("a", 1) {
		t.Fatalf("first Insert should not report a replacement")
	}
	if !tr.Insert("a", 2) {
		t.Fatalf("second Insert should report a replacement")
	}
	v, ok := tr.Find("a")
	if !ok || v != 2 {
		t.Fatalf("Find(a) = %d, %v; want 2, true", v, ok)
	}
	if tr.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", tr.Count())
	}
}

func TestRemoveUnknownKey(t *testing.T) {
	tr := New[int]()
	tr.Insert("a", 1)
	if _, ok := tr.Remove("missing"); ok {
		t.Fatalf("Remove of unknown key should fail")
	}
}
