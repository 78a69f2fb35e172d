// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deque

import (
	"sync"
	"testing"

	"code.hybscloud.com/ds/refcnt"
)

func TestPushRightPopLeftFIFO(t *testing.T) {
	d := New[int](nil)
	for i := 0; i < 5; i++ {
		d.PushRight(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := d.PopLeft()
		if !ok || v != i {
			t.Fatalf("PopLeft() = %d, %v; want %d, true", v, ok, i)
		}
	}
	if _, ok := d.PopLeft(); ok {
		t.Fatalf("PopLeft on empty deque should fail")
	}
}

func TestPushLeftPopLeftLIFO(t *testing.T) {
	d := New[int](nil)
	for i := 0; i < 5; i++ {
		d.PushLeft(i)
	}
	for i := 4; i >= 0; i-- {
		v, ok := d.PopLeft()
		if !ok || v != i {
			t.Fatalf("PopLeft() = %d, %v; want %d, true", v, ok, i)
		}
	}
}

func TestPushRightPopRightLIFO(t *testing.T) {
	d := New[int](nil)
	for i := 0; i < 5; i++ {
		d.PushRight(i)
	}
	for i := 4; i >= 0; i-- {
		v, ok := d.PopRight()
		if !ok || v != i {
			t.Fatalf("PopRight() = %d, %v; want %d, true", v, ok, i)
		}
	}
}

func TestTerminateCallbackFiresOncePerNode(t *testing.T) {
	var mu sync.Mutex
	var terminated []int
	d := New(func(n *refcnt.Node[int]) {
		mu.Lock()
		terminated = append(terminated, n.Value())
		mu.Unlock()
	})

	for i := 0; i < 3; i++ {
		d.PushRight(i)
	}
	for i := 0; i < 3; i++ {
		if _, ok := d.PopLeft(); !ok {
			t.Fatalf("PopLeft should succeed")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(terminated) != 3 {
		t.Fatalf("terminate callback fired %d times, want 3", len(terminated))
	}
}

func TestLenTracksPushesAndPops(t *testing.T) {
	d := New[string](nil)
	if d.Len() != 0 || !d.IsEmpty() {
		t.Fatalf("new deque should be empty")
	}
	d.PushRight("a")
	d.PushLeft("b")
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if _, ok := d.PopLeft(); !ok {
		t.Fatalf("PopLeft should succeed")
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
}

func TestConcurrentPushPop(t *testing.T) {
	d := New[int](nil)
	const n = 2000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			d.PushRight(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			d.PushLeft(i)
		}
	}()
	wg.Wait()

	count := 0
	for {
		if _, ok := d.PopLeft(); ok {
			count++
			continue
		}
		break
	}
	if count != 2*n {
		t.Fatalf("drained %d elements, want %d", count, 2*n)
	}
	if !d.IsEmpty() {
		t.Fatalf("deque should be empty after draining")
	}
}
