// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "testing"

func TestGrowCapSequence(t *testing.T) {
	capacity := 0
	want := []int{64, 128, 256, 512}
	for _, w := range want {
		capacity = growCap(capacity)
		if capacity != w {
			t.Fatalf("growCap sequence = %d, want %d", capacity, w)
		}
	}
}

func TestGrowPreservesElements(t *testing.T) {
	var s []int
	var capacity int
	for i := 0; i < 65; i++ {
		if len(s) == capacity {
			s = grow(s, &capacity)
		}
		s = append(s, i)
	}
	if capacity != 128 {
		t.Fatalf("capacity after 65 inserts = %d, want 128", capacity)
	}
	for i, v := range s {
		if v != i {
			t.Fatalf("s[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestRecordTableDoublesFrom64(t *testing.T) {
	p := New()
	for i := 0; i < 65; i++ {
		p.NewRecord("site", "a.go", uint32(i))
	}
	if p.recordTable.capacity != 128 {
		t.Fatalf("recordTable.capacity = %d, want 128", p.recordTable.capacity)
	}
}

func TestSampleTreeDoublesFrom64(t *testing.T) {
	p := New()
	idx := p.NewRecord("loop", "a.go", 1)
	for i := 0; i < 65; i++ {
		p.Begin(idx)
	}
	if p.sampleTree.capacity != 128 {
		t.Fatalf("sampleTree.capacity = %d, want 128", p.sampleTree.capacity)
	}
}

func TestPtrLogDoublesFrom64(t *testing.T) {
	p := New()
	idx := p.NewRecord("alloc", "a.go", 1)
	for i := 0; i < 65; i++ {
		p.Alloc(idx, uintptr(i+1), 16)
	}
	if p.ptrLog.capacity != 128 {
		t.Fatalf("ptrLog.capacity = %d, want 128", p.ptrLog.capacity)
	}
}
