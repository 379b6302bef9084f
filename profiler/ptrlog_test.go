// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "testing"

func TestPtrSampleActionEncoding(t *testing.T) {
	alloc := PtrSample{Addr: 0x10, Size: 16}
	if !alloc.Alloc() || alloc.Realloc() || alloc.Free() {
		t.Fatalf("%+v should encode alloc only", alloc)
	}

	realloc := PtrSample{Addr: 0x20, PriorAddr: 0x10, Size: 32}
	if !realloc.Realloc() || realloc.Alloc() || realloc.Free() {
		t.Fatalf("%+v should encode realloc only", realloc)
	}

	free := PtrSample{Addr: 0x20}
	if !free.Free() || free.Alloc() || free.Realloc() {
		t.Fatalf("%+v should encode free only", free)
	}
}

func TestAllocReallocFreeAppend(t *testing.T) {
	p := New(WithClock(fakeClock(1, 2, 3)))
	idx := p.NewRecord("alloc-site", "f.go", 1)

	p.Alloc(idx, 0x10, 16)
	p.Realloc(idx, 0x20, 0x10, 32)
	p.Free(idx, 0x20)

	if p.PtrSampleCount() != 3 {
		t.Fatalf("PtrSampleCount() = %d, want 3", p.PtrSampleCount())
	}
	samples := p.PtrSamples()
	if !samples[0].Alloc() || !samples[1].Realloc() || !samples[2].Free() {
		t.Fatalf("unexpected pointer-sample log: %+v", samples)
	}
}
