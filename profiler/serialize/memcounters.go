// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serialize

import (
	"fmt"
	"io"
	"sort"

	"github.com/azmr/professor-go/profiler"
)

// writeMemoryCounters emits one Chrome "ph":"C" counter event per
// pointer-sample boundary, reconstructing the live address set with a
// single linear pass (see liveSet below).
//
// An initial counter event at the first pointer-sample's timestamp
// introduces every address that will ever appear (value 0), so the
// viewer establishes its legend; a final counter event carries the
// live set forward to the maximum cycle stamp observed in the sample
// tree, so the chart closes cleanly even if the last pointer event
// happened well before the profiled run ended.
func writeMemoryCounters(w io.Writer, p *profiler.Profiler, ms float64) error {
	ptrSamples := p.PtrSamples()

	if err := writeLegend(w, ptrSamples, ms); err != nil {
		return err
	}

	live := newLiveSet()
	for _, s := range ptrSamples {
		live.apply(s)

		if _, err := io.WriteString(w, ",\n"); err != nil {
			return err
		}
		if err := writeCounterEvent(w, float64(s.Cycles)/ms, live); err != nil {
			return err
		}
	}

	finalCycles := maxSampleCycles(p.Samples())
	if _, err := io.WriteString(w, ",\n"); err != nil {
		return err
	}
	return writeCounterEvent(w, float64(finalCycles)/ms, live)
}

func writeLegend(w io.Writer, ptrSamples []profiler.PtrSample, ms float64) error {
	if len(ptrSamples) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, `    {"name":"memory", "ph":"C", "ts": %f, "args": {`, float64(ptrSamples[0].Cycles)/ms); err != nil {
		return err
	}
	for i, s := range ptrSamples {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `"0x%x": 0`, s.Addr); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `}, "pid": 0, "tid": 0}`)
	return err
}

func writeCounterEvent(w io.Writer, ts float64, live *liveSet) error {
	if _, err := fmt.Fprintf(w, `    {"name":"memory", "ph":"C", "ts": %f, "args": {`, ts); err != nil {
		return err
	}
	for i, addr := range live.sortedAddrs() {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `"0x%x": %d`, addr, live.sizes[addr]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `}, "pid": 0, "tid": 0}`)
	return err
}

func maxSampleCycles(samples []profiler.Sample) uint64 {
	var max uint64
	for _, s := range samples {
		if s.CyclesStart > max {
			max = s.CyclesStart
		}
		if !s.Open() && s.CyclesEnd > max {
			max = s.CyclesEnd
		}
	}
	return max
}

// liveSet reconstructs the open pointer set implied by an
// alloc/realloc/free pointer-sample log. No index is maintained at
// insertion time on the hot path (see profiler.PtrSample); this is the
// one place that pays for a lookup, and only at serialization time.
type liveSet struct {
	sizes map[uintptr]uintptr
}

func newLiveSet() *liveSet {
	return &liveSet{sizes: make(map[uintptr]uintptr)}
}

// apply advances the live set by one pointer sample. Violations (a
// realloc or free with no matching open entry) are fatal: they
// indicate a mismatched or missing alloc/free pair in the
// instrumented program, the same class of programmer error treated as
// unrecoverable elsewhere in this profiler.
func (l *liveSet) apply(s profiler.PtrSample) {
	switch {
	case s.Alloc():
		l.sizes[s.Addr] = s.Size

	case s.Realloc():
		if _, ok := l.sizes[s.PriorAddr]; !ok {
			panic(fmt.Sprintf("profiler: realloc of untracked address %#x", s.PriorAddr))
		}
		delete(l.sizes, s.PriorAddr)
		l.sizes[s.Addr] = s.Size

	case s.Free():
		if _, ok := l.sizes[s.Addr]; !ok {
			panic(fmt.Sprintf("profiler: free of untracked address %#x", s.Addr))
		}
		delete(l.sizes, s.Addr)
	}
}

func (l *liveSet) sortedAddrs() []uintptr {
	addrs := make([]uintptr, 0, len(l.sizes))
	for a := range l.sizes {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
