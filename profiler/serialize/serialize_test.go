// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serialize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/azmr/professor-go/profiler"
)

func fakeClock(ticks ...uint64) profiler.Clock {
	i := 0
	return func() uint64 {
		t := ticks[i]
		if i < len(ticks)-1 {
			i++
		}
		return t
	}
}

// decodeBatch parses a first flush's worth of events: w's contents
// minus the leading "[\n" framing and with a closing "]" appended, the
// way a real caller would after their last flush.
func decodeBatch(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	body = strings.TrimPrefix(body, "[\n")
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, ",")
	var events []map[string]interface{}
	if err := json.Unmarshal([]byte("["+body+"]"), &events); err != nil {
		t.Fatalf("decoding %q: %v", body, err)
	}
	return events
}

func TestDumpTimingsSingleDuration(t *testing.T) {
	p := profiler.New(profiler.WithClock(fakeClock(10, 20)), profiler.WithFreq(1000))
	a := p.NewRecord("A", "f.go", 1)
	p.Begin(a)
	p.End()

	var buf strings.Builder
	w := New(p)
	if err := w.DumpTimings(&buf, p, true); err != nil {
		t.Fatal(err)
	}

	events := decodeBatch(t, buf.String())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev["name"] != "A" || ev["ph"] != "X" {
		t.Fatalf("event = %+v, want name=A ph=X", ev)
	}
	if dur, _ := ev["dur"].(float64); dur < 0 {
		t.Fatalf("dur = %v, want >= 0", ev["dur"])
	}
}

func TestDumpTimingsMarkIsInstant(t *testing.T) {
	p := profiler.New(profiler.WithClock(fakeClock(0, 5, 10)))
	a := p.NewRecord("A", "f.go", 1)
	m := p.NewRecord("M", "f.go", 2)
	p.Begin(a)
	p.Mark(m)
	p.End()

	var buf strings.Builder
	w := New(p)
	if err := w.DumpTimings(&buf, p, true); err != nil {
		t.Fatal(err)
	}
	events := decodeBatch(t, buf.String())
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1]["ph"] != "i" {
		t.Fatalf("mark event ph = %v, want i", events[1]["ph"])
	}
	if _, hasDur := events[1]["dur"]; hasDur {
		t.Fatal("instant event should not have a dur field")
	}
}

func TestDumpTimingsResetsSamplesNotRecords(t *testing.T) {
	p := profiler.New(profiler.WithClock(fakeClock(0, 1, 2, 3)))
	a := p.NewRecord("A", "f.go", 1)
	p.Begin(a)
	p.End()

	var buf strings.Builder
	w := New(p)
	if err := w.DumpTimings(&buf, p, true); err != nil {
		t.Fatal(err)
	}
	if p.SampleCount() != 0 {
		t.Fatalf("SampleCount() = %d after flush, want 0", p.SampleCount())
	}
	if p.RecordCount() != 1 {
		t.Fatalf("RecordCount() = %d after flush, want 1", p.RecordCount())
	}

	// A second flush must separate with ",\n\n" rather than reopening "[".
	p.Begin(a)
	p.End()
	if err := w.DumpTimings(&buf, p, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), ",\n\n") {
		t.Fatal("second flush should be separated by \",\\n\\n\", not a new \"[\"")
	}
	if strings.Count(buf.String(), "[") != 1 {
		t.Fatalf("\"[\" should appear exactly once across both flushes: %q", buf.String())
	}
}

// The live-set reconstructor ends empty after a balanced
// alloc/realloc/free sequence, and each counter event reflects the
// intermediate live set.
func TestMemoryCountersLiveSet(t *testing.T) {
	p := profiler.New(profiler.WithClock(fakeClock(1, 2, 3, 4, 5)))
	idx := p.NewRecord("alloc-site", "f.go", 1)
	p.Begin(idx)
	p.Alloc(idx, 0x10, 16)
	p.Realloc(idx, 0x20, 0x10, 32)
	p.Free(idx, 0x20)
	p.End()

	var buf strings.Builder
	w := &Writer{MemorySampling: true}
	if err := w.DumpTimings(&buf, p, true); err != nil {
		t.Fatal(err)
	}

	events := decodeBatch(t, buf.String())
	var counters []map[string]interface{}
	for _, ev := range events {
		if ev["ph"] == "C" {
			counters = append(counters, ev)
		}
	}
	// legend + one per ptr-sample + final = 1 + 3 + 1
	if len(counters) != 5 {
		t.Fatalf("got %d counter events, want 5: %+v", len(counters), counters)
	}

	legendArgs := counters[0]["args"].(map[string]interface{})
	if len(legendArgs) != 2 {
		t.Fatalf("legend args = %+v, want 2 addresses introduced", legendArgs)
	}
	for _, v := range legendArgs {
		if v.(float64) != 0 {
			t.Fatalf("legend values should all be 0, got %+v", legendArgs)
		}
	}

	finalArgs := counters[len(counters)-1]["args"].(map[string]interface{})
	if len(finalArgs) != 0 {
		t.Fatalf("final live set should be empty, got %+v", finalArgs)
	}

	afterAlloc := counters[1]["args"].(map[string]interface{})
	if sz, ok := afterAlloc["0x10"]; !ok || sz.(float64) != 16 {
		t.Fatalf("after alloc, live set = %+v, want {0x10: 16}", afterAlloc)
	}

	afterRealloc := counters[2]["args"].(map[string]interface{})
	if _, stillThere := afterRealloc["0x10"]; stillThere {
		t.Fatalf("after realloc, 0x10 should no longer be live: %+v", afterRealloc)
	}
	if sz, ok := afterRealloc["0x20"]; !ok || sz.(float64) != 32 {
		t.Fatalf("after realloc, live set = %+v, want {0x20: 32}", afterRealloc)
	}

	afterFree := counters[3]["args"].(map[string]interface{})
	if len(afterFree) != 0 {
		t.Fatalf("after free, live set should be empty, got %+v", afterFree)
	}
}

func TestMemoryCountersPanicOnUnmatchedFree(t *testing.T) {
	p := profiler.New(profiler.WithClock(fakeClock(1, 2)))
	idx := p.NewRecord("alloc-site", "f.go", 1)
	p.Free(idx, 0xdead)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic freeing an untracked address")
		}
	}()
	var buf strings.Builder
	w := &Writer{MemorySampling: true}
	_ = w.DumpTimings(&buf, p, true)
}
