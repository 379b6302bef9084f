// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serialize writes a Profiler's accumulated samples as a
// Chrome Tracing JSON stream (see
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU),
// and reconstructs a live pointer-set timeline from a pointer-sample
// log for optional memory-counter emission.
package serialize

import (
	"fmt"
	"io"

	"github.com/azmr/professor-go/profiler"
)

// msDivisor returns the cycles-to-milliseconds divisor for freq:
// freq/1000, defaulting to 1 (raw cycles) when freq is unset.
func msDivisor(freq float64) float64 {
	if freq == 0 {
		return 1
	}
	return freq / 1000
}

// A Writer formats a Profiler's accumulated state as Chrome Tracing
// JSON. Its only state is the MemorySampling setting; the framing of
// repeated flushes is chosen by DumpTimings's first argument, and the
// profiler's own record/sample/ptr-sample arrays remain the source of
// truth.
type Writer struct {
	// MemorySampling gates emission of memory-liveset counter
	// events reconstructed from the pointer-sample log. When false
	// (the default zero value), DumpTimings emits only
	// duration/instant events.
	MemorySampling bool
}

// New returns a Writer with memory-sampling emission following p's own
// WithMemorySampling setting.
func New(p *profiler.Profiler) *Writer {
	return &Writer{MemorySampling: p.MemorySamplingEnabled()}
}

// DumpTimings writes the samples accumulated in p since the last flush
// to w as a batch of Chrome Tracing JSON events, then truncates p's
// sample tree (preserving records). first must be true for the very
// first call against a given sink (it writes the opening "["); every
// later call writes a ",\n\n" separator before its batch instead. w is
// never given a closing "]": appending it once the sink is done
// accepting flushes is the caller's responsibility, which is what lets
// repeated flushes concatenate into one valid stream.
func (wr *Writer) DumpTimings(w io.Writer, p *profiler.Profiler, first bool) error {
	if first {
		if _, err := io.WriteString(w, "[\n"); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w, ",\n\n"); err != nil {
			return err
		}
	}

	ms := msDivisor(p.Freq())
	samples := p.Samples()
	for i, s := range samples {
		if i > 0 {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		record := p.Record(s.RecordIndex)
		if err := writeEvent(w, record, s, ms); err != nil {
			return err
		}
	}

	if wr.MemorySampling && p.PtrSampleCount() > 0 {
		if len(samples) > 0 {
			if _, err := io.WriteString(w, ",\n\n"); err != nil {
				return err
			}
		}
		if err := writeMemoryCounters(w, p, ms); err != nil {
			return err
		}
	}

	p.ResetSamples()
	return nil
}

func writeEvent(w io.Writer, record profiler.Record, s profiler.Sample, ms float64) error {
	if s.CyclesStart != s.CyclesEnd {
		_, err := fmt.Fprintf(w,
			`    {"name":"%s", "ph":"X", "ts": %f, "dur": %f, "pid": 0, "tid": 0}`,
			record.Name, float64(s.CyclesStart)/ms, float64(s.CyclesEnd-s.CyclesStart)/ms)
		return err
	}
	_, err := fmt.Fprintf(w,
		`    {"name":"%s", "ph":"i", "ts": %f, "pid": 0, "tid": 0}`,
		record.Name, float64(s.CyclesStart)/ms)
	return err
}

// DumpStillOpen writes, to w, every sample still on the open chain:
// unclosed ranges at the time of the call. It delegates to
// profiler.DumpStillOpen, re-exposed here so callers reach both kinds
// of output (timings and diagnostics) through one serialize.Writer.
func (wr *Writer) DumpStillOpen(w io.Writer, p *profiler.Profiler) {
	profiler.DumpStillOpen(w, p)
}
