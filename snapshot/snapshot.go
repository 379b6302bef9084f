// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot provides a compact binary encoding of a Profiler's
// accumulated state (records, samples, pointer samples), for callers
// that want to persist or ship a capture without paying JSON-encoding
// cost on the hot path. It is never touched by Begin/Mark/End/Alloc/
// Realloc/Free; encoding and decoding both happen off the hot path,
// typically right before or instead of a serialize.Writer flush.
//
// The wire format is a small fixed header followed by three
// length-prefixed, fixed-width-field sections: a little-endian
// fixed-width decoder walking a single byte buffer, rather than
// encoding/gob or encoding/json.
package snapshot

import "github.com/azmr/professor-go/profiler"

const (
	magic       = "PROFSNP1"
	formatMajor = 1
)

// A Snapshot is the decoded, profiler-independent form of a flushed
// Profiler: its record table, the samples accumulated since the last
// flush, the full pointer-sample log, and the freq used to take it.
type Snapshot struct {
	Freq       float64
	Records    []profiler.Record
	Samples    []profiler.Sample
	PtrSamples []profiler.PtrSample
}

// Of captures p's current state into a Snapshot. The returned
// Snapshot's slices are independent copies; mutating p afterward does
// not affect it.
func Of(p *profiler.Profiler) Snapshot {
	records := p.Records()
	samples := p.Samples()
	ptrSamples := p.PtrSamples()

	s := Snapshot{
		Freq:       p.Freq(),
		Records:    make([]profiler.Record, len(records)),
		Samples:    make([]profiler.Sample, len(samples)),
		PtrSamples: make([]profiler.PtrSample, len(ptrSamples)),
	}
	copy(s.Records, records)
	copy(s.Samples, samples)
	copy(s.PtrSamples, ptrSamples)
	return s
}
