// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profiler implements an in-process instrumentation profiler:
// instrumented code declares named records (source-location
// identities) and produces samples (timed observations), and the
// accumulated samples can be serialized as a Chrome Tracing JSON
// stream (see the serialize subpackage).
package profiler

// An Allocator is notified before every append to the record table,
// the sample tree, or the pointer-sample log. It does not supply any
// storage: all three arrays are allocated by the Go runtime through
// grow, which doubles capacity from 64 whatever Allocator is set.
type Allocator interface {
	// Reallocate is called before each append with the length the
	// array is about to reach. The default Allocator's Reallocate is a
	// no-op; a custom Allocator can use the call to observe growth.
	Reallocate(sizeHint int)
}

type defaultAllocator struct{}

func (defaultAllocator) Reallocate(int) {}

// Option configures a Profiler at construction time.
type Option func(*Profiler)

// WithClock sets the Clock used for all timestamping. The default is
// DefaultClock.
func WithClock(clock Clock) Option {
	return func(p *Profiler) { p.clock = clock }
}

// WithFreq sets the cycles-per-second of the clock in use. The
// serializer's cycles-to-milliseconds divisor is freq/1000; a freq of
// 0 (the default) means raw cycles are emitted as ts/dur.
func WithFreq(freq float64) Option {
	return func(p *Profiler) { p.freq = freq }
}

// WithAllocator sets the Allocator notified before each array append.
// The default is a no-op Allocator.
func WithAllocator(a Allocator) Option {
	return func(p *Profiler) { p.allocator = a }
}

// WithMemorySampling enables or disables pointer-sample (alloc/
// realloc/free) live-set counter emission during serialization. It is
// disabled by default.
func WithMemorySampling(enabled bool) Option {
	return func(p *Profiler) { p.memorySampling = enabled }
}

// WithAtomicCounters reserves atomic add/exchange behavior for a
// future multi-producer design. No operation in this package currently
// consumes it; it is accepted and stored so that call sites written
// against a future concurrent Profiler don't need to change when that
// lands.
func WithAtomicCounters(enabled bool) Option {
	return func(p *Profiler) { p.atomicCounters = enabled }
}

// A Profiler owns a record table, a sample tree, a pointer-sample log,
// and the configuration needed to serialize them. All operations on a
// single Profiler must happen on one goroutine. The zero value is not
// usable, use New.
type Profiler struct {
	recordTable recordTable
	sampleTree  sampleTree
	ptrLog      ptrLog

	clock     Clock
	freq      float64
	allocator Allocator

	memorySampling bool
	atomicCounters bool
}

// New creates a Profiler ready for use.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		recordTable: newRecordTable(),
		sampleTree:  newSampleTree(),
		clock:       DefaultClock,
		allocator:   defaultAllocator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewRecord unconditionally registers a new record and returns its
// index. Use this when the call site already knows its location is
// new, e.g. a call site caching its own RecordIndex in a package-level
// variable on first hit (see BeginFunc).
func (p *Profiler) NewRecord(name, filename string, line uint32) RecordIndex {
	p.allocator.Reallocate(p.recordTable.len() + 1)
	return p.recordTable.newRecord(name, filename, line)
}

// InternRecord looks up (name, filename, line) in the dedup index,
// returning the existing RecordIndex if present, or registering and
// returning a new one otherwise. Use this when the same source
// location may be dynamically observed many times without a static
// per-site cache.
func (p *Profiler) InternRecord(name, filename string, line uint32) RecordIndex {
	p.allocator.Reallocate(p.recordTable.len() + 1)
	return p.recordTable.internRecord(name, filename, line)
}

// Record returns the Record registered at idx.
func (p *Profiler) Record(idx RecordIndex) Record {
	return p.recordTable.record(idx)
}

// RecordCount returns the number of registered records.
func (p *Profiler) RecordCount() int {
	return p.recordTable.len()
}

// Begin opens a new scope sampling record idx, reading the clock and
// pushing onto the open chain. Amortized O(1).
func (p *Profiler) Begin(idx RecordIndex) {
	p.allocator.Reallocate(p.sampleTree.len() + 1)
	p.sampleTree.begin(idx, p.clock())
}

// Mark inserts a zero-duration instant sample for record idx. It does
// not affect the open chain.
func (p *Profiler) Mark(idx RecordIndex) {
	p.allocator.Reallocate(p.sampleTree.len() + 1)
	p.sampleTree.mark(idx, p.clock())
}

// End closes the innermost open scope and returns the record index
// that was closed, without checking it against an expectation. It
// panics if no samples exist at all, or if nothing is currently open.
func (p *Profiler) End() RecordIndex {
	return p.sampleTree.endUnchecked(p.clock())
}

// EndExpect closes the innermost open scope and asserts that the
// closed record equals expected, unless expected is NoRecord. It
// panics on the same conditions as End, plus a mismatched expected
// record.
func (p *Profiler) EndExpect(expected RecordIndex) RecordIndex {
	return p.sampleTree.end(p.clock(), expected)
}

// BeginFunc begins a scope for idx and returns idx unchanged, so a
// call site can open and close a whole function body with a single
// defer:
//
//	defer p.EndFunc(p.BeginFunc(idx))
func (p *Profiler) BeginFunc(idx RecordIndex) RecordIndex {
	p.Begin(idx)
	return idx
}

// EndFunc closes the innermost open scope, asserting it matches
// expected. See BeginFunc.
func (p *Profiler) EndFunc(expected RecordIndex) RecordIndex {
	return p.EndExpect(expected)
}

// Alloc appends an allocation pointer-sample for record idx.
func (p *Profiler) Alloc(idx RecordIndex, addr uintptr, size uintptr) {
	p.allocator.Reallocate(p.ptrLog.len() + 1)
	p.ptrLog.append(idx, addr, 0, p.clock(), size)
}

// Realloc appends a reallocation pointer-sample for record idx,
// logically replacing prior with addr.
func (p *Profiler) Realloc(idx RecordIndex, addr, prior uintptr, size uintptr) {
	p.allocator.Reallocate(p.ptrLog.len() + 1)
	p.ptrLog.append(idx, addr, prior, p.clock(), size)
}

// Free appends a free pointer-sample for record idx.
func (p *Profiler) Free(idx RecordIndex, addr uintptr) {
	p.allocator.Reallocate(p.ptrLog.len() + 1)
	p.ptrLog.append(idx, addr, 0, p.clock(), 0)
}

// TopRecord returns the record index of the deepest currently-open
// sample, and whether one is open at all.
func (p *Profiler) TopRecord() (RecordIndex, bool) {
	return p.sampleTree.topRecord()
}

// SampleCount returns the number of samples currently accumulated
// since the last flush.
func (p *Profiler) SampleCount() int {
	return p.sampleTree.len()
}

// PtrSampleCount returns the number of pointer samples ever logged.
// Unlike the sample tree, the pointer-sample log is never truncated by
// a flush.
func (p *Profiler) PtrSampleCount() int {
	return p.ptrLog.len()
}

// Records returns a read-only view of the record table in insertion
// order. The returned slice aliases the Profiler's storage and must
// not be retained across a call that appends a new record.
func (p *Profiler) Records() []Record {
	return p.recordTable.records
}

// Samples returns a read-only view of the sample tree accumulated
// since the last flush, in insertion order. The returned slice aliases
// the Profiler's storage and must not be retained across a call to
// Begin, Mark, End, EndExpect, or ResetSamples.
func (p *Profiler) Samples() []Sample {
	return p.sampleTree.samples
}

// PtrSamples returns a read-only view of the full pointer-sample log.
// Unlike Samples, this is never truncated by a flush. The returned
// slice aliases the Profiler's storage and must not be retained across
// a call to Alloc, Realloc, or Free.
func (p *Profiler) PtrSamples() []PtrSample {
	return p.ptrLog.samples
}

// Freq returns the configured cycles-per-second, or 0 if unset.
func (p *Profiler) Freq() float64 {
	return p.freq
}

// MemorySamplingEnabled reports whether WithMemorySampling(true) was
// passed to New.
func (p *Profiler) MemorySamplingEnabled() bool {
	return p.memorySampling
}

// ResetSamples truncates the sample tree, preserving records, the
// dedup index, and the pointer-sample log. serialize.Writer.DumpTimings
// calls this automatically after a successful flush; it is exported
// for callers that serialize through another path (e.g. snapshot) and
// still want bounded-memory streaming across long sessions.
func (p *Profiler) ResetSamples() {
	p.sampleTree.reset()
}
