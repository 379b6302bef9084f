// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

// noCursor is the open-cursor value meaning "nothing is open".
const noCursor = NoRecord

// sampleIndex identifies a Sample within a sample tree. It shares
// RecordIndex's width and sentinel since both index the same 32-bit
// space.
type sampleIndex = RecordIndex

// cyclesOpen marks a Sample's CyclesEnd as "still open".
const cyclesOpen = ^uint64(0)

// A Sample is a single timed observation referencing a Record.
//
// ParentIndex equals the sample's own index iff it is a tree root.
// CyclesEnd == cyclesOpen means the range is still open; CyclesEnd ==
// CyclesStart means the sample is a mark (instant event); otherwise it
// is a closed duration.
type Sample struct {
	RecordIndex RecordIndex
	ParentIndex sampleIndex
	CyclesStart uint64
	CyclesEnd   uint64
}

// Open reports whether s is an unclosed range.
func (s Sample) Open() bool { return s.CyclesEnd == cyclesOpen }

// Mark reports whether s is an instant event.
func (s Sample) Mark() bool { return s.CyclesEnd == s.CyclesStart }

// Root reports whether s is a tree root, given its own index.
func (s Sample) Root(ownIndex sampleIndex) bool { return s.ParentIndex == ownIndex }

// sampleTree is the append-only sample array plus the open cursor.
//
// samples grows by doubling from an initial capacity of 64 rather than
// relying on append's own (differently-tuned) growth factor.
type sampleTree struct {
	samples    []Sample
	capacity   int
	openCursor sampleIndex // noCursor if nothing is open
}

func newSampleTree() sampleTree {
	return sampleTree{openCursor: noCursor}
}

// begin opens a new range sampling recordIdx at cycles, parented under
// the current open cursor (or itself, if nothing is open), and makes
// it the new open cursor. Returns the new sample's index.
func (t *sampleTree) begin(recordIdx RecordIndex, cycles uint64) sampleIndex {
	if len(t.samples) == t.capacity {
		t.samples = grow(t.samples, &t.capacity)
	}
	idx := sampleIndex(len(t.samples))
	parent := t.openCursor
	if parent == noCursor {
		parent = idx
	}
	t.samples = append(t.samples, Sample{
		RecordIndex: recordIdx,
		ParentIndex: parent,
		CyclesStart: cycles,
		CyclesEnd:   cyclesOpen,
	})
	t.openCursor = idx
	return idx
}

// mark inserts an instant sample at cycles, parented under the current
// open cursor (or itself, if nothing is open). The open cursor is left
// unchanged: marks never become, and never interrupt, an open range.
func (t *sampleTree) mark(recordIdx RecordIndex, cycles uint64) sampleIndex {
	if len(t.samples) == t.capacity {
		t.samples = grow(t.samples, &t.capacity)
	}
	idx := sampleIndex(len(t.samples))
	parent := t.openCursor
	if parent == noCursor {
		parent = idx
	}
	t.samples = append(t.samples, Sample{
		RecordIndex: recordIdx,
		ParentIndex: parent,
		CyclesStart: cycles,
		CyclesEnd:   cycles,
	})
	return idx
}

// endUnchecked closes the currently open sample at cycles, moves the
// open cursor to its parent (or noCursor if it was a root), and
// returns the record index that was closed.
//
// It panics if there are no samples at all, or if nothing is open.
// Both indicate mismatched begin/end pairing in instrumented code and
// are not recoverable.
func (t *sampleTree) endUnchecked(cycles uint64) RecordIndex {
	if len(t.samples) == 0 {
		panic("profiler: end() with no samples taken at all - nothing to close")
	}
	if t.openCursor == noCursor {
		panic("profiler: end() with no open sample - mismatched begin/end?")
	}

	s := &t.samples[t.openCursor]
	s.CyclesEnd = cycles

	isRoot := s.ParentIndex == t.openCursor
	if isRoot {
		t.openCursor = noCursor
	} else {
		t.openCursor = s.ParentIndex
	}
	return s.RecordIndex
}

// end closes the currently open sample and asserts that the closed
// record matches expected, unless expected is NoRecord.
func (t *sampleTree) end(cycles uint64, expected RecordIndex) RecordIndex {
	actual := t.endUnchecked(cycles)
	if expected.Valid() && actual != expected {
		panic("profiler: end() record mismatch - begin and end don't seem to match")
	}
	return actual
}

// topRecord returns the record index of the deepest currently-open
// sample, and whether one is open at all.
func (t *sampleTree) topRecord() (RecordIndex, bool) {
	if t.openCursor == noCursor {
		return NoRecord, false
	}
	return t.samples[t.openCursor].RecordIndex, true
}

// reset truncates the sample array to zero length for a flush. It does
// not touch the open cursor: a flush taken while a scope is still open
// leaves openCursor pointing past the truncated array. Callers that
// need to flush mid-session are expected to do so only at a balanced
// point (open cursor == none); DumpStillOpen exists precisely so
// callers can check this first.
func (t *sampleTree) reset() {
	t.samples = t.samples[:0]
}

// len returns the number of samples currently in the tree.
func (t *sampleTree) len() int {
	return len(t.samples)
}
