// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

// Instrumenter is the subset of *Profiler's API that instrumented call
// sites use. *Profiler and Noop both satisfy it, so a build can swap
// in Noop behind a build tag to compile instrumentation out entirely.
type Instrumenter interface {
	NewRecord(name, filename string, line uint32) RecordIndex
	InternRecord(name, filename string, line uint32) RecordIndex
	Begin(idx RecordIndex)
	Mark(idx RecordIndex)
	End() RecordIndex
	EndExpect(expected RecordIndex) RecordIndex
	Alloc(idx RecordIndex, addr uintptr, size uintptr)
	Realloc(idx RecordIndex, addr, prior uintptr, size uintptr)
	Free(idx RecordIndex, addr uintptr)
}

var (
	_ Instrumenter = (*Profiler)(nil)
	_ Instrumenter = Noop{}
)

// Noop is a zero-cost Instrumenter: every operation is a no-op, and
// NewRecord/InternRecord always return NoRecord. It satisfies
// Instrumenter so instrumented call sites can be built against it
// without modification when instrumentation should compile out
// entirely.
type Noop struct{}

func (Noop) NewRecord(string, string, uint32) RecordIndex    { return NoRecord }
func (Noop) InternRecord(string, string, uint32) RecordIndex { return NoRecord }
func (Noop) Begin(RecordIndex)                               {}
func (Noop) Mark(RecordIndex)                                {}
func (Noop) End() RecordIndex                                { return NoRecord }
func (Noop) EndExpect(RecordIndex) RecordIndex               { return NoRecord }
func (Noop) Alloc(RecordIndex, uintptr, uintptr)             {}
func (Noop) Realloc(RecordIndex, uintptr, uintptr, uintptr)  {}
func (Noop) Free(RecordIndex, uintptr)                       {}
