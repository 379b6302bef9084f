// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import (
	"fmt"
	"io"
)

// PrintScope writes two leading spaces per parent link on the open
// chain (walked from the current open cursor up to its root, so a root
// scope gets none) as an indentation cue, then the innermost open
// record's name, filename,
// and line on a single trailing line. It writes nothing if nothing is
// open. Only the deepest frame's fields are printed; the indentation
// alone conveys depth.
func PrintScope(w io.Writer, p *Profiler) {
	idx, ok := p.TopRecord()
	if !ok {
		return
	}

	samples := p.Samples()
	smplIdx := p.sampleTree.openCursor
	for smplIdx != samples[smplIdx].ParentIndex {
		fmt.Fprint(w, "  ")
		smplIdx = samples[smplIdx].ParentIndex
	}

	record := p.Record(idx)
	fmt.Fprintf(w, "%s (%s:%d)\n", record.Name, record.Filename, record.Line)
}

// DumpStillOpen writes one line per sample on the open chain: every
// unclosed range at the time of the call, deepest first. Intended for
// teardown diagnostics.
func DumpStillOpen(w io.Writer, p *Profiler) {
	samples := p.Samples()
	for idx := p.sampleTree.openCursor; idx != noCursor; {
		smpl := samples[idx]
		record := p.Record(smpl.RecordIndex)
		fmt.Fprintf(w, "sample: %d, record[%d]: %s (%s[%d])\n",
			idx, smpl.RecordIndex, record.Name, record.Filename, record.Line)
		if idx == smpl.ParentIndex {
			break
		}
		idx = smpl.ParentIndex
	}
	fmt.Fprintln(w)
}

// CheckUniqueRecords is a quadratic self-check, intended for test use,
// that no two distinct record indices share the triple (name,
// filename, line). It returns the pair of indices that violate
// uniqueness, or (0, 0, true) if all records are unique.
func CheckUniqueRecords(p *Profiler) (i, j RecordIndex, unique bool) {
	records := p.Records()
	for a := 0; a < len(records); a++ {
		for b := a + 1; b < len(records); b++ {
			if records[a] == records[b] {
				return RecordIndex(a), RecordIndex(b), false
			}
		}
	}
	return 0, 0, true
}
