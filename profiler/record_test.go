// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "testing"

func TestInternRecordDedupsSameBackingString(t *testing.T) {
	p := New()
	name, filename := "loop", "site.go"

	a := p.InternRecord(name, filename, 42)
	b := p.InternRecord(name, filename, 42)

	if a != b {
		t.Fatalf("InternRecord returned different indices for identical strings: %d != %d", a, b)
	}
	if p.RecordCount() != 1 {
		t.Fatalf("RecordCount = %d, want 1", p.RecordCount())
	}
}

func TestInternRecordDistinguishesFields(t *testing.T) {
	p := New()
	name, filename := "loop", "site.go"

	a := p.InternRecord(name, filename, 1)
	b := p.InternRecord(name, filename, 2)
	if a == b {
		t.Fatal("InternRecord dedupped records with different line numbers")
	}
}

func TestNewRecordAlwaysAppends(t *testing.T) {
	p := New()
	name, filename := "loop", "site.go"

	a := p.NewRecord(name, filename, 1)
	b := p.NewRecord(name, filename, 1)
	if a == b {
		t.Fatal("NewRecord returned the same index twice")
	}
	if p.RecordCount() != 2 {
		t.Fatalf("RecordCount = %d, want 2", p.RecordCount())
	}
}

// NewRecord may produce duplicate triples, and CheckUniqueRecords must
// flag them.
func TestCheckUniqueRecordsCatchesNewRecordDuplicates(t *testing.T) {
	p := New()
	name, filename := "loop", "site.go"
	p.NewRecord(name, filename, 1)
	p.NewRecord(name, filename, 1)

	if _, _, unique := CheckUniqueRecords(p); unique {
		t.Fatal("CheckUniqueRecords did not catch duplicate new_record triples")
	}
}

func TestCheckUniqueRecordsPassesAfterIntern(t *testing.T) {
	p := New()
	p.InternRecord("a", "site.go", 1)
	p.InternRecord("b", "site.go", 2)
	p.InternRecord("a", "site.go", 1)

	if _, _, unique := CheckUniqueRecords(p); !unique {
		t.Fatal("CheckUniqueRecords flagged records produced only via InternRecord")
	}
}

func TestNoRecordSentinel(t *testing.T) {
	if NoRecord.Valid() {
		t.Fatal("NoRecord.Valid() = true, want false")
	}
	if RecordIndex(0).Valid() != true {
		t.Fatal("RecordIndex(0).Valid() = false, want true")
	}
}
