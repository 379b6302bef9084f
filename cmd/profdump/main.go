// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command profdump prints the contents of a snapshot file: its record
// table, sample counts per record, and the pointer-sample log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/azmr/professor-go/profiler"
	"github.com/azmr/professor-go/snapshot"
)

func main() {
	var (
		flagInput = flag.String("i", "prof.snapshot", "input snapshot `file`")
	)
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*flagInput)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	snap, err := snapshot.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("freq: %v\n", snap.Freq)
	fmt.Printf("records: %d\n", len(snap.Records))

	counts := make([]int, len(snap.Records))
	for _, s := range snap.Samples {
		if int(s.RecordIndex) < len(counts) {
			counts[s.RecordIndex]++
		}
	}

	for i, r := range snap.Records {
		fmt.Printf("  [%d] %s (%s:%d) samples=%d\n", i, r.Name, r.Filename, r.Line, counts[i])
	}

	fmt.Printf("samples: %d\n", len(snap.Samples))
	fmt.Printf("ptr samples: %d\n", len(snap.PtrSamples))
	for _, p := range snap.PtrSamples {
		name := "?"
		if int(p.RecordIndex) < len(snap.Records) {
			name = snap.Records[p.RecordIndex].Name
		}
		switch {
		case p.Alloc():
			fmt.Printf("  alloc   %#x size=%d @ %s\n", p.Addr, p.Size, name)
		case p.Free():
			fmt.Printf("  free    %#x @ %s\n", p.Addr, name)
		case p.Realloc():
			fmt.Printf("  realloc %#x -> %#x size=%d @ %s\n", p.PriorAddr, p.Addr, p.Size, name)
		}
	}

	var open []profiler.RecordIndex
	for _, s := range snap.Samples {
		if s.Open() {
			open = append(open, s.RecordIndex)
		}
	}
	if len(open) > 0 {
		fmt.Printf("still open: %d\n", len(open))
	}
}
