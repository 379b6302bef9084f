// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command profstats prints a per-record duration histogram for a
// snapshot, bucketed on a log scale.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"

	"github.com/azmr/professor-go/profiler"
	"github.com/azmr/professor-go/snapshot"
)

const bins = 20
const barWidth = 40

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

	durations := make(map[profiler.RecordIndex][]float64)
	var maxDuration float64
	for _, s := range snap.Samples {
		if s.Open() || s.Mark() {
			continue
		}
		d := float64(s.CyclesEnd - s.CyclesStart)
		durations[s.RecordIndex] = append(durations[s.RecordIndex], d)
		if d > maxDuration {
			maxDuration = d
		}
	}
	if maxDuration == 0 {
		fmt.Println("no closed samples to report")
		return
	}

	scaler, err := scale.NewLog(1, maxDuration, 10)
	if err != nil {
		log.Fatal(err)
	}
	scaler.Nice(scale.TickOptions{Max: bins})

	major, _ := scaler.Ticks(scale.TickOptions{Max: bins})
	majorX := vec.Map(scaler.Map, major)

	for i, r := range snap.Records {
		ds := durations[profiler.RecordIndex(i)]
		if len(ds) == 0 {
			continue
		}
		hist := make([]int, bins)
		var total float64
		for _, d := range ds {
			total += d
			pos := scaler.Map(d)
			bin := int(pos * float64(bins))
			if bin < 0 {
				bin = 0
			}
			if bin >= bins {
				bin = bins - 1
			}
			hist[bin]++
		}

		fmt.Printf("%s (%s:%d): n=%d total=%.0f mean=%.1f\n",
			r.Name, r.Filename, r.Line, len(ds), total, total/float64(len(ds)))
		printHistogram(hist, major, majorX)
	}
}

func printHistogram(hist []int, ticks, ticksX []float64) {
	max := 0
	for _, n := range hist {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return
	}
	for i, n := range hist {
		width := n * barWidth / max
		label := binLabel(float64(i)/float64(len(hist)), ticks, ticksX)
		fmt.Printf("  %10s |%s %d\n", label, strings.Repeat("#", width), n)
	}
}

// binLabel finds the tick cycle value whose mapped position is
// closest to the left edge of a histogram bin, so the printed rows
// carry approximate cycle counts instead of bare bin indices.
func binLabel(pos float64, ticks, ticksX []float64) string {
	if len(ticks) == 0 {
		return ""
	}
	best, bestDist := 0, -1.0
	for i, x := range ticksX {
		dist := x - pos
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return fmt.Sprintf("%.0f", ticks[best])
}
