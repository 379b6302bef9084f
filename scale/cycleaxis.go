// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale lays out a cycle-stamped time axis for the flamegraph
// renderer: a span of sample cycle counts mapped onto [0, 1], then onto
// a pixel column.
package scale

// A CycleAxis maps a span of cycle counts linearly onto [0, 1].
type CycleAxis struct {
	min, width float64
}

// NewCycleAxis returns a CycleAxis spanning [min(cycles), max(cycles)].
func NewCycleAxis(cycles []uint64) CycleAxis {
	min, max := minmaxCycles(cycles)
	if max == min {
		max = min + 1
	}
	return CycleAxis{float64(min), float64(max - min)}
}

// Of maps a cycle count to its position on [0, 1].
func (a CycleAxis) Of(cycles uint64) float64 {
	return (float64(cycles) - a.min) / a.width
}

func minmaxCycles(cycles []uint64) (min, max uint64) {
	min, max = cycles[0], cycles[0]
	for _, c := range cycles {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return
}
