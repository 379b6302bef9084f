// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/golang/freetype"

	"github.com/azmr/professor-go/profiler"
	"github.com/azmr/professor-go/scale"
	"github.com/azmr/professor-go/snapshot"
)

// flameRect is one drawable box in the flamegraph: a closed sample at
// a given tree depth.
type flameRect struct {
	record     profiler.RecordIndex
	depth      int
	start, end uint64
}

// layoutFlame walks snap's sample tree and assigns a depth to every
// closed, non-instant sample. Depth is computable in a single forward
// pass because a sample's parent always appears earlier in the array
// than the sample itself (sampleTree.begin parents a new sample under
// whatever was already open).
func layoutFlame(snap snapshot.Snapshot) []flameRect {
	depths := make([]int, len(snap.Samples))
	var rects []flameRect
	for i, s := range snap.Samples {
		if s.Root(profiler.RecordIndex(i)) {
			depths[i] = 0
		} else {
			depths[i] = depths[s.ParentIndex] + 1
		}
		if s.Open() || s.Mark() {
			continue
		}
		rects = append(rects, flameRect{s.RecordIndex, depths[i], s.CyclesStart, s.CyclesEnd})
	}
	return rects
}

// timeScale maps a cycle count into a pixel column, composing
// scale.CycleAxis (cycle domain -> [0, 1]) with scale.PixelRange
// ([0, 1] -> pixel range).
type timeScale struct {
	axis      scale.CycleAxis
	pixels    scale.PixelRange
	maxCycles uint64
}

func newTimeScale(snap snapshot.Snapshot, width int) timeScale {
	var cycles []uint64
	for _, s := range snap.Samples {
		if s.Open() {
			continue
		}
		cycles = append(cycles, s.CyclesStart, s.CyclesEnd)
	}
	if len(cycles) == 0 {
		cycles = []uint64{0}
	}
	pixels := scale.NewPixelRange(0, float64(width))
	pixels.Clamp()

	var maxCycles uint64
	for _, c := range cycles {
		if c > maxCycles {
			maxCycles = c
		}
	}
	return timeScale{scale.NewCycleAxis(cycles), pixels, maxCycles}
}

func (t timeScale) px(cycles uint64) int {
	x, _ := t.pixels.Of(t.axis.Of(cycles))
	return int(x)
}

func drawFlame(img *image.NRGBA, fontCtx *freetype.Context, rects []flameRect, records []profiler.Record, ts timeScale, rowHeight int) {
	for _, r := range rects {
		x0, x1 := ts.px(r.start), ts.px(r.end)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		y0 := r.depth * rowHeight
		box := image.Rect(x0, y0, x1, y0+rowHeight-1)
		draw.Draw(img, box, image.NewUniform(flameColor(int(r.record))), image.Point{}, draw.Src)
		for y := y0; y < y0+rowHeight; y++ {
			img.Set(x0, y, color.Black)
		}

		if fontCtx != nil && x1-x0 > 8 && int(r.record) < len(records) {
			fontCtx.DrawString(records[r.record].Name, freetype.Pt(x0+2, y0+rowHeight-4))
		}
	}
}

// drawHeat renders a heat strip of live allocated bytes under the
// flamegraph, replaying the pointer-sample log the same way
// profiler/serialize reconstructs the live set for Chrome Tracing
// counter events, then shading one vertical band per event interval.
func drawHeat(img *image.NRGBA, snap snapshot.Snapshot, ts timeScale, top, height int) {
	samples := append([]profiler.PtrSample(nil), snap.PtrSamples...)
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Cycles < samples[j].Cycles })

	live := make(map[uintptr]uintptr)
	var total, maxTotal uintptr
	type band struct {
		cycles uint64
		total  uintptr
	}
	bands := []band{{0, 0}}
	for _, s := range samples {
		switch {
		case s.Alloc():
			live[s.Addr] = s.Size
			total += s.Size
		case s.Realloc():
			total -= live[s.PriorAddr]
			delete(live, s.PriorAddr)
			live[s.Addr] = s.Size
			total += s.Size
		case s.Free():
			total -= live[s.Addr]
			delete(live, s.Addr)
		}
		bands = append(bands, band{s.Cycles, total})
		if total > maxTotal {
			maxTotal = total
		}
	}
	if maxTotal == 0 {
		return
	}
	bands = append(bands, band{ts.maxCycles, bands[len(bands)-1].total})

	strip := image.Rect(0, top, img.Bounds().Dx(), top+height)
	draw.Draw(img, strip, image.NewUniform(color.NRGBA{240, 240, 240, 255}), image.Point{}, draw.Src)

	for i := 0; i < len(bands)-1; i++ {
		x0, x1 := ts.px(bands[i].cycles), ts.px(bands[i+1].cycles)
		if x1 <= x0 {
			continue
		}
		frac := float64(bands[i].total) / float64(maxTotal)
		c := color.NRGBA{uint8(255 * frac), uint8(64 * (1 - frac)), uint8(255 * (1 - frac)), 255}
		box := image.Rect(x0, top, x1, top+height)
		draw.Draw(img, box, image.NewUniform(c), image.Point{}, draw.Src)
	}
}
