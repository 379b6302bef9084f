// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command profheat renders a flamegraph-style PNG of a snapshot's
// sample tree, with a memory liveset heat strip underneath showing
// live allocated bytes over the same time axis.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/golang/freetype"

	"github.com/azmr/professor-go/snapshot"
)

func main() {
	var (
		flagInput  = flag.String("i", "prof.snapshot", "input snapshot `file`")
		flagOutput = flag.String("o", "profheat.png", "output PNG `file`")
		flagWidth  = flag.Int("w", 1024, "image width in pixels")
		flagRow    = flag.Int("row", 16, "row height in pixels")
		flagFont   = flag.String("font", "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf", "TrueType `font` for record labels")
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
	snap, err := snapshot.Decode(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	rects := layoutFlame(snap)
	if len(rects) == 0 {
		log.Fatal("snapshot has no closed samples to draw")
	}

	const heatHeight = 48
	depth := 0
	for _, r := range rects {
		if r.depth+1 > depth {
			depth = r.depth + 1
		}
	}

	width := *flagWidth
	flameHeight := depth * *flagRow
	img := image.NewNRGBA(image.Rect(0, 0, width, flameHeight+heatHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	fontData, err := os.ReadFile(*flagFont)
	var fontCtx *freetype.Context
	if err != nil {
		log.Printf("loading font: %v (labels will be omitted)", err)
	} else {
		font, err := freetype.ParseFont(fontData)
		if err != nil {
			log.Fatal(err)
		}
		fontCtx = freetype.NewContext()
		fontCtx.SetFont(font)
		fontCtx.SetFontSize(10)
		fontCtx.SetSrc(image.Black)
		fontCtx.SetDst(img)
		fontCtx.SetClip(img.Bounds())
	}

	scaler := newTimeScale(snap, width)
	drawFlame(img, fontCtx, rects, snap.Records, scaler, *flagRow)
	drawHeat(img, snap, scaler, flameHeight, heatHeight)

	out, err := os.Create(*flagOutput)
	if err != nil {
		log.Fatal(err)
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(out, img); err != nil {
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
}

// flameColor picks a deterministic, visually distinct fill for a
// record index; not intended to encode any further meaning (unlike
// the usual "warm color per self-time" convention, this profiler
// doesn't track self time separately from children).
func flameColor(i int) color.NRGBA {
	hue := uint8((i * 47) & 0xff)
	return color.NRGBA{R: 200, G: 120 + hue/4, B: 80 + hue/2, A: 255}
}
