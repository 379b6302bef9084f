// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/binary"
	"io"
	"math"
)

// bufEncoder accumulates little-endian fixed-width fields into a byte
// buffer, the write-side companion to bufDecoder in decode.go.
type bufEncoder struct {
	buf []byte
}

func (e *bufEncoder) u32(x uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], x)
	e.buf = append(e.buf, b[:]...)
}

func (e *bufEncoder) u64(x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	e.buf = append(e.buf, b[:]...)
}

func (e *bufEncoder) f64(x float64) {
	e.u64(math.Float64bits(x))
}

func (e *bufEncoder) bytes(x []byte) {
	e.u32(uint32(len(x)))
	e.buf = append(e.buf, x...)
}

func (e *bufEncoder) string(x string) {
	e.bytes([]byte(x))
}

// Encode writes s to w in the snapshot wire format.
func Encode(w io.Writer, s Snapshot) error {
	var e bufEncoder
	e.buf = append(e.buf, magic...)
	e.u32(formatMajor)
	e.f64(s.Freq)

	e.u32(uint32(len(s.Records)))
	for _, r := range s.Records {
		e.string(r.Name)
		e.string(r.Filename)
		e.u32(r.Line)
	}

	e.u32(uint32(len(s.Samples)))
	for _, smpl := range s.Samples {
		e.u32(uint32(smpl.RecordIndex))
		e.u32(uint32(smpl.ParentIndex))
		e.u64(smpl.CyclesStart)
		e.u64(smpl.CyclesEnd)
	}

	e.u32(uint32(len(s.PtrSamples)))
	for _, p := range s.PtrSamples {
		e.u32(uint32(p.RecordIndex))
		e.u64(uint64(p.Addr))
		e.u64(uint64(p.PriorAddr))
		e.u64(p.Cycles)
		e.u64(uint64(p.Size))
	}

	_, err := w.Write(e.buf)
	return err
}
