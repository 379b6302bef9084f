// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/azmr/professor-go/profiler"
)

// bufDecoder walks a byte buffer, consuming little-endian fixed-width
// fields.
type bufDecoder struct {
	buf []byte
}

func (d *bufDecoder) need(n int) error {
	if len(d.buf) < n {
		return fmt.Errorf("snapshot: truncated: need %d bytes, have %d", n, len(d.buf))
	}
	return nil
}

func (d *bufDecoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint32(d.buf)
	d.buf = d.buf[4:]
	return x, nil
}

func (d *bufDecoder) u64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint64(d.buf)
	d.buf = d.buf[8:]
	return x, nil
}

func (d *bufDecoder) f64() (float64, error) {
	bits, err := d.u64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (d *bufDecoder) bytes() ([]byte, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	x := d.buf[:n]
	d.buf = d.buf[n:]
	return x, nil
}

func (d *bufDecoder) string() (string, error) {
	b, err := d.bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode reads a Snapshot previously written by Encode.
func Decode(r io.Reader) (Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: reading: %w", err)
	}

	d := bufDecoder{raw}
	if err := d.need(len(magic)); err != nil {
		return Snapshot{}, err
	}
	if string(d.buf[:len(magic)]) != magic {
		return Snapshot{}, fmt.Errorf("snapshot: bad magic %q", d.buf[:len(magic)])
	}
	d.buf = d.buf[len(magic):]

	version, err := d.u32()
	if err != nil {
		return Snapshot{}, err
	}
	if version != formatMajor {
		return Snapshot{}, fmt.Errorf("snapshot: unsupported format version %d", version)
	}

	var s Snapshot
	if s.Freq, err = d.f64(); err != nil {
		return Snapshot{}, err
	}

	recordCount, err := d.u32()
	if err != nil {
		return Snapshot{}, err
	}
	s.Records = make([]profiler.Record, recordCount)
	for i := range s.Records {
		name, err := d.string()
		if err != nil {
			return Snapshot{}, err
		}
		filename, err := d.string()
		if err != nil {
			return Snapshot{}, err
		}
		line, err := d.u32()
		if err != nil {
			return Snapshot{}, err
		}
		s.Records[i] = profiler.Record{Name: name, Filename: filename, Line: line}
	}

	sampleCount, err := d.u32()
	if err != nil {
		return Snapshot{}, err
	}
	s.Samples = make([]profiler.Sample, sampleCount)
	for i := range s.Samples {
		recordIdx, err := d.u32()
		if err != nil {
			return Snapshot{}, err
		}
		parentIdx, err := d.u32()
		if err != nil {
			return Snapshot{}, err
		}
		start, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		end, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		s.Samples[i] = profiler.Sample{
			RecordIndex: profiler.RecordIndex(recordIdx),
			ParentIndex: profiler.RecordIndex(parentIdx),
			CyclesStart: start,
			CyclesEnd:   end,
		}
	}

	ptrCount, err := d.u32()
	if err != nil {
		return Snapshot{}, err
	}
	s.PtrSamples = make([]profiler.PtrSample, ptrCount)
	for i := range s.PtrSamples {
		recordIdx, err := d.u32()
		if err != nil {
			return Snapshot{}, err
		}
		addr, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		prior, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		cycles, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		size, err := d.u64()
		if err != nil {
			return Snapshot{}, err
		}
		s.PtrSamples[i] = profiler.PtrSample{
			RecordIndex: profiler.RecordIndex(recordIdx),
			Addr:        uintptr(addr),
			PriorAddr:   uintptr(prior),
			Cycles:      cycles,
			Size:        uintptr(size),
		}
	}

	return s, nil
}
