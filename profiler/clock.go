// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "time"

// A Clock returns a monotonically non-decreasing 64-bit count of
// "cycles". The core never interprets the unit; the serializer
// optionally scales by a configured divisor to convert to
// milliseconds. Implementations must be cheap (tens of cycles) and
// must return the same unit on every call within one process.
//
// No hardware cycle-counter intrinsic (e.g. RDTSC) is provided here;
// callers that need true cycle counts supply their own Clock via
// WithClock.
type Clock func() uint64

// processStart anchors DefaultClock to process start so its readings
// stay in the monotonic clock reading time.Since relies on, rather
// than the wall clock (which NTP can step backwards).
var processStart = time.Now()

// DefaultClock is a portable fallback Clock based on the runtime's
// monotonic clock. Its unit is nanoseconds since process start, so a
// freq of 1e9 with WithFreq converts its output to milliseconds
// correctly.
func DefaultClock() uint64 {
	return uint64(time.Since(processStart))
}
