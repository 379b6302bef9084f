// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "github.com/ianlancetaylor/demangle"

// PrettyName returns a human-readable form of a record name.
//
// The name passed to NewRecord/InternRecord at an instrumentation site
// is ordinarily already a human name, but when the instrumentation
// wrapper lives in a C++ host program (common when this profiler is
// embedded behind a cgo boundary) the name handed across that boundary
// may still be a mangled Itanium C++ linker symbol. PrettyName
// demangles it best-effort; if name isn't a mangled symbol it is
// returned unchanged.
//
// This is never on the hot path: nothing in this module calls it,
// including Begin/Mark/End, PrintScope, DumpStillOpen and the
// serializer, which all print record names as given.
func PrettyName(name string) string {
	return demangle.Filter(name)
}
