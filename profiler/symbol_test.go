// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profiler

import "testing"

func TestPrettyNameDemanglesMangledSymbol(t *testing.T) {
	got := PrettyName("_Z3foov")
	if got != "foo()" {
		t.Fatalf("PrettyName(%q) = %q, want %q", "_Z3foov", got, "foo()")
	}
}

func TestPrettyNamePassesThroughPlainNames(t *testing.T) {
	got := PrettyName("render_frame")
	if got != "render_frame" {
		t.Fatalf("PrettyName(%q) = %q, want unchanged", "render_frame", got)
	}
}
