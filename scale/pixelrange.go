// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

// clampMode controls PixelRange.Of's behavior for inputs outside
// [0, 1].
type clampMode int

const (
	clampCrop clampMode = iota
	clampNone
	clampClamp
)

// A PixelRange maps a normalized axis position on [0, 1] to a pixel
// column in [min, max].
type PixelRange struct {
	min, max float64
	clamp    clampMode
}

// NewPixelRange returns a PixelRange spanning [min, max] pixels,
// cropping out-of-range input by default.
func NewPixelRange(min, max float64) PixelRange {
	return PixelRange{min, max, clampCrop}
}

// Crop makes Of reject input outside [0, 1].
func (r *PixelRange) Crop() { r.clamp = clampCrop }

// Unclamp makes Of map input outside [0, 1] linearly, without rejecting
// or clamping it.
func (r *PixelRange) Unclamp() { r.clamp = clampNone }

// Clamp makes Of clamp input to [0, 1] before mapping it.
func (r *PixelRange) Clamp() { r.clamp = clampClamp }

// Of maps x, a position on [0, 1], to a pixel coordinate. The second
// return value is false if x was outside [0, 1] and r is in Crop mode.
func (r PixelRange) Of(x float64) (float64, bool) {
	switch r.clamp {
	case clampCrop:
		if x < 0 || x > 1 {
			return 0, false
		}
	case clampClamp:
		if x < 0 {
			x = 0
		} else if x > 1 {
			x = 1
		}
	}
	return x*(r.max-r.min) + r.min, true
}
