// Package colorutil provides shared color utilities for the cube scanner.
package colorutil

import (
	"image/color"
	"math"
)

// Overlay colors used by the diagnostic renderer.
var (
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Channels returns the 8-bit red, green and blue intensities of c as
// floats in [0, 255]. Alpha is ignored.
func Channels(c color.Color) (r, g, b float64) {
	r16, g16, b16, _ := c.RGBA()
	return float64(r16 >> 8), float64(g16 >> 8), float64(b16 >> 8)
}

// RGBA8 clamps and rounds float channels back to an opaque color.RGBA.
func RGBA8(r, g, b float64) color.RGBA {
	return color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255}
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
