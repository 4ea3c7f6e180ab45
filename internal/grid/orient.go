// Package grid reconstructs the 3×3 facelet grid of a cube face from
// detected straight lines.
//
// The pipeline runs Normalize → FilterOrthogonal → Combine →
// FindCentreLines → FindCentres. Every stage returns fresh slices and
// leaves its input untouched.
package grid

import (
	"math"

	"cube-scanner/pkg/geometry"
)

// AngleBand is the half-width of the horizontal and vertical acceptance
// bands around π/2 and 0.
const AngleBand = math.Pi / 36

// Normalize returns the lines with every negative distance flipped, see
// geometry.Line.Normalize.
func Normalize(lines []geometry.Line) []geometry.Line {
	out := make([]geometry.Line, len(lines))
	for i, l := range lines {
		out[i] = l.Normalize()
	}
	return out
}

// IsHorizontal returns true if the line's normal lies strictly within
// AngleBand of π/2.
func IsHorizontal(l geometry.Line) bool {
	return l.Theta > math.Pi/2-AngleBand && l.Theta < math.Pi/2+AngleBand
}

// IsVertical returns true if the line's normal lies strictly within
// AngleBand of 0, or of ±π where the angle wraps round.
func IsVertical(l geometry.Line) bool {
	return math.Abs(l.Theta) < AngleBand ||
		math.Abs(l.Theta-math.Pi) < AngleBand ||
		math.Abs(l.Theta+math.Pi) < AngleBand
}

// FilterOrthogonal keeps only horizontal and vertical lines. The result is
// never nil, so an empty stage is distinguishable from one that did not run.
func FilterOrthogonal(lines []geometry.Line) []geometry.Line {
	out := []geometry.Line{}
	for _, l := range lines {
		if IsHorizontal(l) || IsVertical(l) {
			out = append(out, l)
		}
	}
	return out
}
