package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ParallelEpsilon is the smallest determinant magnitude for which two lines
// are considered to cross. sin(1e-9 rad) is far below anything a 1° Hough
// accumulator can report as distinct.
//
// Nearly parallel lines above the threshold intersect far outside any
// image. Callers that sample at the intersection rely on their own bounds
// check to reject such points.
const ParallelEpsilon = 1e-9

// ErrParallel is returned by Intersect when the lines never meet.
var ErrParallel = errors.New("lines are parallel")

// Line is a straight line in normal form: the set of points (x, y) with
// x*cos(Theta) + y*sin(Theta) = Rho. Rho is the perpendicular distance from
// the origin and Theta the angle of that perpendicular, in radians.
type Line struct {
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`
}

// NewLine creates a new Line.
func NewLine(rho, theta float64) Line {
	return Line{Rho: rho, Theta: theta}
}

func (l Line) String() string {
	return fmt.Sprintf("(ρ=%.1f, θ=%.4f)", l.Rho, l.Theta)
}

// Normalize returns an equivalent line with a non-negative Rho.
// A negative distance is flipped and Theta rotated back by π so that
// similar lines have similar parameters.
func (l Line) Normalize() Line {
	if l.Rho >= 0 {
		return l
	}
	return Line{Rho: -l.Rho, Theta: l.Theta - math.Pi}
}

// Foot returns the point of the line closest to the origin.
func (l Line) Foot() Point2D {
	return Point2D{X: l.Rho * math.Cos(l.Theta), Y: l.Rho * math.Sin(l.Theta)}
}

// Direction returns the unit vector running along the line.
func (l Line) Direction() Point2D {
	return Point2D{X: -math.Sin(l.Theta), Y: math.Cos(l.Theta)}
}

// Segment returns two points on the line, halfLength either side of Foot.
func (l Line) Segment(halfLength float64) (Point2D, Point2D) {
	foot := l.Foot()
	d := l.Direction().Scale(halfLength)
	return foot.Add(d), foot.Sub(d)
}

// AverageLines returns the line whose Rho and Theta are the arithmetic
// means of the given lines. An empty input yields the zero Line.
func AverageLines(lines ...Line) Line {
	if len(lines) == 0 {
		return Line{}
	}
	rhos := make([]float64, len(lines))
	thetas := make([]float64, len(lines))
	for i, l := range lines {
		rhos[i] = l.Rho
		thetas[i] = l.Theta
	}
	return Line{Rho: stat.Mean(rhos, nil), Theta: stat.Mean(thetas, nil)}
}

// Intersect solves
//
//	cos(θa)·x + sin(θa)·y = ρa
//	cos(θb)·x + sin(θb)·y = ρb
//
// by Cramer's rule. Returns ErrParallel when |det| < ParallelEpsilon.
func Intersect(a, b Line) (Point2D, error) {
	cosA, sinA := math.Cos(a.Theta), math.Sin(a.Theta)
	cosB, sinB := math.Cos(b.Theta), math.Sin(b.Theta)

	coeff := mat.NewDense(2, 2, []float64{
		cosA, sinA,
		cosB, sinB,
	})
	det := mat.Det(coeff)
	if math.Abs(det) < ParallelEpsilon {
		return Point2D{}, fmt.Errorf("%w: %v and %v", ErrParallel, a, b)
	}

	return Point2D{
		X: (sinB*a.Rho - sinA*b.Rho) / det,
		Y: (cosA*b.Rho - cosB*a.Rho) / det,
	}, nil
}
