package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Line
		want Line
	}{
		{"positive rho unchanged", NewLine(120, 0.3), NewLine(120, 0.3)},
		{"zero rho unchanged", NewLine(0, math.Pi/2), NewLine(0, math.Pi/2)},
		{"negative rho flipped", NewLine(-80, 3.1), NewLine(80, 3.1-math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.in.Normalize()
			assert.InDelta(t, tt.want.Rho, got.Rho, 1e-12)
			assert.InDelta(t, tt.want.Theta, got.Theta, 1e-12)
		})
	}
}

func TestLineNormalizeDescribesSameLine(t *testing.T) {
	t.Parallel()

	for _, raw := range []Line{
		NewLine(-10, 0.1),
		NewLine(-250.5, math.Pi/2),
		NewLine(-3, 3.13),
		NewLine(-400, 1.2),
	} {
		n := raw.Normalize()
		require.GreaterOrEqual(t, n.Rho, 0.0)

		// (−d, θ−π) has the same normal equation: cos and sin both flip sign.
		assert.InDelta(t, raw.Rho*math.Cos(raw.Theta), n.Rho*math.Cos(n.Theta), 1e-9)
		assert.InDelta(t, raw.Rho*math.Sin(raw.Theta), n.Rho*math.Sin(n.Theta), 1e-9)

		// Any point of the raw line lies on the normalized one.
		a, b := raw.Segment(300)
		assert.True(t, onLine(n, a))
		assert.True(t, onLine(n, b))
	}
}

func TestAverageLines(t *testing.T) {
	t.Parallel()

	t.Run("mean of rho and theta", func(t *testing.T) {
		t.Parallel()
		got := AverageLines(NewLine(100, 1.5), NewLine(200, 1.6))
		assert.InDelta(t, 150, got.Rho, 1e-12)
		assert.InDelta(t, 1.55, got.Theta, 1e-12)
	})

	t.Run("duplicates average to themselves", func(t *testing.T) {
		t.Parallel()
		l := NewLine(42.5, 0.01)
		assert.Equal(t, l, AverageLines(l, l, l, l))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Line{}, AverageLines())
	})
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	t.Run("vertical meets horizontal", func(t *testing.T) {
		t.Parallel()
		p, err := Intersect(NewLine(70, 0), NewLine(130, math.Pi/2))
		require.NoError(t, err)
		assert.InDelta(t, 70, p.X, 1e-9)
		assert.InDelta(t, 130, p.Y, 1e-9)
	})

	t.Run("argument order does not matter", func(t *testing.T) {
		t.Parallel()
		a := NewLine(150, 0.05)
		b := NewLine(220, math.Pi/2-0.03)
		p1, err := Intersect(a, b)
		require.NoError(t, err)
		p2, err := Intersect(b, a)
		require.NoError(t, err)
		assert.InDelta(t, p1.X, p2.X, 1e-9)
		assert.InDelta(t, p1.Y, p2.Y, 1e-9)
		assert.True(t, onLine(a, p1))
		assert.True(t, onLine(b, p1))
	})

	t.Run("parallel lines", func(t *testing.T) {
		t.Parallel()
		_, err := Intersect(NewLine(10, 0.4), NewLine(90, 0.4))
		assert.ErrorIs(t, err, ErrParallel)
	})

	t.Run("same line written two ways", func(t *testing.T) {
		t.Parallel()
		raw := NewLine(-60, 2.0)
		_, err := Intersect(raw, raw.Normalize())
		assert.ErrorIs(t, err, ErrParallel)
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, NewPoint2D(12.9, 3.2).Truncate().X)
	assert.Equal(t, 3, NewPoint2D(12.9, 3.2).Truncate().Y)
	assert.Equal(t, -1, NewPoint2D(-1.7, 0).Truncate().X)
}

// onLine reports whether p satisfies the normal equation of l.
func onLine(l Line, p Point2D) bool {
	return math.Abs(p.X*math.Cos(l.Theta)+p.Y*math.Sin(l.Theta)-l.Rho) <= 1e-6
}
