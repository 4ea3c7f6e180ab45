package facelet

import (
	"errors"
	"fmt"
	"image"
	"math"

	"cube-scanner/pkg/colorutil"
	"cube-scanner/pkg/geometry"
)

// DefaultOffset is the half-width of the square sampled around each
// facelet centre.
const DefaultOffset = 20

// ErrOutOfBounds is returned when a sample square misses the image.
var ErrOutOfBounds = errors.New("sample square lies outside the image")

// Sample returns the quadratic mean colour of the (2·offset+1)² square
// centred on the truncated point. Pixels outside the image are skipped.
func Sample(img image.Image, centre geometry.Point2D, offset int) (Colour, error) {
	c := centre.Truncate()
	square := image.Rect(c.X-offset, c.Y-offset, c.X+offset+1, c.Y+offset+1)
	region := square.Intersect(img.Bounds())
	if region.Empty() {
		return Colour{}, fmt.Errorf("%w: centre (%.1f, %.1f), bounds %v",
			ErrOutOfBounds, centre.X, centre.Y, img.Bounds())
	}

	var sumR, sumG, sumB float64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b := colorutil.Channels(img.At(x, y))
			sumR += r * r
			sumG += g * g
			sumB += b * b
		}
	}

	n := float64(region.Dx() * region.Dy())
	return Colour{
		R: math.Sqrt(sumR / n),
		G: math.Sqrt(sumG / n),
		B: math.Sqrt(sumB / n),
	}, nil
}

// SampleAll samples every point in order.
func SampleAll(img image.Image, points []geometry.Point2D, offset int) ([]Colour, error) {
	colours := make([]Colour, len(points))
	for i, p := range points {
		c, err := Sample(img, p, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point %d: %w", i, err)
		}
		colours[i] = c
	}
	return colours, nil
}
