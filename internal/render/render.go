// Package render draws scan intermediates onto copies of the source photo
// for debugging.
package render

import (
	"image"
	"image/color"

	"cube-scanner/pkg/colorutil"
	"cube-scanner/pkg/geometry"

	"golang.org/x/image/draw"
)

// Options configures how lines and points are drawn.
type Options struct {
	LineColor     color.RGBA
	LineThickness int
	LineExtent    float64 // Distance drawn either side of the line's foot

	PointColor  color.RGBA
	PointRadius int
}

// DefaultOptions returns red 2 px lines and magenta points of radius 3.
func DefaultOptions() Options {
	return Options{
		LineColor:     colorutil.Red,
		LineThickness: 2,
		LineExtent:    1000,
		PointColor:    colorutil.Magenta,
		PointRadius:   3,
	}
}

// Copy returns an RGBA copy of img with the same bounds.
func Copy(img image.Image) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Lines returns a copy of img with every line drawn across it. Line
// coordinates are relative to the image origin.
func Lines(img image.Image, lines []geometry.Line, opts Options) *image.RGBA {
	out := Copy(img)
	origin := out.Bounds().Min
	for _, l := range lines {
		a, b := l.Segment(opts.LineExtent)
		drawThickLine(out,
			a.X+float64(origin.X), a.Y+float64(origin.Y),
			b.X+float64(origin.X), b.Y+float64(origin.Y),
			opts.LineThickness, opts.LineColor)
	}
	return out
}

// Points returns a copy of img with a filled disc at every point.
func Points(img image.Image, points []geometry.Point2D, opts Options) *image.RGBA {
	out := Copy(img)
	origin := out.Bounds().Min
	for _, p := range points {
		c := p.Truncate().Add(origin)
		fillCircle(out, c.X, c.Y, opts.PointRadius, opts.PointColor)
	}
	return out
}

// fillCircle fills a circle with the given color.
func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	bounds := img.Bounds()

	for y := cy - r; y <= cy+r; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawThickLine draws parallel Bresenham lines offset along the normal.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2 float64, thickness int, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := geometry.NewPoint2D(x1, y1).Distance(geometry.NewPoint2D(x2, y2))
	if length == 0 {
		return
	}

	px := -dy / length
	py := dx / length

	if thickness < 1 {
		thickness = 1
	}
	half := float64(thickness-1) / 2
	for t := -half; t <= half; t++ {
		drawLine(img,
			int(x1+px*t), int(y1+py*t),
			int(x2+px*t), int(y2+py*t),
			c)
	}
}

// drawLine draws a line using Bresenham's algorithm, clipped to the image.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
