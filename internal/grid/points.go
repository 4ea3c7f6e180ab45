package grid

import (
	"fmt"

	"cube-scanner/pkg/geometry"
)

// CellCount is the number of facelets on one face.
const CellCount = 9

// CellNames labels the grid cells in row-major order.
var CellNames = [CellCount]string{
	"top-left", "top-middle", "top-right",
	"middle-left", "centre", "middle-right",
	"bottom-left", "bottom-middle", "bottom-right",
}

// FindCentres intersects each centre horizontal with each centre vertical
// and returns the facelet centres in row-major order.
func FindCentres(c CentreLines) ([CellCount]geometry.Point2D, error) {
	var points [CellCount]geometry.Point2D
	for row, h := range c.Horizontal {
		for col, v := range c.Vertical {
			p, err := geometry.Intersect(h, v)
			if err != nil {
				return points, fmt.Errorf("%w: %s: %w", ErrDegenerate, CellNames[row*3+col], err)
			}
			points[row*3+col] = p
		}
	}
	return points, nil
}
