package scan

import (
	"image"

	"cube-scanner/internal/facelet"
	"cube-scanner/internal/grid"
	"cube-scanner/pkg/geometry"
)

// Stages holds the intermediate data of one scan, in pipeline order.
// Fields of stages that did not run are nil.
type Stages struct {
	Edges      *image.Gray
	Lines      []geometry.Line // Normalized detector output
	Orthogonal []geometry.Line
	Combined   []geometry.Line
	Centres    *grid.CentreLines
	Points     []geometry.Point2D // Row-major facelet centres
}

// Result is a successfully scanned face.
type Result struct {
	ID      string                         `json:"id"`
	Labels  [grid.CellCount]string         `json:"labels"`
	Colours [grid.CellCount]facelet.Colour `json:"colours"`
	Stages  Stages                         `json:"-"`
}

// Rows returns the labels as three rows, top to bottom.
func (r *Result) Rows() [3][3]string {
	var rows [3][3]string
	for i, l := range r.Labels {
		rows[i/3][i%3] = l
	}
	return rows
}
