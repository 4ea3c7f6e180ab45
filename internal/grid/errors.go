package grid

import "errors"

var (
	// ErrLineCount means combining did not leave one line per grid edge.
	ErrLineCount = errors.New("wrong number of combined lines")

	// ErrOrientationSplit means the combined lines are not four horizontal
	// and four vertical.
	ErrOrientationSplit = errors.New("combined lines do not split into 4 horizontal and 4 vertical")

	// ErrDegenerate means two centre lines have no finite intersection.
	ErrDegenerate = errors.New("centre lines do not intersect")
)
