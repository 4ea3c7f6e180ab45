package grid

import (
	"fmt"
	"slices"

	"cube-scanner/pkg/geometry"
)

const (
	// EdgesPerSide is the number of boundary lines per orientation.
	EdgesPerSide = 4
	// CombinedLineCount is the number of lines a fully visible face yields.
	CombinedLineCount = 2 * EdgesPerSide
)

// CentreLines are the lines through the middle of each row and column.
type CentreLines struct {
	Horizontal [3]geometry.Line `json:"horizontal"` // Top, middle, bottom
	Vertical   [3]geometry.Line `json:"vertical"`   // Left, middle, right
}

// All returns the six centre lines, horizontals first.
func (c CentreLines) All() []geometry.Line {
	out := make([]geometry.Line, 0, 6)
	out = append(out, c.Horizontal[:]...)
	out = append(out, c.Vertical[:]...)
	return out
}

// ValidateCombined checks that Combine left exactly one line per edge.
func ValidateCombined(lines []geometry.Line) error {
	if len(lines) != CombinedLineCount {
		return fmt.Errorf("%w: got %d, want %d", ErrLineCount, len(lines), CombinedLineCount)
	}
	return nil
}

// FindCentreLines splits the combined boundary lines by orientation, orders
// each side by distance, and averages adjacent pairs.
func FindCentreLines(lines []geometry.Line) (CentreLines, error) {
	if err := ValidateCombined(lines); err != nil {
		return CentreLines{}, err
	}

	// Rho orders horizontals top to bottom and verticals left to right.
	horizontal := sortedByRho(lines, IsHorizontal)
	vertical := sortedByRho(lines, IsVertical)
	if len(horizontal) != EdgesPerSide || len(vertical) != EdgesPerSide {
		return CentreLines{}, fmt.Errorf("%w: got %d horizontal and %d vertical",
			ErrOrientationSplit, len(horizontal), len(vertical))
	}

	var c CentreLines
	for i := 0; i < 3; i++ {
		c.Horizontal[i] = geometry.AverageLines(horizontal[i], horizontal[i+1])
		c.Vertical[i] = geometry.AverageLines(vertical[i], vertical[i+1])
	}
	return c, nil
}

func sortedByRho(lines []geometry.Line, keep func(geometry.Line) bool) []geometry.Line {
	var out []geometry.Line
	for _, l := range lines {
		if keep(l) {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b geometry.Line) int {
		switch {
		case a.Rho < b.Rho:
			return -1
		case a.Rho > b.Rho:
			return 1
		}
		return 0
	})
	return out
}
