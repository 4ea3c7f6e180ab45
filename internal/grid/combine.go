package grid

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"cube-scanner/pkg/geometry"
)

// Strategy selects how similar lines are grouped before averaging.
type Strategy int

const (
	// ClusterBySeed groups every line with all lines similar to it and
	// drops clusters that repeat. Similarity is not transitive, so a chain
	// of lines spaced just under the tolerance yields overlapping clusters
	// rather than one. Accepted approximation.
	ClusterBySeed Strategy = iota
	// ClusterConnected merges similar pairs with union-find, so a chain of
	// similar lines becomes a single cluster.
	ClusterConnected
)

func (s Strategy) String() string {
	switch s {
	case ClusterBySeed:
		return "seed"
	case ClusterConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a name produced by Strategy.String back.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "seed":
		return ClusterBySeed, nil
	case "connected":
		return ClusterConnected, nil
	default:
		return 0, fmt.Errorf("unknown cluster strategy %q", name)
	}
}

// CombineParams holds the similarity tolerances for Combine.
type CombineParams struct {
	RhoTolerance   float64  // Max distance difference in pixels
	ThetaTolerance float64  // Max angle difference in radians
	Strategy       Strategy // Cluster grouping
}

// DefaultCombineParams returns the tolerances used for hand-held photos
// of a single face.
func DefaultCombineParams() CombineParams {
	return CombineParams{
		RhoTolerance:   50,
		ThetaTolerance: math.Pi / 18,
		Strategy:       ClusterBySeed,
	}
}

// Similar returns true if both the distance and the angle of a and b are
// within tolerance.
func (p CombineParams) Similar(a, b geometry.Line) bool {
	if math.Abs(a.Rho-b.Rho) > p.RhoTolerance {
		return false
	}
	if math.Abs(a.Theta-b.Theta) > p.ThetaTolerance {
		return false
	}
	return true
}

// Combine collapses duplicate detections of the same edge into one
// averaged line per cluster. The result lists horizontal lines, then
// vertical lines, then any others, each group ordered by (Rho, Theta). It
// does not depend on the order of the input and is never nil.
func Combine(lines []geometry.Line, params CombineParams) []geometry.Line {
	if len(lines) == 0 {
		return []geometry.Line{}
	}

	sorted := slices.Clone(lines)
	sortLines(sorted)

	var clusters [][]int
	switch params.Strategy {
	case ClusterConnected:
		clusters = connectedClusters(sorted, params)
	default:
		clusters = seedClusters(sorted, params)
	}

	combined := make([]geometry.Line, 0, len(clusters))
	for _, cluster := range clusters {
		members := make([]geometry.Line, len(cluster))
		for i, idx := range cluster {
			members[i] = sorted[idx]
		}
		avg := geometry.AverageLines(members...)
		if !slices.Contains(combined, avg) {
			combined = append(combined, avg)
		}
	}

	sortLines(combined)
	sortByOrientation(combined)
	return combined
}

// seedClusters builds one cluster per line from everything similar to it,
// keeping each distinct index set once.
func seedClusters(lines []geometry.Line, params CombineParams) [][]int {
	seen := make(map[string]bool, len(lines))
	var clusters [][]int

	for _, seed := range lines {
		var members []int
		for j, other := range lines {
			if params.Similar(other, seed) {
				members = append(members, j)
			}
		}

		key := clusterKey(members)
		if seen[key] {
			continue
		}
		seen[key] = true
		clusters = append(clusters, members)
	}
	return clusters
}

// connectedClusters returns the connected components of the similarity
// graph, each listed in ascending index order.
func connectedClusters(lines []geometry.Line, params CombineParams) [][]int {
	parent := make([]int, len(lines))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			if !params.Similar(lines[i], lines[j]) {
				continue
			}
			ri, rj := find(i), find(j)
			if ri == rj {
				continue
			}
			// Smaller index wins so roots are stable.
			if ri < rj {
				parent[rj] = ri
			} else {
				parent[ri] = rj
			}
		}
	}

	order := []int{}
	groups := make(map[int][]int)
	for i := range lines {
		root := find(i)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}

	clusters := make([][]int, len(order))
	for i, root := range order {
		clusters[i] = groups[root]
	}
	return clusters
}

func clusterKey(members []int) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(m))
	}
	return b.String()
}

// sortByOrientation groups horizontal before vertical before other lines.
func sortByOrientation(lines []geometry.Line) {
	slices.SortStableFunc(lines, func(a, b geometry.Line) int {
		return cmp.Compare(orientationRank(a), orientationRank(b))
	})
}

func orientationRank(l geometry.Line) int {
	switch {
	case IsHorizontal(l):
		return 0
	case IsVertical(l):
		return 1
	}
	return 2
}

// sortLines orders lines by (Rho, Theta).
func sortLines(lines []geometry.Line) {
	slices.SortFunc(lines, func(a, b geometry.Line) int {
		if c := cmp.Compare(a.Rho, b.Rho); c != 0 {
			return c
		}
		return cmp.Compare(a.Theta, b.Theta)
	})
}
