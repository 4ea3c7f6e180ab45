package facelet

import (
	"math"
	"sort"
)

// Similarity scores two colours from 0 (opposite corners of the RGB cube)
// to 100 (identical) using the mean absolute channel difference.
func Similarity(a, b Colour) float64 {
	diff := math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B)
	return 100 - diff/3/255*100
}

// Score is the similarity of a sample to one palette entry.
type Score struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Rank scores c against every palette entry, best first. Equal scores
// keep palette order.
func (p Palette) Rank(c Colour) []Score {
	scores := make([]Score, len(p.entries))
	for i, e := range p.entries {
		scores[i] = Score{Name: e.Name, Similarity: Similarity(c, e.Colour)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Similarity > scores[j].Similarity
	})
	return scores
}

// Classify returns the name of the most similar palette entry, or "" for
// an empty palette.
func (p Palette) Classify(c Colour) string {
	scores := p.Rank(c)
	if len(scores) == 0 {
		return ""
	}
	return scores[0].Name
}

// ClassifyAll classifies each colour in order.
func (p Palette) ClassifyAll(colours []Colour) []string {
	names := make([]string, len(colours))
	for i, c := range colours {
		names[i] = p.Classify(c)
	}
	return names
}
