package render

import (
	"image"

	"cube-scanner/internal/scan"
)

// Diagnostic image names, in pipeline order.
const (
	NameEdges        = "edges"
	NameLines        = "lines"
	NameOrthogonal   = "orthogonal_lines"
	NameCombined     = "combined_lines"
	NameCentreLines  = "centre_lines"
	NameCentrePoints = "centre_points"
)

// Diagnostic is one annotated image.
type Diagnostic struct {
	Name  string
	Image image.Image
}

// Diagnostics renders every stage that ran. Stages that did not run, for
// example after a failure, are left out.
func Diagnostics(img image.Image, st scan.Stages, opts Options) []Diagnostic {
	var out []Diagnostic
	if st.Edges != nil {
		out = append(out, Diagnostic{Name: NameEdges, Image: st.Edges})
	}
	if st.Lines != nil {
		out = append(out, Diagnostic{Name: NameLines, Image: Lines(img, st.Lines, opts)})
	}
	if st.Orthogonal != nil {
		out = append(out, Diagnostic{Name: NameOrthogonal, Image: Lines(img, st.Orthogonal, opts)})
	}
	if st.Combined != nil {
		out = append(out, Diagnostic{Name: NameCombined, Image: Lines(img, st.Combined, opts)})
	}
	if st.Centres != nil {
		out = append(out, Diagnostic{Name: NameCentreLines, Image: Lines(img, st.Centres.All(), opts)})
	}
	if st.Points != nil {
		out = append(out, Diagnostic{Name: NameCentrePoints, Image: Points(img, st.Points, opts)})
	}
	return out
}
