// Package detect wraps the OpenCV edge and line detectors that feed the
// grid reconstruction.
package detect

import (
	"fmt"
	"image"

	"cube-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// Detector runs Canny edge detection followed by the standard Hough line
// transform.
type Detector struct {
	params Params
}

// NewDetector creates a Detector. Params are validated.
func NewDetector(params Params) (*Detector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Detector{params: params}, nil
}

// Detect returns the edge map of img and the raw (ρ, θ) lines found in it.
// Lines are exactly as OpenCV reports them: ρ may be negative.
func (d *Detector) Detect(img image.Image) (*image.Gray, []geometry.Line, error) {
	mat, err := imageToMat(img)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	edges := DetectEdges(mat, d.params)
	defer edges.Close()

	lines := DetectLines(edges, d.params)
	return matToGray(edges), lines, nil
}

// DetectEdges converts a BGR Mat to a binary edge mask of the same size.
// The caller must close the returned Mat.
func DetectEdges(img gocv.Mat, params Params) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := params.BlurKernel
	gocv.GaussianBlur(gray, &blurred, image.Point{k, k}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	gocv.Canny(blurred, &edges, params.CannyLow, params.CannyHigh)
	return edges
}

// DetectLines runs the standard Hough transform on an edge mask.
func DetectLines(edges gocv.Mat, params Params) []geometry.Line {
	if edges.Empty() {
		return nil
	}

	linesMat := gocv.NewMat()
	defer linesMat.Close()
	gocv.HoughLines(edges, &linesMat, params.HoughRho, params.HoughTheta, params.HoughThreshold)

	lines := make([]geometry.Line, 0, linesMat.Rows())
	for i := 0; i < linesMat.Rows(); i++ {
		v := linesMat.GetVecfAt(i, 0)
		lines = append(lines, geometry.NewLine(float64(v[0]), float64(v[1])))
	}
	return lines
}

// imageToMat converts a Go image to an 8-bit BGR Mat.
func imageToMat(src image.Image) (gocv.Mat, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("empty image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert from 16-bit to 8-bit and BGR order for OpenCV
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}

// matToGray copies a single-channel 8-bit Mat into a Go image.
func matToGray(m gocv.Mat) *image.Gray {
	h, w := m.Rows(), m.Cols()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = m.GetUCharAt(y, x)
		}
	}
	return out
}
