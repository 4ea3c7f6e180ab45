package detect

import (
	"fmt"
	"math"

	"cube-scanner/internal/config"
)

// Params holds the edge and line detection settings.
type Params struct {
	// Gaussian blur before Canny; kernel size must be odd.
	BlurKernel int

	// Canny hysteresis thresholds
	CannyLow  float32
	CannyHigh float32

	// Hough accumulator resolution and vote threshold
	HoughRho       float32 // Distance resolution in pixels
	HoughTheta     float32 // Angle resolution in radians
	HoughThreshold int     // Minimum votes for a line
}

// DefaultParams returns detection parameters tuned for a cube face filling
// most of a phone photo.
func DefaultParams() Params {
	return Params{
		BlurKernel: 5,

		// Low thresholds: sticker borders are dark but narrow
		CannyLow:  0,
		CannyHigh: 50,

		HoughRho:       1,
		HoughTheta:     math.Pi / 180,
		HoughThreshold: 125,
	}
}

// WithBlurKernel returns a copy of params with a different blur kernel.
func (p Params) WithBlurKernel(size int) Params {
	p.BlurKernel = size
	return p
}

// WithCannyThresholds returns a copy of params with different edge
// strength thresholds.
func (p Params) WithCannyThresholds(low, high float32) Params {
	p.CannyLow = low
	p.CannyHigh = high
	return p
}

// WithHoughThreshold returns a copy of params with a different vote
// threshold. Lower values find fainter edges and more noise.
func (p Params) WithHoughThreshold(votes int) Params {
	p.HoughThreshold = votes
	return p
}

// WithHoughResolution returns a copy of params with a different
// accumulator resolution.
func (p Params) WithHoughResolution(rho, theta float32) Params {
	p.HoughRho = rho
	p.HoughTheta = theta
	return p
}

// Validate reports parameters OpenCV would reject.
func (p Params) Validate() error {
	if p.BlurKernel <= 0 || p.BlurKernel%2 == 0 {
		return fmt.Errorf("blur kernel must be odd and positive, got %d", p.BlurKernel)
	}
	if p.CannyLow < 0 || p.CannyHigh < p.CannyLow {
		return fmt.Errorf("invalid canny thresholds: low=%.1f, high=%.1f", p.CannyLow, p.CannyHigh)
	}
	if p.HoughRho <= 0 || p.HoughTheta <= 0 {
		return fmt.Errorf("invalid hough resolution: rho=%.3f, theta=%.5f", p.HoughRho, p.HoughTheta)
	}
	if p.HoughThreshold <= 0 {
		return fmt.Errorf("hough threshold must be positive, got %d", p.HoughThreshold)
	}
	return nil
}

// ParamsFromConfig maps the edges and lines sections of cfg onto Params.
func ParamsFromConfig(cfg *config.Config) Params {
	return DefaultParams().
		WithBlurKernel(cfg.Edges.BlurKernel).
		WithCannyThresholds(float32(cfg.Edges.CannyLow), float32(cfg.Edges.CannyHigh)).
		WithHoughResolution(float32(cfg.Lines.RhoResolution), float32(cfg.ThetaResolution())).
		WithHoughThreshold(cfg.Lines.VoteThreshold)
}
