// Package scan runs the full face-scanning pipeline: line detection, grid
// reconstruction, and facelet colour classification.
package scan

import (
	"errors"
	"fmt"
	"image"

	"cube-scanner/internal/facelet"
	"cube-scanner/internal/grid"
	"cube-scanner/pkg/geometry"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LineDetector finds straight lines in an image. Lines are in image
// coordinates relative to img.Bounds().Min and need not be normalized.
type LineDetector interface {
	Detect(img image.Image) (*image.Gray, []geometry.Line, error)
}

// Options configures the geometric and colour stages.
type Options struct {
	Combine      grid.CombineParams
	SampleOffset int
	Palette      facelet.Palette
}

// DefaultOptions returns the standard combine tolerances, a 20 px sample
// half-width and the standard cube palette.
func DefaultOptions() Options {
	return Options{
		Combine:      grid.DefaultCombineParams(),
		SampleOffset: facelet.DefaultOffset,
		Palette:      facelet.DefaultPalette(),
	}
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithOptions replaces the pipeline options.
func WithOptions(opts Options) Option {
	return func(s *Scanner) { s.opts = opts }
}

// WithLogger sets the logger used for per-stage debug events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

// Scanner turns photos of a single cube face into nine colour labels.
// It holds no per-scan state and is safe for concurrent use.
type Scanner struct {
	detector LineDetector
	opts     Options
	log      zerolog.Logger
}

// New creates a Scanner around a line detector.
func New(detector LineDetector, opts ...Option) *Scanner {
	s := &Scanner{
		detector: detector,
		opts:     DefaultOptions(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan locates the face grid in img and classifies each facelet.
// Geometric failures return a *Failure that satisfies IsNoFace; no labels
// are produced in that case.
func (s *Scanner) Scan(img image.Image) (*Result, error) {
	if s.opts.Palette.Len() == 0 {
		return nil, facelet.ErrEmptyPalette
	}

	id := uuid.NewString()
	log := s.log.With().Str("scan_id", id).Logger()

	var st Stages
	fail := func(stage string, err error) (*Result, error) {
		log.Warn().Err(err).Str("stage", stage).Msg("face not found")
		return nil, &Failure{ScanID: id, Stage: stage, Stages: st, Err: err}
	}

	edges, raw, err := s.detector.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("failed to detect lines: %w", err)
	}
	st.Edges = edges
	st.Lines = grid.Normalize(raw)
	log.Debug().Int("lines", len(st.Lines)).Msg("lines detected")

	st.Orthogonal = grid.FilterOrthogonal(st.Lines)
	log.Debug().Int("lines", len(st.Orthogonal)).Msg("orthogonal lines kept")

	st.Combined = grid.Combine(st.Orthogonal, s.opts.Combine)
	log.Debug().Int("lines", len(st.Combined)).Stringer("strategy", s.opts.Combine.Strategy).Msg("lines combined")
	if err := grid.ValidateCombined(st.Combined); err != nil {
		return fail(StageCombine, err)
	}

	centres, err := grid.FindCentreLines(st.Combined)
	if err != nil {
		return fail(StageCentreLines, err)
	}
	st.Centres = &centres

	points, err := grid.FindCentres(centres)
	if err != nil {
		return fail(StageIntersect, err)
	}
	st.Points = points[:]
	log.Debug().Interface("points", st.Points).Msg("facelet centres found")

	// Detector coordinates start at the image origin.
	origin := img.Bounds().Min
	samplePoints := make([]geometry.Point2D, len(st.Points))
	for i, p := range st.Points {
		samplePoints[i] = p.Add(geometry.NewPoint2D(float64(origin.X), float64(origin.Y)))
	}
	colours, err := facelet.SampleAll(img, samplePoints, s.opts.SampleOffset)
	if err != nil {
		return fail(StageSample, err)
	}

	res := &Result{ID: id, Stages: st}
	copy(res.Colours[:], colours)
	copy(res.Labels[:], s.opts.Palette.ClassifyAll(colours))
	log.Debug().Strs("labels", res.Labels[:]).Msg("face scanned")
	return res, nil
}

// Pipeline stage names reported by Failure.
const (
	StageCombine     = "combine"
	StageCentreLines = "centre-lines"
	StageIntersect   = "intersect"
	StageSample      = "sample"
)

// ErrNoFace is matched by every failure to locate a face grid.
var ErrNoFace = errors.New("no cube face found")

// Failure reports why a face could not be located, together with the
// stages completed before the failure for diagnostics.
type Failure struct {
	ScanID string
	Stage  string
	Stages Stages
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrNoFace, f.Stage, f.Err)
}

// Unwrap exposes both ErrNoFace and the underlying cause to errors.Is.
func (f *Failure) Unwrap() []error {
	return []error{ErrNoFace, f.Err}
}

// IsNoFace reports whether err means the image did not yield a face grid.
func IsNoFace(err error) bool {
	return errors.Is(err, ErrNoFace)
}
