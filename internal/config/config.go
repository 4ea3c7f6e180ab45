// Package config loads scanner tuning from a YAML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"cube-scanner/internal/facelet"
	"cube-scanner/internal/grid"
	"cube-scanner/internal/scan"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Config is the on-disk tuning file. Omitted fields keep their defaults.
type Config struct {
	Edges   EdgesConfig    `yaml:"edges"`
	Lines   LinesConfig    `yaml:"lines"`
	Combine CombineConfig  `yaml:"combine"`
	Sample  SampleConfig   `yaml:"sample"`
	Palette []PaletteEntry `yaml:"palette"`
}

// EdgesConfig tunes the blur and Canny edge detector.
type EdgesConfig struct {
	BlurKernel int     `yaml:"blur_kernel"`
	CannyLow   float64 `yaml:"canny_low"`
	CannyHigh  float64 `yaml:"canny_high"`
}

// LinesConfig tunes the Hough line transform.
type LinesConfig struct {
	RhoResolution      float64 `yaml:"rho_resolution"`       // Pixels
	ThetaResolutionDeg float64 `yaml:"theta_resolution_deg"` // Degrees
	VoteThreshold      int     `yaml:"vote_threshold"`
}

// CombineConfig tunes duplicate line merging.
type CombineConfig struct {
	RhoTolerance      float64 `yaml:"rho_tolerance"`       // Pixels
	ThetaToleranceDeg float64 `yaml:"theta_tolerance_deg"` // Degrees
	Strategy          string  `yaml:"strategy"`            // "seed" or "connected"
}

// SampleConfig tunes facelet colour sampling.
type SampleConfig struct {
	Offset int `yaml:"offset"`
}

// PaletteEntry is one reference colour, channels in R, G, B order.
type PaletteEntry struct {
	Name string     `yaml:"name"`
	RGB  [3]float64 `yaml:"rgb"`
}

// Default returns the built-in tuning.
func Default() *Config {
	c := &Config{
		Edges: EdgesConfig{BlurKernel: 5, CannyLow: 0, CannyHigh: 50},
		Lines: LinesConfig{RhoResolution: 1, ThetaResolutionDeg: 1, VoteThreshold: 125},
		Combine: CombineConfig{
			RhoTolerance:      50,
			ThetaToleranceDeg: 10,
			Strategy:          grid.ClusterBySeed.String(),
		},
		Sample: SampleConfig{Offset: facelet.DefaultOffset},
	}
	for _, e := range facelet.DefaultPalette().Entries() {
		c.Palette = append(c.Palette, PaletteEntry{
			Name: e.Name,
			RGB:  [3]float64{e.Colour.R, e.Colour.G, e.Colour.B},
		})
	}
	return c
}

// DefaultPath returns ~/.config/cube-scanner/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "cube-scanner", configFile)
}

// Load reads the config at path, or DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	palette := cfg.Palette
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	// A palette in the file replaces the default one wholesale.
	if len(cfg.Palette) == 0 {
		cfg.Palette = palette
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Edges.BlurKernel <= 0 || c.Edges.BlurKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("edges.blur_kernel must be odd and positive, got %d", c.Edges.BlurKernel))
	}
	if c.Edges.CannyLow < 0 || c.Edges.CannyHigh < c.Edges.CannyLow {
		errs = append(errs, fmt.Errorf("edges.canny_high must be >= canny_low >= 0"))
	}
	if c.Lines.RhoResolution <= 0 || c.Lines.ThetaResolutionDeg <= 0 {
		errs = append(errs, fmt.Errorf("lines resolutions must be positive"))
	}
	if c.Lines.VoteThreshold <= 0 {
		errs = append(errs, fmt.Errorf("lines.vote_threshold must be positive, got %d", c.Lines.VoteThreshold))
	}
	if c.Combine.RhoTolerance < 0 || c.Combine.ThetaToleranceDeg < 0 {
		errs = append(errs, fmt.Errorf("combine tolerances must not be negative"))
	}
	if _, err := grid.ParseStrategy(c.Combine.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("combine.strategy: %w", err))
	}
	if c.Sample.Offset < 0 {
		errs = append(errs, fmt.Errorf("sample.offset must not be negative, got %d", c.Sample.Offset))
	}
	if _, err := c.BuildPalette(); err != nil {
		errs = append(errs, fmt.Errorf("palette: %w", err))
	}
	return errors.Join(errs...)
}

// CombineParams converts the combine section.
func (c *Config) CombineParams() (grid.CombineParams, error) {
	strategy, err := grid.ParseStrategy(c.Combine.Strategy)
	if err != nil {
		return grid.CombineParams{}, err
	}
	return grid.CombineParams{
		RhoTolerance:   c.Combine.RhoTolerance,
		ThetaTolerance: c.Combine.ThetaToleranceDeg * math.Pi / 180,
		Strategy:       strategy,
	}, nil
}

// BuildPalette converts the palette section.
func (c *Config) BuildPalette() (facelet.Palette, error) {
	entries := make([]facelet.Entry, len(c.Palette))
	for i, e := range c.Palette {
		for _, v := range e.RGB {
			if v < 0 || v > 255 {
				return facelet.Palette{}, fmt.Errorf("%s: channel %.0f outside 0-255", e.Name, v)
			}
		}
		entries[i] = facelet.Entry{
			Name:   e.Name,
			Colour: facelet.Colour{R: e.RGB[0], G: e.RGB[1], B: e.RGB[2]},
		}
	}
	return facelet.NewPalette(entries...)
}

// ScanOptions converts the combine, sample and palette sections.
func (c *Config) ScanOptions() (scan.Options, error) {
	combine, err := c.CombineParams()
	if err != nil {
		return scan.Options{}, err
	}
	palette, err := c.BuildPalette()
	if err != nil {
		return scan.Options{}, err
	}
	return scan.Options{
		Combine:      combine,
		SampleOffset: c.Sample.Offset,
		Palette:      palette,
	}, nil
}

// ThetaResolution returns the Hough angle step in radians.
func (c *Config) ThetaResolution() float64 {
	return c.Lines.ThetaResolutionDeg * math.Pi / 180
}
