package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cube-scanner/internal/config"
	imageio "cube-scanner/internal/image"
	"cube-scanner/internal/render"
	"cube-scanner/internal/scan"
)

// report is the outcome for one input image.
type report struct {
	Image  string        `json:"image"`
	ID     string        `json:"id,omitempty"`
	Labels *[3][3]string `json:"labels,omitempty"`
	Error  string        `json:"error,omitempty"`
	err    error
}

type scanFlags struct {
	configPath     string
	debugDir       string
	jsonOut        bool
	jobs           int
	strategy       string
	houghThreshold int
	offset         int
}

func newScanCmd(e *env) *cobra.Command {
	var f scanFlags

	c := &cobra.Command{
		Use:   "scan IMAGE...",
		Short: "Scan one or more photos of a single cube face",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			det, err := e.newDetector(cfg)
			if err != nil {
				return fmt.Errorf("failed to create detector: %w", err)
			}
			opts, err := cfg.ScanOptions()
			if err != nil {
				return err
			}
			scanner := scan.New(det, scan.WithOptions(opts), scan.WithLogger(e.log))

			reports := make([]report, len(args))
			g := new(errgroup.Group)
			g.SetLimit(max(f.jobs, 1))
			for i, path := range args {
				g.Go(func() error {
					reports[i] = scanImage(e, scanner, path, f.debugDir)
					return nil
				})
			}
			_ = g.Wait()

			if err := printReports(e.stdout, reports, f.jsonOut); err != nil {
				return err
			}
			return exitStatus(reports)
		},
	}

	c.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	c.Flags().StringVar(&f.debugDir, "debug-dir", "", "Write per-stage diagnostic images under this directory")
	c.Flags().BoolVar(&f.jsonOut, "json", false, "Print results as JSON")
	c.Flags().IntVarP(&f.jobs, "jobs", "j", 4, "Number of images scanned concurrently")
	c.Flags().StringVar(&f.strategy, "strategy", "", "Line clustering strategy: seed|connected")
	c.Flags().IntVar(&f.houghThreshold, "hough-threshold", 0, "Minimum Hough votes for a line")
	c.Flags().IntVar(&f.offset, "offset", 0, "Half-width in pixels of the colour sample square")
	return c
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cobra.Command, f scanFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Combine.Strategy = f.strategy
	}
	if flags.Changed("hough-threshold") {
		cfg.Lines.VoteThreshold = f.houghThreshold
	}
	if flags.Changed("offset") {
		cfg.Sample.Offset = f.offset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func scanImage(e *env, scanner *scan.Scanner, path, debugDir string) report {
	r := report{Image: path}
	log := e.log.With().Str("image", path).Logger()

	if !imageio.IsSupportedFormat(path) {
		r.err = fmt.Errorf("unsupported image format %q (expected one of %s)",
			filepath.Ext(path), strings.Join(imageio.SupportedFormats(), ", "))
		r.Error = r.err.Error()
		log.Error().Err(r.err).Msg("load failed")
		return r
	}

	img, err := imageio.Load(path)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		r.err = err
		r.Error = err.Error()
		return r
	}

	res, err := scanner.Scan(img)
	var stages *scan.Stages
	switch {
	case err == nil:
		r.ID = res.ID
		rows := res.Rows()
		r.Labels = &rows
		stages = &res.Stages
	default:
		r.err = err
		r.Error = err.Error()
		var failure *scan.Failure
		if errors.As(err, &failure) {
			r.ID = failure.ScanID
			stages = &failure.Stages
		}
	}

	if debugDir != "" && stages != nil {
		if err := writeDiagnostics(debugDir, path, r.ID, img, *stages); err != nil {
			log.Error().Err(err).Msg("failed to write diagnostics")
		}
	}
	return r
}

// writeDiagnostics saves one PNG per completed stage under
// debugDir/<image base name>-<scan id>/.
func writeDiagnostics(debugDir, path, id string, img image.Image, st scan.Stages) error {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Join(debugDir, base+"-"+id)

	for _, d := range render.Diagnostics(img, st, render.DefaultOptions()) {
		if err := imageio.SavePNG(filepath.Join(dir, d.Name+".png"), d.Image); err != nil {
			return err
		}
	}
	return nil
}

func printReports(w io.Writer, reports []report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		if r.err != nil {
			fmt.Fprintf(w, "%s: %s\n", r.Image, r.Error)
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", r.Image, r.ID)
		for _, row := range r.Labels {
			fmt.Fprintf(w, "  %-7s %-7s %s\n", row[0], row[1], row[2])
		}
	}
	return nil
}

// exitStatus returns nil when every image scanned, ExitNoFace when the
// only failures were missing faces and ExitError otherwise.
func exitStatus(reports []report) error {
	var noFace, failed int
	for _, r := range reports {
		switch {
		case r.err == nil:
		case scan.IsNoFace(r.err):
			noFace++
		default:
			failed++
		}
	}

	switch {
	case failed > 0:
		return &exitError{code: ExitError, err: fmt.Errorf("%d of %d images failed", failed+noFace, len(reports))}
	case noFace > 0:
		return &exitError{code: ExitNoFace, err: fmt.Errorf("%d of %d images had no face", noFace, len(reports))}
	}
	return nil
}
