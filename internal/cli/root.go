// Package cli implements the cubescan command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cube-scanner/internal/config"
	"cube-scanner/internal/scan"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitNoFace = 2
)

// DetectorFactory builds the line detector for a loaded config.
type DetectorFactory func(*config.Config) (scan.LineDetector, error)

// env carries the process streams and the detector constructor so tests
// can replace them.
type env struct {
	stdout      io.Writer
	stderr      io.Writer
	newDetector DetectorFactory
	log         zerolog.Logger
}

// exitError carries a non-default exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Execute runs the command line with the given detector and returns the
// process exit code.
func Execute(newDetector DetectorFactory) int {
	return run(os.Args[1:], &env{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newDetector: newDetector,
		log:         zerolog.Nop(),
	})
}

func run(args []string, e *env) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(e.stderr, "Error:", err)
	if scan.IsNoFace(err) {
		return ExitNoFace
	}
	return ExitError
}

func newRootCmd(e *env) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "cubescan",
		Short:         "Read the sticker colours of a puzzle cube face from photos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			e.log = zerolog.New(zerolog.ConsoleWriter{Out: e.stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable per-stage debug logging")
	cmd.AddCommand(newScanCmd(e))
	cmd.AddCommand(newVersionCmd(e))
	return cmd
}
