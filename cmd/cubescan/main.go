// Command cubescan reads the nine sticker colours of a puzzle cube face
// from photos.
package main

import (
	"os"

	"cube-scanner/internal/cli"
	"cube-scanner/internal/config"
	"cube-scanner/internal/detect"
	"cube-scanner/internal/scan"
)

func main() {
	os.Exit(cli.Execute(func(cfg *config.Config) (scan.LineDetector, error) {
		return detect.NewDetector(detect.ParamsFromConfig(cfg))
	}))
}
