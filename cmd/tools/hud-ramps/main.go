// Command hud-ramps writes the HUD colour and opacity ramps as PNG charts
// and a single HTML page, for checking tuning changes offline.
//
// Usage:
//
//	go run ./cmd/tools/hud-ramps [-out dir] [-html file]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/velocity.hud/internal/plots"
)

func main() {
	out := flag.String("out", "ramps", "Output directory for PNG charts")
	htmlName := flag.String("html", "ramps.html", "HTML page name inside -out (empty skips)")
	flag.Parse()

	paths, err := writeAll(*out, *htmlName)
	if err != nil {
		log.Fatalf("hud-ramps: %v", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func writeAll(dir, htmlName string) ([]string, error) {
	ramps := plots.Ramps()
	paths, err := plots.WritePNGs(dir, ramps)
	if err != nil {
		return paths, err
	}
	if htmlName == "" {
		return paths, nil
	}
	htmlPath := filepath.Join(dir, filepath.Base(htmlName))
	f, err := os.Create(htmlPath)
	if err != nil {
		return paths, fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer f.Close()
	if err := plots.RenderHTML(f, ramps); err != nil {
		return paths, err
	}
	return append(paths, htmlPath), f.Close()
}
