// Command photon is a thin CLI entry point: it wires a scene path, output
// path, and sampler/integrator overrides into pkg/renderer, then tonemaps
// the resulting film to a PNG preview. Scene-description parsing lives in
// pkg/loaders and pkg/scene; this binary does not reimplement it, and it
// does not attempt EXR emission or live progress reporting.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeonrender/photon/internal/config"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/film"
	"github.com/aeonrender/photon/pkg/renderer"
	"github.com/aeonrender/photon/pkg/scene"
)

var (
	flagScene      string
	flagOutput     string
	flagConfigFile string
	flagSPP        uint32
	flagSeed       uint64
	flagMaxDepth   int
	flagVolumetric bool
	flagWidth      int
	flagHeight     int
	flagFov        float64
	flagWorkers    int
)

func main() {
	root := &cobra.Command{
		Use:   "photon",
		Short: "Render a PBRT-ish scene with a physically-based path tracer",
		RunE:  run,
	}

	root.Flags().StringVar(&flagScene, "scene", "", "path to a .pbrt scene file (required)")
	root.Flags().StringVar(&flagOutput, "output", "render.png", "output image path")
	root.Flags().StringVar(&flagConfigFile, "config", "", "optional TOML file with render settings")
	root.Flags().Uint32Var(&flagSPP, "spp", 0, "samples per pixel (0 = use config/default)")
	root.Flags().Uint64Var(&flagSeed, "seed", 0, "sampler seed (0 = use config/default)")
	root.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "maximum path depth (0 = use config/default)")
	root.Flags().BoolVar(&flagVolumetric, "volumetric", false, "enable volumetric (medium) transport")
	root.Flags().IntVar(&flagWidth, "width", 0, "override output width in pixels")
	root.Flags().IntVar(&flagHeight, "height", 0, "override output height in pixels")
	root.Flags().Float64Var(&flagFov, "fov", 0, "override camera vertical field of view in degrees")
	root.Flags().IntVar(&flagWorkers, "workers", 0, "number of parallel tile workers (0 = auto-detect)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, flush, err := core.NewZapLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer flush()

	var fileCfg config.Render
	if flagConfigFile != "" {
		fileCfg, err = config.Load(flagConfigFile)
		if err != nil {
			return err
		}
	}

	scenePath := firstNonEmpty(flagScene, fileCfg.Scene)
	if scenePath == "" {
		return fmt.Errorf("a scene path is required (--scene or config file's scene field)")
	}
	outputPath := firstNonEmpty(flagOutput, fileCfg.Output, "render.png")

	var overrides []scene.CameraOverride
	width := firstPositiveInt(flagWidth, fileCfg.Width)
	height := firstPositiveInt(flagHeight, fileCfg.Height)
	fov := firstPositiveFloat(flagFov, fileCfg.FovDegrees)
	if width > 0 || height > 0 || fov > 0 {
		overrides = append(overrides, scene.CameraOverride{Width: width, Height: height, FovDegrees: fov})
	}

	sc, err := scene.NewPBRTScene(scenePath, overrides...)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	cfg := renderer.DefaultConfig()
	if fileCfg.SPP > 0 {
		cfg.SPP = fileCfg.SPP
	}
	if fileCfg.Seed > 0 {
		cfg.Seed = fileCfg.Seed
	}
	if fileCfg.MaxDepth > 0 {
		cfg.MaxDepth = fileCfg.MaxDepth
	}
	cfg.Volumetric = cfg.Volumetric || fileCfg.Volumetric
	if fileCfg.TileSize > 0 {
		cfg.TileSize = fileCfg.TileSize
	}
	if fileCfg.NumWorkers > 0 {
		cfg.NumWorkers = fileCfg.NumWorkers
	}

	if flagSPP > 0 {
		cfg.SPP = flagSPP
	}
	if flagSeed > 0 {
		cfg.Seed = flagSeed
	}
	if flagMaxDepth > 0 {
		cfg.MaxDepth = flagMaxDepth
	}
	if flagVolumetric {
		cfg.Volumetric = true
	}
	if flagWorkers > 0 {
		cfg.NumWorkers = flagWorkers
	}

	renderWidth, renderHeight := sc.Width, sc.Height
	if renderWidth <= 0 || renderHeight <= 0 {
		renderWidth, renderHeight = 400, 400
	}

	r := renderer.New(sc, renderWidth, renderHeight, film.Box{R: core.NewVec2(0.5, 0.5)}, cfg)
	r.Logger = logger

	if err := r.Render(cmd.Context()); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	snap := r.Stats.Snapshot()
	logger.Printf("render complete: %d paths traced, %d shadow rays, %d null bounces, %d zero-radiance paths",
		snap.PathsTraced, snap.ShadowRaysTraced, snap.NullBounces, snap.ZeroRadiancePaths)

	if err := writePreviewPNG(r.Film, outputPath); err != nil {
		return fmt.Errorf("failed to write output image: %w", err)
	}
	logger.Printf("wrote preview PNG to %s", outputPath)
	return nil
}

// writePreviewPNG tonemaps the film's linear radiance (gamma 2.0, clamped
// to [0,1]) into an 8-bit PNG. The film itself retains full floating-point
// precision; this just gives the CLI a quick way to inspect a render
// without an EXR writer.
func writePreviewPNG(f *film.Film, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			rgb := f.PixelRGB(x, y).GammaCorrect(2.0).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * rgb.X),
				G: uint8(255 * rgb.Y),
				B: uint8(255 * rgb.Z),
				A: 255,
			})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositiveInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstPositiveFloat(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
