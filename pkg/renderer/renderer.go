// Package renderer drives the data-parallel tile loop described in the
// concurrency model: one work item per tile, independent after scene
// construction, fanning out across a pool of OS threads and merging every
// tile's result into a shared film.
package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aeonrender/photon/pkg/camera"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/film"
	"github.com/aeonrender/photon/pkg/integrator"
	"github.com/aeonrender/photon/pkg/sampler"
	"github.com/aeonrender/photon/pkg/scene"
)

// Config collects the render's sampler and integrator settings:
// `{spp, seed, jitter}` and `{max_depth, volumetric}`, plus the tiling
// and worker-count knobs that control how the render is scheduled across
// goroutines.
type Config struct {
	SPP        uint32
	Seed       uint64
	Jitter     bool
	MaxDepth   int
	Volumetric bool
	TileSize   int
	NumWorkers int
}

// DefaultConfig returns reasonable values for every field a caller didn't
// set: tile size 16 (matching the original's TileProvider default),
// worker count one per logical CPU.
func DefaultConfig() Config {
	return Config{
		SPP:        16,
		Seed:       1,
		Jitter:     true,
		MaxDepth:   5,
		Volumetric: false,
		TileSize:   16,
		NumWorkers: runtime.NumCPU(),
	}
}

// Renderer owns the scene, film, and configuration needed to run one
// render pass. The scene and film are the two long-lived, shared
// resources every tile worker reads and writes respectively; everything
// else a worker needs (sampler state, ray, tile buffer) is allocated
// fresh per tile.
type Renderer struct {
	Scene  *scene.Scene
	Film   *film.Film
	Config Config
	Stats  *core.Stats
	Logger core.Logger
}

// New builds a Renderer over an already-constructed scene and a fresh
// film of the given extent and filter.
func New(sc *scene.Scene, width, height int, filter film.Filter, cfg Config) *Renderer {
	return &Renderer{
		Scene:  sc,
		Film:   film.New(width, height, filter),
		Config: cfg,
		Stats:  core.NewStats(),
		Logger: core.NopLogger{},
	}
}

// Render walks every tile in center-outward order, rendering each on the
// worker pool and merging it into the film as soon as it completes. No
// inter-tile order is guaranteed; ctx cancellation stops scheduling new
// tiles, while tiles already running are rendered and merged to completion.
func (r *Renderer) Render(ctx context.Context) error {
	numWorkers := r.Config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tileSize := r.Config.TileSize
	if tileSize <= 0 {
		tileSize = 16
	}

	order := film.TileOrder(r.Film.Width(), r.Film.Height(), tileSize)
	r.Logger.Printf("renderer: %d tiles, %d workers, spp=%d, max_depth=%d, volumetric=%v",
		len(order), numWorkers, r.Config.SPP, r.Config.MaxDepth, r.Config.Volumetric)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	pt := &integrator.PathTracer{MaxDepth: r.Config.MaxDepth, Volumetric: r.Config.Volumetric}

	for _, bounds := range order {
		bounds := bounds
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.renderTile(bounds, pt)
			return nil
		})
	}

	return g.Wait()
}

// renderTile renders every pixel of bounds into a fresh, bordered Tile
// buffer and merges it into the shared film. Each pixel forks its own
// sampler from a coordinate-derived seed, so the result is independent of
// scheduling order and reproducible across runs.
func (r *Renderer) renderTile(bounds film.Bounds, pt *integrator.PathTracer) {
	tile := film.NewTile(bounds, r.Film.Filter())
	cam := r.Scene.Camera

	for y := bounds.MinY; y < bounds.MaxY; y++ {
		for x := bounds.MinX; x < bounds.MaxX; x++ {
			s := sampler.NewStratified(r.Config.SPP, sampler.PixelSeed(r.Config.Seed, x, y), r.Config.Jitter)
			s.BeginPixel()

			for s.StartSample() {
				filmOffset := s.Next2D()
				lensSample := s.Next2D()
				pFilm := core.NewVec2(float64(x)+filmOffset.X, float64(y)+filmOffset.Y)

				ray := cam.GenerateRay(camera.Sample{PFilm: pFilm, PLens: lensSample})
				radiance := pt.Li(ray, r.Scene, cam.Medium, s, r.Stats)
				tile.ApplySample(pFilm, radiance)
			}
		}
	}

	r.Film.Merge(tile)
}
