// Package config loads render/sampler settings from an optional TOML file,
// layered underneath the CLI flags that take precedence over it.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Render holds the sampler, integrator, and tiling/worker knobs a render
// needs, plus the CLI's own scene/output path pair.
type Render struct {
	Scene      string  `toml:"scene"`
	Output     string  `toml:"output"`
	SPP        uint32  `toml:"spp"`
	Seed       uint64  `toml:"seed"`
	Jitter     bool    `toml:"jitter"`
	MaxDepth   int     `toml:"max_depth"`
	Volumetric bool    `toml:"volumetric"`
	TileSize   int     `toml:"tile_size"`
	NumWorkers int     `toml:"workers"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FovDegrees float64 `toml:"fov"`
}

// Load parses a TOML file into a Render config. A missing optional field
// simply keeps Render's zero value, which the caller then backfills with
// renderer.DefaultConfig() and/or flag-supplied overrides.
func Load(path string) (Render, error) {
	var r Render
	if _, err := toml.DecodeFile(path, &r); err != nil {
		return Render{}, fmt.Errorf("failed to load config file %q: %w", path, err)
	}
	return r, nil
}
