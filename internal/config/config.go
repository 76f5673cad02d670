// Package config handles tessellation settings loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trefoil/pkg/formats"
	"github.com/Faultbox/trefoil/pkg/mesh"
	"github.com/Faultbox/trefoil/pkg/surface"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Shape   ShapeConfig   `yaml:"shape"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShapeConfig holds the surface shape coefficients.
type ShapeConfig struct {
	B  float64 `yaml:"b"`
	C1 float64 `yaml:"c1"`
	C2 float64 `yaml:"c2"`
}

// MeshConfig holds tessellation settings.
type MeshConfig struct {
	Surface string `yaml:"surface"` // registered surface name
	Nu      int    `yaml:"nu"`
	Nv      int    `yaml:"nv"`
	Normals bool   `yaml:"normals"`
	Workers int    `yaml:"workers"` // 0 = one per CPU
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // empty = infer from path extension
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := surface.DefaultParams()
	opts := mesh.DefaultOptions()
	return &Config{
		Shape: ShapeConfig{
			B:  p.B,
			C1: p.C1,
			C2: p.C2,
		},
		Mesh: MeshConfig{
			Surface: "trefoil",
			Nu:      opts.Nu,
			Nv:      opts.Nv,
			Normals: opts.Normals,
			Workers: 0,
		},
		Output: OutputConfig{
			Path:   "trefoil.obj",
			Format: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params returns the shape coefficients as surface parameters.
func (s ShapeConfig) Params() surface.Params {
	return surface.Params{B: s.B, C1: s.C1, C2: s.C2}
}

// Surface returns the configured surface definition.
func (c *Config) Surface() (surface.Definition, error) {
	return surface.Lookup(c.Mesh.Surface)
}

// MeshOptions returns tessellation options for the configured surface.
// The caller attaches a logger.
func (c *Config) MeshOptions() (mesh.Options, error) {
	def, err := c.Surface()
	if err != nil {
		return mesh.Options{}, err
	}
	opts := mesh.Options{
		Nu:      c.Mesh.Nu,
		Nv:      c.Mesh.Nv,
		Normals: c.Mesh.Normals,
		Workers: c.Mesh.Workers,
	}
	return opts.ForSurface(def, c.Shape.Params()), nil
}

// OutputFormat resolves the export format, falling back to the path extension.
func (c *Config) OutputFormat() (formats.Format, error) {
	if c.Output.Format != "" {
		return formats.ParseFormat(c.Output.Format)
	}
	return formats.FormatFromPath(c.Output.Path)
}

// Validate checks that the config describes a tessellation that can run.
func (c *Config) Validate() error {
	if err := c.Shape.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Surface(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Mesh.Nu < mesh.MinResolution || c.Mesh.Nv < mesh.MinResolution {
		return fmt.Errorf("%w: %w: %dx%d", ErrInvalidConfig, mesh.ErrInvalidResolution, c.Mesh.Nu, c.Mesh.Nv)
	}
	if c.Mesh.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Mesh.Workers)
	}
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
