package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/formats"
	"github.com/Faultbox/trefoil/pkg/mesh"
)

// tessellate builds the mesh described by cfg.
func tessellate(cfg *config.Config) (*mesh.Mesh, error) {
	def, err := cfg.Surface()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.MeshOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger.Named("mesh")
	logger.Debug("tessellating",
		zap.String("surface", def.Name),
		zap.Int("nu", opts.Nu), zap.Int("nv", opts.Nv),
		zap.Bool("wrap_u", opts.WrapU), zap.Bool("wrap_v", opts.WrapV))
	if !opts.WrapU || !opts.WrapV {
		logger.Warn("surface does not close for these parameters, mesh has open boundaries",
			zap.String("surface", def.Name),
			zap.Float64("b", cfg.Shape.B),
			zap.Bool("wrap_u", opts.WrapU), zap.Bool("wrap_v", opts.WrapV))
	}
	return mesh.Tessellate(def.Func, cfg.Shape.Params(), opts)
}

func cmdMesh(cfg *config.Config) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	start := time.Now()
	m, err := tessellate(cfg)
	if err != nil {
		return err
	}

	path := cfg.Output.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := formats.Encode(f, format, m); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("wrote mesh",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.String("surface", cfg.Mesh.Surface),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func cmdInfo(cfg *config.Config) error {
	m, err := tessellate(cfg)
	if err != nil {
		return err
	}
	p := cfg.Shape.Params()
	fmt.Printf("Surface:    %s (b=%g c1=%g c2=%g)\n", cfg.Mesh.Surface, p.B, p.C1, p.C2)
	fmt.Printf("Grid:       %dx%d (wrap u=%t v=%t)\n", m.Nu, m.Nv, m.WrapU, m.WrapV)
	fmt.Printf("Vertices:   %d\n", len(m.Vertices))
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Normals:    %t\n", m.HasNormals)
	fmt.Printf("Degenerate: %d\n", len(m.Degenerate))
	b := m.Bounds
	fmt.Printf("Bounds:     (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	return nil
}

func cmdEval(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: trefoil eval <u> <v>")
	}
	u, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing u: %w", err)
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing v: %w", err)
	}
	def, err := cfg.Surface()
	if err != nil {
		return err
	}
	pt := def.Func(u, v, cfg.Shape.Params())
	fmt.Printf("position  %.9g %.9g %.9g\n", pt.Position.X, pt.Position.Y, pt.Position.Z)
	fmt.Printf("texcoord  %.9g %.9g\n", pt.TexCoord.X, pt.TexCoord.Y)
	if pt.Degenerate {
		fmt.Println("degenerate frame: position is on the central curve")
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 && args[0] == "save" {
		if err := cfg.Save(); err != nil {
			return err
		}
		logger.Info("saved config", zap.String("dir", config.ConfigDir()))
		return nil
	}
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		logger.Info("saved config", zap.String("path", args[0]))
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
