package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/formats"
)

func TestCmdMeshWritesSTL(t *testing.T) {
	cfg := config.Default()
	cfg.Mesh.Nu, cfg.Mesh.Nv = 16, 6
	cfg.Output.Path = filepath.Join(t.TempDir(), "out", "knot.stl")

	if err := cmdMesh(cfg); err != nil {
		t.Fatalf("cmdMesh: %v", err)
	}
	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := formats.ParseSTL(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2*16*6 {
		t.Errorf("%d triangles, want %d", len(tris), 2*16*6)
	}
}

func TestCmdEvalArgs(t *testing.T) {
	cfg := config.Default()
	if err := cmdEval(cfg, []string{"0.5"}); err == nil {
		t.Error("expected usage error")
	}
	if err := cmdEval(cfg, []string{"x", "0"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestCmdConfigSave(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "trefoil.yaml")
	if err := cmdConfig(cfg, []string{path}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestCmdMeshWarnsOnOpenSeam(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "trefoil.log")
	fileCfg := logger.DefaultFileConfig(logFile)
	fileCfg.Compress = false
	if err := logger.InitWithFileConfig("debug", fileCfg, false); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Shape.B = 2.5
	cfg.Mesh.Nu, cfg.Mesh.Nv = 16, 6
	cfg.Output.Path = filepath.Join(dir, "knot.stl")
	if err := cmdMesh(cfg); err != nil {
		t.Fatalf("cmdMesh: %v", err)
	}
	logger.Sync()

	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := formats.ParseSTL(data)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 * 15 * 6; len(tris) != want {
		t.Errorf("%d triangles, want %d", len(tris), want)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	log := string(content)
	if !strings.Contains(log, "WARN") || !strings.Contains(log, "open boundaries") {
		t.Errorf("missing open seam warning in %q", log)
	}
	if !strings.Contains(log, "tessellating") {
		t.Errorf("missing debug entry in %q", log)
	}
}

func TestCmdConfigSaveUserDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("user config dir is not redirectable here")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	cfg.Shape.C2 = 1.5
	if err := cmdConfig(cfg, []string{"save"}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(config.ConfigDir(), "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written to user dir: %v", err)
	}
	if !strings.Contains(string(data), "c2: 1.5") {
		t.Errorf("saved config missing c2 override:\n%s", data)
	}
}
