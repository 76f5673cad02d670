package config

import (
	"flag"
	"strconv"
)

// floatFlag is a float flag that remembers whether it was given, so that an
// explicit zero can override a file value.
type floatFlag struct {
	set bool
	v   float64
}

func (f *floatFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

func (f *floatFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.v, f.set = v, true
	return nil
}

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSurface   = flag.String("surface", "", "Surface to tessellate (trefoil, torus)")
	flagNu        = flag.Int("nu", 0, "Samples along u")
	flagNv        = flag.Int("nv", 0, "Samples along v")
	flagWorkers   = flag.Int("workers", -1, "Concurrent sampling rows (0 = one per CPU)")
	flagNoNormals = flag.Bool("no-normals", false, "Skip vertex normal estimation")
	flagOutput    = flag.String("o", "", "Output mesh file")
	flagFormat    = flag.String("format", "", "Output format (obj, stl)")
	flagB         floatFlag
	flagC1        floatFlag
	flagC2        floatFlag
)

func init() {
	flag.Var(&flagB, "b", "Knot winding factor")
	flag.Var(&flagC1, "c1", "Primary radius scale")
	flag.Var(&flagC2, "c2", "Tube radius scale")
}

// ParseFlags parses command-line flags from args and returns the
// remaining positional arguments.
func ParseFlags(args []string) ([]string, error) {
	if err := flag.CommandLine.Parse(args); err != nil {
		return nil, err
	}
	return flag.Args(), nil
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagB.set {
		cfg.Shape.B = flagB.v
	}
	if flagC1.set {
		cfg.Shape.C1 = flagC1.v
	}
	if flagC2.set {
		cfg.Shape.C2 = flagC2.v
	}
	if *flagSurface != "" {
		cfg.Mesh.Surface = *flagSurface
	}
	if *flagNu > 0 {
		cfg.Mesh.Nu = *flagNu
	}
	if *flagNv > 0 {
		cfg.Mesh.Nv = *flagNv
	}
	if *flagWorkers >= 0 {
		cfg.Mesh.Workers = *flagWorkers
	}
	if *flagNoNormals {
		cfg.Mesh.Normals = false
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
