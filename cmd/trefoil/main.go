// trefoil tessellates parametric surfaces and exports the resulting meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/logger"
)

func main() {
	flag.Usage = printUsage
	args, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	command := "mesh"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "mesh":
		err = cmdMesh(cfg)
	case "info":
		err = cmdInfo(cfg)
	case "eval":
		err = cmdEval(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `trefoil - parametric surface tessellator

Usage:
  trefoil [flags] [command] [args]

Commands:
  mesh                 Tessellate and write the mesh to -o (default)
  info                 Print mesh statistics
  eval <u> <v>         Evaluate the surface at normalized u, v in [0, 1)
  config [path|save]   Print the effective config, save it to path,
                       or save it to the user config directory

Examples:
  trefoil -nu 256 -nv 48 -o knot.stl
  trefoil -b 0 info
  trefoil eval 0.25 0.5
  trefoil -c2 1 config trefoil.yaml

Flags:`)
	flag.PrintDefaults()
}
