// Command casework builds parametrized kitchen fixtures from DSL source
// files or catalog presets and exports them as STL meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chazu/casework/pkg/config"
	"github.com/chazu/casework/pkg/fixture"
	"github.com/chazu/casework/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to casework.yaml (default: search standard locations)")
		outDir     = flag.String("out", "", "STL output directory (default: from config)")
		open       = flag.Float64("open", 0, "door open fraction in [0,1] for export")
		presets    = flag.String("presets", "", "comma-separated catalog preset names to build")
	)
	flag.Parse()

	if err := run(*configPath, *outDir, *open, *presets, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "casework:", err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, open float64, presets string, sources []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logging.Sync()

	if open < 0 || open > 1 {
		return fmt.Errorf("open fraction %g outside [0, 1]", open)
	}
	if outDir == "" {
		outDir = cfg.Mesh.OutDir
	}

	app := NewApp(cfg)

	var fixtures []*fixture.Fixture
	for _, src := range sources {
		fs, err := app.EvaluateFile(src)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, fs...)
	}
	if presets != "" {
		fs, err := app.BuildPresets(strings.Split(presets, ","))
		if err != nil {
			return err
		}
		fixtures = append(fixtures, fs...)
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("nothing to build: pass DSL source files or -presets")
	}

	paths, err := app.ExportSTL(fixtures, open, outDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
