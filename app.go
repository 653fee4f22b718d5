package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/chazu/casework/pkg/config"
	"github.com/chazu/casework/pkg/engine"
	"github.com/chazu/casework/pkg/fixture"
	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/kernel/sdfx"
	"github.com/chazu/casework/pkg/logging"
	"github.com/chazu/casework/pkg/sim"
	"github.com/chazu/casework/pkg/tessellate"
)

// App wires the evaluation engine, the geometry kernel, and the catalog
// together for the command line.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	cfg    *config.Config
}

// NewApp creates an App with the sdfx kernel and installs the texture
// root from the configuration.
func NewApp(cfg *config.Config) *App {
	if cfg.Textures.Root != "" {
		root := cfg.Textures.Root
		fixture.ResolveTexturePath = func(path string) string {
			if filepath.IsAbs(path) {
				return path
			}
			return filepath.Join(root, path)
		}
	}
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.NewWithCells(cfg.Mesh.Cells),
		cfg:    cfg,
	}
}

// EvaluateFile runs a Casework DSL source file and returns the fixtures
// it constructed. Evaluation errors are reported per line on stderr and
// collapse into a single error.
func (a *App) EvaluateFile(path string) ([]*fixture.Fixture, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	build, evalErrs, err := a.engine.Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s:%s\n", path, e.Error())
		}
		return nil, fmt.Errorf("%s: %d evaluation error(s)", path, len(evalErrs))
	}

	logging.Log.Info("evaluated source",
		zap.String("path", path),
		zap.Int("fixtures", len(build.Fixtures)))
	return build.Fixtures, nil
}

// BuildPresets constructs the named presets from the catalog.
func (a *App) BuildPresets(names []string) ([]*fixture.Fixture, error) {
	var fixtures []*fixture.Fixture
	for _, name := range names {
		f, err := a.cfg.Build(name)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// ExportSTL tessellates each fixture at the given open fraction and
// writes one binary STL per fixture into outDir. It returns the paths
// written.
func (a *App) ExportSTL(fixtures []*fixture.Fixture, open float64, outDir string) ([]string, error) {
	world := sim.NewWorld()
	for _, f := range fixtures {
		world.Attach(f.Tree(), f.Pos)
	}
	for _, f := range fixtures {
		if !f.Openable() {
			continue
		}
		if err := f.SetDoorState(open, open, world, nil); err != nil {
			return nil, fmt.Errorf("posing %s: %w", f.Name(), err)
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, f := range fixtures {
		pose := make(tessellate.Pose)
		for _, j := range f.Tree().Joints() {
			v, err := world.JointValue(j.Name)
			if err != nil {
				return nil, err
			}
			pose[j.Name] = v
		}

		meshes, err := tessellate.Tree(f.Tree(), a.kernel, pose)
		if err != nil {
			return nil, fmt.Errorf("tessellating %s: %w", f.Name(), err)
		}

		path := filepath.Join(outDir, f.Name()+".stl")
		out, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := kernel.WriteSTL(out, meshes); err != nil {
			out.Close()
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return nil, err
		}

		logging.Log.Info("wrote STL",
			zap.String("path", path),
			zap.Int("parts", len(meshes)))
		paths = append(paths, path)
	}
	return paths, nil
}
