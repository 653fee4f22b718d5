package fixture

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Region is an addressable rectangular sub-area of a surface used to
// sample random object placement. Offset is fixture-local at the surface;
// Extent is the usable footprint in x and y.
type Region struct {
	Offset r3.Vec
	Extent r2.Vec
}

// ResetRegions enumerates the fixture's placement regions. Open shelving
// exposes one region per shelf section; every other variant exposes its
// interior bottom as "bottom". Drawer regions reflect the interior bounds
// as of the last UpdateState.
func (f *Fixture) ResetRegions() map[string]Region {
	if f.variant == VariantOpen {
		regions := make(map[string]Region, len(f.regions))
		for k, v := range f.regions {
			regions[k] = v
		}
		return regions
	}
	return map[string]Region{"bottom": f.bottomRegion()}
}

// bottomRegion is the interior floor rectangle derived from the bounds
// sites.
func (f *Fixture) bottomRegion() Region {
	p0 := f.sites["int_p0"]
	px := f.sites["int_px"]
	py := f.sites["int_py"]
	return Region{
		Offset: r3.Vec{X: (p0.X + px.X) / 2, Y: (p0.Y + py.Y) / 2, Z: p0.Z},
		Extent: r2.Vec{X: px.X - p0.X, Y: py.Y - p0.Y},
	}
}

// SampleResetRegion resolves a (shelf, section) address on open shelving.
// An address outside the derived set degrades to shelf 0, section 1: the
// region namespace is fully enumerable for a valid spec, so a miss is a
// caller indexing mistake, not a data problem. The fallback is logged.
// Non-shelving fixtures return their "bottom" region.
func (f *Fixture) SampleResetRegion(shelfIndex int, section string) Region {
	if f.variant != VariantOpen {
		return f.bottomRegion()
	}

	key := fmt.Sprintf("shelf_%d_%s", shelfIndex, section)
	if r, ok := f.regions[key]; ok {
		return r
	}

	log.Warn("reset region not found, using default",
		zap.String("fixture", f.spec.Name),
		zap.String("requested", key))
	return f.regions[fmt.Sprintf("shelf_0_%s", shelfSections[0])]
}
