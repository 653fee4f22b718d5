package config

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture"
	"github.com/chazu/casework/pkg/fixture/panel"
)

// Spec converts one catalog preset into a fixture variant and spec.
func (fc FixtureConfig) Spec(name string) (fixture.Variant, fixture.Spec, error) {
	variant := fixture.Variant(fc.Variant)
	spec := fixture.Spec{
		Name:         name,
		Thickness:    fc.Thickness,
		DoorGap:      fc.DoorGap,
		PanelStyle:   panel.Style(fc.PanelStyle),
		HandleStyle:  panel.HandleStyle(fc.HandleStyle),
		HandleVPos:   panel.VPos(fc.HandleVPos),
		HandleConfig: fc.HandleConfig,
		OpenTop:      fc.OpenTop,
		Texture:      fc.Texture,
		Orientation:  fixture.Orientation(fc.Orientation),
		NumShelves:   fc.Shelves,
		SolidBody:    fc.SolidBody,
	}
	if len(fc.Size) == 3 {
		spec.Size = r3.Vec{X: fc.Size[0], Y: fc.Size[1], Z: fc.Size[2]}
	}

	if variant == fixture.VariantHousing {
		if fc.Interior == nil {
			return variant, spec, fmt.Errorf("fixture %q: housing requires an interior", name)
		}
		spec.Interior = fixture.NewBoxInterior(fc.Interior.Name, r3.Vec{
			X: fc.Interior.Size[0],
			Y: fc.Interior.Size[1],
			Z: fc.Interior.Size[2],
		})
		spec.SizeOpt = [3]*float64{fc.Width, fc.Depth, fc.Height}
		spec.Padding = [3][2]*float64{
			{fc.PadLeft, fc.PadRight},
			{fc.PadFront, fc.PadBack},
			{fc.PadBot, fc.PadTop},
		}
	}

	return variant, spec, nil
}

// Build constructs the named preset from the catalog.
func (c *Config) Build(name string) (*fixture.Fixture, error) {
	fc, ok := c.Fixtures[name]
	if !ok {
		return nil, fmt.Errorf("no fixture preset named %q", name)
	}
	variant, spec, err := fc.Spec(name)
	if err != nil {
		return nil, err
	}
	f, err := fixture.New(variant, spec)
	if err != nil {
		return nil, err
	}
	if len(fc.At) == 3 {
		f.SetPos(r3.Vec{X: fc.At[0], Y: fc.At[1], Z: fc.At[2]})
	}
	return f, nil
}
