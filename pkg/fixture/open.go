package fixture

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/scene"
)

// shelfSections are the four addressable longitudinal sections of every
// shelf surface, left to right.
var shelfSections = [4]string{"section_1", "section_2", "section_3", "section_4"}

// sectionShrink scales a section's usable width to keep sampled objects
// clear of its neighbors. The raw sections tile the shelf exactly.
const sectionShrink = 0.8

// buildOpen assembles open shelving: a carcass with no doors and
// NumShelves shelves evenly spaced along the height. The first shelf sits
// half a thickness above the bottom and shelves are spaced by
// (height - thickness) / N, so they subdivide the interior into N open
// bays with the top closing the last one.
func buildOpen(f *Fixture) error {
	x, y, z := f.spec.Size.X, f.spec.Size.Y, f.spec.Size.Z
	th := f.spec.Thickness
	hx, hy, hz, hth := x/2, y/2, z/2, th/2

	f.addBoxes(map[string]dims{
		"top":   {size: r3.Vec{X: hx - 2*hth, Y: hy, Z: hth}, pos: r3.Vec{Z: hz - hth}},
		"back":  {size: r3.Vec{X: hx - 2*hth, Y: hth, Z: hz}, pos: r3.Vec{Y: hy - hth}},
		"left":  {size: r3.Vec{X: hth, Y: hy, Z: hz}, pos: r3.Vec{X: -hx + hth}},
		"right": {size: r3.Vec{X: hth, Y: hy, Z: hz}, pos: r3.Vec{X: hx - hth}},
	})

	// Shelf centers: first at half-thickness above the bottom face, then
	// spaced by (z - th) / N.
	step := (z - th) / float64(f.spec.NumShelves)
	f.shelfZ = make([]float64, f.spec.NumShelves)
	for i := range f.shelfZ {
		f.shelfZ[i] = -hz + hth + float64(i)*step
	}

	// Each shelf is its own mergeable assembly, inset between the side
	// and back walls.
	for i, zpos := range f.shelfZ {
		shelf := &scene.Assembly{
			Name: fmt.Sprintf("%s_shelf_%d", f.spec.Name, i),
			Pos:  r3.Vec{Y: -hth, Z: zpos},
		}
		shelf.AddBox(&scene.Box{
			Name: shelf.Name + "_surface",
			Half: r3.Vec{X: hx - 2*hth, Y: hy - hth, Z: hth},
		})
		if f.spec.Texture != "" {
			shelf.AddMaterial(&scene.Material{
				Name:    shelf.Name + "_mat",
				Texture: resolveTexture(f.spec.Texture),
			})
		}
		f.tree.Merge(shelf, nil)
	}

	f.regions = shelfRegions(f.spec.Name, x, y, th, f.shelfZ)

	ext, int_ := boxBoundsSites(hx, hy, hz, hth)
	f.setBoundsSites(ext, nil)
	f.setBoundsSites(int_, nil)
	return nil
}

// shelfRegions partitions every shelf surface into four equal-width
// sections. Offsets are fixture-local at the shelf surface; extents are
// the sampled footprint, width shrunk by sectionShrink.
func shelfRegions(name string, x, y, th float64, shelfZ []float64) map[string]Region {
	usable := x - 2*th
	sw := usable / float64(len(shelfSections))

	regions := make(map[string]Region, len(shelfZ)*len(shelfSections))
	for i, zpos := range shelfZ {
		for j, section := range shelfSections {
			xoff := -x/2 + th + (float64(j)+0.5)*sw
			key := fmt.Sprintf("shelf_%d_%s", i, section)
			regions[key] = Region{
				Offset: r3.Vec{X: xoff, Z: zpos + th/2},
				Extent: r2.Vec{X: sw * sectionShrink, Y: y - 2*th},
			}
		}
	}
	return regions
}
