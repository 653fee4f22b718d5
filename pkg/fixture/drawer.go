package fixture

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
	"github.com/chazu/casework/pkg/scene"
	"github.com/chazu/casework/pkg/sim"
)

// innerClearance keeps the sliding box from scraping the housing, in
// meters off each half-extent.
const innerClearance = 0.001

// drawerIntSites are the dynamic interior bounds of a drawer; they ride
// on the inner box so they track the slide.
var drawerIntSites = [4]string{"int_p0", "int_px", "int_py", "int_pz"}

// buildDrawer assembles a drawer: a fixed housing and a sliding inner box
// whose cosmetic front face comes from the panel factory. The slide range
// spans the full depth; the open-ness mapping caps travel at
// DrawerTravelRatio of the depth.
func buildDrawer(f *Fixture) error {
	x, y, z := f.spec.Size.X/2, f.spec.Size.Y/2, f.spec.Size.Z/2
	th := f.spec.Thickness / 2

	f.addBoxes(cabinetShell(x, y, z, th))

	// Inner box half extents, cleared off the housing walls.
	ix := x - 2*th - innerClearance
	iy := y - 2*th
	iz := z - 2*th - innerClearance

	joint := &scene.Joint{
		Name:   f.qual("slidejoint"),
		Kind:   scene.JointSlide,
		Axis:   r3.Vec{Y: 1},
		Anchor: r3.Vec{Y: -y},
		Range:  [2]float64{-2 * y, 0},
	}
	inner := &scene.Body{Name: f.qual("inner_box"), Joint: joint}
	inner.Boxes = []*scene.Box{
		{Name: f.qual("inner_bottom"), Half: r3.Vec{X: ix, Y: iy, Z: th}, Pos: r3.Vec{Z: -iz + th}},
		{Name: f.qual("inner_back"), Half: r3.Vec{X: ix - 2*th, Y: th, Z: iz - 2*th}, Pos: r3.Vec{Y: iy - th}},
		{Name: f.qual("inner_left"), Half: r3.Vec{X: th, Y: iy, Z: iz - 2*th}, Pos: r3.Vec{X: -ix + th}},
		{Name: f.qual("inner_right"), Half: r3.Vec{X: th, Y: iy, Z: iz - 2*th}, Pos: r3.Vec{X: ix - th}},
	}
	f.tree.AddBody(inner)

	// Drawer fronts center their handle and lay the bar horizontally.
	err := f.addDoor(2*x, 2*z, 2*th, r3.Vec{Y: -y + th}, inner,
		panel.HCenter, panel.VCenter, panel.Horizontal, "door")
	if err != nil {
		return err
	}

	ext, _ := boxBoundsSites(x, y, z, th)
	f.setBoundsSites(ext, nil)
	f.setBoundsSites(map[string]r3.Vec{
		"int_p0": {X: -ix + 2*th, Y: -iy, Z: -iz + 2*th},
		"int_px": {X: ix - 2*th, Y: -iy, Z: -iz + 2*th},
		"int_py": {X: -ix + 2*th, Y: iy - 2*th, Z: -iz + 2*th},
		"int_pz": {X: -ix + 2*th, Y: -iy, Z: iz},
	}, inner)

	f.doors = []doorJoint{{
		part:  "door",
		joint: joint.Name,
		min:   0,
		max:   f.spec.Size.Y * DrawerTravelRatio,
		sign:  -1, // the drawer opens toward -y
	}}
	return nil
}

// UpdateState recomputes the drawer's interior bounding sites from the
// runtime's live site positions, so "inside the drawer" follows how far
// it is pulled out. Non-drawer fixtures ignore the call. Callers must
// have run forward kinematics since the last joint write.
func (f *Fixture) UpdateState(rt sim.Runtime) error {
	if f.variant != VariantDrawer {
		return nil
	}
	for _, site := range drawerIntSites {
		world, err := rt.SitePos(f.qual(site))
		if err != nil {
			return err
		}
		f.sites[site] = r3.Sub(world, f.pos)
	}
	return nil
}
