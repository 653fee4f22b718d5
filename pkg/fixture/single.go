package fixture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
	"github.com/chazu/casework/pkg/scene"
)

// leftHingeRange is the unconstrained swing for left-opening doors; the
// right-opening range mirrors it. The usable kinematic range mapped to
// open-ness fractions is 0..pi/2 regardless.
var leftHingeRange = [2]float64{-3.00, 0}

// buildSingle assembles a cabinet with one door hinged on the left or
// right interior edge.
func buildSingle(f *Fixture) error {
	x, y, z := f.spec.Size.X/2, f.spec.Size.Y/2, f.spec.Size.Z/2
	th := f.spec.Thickness / 2

	elems := cabinetShell(x, y, z, th)
	elems["shelf"] = dims{
		size: r3.Vec{X: x - 2*th, Y: y - shelfInset, Z: th},
		pos:  r3.Vec{Y: shelfInset - th},
	}
	f.addBoxes(elems)

	// Hinge anchor sits at the inner wall position on the swing side.
	joint := &scene.Joint{
		Name: f.qual("doorhinge"),
		Kind: scene.JointHinge,
		Axis: r3.Vec{Z: 1},
	}
	if f.spec.Orientation == OrientLeft {
		joint.Anchor = r3.Vec{X: -x + th, Y: -y}
		joint.Range = leftHingeRange
	} else {
		joint.Anchor = r3.Vec{X: x - th, Y: -y}
		joint.Range = [2]float64{-leftHingeRange[1], -leftHingeRange[0]}
	}
	door := &scene.Body{Name: f.qual("hingedoor"), Joint: joint}
	f.tree.AddBody(door)

	// The handle goes on the side opposite the hinge.
	hpos := panel.HLeft
	if f.spec.Orientation == OrientLeft {
		hpos = panel.HRight
	}
	err := f.addDoor(2*x, 2*z, 2*th, r3.Vec{Y: -y + th}, door,
		hpos, f.spec.HandleVPos, panel.Vertical, "door")
	if err != nil {
		return err
	}

	ext, int_ := boxBoundsSites(x, y, z, th)
	f.setBoundsSites(ext, nil)
	f.setBoundsSites(int_, nil)

	f.doors = []doorJoint{{
		part:  "door",
		joint: joint.Name,
		min:   0,
		max:   math.Pi / 2,
		sign:  hingeSign(f.spec.Orientation),
	}}
	return nil
}
