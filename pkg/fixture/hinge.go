package fixture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
	"github.com/chazu/casework/pkg/scene"
)

// buildHinge assembles a double-door cabinet. Each door hinges at its own
// outer edge and the pair opens outward in mirrored directions: the left
// door takes negative angles, the right door positive, so a symmetric
// fraction leaves the doors mirror images.
func buildHinge(f *Fixture) error {
	x, y, z := f.spec.Size.X/2, f.spec.Size.Y/2, f.spec.Size.Z/2
	th := f.spec.Thickness / 2

	elems := cabinetShell(x, y, z, th)
	elems["shelf"] = dims{
		size: r3.Vec{X: x - 2*th, Y: y - shelfInset, Z: th},
		pos:  r3.Vec{Y: shelfInset - th},
	}
	f.addBoxes(elems)

	sides := []struct {
		side   string
		orient Orientation
		anchor r3.Vec
		doorX  float64
		hpos   panel.HPos
	}{
		{"left", OrientLeft, r3.Vec{X: -x + th, Y: -y}, -x / 2, panel.HRight},
		{"right", OrientRight, r3.Vec{X: x - th, Y: -y}, x / 2, panel.HLeft},
	}

	f.doors = f.doors[:0]
	for _, s := range sides {
		joint := &scene.Joint{
			Name:   f.qual(s.side + "doorhinge"),
			Kind:   scene.JointHinge,
			Axis:   r3.Vec{Z: 1},
			Anchor: s.anchor,
		}
		if s.orient == OrientLeft {
			joint.Range = leftHingeRange
		} else {
			joint.Range = [2]float64{-leftHingeRange[1], -leftHingeRange[0]}
		}
		body := &scene.Body{Name: f.qual("hinge" + s.side + "door"), Joint: joint}
		f.tree.AddBody(body)

		// Each door spans half the width; the handle sits by the center
		// seam, opposite its hinge.
		err := f.addDoor(x, 2*z, 2*th, r3.Vec{X: s.doorX, Y: -y + th}, body,
			s.hpos, f.spec.HandleVPos, panel.Vertical, s.side+"_door")
		if err != nil {
			return err
		}

		f.doors = append(f.doors, doorJoint{
			part:  s.side + "_door",
			joint: joint.Name,
			min:   0,
			max:   math.Pi / 2,
			sign:  hingeSign(s.orient),
		})
	}

	ext, int_ := boxBoundsSites(x, y, z, th)
	f.setBoundsSites(ext, nil)
	f.setBoundsSites(int_, nil)
	return nil
}
