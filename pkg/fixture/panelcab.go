package fixture

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
	"github.com/chazu/casework/pkg/scene"
)

// buildPanelCab assembles a panel cabinet: a decorative, non-openable
// door with no handle and no joint, used where a fixture stack needs a
// matching front over dead space. With SolidBody set, a solid box behind
// the panel blocks visibility and placement; it contains nothing movable.
func buildPanelCab(f *Fixture) error {
	x, y, z := f.spec.Size.X/2, f.spec.Size.Y/2, f.spec.Size.Z/2
	th := f.spec.Thickness / 2

	if f.spec.SolidBody {
		f.tree.AddBox(&scene.Box{
			Name: f.qual("body"),
			Half: r3.Vec{X: x, Y: y - th, Z: z},
			Pos:  r3.Vec{Y: th},
		})
	}

	// Static door: no parent body, so no degree of freedom.
	err := f.addDoor(2*x, 2*z, 2*th, r3.Vec{Y: -y + th}, nil,
		panel.HCenter, panel.VCenter, panel.Vertical, "door")
	if err != nil {
		return err
	}

	ext, int_ := boxBoundsSites(x, y, z, th)
	f.setBoundsSites(ext, nil)
	f.setBoundsSites(int_, nil)
	return nil
}
