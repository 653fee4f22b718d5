package fixture

import "gonum.org/v1/gonum/spatial/r3"

// BoxInterior is the simplest interior object a housing cabinet can wrap:
// an axis-aligned box with a name and an origin set by the housing when
// the cabinet is built or moved.
type BoxInterior struct {
	name   string
	size   r3.Vec
	origin r3.Vec
}

// NewBoxInterior creates a box interior of the given full extents.
func NewBoxInterior(name string, size r3.Vec) *BoxInterior {
	return &BoxInterior{name: name, size: size}
}

func (b *BoxInterior) Name() string         { return b.name }
func (b *BoxInterior) Size() r3.Vec         { return b.size }
func (b *BoxInterior) Origin() r3.Vec       { return b.origin }
func (b *BoxInterior) SetOrigin(pos r3.Vec) { b.origin = pos }
