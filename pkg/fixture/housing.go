package fixture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// paddingEpsilon rounds floating-point dust in resolved padding to zero.
const paddingEpsilon = 1e-6

// buildHousing assembles a hollow cabinet wrapping an already-constructed
// interior object. Walls are computed from per-face padding instead of
// door panels; on each axis either the full size or both paddings must be
// given and the other is derived. The front padding on the depth axis may
// be negative so the interior object can protrude forward.
func buildHousing(f *Fixture) error {
	if err := f.resolvePadding(); err != nil {
		return err
	}

	x, y, z := f.spec.Size.X/2, f.spec.Size.Y/2, f.spec.Size.Z/2
	pad := f.padding

	walls := map[string]dims{
		"top": {
			size: r3.Vec{X: x, Y: y - pad[1][1]/2, Z: pad[2][1] / 2},
			pos:  r3.Vec{Y: -pad[1][1] / 2, Z: z - pad[2][1]/2},
		},
		"bottom": {
			size: r3.Vec{X: x, Y: y - pad[1][1]/2, Z: pad[2][0] / 2},
			pos:  r3.Vec{Y: -pad[1][1] / 2, Z: -z + pad[2][0]/2},
		},
		"back": {
			size: r3.Vec{X: x, Y: pad[1][1] / 2, Z: z},
			pos:  r3.Vec{Y: y - pad[1][1]/2},
		},
		"left": {
			size: r3.Vec{X: pad[0][0] / 2, Y: y - pad[1][1]/2, Z: z - (pad[2][0]+pad[2][1])/2},
			pos:  r3.Vec{X: -x + pad[0][0]/2, Y: -pad[1][1] / 2},
		},
		"right": {
			size: r3.Vec{X: pad[0][1] / 2, Y: y - pad[1][1]/2, Z: z - (pad[2][0]+pad[2][1])/2},
			pos:  r3.Vec{X: x - pad[0][1]/2, Y: -pad[1][1] / 2},
		},
	}

	// A wall that padding has squeezed to nothing simply does not exist.
	for role, d := range walls {
		if d.size.X <= 0 || d.size.Y <= 0 || d.size.Z <= 0 {
			delete(walls, role)
		}
	}
	f.addBoxes(walls)

	f.setBoundsSites(map[string]r3.Vec{
		"ext_p0": {X: -x, Y: -y, Z: -z},
		"ext_px": {X: x, Y: -y, Z: -z},
		"ext_py": {X: -x, Y: y, Z: -z},
		"ext_pz": {X: -x, Y: -y, Z: z},
	}, nil)
	// Interior faces inset by their own padding, independently.
	f.setBoundsSites(map[string]r3.Vec{
		"int_p0": {X: -x + pad[0][0], Y: -y + pad[1][0], Z: -z + pad[2][0]},
		"int_px": {X: x - pad[0][1], Y: -y + pad[1][0], Z: -z + pad[2][0]},
		"int_py": {X: -x + pad[0][0], Y: y - pad[1][1], Z: -z + pad[2][0]},
		"int_pz": {X: -x + pad[0][0], Y: -y + pad[1][0], Z: z - pad[2][1]},
	}, nil)

	f.placeInterior()
	return nil
}

// resolvePadding derives the full size and per-face padding for each axis
// from whichever of the two the spec supplies, validating consistency
// against the interior object's extent.
func (f *Fixture) resolvePadding() error {
	name := f.spec.Name
	inner := f.spec.Interior.Size()
	innerAxis := [3]float64{inner.X, inner.Y, inner.Z}

	anyGiven := false
	for d := 0; d < 3; d++ {
		if f.spec.SizeOpt[d] != nil || f.spec.Padding[d][0] != nil || f.spec.Padding[d][1] != nil {
			anyGiven = true
		}
	}
	if !anyGiven {
		return specErrf(name, "size/padding", "housing cabinet requires size or padding")
	}

	var size [3]float64
	for d := 0; d < 3; d++ {
		s := f.spec.SizeOpt[d]
		p0 := f.spec.Padding[d][0]
		p1 := f.spec.Padding[d][1]

		switch {
		case s == nil:
			if p0 == nil || p1 == nil {
				return specErrf(name, "padding",
					"axis %d: size omitted, so both padding values are required", d)
			}
			size[d] = *p0 + *p1 + innerAxis[d]
			f.padding[d] = [2]float64{*p0, *p1}
		case p0 == nil && p1 == nil:
			half := (*s - innerAxis[d]) / 2
			size[d] = *s
			f.padding[d] = [2]float64{half, half}
		case p0 == nil:
			size[d] = *s
			f.padding[d] = [2]float64{*s - innerAxis[d] - *p1, *p1}
		case p1 == nil:
			size[d] = *s
			f.padding[d] = [2]float64{*p0, *s - innerAxis[d] - *p0}
		default:
			if math.Abs(*p0+*p1+innerAxis[d]-*s) > paddingEpsilon {
				return specErrf(name, "padding",
					"axis %d: padding %g + %g + interior %g != size %g",
					d, *p0, *p1, innerAxis[d], *s)
			}
			size[d] = *s
			f.padding[d] = [2]float64{*p0, *p1}
		}

		for side := range f.padding[d] {
			if math.Abs(f.padding[d][side]) < paddingEpsilon {
				f.padding[d][side] = 0
			}
		}

		// Only the front face (the -y side of the depth axis) may carry
		// negative padding, letting the interior object stick out.
		if size[d] < 0 || f.padding[d][1] < 0 || (d != 1 && f.padding[d][0] < 0) {
			return specErrf(name, "padding",
				"axis %d: negative size %g or padding [%g %g]",
				d, size[d], f.padding[d][0], f.padding[d][1])
		}
	}

	f.spec.Size = r3.Vec{X: size[0], Y: size[1], Z: size[2]}
	return nil
}

// placeInterior positions the wrapped object: its origin offsets from the
// cabinet center by half the padding asymmetry on each axis.
func (f *Fixture) placeInterior() {
	pad := f.padding
	f.spec.Interior.SetOrigin(r3.Add(f.pos, r3.Vec{
		X: (pad[0][0] - pad[0][1]) / 2,
		Y: (pad[1][0] - pad[1][1]) / 2,
		Z: (pad[2][0] - pad[2][1]) / 2,
	}))
}

// Padding returns the resolved full padding per axis and side; side 0 is
// the negative-axis face. Only meaningful for housing cabinets.
func (f *Fixture) Padding() [3][2]float64 { return f.padding }
