package panel

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/scene"
)

// HandleStyle selects the handle hardware.
type HandleStyle string

const (
	HandleBar  HandleStyle = "bar"
	HandleKnob HandleStyle = "knob"
	HandleNone HandleStyle = "none"
)

// Orientation is the long axis of a bar handle.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Default handle proportions, overridable through Options.HandleConfig
// under the keys "length", "standoff", "margin", and "girth".
const (
	defaultStandoff = 0.02  // face to grip clearance
	defaultMargin   = 0.05  // inset from the door edge
	defaultGirth    = 0.012 // full cross-section of grip and mounts
	barLengthRatio  = 0.4   // bar length as a fraction of the door span
	knobSize        = 0.035 // full diameter of the knob head
)

// handleParams resolves the free-form config against defaults.
type handleParams struct {
	length   float64
	standoff float64
	margin   float64
	girth    float64
}

func resolveHandleParams(o Options) handleParams {
	span := o.Height
	if o.HandleOrient == Horizontal {
		span = o.Width
	}
	p := handleParams{
		length:   barLengthRatio * span,
		standoff: defaultStandoff,
		margin:   defaultMargin,
		girth:    defaultGirth,
	}
	if v, ok := o.HandleConfig["length"]; ok {
		p.length = v
	}
	if v, ok := o.HandleConfig["standoff"]; ok {
		p.standoff = v
	}
	if v, ok := o.HandleConfig["margin"]; ok {
		p.margin = v
	}
	if v, ok := o.HandleConfig["girth"]; ok {
		p.girth = v
	}
	return p
}

// addHandle builds the handle geometry on the front (-y) face. The grip box
// is named "<door>_handle_handle"; manipulation targets attach to it by
// that name.
func addHandle(a *scene.Assembly, o Options) error {
	p := resolveHandleParams(o)
	base := o.Name + "_handle"

	cx, cz := handleCenter(o, p)
	faceY := -o.Thickness / 2

	switch o.Handle {
	case HandleBar:
		addBar(a, base, o, p, cx, cz, faceY)
	case HandleKnob:
		addKnob(a, base, p, cx, cz, faceY)
	default:
		return fmt.Errorf("panel %q: unsupported handle style %q", o.Name, o.Handle)
	}
	return nil
}

// handleCenter maps the two independent placement axes to a point on the
// door face.
func handleCenter(o Options, p handleParams) (x, z float64) {
	switch o.HandleHPos {
	case HLeft:
		x = -o.Width/2 + p.margin
	case HRight:
		x = o.Width/2 - p.margin
	default: // HCenter
		x = 0
	}
	switch o.HandleVPos {
	case VTop:
		z = o.Height/2 - p.margin
	case VBottom:
		z = -o.Height/2 + p.margin
	default: // VCenter
		z = 0
	}
	return x, z
}

// addBar emits a grip bar held off the face by two mounts.
func addBar(a *scene.Assembly, base string, o Options, p handleParams, cx, cz, faceY float64) {
	g := p.girth / 2
	hl := p.length / 2
	gripY := faceY - p.standoff - g
	mountY := faceY - p.standoff/2

	grip := &scene.Box{Name: base + "_handle", Pos: r3.Vec{X: cx, Y: gripY, Z: cz}}
	m0 := &scene.Box{Name: base + "_mount_0"}
	m1 := &scene.Box{Name: base + "_mount_1"}
	mountHalf := r3.Vec{X: g, Y: p.standoff / 2, Z: g}
	mountInset := hl - g

	if o.HandleOrient == Horizontal {
		grip.Half = r3.Vec{X: hl, Y: g, Z: g}
		m0.Pos = r3.Vec{X: cx - mountInset, Y: mountY, Z: cz}
		m1.Pos = r3.Vec{X: cx + mountInset, Y: mountY, Z: cz}
	} else {
		grip.Half = r3.Vec{X: g, Y: g, Z: hl}
		m0.Pos = r3.Vec{X: cx, Y: mountY, Z: cz - mountInset}
		m1.Pos = r3.Vec{X: cx, Y: mountY, Z: cz + mountInset}
	}
	m0.Half, m1.Half = mountHalf, mountHalf

	a.AddBox(grip)
	a.AddBox(m0)
	a.AddBox(m1)
}

// addKnob emits a knob head on a short stem.
func addKnob(a *scene.Assembly, base string, p handleParams, cx, cz, faceY float64) {
	g := p.girth / 2
	k := knobSize / 2

	a.AddBox(&scene.Box{
		Name: base + "_stem",
		Half: r3.Vec{X: g, Y: p.standoff / 2, Z: g},
		Pos:  r3.Vec{X: cx, Y: faceY - p.standoff/2, Z: cz},
	})
	a.AddBox(&scene.Box{
		Name: base + "_handle",
		Half: r3.Vec{X: k, Y: k, Z: k},
		Pos:  r3.Vec{X: cx, Y: faceY - p.standoff - k, Z: cz},
	})
}
