// Package panel builds door and drawer-front sub-assemblies: a styled
// cosmetic panel with an optional handle. Assemblies are built in the
// door's local frame (x across, y through the thickness, z up) and merged
// into a parent fixture tree by the caller.
package panel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/scene"
)

// Style selects the panel shape.
type Style string

const (
	StyleSlab          Style = "slab"
	StyleShaker        Style = "shaker"
	StyleRaised        Style = "raised"
	StyleDividedWindow Style = "divided_window"
	StyleFullWindow    Style = "full_window"
	StyleNone          Style = "none" // no panel is built; caller omits the door
)

// ErrUnsupportedStyle is returned for a style outside the known set.
var ErrUnsupportedStyle = errors.New("panel: unsupported style")

// ParseStyle converts a string tag to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleSlab, StyleShaker, StyleRaised, StyleDividedWindow, StyleFullWindow, StyleNone:
		return Style(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStyle, s)
}

// HPos is the horizontal handle position across the door face.
type HPos string

const (
	HLeft   HPos = "left"
	HCenter HPos = "center"
	HRight  HPos = "right"
)

// VPos is the vertical handle position on the door face.
type VPos string

const (
	VTop    VPos = "top"
	VCenter VPos = "center"
	VBottom VPos = "bottom"
)

// Proportions of the framed styles. Frame width scales with the smaller
// face dimension; the recess/proud offset and window pane are fractions of
// the panel thickness.
const (
	frameRatio   = 0.15
	recessRatio  = 0.2
	paneRatio    = 0.15
	mullionRatio = 0.4
)

// Options parametrizes one panel build. Width, Height, and Thickness are
// full sizes; the caller applies any door gap before building.
type Options struct {
	Name      string // base name; all element names derive from it
	Width     float64
	Height    float64
	Thickness float64

	Style Style

	Handle       HandleStyle
	HandleHPos   HPos
	HandleVPos   VPos
	HandleOrient Orientation
	HandleConfig map[string]float64

	Texture string
}

// Build constructs the panel assembly for the given options. StyleNone
// returns (nil, nil): no panel exists and the caller must not attach a
// door. An unrecognized style fails fast with ErrUnsupportedStyle.
func Build(o Options) (*scene.Assembly, error) {
	if o.Width <= 0 || o.Height <= 0 || o.Thickness <= 0 {
		return nil, fmt.Errorf("panel %q: non-positive dimensions [%g %g %g]",
			o.Name, o.Width, o.Height, o.Thickness)
	}

	a := &scene.Assembly{Name: o.Name}

	switch o.Style {
	case StyleNone:
		return nil, nil
	case StyleSlab:
		buildSlab(a, o)
	case StyleShaker:
		buildFramed(a, o, -1, false)
	case StyleRaised:
		buildFramed(a, o, +1, false)
	case StyleDividedWindow:
		buildFramed(a, o, 0, true)
		addMullions(a, o)
	case StyleFullWindow:
		buildFramed(a, o, 0, true)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStyle, o.Style)
	}

	if o.Handle != HandleNone && o.Handle != "" {
		if err := addHandle(a, o); err != nil {
			return nil, err
		}
	}

	if o.Texture != "" {
		a.AddMaterial(&scene.Material{
			Name:    o.Name + "_mat",
			Texture: o.Texture,
		})
	}

	return a, nil
}

// buildSlab emits a single flat box covering the whole face.
func buildSlab(a *scene.Assembly, o Options) {
	a.AddBox(&scene.Box{
		Name: o.Name + "_panel",
		Half: r3.Vec{X: o.Width / 2, Y: o.Thickness / 2, Z: o.Height / 2},
	})
}

// buildFramed emits the four frame pieces shared by the shaker, raised, and
// windowed styles, plus a center fill. protrude picks the center treatment:
// -1 recessed (shaker), +1 proud (raised), 0 a thin glass pane (windowed).
func buildFramed(a *scene.Assembly, o Options, protrude int, pane bool) {
	w, h, th := o.Width/2, o.Height/2, o.Thickness/2
	fw := frameWidth(o) / 2

	// Rails run the full width; stiles fill between them.
	rails := []struct {
		name string
		half r3.Vec
		pos  r3.Vec
	}{
		{o.Name + "_rail_top", r3.Vec{X: w, Y: th, Z: fw}, r3.Vec{Z: h - fw}},
		{o.Name + "_rail_bottom", r3.Vec{X: w, Y: th, Z: fw}, r3.Vec{Z: -h + fw}},
		{o.Name + "_stile_left", r3.Vec{X: fw, Y: th, Z: h - 2*fw}, r3.Vec{X: -w + fw}},
		{o.Name + "_stile_right", r3.Vec{X: fw, Y: th, Z: h - 2*fw}, r3.Vec{X: w - fw}},
	}
	for _, r := range rails {
		a.AddBox(&scene.Box{Name: r.name, Half: r.half, Pos: r.pos})
	}

	cw, ch := w-2*fw, h-2*fw
	if pane {
		a.AddBox(&scene.Box{
			Name: o.Name + "_glass",
			Half: r3.Vec{X: cw, Y: th * paneRatio, Z: ch},
		})
		return
	}

	// Solid center, recessed behind or standing proud of the frame face.
	a.AddBox(&scene.Box{
		Name: o.Name + "_center",
		Half: r3.Vec{X: cw, Y: th * (1 - recessRatio), Z: ch},
		Pos:  r3.Vec{Y: -float64(protrude) * th * recessRatio},
	})
}

// addMullions crosses the window opening with a vertical and a horizontal
// glazing bar.
func addMullions(a *scene.Assembly, o Options) {
	w, h, th := o.Width/2, o.Height/2, o.Thickness/2
	fw := frameWidth(o) / 2
	mw := fw * mullionRatio

	a.AddBox(&scene.Box{
		Name: o.Name + "_mullion_v",
		Half: r3.Vec{X: mw, Y: th, Z: h - 2*fw},
	})
	a.AddBox(&scene.Box{
		Name: o.Name + "_mullion_h",
		Half: r3.Vec{X: w - 2*fw, Y: th, Z: mw},
	})
}

// frameWidth returns the full width of the frame pieces, capped so the
// frame never consumes the whole face on narrow doors.
func frameWidth(o Options) float64 {
	fw := frameRatio * math.Min(o.Width, o.Height)
	if limit := 0.4 * math.Min(o.Width, o.Height); fw > limit {
		fw = limit
	}
	return fw
}
