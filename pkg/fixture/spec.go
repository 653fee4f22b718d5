// Package fixture procedurally constructs kitchen casework (cabinets,
// drawers, shelving, paneled housings) as parametrized box assemblies and
// exposes a kinematic mapping between a normalized open-ness fraction and
// the underlying hinge or slide joint of each moving part.
package fixture

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
)

// Variant tags the closed set of structural fixture kinds.
type Variant string

const (
	VariantSingle  Variant = "single"  // one hinged door
	VariantHinge   Variant = "hinge"   // two mirrored hinged doors
	VariantOpen    Variant = "open"    // open shelving, no doors
	VariantDrawer  Variant = "drawer"  // sliding inner box
	VariantPanel   Variant = "panel"   // decorative non-openable front
	VariantHousing Variant = "housing" // hollow shell around an interior object
)

// Orientation is the side a single-door cabinet opens toward, facing it.
type Orientation string

const (
	OrientLeft  Orientation = "left"
	OrientRight Orientation = "right"
)

// hingeSign is the single orientation-to-sign lookup shared by every
// variant: a door swinging left needs its applied hinge rotation negated so
// that positive open-ness always means physically opening.
func hingeSign(o Orientation) float64 {
	if o == OrientLeft {
		return -1
	}
	return 1
}

// Construction defaults.
const (
	DefaultThickness = 0.03
	DefaultDoorGap   = 0.003
	DefaultShelves   = 2
)

// InteriorObject is what a housing cabinet wraps: anything that reports a
// full size and accepts a world origin. Re-positioning the housing cabinet
// re-places its interior object through this interface.
type InteriorObject interface {
	Size() r3.Vec
	SetOrigin(r3.Vec)
}

// Spec is the immutable-after-construction parameter set for one fixture.
// Zero values for Thickness, DoorGap, PanelStyle, HandleStyle, HandleVPos,
// Orientation, and NumShelves are replaced with defaults at build time.
type Spec struct {
	Name string
	Size r3.Vec // full width (x), depth (y), height (z)

	Thickness float64
	DoorGap   float64

	PanelStyle   panel.Style
	HandleStyle  panel.HandleStyle
	HandleVPos   panel.VPos
	HandleConfig map[string]float64

	OpenTop bool
	Texture string // texture asset reference, resolved via ResolveTexturePath

	// Single-door cabinets only.
	Orientation Orientation

	// Open shelving only.
	NumShelves int

	// Panel cabinets only: back the decorative front with a solid
	// occluding body.
	SolidBody bool

	// Housing cabinets only. SizeOpt overrides Size per axis; a nil entry
	// means the axis size is derived from padding plus the interior
	// object's extent. Padding is [axis][side] with side 0 the -axis face;
	// nil entries are derived from SizeOpt and the interior size.
	Interior InteriorObject
	SizeOpt  [3]*float64
	Padding  [3][2]*float64
}

// SpecError is a construction-time validation failure. The fixture is not
// built and no partial geometry is attached.
type SpecError struct {
	Fixture string
	Field   string
	Msg     string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("fixture %q: invalid %s: %s", e.Fixture, e.Field, e.Msg)
}

func specErrf(name, field, format string, args ...any) *SpecError {
	return &SpecError{Fixture: name, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// applyDefaults fills zero-valued tunables.
func (s *Spec) applyDefaults() {
	if s.Thickness == 0 {
		s.Thickness = DefaultThickness
	}
	if s.DoorGap == 0 {
		s.DoorGap = DefaultDoorGap
	}
	if s.PanelStyle == "" {
		s.PanelStyle = panel.StyleRaised
	}
	if s.HandleStyle == "" {
		s.HandleStyle = panel.HandleBar
	}
	if s.HandleVPos == "" {
		s.HandleVPos = panel.VBottom
	}
	if s.Orientation == "" {
		s.Orientation = OrientRight
	}
	if s.NumShelves == 0 {
		s.NumShelves = DefaultShelves
	}
}

// validate runs the variant-independent checks. The housing variant skips
// the size check; its sizes may be derived from padding.
func (s *Spec) validate(v Variant) error {
	if s.Name == "" {
		return specErrf(s.Name, "name", "must not be empty")
	}
	if s.Thickness <= 0 {
		return specErrf(s.Name, "thickness", "%g, must be positive", s.Thickness)
	}
	if s.DoorGap < 0 {
		return specErrf(s.Name, "door_gap", "%g, must not be negative", s.DoorGap)
	}
	if _, err := panel.ParseStyle(string(s.PanelStyle)); err != nil {
		return specErrf(s.Name, "panel_style", "%v", err)
	}
	if v != VariantHousing {
		if s.Size.X <= 0 || s.Size.Y <= 0 || s.Size.Z <= 0 {
			return specErrf(s.Name, "size", "[%g %g %g], all components must be positive",
				s.Size.X, s.Size.Y, s.Size.Z)
		}
	}
	switch v {
	case VariantSingle:
		if s.Orientation != OrientLeft && s.Orientation != OrientRight {
			return specErrf(s.Name, "orientation", "%q, want %q or %q",
				s.Orientation, OrientLeft, OrientRight)
		}
	case VariantOpen:
		if s.NumShelves < 1 {
			return specErrf(s.Name, "num_shelves", "%d, must be at least 1", s.NumShelves)
		}
	case VariantHousing:
		if s.Interior == nil {
			return specErrf(s.Name, "interior", "housing cabinet requires an interior object")
		}
	}
	return nil
}
