package fixture

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture/panel"
	"github.com/chazu/casework/pkg/scene"
)

// Fixture is one constructed casework unit: an element tree, its bounding
// sites, and the kinematic table for its moving parts. All geometry is a
// deterministic pure function of the Spec; only the drawer's interior
// sites change after construction (see UpdateState).
type Fixture struct {
	spec    Spec
	variant Variant
	tree    *scene.Tree
	pos     r3.Vec

	sites map[string]r3.Vec // eight bounds sites, fixture-local
	doors []doorJoint

	// Open shelving state.
	shelfZ  []float64
	regions map[string]Region

	// Housing state: resolved full padding per axis/side.
	padding [3][2]float64
}

// builder is one row of the variant dispatch table.
type builder struct {
	natLang string
	build   func(*Fixture) error
}

var builders = map[Variant]builder{
	VariantSingle:  {natLang: "cabinet", build: buildSingle},
	VariantHinge:   {natLang: "cabinet", build: buildHinge},
	VariantOpen:    {natLang: "shelves", build: buildOpen},
	VariantDrawer:  {natLang: "drawer", build: buildDrawer},
	VariantPanel:   {natLang: "cabinet", build: buildPanelCab},
	VariantHousing: {natLang: "cabinet", build: buildHousing},
}

// New validates the spec and constructs the fixture for the given variant
// tag. On any error the fixture is not built and nothing is attached.
func New(v Variant, spec Spec) (*Fixture, error) {
	b, ok := builders[v]
	if !ok {
		return nil, specErrf(spec.Name, "variant", "unknown variant %q", v)
	}
	spec.applyDefaults()
	if err := spec.validate(v); err != nil {
		return nil, err
	}

	f := &Fixture{
		spec:    spec,
		variant: v,
		tree:    scene.NewTree(spec.Name),
		sites:   make(map[string]r3.Vec),
	}
	if err := b.build(f); err != nil {
		return nil, err
	}

	if spec.OpenTop {
		f.tree.RemoveBox(f.qual("top"))
	}
	f.bindTexture()

	log.Debug("built fixture",
		zap.String("name", spec.Name),
		zap.String("variant", string(v)))
	return f, nil
}

// Name returns the fixture name; every element name is prefixed with it.
func (f *Fixture) Name() string { return f.spec.Name }

// Variant returns the structural variant tag.
func (f *Fixture) Variant() Variant { return f.variant }

// Spec returns a copy of the construction parameters.
func (f *Fixture) Spec() Spec { return f.spec }

// Tree returns the fixture's element tree, owned by the fixture.
func (f *Fixture) Tree() *scene.Tree { return f.tree }

// Size returns the full exterior size. For housing cabinets this is the
// size after padding resolution.
func (f *Fixture) Size() r3.Vec { return f.spec.Size }

// Pos returns the fixture's world position.
func (f *Fixture) Pos() r3.Vec { return f.pos }

// SetPos moves the fixture. A housing cabinet also re-places its wrapped
// interior object, whose origin derives from the padding asymmetry.
func (f *Fixture) SetPos(p r3.Vec) {
	f.pos = p
	if f.variant == VariantHousing && f.spec.Interior != nil {
		f.placeInterior()
	}
}

// NatLang returns the natural-language label for the fixture kind.
func (f *Fixture) NatLang() string { return builders[f.variant].natLang }

// qual prefixes an element role with the fixture name.
func (f *Fixture) qual(role string) string { return f.spec.Name + "_" + role }

// Naming convention accessors. These strings are stable; other subsystems
// attach manipulation targets by them.

// DoorName returns the hinged door body name of a single-door cabinet.
func (f *Fixture) DoorName() string { return f.qual("hingedoor") }

// HandleName returns the door handle grip name of a single-door cabinet or
// drawer.
func (f *Fixture) HandleName() string { return f.qual("door_handle_handle") }

// LeftHandleName returns the left door grip name of a double-door cabinet.
func (f *Fixture) LeftHandleName() string { return f.qual("left_door_handle_handle") }

// RightHandleName returns the right door grip name of a double-door cabinet.
func (f *Fixture) RightHandleName() string { return f.qual("right_door_handle_handle") }

// dims pairs a half-extent size with a center position.
type dims struct {
	size r3.Vec
	pos  r3.Vec
}

// shelfInset is how far a fixed interior shelf sits back from the front
// face, in meters of full depth.
const shelfInset = 0.05

// cabinetShell resolves the five walls shared by the box cabinets. All
// arguments are half sizes; adjoining walls share exact edges with zero
// gap or overlap.
func cabinetShell(x, y, z, th float64) map[string]dims {
	return map[string]dims{
		"top":    {size: r3.Vec{X: x, Y: y - th, Z: th}, pos: r3.Vec{Y: th, Z: z - th}},
		"bottom": {size: r3.Vec{X: x, Y: y - th, Z: th}, pos: r3.Vec{Y: th, Z: -z + th}},
		"back":   {size: r3.Vec{X: x - 2*th, Y: th, Z: z - 2*th}, pos: r3.Vec{Y: y - th}},
		"left":   {size: r3.Vec{X: th, Y: y - th, Z: z - 2*th}, pos: r3.Vec{X: -x + th, Y: th}},
		"right":  {size: r3.Vec{X: th, Y: y - th, Z: z - 2*th}, pos: r3.Vec{X: x - th, Y: th}},
	}
}

// addBoxes emits one named box per resolved element.
func (f *Fixture) addBoxes(elems map[string]dims) {
	for role, d := range elems {
		f.tree.AddBox(&scene.Box{Name: f.qual(role), Half: d.size, Pos: d.pos})
	}
}

// addDoor builds a styled door panel through the panel factory and merges
// it under parent (nil attaches it as static geometry, for non-openable
// fronts). w, h, th are full sizes; the configured door gap is applied to
// width and height. With panel style "none" no door is attached.
func (f *Fixture) addDoor(w, h, th float64, pos r3.Vec, parent *scene.Body,
	hpos panel.HPos, vpos panel.VPos, orient panel.Orientation, role string) error {

	handle := f.spec.HandleStyle
	if f.variant == VariantPanel {
		handle = panel.HandleNone
	}

	asm, err := panel.Build(panel.Options{
		Name:         f.qual(role),
		Width:        w - f.spec.DoorGap,
		Height:       h - f.spec.DoorGap,
		Thickness:    th,
		Style:        f.spec.PanelStyle,
		Handle:       handle,
		HandleHPos:   hpos,
		HandleVPos:   vpos,
		HandleOrient: orient,
		HandleConfig: f.spec.HandleConfig,
		Texture:      resolveTexture(f.spec.Texture),
	})
	if err != nil {
		return err
	}
	if asm == nil {
		return nil
	}
	asm.Pos = pos
	f.tree.Merge(asm, parent)
	return nil
}

// setBoundsSites records the named reference points and publishes them on
// the tree. When body is non-nil the sites attach to that body and track
// its joint, which is how the drawer's interior box follows the slide.
func (f *Fixture) setBoundsSites(sites map[string]r3.Vec, body *scene.Body) {
	for name, p := range sites {
		f.sites[name] = p
		if body != nil {
			body.SetSite(f.qual(name), p)
		} else {
			f.tree.SetSite(f.qual(name), p)
		}
	}
}

// boxBoundsSites derives the standard eight sites for a simple box
// exterior with uniform wall thickness: interior corners inset by the full
// thickness on every face. x, y, z, th are half sizes.
func boxBoundsSites(x, y, z, th float64) (ext, int_ map[string]r3.Vec) {
	ext = map[string]r3.Vec{
		"ext_p0": {X: -x, Y: -y, Z: -z},
		"ext_px": {X: x, Y: -y, Z: -z},
		"ext_py": {X: -x, Y: y, Z: -z},
		"ext_pz": {X: -x, Y: -y, Z: z},
	}
	int_ = map[string]r3.Vec{
		"int_p0": {X: -x + 2*th, Y: -y + 2*th, Z: -z + 2*th},
		"int_px": {X: x - 2*th, Y: -y + 2*th, Z: -z + 2*th},
		"int_py": {X: -x + 2*th, Y: y - 2*th, Z: -z + 2*th},
		"int_pz": {X: -x + 2*th, Y: -y + 2*th, Z: z - 2*th},
	}
	return ext, int_
}

// BoundingSites are the eight named corners of the exterior shell and
// interior cavity, in the fixture's local frame.
type BoundingSites struct {
	ExtP0, ExtPX, ExtPY, ExtPZ r3.Vec
	IntP0, IntPX, IntPY, IntPZ r3.Vec
}

// Bounds returns the current bounding sites. They are stable derivations
// of the spec for every variant except the drawer, whose interior sites
// track the slide position after UpdateState.
func (f *Fixture) Bounds() BoundingSites {
	return BoundingSites{
		ExtP0: f.sites["ext_p0"],
		ExtPX: f.sites["ext_px"],
		ExtPY: f.sites["ext_py"],
		ExtPZ: f.sites["ext_pz"],
		IntP0: f.sites["int_p0"],
		IntPX: f.sites["int_px"],
		IntPY: f.sites["int_py"],
		IntPZ: f.sites["int_pz"],
	}
}
