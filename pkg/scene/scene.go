// Package scene defines the element tree a fixture is built from: named
// box primitives, movable bodies with a single joint, reference sites, and
// material bindings. A tree is owned by exactly one fixture; sub-assemblies
// (door panels, shelves) are built independently and merged in once.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// JointKind distinguishes the two supported degrees of freedom.
type JointKind int

const (
	JointHinge JointKind = iota // rotation about Axis through Anchor
	JointSlide                  // translation along Axis
)

func (k JointKind) String() string {
	switch k {
	case JointHinge:
		return "hinge"
	case JointSlide:
		return "slide"
	default:
		return "unknown"
	}
}

// Joint is a one-degree-of-freedom mechanism owned by a Body. The runtime
// references it by Name.
type Joint struct {
	Name   string
	Kind   JointKind
	Axis   r3.Vec
	Anchor r3.Vec     // position of the axis in the fixture frame
	Range  [2]float64 // valid interval: radians for hinges, meters for slides
}

// Box is a primitive under the half-extent-from-center convention: Half
// holds half the full size on each axis, Pos is the center in the frame of
// the owning body (or the fixture root for static geometry).
type Box struct {
	Name string
	Half r3.Vec
	Pos  r3.Vec
}

// Site is a named reference point used by placement logic.
type Site struct {
	Name string
	Pos  r3.Vec
}

// Material binds a name to a texture asset.
type Material struct {
	Name    string
	Texture string
	TwoD    bool
}

// Body is a movable sub-tree: all geometry and sites that share one joint.
// Sites attached to a body track the body as its joint moves.
type Body struct {
	Name  string
	Pos   r3.Vec
	Joint *Joint
	Boxes []*Box
	Sites []*Site
}

// SetSite adds or updates a body-attached site.
func (b *Body) SetSite(name string, pos r3.Vec) {
	for _, s := range b.Sites {
		if s.Name == name {
			s.Pos = pos
			return
		}
	}
	b.Sites = append(b.Sites, &Site{Name: name, Pos: pos})
}

// Tree is the complete element tree of one fixture.
type Tree struct {
	Name      string
	Boxes     []*Box
	Bodies    []*Body
	Sites     []*Site
	Materials []*Material

	index map[string]any
}

// NewTree creates an empty tree for the named fixture.
func NewTree(name string) *Tree {
	return &Tree{
		Name:  name,
		index: make(map[string]any),
	}
}

// AddBox attaches a static box to the tree root.
func (t *Tree) AddBox(b *Box) {
	t.Boxes = append(t.Boxes, b)
	t.index[b.Name] = b
}

// AddBody attaches a movable body. The body's joint, boxes, and sites become
// addressable by name.
func (t *Tree) AddBody(b *Body) {
	t.Bodies = append(t.Bodies, b)
	t.index[b.Name] = b
	if b.Joint != nil {
		t.index[b.Joint.Name] = b.Joint
	}
	for _, box := range b.Boxes {
		t.index[box.Name] = box
	}
	for _, s := range b.Sites {
		t.index[s.Name] = s
	}
}

// SetSite adds or updates a root-level site.
func (t *Tree) SetSite(name string, pos r3.Vec) {
	if s, ok := t.index[name].(*Site); ok {
		s.Pos = pos
		return
	}
	s := &Site{Name: name, Pos: pos}
	t.Sites = append(t.Sites, s)
	t.index[name] = s
}

// AddMaterial registers a material binding.
func (t *Tree) AddMaterial(m *Material) {
	t.Materials = append(t.Materials, m)
	t.index[m.Name] = m
}

// Lookup returns the element with the given name, or nil.
func (t *Tree) Lookup(name string) any {
	return t.index[name]
}

// MustLookup returns the element with the given name, or panics.
func (t *Tree) MustLookup(name string) any {
	e := t.index[name]
	if e == nil {
		panic(fmt.Sprintf("scene: no element named %q", name))
	}
	return e
}

// Box returns the named box, or nil.
func (t *Tree) Box(name string) *Box {
	b, _ := t.index[name].(*Box)
	return b
}

// Body returns the named body, or nil.
func (t *Tree) Body(name string) *Body {
	b, _ := t.index[name].(*Body)
	return b
}

// Joint returns the named joint, or nil.
func (t *Tree) Joint(name string) *Joint {
	j, _ := t.index[name].(*Joint)
	return j
}

// SitePos returns the local position of the named site, root-level or
// body-attached.
func (t *Tree) SitePos(name string) (r3.Vec, bool) {
	s, ok := t.index[name].(*Site)
	if !ok {
		return r3.Vec{}, false
	}
	return s.Pos, true
}

// Joints returns every joint in the tree.
func (t *Tree) Joints() []*Joint {
	var js []*Joint
	for _, b := range t.Bodies {
		if b.Joint != nil {
			js = append(js, b.Joint)
		}
	}
	return js
}

// RemoveBox detaches a static root-level box. Returns false if no such box
// exists. Used for open-top fixtures that drop the top wall after assembly.
func (t *Tree) RemoveBox(name string) bool {
	for i, b := range t.Boxes {
		if b.Name == name {
			t.Boxes = append(t.Boxes[:i], t.Boxes[i+1:]...)
			delete(t.index, name)
			return true
		}
	}
	return false
}
