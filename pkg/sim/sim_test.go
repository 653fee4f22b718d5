package sim

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/scene"
)

const eps = 1e-9

func approx(a, b r3.Vec) bool {
	d := r3.Sub(a, b)
	return math.Abs(d.X) < eps && math.Abs(d.Y) < eps && math.Abs(d.Z) < eps
}

func hingeTree() *scene.Tree {
	tr := scene.NewTree("cab")
	joint := &scene.Joint{
		Name:   "cab_doorhinge",
		Kind:   scene.JointHinge,
		Axis:   r3.Vec{Z: 1},
		Anchor: r3.Vec{X: 1},
	}
	body := &scene.Body{Name: "cab_hingedoor", Joint: joint}
	body.SetSite("cab_grip", r3.Vec{X: 0})
	tr.AddBody(body)
	return tr
}

func TestJointReadWrite(t *testing.T) {
	w := NewWorld()
	w.Attach(hingeTree(), func() r3.Vec { return r3.Vec{} })

	v, err := w.JointValue("cab_doorhinge")
	if err != nil {
		t.Fatalf("JointValue failed: %v", err)
	}
	if v != 0 {
		t.Errorf("joints must start closed, got %g", v)
	}

	if err := w.SetJointValue("cab_doorhinge", 1.2); err != nil {
		t.Fatalf("SetJointValue failed: %v", err)
	}
	w.Forward()
	v, _ = w.JointValue("cab_doorhinge")
	if v != 1.2 {
		t.Errorf("expected 1.2, got %g", v)
	}
}

func TestUnknownNames(t *testing.T) {
	w := NewWorld()
	w.Attach(hingeTree(), func() r3.Vec { return r3.Vec{} })

	if _, err := w.JointValue("nope"); !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("expected ErrUnknownJoint, got %v", err)
	}
	if err := w.SetJointValue("nope", 1); !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("expected ErrUnknownJoint, got %v", err)
	}
	if _, err := w.SitePos("nope"); !errors.Is(err, ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestRootSiteFollowsFixturePos(t *testing.T) {
	tr := scene.NewTree("cab")
	tr.SetSite("cab_ext_p0", r3.Vec{X: -1, Y: -1, Z: -1})

	pos := r3.Vec{X: 10}
	w := NewWorld()
	w.Attach(tr, func() r3.Vec { return pos })

	p, err := w.SitePos("cab_ext_p0")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(p, r3.Vec{X: 9, Y: -1, Z: -1}) {
		t.Errorf("unexpected site pos %v", p)
	}

	// Re-positioning is observed without re-attachment.
	pos = r3.Vec{X: 20}
	p, _ = w.SitePos("cab_ext_p0")
	if !approx(p, r3.Vec{X: 19, Y: -1, Z: -1}) {
		t.Errorf("unexpected site pos after move %v", p)
	}
}

func TestHingeSitePose(t *testing.T) {
	w := NewWorld()
	w.Attach(hingeTree(), func() r3.Vec { return r3.Vec{} })

	// The grip sits one unit left of the anchor; a +pi/2 swing about +z
	// carries it to one unit below the anchor in y.
	if err := w.SetJointValue("cab_doorhinge", math.Pi/2); err != nil {
		t.Fatal(err)
	}
	w.Forward()

	p, err := w.SitePos("cab_grip")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(p, r3.Vec{X: 1, Y: -1}) {
		t.Errorf("expected (1, -1, 0), got %v", p)
	}
}

func TestSlideSitePose(t *testing.T) {
	tr := scene.NewTree("dwr")
	joint := &scene.Joint{
		Name: "dwr_slidejoint",
		Kind: scene.JointSlide,
		Axis: r3.Vec{Y: 1},
	}
	body := &scene.Body{Name: "dwr_inner_box", Joint: joint}
	body.SetSite("dwr_int_p0", r3.Vec{X: -0.2, Y: -0.2, Z: -0.1})
	tr.AddBody(body)

	w := NewWorld()
	w.Attach(tr, func() r3.Vec { return r3.Vec{} })

	if err := w.SetJointValue("dwr_slidejoint", -0.25); err != nil {
		t.Fatal(err)
	}
	w.Forward()

	p, err := w.SitePos("dwr_int_p0")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(p, r3.Vec{X: -0.2, Y: -0.45, Z: -0.1}) {
		t.Errorf("expected slide along -y, got %v", p)
	}
}

func TestBodySiteAtZeroPose(t *testing.T) {
	tr := hingeTree()
	w := NewWorld()
	w.Attach(tr, func() r3.Vec { return r3.Vec{Z: 0.4} })

	p, err := w.SitePos("cab_grip")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(p, r3.Vec{Z: 0.4}) {
		t.Errorf("closed pose should only offset by fixture pos, got %v", p)
	}
}
