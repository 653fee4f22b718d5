package scene

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestLookupAfterAdd(t *testing.T) {
	tr := NewTree("cab")

	tr.AddBox(&Box{Name: "cab_top", Half: r3.Vec{X: 1, Y: 1, Z: 0.1}})
	if tr.Box("cab_top") == nil {
		t.Fatal("expected cab_top to be addressable")
	}
	if tr.Box("cab_missing") != nil {
		t.Fatal("expected nil for unknown box")
	}

	joint := &Joint{Name: "cab_doorhinge", Kind: JointHinge, Axis: r3.Vec{Z: 1}}
	body := &Body{
		Name:  "cab_hingedoor",
		Joint: joint,
		Boxes: []*Box{{Name: "cab_door", Half: r3.Vec{X: 0.3, Y: 0.01, Z: 0.4}}},
	}
	tr.AddBody(body)

	if tr.Body("cab_hingedoor") == nil {
		t.Error("body not indexed")
	}
	if tr.Joint("cab_doorhinge") == nil {
		t.Error("joint not indexed")
	}
	if tr.Box("cab_door") == nil {
		t.Error("body box not indexed")
	}
}

func TestMustLookupPanics(t *testing.T) {
	tr := NewTree("cab")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown element")
		}
	}()
	tr.MustLookup("nope")
}

func TestSetSiteUpserts(t *testing.T) {
	tr := NewTree("cab")

	tr.SetSite("cab_ext_p0", r3.Vec{X: -1})
	tr.SetSite("cab_ext_p0", r3.Vec{X: -2})

	if len(tr.Sites) != 1 {
		t.Fatalf("expected 1 site after upsert, got %d", len(tr.Sites))
	}
	pos, ok := tr.SitePos("cab_ext_p0")
	if !ok {
		t.Fatal("site not found")
	}
	if pos.X != -2 {
		t.Errorf("expected updated X=-2, got %g", pos.X)
	}
}

func TestBodySetSiteUpserts(t *testing.T) {
	b := &Body{Name: "cab_inner_box"}
	b.SetSite("cab_int_p0", r3.Vec{X: 1})
	b.SetSite("cab_int_p0", r3.Vec{X: 2})
	if len(b.Sites) != 1 {
		t.Fatalf("expected 1 site, got %d", len(b.Sites))
	}
	if b.Sites[0].Pos.X != 2 {
		t.Errorf("expected X=2, got %g", b.Sites[0].Pos.X)
	}
}

func TestRemoveBox(t *testing.T) {
	tr := NewTree("cab")
	tr.AddBox(&Box{Name: "cab_top"})
	tr.AddBox(&Box{Name: "cab_bottom"})

	if !tr.RemoveBox("cab_top") {
		t.Fatal("expected removal to succeed")
	}
	if tr.RemoveBox("cab_top") {
		t.Fatal("expected second removal to fail")
	}
	if tr.Box("cab_top") != nil {
		t.Error("removed box still indexed")
	}
	if len(tr.Boxes) != 1 {
		t.Errorf("expected 1 box left, got %d", len(tr.Boxes))
	}
}

func TestMergeRebasesIntoParentFrame(t *testing.T) {
	tr := NewTree("cab")
	asm := &Assembly{Name: "cab_door", Pos: r3.Vec{X: 0.1, Y: -0.2}}
	asm.AddBox(&Box{Name: "cab_door_panel", Pos: r3.Vec{X: 0.05}})

	tr.Merge(asm, nil)

	b := tr.Box("cab_door_panel")
	if b == nil {
		t.Fatal("merged box not indexed")
	}
	want := r3.Vec{X: 0.15, Y: -0.2}
	if b.Pos != want {
		t.Errorf("expected rebased pos %v, got %v", want, b.Pos)
	}
	if len(tr.Boxes) != 1 {
		t.Errorf("expected box at tree root, got %d root boxes", len(tr.Boxes))
	}
}

func TestMergeOntoBody(t *testing.T) {
	tr := NewTree("cab")
	body := &Body{Name: "cab_hingedoor"}
	tr.AddBody(body)

	asm := &Assembly{Name: "cab_door"}
	asm.AddBox(&Box{Name: "cab_door_panel"})
	tr.Merge(asm, body)

	if len(body.Boxes) != 1 {
		t.Fatalf("expected box on body, got %d", len(body.Boxes))
	}
	if len(tr.Boxes) != 0 {
		t.Errorf("expected no root boxes, got %d", len(tr.Boxes))
	}
	if tr.Box("cab_door_panel") == nil {
		t.Error("body-merged box not indexed")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	tr := NewTree("cab")
	asm := &Assembly{Name: "cab_door"}
	asm.AddBox(&Box{Name: "cab_door_panel", Pos: r3.Vec{X: 1}})
	asm.AddMaterial(&Material{Name: "cab_door_mat", Texture: "wood.png"})

	tr.Merge(asm, nil)
	tr.Merge(asm, nil)

	if !asm.Merged() {
		t.Error("assembly should report merged")
	}
	if len(tr.Boxes) != 1 {
		t.Errorf("expected 1 box after double merge, got %d", len(tr.Boxes))
	}
	if len(tr.Materials) != 1 {
		t.Errorf("expected 1 material after double merge, got %d", len(tr.Materials))
	}
	// Position must not be rebased twice.
	if got := tr.Box("cab_door_panel").Pos.X; got != 1 {
		t.Errorf("expected pos X=1, got %g", got)
	}
}

func TestMergeSkipsDuplicateMaterials(t *testing.T) {
	tr := NewTree("cab")
	tr.AddMaterial(&Material{Name: "cab_mat", Texture: "a.png"})

	asm := &Assembly{Name: "cab_door"}
	asm.AddMaterial(&Material{Name: "cab_mat", Texture: "b.png"})
	tr.Merge(asm, nil)

	if len(tr.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(tr.Materials))
	}
	if tr.Materials[0].Texture != "a.png" {
		t.Errorf("existing material overwritten: %q", tr.Materials[0].Texture)
	}
}

func TestJoints(t *testing.T) {
	tr := NewTree("cab")
	tr.AddBody(&Body{Name: "a", Joint: &Joint{Name: "ja", Kind: JointHinge}})
	tr.AddBody(&Body{Name: "b"})
	tr.AddBody(&Body{Name: "c", Joint: &Joint{Name: "jc", Kind: JointSlide}})

	js := tr.Joints()
	if len(js) != 2 {
		t.Fatalf("expected 2 joints, got %d", len(js))
	}
}

func TestJointKindString(t *testing.T) {
	if JointHinge.String() != "hinge" || JointSlide.String() != "slide" {
		t.Errorf("unexpected joint kind strings: %s, %s", JointHinge, JointSlide)
	}
}
