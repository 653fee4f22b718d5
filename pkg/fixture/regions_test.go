package fixture

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func openSpec() Spec {
	return Spec{
		Name:       "rack",
		Size:       r3.Vec{X: 0.8, Y: 0.3, Z: 1.8},
		Thickness:  0.02,
		NumShelves: 3,
	}
}

func TestOpenShelvesGeometry(t *testing.T) {
	f := mustBuild(t, VariantOpen, openSpec())
	tr := f.Tree()

	for i := 0; i < 3; i++ {
		if tr.Box(fmt.Sprintf("rack_shelf_%d_surface", i)) == nil {
			t.Errorf("missing shelf %d", i)
		}
	}
	if len(tr.Joints()) != 0 {
		t.Error("open shelving must not have joints")
	}
	if f.Openable() {
		t.Error("open shelving must not be openable")
	}

	// The first shelf doubles as the floor, half a thickness above the
	// bottom face.
	floor := tr.Box("rack_shelf_0_surface")
	if math.Abs(floor.Pos.Z-(-0.89)) > eps {
		t.Errorf("floor shelf at z=%g, want -0.89", floor.Pos.Z)
	}
}

func TestShelfRegionsEnumerated(t *testing.T) {
	f := mustBuild(t, VariantOpen, openSpec())
	regions := f.ResetRegions()

	if len(regions) != 3*4 {
		t.Fatalf("expected 12 regions, got %d", len(regions))
	}
	for i := 0; i < 3; i++ {
		for _, s := range []string{"section_1", "section_2", "section_3", "section_4"} {
			if _, ok := regions[fmt.Sprintf("shelf_%d_%s", i, s)]; !ok {
				t.Errorf("missing region shelf_%d_%s", i, s)
			}
		}
	}
}

func TestShelfSectionsTileTheWidth(t *testing.T) {
	f := mustBuild(t, VariantOpen, openSpec())
	regions := f.ResetRegions()

	// Section centers are evenly spaced across the usable width and the
	// raw section widths sum to it.
	usable := 0.8 - 2*0.02
	sw := usable / 4
	for j := 1; j <= 4; j++ {
		r := regions[fmt.Sprintf("shelf_0_section_%d", j)]
		wantX := -0.4 + 0.02 + (float64(j-1)+0.5)*sw
		if math.Abs(r.Offset.X-wantX) > eps {
			t.Errorf("section %d center %g, want %g", j, r.Offset.X, wantX)
		}
	}
	// Shrunk extents: each is sectionShrink of the raw width.
	r := regions["shelf_0_section_1"]
	if math.Abs(r.Extent.X-sw*0.8) > eps {
		t.Errorf("section extent %g, want %g", r.Extent.X, sw*0.8)
	}
	if math.Abs(r.Extent.Y-(0.3-2*0.02)) > eps {
		t.Errorf("section depth %g, want %g", r.Extent.Y, 0.3-0.04)
	}
}

func TestRegionSitsOnShelfSurface(t *testing.T) {
	f := mustBuild(t, VariantOpen, openSpec())
	r := f.ResetRegions()["shelf_0_section_1"]

	// The region plane is the shelf's top face.
	surface := f.Tree().Box("rack_shelf_0_surface")
	top := surface.Pos.Z + surface.Half.Z
	if math.Abs(r.Offset.Z-top) > eps {
		t.Errorf("region z=%g, shelf surface z=%g", r.Offset.Z, top)
	}
}

func TestSampleResetRegionFallback(t *testing.T) {
	f := mustBuild(t, VariantOpen, openSpec())

	want := f.ResetRegions()["shelf_0_section_1"]
	got := f.SampleResetRegion(9, "section_1")
	if got != want {
		t.Errorf("out-of-range shelf should fall back to shelf_0_section_1, got %+v", got)
	}
	got = f.SampleResetRegion(0, "section_9")
	if got != want {
		t.Errorf("unknown section should fall back, got %+v", got)
	}

	in := f.ResetRegions()["shelf_2_section_3"]
	if got := f.SampleResetRegion(2, "section_3"); got != in {
		t.Errorf("valid address should resolve exactly, got %+v", got)
	}
}

func TestBottomRegionForClosedVariants(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	regions := f.ResetRegions()
	if len(regions) != 1 {
		t.Fatalf("expected only the bottom region, got %v", regions)
	}
	r, ok := regions["bottom"]
	if !ok {
		t.Fatal("missing bottom region")
	}
	// Interior floor: inset by the wall thickness all round.
	if math.Abs(r.Extent.X-(0.6-2*0.03)) > eps {
		t.Errorf("bottom width %g", r.Extent.X)
	}
	if math.Abs(r.Extent.Y-(0.4-2*0.03)) > eps {
		t.Errorf("bottom depth %g", r.Extent.Y)
	}
	if math.Abs(r.Offset.Z-(-0.4+0.03)) > eps {
		t.Errorf("bottom plane z=%g", r.Offset.Z)
	}

	// Non-shelving fixtures answer every sample with the bottom.
	if got := f.SampleResetRegion(3, "section_2"); got != r {
		t.Errorf("expected bottom region, got %+v", got)
	}
}

func TestDrawerRegionTracksSlide(t *testing.T) {
	f := mustBuild(t, VariantDrawer, Spec{Name: "dwr", Size: r3.Vec{X: 0.5, Y: 0.5, Z: 0.3}})
	w := attach(t, f)

	before := f.ResetRegions()["bottom"]
	if err := f.SetDoorState(1, 1, w, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.UpdateState(w); err != nil {
		t.Fatal(err)
	}
	after := f.ResetRegions()["bottom"]

	if before.Extent != after.Extent {
		t.Errorf("footprint should be unchanged: %v vs %v", before.Extent, after.Extent)
	}
	if before.Offset == after.Offset {
		t.Error("drawer region should ride with the slide")
	}
}
