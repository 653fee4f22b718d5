package fixture

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/sim"
)

func attach(t *testing.T, f *Fixture) *sim.World {
	t.Helper()
	w := sim.NewWorld()
	w.Attach(f.Tree(), f.Pos)
	return w
}

func TestSetDoorStateRangeValidation(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	w := attach(t, f)

	for _, r := range [][2]float64{{-0.1, 0.5}, {0, 1.2}, {0.8, 0.2}} {
		if err := f.SetDoorState(r[0], r[1], w, nil); err == nil {
			t.Errorf("range [%g, %g] should be rejected", r[0], r[1])
		}
	}
}

func TestSetDoorStateNilRng(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	w := attach(t, f)

	// Degenerate range needs no rng.
	if err := f.SetDoorState(0.5, 0.5, w, nil); err != nil {
		t.Fatalf("degenerate range with nil rng should work: %v", err)
	}
	// A sampling range does.
	if err := f.SetDoorState(0.2, 0.8, w, nil); err == nil {
		t.Fatal("sampling range with nil rng should fail")
	}
}

func TestNonOpenableIgnoresSetDoorState(t *testing.T) {
	f := mustBuild(t, VariantPanel, Spec{
		Name: "blind", Size: r3.Vec{X: 0.6, Y: 0.04, Z: 0.8},
	})
	if f.Openable() {
		t.Fatal("panel cabinet should not be openable")
	}
	// No runtime interaction happens, so a nil runtime must be safe.
	if err := f.SetDoorState(0, 1, nil, nil); err != nil {
		t.Fatalf("non-openable fixture must ignore the call: %v", err)
	}
}

func TestSingleDoorFractionRoundTrip(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	w := attach(t, f)

	for _, frac := range []float64{0, 0.25, 0.5, 1} {
		if err := f.SetDoorState(frac, frac, w, nil); err != nil {
			t.Fatalf("SetDoorState(%g) failed: %v", frac, err)
		}
		state, err := f.DoorState(w)
		if err != nil {
			t.Fatalf("DoorState failed: %v", err)
		}
		if got := state["door"]; math.Abs(got-frac) > eps {
			t.Errorf("round trip %g -> %g", frac, got)
		}
	}
}

func TestSingleDoorJointValueMapping(t *testing.T) {
	// Fully open means a quarter turn; the right-opening door takes the
	// positive direction, the left-opening one the negative.
	for _, tc := range []struct {
		orient Orientation
		want   float64
	}{
		{OrientRight, math.Pi / 2},
		{OrientLeft, -math.Pi / 2},
	} {
		spec := singleSpec()
		spec.Orientation = tc.orient
		f := mustBuild(t, VariantSingle, spec)
		w := attach(t, f)

		if err := f.SetDoorState(1, 1, w, nil); err != nil {
			t.Fatal(err)
		}
		v, err := w.JointValue("cab_doorhinge")
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-tc.want) > eps {
			t.Errorf("%s: joint value %g, want %g", tc.orient, v, tc.want)
		}
	}
}

func TestHingeCabinetMirroredJoints(t *testing.T) {
	f := mustBuild(t, VariantHinge, Spec{Name: "cab", Size: r3.Vec{X: 0.9, Y: 0.4, Z: 0.8}})
	w := attach(t, f)

	if err := f.SetDoorState(1, 1, w, nil); err != nil {
		t.Fatal(err)
	}
	lv, _ := w.JointValue("cab_leftdoorhinge")
	rv, _ := w.JointValue("cab_rightdoorhinge")
	if math.Abs(lv+math.Pi/2) > eps {
		t.Errorf("left door should swing negative, got %g", lv)
	}
	if math.Abs(rv-math.Pi/2) > eps {
		t.Errorf("right door should swing positive, got %g", rv)
	}

	state, err := f.DoorState(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(state) != 2 {
		t.Fatalf("expected two doors, got %v", state)
	}
	for part, frac := range state {
		if math.Abs(frac-1) > eps {
			t.Errorf("%s: fraction %g, want 1", part, frac)
		}
	}
}

func TestHingeCabinetUniformFraction(t *testing.T) {
	// One sampled fraction is applied to both doors.
	f := mustBuild(t, VariantHinge, Spec{Name: "cab", Size: r3.Vec{X: 0.9, Y: 0.4, Z: 0.8}})
	w := attach(t, f)
	rng := rand.New(rand.NewSource(7))

	if err := f.SetDoorState(0.1, 0.9, w, rng); err != nil {
		t.Fatal(err)
	}
	state, err := f.DoorState(w)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(state["left_door"]-state["right_door"]) > eps {
		t.Errorf("doors should share one fraction: %v", state)
	}
	if state["left_door"] < 0.1 || state["left_door"] > 0.9 {
		t.Errorf("fraction %g outside sampled range", state["left_door"])
	}
}

func TestDrawerTravel(t *testing.T) {
	f := mustBuild(t, VariantDrawer, Spec{Name: "dwr", Size: r3.Vec{X: 0.5, Y: 0.5, Z: 0.3}})
	w := attach(t, f)

	if err := f.SetDoorState(1, 1, w, nil); err != nil {
		t.Fatal(err)
	}
	v, err := w.JointValue("dwr_slidejoint")
	if err != nil {
		t.Fatal(err)
	}
	// Fully open pulls the drawer out toward -y by the capped travel.
	want := -DrawerTravelRatio * 0.5
	if math.Abs(v-want) > eps {
		t.Errorf("slide value %g, want %g", v, want)
	}

	state, _ := f.DoorState(w)
	if math.Abs(state["door"]-1) > eps {
		t.Errorf("fraction = %g, want 1", state["door"])
	}
}

func TestDoorStateClampsOverdriven(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	w := attach(t, f)

	// A joint value past the mapped range reads back clamped, not
	// extrapolated.
	if err := w.SetJointValue("cab_doorhinge", math.Pi); err != nil {
		t.Fatal(err)
	}
	state, err := f.DoorState(w)
	if err != nil {
		t.Fatal(err)
	}
	if state["door"] != 1 {
		t.Errorf("expected clamp to 1, got %g", state["door"])
	}

	if err := w.SetJointValue("cab_doorhinge", -0.3); err != nil {
		t.Fatal(err)
	}
	state, _ = f.DoorState(w)
	if state["door"] != 0 {
		t.Errorf("expected clamp to 0, got %g", state["door"])
	}
}

func TestDrawerUpdateState(t *testing.T) {
	f := mustBuild(t, VariantDrawer, Spec{Name: "dwr", Size: r3.Vec{X: 0.5, Y: 0.5, Z: 0.3}})
	w := attach(t, f)

	closed := f.Bounds()

	if err := f.SetDoorState(1, 1, w, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.UpdateState(w); err != nil {
		t.Fatalf("UpdateState failed: %v", err)
	}
	open := f.Bounds()

	travel := DrawerTravelRatio * 0.5
	if got := closed.IntP0.Y - open.IntP0.Y; math.Abs(got-travel) > eps {
		t.Errorf("interior should ride out by %g, moved %g", travel, got)
	}
	// Exterior sites stay put.
	if !vecApprox(open.ExtP0, closed.ExtP0) {
		t.Errorf("exterior must not move: %v vs %v", open.ExtP0, closed.ExtP0)
	}
	// x and z components are unchanged by a y slide.
	if math.Abs(open.IntP0.X-closed.IntP0.X) > eps || math.Abs(open.IntP0.Z-closed.IntP0.Z) > eps {
		t.Errorf("slide must only move y: %v vs %v", open.IntP0, closed.IntP0)
	}
}

func TestUpdateStateIgnoresNonDrawers(t *testing.T) {
	f := mustBuild(t, VariantSingle, singleSpec())
	if err := f.UpdateState(nil); err != nil {
		t.Fatalf("non-drawer UpdateState must be a no-op: %v", err)
	}
}
