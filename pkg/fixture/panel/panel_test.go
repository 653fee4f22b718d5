package panel

import (
	"errors"
	"testing"
)

func baseOptions() Options {
	return Options{
		Name:      "cab_door",
		Width:     0.6,
		Height:    0.8,
		Thickness: 0.02,
		Style:     StyleSlab,
		Handle:    HandleNone,
	}
}

func boxNames(t *testing.T, o Options) map[string]bool {
	t.Helper()
	a, err := Build(o)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a == nil {
		t.Fatal("expected an assembly")
	}
	names := make(map[string]bool, len(a.Boxes))
	for _, b := range a.Boxes {
		names[b.Name] = true
	}
	return names
}

func TestParseStyle(t *testing.T) {
	for _, s := range []string{"slab", "shaker", "raised", "divided_window", "full_window", "none"} {
		if _, err := ParseStyle(s); err != nil {
			t.Errorf("ParseStyle(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseStyle("louvered"); !errors.Is(err, ErrUnsupportedStyle) {
		t.Errorf("expected ErrUnsupportedStyle, got %v", err)
	}
}

func TestStyleNoneBuildsNothing(t *testing.T) {
	o := baseOptions()
	o.Style = StyleNone
	a, err := Build(o)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a != nil {
		t.Fatal("StyleNone must return a nil assembly")
	}
}

func TestSlabIsASingleBox(t *testing.T) {
	names := boxNames(t, baseOptions())
	if len(names) != 1 || !names["cab_door_panel"] {
		t.Fatalf("expected exactly cab_door_panel, got %v", names)
	}
}

func TestFramedStyles(t *testing.T) {
	frame := []string{
		"cab_door_rail_top", "cab_door_rail_bottom",
		"cab_door_stile_left", "cab_door_stile_right",
	}

	tests := []struct {
		style Style
		extra []string
		count int
	}{
		{StyleShaker, []string{"cab_door_center"}, 5},
		{StyleRaised, []string{"cab_door_center"}, 5},
		{StyleFullWindow, []string{"cab_door_glass"}, 5},
		{StyleDividedWindow, []string{"cab_door_glass", "cab_door_mullion_v", "cab_door_mullion_h"}, 7},
	}

	for _, tc := range tests {
		t.Run(string(tc.style), func(t *testing.T) {
			o := baseOptions()
			o.Style = tc.style
			names := boxNames(t, o)
			if len(names) != tc.count {
				t.Fatalf("expected %d boxes, got %d: %v", tc.count, len(names), names)
			}
			for _, n := range append(frame[:len(frame):len(frame)], tc.extra...) {
				if !names[n] {
					t.Errorf("missing box %q", n)
				}
			}
		})
	}
}

func TestShakerVersusRaisedCenter(t *testing.T) {
	o := baseOptions()

	o.Style = StyleShaker
	shaker, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}
	o.Style = StyleRaised
	raised, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}

	var shakerY, raisedY float64
	for _, b := range shaker.Boxes {
		if b.Name == "cab_door_center" {
			shakerY = b.Pos.Y
		}
	}
	for _, b := range raised.Boxes {
		if b.Name == "cab_door_center" {
			raisedY = b.Pos.Y
		}
	}
	// The shaker center sits back toward +y, the raised panel stands
	// proud toward -y (the front face).
	if !(shakerY > 0) {
		t.Errorf("shaker center should be recessed (+y), got %g", shakerY)
	}
	if !(raisedY < 0) {
		t.Errorf("raised center should be proud (-y), got %g", raisedY)
	}
}

func TestNonPositiveDimensions(t *testing.T) {
	o := baseOptions()
	o.Width = 0
	if _, err := Build(o); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestBarHandlePlacement(t *testing.T) {
	o := baseOptions()
	o.Handle = HandleBar
	o.HandleHPos = HLeft
	o.HandleVPos = VTop
	o.HandleOrient = Vertical

	a, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}

	var grip, m0, m1 bool
	for _, b := range a.Boxes {
		switch b.Name {
		case "cab_door_handle_handle":
			grip = true
			if b.Pos.X >= 0 {
				t.Errorf("HLeft grip should sit at negative x, got %g", b.Pos.X)
			}
			if b.Pos.Z <= 0 {
				t.Errorf("VTop grip should sit at positive z, got %g", b.Pos.Z)
			}
			if b.Pos.Y >= -o.Thickness/2 {
				t.Errorf("grip should be in front of the face, got y=%g", b.Pos.Y)
			}
			// Vertical bar: long axis in z.
			if b.Half.Z <= b.Half.X {
				t.Errorf("vertical bar should be long in z, half=%v", b.Half)
			}
		case "cab_door_handle_mount_0":
			m0 = true
		case "cab_door_handle_mount_1":
			m1 = true
		}
	}
	if !grip || !m0 || !m1 {
		t.Fatalf("missing handle parts: grip=%v m0=%v m1=%v", grip, m0, m1)
	}
}

func TestKnobHandle(t *testing.T) {
	o := baseOptions()
	o.Handle = HandleKnob
	o.HandleHPos = HCenter
	o.HandleVPos = VCenter

	a, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}

	var grip, stem bool
	for _, b := range a.Boxes {
		switch b.Name {
		case "cab_door_handle_handle":
			grip = true
			if b.Pos.X != 0 || b.Pos.Z != 0 {
				t.Errorf("centered knob should sit at x=z=0, got %v", b.Pos)
			}
		case "cab_door_handle_stem":
			stem = true
		}
	}
	if !grip || !stem {
		t.Fatalf("missing knob parts: grip=%v stem=%v", grip, stem)
	}
}

func TestHandleConfigOverrides(t *testing.T) {
	o := baseOptions()
	o.Handle = HandleBar
	o.HandleOrient = Horizontal
	o.HandleConfig = map[string]float64{"length": 0.3, "standoff": 0.04}

	a, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range a.Boxes {
		if b.Name == "cab_door_handle_handle" {
			if got := 2 * b.Half.X; got != 0.3 {
				t.Errorf("expected bar length 0.3, got %g", got)
			}
			return
		}
	}
	t.Fatal("grip not found")
}

func TestTextureMaterial(t *testing.T) {
	o := baseOptions()
	o.Texture = "textures/oak.png"
	a, err := Build(o)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Materials) != 1 || a.Materials[0].Name != "cab_door_mat" {
		t.Fatalf("expected cab_door_mat material, got %v", a.Materials)
	}
}
