package fixture

import (
	"fmt"
	"math/rand"

	"github.com/chazu/casework/pkg/sim"
)

// DrawerTravelRatio caps the drawer slide range at this fraction of the
// fixture depth so a sampled "fully open" drawer is not pulled clear of
// its housing. It is a tuning choice, not a physical stop: the slide
// itself can travel the full depth, and callers must not assume the
// drawer halts at fraction 1.0.
const DrawerTravelRatio = 0.55

// doorJoint maps one movable part to its joint: the normalized fraction
// f in [0,1] corresponds to joint value sign*(min + (max-min)*f).
type doorJoint struct {
	part  string // stable part key in DoorState results
	joint string // runtime joint name, "{fixture}_{role}"
	min   float64
	max   float64
	sign  float64
}

// Openable reports whether the fixture has any moving part. Resolved once
// at construction; orchestrators should test this instead of probing for
// behavior at runtime.
func (f *Fixture) Openable() bool { return len(f.doors) > 0 }

// SetDoorState re-poses every moving part to a single open-ness fraction
// sampled uniformly from [min, max]. It is a discrete re-pose, not an
// animation. rng may be nil when min == max. Fixtures without moving
// parts ignore the call. Forward kinematics are recomputed before return.
func (f *Fixture) SetDoorState(min, max float64, rt sim.Runtime, rng *rand.Rand) error {
	if min < 0 || min > 1 || max < 0 || max > 1 || min > max {
		return fmt.Errorf("fixture %q: door state range [%g, %g] outside [0, 1]",
			f.spec.Name, min, max)
	}
	if len(f.doors) == 0 {
		return nil
	}

	frac := min
	if max > min {
		if rng == nil {
			return fmt.Errorf("fixture %q: nil rng with sampling range [%g, %g]",
				f.spec.Name, min, max)
		}
		frac = min + rng.Float64()*(max-min)
	}

	for _, d := range f.doors {
		v := d.sign * (d.min + (d.max-d.min)*frac)
		if err := rt.SetJointValue(d.joint, v); err != nil {
			return err
		}
	}
	rt.Forward()
	return nil
}

// DoorState reads back the open-ness fraction of every moving part,
// keyed by part name, via the inverse of the SetDoorState map.
func (f *Fixture) DoorState(rt sim.Runtime) (map[string]float64, error) {
	state := make(map[string]float64, len(f.doors))
	for _, d := range f.doors {
		v, err := rt.JointValue(d.joint)
		if err != nil {
			return nil, err
		}
		state[d.part] = normalizeJoint(v*d.sign, d.min, d.max)
	}
	return state, nil
}

// normalizeJoint maps a sign-corrected joint value onto [0, 1].
func normalizeJoint(v, min, max float64) float64 {
	frac := (v - min) / (max - min)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
