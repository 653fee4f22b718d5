// Package sim defines the contract against the physics runtime that
// executes fixture joints, plus an in-memory World implementing it for
// tests and offline geometry queries. The engine never masks runtime
// errors: an unknown joint or site name means the built geometry is
// inconsistent with the runtime, which is a programming error.
package sim

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/scene"
)

// Runtime is the surface the fixture engine needs from the simulation
// backend. Callers must invoke Forward after joint writes and before any
// dependent site read.
type Runtime interface {
	// JointValue reads the current value of a named joint.
	JointValue(name string) (float64, error)
	// SetJointValue writes a joint value (radians or meters).
	SetJointValue(name string, v float64) error
	// Forward recomputes kinematics after joint writes.
	Forward()
	// SitePos returns the world position of a named site under the
	// current joint pose.
	SitePos(name string) (r3.Vec, error)
}

// Sentinel errors for unknown names.
var (
	ErrUnknownJoint = errors.New("sim: unknown joint")
	ErrUnknownSite  = errors.New("sim: unknown site")
)

// World is a minimal in-memory Runtime. It stores joint values per name
// and computes site positions analytically from the owning body's joint
// pose. Single-writer, single-reader per joint name; no internal locking.
type World struct {
	entries []worldEntry
	joints  map[string]*jointState
}

type worldEntry struct {
	tree *scene.Tree
	pos  func() r3.Vec // fixture world position, read at query time
}

type jointState struct {
	spec  *scene.Joint
	value float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{joints: make(map[string]*jointState)}
}

// Attach registers a fixture tree. pos supplies the fixture's world
// position at query time, so later re-positioning is observed without
// re-registration. Joint values start at zero (closed).
func (w *World) Attach(t *scene.Tree, pos func() r3.Vec) {
	w.entries = append(w.entries, worldEntry{tree: t, pos: pos})
	for _, j := range t.Joints() {
		w.joints[j.Name] = &jointState{spec: j}
	}
}

// JointValue implements Runtime.
func (w *World) JointValue(name string) (float64, error) {
	js, ok := w.joints[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownJoint, name)
	}
	return js.value, nil
}

// SetJointValue implements Runtime. Values are stored as given; range
// enforcement is the caller's concern, matching a raw state-vector write.
func (w *World) SetJointValue(name string, v float64) error {
	js, ok := w.joints[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJoint, name)
	}
	js.value = v
	return nil
}

// Forward implements Runtime. World computes poses lazily on each site
// read, so there is nothing to recompute here; the method exists so that
// callers keep the write-forward-read discipline real backends require.
func (w *World) Forward() {}

// SitePos implements Runtime.
func (w *World) SitePos(name string) (r3.Vec, error) {
	for _, e := range w.entries {
		base := e.pos()
		for _, s := range e.tree.Sites {
			if s.Name == name {
				return r3.Add(base, s.Pos), nil
			}
		}
		for _, b := range e.tree.Bodies {
			for _, s := range b.Sites {
				if s.Name != name {
					continue
				}
				local := r3.Add(b.Pos, s.Pos)
				return r3.Add(base, w.posedPoint(b, local)), nil
			}
		}
	}
	return r3.Vec{}, fmt.Errorf("%w: %q", ErrUnknownSite, name)
}

// posedPoint applies the body's joint pose to a fixture-local point.
func (w *World) posedPoint(b *scene.Body, p r3.Vec) r3.Vec {
	if b.Joint == nil {
		return p
	}
	js, ok := w.joints[b.Joint.Name]
	if !ok || js.value == 0 {
		return p
	}
	switch b.Joint.Kind {
	case scene.JointSlide:
		return r3.Add(p, r3.Scale(js.value, b.Joint.Axis))
	case scene.JointHinge:
		rot := r3.NewRotation(js.value, b.Joint.Axis)
		rel := r3.Sub(p, b.Joint.Anchor)
		return r3.Add(b.Joint.Anchor, rot.Rotate(rel))
	}
	return p
}
