// Package tessellate walks a fixture's element tree and produces triangle
// meshes using a geometry kernel. Static boxes mesh individually; each
// movable body is unioned into one solid and posed by its joint, so an
// exported fixture shows its doors and drawers exactly as open as the
// pose says.
package tessellate

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/scene"
)

// Pose maps joint names to joint values. Missing joints read as zero
// (closed).
type Pose map[string]float64

// Tree tessellates every part of the tree: one mesh per static box, one
// mesh per movable body. Bodies without geometry are skipped.
func Tree(t *scene.Tree, k kernel.Kernel, pose Pose) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh

	for _, box := range t.Boxes {
		m, err := finish(k, solidAt(k, box, box.Pos), box.Name)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	for _, body := range t.Bodies {
		if len(body.Boxes) == 0 {
			continue
		}
		s := bodySolid(k, body)
		s, err := applyJoint(k, s, body.Joint, pose)
		if err != nil {
			return nil, fmt.Errorf("tessellate %q: %w", body.Name, err)
		}
		m, err := finish(k, s, body.Name)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	return meshes, nil
}

// solidAt builds one box solid at a fixed center.
func solidAt(k kernel.Kernel, box *scene.Box, center r3.Vec) kernel.Solid {
	s := k.Box(2*box.Half.X, 2*box.Half.Y, 2*box.Half.Z)
	return k.Translate(s, center.X, center.Y, center.Z)
}

// bodySolid unions a body's boxes into one solid in the fixture frame. A
// door panel and its handle move as one piece, so they mesh as one part.
func bodySolid(k kernel.Kernel, body *scene.Body) kernel.Solid {
	var s kernel.Solid
	for _, box := range body.Boxes {
		bs := solidAt(k, box, r3.Add(body.Pos, box.Pos))
		if s == nil {
			s = bs
		} else {
			s = k.Union(s, bs)
		}
	}
	return s
}

// applyJoint poses a solid by its owning body's joint. A nil joint or a
// zero value leaves the solid in the closed pose.
func applyJoint(k kernel.Kernel, s kernel.Solid, j *scene.Joint, pose Pose) (kernel.Solid, error) {
	var value float64
	if j != nil {
		value = pose[j.Name]
	}
	if j == nil || value == 0 {
		return s, nil
	}

	switch j.Kind {
	case scene.JointSlide:
		d := r3.Scale(value, j.Axis)
		return k.Translate(s, d.X, d.Y, d.Z), nil
	case scene.JointHinge:
		// Rotate about the hinge anchor: move the anchor to the origin,
		// rotate, move back.
		s = k.Translate(s, -j.Anchor.X, -j.Anchor.Y, -j.Anchor.Z)
		s = k.RotateZ(s, value)
		return k.Translate(s, j.Anchor.X, j.Anchor.Y, j.Anchor.Z), nil
	default:
		return nil, fmt.Errorf("unknown joint kind %v", j.Kind)
	}
}

func finish(k kernel.Kernel, s kernel.Solid, name string) (*kernel.Mesh, error) {
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate %q: %w", name, err)
	}
	m.PartName = name
	return m, nil
}
