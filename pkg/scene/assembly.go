package scene

import "gonum.org/v1/gonum/spatial/r3"

// Assembly is a self-contained sub-tree (geometry plus its own material
// bindings) produced by a factory and merged into a parent tree exactly
// once. Box positions are expressed relative to Pos until the merge, at
// which point they are rebased into the parent frame.
type Assembly struct {
	Name      string
	Pos       r3.Vec
	Boxes     []*Box
	Materials []*Material

	merged bool
}

// AddBox attaches a box to the assembly, positioned relative to Pos.
func (a *Assembly) AddBox(b *Box) {
	a.Boxes = append(a.Boxes, b)
}

// AddMaterial attaches a material binding.
func (a *Assembly) AddMaterial(m *Material) {
	a.Materials = append(a.Materials, m)
}

// Merged reports whether the assembly has already been merged into a tree.
func (a *Assembly) Merged() bool {
	return a.merged
}

// Merge folds an assembly into the tree. When parent is non-nil the
// assembly's geometry lands on that body and moves with its joint;
// otherwise it becomes static root geometry. Merging transfers ownership:
// a second call is a no-op, so callers need not track merge state.
func (t *Tree) Merge(a *Assembly, parent *Body) {
	if a.merged {
		return
	}
	a.merged = true

	for _, b := range a.Boxes {
		b.Pos = r3.Add(b.Pos, a.Pos)
		if parent != nil {
			parent.Boxes = append(parent.Boxes, b)
		} else {
			t.Boxes = append(t.Boxes, b)
		}
		t.index[b.Name] = b
	}
	for _, m := range a.Materials {
		if _, exists := t.index[m.Name]; exists {
			continue
		}
		t.AddMaterial(m)
	}
}
