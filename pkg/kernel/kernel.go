// Package kernel defines the abstract geometry kernel interface used to
// turn fixture box assemblies into solids and meshes. Implementations
// provide solid modeling behind this interface so backends can be swapped
// without touching the fixture code.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. Box takes full sizes
// and produces a solid centered at the origin, matching the fixture
// half-extent-from-center convention.
type Kernel interface {
	Box(x, y, z float64) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, x, y, z float64) Solid
	// RotateZ rotates about the +z axis through the origin, in radians.
	// Fixture hinges are vertical, so one rotation axis suffices.
	RotateZ(s Solid, angle float64) Solid

	ToMesh(s Solid) (*Mesh, error)
}
