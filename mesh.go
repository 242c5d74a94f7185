package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// MeshHandle is the abstract accessor Simplify operates on (spec §6). The
// surrounding application (an OBJ-loaded mesh, a chunk tile, whatever owns
// the position/index buffers) implements this; the core reads the buffers,
// works on its own copies, and hands the simplified buffers back through
// SetBuffers.
type MeshHandle interface {
	VertexCount() int
	TriangleCount() int

	// Positions returns the mutable backing slice of vertex positions,
	// length VertexCount(). Simplify copies it and does not write to it.
	Positions() []mgl64.Vec3

	// Indices returns the mutable backing slice of triangle vertex
	// indices, length 3*TriangleCount(). Simplify copies it and does not
	// write to it.
	Indices() []uint32

	// SetBuffers installs the simplified buffers, replacing whatever
	// Positions/Indices previously returned.
	SetBuffers(positions []mgl64.Vec3, indices []uint32)
}

// Mesh is a minimal MeshHandle backed by plain slices. It exists so callers
// (and this package's own tests and example command) don't need to write
// their own MeshHandle just to hold an indexed triangle mesh in memory.
type Mesh struct {
	positions []mgl64.Vec3
	indices   []uint32
}

// NewMesh creates an empty indexed mesh.
func NewMesh() *Mesh {
	return &Mesh{
		positions: make([]mgl64.Vec3, 0),
		indices:   make([]uint32, 0),
	}
}

// AddVertex appends a vertex position and returns its index.
func (m *Mesh) AddVertex(x, y, z float64) uint32 {
	m.positions = append(m.positions, mgl64.Vec3{x, y, z})
	return uint32(len(m.positions) - 1)
}

// AddTriangleIndices appends the three indices of a triangle.
func (m *Mesh) AddTriangleIndices(a, b, c uint32) {
	m.indices = append(m.indices, a, b, c)
}

func (m *Mesh) VertexCount() int        { return len(m.positions) }
func (m *Mesh) TriangleCount() int      { return len(m.indices) / 3 }
func (m *Mesh) Positions() []mgl64.Vec3 { return m.positions }
func (m *Mesh) Indices() []uint32       { return m.indices }

func (m *Mesh) SetBuffers(positions []mgl64.Vec3, indices []uint32) {
	m.positions = positions
	m.indices = indices
}

// Stats summarizes a mesh at a point in time; returned by Simplify
// alongside the collapse count so callers and tests can check the
// monotonicity law of spec §8 without re-deriving it from the buffers.
type Stats struct {
	VertexCount   int
	TriangleCount int
	BoundaryEdges int
}
