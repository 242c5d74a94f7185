package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// degenerateFaceEpsilon is the minimum squared length a face's raw cross
// product may have before the triangle is considered degenerate (zero
// area, or its vertices collinear/coincident).
const degenerateFaceEpsilon = 1e-20

// normalizeResult is the output of Normalize: a mesh with coincident
// vertices merged and one unit normal cached per face.
type normalizeResult struct {
	positions []mgl64.Vec3
	indices   []uint32
	normals   []mgl64.Vec3
}

// Normalize is component A (Mesh Normalizer). It merges vertices that share
// a bit-identical position into a single index, rewrites the index buffer
// accordingly, and computes a unit face normal for every triangle via the
// cross product of two edge vectors (e1 × e2, the left-handed convention
// used consistently by the quadric store and the face-flip check).
//
// Returns ErrDegenerateFace if any triangle's cross product has
// (near-)zero magnitude after merging.
func Normalize(positions []mgl64.Vec3, indices []uint32) (*normalizeResult, error) {
	remap := make(map[mgl64.Vec3]uint32, len(positions))
	merged := make([]mgl64.Vec3, 0, len(positions))
	oldToNew := make([]uint32, len(positions))

	for i, p := range positions {
		if newIdx, ok := remap[p]; ok {
			oldToNew[i] = newIdx
			continue
		}
		newIdx := uint32(len(merged))
		merged = append(merged, p)
		remap[p] = newIdx
		oldToNew[i] = newIdx
	}

	newIndices := make([]uint32, len(indices))
	for i, idx := range indices {
		newIndices[i] = oldToNew[idx]
	}

	triCount := len(newIndices) / 3
	normals := make([]mgl64.Vec3, triCount)
	for f := 0; f < triCount; f++ {
		a, b, c := newIndices[3*f], newIndices[3*f+1], newIndices[3*f+2]
		v0, v1, v2 := merged[a], merged[b], merged[c]

		e1 := v1.Sub(v0)
		e2 := v2.Sub(v0)
		n := e1.Cross(e2)

		if n.LenSqr() < degenerateFaceEpsilon {
			return nil, ErrDegenerateFace
		}
		normals[f] = n.Normalize()
	}

	return &normalizeResult{positions: merged, indices: newIndices, normals: normals}, nil
}
