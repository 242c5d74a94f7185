package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// compactMesh is the round-trip/export step spec §8 calls "reconstruct
// indices from half-edges": it renumbers the surviving (non-collapsed)
// vertices into a dense [0, n) range and rebuilds the triangle index buffer
// from the surviving faces, dropping the dead-vertex and dead-face
// tombstones the driver leaves behind during simplification. Simplify runs
// it once, after the collapse loop.
func compactMesh(t *topology, positions []mgl64.Vec3) ([]mgl64.Vec3, []uint32) {
	remap := make([]uint32, len(positions))
	out := make([]mgl64.Vec3, 0, len(positions))
	for v, dead := range t.vertDead {
		if dead {
			continue
		}
		remap[v] = uint32(len(out))
		out = append(out, positions[v])
	}

	indices := make([]uint32, 0, 3*len(t.faceDead))
	for f, dead := range t.faceDead {
		if dead {
			continue
		}
		base := 3 * f
		indices = append(indices,
			remap[t.he[base].origin],
			remap[t.he[base+1].origin],
			remap[t.he[base+2].origin],
		)
	}

	return out, indices
}

// statsOf summarizes a compacted mesh, counting boundary edges straight from
// the half-edge topology rather than re-deriving them from the index buffer.
func statsOf(t *topology, positions []mgl64.Vec3, indices []uint32) Stats {
	boundary := 0
	for i, dead := range t.heDead {
		if dead {
			continue
		}
		if t.he[i].face == noFace {
			boundary++
		}
	}
	return Stats{
		VertexCount:   len(positions),
		TriangleCount: len(indices) / 3,
		BoundaryEdges: boundary,
	}
}
