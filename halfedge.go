package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// noEdgeIdx is a placeholder twin value used only during construction,
// before every half-edge's twin has been resolved.
const noEdgeIdx = ^uint32(0)

// halfEdge is one directed half of an undirected mesh edge (spec §3). face
// is -1 for a synthetic boundary half-edge (no adjoining triangle).
type halfEdge struct {
	origin uint32
	twin   uint32
	next   uint32
	prev   uint32
	face   int32
}

const noFace = int32(-1)

// topology owns the half-edge array and the bookkeeping needed to keep it
// consistent across collapses: which half-edges/faces/vertices are still
// live, one representative outgoing half-edge per vertex, and the cached
// per-face unit normal.
type topology struct {
	he         []halfEdge
	heDead     []bool
	faceDead   []bool
	vertDead   []bool
	vertOut    []uint32 // representative outgoing half-edge per vertex
	faceNormal []mgl64.Vec3
}

func (t *topology) dest(he uint32) uint32 {
	return t.he[t.he[he].twin].origin
}

// rotateOut returns the next outgoing half-edge encountered when rotating
// around he's origin vertex. Because every half-edge (real or synthetic)
// has a valid twin, repeated application of rotateOut always closes into
// the full cycle of half-edges leaving that vertex, whether or not the
// vertex sits on a boundary.
func (t *topology) rotateOut(he uint32) uint32 {
	return t.he[t.he[he].twin].next
}

// vertexStar returns every live outgoing half-edge around v, starting from
// the vertex's representative half-edge.
func (t *topology) vertexStar(v uint32) []uint32 {
	start := t.vertOut[v]
	out := []uint32{start}
	for he := t.rotateOut(start); he != start; he = t.rotateOut(he) {
		out = append(out, he)
	}
	return out
}

// buildHalfEdges is component B. It constructs the half-edge connectivity
// for an already-normalized, indexed triangle mesh, including synthetic
// boundary half-edges closing every hole into a cycle.
//
// Returns ErrNonManifoldEdge if any undirected edge is shared by more than
// two triangles.
func buildHalfEdges(indices []uint32, normals []mgl64.Vec3, vertexCount int) (*topology, error) {
	triCount := len(indices) / 3
	he := make([]halfEdge, 3*triCount)

	for f := 0; f < triCount; f++ {
		base := uint32(3 * f)
		for k := uint32(0); k < 3; k++ {
			i := base + k
			he[i] = halfEdge{
				origin: indices[i],
				next:   base + (k+1)%3,
				prev:   base + (k+2)%3,
				face:   int32(f),
				twin:   noEdgeIdx,
			}
		}
	}

	type edgeKey struct{ a, b uint32 }
	claims := make(map[edgeKey][]uint32, len(he))
	for i := range he {
		u := he[i].origin
		v := he[he[i].next].origin
		k := edgeKey{u, v}
		if u > v {
			k = edgeKey{v, u}
		}
		claims[k] = append(claims[k], uint32(i))
	}

	isBoundary := make([]bool, len(he))
	for _, c := range claims {
		switch len(c) {
		case 1:
			isBoundary[c[0]] = true
		case 2:
			he[c[0]].twin = c[1]
			he[c[1]].twin = c[0]
		default:
			return nil, ErrNonManifoldEdge
		}
	}

	// Append one synthetic boundary half-edge per twinless real half-edge.
	for i := range he {
		if !isBoundary[i] {
			continue
		}
		s := uint32(len(he))
		he = append(he, halfEdge{
			origin: he[he[i].next].origin,
			face:   noFace,
			twin:   uint32(i),
		})
		he[i].twin = s
	}

	// Wire next/prev of the synthetic half-edges by walking the rim: for
	// each boundary real half-edge h (v1->v2), rotate through the real faces
	// incident to v2 until the real boundary edge x leaving v2 is found.
	// x's synthetic twin ends at v2, where h's synthetic twin (v2->v1)
	// starts, so x's synthetic twin becomes the prev of h's synthetic twin
	// (and, symmetrically, h's synthetic twin becomes its next).
	for i := range isBoundary {
		if !isBoundary[i] {
			continue
		}
		x := he[i].next
		for !isBoundary[x] {
			x = he[he[x].twin].next
		}
		s := he[i].twin
		sPrev := he[x].twin
		he[s].prev = sPrev
		he[sPrev].next = s
	}

	vertOut := make([]uint32, vertexCount)
	for i := range he {
		vertOut[he[i].origin] = uint32(i)
	}

	return &topology{
		he:         he,
		heDead:     make([]bool, len(he)),
		faceDead:   make([]bool, triCount),
		vertDead:   make([]bool, vertexCount),
		vertOut:    vertOut,
		faceNormal: append([]mgl64.Vec3(nil), normals...),
	}, nil
}
