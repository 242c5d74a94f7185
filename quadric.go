package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// quadric is a symmetric 4x4 error matrix stored as its 10 independent
// entries, in the order a11, a12, a13, a14, a22, a23, a24, a33, a34, a44
// (spec §3). It is always positive semidefinite: it is built only as a sum
// of outer products of homogeneous plane vectors with themselves.
type quadric struct {
	a [10]float64
}

// planeQuadric builds the quadric for a single plane (n, d) with
// n·x + d = 0: the outer product of (n.X, n.Y, n.Z, d) with itself.
func planeQuadric(n mgl64.Vec3, d float64) quadric {
	a, b, c := n.X(), n.Y(), n.Z()
	return quadric{a: [10]float64{
		a * a, a * b, a * c, a * d,
		b * b, b * c, b * d,
		c * c, c * d,
		d * d,
	}}
}

func (q quadric) add(o quadric) quadric {
	var r quadric
	for i := range q.a {
		r.a[i] = q.a[i] + o.a[i]
	}
	return r
}

// errorAt evaluates v^T Q v at the point p (homogeneous w=1).
func (q quadric) errorAt(p mgl64.Vec3) float64 {
	x, y, z := p.X(), p.Y(), p.Z()
	a := q.a
	return a[0]*x*x + 2*a[1]*x*y + 2*a[2]*x*z + 2*a[3]*x +
		a[4]*y*y + 2*a[5]*y*z + 2*a[6]*y +
		a[7]*z*z + 2*a[8]*z +
		a[9]
}

// buildQuadrics is component C. It sums one plane quadric per incident
// face into every vertex, then adds a boundary penalty quadric for every
// boundary edge to both of its endpoints: a "virtual constraint plane"
// whose normal is n × e (n the adjoining face's normal, e the edge
// direction), scaled by boundaryPenalty. This discourages a collapse from
// dragging a boundary vertex off the boundary.
func buildQuadrics(t *topology, positions []mgl64.Vec3, boundaryPenalty float64) []quadric {
	qs := make([]quadric, len(positions))

	for f, n := range t.faceNormal {
		// Any vertex of the face lies on its plane; use the face's first
		// half-edge origin.
		v0 := positions[t.he[3*f].origin]
		d := -n.Dot(v0)
		fq := planeQuadric(n, d)

		for k := 0; k < 3; k++ {
			origin := t.he[3*f+k].origin
			qs[origin] = qs[origin].add(fq)
		}
	}

	if boundaryPenalty == 0 {
		return qs
	}

	for i := range t.he {
		h := t.he[i]
		if h.face == noFace {
			continue
		}
		twin := t.he[h.twin]
		if twin.face != noFace {
			continue // interior edge
		}
		u := h.origin
		v := t.dest(uint32(i))
		edge := positions[v].Sub(positions[u])
		if edge.LenSqr() < 1e-20 {
			continue
		}
		edge = edge.Normalize()

		n := t.faceNormal[h.face]
		virtualNormal := n.Cross(edge)
		if virtualNormal.LenSqr() < 1e-20 {
			continue
		}
		virtualNormal = virtualNormal.Normalize()

		d := -virtualNormal.Dot(positions[u])
		pq := planeQuadric(virtualNormal, d)
		for k := range pq.a {
			pq.a[k] *= boundaryPenalty
		}

		qs[u] = qs[u].add(pq)
		qs[v] = qs[v].add(pq)
	}

	return qs
}
