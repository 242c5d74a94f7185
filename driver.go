package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// driver runs the collapse loop (spec §4.F): component F. It owns the
// per-step scratch buffer (the altered-edges list, reused and truncated
// rather than reallocated between collapses — spec §5's memory model,
// adapted from the teacher's object_pool.go index-based pool Reset()
// idiom, simplified here to a single slice since the core is
// single-threaded and needs no locking).
type driver struct {
	topo      *topology
	positions []mgl64.Vec3
	quadrics  []quadric
	cache     []edgeErrorInfo // indexed by canonical edge id, valid only while oe holds that edge live
	oe        *orderedErrors
	policy    numericPolicy

	scratch []uint32 // reused edge-id scratch buffer
}

func canonicalEdge(t *topology, he uint32) uint32 {
	tw := t.he[he].twin
	if tw < he {
		return tw
	}
	return he
}

func (d *driver) recomputeEdge(canonical uint32) {
	p := d.topo.he[canonical].origin
	q := d.topo.dest(canonical)
	info := evaluateCollapse(d.quadrics[p], d.quadrics[q], d.positions[p], d.positions[q], d.policy)
	d.cache[canonical] = info
}

// seedQueue computes the initial cost of every undirected edge and inserts
// it into the ordered-errors structure.
func (d *driver) seedQueue() {
	seen := make([]bool, len(d.topo.he))
	for he := range d.topo.he {
		c := canonicalEdge(d.topo, uint32(he))
		if seen[c] {
			continue
		}
		seen[c] = true
		d.recomputeEdge(c)
		d.oe.Insert(c, d.cache[c].err)
	}
}

// neighbours returns the set of vertices adjacent to v (the destinations
// of every live outgoing half-edge in v's star), deduplicated.
func (d *driver) neighbours(v uint32) map[uint32]bool {
	set := make(map[uint32]bool, 8)
	for _, he := range d.topo.vertexStar(v) {
		set[d.topo.dest(he)] = true
	}
	return set
}

func positionsEqual(a, b mgl64.Vec3) bool {
	const eps = 1e-12
	return a.Sub(b).LenSqr() < eps
}

// checkCommonNeighbours is spec §4.F step 1.
func (d *driver) checkCommonNeighbours(he uint32) error {
	p := d.topo.he[he].origin
	q := d.topo.dest(he)
	interior := d.topo.he[he].face != noFace && d.topo.he[d.topo.he[he].twin].face != noFace

	pn := d.neighbours(p)
	count := 0
	for v := range d.neighbours(q) {
		if pn[v] {
			count++
		}
	}

	want := 1
	if interior {
		want = 2
	}
	switch {
	case count > want:
		return errTooManyNeighbours
	case count < want:
		return errNotEnoughNeighbours
	}
	return nil
}

// checkSingularFace is spec §4.F step 2.
func (d *driver) checkSingularFace(he uint32, newPos mgl64.Vec3) error {
	h := d.topo.he[he]
	tw := d.topo.he[h.twin]
	if h.face != noFace {
		opp := d.positions[d.topo.he[h.prev].origin]
		if positionsEqual(newPos, opp) {
			return errSingularFace
		}
	}
	if tw.face != noFace {
		opp := d.positions[d.topo.he[tw.prev].origin]
		if positionsEqual(newPos, opp) {
			return errSingularFace
		}
	}
	return nil
}

// checkFaceFlip is spec §4.F step 3. It recomputes, read-only, the normal
// of every face incident to either endpoint (except the up to two faces
// the collapse will destroy) as if that endpoint had already moved to
// newPos, and rejects if any recomputed normal points away from its
// current cached normal.
func (d *driver) checkFaceFlip(he, survivor, loser uint32, newPos mgl64.Vec3) error {
	h := d.topo.he[he]
	tw := d.topo.he[h.twin]

	destroyed := map[int32]bool{}
	if h.face != noFace {
		destroyed[h.face] = true
	}
	if tw.face != noFace {
		destroyed[tw.face] = true
	}

	seen := map[int32]bool{}
	check := func(v uint32) error {
		for _, outHE := range d.topo.vertexStar(v) {
			f := d.topo.he[outHE].face
			if f == noFace || destroyed[f] || seen[f] {
				continue
			}
			seen[f] = true

			base := 3 * uint32(f)
			ids := [3]uint32{d.topo.he[base].origin, d.topo.he[base+1].origin, d.topo.he[base+2].origin}
			var pts [3]mgl64.Vec3
			for k, id := range ids {
				switch id {
				case survivor, loser:
					pts[k] = newPos
				default:
					pts[k] = d.positions[id]
				}
			}
			e1 := pts[1].Sub(pts[0])
			e2 := pts[2].Sub(pts[0])
			n := e1.Cross(e2)
			if n.Dot(d.topo.faceNormal[f]) < 0 {
				return errFaceFlip
			}
		}
		return nil
	}

	if err := check(survivor); err != nil {
		return err
	}
	return check(loser)
}

// checkDetachedVertex is spec §4.F step 4.
func (d *driver) checkDetachedVertex(he uint32) error {
	h := d.topo.he[he]
	tw := d.topo.he[h.twin]
	for _, x := range [2]halfEdge{h, tw} {
		if x.face == noFace {
			continue
		}
		outerA := d.topo.he[x.next].twin
		outerB := d.topo.he[x.prev].twin
		if d.topo.he[outerA].face == noFace && d.topo.he[outerB].face == noFace {
			return errDetachedVertex
		}
	}
	return nil
}

// collapseEdge is spec §4.F. All four validity checks run read-only
// against the current topology, so a rejected collapse never mutates
// anything — the "restore" path spec §4.F/§7 requires is simply "don't
// mutate until every check has passed" (the alternative spec §9 calls out
// explicitly as equally acceptable).
func (d *driver) collapseEdge(he uint32) error {
	p := d.topo.he[he].origin
	q := d.topo.dest(he)
	survivor, loser := p, q
	if loser < survivor {
		survivor, loser = loser, survivor
	}

	info := d.cache[canonicalEdge(d.topo, he)]

	if err := d.checkCommonNeighbours(he); err != nil {
		return err
	}
	if err := d.checkSingularFace(he, info.newPos); err != nil {
		return err
	}
	if err := d.checkFaceFlip(he, survivor, loser, info.newPos); err != nil {
		return err
	}
	if err := d.checkDetachedVertex(he); err != nil {
		return err
	}

	d.applyCollapse(he, survivor, loser, info)
	return nil
}

// applyCollapse performs the mutation once all four checks have passed.
func (d *driver) applyCollapse(he, survivor, loser uint32, info edgeErrorInfo) {
	h := d.topo.he[he]

	// A vertex's representative outgoing half-edge may be one of the
	// (up to six) half-edges this collapse is about to kill. Find a
	// replacement before anything is mutated: any live outgoing edge of
	// either endpoint, other than the doomed ones, survives the collapse
	// and ends up in the survivor's star.
	doomed := map[uint32]bool{he: true, h.twin: true}
	for _, x := range [2]uint32{he, h.twin} {
		xh := d.topo.he[x]
		if xh.face != noFace {
			doomed[xh.next] = true
			doomed[xh.prev] = true
		}
	}
	var safeStart uint32 = noEdgeIdx
	for _, oh := range d.topo.vertexStar(survivor) {
		if !doomed[oh] {
			safeStart = oh
			break
		}
	}
	loserStar := d.topo.vertexStar(loser)
	if safeStart == noEdgeIdx {
		for _, oh := range loserStar {
			if !doomed[oh] {
				safeStart = oh
				break
			}
		}
	}

	for _, oh := range loserStar {
		d.topo.he[oh].origin = survivor
	}

	d.positions[survivor] = info.newPos
	d.quadrics[survivor] = d.quadrics[survivor].add(d.quadrics[loser])

	d.scratch = d.scratch[:0]

	for _, x := range [2]uint32{he, h.twin} {
		xh := d.topo.he[x]
		if xh.face != noFace {
			f := xh.face
			d.topo.faceDead[f] = true
			b := xh.next
			c := xh.prev
			outerA := d.topo.he[b].twin
			outerB := d.topo.he[c].twin
			d.topo.he[outerA].twin = outerB
			d.topo.he[outerB].twin = outerA
			d.topo.heDead[x] = true
			d.topo.heDead[b] = true
			d.topo.heDead[c] = true
			d.scratch = append(d.scratch, canonicalEdge(d.topo, x), canonicalEdge(d.topo, b), canonicalEdge(d.topo, c))
		} else {
			p_ := xh.prev
			n_ := xh.next
			d.topo.he[p_].next = n_
			d.topo.he[n_].prev = p_
			d.topo.heDead[x] = true
			d.scratch = append(d.scratch, canonicalEdge(d.topo, x))
		}
	}

	d.topo.vertDead[loser] = true
	if safeStart != noEdgeIdx {
		d.topo.vertOut[survivor] = safeStart
	}

	newStar := d.topo.vertexStar(survivor)

	// Remove the collapsed edges from the queue, then recompute and rekey
	// every edge still incident to the survivor.
	for _, c := range d.scratch {
		d.oe.Remove(c)
	}
	for _, oh := range newStar {
		if d.topo.heDead[oh] {
			continue
		}
		c := canonicalEdge(d.topo, oh)
		d.recomputeEdge(c)
		d.oe.Rekey(c, d.cache[c].err)
	}
}
