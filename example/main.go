// Command meshsimplify-demo builds a subdivided grid mesh and reports how
// much a call to meshsimplify.Simplify shrinks it, for a chosen error
// budget and boundary penalty. It exists to give the library a runnable
// entry point; nothing here is part of the package's public API.
package main

import (
	"container/heap"
	"context"
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/zune-rts/meshsimplify"
)

func main() {
	grid := flag.Int("grid", 20, "subdivisions per side of the generated plane")
	budget := flag.Float64("budget", 1e6, "collapse error budget")
	penalty := flag.Float64("boundary-penalty", 10, "boundary quadric penalty weight")
	viewX := flag.Float64("view-x", 0, "LOD viewpoint X")
	viewY := flag.Float64("view-y", 0, "LOD viewpoint Y")
	viewZ := flag.Float64("view-z", 50, "LOD viewpoint Z")
	lodBuckets := flag.Int("lod-buckets", 5, "number of farthest triangles to report for LOD demotion")
	flag.Parse()

	m := buildGrid(*grid)
	beforeV, beforeT := m.VertexCount(), m.TriangleCount()

	opts := meshsimplify.DefaultOptions()
	opts.ErrorBudget = *budget
	opts.BoundaryPenalty = *penalty

	start := time.Now()
	res, err := meshsimplify.Simplify(context.Background(), m, opts)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("simplify failed: %v\n", err)
		return
	}

	fmt.Printf("grid %dx%d: %d verts / %d tris -> %d verts / %d tris (%d collapses) in %s\n",
		*grid, *grid, beforeV, beforeT, m.VertexCount(), m.TriangleCount(), res.CollapseCount, elapsed)
	fmt.Printf("boundary edges remaining: %d\n", res.Stats.BoundaryEdges)

	reportLODBuckets(m, [3]float64{*viewX, *viewY, *viewZ}, *lodBuckets)
}

// lodEntry is one candidate in the LOD-distance priority queue: a triangle
// id paired with its centroid's distance from the viewpoint.
type lodEntry struct {
	triangle int
	dist     float64
}

// lodQueue is a farthest-first max-heap over lodEntry, in the same
// container/heap.Interface shape the teacher's own EdgeHeap uses
// (mesh_simplification.go): Len/Less/Swap plus Push/Pop taking and
// returning interface{}. This has nothing to do with simplification
// itself (spec §1 places LOD streaming out of scope) — it exists purely
// to pick, post-simplification, which remaining triangles a view-distance
// LOD scheduler would demote to a coarser bucket first.
type lodQueue []lodEntry

func (q lodQueue) Len() int           { return len(q) }
func (q lodQueue) Less(i, j int) bool { return q[i].dist > q[j].dist } // farthest first
func (q lodQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *lodQueue) Push(x interface{}) {
	*q = append(*q, x.(lodEntry))
}

func (q *lodQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// reportLODBuckets buckets m's current triangles by centroid distance from
// viewpoint using a container/heap max-heap, and prints the n farthest —
// the first candidates a view-distance LOD scheduler would demote to a
// coarser simplification level.
func reportLODBuckets(m *meshsimplify.Mesh, viewpoint [3]float64, n int) {
	positions := m.Positions()
	indices := m.Indices()

	q := make(lodQueue, 0, len(indices)/3)
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := positions[indices[t]], positions[indices[t+1]], positions[indices[t+2]]
		cx := (a.X() + b.X() + c.X()) / 3
		cy := (a.Y() + b.Y() + c.Y()) / 3
		cz := (a.Z() + b.Z() + c.Z()) / 3
		dx, dy, dz := cx-viewpoint[0], cy-viewpoint[1], cz-viewpoint[2]
		q = append(q, lodEntry{triangle: t / 3, dist: math.Sqrt(dx*dx + dy*dy + dz*dz)})
	}
	heap.Init(&q)

	fmt.Printf("farthest %d triangles from viewpoint %v (first LOD-demotion candidates):\n", n, viewpoint)
	for i := 0; i < n && q.Len() > 0; i++ {
		e := heap.Pop(&q).(lodEntry)
		fmt.Printf("  triangle %d at distance %.3f\n", e.triangle, e.dist)
	}
}

// buildGrid generates an n x n subdivided flat plane, two triangles per
// grid cell, matching the layout used throughout the package's own tests.
func buildGrid(n int) *meshsimplify.Mesh {
	m := meshsimplify.NewMesh()
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.AddVertex(float64(x), float64(y), 0)
		}
	}
	idx := func(x, y int) uint32 { return uint32(y*(n+1) + x) }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			m.AddTriangleIndices(a, b, c)
			m.AddTriangleIndices(a, c, d)
		}
	}
	return m
}
