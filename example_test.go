package meshsimplify_test

import (
	"context"
	"fmt"

	"github.com/zune-rts/meshsimplify"
)

// ExampleSimplify builds a flat 3x3 grid (8 triangles, 9 vertices) and
// simplifies it with a generous error budget. Every interior vertex is
// exactly coplanar with its neighbours, so all five collapsible vertices
// fold away for free, leaving the four corners and the two triangles of
// the bounding quad.
func ExampleSimplify() {
	m := meshsimplify.NewMesh()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.AddVertex(float64(x), float64(y), 0)
		}
	}
	idx := func(x, y int) uint32 { return uint32(y*3 + x) }
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			m.AddTriangleIndices(a, b, c)
			m.AddTriangleIndices(a, c, d)
		}
	}

	opts := meshsimplify.DefaultOptions()
	opts.ErrorBudget = 1e6

	res, err := meshsimplify.Simplify(context.Background(), m, opts)
	if err != nil {
		fmt.Println("simplify failed:", err)
		return
	}

	fmt.Printf("collapses=%d vertices=%d triangles=%d\n",
		res.CollapseCount, m.VertexCount(), m.TriangleCount())
	// Output: collapses=5 vertices=4 triangles=2
}
