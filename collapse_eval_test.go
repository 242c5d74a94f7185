package meshsimplify

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEvaluateCollapseSinglePlaneFallsBackToMidpoint(t *testing.T) {
	// A single plane quadric (rank 1) summed from identical faces at both
	// endpoints only constrains z, which leaves Q tilde singular and
	// forces the midpoint fallback.
	n := mgl64.Vec3{0, 0, 1}
	q := planeQuadric(n, 0) // plane z=0, rank-1 quadric: only constrains z

	p := mgl64.Vec3{0, 0, 0}
	qq := mgl64.Vec3{2, 0, 0}

	policy := defaultNumericPolicy()
	info := evaluateCollapse(q, q, p, qq, policy)

	mid := p.Add(qq).Mul(0.5)
	if diff := info.newPos.Sub(mid).LenSqr(); diff > 1e-6 {
		t.Fatalf("expected midpoint fallback %v, got %v", mid, info.newPos)
	}
}

func TestEvaluateCollapseClampsSmallError(t *testing.T) {
	policy := defaultNumericPolicy()
	// A fully degenerate (zero) quadric always evaluates to exactly 0.
	var zero quadric
	info := evaluateCollapse(zero, zero, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, policy)
	if info.err != 0 {
		t.Fatalf("expected clamped-to-zero error, got %v", info.err)
	}
}

func TestEvaluateCollapseNonSingularSolvesExactly(t *testing.T) {
	// Three mutually orthogonal planes through the origin pin down a
	// unique point: the origin itself. Summing their quadrics at both
	// endpoints should make the optimal position the origin regardless of
	// where p and q actually sit, with zero residual error.
	qx := planeQuadric(mgl64.Vec3{1, 0, 0}, 0)
	qy := planeQuadric(mgl64.Vec3{0, 1, 0}, 0)
	qz := planeQuadric(mgl64.Vec3{0, 0, 1}, 0)
	sum := qx.add(qy).add(qz)

	policy := defaultNumericPolicy()
	info := evaluateCollapse(sum, quadric{}, mgl64.Vec3{5, 5, 5}, mgl64.Vec3{-5, -5, -5}, policy)

	if info.newPos.LenSqr() > 1e-9 {
		t.Fatalf("expected optimal position at origin, got %v", info.newPos)
	}
	if math.Abs(info.err) > 1e-9 {
		t.Fatalf("expected zero residual error, got %v", info.err)
	}
}

func TestSolveLU4DetectsSingularMatrix(t *testing.T) {
	m := [4][4]float64{
		{1, 1, 1, 1},
		{1, 1, 1, 1}, // duplicate row: singular
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	_, ok := solveLU4(m, [4]float64{1, 1, 0, 1}, 1e-9)
	if ok {
		t.Fatalf("expected singular matrix to be detected")
	}
}
