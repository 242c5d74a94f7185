package meshsimplify

import "github.com/go-gl/mathgl/mgl64"

// numericPolicy carries the two tunable thresholds spec §4.D and §9
// mandate for the quadric solver: the absolute-error clamp and the
// singular-determinant threshold below which the midpoint fallback is
// used instead of solving for the optimal position.
type numericPolicy struct {
	errorClamp      float64
	singularEpsilon float64
}

func defaultNumericPolicy() numericPolicy {
	return numericPolicy{
		errorClamp:      5e-6,
		singularEpsilon: 1e-9,
	}
}

// edgeErrorInfo is the per-half-edge collapse cost cache (spec §3).
type edgeErrorInfo struct {
	err    float64
	newPos mgl64.Vec3
}

// evaluateCollapse is component D. Given the endpoints' summed quadric, it
// solves for the position minimizing v^T Q v subject to the homogeneous
// constraint w=1 via a pivoted LU decomposition of the 4x4 system Q̃v = e4.
// If Q̃ is singular it falls back to the midpoint of p and q.
func evaluateCollapse(qp, qq quadric, p, q mgl64.Vec3, policy numericPolicy) edgeErrorInfo {
	sum := qp.add(qq)
	a := sum.a

	// Q̃: rows 0-2 are the symmetric quadric rows, row 3 is (0,0,0,1).
	m := [4][4]float64{
		{a[0], a[1], a[2], a[3]},
		{a[1], a[4], a[5], a[6]},
		{a[2], a[5], a[7], a[8]},
		{0, 0, 0, 1},
	}
	b := [4]float64{0, 0, 0, 1}

	if x, ok := solveLU4(m, b, policy.singularEpsilon); ok {
		pos := mgl64.Vec3{x[0], x[1], x[2]}
		return edgeErrorInfo{err: clampError(sum.errorAt(pos), policy), newPos: pos}
	}

	mid := p.Add(q).Mul(0.5)
	return edgeErrorInfo{err: clampError(sum.errorAt(mid), policy), newPos: mid}
}

func clampError(err float64, policy numericPolicy) float64 {
	if err < policy.errorClamp {
		// Covers both the near-zero band (|err| < threshold) and any
		// more-negative roundoff on a form that is mathematically PSD.
		return 0
	}
	return err
}

// solveLU4 solves the 4x4 linear system m*x = b via Gaussian elimination
// with partial pivoting, performed entirely in float64. It reports ok=false
// if the matrix's determinant (the product of the pivots, sign-adjusted
// for row swaps) falls below the configured singularity threshold.
func solveLU4(m [4][4]float64, b [4]float64, singularEpsilon float64) (x [4]float64, ok bool) {
	const n = 4
	var a [n][n]float64 = m
	var rhs [n]float64 = b

	det := 1.0
	for col := 0; col < n; col++ {
		// Partial pivot: largest-magnitude entry in this column, at or
		// below the diagonal.
		pivotRow := col
		best := abs64(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := abs64(a[r][col]); v > best {
				best = v
				pivotRow = r
			}
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			rhs[col], rhs[pivotRow] = rhs[pivotRow], rhs[col]
			det = -det
		}

		pivot := a[col][col]
		det *= pivot
		if abs64(det) < 1e-300 {
			// Avoid dividing by (near) zero below; treat as singular.
			return x, false
		}

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	if abs64(det) < singularEpsilon {
		return x, false
	}

	// Back-substitution.
	for r := n - 1; r >= 0; r-- {
		sum := rhs[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, true
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
