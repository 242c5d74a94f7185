package meshsimplify

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Options carries every tunable the core exposes beyond the spec's fixed
// four-parameter entry point: the boundary-penalty weight spec §9 leaves to
// the caller, and the two numeric-policy thresholds spec §4.D/§9 mandate but
// allow to be surfaced. A zero ErrorClamp or SingularEpsilon falls back to
// its default; a zero ErrorBudget is used as given. DefaultOptions returns
// the default for every field.
type Options struct {
	// ErrorBudget is the collapse stops once the cheapest remaining edge's
	// error exceeds this value (spec §4.F, §6).
	ErrorBudget float64

	// BoundaryPenalty scales the virtual-plane quadric added to boundary
	// vertices (spec §4.C). Spec §9 leaves the weight caller-supplied; 0
	// disables the penalty entirely.
	BoundaryPenalty float64

	// ErrorClamp is the absolute threshold below which an evaluated error
	// is clamped to zero (spec §4.D). Zero means "use the spec default",
	// 5e-6. With a negative value, only errors below that value are
	// clamped to zero.
	ErrorClamp float64

	// SingularEpsilon is the determinant threshold below which the
	// quadric solve is considered singular and the midpoint fallback is
	// used instead (spec §4.D). Zero means "use the spec default", 1e-9.
	SingularEpsilon float64

	// MaxSteps caps the number of collapse attempts Simplify will make,
	// successful or not. Zero means unlimited. Combined with the ctx
	// passed to Simplify, this is the "optional per-call step budget"
	// spec §5 describes.
	MaxSteps int
}

func (o Options) numericPolicy() numericPolicy {
	p := defaultNumericPolicy()
	if o.ErrorClamp != 0 {
		p.errorClamp = o.ErrorClamp
	}
	if o.SingularEpsilon != 0 {
		p.singularEpsilon = o.SingularEpsilon
	}
	return p
}

// DefaultOptions returns the spec's default numeric policy with an
// unlimited error budget and no boundary penalty. Callers typically copy
// this and override ErrorBudget/BoundaryPenalty.
func DefaultOptions() Options {
	d := defaultNumericPolicy()
	return Options{
		ErrorBudget:     math.Inf(1),
		BoundaryPenalty: 0,
		ErrorClamp:      d.errorClamp,
		SingularEpsilon: d.singularEpsilon,
	}
}

// SimplifyResult is returned by Simplify alongside a (possibly nil) error.
// CollapseCount is populated even when Simplify returns ErrCancelled: a
// cancelled run still leaves a fully consistent mesh at whatever level of
// simplification it reached (spec §5).
type SimplifyResult struct {
	CollapseCount int
	Stats         Stats
}

// Simplify is the core's single entry point (spec §6). It builds half-edge
// connectivity and quadrics from mesh's current buffers, then repeatedly
// collapses the cheapest valid edge until no edge can be collapsed below
// opts.ErrorBudget, ctx is cancelled, or opts.MaxSteps attempts have been
// made. On success (or on ErrCancelled) mesh's buffers are replaced in
// place with the compacted, simplified mesh via SetBuffers.
//
// Returns ErrNonManifoldEdge or ErrDegenerateFace if the input mesh fails
// the build-time checks of components A/B; in that case mesh is left
// untouched.
func Simplify(ctx context.Context, mesh MeshHandle, opts Options) (SimplifyResult, error) {
	positions := append([]mgl64.Vec3(nil), mesh.Positions()...)
	indices := append([]uint32(nil), mesh.Indices()...)

	norm, err := Normalize(positions, indices)
	if err != nil {
		return SimplifyResult{}, err
	}

	topo, err := buildHalfEdges(norm.indices, norm.normals, len(norm.positions))
	if err != nil {
		return SimplifyResult{}, err
	}

	quadrics := buildQuadrics(topo, norm.positions, opts.BoundaryPenalty)

	d := &driver{
		topo:      topo,
		positions: norm.positions,
		quadrics:  quadrics,
		cache:     make([]edgeErrorInfo, len(topo.he)),
		oe:        newOrderedErrors(len(topo.he)),
		policy:    opts.numericPolicy(),
	}
	d.seedQueue()

	collapses, cancelled := d.run(ctx, opts.ErrorBudget, opts.MaxSteps)

	finalPositions, finalIndices := compactMesh(d.topo, d.positions)
	mesh.SetBuffers(finalPositions, finalIndices)

	res := SimplifyResult{
		CollapseCount: collapses,
		Stats:         statsOf(d.topo, finalPositions, finalIndices),
	}
	if cancelled {
		return res, ErrCancelled
	}
	return res, nil
}

// run is the collapse loop of spec §4.F. It returns the number of
// successful collapses and whether the run ended via cancellation/step
// budget rather than budget exhaustion.
//
// The "retry cursor" the spec describes is tracked explicitly as a set of
// edges already tried (and rejected) during the current sweep: each step
// asks the queue for the cheapest live, under-budget edge that is not yet
// in that set, so a uniquely-cheapest edge that permanently fails one of
// the four validity checks (e.g. a face-flip that no neighbouring collapse
// will ever undo) does not block every other, more expensive but still
// collapsible edge behind it — the loop advances past it within the same
// sweep instead of spinning on the queue's head. A sweep ends when no
// untried under-budget edge remains; if that sweep made no successful
// collapse and the one immediately before it didn't either, two
// consecutive dry sweeps have occurred and the loop terminates (spec
// §4.F). A successful collapse resets the dry-sweep streak, since it may
// have rekeyed neighbouring edges in a way that makes a previously
// rejected edge collapsible once the next sweep retries it.
func (d *driver) run(ctx context.Context, budget float64, maxSteps int) (collapses int, cancelled bool) {
	steps := 0
	tried := make(map[uint32]bool)
	progressedThisSweep := false
	consecutiveDrySweeps := 0

	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return collapses, true
			default:
			}
		}
		if maxSteps > 0 && steps >= maxSteps {
			return collapses, true
		}

		edge, _, ok := d.oe.FirstUntried(budget, tried)
		if !ok {
			if len(tried) == 0 {
				// No live edge under budget exists at all.
				return collapses, false
			}
			if progressedThisSweep {
				consecutiveDrySweeps = 0
			} else {
				consecutiveDrySweeps++
				if consecutiveDrySweeps >= 2 {
					return collapses, false
				}
			}
			tried = make(map[uint32]bool)
			progressedThisSweep = false
			continue
		}

		steps++
		if err := d.collapseEdge(edge); err != nil {
			tried[edge] = true
			continue
		}

		collapses++
		progressedThisSweep = true
	}
}
