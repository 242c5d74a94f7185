// Package meshsimplify implements progressive mesh simplification of an
// indexed triangle mesh using Garland-Heckbert quadric error metrics.
//
// Simplify repeatedly collapses the globally cheapest edge of a half-edge
// mesh until no remaining edge can be collapsed below the caller's error
// budget. The half-edge connectivity, per-vertex quadrics, and the ordered
// error queue are all rebuilt incrementally around each successful collapse;
// a failed collapse (non-manifold neighbourhood, face flip, detached vertex,
// degenerate triangle) leaves every structure exactly as it was.
package meshsimplify
