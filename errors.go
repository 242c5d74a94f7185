package meshsimplify

import "errors"

// Sentinel errors returned by this package. Callers branch on them with
// errors.Is; they are never wrapped with formatted text at the definition
// site, only at the call site via %w where an edge/vertex/face id adds
// useful context.
var (
	// ErrNonManifoldEdge is returned by Simplify when some undirected edge
	// is shared by more than two triangles. Fatal: no half-edge mesh is built.
	ErrNonManifoldEdge = errors.New("meshsimplify: non-manifold edge")

	// ErrDegenerateFace is returned by Normalize (and so by Simplify) when
	// a triangle's three vertices are collinear or coincident, making its
	// cross product zero-length. Fatal: no mesh is built.
	ErrDegenerateFace = errors.New("meshsimplify: degenerate face")

	// ErrCancelled is returned by Simplify when the supplied context is
	// cancelled, or the configured step budget is exhausted, before the
	// error budget is reached. The mesh returned alongside it is still a
	// valid, fully-consistent mesh at whatever simplification level was
	// reached.
	ErrCancelled = errors.New("meshsimplify: cancelled")

	// errTooManyNeighbours and the errors below are local collapse-time
	// failures. The driver catches them, skips the edge, and continues;
	// they never escape Simplify.
	errTooManyNeighbours   = errors.New("meshsimplify: edge endpoints share more than the expected common neighbours")
	errNotEnoughNeighbours = errors.New("meshsimplify: edge endpoints share fewer than the expected common neighbours")
	errSingularFace        = errors.New("meshsimplify: collapse would create a zero-area triangle")
	errFaceFlip            = errors.New("meshsimplify: collapse would flip a face normal")
	errDetachedVertex      = errors.New("meshsimplify: collapse would leave the surviving vertex with no incident face")
)
