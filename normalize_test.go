package meshsimplify

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeMergesCoincidentVertices(t *testing.T) {
	// Two triangles sharing an edge, but authored as six separate
	// vertices (as an OBJ loader without welding would hand them over).
	positions := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, // triangle 1
		{1, 0, 0}, {0, 1, 0}, {1, 1, 0}, // triangle 2, shares two verts
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	res, err := Normalize(positions, indices)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(res.positions) != 4 {
		t.Fatalf("expected 4 merged vertices, got %d", len(res.positions))
	}
	if len(res.normals) != 2 {
		t.Fatalf("expected 2 face normals, got %d", len(res.normals))
	}
	for _, n := range res.normals {
		if diff := n.LenSqr() - 1; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("face normal %v not unit length", n)
		}
	}
}

func TestNormalizeRejectsDegenerateFace(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	indices := []uint32{0, 1, 2} // collinear

	_, err := Normalize(positions, indices)
	if !errors.Is(err, ErrDegenerateFace) {
		t.Fatalf("expected ErrDegenerateFace, got %v", err)
	}
}

func TestNormalizeRejectsCoincidentTriangle(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {0, 0, 0}, {1, 1, 1}}
	indices := []uint32{0, 1, 2} // first two merge, leaving a zero-area edge
	_, err := Normalize(positions, indices)
	if !errors.Is(err, ErrDegenerateFace) {
		t.Fatalf("expected ErrDegenerateFace, got %v", err)
	}
}
