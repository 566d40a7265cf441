package scene

import "github.com/pkg/errors"

// Triangulate splits one polygon into triangles. The face is given as its
// vertex positions in winding order; the result indexes into the face and
// must preserve that winding. Implementations may use the positions to
// pick a split but must not reorder or drop vertices.
type Triangulate func(face [][3]float32) ([][3]int, error)

// FanTriangulate splits a convex polygon into a fan anchored at its first
// vertex. It is the default strategy.
func FanTriangulate(face [][3]float32) ([][3]int, error) {
	if len(face) < 3 {
		return nil, errors.Errorf("polygon has %d vertices, need at least 3", len(face))
	}
	tris := make([][3]int, 0, len(face)-2)
	for i := 2; i < len(face); i++ {
		tris = append(tris, [3]int{0, i - 1, i})
	}
	return tris, nil
}
