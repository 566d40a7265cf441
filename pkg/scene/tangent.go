package scene

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/fbxscene/pkg/math"
)

// generateTangents computes one xyzw tangent per vertex from the mesh's
// positions, normals and texture coordinates, accumulated over its
// triangles. The w component carries the bitangent handedness. The pass
// runs once over the whole mesh so primitives sharing vertex buffers also
// share tangents.
func generateTangents(positions, normals [][3]float32, uvs [][2]float32, indices []uint32) ([][4]float32, error) {
	n := len(positions)
	if len(normals) != n || len(uvs) != n {
		return nil, errors.Errorf("attribute count mismatch: pos%d uv%d normals%d", n, len(uvs), len(normals))
	}
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	tan := make([]math.Vec3, n)
	bitan := make([]math.Vec3, n)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			return nil, errors.Errorf("index %d out of range for %d vertices", maxIndex(i0, i1, i2), n)
		}

		p0 := vec3From(positions[i0])
		e1 := vec3From(positions[i1]).Sub(p0)
		e2 := vec3From(positions[i2]).Sub(p0)

		du1 := uvs[i1][0] - uvs[i0][0]
		dv1 := uvs[i1][1] - uvs[i0][1]
		du2 := uvs[i2][0] - uvs[i0][0]
		dv2 := uvs[i2][1] - uvs[i0][1]

		det := du1*dv2 - du2*dv1
		if det == 0 {
			// Degenerate UV mapping, nothing to accumulate.
			continue
		}
		r := 1 / det

		t := e1.Scale(dv2).Sub(e2.Scale(dv1)).Scale(r)
		b := e2.Scale(du1).Sub(e1.Scale(du2)).Scale(r)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tan[idx] = tan[idx].Add(t)
			bitan[idx] = bitan[idx].Add(b)
		}
	}

	out := make([][4]float32, n)
	for i := 0; i < n; i++ {
		nrm := vec3From(normals[i])
		// Gram-Schmidt against the vertex normal.
		t := tan[i].Sub(nrm.Scale(nrm.Dot(tan[i])))
		if t.Length() == 0 {
			out[i] = [4]float32{1, 0, 0, 1}
			continue
		}
		t = t.Normalize()
		w := float32(1)
		if nrm.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		out[i] = [4]float32{t.X, t.Y, t.Z, w}
	}
	return out, nil
}

func vec3From(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func maxIndex(a, b, c uint32) uint32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
