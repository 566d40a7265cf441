package scene

import (
	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/math"
)

// ComposedTransform pairs a node's accumulated global transform with its
// transform relative to the parent.
type ComposedTransform struct {
	Global math.Mat4
	Local  math.Mat4
}

// Compose builds a node's transforms from its raw properties and the
// parent's composed transform. Parent is nil for document roots.
func Compose(model *document.Model, parent *ComposedTransform) ComposedTransform {
	local := localTransform(model)
	if parent == nil {
		return ComposedTransform{Global: local, Local: local}
	}
	global := parent.Global.Mul(local)
	return ComposedTransform{
		Global: global,
		Local:  parent.Global.Inverse().Mul(global),
	}
}

// localTransform folds the raw node properties into a single matrix:
//
//	T * (Rp * R * Rp^-1) * (Sp * S * Sp^-1)
//
// where Rp and Sp translate to the rotation and scaling pivots and R
// applies the Euler angles in X, Y, Z order.
func localTransform(m *document.Model) math.Mat4 {
	t := vec3f(m.Translation)
	rp := vec3f(m.RotationPivot)
	sp := vec3f(m.ScalingPivot)
	s := vec3f(m.Scaling)

	r := math.RotateEuler(
		math.Radians(float32(m.Rotation[0])),
		math.Radians(float32(m.Rotation[1])),
		math.Radians(float32(m.Rotation[2])),
	)

	rotation := math.Translate(rp.X, rp.Y, rp.Z).
		Mul(r).
		Mul(math.Translate(-rp.X, -rp.Y, -rp.Z))
	scaling := math.Translate(sp.X, sp.Y, sp.Z).
		Mul(math.Scale(s.X, s.Y, s.Z)).
		Mul(math.Translate(-sp.X, -sp.Y, -sp.Z))

	return math.Translate(t.X, t.Y, t.Z).Mul(rotation).Mul(scaling)
}

func vec3f(v [3]float64) math.Vec3 {
	return math.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}
