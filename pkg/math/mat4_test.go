package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateEulerMatchesAxisOrder(t *testing.T) {
	x := float32(0.3)
	y := float32(-1.1)
	z := float32(2.4)

	got := RotateEuler(x, y, z)
	want := RotateZ(z).Mul(RotateY(y)).Mul(RotateX(x))

	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 0.0001 {
			t.Errorf("RotateEuler element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRotateEulerSingleAxis(t *testing.T) {
	// With only the X angle set, RotateEuler must collapse to RotateX.
	m := RotateEuler(float32(math.Pi/2), 0, 0)
	p := m.TransformPoint([3]float32{0, 1, 0})

	// (0,1,0) rotated 90 degrees around X becomes (0,0,1).
	if abs(p[0]) > 0.001 || abs(p[1]) > 0.001 || abs(p[2]-1) > 0.001 {
		t.Errorf("RotateEuler(pi/2,0,0): got %v, want (0, 0, 1)", p)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-float32(math.Pi)) > 0.0001 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
	if got := Radians(0); got != 0 {
		t.Errorf("Radians(0) = %f, want 0", got)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateEuler(0.5, 0.2, -0.7)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	result := m.Mul(inv)
	id := Identity()

	for i := 0; i < 16; i++ {
		if abs(result[i]-id[i]) > 0.0001 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestFromTRS(t *testing.T) {
	m := FromTRS(Vec3{1, 2, 3}, QuatIdentity(), Vec3{2, 2, 2})
	p := m.TransformPoint([3]float32{1, 1, 1})

	// Scale first, then translate.
	expected := [3]float32{3, 4, 5}
	if abs(p[0]-expected[0]) > 0.0001 || abs(p[1]-expected[1]) > 0.0001 || abs(p[2]-expected[2]) > 0.0001 {
		t.Errorf("FromTRS transform: got %v, want %v", p, expected)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	wantT := Vec3{4, -1, 9}
	wantR := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/3))
	wantS := Vec3{2, 3, 0.5}

	m := FromTRS(wantT, wantR, wantS)
	gotT, gotR, gotS, ok := m.Decompose()
	if !ok {
		t.Fatal("Decompose reported a non-TRS matrix for a TRS input")
	}
	if abs(gotT.X-wantT.X) > 0.001 || abs(gotT.Y-wantT.Y) > 0.001 || abs(gotT.Z-wantT.Z) > 0.001 {
		t.Errorf("Decompose translation: got %v, want %v", gotT, wantT)
	}
	if abs(gotS.X-wantS.X) > 0.001 || abs(gotS.Y-wantS.Y) > 0.001 || abs(gotS.Z-wantS.Z) > 0.001 {
		t.Errorf("Decompose scale: got %v, want %v", gotS, wantS)
	}
	// q and -q encode the same rotation.
	if d := gotR.Dot(wantR); abs(abs(d)-1) > 0.001 {
		t.Errorf("Decompose rotation: got %v, want %v (dot %f)", gotR, wantR, d)
	}
}

func TestDecomposeRejectsShear(t *testing.T) {
	m := Identity()
	m[4] = 0.5 // shear X along Y

	if _, _, _, ok := m.Decompose(); ok {
		t.Error("Decompose accepted a sheared matrix")
	}
}

func TestFromMat3x3(t *testing.T) {
	m3 := [9]float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	m4 := FromMat3x3(m3)

	// Check that 3x3 portion is preserved
	if m4[0] != 1 || m4[1] != 2 || m4[2] != 3 {
		t.Error("FromMat3x3 column 0 incorrect")
	}
	if m4[4] != 4 || m4[5] != 5 || m4[6] != 6 {
		t.Error("FromMat3x3 column 1 incorrect")
	}
	// Element [15] should be 1
	if m4[15] != 1 {
		t.Errorf("FromMat3x3 [15] should be 1, got %f", m4[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
