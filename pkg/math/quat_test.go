package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	// Test endpoints
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// At t=0, should equal q1
	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2
	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// At t=0.5, should be halfway
	result5 := q1.Slerp(q2, 0.5)
	// For 90 degree rotation, halfway should be 45 degrees
	expectedW := float32(math.Cos(float64(math.Pi / 8))) // cos(45/2 degrees)
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatSlerpShortestPath(t *testing.T) {
	q1 := QuatFromAxisAngle(Vec3{Z: 1}, 0.2)
	q2 := QuatFromAxisAngle(Vec3{Z: 1}, 0.4)
	neg := Quat{X: -q2.X, Y: -q2.Y, Z: -q2.Z, W: -q2.W}

	got := q1.Slerp(neg, 0.5)
	want := QuatFromAxisAngle(Vec3{Z: 1}, 0.3)
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Slerp towards negated quaternion = %v, want %v", got, want)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4MatchesAxisRotations(t *testing.T) {
	angle := float32(0.8)
	tests := []struct {
		name string
		axis Vec3
		want Mat4
	}{
		{"x", Vec3{X: 1}, RotateX(angle)},
		{"y", Vec3{Y: 1}, RotateY(angle)},
		{"z", Vec3{Z: 1}, RotateZ(angle)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromAxisAngle(tt.axis, angle).ToMat4()
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("ToMat4 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulMatchesMatrixProduct(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{X: 1}, 0.5)
	b := QuatFromAxisAngle(Vec3{Y: 1, Z: 1}, 1.1)

	got := a.Mul(b).ToMat4()
	want := a.ToMat4().Mul(b.ToMat4())
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("(a*b).ToMat4() = %v, want %v", got, want)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	got := q.Rotate(Vec3{X: 1})
	if !got.ApproxEqual(Vec3{Y: 1}, 1e-5) {
		t.Errorf("Rotate((1,0,0)) = %v, want (0,1,0)", got)
	}
}

func TestQuatFromMat4(t *testing.T) {
	axes := []Vec3{{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 2, Z: 3}}
	angles := []float32{0, 0.3, 1.5, 3.0}
	for _, axis := range axes {
		for _, angle := range angles {
			want := QuatFromAxisAngle(axis, angle)
			got := QuatFromMat4(want.ToMat4())
			if !got.ApproxEqual(want, 1e-5) {
				t.Errorf("QuatFromMat4(axis=%v angle=%v) = %v, want %v", axis, angle, got, want)
			}
		}
	}
}
