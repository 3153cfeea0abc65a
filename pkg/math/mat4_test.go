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

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestTransformVec3Scale(t *testing.T) {
	m := Scale(2, 2, 2)
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformVec3 with scale: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestComposeMatchesProduct(t *testing.T) {
	tr := Vec3{1, -2, 3}
	rot := QuatFromAxisAngle(Vec3{1, 1, 0}, 0.7)
	sc := Vec3{2, 0.5, 3}

	got := Compose(tr, rot, sc)
	want := TranslateVec(tr).Mul(rot.ToMat4()).Mul(ScaleVec(sc))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Compose = %v, want %v", got, want)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tr   Vec3
		rot  Quat
		sc   Vec3
	}{
		{"identity", Vec3{}, QuatIdentity(), Vec3One()},
		{"translation only", Vec3{4, 5, 6}, QuatIdentity(), Vec3One()},
		{"rotated", Vec3{1, 2, 3}, QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/3)), Vec3One()},
		{"non-uniform", Vec3{-1, 0, 2}, QuatFromAxisAngle(Vec3{0, 1, 0}, 1.2), Vec3{2, 3, 0.5}},
		{"half turn", Vec3{}, QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi)), Vec3{1, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compose(tt.tr, tt.rot, tt.sc)
			tr, rot, sc, ok := m.Decompose()
			if !ok {
				t.Fatal("Decompose reported a degenerate matrix")
			}
			if !tr.ApproxEqual(tt.tr, 1e-5) {
				t.Errorf("translation = %v, want %v", tr, tt.tr)
			}
			if !sc.ApproxEqual(tt.sc, 1e-5) {
				t.Errorf("scale = %v, want %v", sc, tt.sc)
			}
			if !rot.ApproxEqual(tt.rot, 1e-5) {
				t.Errorf("rotation = %v, want %v", rot, tt.rot)
			}
			if !Compose(tr, rot, sc).ApproxEqual(m, 1e-4) {
				t.Error("recomposed matrix differs from original")
			}
		})
	}
}

func TestDecomposeZeroScale(t *testing.T) {
	m := Compose(Vec3{1, 1, 1}, QuatIdentity(), Vec3{1, 0, 1})
	if _, _, _, ok := m.Decompose(); ok {
		t.Error("Decompose should reject a collapsed axis")
	}
}

func TestDecomposeMirror(t *testing.T) {
	m := Scale(-1, 1, 1)
	tr, rot, sc, ok := m.Decompose()
	if !ok {
		t.Fatal("Decompose rejected a mirrored matrix")
	}
	if !Compose(tr, rot, sc).ApproxEqual(m, 1e-5) {
		t.Errorf("mirrored matrix did not round-trip: %v %v %v", tr, rot, sc)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{3, -1, 2}, QuatFromAxisAngle(Vec3{0, 1, 1}, 0.9), Vec3{2, 2, 0.5})
	inv, ok := m.InverseOK()
	if !ok {
		t.Fatal("matrix should be invertible")
	}
	if !m.Mul(inv).ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * inverse(M) = %v, want identity", m.Mul(inv))
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scale(1, 0, 1)
	if _, ok := m.InverseOK(); ok {
		t.Error("singular matrix reported invertible")
	}
	if m.Inverse() != Identity() {
		t.Error("Inverse of a singular matrix should fall back to identity")
	}
}

func TestDecomposeNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		m    Mat4
	}{
		{"all NaN", Mat4{nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan}},
		{"NaN axis", Mat4{nan, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
		{"infinite axis", Mat4{1, 0, 0, 0, 0, inf, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, ok := tt.m.Decompose(); ok {
				t.Error("Decompose accepted a non-finite matrix")
			}
		})
	}
}

func TestInverseTinyScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
		ok    bool
	}{
		{"subnormal determinant", 1e-13, false},
		{"below MinScale", 1e-7, false},
		{"small", 1e-4, true},
		{"modest", 1e-2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compose(Vec3{1, 2, 3}, QuatFromAxisAngle(Vec3{0, 1, 0}, 0.4), Vec3{tt.scale, tt.scale, tt.scale})
			inv, ok := m.InverseOK()
			if ok != tt.ok {
				t.Fatalf("InverseOK ok = %v, want %v", ok, tt.ok)
			}
			if ok && !inv.IsFinite() {
				t.Errorf("inverse is not finite: %v", inv)
			}
		})
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
