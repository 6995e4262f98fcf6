package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestAtIsRowColumn(t *testing.T) {
	m := Translate(5, 10, 15)
	if m.At(0, 3) != 5 || m.At(1, 3) != 10 || m.At(2, 3) != 15 {
		t.Errorf("At(row, 3): got (%f, %f, %f), want (5, 10, 15)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
	if m.At(3, 0) != 0 {
		t.Errorf("At(3, 0) = %f, want 0", m.At(3, 0))
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestPerspectiveMatchesMathGLAfterClipCorrection(t *testing.T) {
	tests := []struct {
		name         string
		aspect, fovy float32
		znear, zfar  float32
	}{
		{"square 45", 1, float32(math.Pi / 4), 0.1, 100},
		{"16:9 60", 16.0 / 9.0, float32(math.Pi / 3), 0.1, 2000},
		{"portrait", 0.5, 1.2, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GLClipCorrection().Mul(Perspective(tt.aspect, tt.fovy, tt.znear, tt.zfar))
			want := mgl32.Perspective(tt.fovy, tt.aspect, tt.znear, tt.zfar)
			for i := 0; i < 16; i++ {
				if abs(got[i]-want[i]) > 1e-4 {
					t.Errorf("element %d: got %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestPerspectiveYDown(t *testing.T) {
	m := Perspective(1, float32(math.Pi/2), 0.1, 10)
	if m.At(1, 1) >= 0 {
		t.Errorf("m[1][1] should be negative in Y-down clip space, got %f", m.At(1, 1))
	}
	if m.At(3, 2) != -1 {
		t.Errorf("m[3][2] should be -1, got %f", m.At(3, 2))
	}
	if m.At(3, 3) != 0 {
		t.Errorf("m[3][3] should be 0, got %f", m.At(3, 3))
	}
}

func TestOrthographicMatchesMathGLAfterClipCorrection(t *testing.T) {
	got := GLClipCorrection().Mul(Orthographic(-4, 4, -3, 3, 0.1, 100))
	want := mgl32.Ortho(-4, 4, -3, 3, 0.1, 100)
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestOrtho2DMapsScreenCorners(t *testing.T) {
	m := Ortho2D(0, 800, 600, 0)
	tl := m.TransformPoint(Vec3{0, 0, 0})
	br := m.TransformPoint(Vec3{800, 600, 0})
	if abs(tl.X+1) > 1e-5 || abs(tl.Y-1) > 1e-5 {
		t.Errorf("top-left: got %v, want (-1, 1)", tl)
	}
	if abs(br.X-1) > 1e-5 || abs(br.Y+1) > 1e-5 {
		t.Errorf("bottom-right: got %v, want (1, -1)", br)
	}
}

func TestComposeMatchesProduct(t *testing.T) {
	tr := Vec3{1, 2, 3}
	rot := QuatFromAxisAngle(UnitY, 0.7)
	sc := Vec3{2, 3, 4}

	got := Compose(tr, rot, sc)
	want := Translate(tr.X, tr.Y, tr.Z).Mul(rot.ToMat4()).Mul(Scale(sc.X, sc.Y, sc.Z))
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{4, -2, 7}, QuatFromAxisAngle(Vec3{0, 0.6, 0.8}, 1.1), Vec3{2, 2, 2})
	p := m.Mul(m.Inverse())
	id := Identity()
	for i := 0; i < 16; i++ {
		if abs(p[i]-id[i]) > 1e-4 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, p[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", got)
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	n := Scale(2, 2, 2).NormalMatrix()
	if abs(n[0]-0.5) > 1e-6 || abs(n[4]-0.5) > 1e-6 || abs(n[8]-0.5) > 1e-6 {
		t.Errorf("NormalMatrix diagonal: got (%f, %f, %f), want 0.5", n[0], n[4], n[8])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
