package scene

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestQuatFromUnitVectors(t *testing.T) {
	tests := []struct {
		name string
		to   Vec3
	}{
		{"same", UnitY},
		{"x", UnitX},
		{"z", UnitZ},
		{"opposite", Vec3{0, -1, 0}},
		{"diagonal", Vec3{1, 1, 1}.Normalize()},
		{"neg x", Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromUnitVectors(UnitY, tt.to)
			got := q.Rotate(UnitY)
			if !got.ApproxEqual(tt.to, 1e-9) {
				t.Errorf("rotated +Y = %+v, want %+v", got, tt.to)
			}
		})
	}
}

func TestQuatMul(t *testing.T) {
	a := QuatFromAxisAngle(UnitZ, math.Pi/2)
	b := QuatFromAxisAngle(UnitX, math.Pi/2)
	got := a.Mul(b).Rotate(UnitY)
	want := a.Rotate(b.Rotate(UnitY))
	if !got.ApproxEqual(want, eps) {
		t.Errorf("composition mismatch: %+v vs %+v", got, want)
	}
}

func TestCross(t *testing.T) {
	if got := UnitX.Cross(UnitY); !got.ApproxEqual(UnitZ, eps) {
		t.Errorf("x cross y = %+v", got)
	}
}

func TestWorldTransform(t *testing.T) {
	root := NewGroup("root")
	root.Scale = 2
	root.Position = Vec3{1, 0, 0}
	child := NewSphere("s", 0.5, "#fff")
	child.Position = Vec3{0, 1, 0}
	root.Add(child)

	if got := child.WorldPosition(); !got.ApproxEqual(Vec3{1, 2, 0}, eps) {
		t.Errorf("world position = %+v", got)
	}
	if got := child.WorldScale(); got != 2 {
		t.Errorf("world scale = %v", got)
	}
}

func TestOrbitPlanes(t *testing.T) {
	tests := []struct {
		plane int
		want  Vec3
	}{
		{0, Vec3{0, 2, 0.1}},
		{1, Vec3{0, 0.1, 2}},
		{2, Vec3{0.1, 0, 2}},
	}
	for _, tt := range tests {
		o := Orbit{Radius: 2, Speed: 1, Phase: math.Pi / 2, Plane: tt.plane, Lift: 0.1}
		if got := o.At(0); !got.ApproxEqual(tt.want, 1e-9) {
			t.Errorf("plane %d: got %+v, want %+v", tt.plane, got, tt.want)
		}
	}
}

func buildTree() *Node {
	root := NewGroup("model")
	root.Add(
		NewSphere("a", 0.3, "#f00"),
		NewCylinder("bond", 0.05, 1, "#fff"),
		NewLabel("H", "#fff"),
		NewGroup("inner").Add(NewTorus("ring", 1, 0.02, "#00f")),
	)
	return root
}

func TestResources_AcquireRelease(t *testing.T) {
	res := NewResources()
	root := buildTree()

	got := res.Acquire(root)
	want := Counts{Geometries: 4, Materials: 4, Textures: 1}
	if got != want {
		t.Fatalf("acquired %+v, want %+v", got, want)
	}
	if res.Live() != want {
		t.Errorf("live %+v", res.Live())
	}

	res.Release(root)
	if res.Live().Total() != 0 {
		t.Errorf("expected nothing live, got %+v", res.Live())
	}

	if freed := res.Release(root); freed.Total() != 0 {
		t.Errorf("second release freed %+v", freed)
	}
	if res.Live().Total() != 0 {
		t.Errorf("double release changed counts: %+v", res.Live())
	}
}

func TestCountAndFind(t *testing.T) {
	root := buildTree()
	if n := root.Count(KindSphere); n != 1 {
		t.Errorf("expected 1 sphere, got %d", n)
	}
	if root.Find("ring") == nil {
		t.Error("ring not found")
	}
	ring := root.Find("ring")
	ring.Detach()
	if root.Count(KindTorus) != 0 {
		t.Error("detached torus still counted")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	x, y, _, _, ok := cam.Project(Vec3{}, 80, 40, 1)
	if !ok || x != 40 || y != 20 {
		t.Errorf("origin projected to (%v,%v,%v)", x, y, ok)
	}
	_, _, _, _, ok = cam.Project(Vec3{0, 0, 10}, 80, 40, 1)
	if ok {
		t.Error("point behind the camera should not project")
	}
	x1, _, _, _, _ := cam.Project(Vec3{1, 0, 0}, 80, 40, 1)
	if x1 <= 40 {
		t.Errorf("+X should land right of centre, got %v", x1)
	}

	cam.Orbit(1, 1)
	cam.ZoomIn()
	cam.Reset()
	if cam.RotX != 0 || cam.RotY != 0 || cam.Zoom != 1 || cam.FOV != DefaultFOV {
		t.Errorf("reset left %+v", cam)
	}
}

func TestLighting(t *testing.T) {
	lights := DefaultLights()
	lit := Lighting(lights, Vec3{1, 1, 1}.Normalize())
	dark := Lighting(lights, Vec3{-1, -1, -1}.Normalize())
	if lit <= dark {
		t.Errorf("facing the light should be brighter: %v <= %v", lit, dark)
	}
	if math.Abs(dark-0.25) > 1e-9 {
		t.Errorf("back face should only see ambient, got %v", dark)
	}
}
