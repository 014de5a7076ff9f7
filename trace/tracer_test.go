package trace

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-room/geom"
	"github.com/cwbudde/algo-room/props"
)

func newTestTracer(geometry []geom.Triangle, opts ...Option) *Tracer {
	return New(geometry, props.Media().Get("air"), props.Materials(), opts...)
}

func TestTraceDirectPath(t *testing.T) {
	tr := newTestTracer(nil)

	source := geom.V(0, 0, 0)
	mic := geom.V(3, 4, 0)

	paths := tr.Trace(source, mic)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, expected 1 direct", len(paths))
	}

	direct := paths[0]
	if direct.Order != 0 {
		t.Errorf("Order = %d", direct.Order)
	}

	if math.Abs(direct.Length-5) > 1e-12 {
		t.Errorf("Length = %v, expected 5", direct.Length)
	}

	if direct.Point != source {
		t.Errorf("Point = %v, expected source position", direct.Point)
	}

	if direct.Surface != nil {
		t.Error("direct path carries a surface")
	}

	if got := direct.Arrival; math.Abs(got.X-0.6) > 1e-12 || math.Abs(got.Y-0.8) > 1e-12 {
		t.Errorf("Arrival = %v", got)
	}
}

func TestTraceDirectAttenuation(t *testing.T) {
	medium := props.Media().Get("air")
	tr := newTestTracer(nil)

	const dist = 10.0
	paths := tr.Trace(geom.V(0, 0, 0), geom.V(dist, 0, 0))

	for b := 0; b < props.NumBands; b++ {
		expected := (1 / dist) * math.Exp(-medium.Attenuation*dist*props.Bands[b]/1000)
		if math.Abs(paths[0].Attenuation[b]-expected) > 1e-12 {
			t.Errorf("band %d: attenuation = %v, expected %v", b, paths[0].Attenuation[b], expected)
		}
	}
}

func TestTraceDistanceFloor(t *testing.T) {
	tr := newTestTracer(nil)

	// Below the 0.1 m floor the inverse-distance term clamps to 10.
	paths := tr.Trace(geom.V(0, 0, 0), geom.V(0.05, 0, 0))
	if len(paths) != 1 {
		t.Fatalf("got %d paths", len(paths))
	}

	if paths[0].Attenuation[0] > 10.0+1e-9 {
		t.Errorf("attenuation = %v, expected <= 10", paths[0].Attenuation[0])
	}
}

func TestTraceMaxDistance(t *testing.T) {
	tr := newTestTracer(nil, WithMaxDistance(5))

	if paths := tr.Trace(geom.V(0, 0, 0), geom.V(10, 0, 0)); len(paths) != 0 {
		t.Errorf("got %d paths beyond cutoff, expected 0", len(paths))
	}
}

func TestTraceExactFloorReflection(t *testing.T) {
	// A large floor plate at z=0; source and mic 1 m above it, 2 m apart.
	floor := []geom.Triangle{
		{V0: geom.V(-10, -10, 0), V1: geom.V(10, -10, 0), V2: geom.V(10, 10, 0), Material: "concrete"},
		{V0: geom.V(-10, -10, 0), V1: geom.V(10, 10, 0), V2: geom.V(-10, 10, 0), Material: "concrete"},
	}
	tr := newTestTracer(floor)

	paths := tr.Trace(geom.V(0, 0, 1), geom.V(2, 0, 1))

	var bounces []Path
	for _, p := range paths {
		if p.Order == 1 {
			bounces = append(bounces, p)
		}
	}

	if len(bounces) != 1 {
		t.Fatalf("got %d bounce paths, expected 1 (midpoint lies on one triangle)", len(bounces))
	}

	refl := bounces[0]

	// The geometric reflection point is the floor midpoint below the pair.
	if refl.Point.Sub(geom.V(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("reflection point = %v, expected (1,0,0)", refl.Point)
	}

	expectedLen := 2 * math.Sqrt2
	if math.Abs(refl.Length-expectedLen) > 1e-9 {
		t.Errorf("path length = %v, expected %v", refl.Length, expectedLen)
	}
}

func TestTraceExactRejectsOutOfTriangle(t *testing.T) {
	// A small distant plate whose mirror hit falls outside the triangle.
	plate := []geom.Triangle{
		{V0: geom.V(100, 0, 0), V1: geom.V(101, 0, 0), V2: geom.V(100, 1, 0), Material: "concrete"},
	}
	tr := newTestTracer(plate, WithMaxDistance(1000))

	paths := tr.Trace(geom.V(0, 0, 1), geom.V(2, 0, 1))

	for _, p := range paths {
		if p.Order == 1 {
			t.Errorf("unexpected bounce path via distant plate: %+v", p)
		}
	}
}

func TestTraceDegenerateSurfaceSkipped(t *testing.T) {
	degenerate := []geom.Triangle{
		{V0: geom.V(1, 1, 1), V1: geom.V(1, 1, 1), V2: geom.V(1, 1, 1), Material: "concrete"},
	}
	tr := newTestTracer(degenerate, WithPointMode(PointCentroid))

	// Must not panic; the zero-normal face is simply non-reflective.
	paths := tr.Trace(geom.V(0, 0, 0), geom.V(2, 0, 0))
	for _, p := range paths {
		if p.Order == 1 {
			t.Errorf("degenerate surface produced a path: %+v", p)
		}
	}
}

func TestTraceBoxRoomCentroid(t *testing.T) {
	// 10x8x6 concrete box, source and mic inside, legacy centroid mode:
	// 1 direct + one bounce per box triangle.
	room := geom.Box(geom.V(10, 8, 6), "concrete")
	tr := newTestTracer(room, WithPointMode(PointCentroid))

	paths := tr.Trace(geom.V(-3, -2, 1.5), geom.V(3, 2, 1.5))
	if len(paths) != 13 {
		t.Fatalf("got %d paths, expected 13 (1 direct + 12 surfaces)", len(paths))
	}

	direct := paths[0]
	if direct.Order != 0 {
		t.Fatalf("first path order = %d, expected direct", direct.Order)
	}

	if math.Abs(direct.Length-math.Sqrt(52)) > 1e-9 {
		t.Errorf("direct length = %v, expected %v", direct.Length, math.Sqrt(52))
	}

	for i, p := range paths[1:] {
		if p.Order != 1 {
			t.Errorf("path %d order = %d, expected 1", i+1, p.Order)
		}

		if p.Surface == nil {
			t.Errorf("path %d has no surface", i+1)
		}
	}
}

func TestTraceBoxRoomExact(t *testing.T) {
	// In exact mode, inside a closed box every wall still yields at most one
	// bounce per triangle, and every reported point lies on its triangle.
	room := geom.Box(geom.V(10, 8, 6), "concrete")
	tr := newTestTracer(room)

	paths := tr.Trace(geom.V(-3, -2, -1.5), geom.V(3, 2, -1.5))

	bounces := 0
	for _, p := range paths {
		if p.Order != 1 {
			continue
		}
		bounces++

		if !p.Surface.Contains(p.Point) {
			t.Errorf("reflection point %v outside its surface", p.Point)
		}

		if p.Length <= paths[0].Length {
			t.Errorf("bounce length %v not longer than direct %v", p.Length, paths[0].Length)
		}
	}

	// Each of the six walls is reachable; a wall contributes via the
	// triangle containing the specular point.
	if bounces < 6 {
		t.Errorf("got %d bounce paths, expected at least one per wall", bounces)
	}
}
