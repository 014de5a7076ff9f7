// Package trace computes acoustic propagation paths between a source and a
// microphone through triangulated room geometry: the direct path plus one
// first-order specular reflection per surface, each with a per-band
// attenuation vector.
package trace

import (
	"math"

	"github.com/cwbudde/algo-room/geom"
	"github.com/cwbudde/algo-room/props"
)

// minDistance floors the inverse-distance law to avoid a singularity at
// near-zero range.
const minDistance = 0.1

// Path is one propagation path from source to microphone.
type Path struct {
	// Length is the total path length in meters.
	Length float64

	// Point is where the reflection occurred; for the direct path it is
	// the source position itself.
	Point geom.Vec3

	// Order is 0 for the direct path and 1 for a single bounce.
	Order int

	// Attenuation holds the per-band amplitude factor aligned to
	// props.Bands, combining surface reflection, inverse-distance loss,
	// and medium absorption.
	Attenuation [props.NumBands]float64

	// Arrival is the unit propagation direction at the microphone.
	Arrival geom.Vec3

	// Surface is the reflecting triangle, nil for the direct path.
	Surface *geom.Triangle
}

// PointMode selects how the reflection point on a surface is determined.
type PointMode int

const (
	// PointExact mirrors the source across the surface plane, intersects
	// the mirror-to-microphone segment with the plane, and accepts the
	// path only when the hit lies inside the triangle.
	PointExact PointMode = iota

	// PointCentroid substitutes the surface centroid for the true
	// reflection point. Cheap, accurate only for small triangles; kept
	// for compatibility with earlier renders.
	PointCentroid
)

// Tracer computes propagation paths through fixed geometry and medium.
type Tracer struct {
	geometry  []geom.Triangle
	medium    props.Medium
	materials props.MaterialTable

	maxReflections int
	maxDistance    float64
	pointMode      PointMode
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithMaxDistance sets the hard path length cutoff in meters. Paths beyond
// it are dropped silently. Default 100.
func WithMaxDistance(d float64) Option {
	return func(t *Tracer) {
		if d > 0 {
			t.maxDistance = d
		}
	}
}

// WithMaxReflections sets the reflection order cap. Only orders 0 and 1 are
// generated regardless of its value; the knob is kept for forward
// compatibility. Default 5.
func WithMaxReflections(n int) Option {
	return func(t *Tracer) {
		if n >= 0 {
			t.maxReflections = n
		}
	}
}

// WithPointMode selects the reflection point construction. Default PointExact.
func WithPointMode(mode PointMode) Option {
	return func(t *Tracer) {
		t.pointMode = mode
	}
}

// New creates a tracer over the given geometry. The medium and material
// table are captured once; callers substitute custom tables for testing.
func New(geometry []geom.Triangle, medium props.Medium, materials props.MaterialTable, opts ...Option) *Tracer {
	t := &Tracer{
		geometry:       geometry,
		medium:         medium,
		materials:      materials,
		maxReflections: 5,
		maxDistance:    100,
		pointMode:      PointExact,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// MaxDistance returns the configured path length cutoff.
func (t *Tracer) MaxDistance() float64 { return t.maxDistance }

// Trace returns the significant propagation paths from source to mic:
// the direct path (when within range) followed by one first-order
// reflection per reachable surface. Degenerate surfaces are skipped.
func (t *Tracer) Trace(source, mic geom.Vec3) []Path {
	var paths []Path

	ones := [props.NumBands]float64{1, 1, 1, 1, 1, 1}

	directDist := mic.Sub(source).Length()
	if directDist <= t.maxDistance {
		paths = append(paths, Path{
			Length:      directDist,
			Point:       source,
			Order:       0,
			Attenuation: t.attenuation(directDist, ones),
			Arrival:     mic.Sub(source).Normalize(),
		})
	}

	for i := range t.geometry {
		tri := &t.geometry[i]

		point, ok := t.reflectionPoint(source, mic, tri)
		if !ok {
			continue
		}

		length := point.Sub(source).Length() + mic.Sub(point).Length()
		if length > t.maxDistance {
			continue
		}

		mat := t.materials.Get(tri.Material)
		paths = append(paths, Path{
			Length:      length,
			Point:       point,
			Order:       1,
			Attenuation: t.attenuation(length, mat.Reflection),
			Arrival:     mic.Sub(point).Normalize(),
			Surface:     tri,
		})
	}

	return paths
}

// reflectionPoint finds where a first-order specular path bounces off tri,
// via the mirror-image construction.
func (t *Tracer) reflectionPoint(source, mic geom.Vec3, tri *geom.Triangle) (geom.Vec3, bool) {
	normal := tri.Normal()
	if normal == (geom.Vec3{}) {
		// Zero-area surface, non-reflective.
		return geom.Vec3{}, false
	}

	d := normal.Dot(tri.V0.Sub(source))
	mirror := source.Add(normal.Scale(2 * d))

	if t.pointMode == PointCentroid {
		return tri.Centroid(), true
	}

	// Source and microphone must sit on the same side of the plane for a
	// specular bounce to exist.
	sideSource := normal.Dot(source.Sub(tri.V0))
	sideMic := normal.Dot(mic.Sub(tri.V0))
	if sideSource*sideMic <= 0 {
		return geom.Vec3{}, false
	}

	// Intersect the mirror-to-microphone segment with the surface plane.
	dir := mic.Sub(mirror)
	denom := normal.Dot(dir)
	if denom == 0 {
		return geom.Vec3{}, false
	}

	s := normal.Dot(tri.V0.Sub(mirror)) / denom
	if s < 0 || s > 1 {
		return geom.Vec3{}, false
	}

	point := mirror.Add(dir.Scale(s))
	if !tri.Contains(point) {
		return geom.Vec3{}, false
	}

	return point, true
}

// attenuation combines a base per-band coefficient vector with
// inverse-distance loss and frequency-dependent medium absorption.
func (t *Tracer) attenuation(distance float64, base [props.NumBands]float64) [props.NumBands]float64 {
	distAtten := 1 / math.Max(distance, minDistance)

	var out [props.NumBands]float64
	for b := range out {
		mediumAtten := math.Exp(-t.medium.Attenuation * distance * props.Bands[b] / 1000)
		out[b] = base[b] * distAtten * mediumAtten
	}

	return out
}
