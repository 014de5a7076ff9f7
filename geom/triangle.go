// Package geom provides the triangulated room geometry consumed by the tracer:
// vectors, material-tagged triangles, and constructors for common shapes.
package geom

// Triangle is a single triangulated surface with an associated material key.
// Triangles are immutable once constructed; derived quantities (normal,
// centroid, area) are computed on demand.
type Triangle struct {
	V0, V1, V2 Vec3
	Material   string
}

// Normal returns the unit surface normal via the cross product of two edges.
// Collinear or coincident vertices yield the zero vector.
func (t Triangle) Normal() Vec3 {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	return edge1.Cross(edge2).Normalize()
}

// Centroid returns the triangle centroid.
func (t Triangle) Centroid() Vec3 {
	return Vec3{
		X: (t.V0.X + t.V1.X + t.V2.X) / 3,
		Y: (t.V0.Y + t.V1.Y + t.V2.Y) / 3,
		Z: (t.V0.Z + t.V1.Z + t.V2.Z) / 3,
	}
}

// Area returns the triangle surface area.
func (t Triangle) Area() float64 {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	return edge1.Cross(edge2).Length() / 2
}

// Contains reports whether a point already on the triangle's plane lies
// inside the triangle, using same-side edge tests against the face normal.
func (t Triangle) Contains(p Vec3) bool {
	normal := t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
	if normal.Length() == 0 {
		return false
	}

	if t.V1.Sub(t.V0).Cross(p.Sub(t.V0)).Dot(normal) < 0 {
		return false
	}

	if t.V2.Sub(t.V1).Cross(p.Sub(t.V1)).Dot(normal) < 0 {
		return false
	}

	return t.V0.Sub(t.V2).Cross(p.Sub(t.V2)).Dot(normal) >= 0
}
