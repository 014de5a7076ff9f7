package geom

// Box builds a closed rectangular room of the given dimensions, centered at
// the origin, with every face tagged with the same material. Each face is
// split into two triangles, twelve in total, wound so normals face outward.
func Box(size Vec3, material string) []Triangle {
	x, y, z := size.X/2, size.Y/2, size.Z/2

	v := [8]Vec3{
		{-x, -y, -z}, {x, -y, -z},
		{x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z},
		{x, y, z}, {-x, y, z},
	}

	return []Triangle{
		// front
		{v[0], v[1], v[2], material}, {v[0], v[2], v[3], material},
		// back
		{v[4], v[6], v[5], material}, {v[4], v[7], v[6], material},
		// left
		{v[0], v[3], v[7], material}, {v[0], v[7], v[4], material},
		// right
		{v[1], v[5], v[6], material}, {v[1], v[6], v[2], material},
		// top
		{v[3], v[2], v[6], material}, {v[3], v[6], v[7], material},
		// bottom
		{v[0], v[4], v[5], material}, {v[0], v[5], v[1], material},
	}
}
