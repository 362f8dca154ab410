package model

import "math"

// NewPlane builds a flat ground plane in the XZ plane centered on the origin,
// with its normal pointing up. UVs span [0, uvRepeat] so a repeating sampler
// can tile a texture across it.
//
// Parameters:
//   - size: edge length of the square plane
//   - uvRepeat: how many times UVs repeat across the plane
//
// Returns:
//   - *Mesh: the plane geometry
func NewPlane(size, uvRepeat float32) *Mesh {
	h := size * 0.5
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-h, 0, -h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, 0}},
			{Position: [3]float32{h, 0, -h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{uvRepeat, 0}},
			{Position: [3]float32{h, 0, h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{uvRepeat, uvRepeat}},
			{Position: [3]float32{-h, 0, h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, uvRepeat}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
	m.computeBounds()
	return m
}

// NewCube builds an axis-aligned cube centered on the origin with per-face
// normals (24 vertices, 36 indices).
//
// Parameters:
//   - size: edge length of the cube
//
// Returns:
//   - *Mesh: the cube geometry
func NewCube(size float32) *Mesh {
	h := size * 0.5

	// Each face gets its own four vertices so normals stay flat.
	faces := []struct {
		normal [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, UV: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.computeBounds()
	return m
}

// NewSphere builds a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - segments: longitudinal subdivision count (minimum 3)
//   - rings: latitudinal subdivision count (minimum 2)
//
// Returns:
//   - *Mesh: the sphere geometry
func NewSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, (rings+1)*(segments+1)),
		Indices:  make([]uint32, 0, rings*segments*6),
	}

	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		y := float32(math.Cos(phi))
		r := float32(math.Sin(phi))
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			x := r * float32(math.Cos(theta))
			z := r * float32(math.Sin(theta))
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x * radius, y * radius, z * radius},
				Normal:   [3]float32{x, y, z},
				UV:       [2]float32{float32(seg) / float32(segments), float32(ring) / float32(rings)},
			})
		}
	}

	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	m.computeBounds()
	return m
}
