package model

import (
	"math"

	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
)

// Vertex is the GPU vertex layout shared by every pipeline in the engine:
// position, normal, and texture coordinates, 32 bytes total. The field order
// must match the @location declarations in the WGSL vertex input struct.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh holds CPU-side geometry pending GPU upload, plus a bounding sphere for
// view frustum culling.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	// BoundsCenter and BoundsRadius describe the mesh's local-space bounding
	// sphere. Scene objects scale the radius by their largest scale factor.
	BoundsCenter [3]float32
	BoundsRadius float32
}

// VertexBytes returns the vertex data as a byte slice for GPU upload.
// The returned slice aliases the mesh's vertex storage.
//
// Returns:
//   - []byte: byte view of the vertex slice
func (m *Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data as a byte slice for GPU upload.
// The returned slice aliases the mesh's index storage.
//
// Returns:
//   - []byte: byte view of the index slice
func (m *Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// computeBounds fills in the bounding sphere from the vertex positions.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	min := m.Vertices[0].Position
	max := m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}

	var radiusSq float32
	for i := range 3 {
		m.BoundsCenter[i] = (min[i] + max[i]) * 0.5
		half := (max[i] - min[i]) * 0.5
		radiusSq += half * half
	}
	m.BoundsRadius = float32(math.Sqrt(float64(radiusSq)))
}
