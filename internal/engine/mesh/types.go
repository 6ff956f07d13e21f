// Package mesh builds the indexed triangle meshes of the scene: the block,
// the ground plane and the sun sphere.
package mesh

// Vertex is an interleaved mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 8 * 4

// Group is a contiguous index range drawn with one material.
type Group struct {
	Material   int
	StartIndex int32
	IndexCount int32
}

// Mesh holds mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
}

// Floats flattens the vertices into the interleaved layout the shaders expect.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}
