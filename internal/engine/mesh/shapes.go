package mesh

import (
	"math"
)

// Block materials.
const (
	MaterialSide = 0
	MaterialTop  = 1
)

type face struct {
	normal   [3]float32
	u, v     [3]float32 // in-plane axes, scaled to half extents
	material int
}

// Box builds an axis-aligned box centred on the origin. The +Y face uses
// MaterialTop and the other five faces MaterialSide. Groups are ordered
// side first.
func Box(width, height, depth float32) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2

	faces := []face{
		{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -hz}, v: [3]float32{0, hy, 0}, material: MaterialSide},
		{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, hz}, v: [3]float32{0, hy, 0}, material: MaterialSide},
		{normal: [3]float32{0, -1, 0}, u: [3]float32{hx, 0, 0}, v: [3]float32{0, 0, hz}, material: MaterialSide},
		{normal: [3]float32{0, 0, 1}, u: [3]float32{hx, 0, 0}, v: [3]float32{0, hy, 0}, material: MaterialSide},
		{normal: [3]float32{0, 0, -1}, u: [3]float32{-hx, 0, 0}, v: [3]float32{0, hy, 0}, material: MaterialSide},
		{normal: [3]float32{0, 1, 0}, u: [3]float32{hx, 0, 0}, v: [3]float32{0, 0, -hz}, material: MaterialTop},
	}
	half := [3]float32{hx, hy, hz}

	m := &Mesh{}
	for _, f := range faces {
		var centre [3]float32
		for i := range 3 {
			centre[i] = f.normal[i] * half[i]
		}

		base := uint32(len(m.Vertices))
		// Corners counter-clockwise seen from outside: (-u,-v) (u,-v) (u,v) (-u,v).
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			var pos [3]float32
			for i := range 3 {
				pos[i] = centre[i] + c[0]*f.u[i] + c[1]*f.v[i]
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   f.normal,
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}

		start := int32(len(m.Indices))
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
		m.addToGroup(f.material, start, 6)
	}

	return m
}

// addToGroup extends the last group when it has the same material and is
// contiguous, otherwise it starts a new one.
func (m *Mesh) addToGroup(material int, start, count int32) {
	if n := len(m.Groups); n > 0 {
		g := &m.Groups[n-1]
		if g.Material == material && g.StartIndex+g.IndexCount == start {
			g.IndexCount += count
			return
		}
	}
	m.Groups = append(m.Groups, Group{Material: material, StartIndex: start, IndexCount: count})
}

// Plane builds a horizontal size×size quad at height y facing +Y.
func Plane(size, y float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-h, y, h}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{h, y, h}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{h, y, -h}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-h, y, -h}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Groups:  []Group{{StartIndex: 0, IndexCount: 6}},
	}
	return m
}

// Sphere builds a UV sphere centred on the origin. segments is the number of
// slices around Y, rings the number of stacks from pole to pole.
func Sphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		theta := v * math.Pi
		sinT, cosT := math.Sincos(theta)

		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			phi := u * 2 * math.Pi
			sinP, cosP := math.Sincos(phi)

			n := [3]float32{float32(-cosP * sinT), float32(cosT), float32(sinP * sinT)}
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{float32(u), float32(1 - v)},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			if r != 0 {
				m.Indices = append(m.Indices, a, b, a+1)
			}
			if r != uint32(rings)-1 {
				m.Indices = append(m.Indices, a+1, b, b+1)
			}
		}
	}

	m.Groups = []Group{{StartIndex: 0, IndexCount: int32(len(m.Indices))}}
	return m
}
