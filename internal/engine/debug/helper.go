package debug

import "github.com/go-gl/mathgl/mgl32"

// LightHelperVertices returns line vertices visualising a directional light:
// a square of the given size around the light, facing the target, and a line
// from the light to the target. Format is [x, y, z] per vertex, two vertices
// per line.
func LightHelperVertices(light, target mgl32.Vec3, size float32) []float32 {
	dir := target.Sub(light)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	dir = dir.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	if mgl32.Abs(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	right := dir.Cross(up).Normalize().Mul(size / 2)
	up = right.Cross(dir).Normalize().Mul(size / 2)

	corners := [4]mgl32.Vec3{
		light.Sub(right).Sub(up),
		light.Add(right).Sub(up),
		light.Add(right).Add(up),
		light.Sub(right).Add(up),
	}

	out := make([]float32, 0, 5*2*3)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	out = append(out, light[0], light[1], light[2], target[0], target[1], target[2])
	return out
}
