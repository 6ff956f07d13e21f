package texture

import (
	"image"
	"image/color"
	"math/rand/v2"
)

// Face selects which block face a generated texture is for.
type Face int

const (
	FaceSide Face = iota
	FaceTop
)

// DirtSize is the edge length of generated dirt textures.
const DirtSize = 16

var (
	dirtBase  = color.RGBA{R: 134, G: 96, B: 67, A: 255}
	grassBase = color.RGBA{R: 95, G: 159, B: 53, A: 255}
)

// Dirt generates a pixel-art dirt texture. The top face is grass, the side
// is dirt with a grass fringe along its upper edge. Output is deterministic.
func Dirt(face Face, size int) *image.RGBA {
	if size <= 0 {
		size = DirtSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	rng := rand.New(rand.NewPCG(0x5eed, uint64(face)))
	fringe := size / 4

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			base := dirtBase
			if face == FaceTop || y < fringe+rng.IntN(2) {
				base = grassBase
			}
			img.SetRGBA(x, y, jitter(base, rng.IntN(31)-15))
		}
	}
	return img
}

func jitter(c color.RGBA, d int) color.RGBA {
	return color.RGBA{R: clampByte(int(c.R) + d), G: clampByte(int(c.G) + d), B: clampByte(int(c.B) + d), A: c.A}
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
