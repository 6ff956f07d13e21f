package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a color in hue/saturation/lightness form, all components in [0, 1].
type HSL struct {
	H, S, L float64
}

// RGB converts the color to sRGB components in [0, 1].
func (c HSL) RGB() mgl32.Vec3 {
	rgb := colorful.Hsl(c.H*360, c.S, c.L).Clamped()
	return mgl32.Vec3{float32(rgb.R), float32(rgb.G), float32(rgb.B)}
}

// Hex returns the color as a #rrggbb string for logs and traces.
func (c HSL) Hex() string {
	return colorful.Hsl(c.H*360, c.S, c.L).Clamped().Hex()
}
