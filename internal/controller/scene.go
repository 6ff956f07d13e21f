package controller

import (
	"github.com/Faultbox/sunblock/internal/engine/lighting"
	"github.com/Faultbox/sunblock/internal/engine/motion"
)

// Scene is the rendering collaborator the controller drives every frame.
type Scene interface {
	// SetOrientation rotates the controlled block.
	SetOrientation(o motion.Orientation)
	// SetSun moves the light and updates its intensity and color.
	SetSun(sun lighting.Sun)
	// SetAspect changes the camera aspect ratio and recomputes its projection.
	SetAspect(aspect float32)
	// Resize changes the render surface dimensions.
	Resize(width, height int)
	// Render draws one frame from the current scene and camera state.
	Render() error
}

// HeadlessScene is a Scene with no output. It keeps the last values it was
// given, which makes it usable for headless runs, trace replay and tests.
type HeadlessScene struct {
	Orientation motion.Orientation
	Sun         lighting.Sun
	Aspect      float32
	Width       int
	Height      int
	Renders     uint64

	// RenderErr, when set, is returned from Render.
	RenderErr error
}

func (s *HeadlessScene) SetOrientation(o motion.Orientation) { s.Orientation = o }
func (s *HeadlessScene) SetSun(sun lighting.Sun)             { s.Sun = sun }
func (s *HeadlessScene) SetAspect(aspect float32)            { s.Aspect = aspect }

func (s *HeadlessScene) Resize(width, height int) {
	s.Width = width
	s.Height = height
}

func (s *HeadlessScene) Render() error {
	if s.RenderErr != nil {
		return s.RenderErr
	}
	s.Renders++
	return nil
}
