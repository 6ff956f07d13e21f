// Package controller owns the animation state of the scene and advances it
// one frame at a time.
package controller

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/engine/input"
	"github.com/Faultbox/sunblock/internal/engine/lighting"
	"github.com/Faultbox/sunblock/internal/engine/motion"
	"github.com/Faultbox/sunblock/internal/logger"
)

// ErrNoSurface is returned when the controller is started without a scene to render into.
var ErrNoSurface = errors.New("no rendering surface")

// Config holds the controller rates and the initial viewport.
type Config struct {
	OrbitStep       float64 `json:"orbit_step"`       // radians per frame
	SpinRate        float64 `json:"spin_rate"`        // radians per frame
	DragSensitivity float64 `json:"drag_sensitivity"` // radians per pixel
	SunRadiusXZ     float64 `json:"sun_radius_xz"`
	SunRadiusY      float64 `json:"sun_radius_y"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// DefaultConfig returns the rates of the reference scene.
func DefaultConfig() Config {
	return Config{
		OrbitStep:       lighting.DefaultOrbitStep,
		SpinRate:        motion.DefaultSpinRate,
		DragSensitivity: motion.DefaultDragSensitivity,
		SunRadiusXZ:     lighting.DefaultRadiusXZ,
		SunRadiusY:      lighting.DefaultRadiusY,
		Width:           1280,
		Height:          720,
	}
}

// Viewport is the current output size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Controller holds the drag gesture, block orientation and sun orbit and
// pushes them into a Scene once per Step. It is not safe for concurrent use;
// events and steps must come from the same goroutine.
type Controller struct {
	cfg      Config
	scene    Scene
	orbit    *lighting.Orbit
	motion   *motion.Integrator
	drag     *input.DragTracker
	viewport Viewport
	frame    uint64
}

// New creates a controller at frame 0 and applies the initial viewport.
func New(scene Scene, cfg Config) (*Controller, error) {
	if scene == nil {
		return nil, ErrNoSurface
	}

	c := &Controller{
		cfg:    cfg,
		scene:  scene,
		orbit:  lighting.NewOrbit(cfg.OrbitStep),
		motion: motion.NewIntegrator(cfg.SpinRate, cfg.DragSensitivity),
	}
	c.drag = input.NewDragTracker(c.motion)
	c.Resize(cfg.Width, cfg.Height)

	logger.Debug("controller created",
		zap.Float64("orbitStep", c.orbit.Step()),
		zap.Float64("spinRate", cfg.SpinRate),
		zap.Float64("dragSensitivity", cfg.DragSensitivity),
	)
	return c, nil
}

// HandleEvent applies a host event. Pointer events drive the drag gesture and
// fold their deltas into the orientation immediately; resizes update the
// camera and surface. Other events are ignored.
func (c *Controller) HandleEvent(e input.Event) {
	if c.drag.Handle(e) {
		return
	}
	if e.Type == input.EventResize {
		c.Resize(e.Width, e.Height)
	}
}

// Resize updates the viewport, camera aspect and surface size. Orientation
// and light are untouched. Non-positive sizes (a minimised window) are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		logger.Debug("ignoring degenerate viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}
	c.viewport = Viewport{Width: width, Height: height}
	c.scene.SetAspect(float32(width) / float32(height))
	c.scene.Resize(width, height)
}

// Step advances one frame: the sun moves, the block spins, the new state is
// pushed into the scene and a single frame is rendered.
func (c *Controller) Step() (Snapshot, error) {
	c.orbit.Advance()
	c.motion.Spin(1)
	c.frame++

	c.scene.SetOrientation(c.motion.Orientation())
	c.scene.SetSun(c.orbit.Sun(c.cfg.SunRadiusXZ, c.cfg.SunRadiusY))
	if err := c.scene.Render(); err != nil {
		return Snapshot{}, fmt.Errorf("render frame %d: %w", c.frame, err)
	}

	return c.Snapshot(), nil
}

// Frame returns the number of completed steps.
func (c *Controller) Frame() uint64 {
	return c.frame
}

// Orientation returns the current block rotation.
func (c *Controller) Orientation() motion.Orientation {
	return c.motion.Orientation()
}

// Drag returns the current gesture state.
func (c *Controller) Drag() input.DragState {
	return c.drag.State()
}

// Viewport returns the last accepted viewport size.
func (c *Controller) Viewport() Viewport {
	return c.viewport
}

// Snapshot captures the current state without advancing it.
func (c *Controller) Snapshot() Snapshot {
	sun := c.orbit.Sun(c.cfg.SunRadiusXZ, c.cfg.SunRadiusY)
	o := c.motion.Orientation()
	return Snapshot{
		Frame:     c.frame,
		Angle:     c.orbit.Angle(),
		Yaw:       o.Yaw,
		Pitch:     o.Pitch,
		Sun:       [3]float64(sun.Position),
		Intensity: sun.Intensity,
		Hue:       sun.Color.H,
		Color:     sun.Color.Hex(),
		Dragging:  c.drag.State().Active,
		Width:     c.viewport.Width,
		Height:    c.viewport.Height,
	}
}
