// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Scene     SceneConfig     `yaml:"scene"`
	Animation AnimationConfig `yaml:"animation"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Trace     TraceConfig     `yaml:"trace"`
	Inspect   InspectConfig   `yaml:"inspect"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"` // only used when vsync is off
	ShowFPS    bool   `yaml:"show_fps"`  // frame rate in the title bar
}

// CameraConfig describes the fixed perspective camera.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"` // vertical, degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// SceneConfig holds the static scene layout.
type SceneConfig struct {
	Background       [3]float32 `yaml:"background"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	SunRadiusXZ      float64    `yaml:"sun_radius_xz"`
	SunRadiusY       float64    `yaml:"sun_radius_y"`
	SunSize          float32    `yaml:"sun_size"`
	LightTarget      [3]float32 `yaml:"light_target"` // the sun shines toward this point
	GroundSize       float32    `yaml:"ground_size"`
	GroundY          float32    `yaml:"ground_y"`
	LightHelperSize  float32    `yaml:"light_helper_size"` // 0 hides the helper
	BlockTopTexture  string     `yaml:"block_top_texture"`
	BlockSideTexture string     `yaml:"block_side_texture"`
	ScreenshotDir    string     `yaml:"screenshot_dir"`
}

// AnimationConfig holds the per-frame rates of the controller.
type AnimationConfig struct {
	OrbitStep       float64 `yaml:"orbit_step"`       // radians per frame
	SpinRate        float64 `yaml:"spin_rate"`        // radians per frame
	DragSensitivity float64 `yaml:"drag_sensitivity"` // radians per pixel
}

// HeadlessConfig controls running the controller without a window.
type HeadlessConfig struct {
	Enabled bool    `yaml:"enabled"`
	Frames  uint64  `yaml:"frames"`  // 0 runs until interrupted
	TickHz  float64 `yaml:"tick_hz"` // 0 steps as fast as possible
}

// TraceConfig controls frame trace recording.
type TraceConfig struct {
	Dir string `yaml:"dir"` // empty disables recording
}

// InspectConfig controls the live snapshot websocket.
type InspectConfig struct {
	Addr string `yaml:"addr"` // empty disables the inspector
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the reference scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Sunblock",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{5, 5, 10},
			Target:   [3]float32{0, 0, 0},
		},
		Scene: SceneConfig{
			Background:       [3]float32{245.0 / 255.0, 245.0 / 255.0, 220.0 / 255.0},
			AmbientIntensity: 0.3,
			SunRadiusXZ:      50,
			SunRadiusY:       20,
			SunSize:          2,
			LightTarget:      [3]float32{0, 0, 0},
			GroundSize:       30,
			GroundY:          -4,
			LightHelperSize:  5,
			ScreenshotDir:    "screenshots",
		},
		Animation: AnimationConfig{
			OrbitStep:       0.001,
			SpinRate:        0.01,
			DragSensitivity: 0.005,
		},
		Headless: HeadlessConfig{
			TickHz: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("%w: camera fov %.1f out of (0, 180)", ErrInvalid, c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("%w: camera clip planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, fmt.Errorf("%w: camera position equals target", ErrInvalid))
	}
	if c.Animation.OrbitStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: orbit_step must be positive", ErrInvalid))
	}
	if c.Headless.TickHz < 0 {
		errs = append(errs, fmt.Errorf("%w: headless tick_hz must not be negative", ErrInvalid))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: fps_limit must not be negative", ErrInvalid))
	}
	if c.Scene.LightHelperSize < 0 {
		errs = append(errs, fmt.Errorf("%w: light_helper_size must not be negative", ErrInvalid))
	}
	return errors.Join(errs...)
}
