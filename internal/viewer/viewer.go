// Package viewer hosts the scene in an SDL2 window.
package viewer

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/config"
	"github.com/Faultbox/sunblock/internal/controller"
	"github.com/Faultbox/sunblock/internal/engine/debug"
	"github.com/Faultbox/sunblock/internal/engine/input"
	"github.com/Faultbox/sunblock/internal/engine/renderer"
	"github.com/Faultbox/sunblock/internal/engine/texture"
	"github.com/Faultbox/sunblock/internal/engine/window"
	"github.com/Faultbox/sunblock/internal/logger"
)

var (
	groundColor = mgl32.Vec3{245.0 / 255.0, 245.0 / 255.0, 220.0 / 255.0}
	sunColor    = mgl32.Vec3{1, 1, 0}
)

// Viewer owns the window and renderer and is the frame loop host.
type Viewer struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	shots    *debug.ScreenshotCapture
	fps      *debug.FPSCounter // nil unless show_fps

	frameInterval time.Duration // zero when vsync paces the loop
	lastPresent   time.Time
	presented     uint64
	captureNext   bool
}

// New opens the window and creates the renderer. Failure means there is no
// surface to draw on; the returned error wraps controller.ErrNoSurface.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		config: cfg,
		shots:  debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "sunblock"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", controller.ErrNoSurface, err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		Background:     cfg.Scene.Background,
		Ambient:        cfg.Scene.AmbientIntensity,
		FOV:            cfg.Camera.FOV,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
		CameraPosition: cfg.Camera.Position,
		CameraTarget:   cfg.Camera.Target,
		GroundSize:     cfg.Scene.GroundSize,
		GroundY:        cfg.Scene.GroundY,
		GroundColor:    groundColor,
		SunSize:        cfg.Scene.SunSize,
		SunColor:       sunColor,
		LightTarget:    cfg.Scene.LightTarget,
		HelperSize:     cfg.Scene.LightHelperSize,
		TopTexture:     blockTexture(cfg.Scene.BlockTopTexture, texture.FaceTop),
		SideTexture:    blockTexture(cfg.Scene.BlockSideTexture, texture.FaceSide),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("%w: %w", controller.ErrNoSurface, err)
	}

	if cfg.Window.ShowFPS {
		v.fps = debug.NewFPSCounter(500 * time.Millisecond)
	}
	v.lastPresent = time.Now()

	if !v.window.VSync() && cfg.Window.FPSLimit > 0 {
		v.frameInterval = time.Second / time.Duration(cfg.Window.FPSLimit)
	}

	logger.Info("viewer initialized", zap.Int("drawableWidth", width), zap.Int("drawableHeight", height))
	return v, nil
}

// blockTexture loads path, falling back to generated dirt when no file is
// configured or it cannot be decoded.
func blockTexture(path string, face texture.Face) image.Image {
	if path == "" {
		return texture.Dirt(face, texture.DirtSize)
	}
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("using generated block texture", zap.String("path", path), zap.Error(err))
		return texture.Dirt(face, texture.DirtSize)
	}
	return img
}

// Scene returns the renderer as the controller's scene.
func (v *Viewer) Scene() controller.Scene {
	return v.renderer
}

// Size returns the drawable size in pixels.
func (v *Viewer) Size() (int, int) {
	return v.window.DrawableSize()
}

// Poll returns the window events since the last frame. F12 arms a
// screenshot of the next presented frame.
func (v *Viewer) Poll(dst []input.Event) []input.Event {
	dst = v.window.PollEvents(dst)
	for _, e := range dst {
		if e.Type == input.EventKeyDown && e.Key == input.KeyScreenshot {
			v.captureNext = true
		}
	}
	return dst
}

// Present captures a pending screenshot, swaps buffers and, without vsync,
// sleeps to honour the frame rate limit.
func (v *Viewer) Present() error {
	v.presented++
	if v.captureNext {
		v.captureNext = false
		pixels, w, h := v.renderer.ReadPixels()
		path, err := v.shots.CaptureFromPixels(pixels, w, h, v.presented)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("path", path))
		}
	}

	v.window.SwapBuffers()

	if v.frameInterval > 0 {
		if wait := v.frameInterval - time.Since(v.lastPresent); wait > 0 {
			time.Sleep(wait)
		}
	}
	now := time.Now()
	if v.fps != nil && v.fps.Update(now.Sub(v.lastPresent)) {
		v.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", v.config.Window.Title, v.fps.FPS()))
	}
	v.lastPresent = now
	return nil
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
