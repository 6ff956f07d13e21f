// Package renderer draws the block, ground and sun with OpenGL 4.1.
package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/engine/camera"
	"github.com/Faultbox/sunblock/internal/engine/debug"
	"github.com/Faultbox/sunblock/internal/engine/lighting"
	"github.com/Faultbox/sunblock/internal/engine/mesh"
	"github.com/Faultbox/sunblock/internal/engine/motion"
	"github.com/Faultbox/sunblock/internal/engine/renderer/shaders"
	"github.com/Faultbox/sunblock/internal/engine/shader"
	"github.com/Faultbox/sunblock/internal/engine/texture"
	"github.com/Faultbox/sunblock/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Background mgl32.Vec3
	Ambient    float32

	FOV            float32 // degrees
	Near           float32
	Far            float32
	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3

	GroundSize  float32
	GroundY     float32
	GroundColor mgl32.Vec3
	SunSize     float32
	SunColor    mgl32.Vec3
	LightTarget mgl32.Vec3 // independent of the camera target
	HelperSize  float32    // 0 hides the light helper

	TopTexture  image.Image
	SideTexture image.Image
}

// Renderer draws the scene. Its setters match what the frame controller
// pushes every frame; Render uses whatever was set last.
type Renderer struct {
	config Config
	camera *camera.PerspectiveCamera

	lit   *shader.Program
	unlit *shader.Program

	block  *gpuMesh
	ground *gpuMesh
	sun    *gpuMesh
	helper *lineBuffer

	// Indexed by mesh.MaterialSide / mesh.MaterialTop.
	blockTextures [2]uint32
	whiteTexture  uint32

	orientation motion.Orientation
	light       lighting.Sun
}

// New creates a renderer. It must be called after the OpenGL context is
// current on this thread.
func New(cfg Config) (*Renderer, error) {
	if cfg.TopTexture == nil || cfg.SideTexture == nil {
		return nil, fmt.Errorf("block textures are required")
	}

	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	var err error
	if r.lit, err = shader.NewProgram(shaders.LitVertexShader, shaders.LitFragmentShader); err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	if r.unlit, err = shader.NewProgram(shaders.UnlitVertexShader, shaders.UnlitFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("unlit shader: %w", err)
	}

	r.block = uploadMesh(mesh.Box(1, 1, 1))
	r.ground = uploadMesh(mesh.Plane(cfg.GroundSize, cfg.GroundY))
	r.sun = uploadMesh(mesh.Sphere(cfg.SunSize, 32, 32))
	r.helper = newLineBuffer()

	r.blockTextures[mesh.MaterialSide] = uploadTexture(cfg.SideTexture)
	r.blockTextures[mesh.MaterialTop] = uploadTexture(cfg.TopTexture)
	r.whiteTexture = uploadTexture(texture.Solid(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1))

	r.camera = camera.NewPerspectiveCamera(cfg.CameraPosition, cfg.CameraTarget,
		cfg.FOV, float32(cfg.Width)/float32(cfg.Height), cfg.Near, cfg.Far)
	r.Resize(cfg.Width, cfg.Height)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.Close()
		return nil, fmt.Errorf("OpenGL setup error 0x%x", code)
	}

	logger.Debug("renderer created",
		zap.Int32("blockIndices", r.block.indexCount),
		zap.Int32("sunIndices", r.sun.indexCount),
	)
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range []*gpuMesh{r.block, r.ground, r.sun} {
		m.delete()
	}
	r.helper.delete()
	textures := []uint32{r.blockTextures[0], r.blockTextures[1], r.whiteTexture}
	for i := range textures {
		if textures[i] != 0 {
			gl.DeleteTextures(1, &textures[i])
		}
	}
	if r.lit != nil {
		r.lit.Delete()
	}
	if r.unlit != nil {
		r.unlit.Delete()
	}
}

// SetOrientation sets the block rotation.
func (r *Renderer) SetOrientation(o motion.Orientation) {
	r.orientation = o
}

// SetSun moves the light and the visible sun.
func (r *Renderer) SetSun(sun lighting.Sun) {
	r.light = sun
}

// SetAspect updates the camera projection.
func (r *Renderer) SetAspect(aspect float32) {
	r.camera.SetAspect(aspect)
}

// Resize handles a new framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws one frame.
func (r *Renderer) Render() error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := r.camera.ViewProjection()
	target := mgl64.Vec3{
		float64(r.config.LightTarget[0]),
		float64(r.config.LightTarget[1]),
		float64(r.config.LightTarget[2]),
	}
	sunPos := vec32(r.light.Position)

	r.lit.Use()
	r.lit.SetMat4("uViewProj", viewProj)
	r.lit.SetVec3("uLightDir", r.light.Direction(target))
	r.lit.SetVec3("uLightColor", r.light.Radiance())
	r.lit.SetFloat("uAmbient", r.config.Ambient)
	r.lit.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	r.lit.SetMat4("uModel", r.orientation.Matrix())
	r.lit.SetVec3("uTint", mgl32.Vec3{1, 1, 1})
	r.block.draw(func(g mesh.Group) {
		gl.BindTexture(gl.TEXTURE_2D, r.blockTextures[g.Material])
	})

	r.lit.SetMat4("uModel", mgl32.Ident4())
	r.lit.SetVec3("uTint", r.config.GroundColor)
	gl.BindTexture(gl.TEXTURE_2D, r.whiteTexture)
	r.ground.draw(nil)

	r.unlit.Use()
	r.unlit.SetMat4("uMVP", viewProj.Mul4(mgl32.Translate3D(sunPos[0], sunPos[1], sunPos[2])))
	r.unlit.SetVec3("uColor", r.config.SunColor)
	r.sun.draw(nil)

	if r.config.HelperSize > 0 {
		r.unlit.SetMat4("uMVP", viewProj)
		r.unlit.SetVec3("uColor", r.light.Color.RGB())
		r.helper.draw(debug.LightHelperVertices(sunPos, vec32(target), r.config.HelperSize))
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x", code)
	}
	return nil
}

// ReadPixels returns the current framebuffer as bottom-up RGBA bytes.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
