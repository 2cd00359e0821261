package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/closset/meshpaint"
)

// RaylibTarget uploads painted textures into the material maps of a loaded
// raylib model. It must be used from the thread that owns the GL context.
type RaylibTarget struct {
	model  rl.Model
	albedo rl.Texture2D
	normal rl.Texture2D
	height rl.Texture2D

	texW int
	texH int

	// Optional shader uniforms for relief scaling. Zero locations mean
	// the bound shader does not consume them.
	shader       rl.Shader
	heightLoc    int32
	curvatureLoc int32
	hasShader    bool

	pixels []color.RGBA
	log    *slog.Logger
}

// NewRaylibTarget creates blank textures at the document resolution and
// binds them to the model's first material.
func NewRaylibTarget(model rl.Model, width, height int) *RaylibTarget {
	t := &RaylibTarget{
		model:   model,
		texW:    width,
		texH:    height,
		pixels:  make([]color.RGBA, width*height),
		log:     meshpaint.Logger(),
	}

	t.albedo = blankTexture(width, height, rl.White)
	t.normal = blankTexture(width, height, rl.NewColor(128, 128, 255, 255))
	t.height = blankTexture(width, height, rl.NewColor(128, 128, 128, 255))

	if model.MaterialCount > 0 {
		materials := unsafe.Slice(model.Materials, model.MaterialCount)
		rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, t.albedo)
		rl.SetMaterialTexture(&materials[0], rl.MapNormal, t.normal)
		rl.SetMaterialTexture(&materials[0], rl.MapHeight, t.height)
	}
	return t
}

// SetShader binds a displacement-aware shader to the model's first
// material and records the uniform locations for the relief scales.
func (t *RaylibTarget) SetShader(shader rl.Shader, heightUniform, curvatureUniform string) {
	t.shader = shader
	t.heightLoc = rl.GetShaderLocation(shader, heightUniform)
	t.curvatureLoc = rl.GetShaderLocation(shader, curvatureUniform)
	t.hasShader = true
	if t.model.MaterialCount > 0 {
		materials := unsafe.Slice(t.model.Materials, t.model.MaterialCount)
		materials[0].Shader = shader
	}
}

func blankTexture(width, height int, c color.RGBA) rl.Texture2D {
	img := rl.GenImageColor(width, height, c)
	defer rl.UnloadImage(img)
	return rl.LoadTextureFromImage(img)
}

// UpdateColorTexture uploads the flattened layer stack as the albedo map.
func (t *RaylibTarget) UpdateColorTexture(pm *meshpaint.Pixmap) error {
	if pm.Width() != t.texW || pm.Height() != t.texH {
		return fmt.Errorf("render: color texture size %dx%d, want %dx%d",
			pm.Width(), pm.Height(), t.texW, t.texH)
	}
	data := pm.Data()
	for i := range t.pixels {
		t.pixels[i] = color.RGBA{R: data[i*4], G: data[i*4+1], B: data[i*4+2], A: data[i*4+3]}
	}
	rl.UpdateTexture(t.albedo, t.pixels)
	return nil
}

// UpdateReliefTextures uploads the displacement and normal maps and, when a
// shader is bound, refreshes its relief scale uniforms.
func (t *RaylibTarget) UpdateReliefTextures(disp *meshpaint.Graymap, normal *meshpaint.Pixmap, heightScale, curvatureScale float64) error {
	if disp.Width() != t.texW || disp.Height() != t.texH {
		return fmt.Errorf("render: displacement size %dx%d, want %dx%d",
			disp.Width(), disp.Height(), t.texW, t.texH)
	}
	if normal.Width() != t.texW || normal.Height() != t.texH {
		return fmt.Errorf("render: normal map size %dx%d, want %dx%d",
			normal.Width(), normal.Height(), t.texW, t.texH)
	}

	for i, v := range disp.Data() {
		t.pixels[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	rl.UpdateTexture(t.height, t.pixels)

	data := normal.Data()
	for i := range t.pixels {
		t.pixels[i] = color.RGBA{R: data[i*4], G: data[i*4+1], B: data[i*4+2], A: data[i*4+3]}
	}
	rl.UpdateTexture(t.normal, t.pixels)

	if t.hasShader {
		rl.SetShaderValue(t.shader, t.heightLoc, []float32{float32(heightScale)}, rl.ShaderUniformFloat)
		rl.SetShaderValue(t.shader, t.curvatureLoc, []float32{float32(curvatureScale)}, rl.ShaderUniformFloat)
	}

	t.log.Debug("uploaded relief textures", "heightScale", heightScale, "curvatureScale", curvatureScale)
	return nil
}

// Unload releases the textures owned by the target.
func (t *RaylibTarget) Unload() {
	rl.UnloadTexture(t.albedo)
	rl.UnloadTexture(t.normal)
	rl.UnloadTexture(t.height)
}
