// Command meshpaint-view is an interactive painting viewer. It shows a
// curved garment panel, projects mouse strokes onto its surface and paints
// into the document texture in real time, with optional browser preview
// streaming.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/composite"
	"github.com/closset/meshpaint/layer"
	"github.com/closset/meshpaint/mesh"
	"github.com/closset/meshpaint/pick"
	"github.com/closset/meshpaint/preview"
	"github.com/closset/meshpaint/render"
	"github.com/closset/meshpaint/stroke"
	"github.com/closset/meshpaint/symmetry"
	"github.com/closset/meshpaint/update"
)

func main() {
	var (
		width       = flag.Int("width", 1280, "window width")
		height      = flag.Int("height", 800, "window height")
		texSize     = flag.Int("texsize", 1024, "document texture resolution")
		previewAddr = flag.String("preview", "", "serve browser preview on this address, e.g. :8080")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		meshpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	rl.InitWindow(int32(*width), int32(*height), "meshpaint")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	panel := buildPanel(64, 80)
	model := panel.loadModel()
	defer rl.UnloadModel(model)

	store := layer.NewStore(*texSize, *texSize)
	store.Create(layer.Paint, "base")

	comp := composite.NewCompositor(store)
	defer comp.Close()
	var target render.Target = render.NewRaylibTarget(model, *texSize, *texSize)

	var srv *preview.Server
	if *previewAddr != "" {
		srv = preview.NewServer()
		mux := http.NewServeMux()
		mux.Handle("/ws", srv.Handler())
		go func() {
			if err := http.ListenAndServe(*previewAddr, mux); err != nil {
				fmt.Fprintln(os.Stderr, "preview server:", err)
			}
		}()
		target = &teeTarget{Target: target, srv: srv}
	}

	sched := update.NewScheduler(store, comp, target, update.DefaultOptions())
	engine := stroke.NewEngine(store, sched)
	projector := pick.NewProjector(panel.snap)
	resolver := symmetry.NewResolver(panel.snap, *texSize, *texSize, symmetry.Options{})

	cam3d := rl.Camera3D{
		Position:   rl.NewVector3(0, 1, 2.6),
		Target:     rl.NewVector3(0, 1, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	cam := pick.NewCamera(pick.CameraConfig{
		Position: mgl64.Vec3{0, 1, 2.6},
		LookAt:   mgl64.Vec3{0, 1, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		VFov:     45,
		Aspect:   float64(*width) / float64(*height),
	})

	style := stroke.DefaultStyle()
	style.Brush = meshpaint.Solid(meshpaint.RGBA{R: 0.85, G: 0.1, B: 0.15, A: 1})
	tool := stroke.ToolBrush
	sym := symmetry.Config{}
	var prev []symmetry.Target

	// Paint something immediately so the panel is not blank.
	sched.MarkDirty()

	for !rl.WindowShouldClose() {
		tool, style, sym = handleKeys(tool, style, sym)

		mouse := rl.GetMousePosition()
		s := float64(mouse.X) / float64(*width)
		t := 1 - float64(mouse.Y)/float64(*height)

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			engine.Begin(tool, style)
			prev = nil
		}
		if rl.IsMouseButtonDown(rl.MouseLeftButton) && engine.Active() {
			if hit, ok := projector.Pick(cam, s, t); ok {
				targets := resolver.Resolve(hit, sym)
				switch {
				case tool == stroke.ToolFill:
					if prev == nil {
						for _, tg := range targets {
							engine.FloodFill(tg.X, tg.Y)
						}
					}
				case len(prev) == len(targets):
					for i, tg := range targets {
						engine.Segment(prev[i].X, prev[i].Y, tg.X, tg.Y, 1)
					}
				default:
					for _, tg := range targets {
						engine.Stamp(tg.X, tg.Y, 1)
					}
				}
				prev = targets
			}
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) && engine.Active() {
			engine.End()
			sched.Flush()
			prev = nil
		}

		sched.Tick(time.Now())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(28, 28, 32, 255))
		rl.BeginMode3D(cam3d)
		rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, rl.White)
		rl.DrawGrid(10, 0.5)
		rl.EndMode3D()

		hud := fmt.Sprintf("tool: %s  size: %.0f  mirror X:%v Y:%v Z:%v", tool, style.Size, sym.X, sym.Y, sym.Z)
		rl.DrawText(hud, 12, 12, 20, rl.RayWhite)
		rl.DrawText("1-5 tools  x/y/z mirror  [ ] size  tab shape", 12, int32(*height)-28, 18, rl.Gray)
		rl.DrawFPS(int32(*width)-96, 12)
		rl.EndDrawing()
	}
}

func handleKeys(tool stroke.Tool, style stroke.Style, sym symmetry.Config) (stroke.Tool, stroke.Style, symmetry.Config) {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		tool = stroke.ToolBrush
	case rl.IsKeyPressed(rl.KeyTwo):
		tool = stroke.ToolEraser
	case rl.IsKeyPressed(rl.KeyThree):
		tool = stroke.ToolFill
	case rl.IsKeyPressed(rl.KeyFour):
		tool = stroke.ToolEmbroidery
	case rl.IsKeyPressed(rl.KeyFive):
		tool = stroke.ToolPuff
	case rl.IsKeyPressed(rl.KeyX):
		sym.X = !sym.X
	case rl.IsKeyPressed(rl.KeyY):
		sym.Y = !sym.Y
	case rl.IsKeyPressed(rl.KeyZ):
		sym.Z = !sym.Z
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		style.Size = max(2, style.Size-4)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		style.Size = min(256, style.Size+4)
	case rl.IsKeyPressed(rl.KeyTab):
		style.Shape = (style.Shape + 1) % 6
	}
	return tool, style, sym
}

// teeTarget forwards uploads to the real target and mirrors the color
// texture to the preview stream.
type teeTarget struct {
	render.Target
	srv *preview.Server
}

func (t *teeTarget) UpdateColorTexture(pm *meshpaint.Pixmap) error {
	if err := t.srv.Publish(pm); err != nil {
		fmt.Fprintln(os.Stderr, "preview publish:", err)
	}
	return t.Target.UpdateColorTexture(pm)
}

// panelMesh is a curved garment panel with its paint-side snapshot and the
// raw buffers raylib uploads. The buffers stay referenced for the model's
// lifetime.
type panelMesh struct {
	snap    *mesh.Snapshot
	verts   []float32
	normals []float32
	uvs     []float32
	indices []uint16
}

// buildPanel generates a (cols+1)×(rows+1) vertex grid bowed along Z like
// the front panel of a shirt. UVs span the full unit square.
func buildPanel(cols, rows int) *panelMesh {
	p := &panelMesh{}

	var positions []mgl64.Vec3
	var uvs []meshpaint.Point
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			u := float64(c) / float64(cols)
			v := float64(r) / float64(rows)
			x := (u - 0.5) * 1.6
			y := v * 2
			z := 0.3 * math.Cos((u-0.5)*math.Pi)

			positions = append(positions, mgl64.Vec3{x, y, z})
			uvs = append(uvs, meshpaint.Pt(u, 1-v))

			nx := 0.3 * math.Pi / 1.6 * math.Sin((u-0.5)*math.Pi)
			n := mgl64.Vec3{nx, 0, 1}.Normalize()

			p.verts = append(p.verts, float32(x), float32(y), float32(z))
			p.normals = append(p.normals, float32(n.X()), float32(n.Y()), float32(n.Z()))
			p.uvs = append(p.uvs, float32(u), float32(1-v))
		}
	}

	var triangles [][3]int32
	stride := cols + 1
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i0 := int32(r*stride + c)
			i1 := i0 + 1
			i2 := i0 + int32(stride)
			i3 := i2 + 1
			triangles = append(triangles, [3]int32{i0, i2, i1}, [3]int32{i1, i2, i3})
		}
	}
	for _, tri := range triangles {
		p.indices = append(p.indices, uint16(tri[0]), uint16(tri[1]), uint16(tri[2]))
	}

	snap, err := mesh.NewSnapshot(positions, uvs, triangles)
	if err != nil {
		fmt.Fprintln(os.Stderr, "panel mesh:", err)
		os.Exit(1)
	}
	p.snap = snap
	return p
}

// loadModel uploads the panel buffers and wraps them in a model.
func (p *panelMesh) loadModel() rl.Model {
	var m rl.Mesh
	m.VertexCount = int32(len(p.verts) / 3)
	m.TriangleCount = int32(len(p.indices) / 3)
	m.Vertices = &p.verts[0]
	m.Normals = &p.normals[0]
	m.Texcoords = &p.uvs[0]
	m.Indices = &p.indices[0]

	rl.UploadMesh(&m, false)
	return rl.LoadModelFromMesh(m)
}
