package glrender

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/feyli/arctrace/internal/scene"
	"github.com/feyli/arctrace/internal/shaders"
)

// worldHalfHeight fixes the visible vertical extent of the orthographic
// view, in scene units; the width follows the aspect ratio.
const worldHalfHeight = 4.0

type meshBuffers struct {
	vao       uint32
	positions uint32
	alphas    uint32
	sides     uint32
	progress  uint32
	indices   uint32
}

// Renderer uploads scene meshes and draws the graph with the translucency
// program, then composites the ambient overlay on top. Mesh buffers are
// created on first sight and re-uploaded only when marked dirty.
type Renderer struct {
	traceProgram   uint32
	overlayProgram uint32

	overlayVAO uint32
	overlayVBO uint32

	offsetLoc    int32
	rotationLoc  int32
	nodeScaleLoc int32
	viewportLoc  int32
	colorLoc     int32
	opacityLoc   int32
	intensityLoc int32

	buffers map[*scene.Mesh]*meshBuffers
}

func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	r := &Renderer{buffers: make(map[*scene.Mesh]*meshBuffers)}

	var err error
	r.traceProgram, err = shaders.LinkProgram(shaders.TraceVertex, shaders.TraceFragment)
	if err != nil {
		return nil, fmt.Errorf("trace program: %w", err)
	}
	r.overlayProgram, err = shaders.LinkProgram(shaders.OverlayVertex, shaders.OverlayFragment)
	if err != nil {
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	r.offsetLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("offset\x00"))
	r.rotationLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("rotation\x00"))
	r.nodeScaleLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("nodeScale\x00"))
	r.viewportLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("viewport\x00"))
	r.colorLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("color\x00"))
	r.opacityLoc = gl.GetUniformLocation(r.traceProgram, gl.Str("opacityMultiplier\x00"))
	r.intensityLoc = gl.GetUniformLocation(r.overlayProgram, gl.Str("intensity\x00"))

	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.GenBuffers(1, &r.overlayVBO)
	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)

	quadVertices := []float32{
		-1.0, -1.0,
		1.0, -1.0,
		-1.0, 1.0,
		1.0, 1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.ClearColor(0.02, 0.02, 0.04, 1.0)

	return r, nil
}

// viewportExtents derives the ortho half-extents from the framebuffer size.
// A zero-area framebuffer (minimized window) has no usable extents.
func viewportExtents(width, height int) (halfW, halfH float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	aspect := float32(width) / float32(height)
	return float32(worldHalfHeight) * aspect, float32(worldHalfHeight), true
}

// Render draws one frame of the scene graph. Frames with a degenerate
// framebuffer are skipped.
func (r *Renderer) Render(root *scene.Node, width, height int, overlayIntensity float64) {
	halfW, halfH, ok := viewportExtents(width, height)
	if !ok {
		return
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.UseProgram(r.traceProgram)
	gl.Uniform2f(r.viewportLoc, halfW, halfH)

	root.Walk(func(node *scene.Node, pos scene.Vec3, rot, nodeScale float64) {
		for _, mesh := range node.Meshes {
			if !mesh.Visible {
				continue
			}
			r.drawMesh(mesh, pos, rot, nodeScale)
		}
	})

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.overlayProgram)
	gl.Uniform1f(r.intensityLoc, float32(overlayIntensity))
	gl.BindVertexArray(r.overlayVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawMesh(mesh *scene.Mesh, pos scene.Vec3, rot, nodeScale float64) {
	buffers, ok := r.buffers[mesh]
	if !ok {
		buffers = r.createBuffers(mesh)
		r.buffers[mesh] = buffers
		mesh.Dirty = true
	}

	if mesh.Dirty {
		r.upload(mesh, buffers)
		mesh.Dirty = false
	}

	gl.Uniform3f(r.offsetLoc, float32(pos.X), float32(pos.Y), float32(pos.Z))
	gl.Uniform1f(r.rotationLoc, float32(rot))
	gl.Uniform1f(r.nodeScaleLoc, float32(nodeScale))
	gl.Uniform3f(r.colorLoc,
		float32(mesh.Material.Color.R),
		float32(mesh.Material.Color.G),
		float32(mesh.Material.Color.B))
	gl.Uniform1f(r.opacityLoc, float32(mesh.Material.OpacityMultiplier))

	gl.BindVertexArray(buffers.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (r *Renderer) createBuffers(mesh *scene.Mesh) *meshBuffers {
	b := &meshBuffers{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.positions)
	gl.GenBuffers(1, &b.alphas)
	gl.GenBuffers(1, &b.sides)
	gl.GenBuffers(1, &b.progress)
	gl.GenBuffers(1, &b.indices)

	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Positions)*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.alphas)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Alphas)*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, 4, nil)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.sides)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Sides)*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, 4, nil)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.progress)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Progress)*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, 4, nil)
	gl.EnableVertexAttribArray(3)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return b
}

func (r *Renderer) upload(mesh *scene.Mesh, b *meshBuffers) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(mesh.Positions)*4, gl.Ptr(mesh.Positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.alphas)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(mesh.Alphas)*4, gl.Ptr(mesh.Alphas))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.sides)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(mesh.Sides)*4, gl.Ptr(mesh.Sides))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.progress)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(mesh.Progress)*4, gl.Ptr(mesh.Progress))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Sweep releases GPU buffers whose meshes are no longer reachable from the
// graph, such as replaced origin markers.
func (r *Renderer) Sweep(root *scene.Node) {
	live := make(map[*scene.Mesh]bool, len(r.buffers))
	root.EachMesh(func(m *scene.Mesh) {
		live[m] = true
	})
	for mesh := range r.buffers {
		if !live[mesh] {
			r.Release(mesh)
		}
	}
}

// Release frees GPU buffers for meshes no longer in the graph, such as
// replaced origin markers.
func (r *Renderer) Release(mesh *scene.Mesh) {
	b, ok := r.buffers[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.positions)
	gl.DeleteBuffers(1, &b.alphas)
	gl.DeleteBuffers(1, &b.sides)
	gl.DeleteBuffers(1, &b.progress)
	gl.DeleteBuffers(1, &b.indices)
	delete(r.buffers, mesh)
}
