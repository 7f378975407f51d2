package ribbon

import (
	"math"

	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/scene"
)

// Config fixes a builder's resolution and width profile at construction.
// MarkerRadius feeds the tip taper and may be updated when the origin marker
// is regenerated; ZOffset stacks layered ribbons in depth.
type Config struct {
	Segments     int
	MaxHalfWidth float64
	Taper        bool
	MarkerRadius float64
	ZOffset      float64
}

// Builder converts an angular interval on an ellipse into a tapered
// two-sided strip. The mesh and its backing buffers are allocated once here;
// every Update rewrites them in place.
type Builder struct {
	cfg Config
	tun config.Tunables

	mesh *scene.Mesh
}

func NewBuilder(cfg Config, tun config.Tunables, material scene.Material) *Builder {
	if cfg.Segments < 1 {
		cfg.Segments = 1
	}

	vertexCount := (cfg.Segments + 1) * 2
	indexCount := cfg.Segments * 6
	mesh := scene.NewMesh(vertexCount, indexCount, material)
	mesh.Visible = false

	// The triangulation never changes; write it once.
	for i := range cfg.Segments {
		base := uint32(i * 2)
		mesh.Indices[i*6+0] = base
		mesh.Indices[i*6+1] = base + 1
		mesh.Indices[i*6+2] = base + 2
		mesh.Indices[i*6+3] = base + 1
		mesh.Indices[i*6+4] = base + 3
		mesh.Indices[i*6+5] = base + 2
	}

	return &Builder{cfg: cfg, tun: tun, mesh: mesh}
}

func (b *Builder) Mesh() *scene.Mesh {
	return b.mesh
}

func (b *Builder) SetMarkerRadius(r float64) {
	b.cfg.MarkerRadius = r
}

// Update rewrites the strip for the interval [start, end] on the ellipse
// with semi-axes (xRadius, yRadius). start is the trailing edge, end the
// leading tip; the interval is traversed clockwise so end <= start. A span
// below the epsilon hides the mesh and leaves the buffers untouched.
func (b *Builder) Update(start, end, xRadius, yRadius float64) {
	if start-end < b.tun.SpanEpsilon {
		b.mesh.Visible = false
		return
	}
	b.mesh.Visible = true

	effectiveEnd := end
	taperThreshold := 1.0
	if b.cfg.Taper {
		effectiveEnd, taperThreshold = b.taper(start, end, xRadius, yRadius)
	}

	n := b.cfg.Segments
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		theta := start + (effectiveEnd-start)*t
		sin, cos := math.Sincos(theta)

		px := xRadius * cos
		py := yRadius * sin

		// Tangent from the ellipse derivative; the normal is its 90°
		// rotation.
		tx := -xRadius * sin
		ty := yRadius * cos
		length := math.Hypot(tx, ty)
		if length < 1e-9 {
			length = 1
		}
		nx := -ty / length
		ny := tx / length

		halfWidth := b.cfg.MaxHalfWidth * (0.5 + 0.5*t*t)
		if b.cfg.Taper && t > taperThreshold {
			fade := (t - taperThreshold) / (1 - taperThreshold)
			halfWidth *= 1 - (1-b.tun.TaperWidthFloor)*fade
		}
		halfWidth = clamp(halfWidth, 0, b.cfg.MaxHalfWidth)

		alpha := clamp(math.Pow(t, 1.5)*0.9, 0, 0.9)

		b.writeVertex(i*2, px+nx*halfWidth, py+ny*halfWidth, alpha, 0, t)
		b.writeVertex(i*2+1, px-nx*halfWidth, py-ny*halfWidth, alpha, 1, t)
	}

	b.mesh.Dirty = true
	b.mesh.RecomputeBounds()
}

// taper pulls the tip angle inward so the strip ends under the origin marker
// instead of poking through it, and derives the progress threshold past
// which the width fades toward the floor.
func (b *Builder) taper(start, end, xRadius, yRadius float64) (effectiveEnd, threshold float64) {
	sin, cos := math.Sincos(end)
	tipRadius := math.Hypot(xRadius*cos, yRadius*sin)
	if tipRadius < 1e-6 {
		tipRadius = 1
	}

	offset := b.tun.TaperMarkerFactor * b.cfg.MarkerRadius / tipRadius
	effectiveEnd = end + offset
	if effectiveEnd > start {
		effectiveEnd = start
	}

	total := start - effectiveEnd
	if total < 1e-6 {
		return effectiveEnd, b.tun.TaperFallback
	}

	threshold = 1 - b.tun.TaperZoneFactor*offset/total
	return effectiveEnd, clamp(threshold, 0, 1)
}

func (b *Builder) writeVertex(i int, x, y, alpha, side, progress float64) {
	b.mesh.Positions[i*3] = float32(x)
	b.mesh.Positions[i*3+1] = float32(y)
	b.mesh.Positions[i*3+2] = float32(b.cfg.ZOffset)
	b.mesh.Alphas[i] = float32(alpha)
	b.mesh.Sides[i] = float32(side)
	b.mesh.Progress[i] = float32(progress)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
