package outline

import (
	"math"
	"math/rand/v2"

	"github.com/feyli/arctrace/internal/scene"
)

// Params controls outline generation. Irregularity is the radius jitter as a
// fraction of Radius; AngleJitter is the angular jitter as a fraction of half
// the angular step. Both are clamped so the outline can never self-intersect
// or pinch a vertex onto its neighbour.
type Params struct {
	MinPoints    int
	MaxPoints    int
	Radius       float64
	Irregularity float64
	AngleJitter  float64
	Depth        float64
	Bevel        float64
}

func DefaultParams(radius float64) Params {
	return Params{
		MinPoints:    5,
		MaxPoints:    9,
		Radius:       radius,
		Irregularity: 0.35,
		AngleJitter:  0.9,
		Depth:        radius * 0.4,
		Bevel:        radius * 0.08,
	}
}

type Point struct {
	X, Y float64
}

// Outline is a closed irregular polygon, wound counter-clockwise.
type Outline struct {
	Points []Point
	Radius float64
}

// Generate builds a closed jittered polygon: evenly spaced angles, each
// perturbed by less than half a step so consecutive angles stay strictly
// increasing, each radius perturbed by the irregularity fraction.
func Generate(p Params) Outline {
	if p.MinPoints < 3 {
		p.MinPoints = 3
	}
	if p.MaxPoints < p.MinPoints {
		p.MaxPoints = p.MinPoints
	}

	irregularity := math.Min(math.Max(p.Irregularity, 0), 0.9)
	angleJitter := math.Min(math.Max(p.AngleJitter, 0), 0.99)

	count := p.MinPoints + rand.IntN(p.MaxPoints-p.MinPoints+1)
	step := 2 * math.Pi / float64(count)

	points := make([]Point, count)
	for i := range count {
		angle := float64(i)*step + (rand.Float64()-0.5)*step*angleJitter
		radius := p.Radius * (1 + (rand.Float64()*2-1)*irregularity)

		sin, cos := math.Sincos(angle)
		points[i] = Point{X: radius * cos, Y: radius * sin}
	}

	return Outline{Points: points, Radius: p.Radius}
}

// ExtrudeMesh lifts the outline to a shallow volume: front and back faces
// fanned from their centroids, joined by side walls. A positive bevel pushes
// an intermediate rim ring outward at mid depth, rounding the edge.
func (o Outline) ExtrudeMesh(depth, bevel float64, material scene.Material) *scene.Mesh {
	count := len(o.Points)
	half := depth / 2

	rings := 2
	if bevel > 0 {
		rings = 3
	}

	vertexCount := 2*(count+1) + rings*count
	indexCount := 2*3*count + (rings-1)*6*count
	mesh := scene.NewMesh(vertexCount, indexCount, material)

	v := 0
	putVertex := func(x, y, z, side, progress float64) int {
		mesh.Positions[v*3] = float32(x)
		mesh.Positions[v*3+1] = float32(y)
		mesh.Positions[v*3+2] = float32(z)
		mesh.Alphas[v] = 1
		mesh.Sides[v] = float32(side)
		mesh.Progress[v] = float32(progress)
		v++
		return v - 1
	}

	// Front and back faces, each a centroid fan.
	frontCenter := putVertex(0, 0, half, 0, 0)
	front := make([]int, count)
	for i, pt := range o.Points {
		front[i] = putVertex(pt.X, pt.Y, half, 0, float64(i)/float64(count))
	}
	backCenter := putVertex(0, 0, -half, 1, 0)
	back := make([]int, count)
	for i, pt := range o.Points {
		back[i] = putVertex(pt.X, pt.Y, -half, 1, float64(i)/float64(count))
	}

	// Side wall rings, duplicated from the face rims so the wall can carry
	// its own attributes.
	wall := make([][]int, rings)
	zLevels := []float64{half, -half}
	scales := []float64{1, 1}
	if rings == 3 {
		scale := 1 + bevel/math.Max(o.Radius, 1e-6)
		zLevels = []float64{half, 0, -half}
		scales = []float64{1, scale, 1}
	}
	for r := range rings {
		wall[r] = make([]int, count)
		for i, pt := range o.Points {
			progress := float64(i) / float64(count)
			wall[r][i] = putVertex(pt.X*scales[r], pt.Y*scales[r], zLevels[r], float64(r)/float64(rings-1), progress)
		}
	}

	idx := 0
	putTriangle := func(a, b, c int) {
		mesh.Indices[idx] = uint32(a)
		mesh.Indices[idx+1] = uint32(b)
		mesh.Indices[idx+2] = uint32(c)
		idx += 3
	}

	for i := range count {
		next := (i + 1) % count
		putTriangle(frontCenter, front[i], front[next])
		putTriangle(backCenter, back[next], back[i])
	}
	for r := 0; r < rings-1; r++ {
		for i := range count {
			next := (i + 1) % count
			putTriangle(wall[r][i], wall[r+1][i], wall[r+1][next])
			putTriangle(wall[r][i], wall[r+1][next], wall[r][next])
		}
	}

	mesh.RecomputeBounds()
	return mesh
}
