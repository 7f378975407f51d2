package arc

import (
	"math"

	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/models"
	"github.com/feyli/arctrace/internal/outline"
	"github.com/feyli/arctrace/internal/ribbon"
	"github.com/feyli/arctrace/internal/scene"
)

const fullTurn = 2 * math.Pi

// Params describes one entity at construction time.
type Params struct {
	XRadius   float64
	YRadius   float64
	Rotation  float64
	Position  scene.Vec3
	DrawSpeed float64
	TailDelay float64

	Segments     int
	MaxHalfWidth float64
	Taper        bool
	// LayerOpacities yields one ribbon per entry; each layer gets the given
	// opacity multiplier and a small depth offset.
	LayerOpacities []float64
	LayerZStep     float64

	Color scene.RGB
	// LayerColors overrides Color per ribbon layer; layers past its length
	// fall back to Color. The marker always uses Color.
	LayerColors []scene.RGB

	Marker outline.Params
	// MarkerOpacity is the opacity multiplier of the origin marker material.
	MarkerOpacity float64
}

// Entity is one animated elliptical stroke plus its origin marker. The four
// angle registers drive the drawing state machine: the head walks CurrentEnd
// from 0 down to TargetEnd, and the tail walks CurrentStart after it with a
// fixed angular lag.
type Entity struct {
	XRadius  float64
	YRadius  float64
	Rotation float64

	StartAngle   float64
	CurrentStart float64
	CurrentEnd   float64
	TargetEnd    float64
	DrawSpeed    float64
	TailDelay    float64
	Finished     bool

	Node *scene.Node

	tun          config.Tunables
	markerParams outline.Params
	markerNode   *scene.Node
	ribbons      []*ribbon.Builder
}

func New(p Params, tun config.Tunables) *Entity {
	e := &Entity{
		XRadius:      p.XRadius,
		YRadius:      p.YRadius,
		Rotation:     p.Rotation,
		DrawSpeed:    p.DrawSpeed,
		TailDelay:    p.TailDelay,
		TargetEnd:    -fullTurn,
		tun:          tun,
		markerParams: p.Marker,
	}

	e.Node = scene.NewNode()
	e.Node.Position = p.Position
	e.Node.Rotation = p.Rotation

	layers := p.LayerOpacities
	if len(layers) == 0 {
		layers = []float64{1}
	}
	for i, opacity := range layers {
		color := p.Color
		if i < len(p.LayerColors) {
			color = p.LayerColors[i]
		}
		builder := ribbon.NewBuilder(ribbon.Config{
			Segments:     p.Segments,
			MaxHalfWidth: p.MaxHalfWidth,
			Taper:        p.Taper,
			MarkerRadius: p.Marker.Radius,
			ZOffset:      float64(i) * p.LayerZStep,
		}, tun, scene.Material{Color: color, OpacityMultiplier: opacity})
		e.ribbons = append(e.ribbons, builder)
		e.Node.AddMesh(builder.Mesh())
	}

	e.markerNode = scene.NewNode()
	e.Node.Add(e.markerNode)
	e.installMarker(outline.Generate(p.Marker), p.Color, p.MarkerOpacity)

	e.ResetDrawingParams()
	return e
}

// Update advances the drawing state machine by one tick. While the
// interaction flag is down the ribbons stay hidden and only the marker moves;
// once Finished the call is a no-op.
func (e *Entity) Update(ctx *models.Context) {
	if !ctx.Interacted {
		for _, r := range e.ribbons {
			r.Mesh().Visible = false
		}
		e.placeMarker()
		return
	}
	if e.Finished {
		return
	}

	changed := false

	if e.CurrentEnd > e.TargetEnd {
		e.CurrentEnd -= e.DrawSpeed
		if e.CurrentEnd < e.TargetEnd {
			e.CurrentEnd = e.TargetEnd
		}
		changed = true
	}

	headDone := e.CurrentEnd <= e.TargetEnd
	if e.StartAngle-e.CurrentEnd > e.TailDelay+e.tun.TailBuffer || headDone {
		e.CurrentStart -= e.DrawSpeed
		if e.CurrentStart < e.TargetEnd {
			e.CurrentStart = e.TargetEnd
		}
		changed = true
		if e.CurrentStart <= e.TargetEnd {
			e.Finished = true
		}
	}

	if changed {
		e.rebuild()
	}
	e.placeMarker()
}

// ResetDrawingParams rewinds the state machine to the start of a cycle and
// rebuilds the geometry immediately so no stale frame is shown.
func (e *Entity) ResetDrawingParams() {
	e.StartAngle = 0
	e.CurrentStart = 0
	e.CurrentEnd = 0
	e.TargetEnd = -fullTurn
	e.Finished = false
	e.Node.Rotation = e.Rotation

	e.rebuild()
	e.placeMarker()
}

// SetShape retargets the ellipse. The new rotation reaches the container
// transform on the next ResetDrawingParams.
func (e *Entity) SetShape(xRadius, yRadius, rotation float64) {
	e.XRadius = xRadius
	e.YRadius = yRadius
	e.Rotation = rotation
}

// RegenerateMarker throws away the current origin outline and installs a
// freshly generated one.
func (e *Entity) RegenerateMarker() {
	old := e.markerNode.Meshes[0]
	e.installMarker(outline.Generate(e.markerParams), old.Material.Color, old.Material.OpacityMultiplier)
}

// MarkerPosition reports the marker's entity-local position, for tests and
// for the renderer's culling.
func (e *Entity) MarkerPosition() scene.Vec3 {
	return e.markerNode.Position
}

func (e *Entity) Ribbons() []*ribbon.Builder {
	return e.ribbons
}

func (e *Entity) installMarker(o outline.Outline, color scene.RGB, opacity float64) {
	mesh := o.ExtrudeMesh(e.markerParams.Depth, e.markerParams.Bevel, scene.Material{
		Color:             color,
		OpacityMultiplier: opacity,
	})
	e.markerNode.Meshes = e.markerNode.Meshes[:0]
	e.markerNode.AddMesh(mesh)

	for _, r := range e.ribbons {
		r.SetMarkerRadius(o.Radius)
	}
}

func (e *Entity) rebuild() {
	for _, r := range e.ribbons {
		r.Update(e.CurrentStart, e.CurrentEnd, e.XRadius, e.YRadius)
	}
}

// placeMarker keeps the origin marker glued to the stroke's leading tip,
// whether or not anything is being drawn.
func (e *Entity) placeMarker() {
	sin, cos := math.Sincos(e.CurrentEnd)
	e.markerNode.Position = scene.Vec3{
		X: e.XRadius * cos,
		Y: e.YRadius * sin,
	}
}
