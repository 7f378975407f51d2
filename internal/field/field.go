package field

import (
	"math"
	"math/rand/v2"

	"github.com/feyli/arctrace/internal/arc"
	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/models"
	"github.com/feyli/arctrace/internal/outline"
	"github.com/feyli/arctrace/internal/palette"
	"github.com/feyli/arctrace/internal/scene"
)

// Set is the capability surface the composer drives a page through.
type Set interface {
	DriftCycle(ctx *models.Context, now float64) bool
	Update(ctx *models.Context)
	SetVisible(visible bool)
	RegenerateMarkers()
	SetScaleFactor(factor float64)
	Root() *scene.Node
}

// Config selects one of the two page variants. Centered places a single
// entity at the origin scaled by the viewport factor; otherwise Count
// entities are scattered across the spread box.
type Config struct {
	Count          int
	Scale          float64
	Segments       int
	Centered       bool
	SpreadX        float64
	SpreadY        float64
	LayerOpacities []float64
	LayerZStep     float64
	Taper          bool
	MaxHalfWidth   float64
	DrawSpeed      float64
	TailDelay      float64
	MarkerRadius   float64
	MarkerOpacity  float64
	Palette        func() scene.RGB
}

// Scattered is the page-1 variant: many small arcs spread over the view.
// Spread and geometry are in set-local units; Scale maps them to the world.
func Scattered(spreadX, spreadY float64) Config {
	return Config{
		Count:          24,
		Scale:          0.9,
		Segments:       48,
		SpreadX:        spreadX,
		SpreadY:        spreadY,
		LayerOpacities: []float64{0.55},
		MaxHalfWidth:   0.1,
		DrawSpeed:      0.11,
		TailDelay:      2 * math.Pi * 0.85,
		MarkerRadius:   0.13,
		MarkerOpacity:  1.4,
		Palette:        palette.Soft,
	}
}

// Centerpiece is the page-2 variant: one large centered arc drawn with three
// stacked ribbons, tapered into its marker.
func Centerpiece() Config {
	return Config{
		Count:          1,
		Scale:          4.2,
		Segments:       128,
		Centered:       true,
		LayerOpacities: []float64{1.6, 0.6, 0.25},
		LayerZStep:     0.015,
		Taper:          true,
		MaxHalfWidth:   0.08,
		DrawSpeed:      0.055,
		TailDelay:      2 * math.Pi * 0.85,
		MarkerRadius:   0.12,
		MarkerOpacity:  1.8,
		Palette:        palette.Luminous,
	}
}

type member struct {
	entity     *arc.Entity
	sizeJitter float64
	eccJitter  float64
}

// EntitySet owns a homogeneous collection of arc entities sharing one
// Config, and runs their periodic drift cycle.
type EntitySet struct {
	cfg Config
	tun config.Tunables

	root    *scene.Node
	members []member

	lastCycle    float64
	scaleFactor  float64
	pendingScale float64
}

func NewEntitySet(cfg Config, tun config.Tunables) *EntitySet {
	s := &EntitySet{
		cfg:          cfg,
		tun:          tun,
		root:         scene.NewNode(),
		scaleFactor:  1,
		pendingScale: 1,
	}
	// Page scale lives on the root transform; entity radii stay in
	// canonical units so drifting toward the shared target never fights
	// the page's size.
	s.root.Scale = cfg.Scale
	s.createEntities()
	return s
}

func (s *EntitySet) createEntities() {
	for range s.cfg.Count {
		position := scene.Vec3{}
		if !s.cfg.Centered {
			position = scene.Vec3{
				X: (rand.Float64()*2 - 1) * s.cfg.SpreadX,
				Y: (rand.Float64()*2 - 1) * s.cfg.SpreadY,
				Z: (rand.Float64()*2 - 1) * 0.3,
			}
		}

		base := s.cfg.Palette()
		var layerColors []scene.RGB
		if n := len(s.cfg.LayerOpacities); n > 1 {
			// Stacked layers shade from the base color toward a second
			// pick of the same palette, so the stroke reads as one
			// graded body rather than three flat copies.
			accent := s.cfg.Palette()
			layerColors = make([]scene.RGB, n)
			layerColors[0] = base
			for i := 1; i < n; i++ {
				layerColors[i] = palette.Blend(base, accent, float64(i)/float64(n-1))
			}
		}

		shape := 0.7 + rand.Float64()*0.6
		entity := arc.New(arc.Params{
			XRadius:        shape,
			YRadius:        shape * (0.65 + rand.Float64()*0.35),
			Rotation:       rand.Float64() * 2 * math.Pi,
			Position:       position,
			DrawSpeed:      s.cfg.DrawSpeed * (0.8 + rand.Float64()*0.4),
			TailDelay:      s.cfg.TailDelay,
			Segments:       s.cfg.Segments,
			MaxHalfWidth:   s.cfg.MaxHalfWidth,
			Taper:          s.cfg.Taper,
			LayerOpacities: s.cfg.LayerOpacities,
			LayerZStep:     s.cfg.LayerZStep,
			Color:          base,
			LayerColors:    layerColors,
			Marker:         outline.DefaultParams(s.cfg.MarkerRadius),
			MarkerOpacity:  s.cfg.MarkerOpacity,
		}, s.tun)

		s.root.Add(entity.Node)
		s.members = append(s.members, member{
			entity:     entity,
			sizeJitter: 0.8 + rand.Float64()*0.4,
			eccJitter:  0.85 + rand.Float64()*0.3,
		})
	}
}

// DriftCycle re-targets every entity once per drift interval: advance the
// shared drift time, derive the three oscillators, creep each entity a tenth
// of the way toward its new target, and replay the draw from scratch.
// Returns whether a cycle actually ran.
func (s *EntitySet) DriftCycle(ctx *models.Context, now float64) bool {
	// Until the first interaction nothing retargets: markers hold the
	// positions they spawned with.
	if !ctx.Interacted {
		return false
	}
	if now-s.lastCycle < s.tun.DriftInterval {
		return false
	}
	s.lastCycle = now
	s.scaleFactor = s.pendingScale

	ctx.Drift.Time += ctx.Drift.Speed
	t := ctx.Drift.Time

	rotOffset := math.Sin(t) * ctx.Drift.Amplitude
	sizeMul := 1 + math.Sin(t*0.73)*ctx.Drift.SizeVarAmp
	eccMul := 1 + math.Cos(t*0.49)*ctx.Drift.CurveVarAmp

	for _, m := range s.members {
		targetX := ctx.Target.XRadius * sizeMul * m.sizeJitter * s.scaleFactor
		targetY := ctx.Target.YRadius * sizeMul * eccMul * m.eccJitter * s.scaleFactor
		targetRot := ctx.Target.Rotation + rotOffset

		e := m.entity
		newX := e.XRadius + (targetX-e.XRadius)*s.tun.DriftLerp
		newY := e.YRadius + (targetY-e.YRadius)*s.tun.DriftLerp
		newRot := e.Rotation + wrapDelta(targetRot-e.Rotation)*s.tun.DriftLerp

		e.SetShape(newX, newY, newRot)
		e.ResetDrawingParams()
	}
	return true
}

func (s *EntitySet) Update(ctx *models.Context) {
	for _, m := range s.members {
		m.entity.Update(ctx)
	}
}

func (s *EntitySet) SetVisible(visible bool) {
	s.root.Visible = visible
}

func (s *EntitySet) RegenerateMarkers() {
	for _, m := range s.members {
		m.entity.RegenerateMarker()
	}
}

// SetScaleFactor stores the viewport-derived scale; it takes effect on the
// next drift cycle, not immediately.
func (s *EntitySet) SetScaleFactor(factor float64) {
	s.pendingScale = factor
}

func (s *EntitySet) Root() *scene.Node {
	return s.root
}

func (s *EntitySet) Entities() []*arc.Entity {
	entities := make([]*arc.Entity, len(s.members))
	for i, m := range s.members {
		entities[i] = m.entity
	}
	return entities
}

// wrapDelta maps an angular difference into (-pi, pi] so interpolation takes
// the short way around.
func wrapDelta(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
