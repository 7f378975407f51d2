package composer

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/field"
	"github.com/feyli/arctrace/internal/models"
	"github.com/feyli/arctrace/internal/scene"
)

const (
	pageScattered = iota
	pageCenterpiece
)

const (
	overlayLow    = 0.3
	overlayHigh   = 0.7
	overlayStrong = 1.0

	fadeInTime = 1.0

	// referenceMin is the viewport minimum dimension at which the
	// centerpiece renders at unit scale.
	referenceMin = 800.0
)

// Composer owns the two pages, the switch and overlay timers, and the shared
// interaction context. The render-loop owner calls Tick once per frame;
// nothing in here schedules itself.
type Composer struct {
	ctx models.Context
	tun config.Tunables
	log zerolog.Logger

	root    *scene.Node
	scatter field.Set
	center  field.Set
	page    int

	now          float64
	pageDeadline float64
	switches     int

	highPhase       bool
	overlayDeadline float64
	strongUntil     float64
}

func New(tun config.Tunables, log zerolog.Logger) *Composer {
	c := &Composer{
		tun: tun,
		log: log,
		ctx: models.Context{
			Target: models.EllipseTarget{XRadius: 1.0, YRadius: 0.75},
			Drift: models.DriftState{
				Speed:       0.35,
				Amplitude:   0.4,
				SizeVarAmp:  0.18,
				CurveVarAmp: 0.12,
			},
		},
		scatter: field.NewEntitySet(field.Scattered(6.7, 3.9), tun),
		center:  field.NewEntitySet(field.Centerpiece(), tun),
	}

	c.root = scene.NewNode()
	c.root.Add(c.scatter.Root())
	c.root.Add(c.center.Root())
	c.center.SetVisible(false)

	c.pageDeadline = c.nextPagePeriod()
	c.overlayDeadline = c.nextOverlayPeriod()
	return c
}

// Tick advances the composition by dt seconds of render time.
func (c *Composer) Tick(dt float64) {
	c.now += dt

	if c.now >= c.pageDeadline {
		c.switchPage()
	}
	if c.now >= c.overlayDeadline {
		c.toggleOverlay()
	}

	active := c.activeSet()
	active.DriftCycle(&c.ctx, c.now)
	active.Update(&c.ctx)
}

// Activate flips the interaction flag. Idempotent; every call after the
// first is ignored.
func (c *Composer) Activate() {
	if c.ctx.Interacted {
		return
	}
	c.ctx.Interacted = true
	c.log.Info().Msg("activated")
}

// Resize recomputes the centerpiece scale from the viewport's minimum
// dimension; the new factor lands on the next drift cycle.
func (c *Composer) Resize(width, height int) {
	minDim := math.Min(float64(width), float64(height))
	factor := minDim / referenceMin
	c.center.SetScaleFactor(factor)
	c.log.Debug().Int("width", width).Int("height", height).Float64("scale", factor).Msg("resized")
}

func (c *Composer) Scene() *scene.Node {
	return c.root
}

// OverlayIntensity is the normalized ambient overlay level, eased in over
// the first moments of the session.
func (c *Composer) OverlayIntensity() float64 {
	level := overlayLow
	if c.highPhase {
		if c.now < c.strongUntil {
			level = overlayStrong
		} else {
			level = overlayHigh
		}
	}
	return level * c.fadeIn()
}

// OverlayPhase reports whether the overlay is in its high phase.
func (c *Composer) OverlayPhase() bool {
	return c.highPhase
}

// Context exposes the interaction context for inspection.
func (c *Composer) Context() *models.Context {
	return &c.ctx
}

func (c *Composer) ActivePage() int {
	return c.page
}

func (c *Composer) activeSet() field.Set {
	if c.page == pageCenterpiece {
		return c.center
	}
	return c.scatter
}

func (c *Composer) switchPage() {
	if c.page == pageScattered {
		c.page = pageCenterpiece
		c.scatter.SetVisible(false)
		c.center.SetVisible(true)
		c.center.RegenerateMarkers()
	} else {
		c.page = pageScattered
		c.center.SetVisible(false)
		c.scatter.SetVisible(true)
	}

	c.switches++
	c.pageDeadline = c.now + c.nextPagePeriod()
	c.log.Info().Int("page", c.page).Int("switches", c.switches).Msg("page switch")

	if c.switches%c.tun.RandomizeEvery == 0 && rand.Float64() < c.tun.RandomizeChance {
		c.randomizeDrift()
	}
}

// randomizeDrift re-rolls the oscillator parameters, occasionally inverting
// the drift direction, so the composition's character evolves over a session.
func (c *Composer) randomizeDrift() {
	speed := 0.25 + rand.Float64()*0.35
	if rand.Float64() < 0.3 {
		speed = -speed
	}
	c.ctx.Drift.Speed = speed
	c.ctx.Drift.Amplitude = 0.2 + rand.Float64()*0.5
	c.ctx.Drift.SizeVarAmp = 0.1 + rand.Float64()*0.2
	c.ctx.Drift.CurveVarAmp = 0.05 + rand.Float64()*0.2

	c.log.Info().
		Float64("speed", c.ctx.Drift.Speed).
		Float64("amplitude", c.ctx.Drift.Amplitude).
		Msg("drift re-randomized")
}

func (c *Composer) toggleOverlay() {
	c.highPhase = !c.highPhase
	if c.highPhase {
		c.strongUntil = c.now + c.tun.OverlayStrongTime
	}
	c.overlayDeadline = c.now + c.nextOverlayPeriod()
}

func (c *Composer) fadeIn() float64 {
	if c.now >= fadeInTime {
		return 1
	}
	p := c.now / fadeInTime
	return 1 - math.Pow(1-p, 5)
}

func (c *Composer) nextPagePeriod() float64 {
	return c.tun.PageMinPeriod + rand.Float64()*(c.tun.PageMaxPeriod-c.tun.PageMinPeriod)
}

func (c *Composer) nextOverlayPeriod() float64 {
	return c.tun.OverlayMinPeriod + rand.Float64()*(c.tun.OverlayMaxPeriod-c.tun.OverlayMinPeriod)
}
