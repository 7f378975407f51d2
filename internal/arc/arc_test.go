package arc

import (
	"math"
	"testing"

	"github.com/feyli/arctrace/internal/config"
	"github.com/feyli/arctrace/internal/models"
	"github.com/feyli/arctrace/internal/outline"
	"github.com/feyli/arctrace/internal/scene"
)

func testEntity(drawSpeed, tailDelay float64) *Entity {
	return New(Params{
		XRadius:      1.5,
		YRadius:      1.0,
		DrawSpeed:    drawSpeed,
		TailDelay:    tailDelay,
		Segments:     16,
		MaxHalfWidth: 0.1,
		Marker:       outline.DefaultParams(0.1),
	}, config.DefaultTunables())
}

func activeCtx() *models.Context {
	return &models.Context{Interacted: true}
}

func checkOrdering(t *testing.T, e *Entity, tick int) {
	t.Helper()
	if !(e.TargetEnd <= e.CurrentEnd && e.CurrentEnd <= e.CurrentStart && e.CurrentStart <= e.StartAngle) {
		t.Fatalf("tick %d: angle ordering violated: target=%.4f end=%.4f start=%.4f startAngle=%.4f",
			tick, e.TargetEnd, e.CurrentEnd, e.CurrentStart, e.StartAngle)
	}
}

func TestAngleOrderingInvariant(t *testing.T) {
	e := testEntity(0.3, 2.0)
	ctx := activeCtx()

	for tick := 0; tick < 200; tick++ {
		checkOrdering(t, e, tick)
		e.Update(ctx)
		checkOrdering(t, e, tick)
	}
	if !e.Finished {
		t.Fatal("entity never finished")
	}
}

func TestFinishedExactlyWhenTailReachesTarget(t *testing.T) {
	e := testEntity(0.5, 1.0)
	ctx := activeCtx()

	for tick := 0; tick < 500 && !e.Finished; tick++ {
		if e.Finished != (e.CurrentStart == e.TargetEnd) {
			t.Fatalf("finished=%v but currentStart=%.4f targetEnd=%.4f",
				e.Finished, e.CurrentStart, e.TargetEnd)
		}
		e.Update(ctx)
	}

	if !e.Finished {
		t.Fatal("entity never finished")
	}
	if e.CurrentStart != e.TargetEnd {
		t.Fatalf("finished entity has currentStart=%.4f, want targetEnd=%.4f",
			e.CurrentStart, e.TargetEnd)
	}
}

func TestUpdateIsNoOpAfterFinished(t *testing.T) {
	e := testEntity(1.0, 1.0)
	ctx := activeCtx()

	for tick := 0; tick < 500 && !e.Finished; tick++ {
		e.Update(ctx)
	}
	if !e.Finished {
		t.Fatal("entity never finished")
	}

	start, end := e.CurrentStart, e.CurrentEnd
	e.Update(ctx)
	if e.CurrentStart != start || e.CurrentEnd != end {
		t.Errorf("update after finished mutated angles: start %.4f->%.4f end %.4f->%.4f",
			start, e.CurrentStart, end, e.CurrentEnd)
	}
}

func TestResetDrawingParams(t *testing.T) {
	e := testEntity(0.7, 2.0)
	ctx := activeCtx()

	// From a few distinct prior states, reset must land on the same cycle
	// start.
	for _, ticks := range []int{0, 3, 50, 1000} {
		for range ticks {
			e.Update(ctx)
		}
		e.ResetDrawingParams()

		if e.CurrentStart != 0 || e.CurrentEnd != 0 {
			t.Errorf("after %d ticks: reset left currentStart=%.4f currentEnd=%.4f, want 0",
				ticks, e.CurrentStart, e.CurrentEnd)
		}
		if e.TargetEnd != -2*math.Pi {
			t.Errorf("after %d ticks: reset left targetEnd=%.4f, want -2pi", ticks, e.TargetEnd)
		}
		if e.Finished {
			t.Errorf("after %d ticks: reset left finished=true", ticks)
		}
		if e.Node.Rotation != e.Rotation {
			t.Errorf("after %d ticks: reset did not re-apply rotation", ticks)
		}
	}
}

func TestEndToEndDrawTiming(t *testing.T) {
	drawSpeed := 1.0
	tailDelay := 2 * math.Pi * 0.85
	e := testEntity(drawSpeed, tailDelay)
	ctx := activeCtx()

	headReachedAt := -1
	finishedAt := -1
	for tick := 1; tick <= 100; tick++ {
		e.Update(ctx)
		if headReachedAt < 0 && e.CurrentEnd == e.TargetEnd {
			headReachedAt = tick
		}
		if e.Finished {
			finishedAt = tick
			break
		}
	}

	wantHead := int(math.Ceil(2 * math.Pi / drawSpeed))
	if headReachedAt != wantHead {
		t.Errorf("head reached target at tick %d, want %d", headReachedAt, wantHead)
	}

	// The tail still has the full revolution to travel, so finishing can
	// never beat the head by less than the lag.
	minFinish := int(math.Ceil(2*math.Pi + tailDelay/drawSpeed))
	if finishedAt < minFinish {
		t.Errorf("finished at tick %d, want >= %d", finishedAt, minFinish)
	}
	if finishedAt < 0 {
		t.Fatal("entity never finished")
	}
}

func TestRibbonsHiddenBeforeInteraction(t *testing.T) {
	e := testEntity(0.3, 2.0)
	ctx := &models.Context{}

	for range 10 {
		e.Update(ctx)
	}
	for i, r := range e.Ribbons() {
		if r.Mesh().Visible {
			t.Errorf("ribbon %d visible without interaction", i)
		}
	}
	if e.CurrentEnd != 0 {
		t.Errorf("angles advanced without interaction: currentEnd=%.4f", e.CurrentEnd)
	}
}

func TestMarkerTracksTip(t *testing.T) {
	e := testEntity(0.3, 2.0)
	ctx := activeCtx()

	for range 15 {
		e.Update(ctx)

		sin, cos := math.Sincos(e.CurrentEnd)
		wantX := e.XRadius * cos
		wantY := e.YRadius * sin
		got := e.MarkerPosition()
		if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y-wantY) > 1e-9 {
			t.Fatalf("marker at (%.4f, %.4f), want tip (%.4f, %.4f)", got.X, got.Y, wantX, wantY)
		}
	}
}

func TestRegenerateMarkerReplacesMesh(t *testing.T) {
	e := testEntity(0.3, 2.0)

	old := e.markerNode.Meshes[0]
	e.RegenerateMarker()
	replaced := e.markerNode.Meshes[0]

	if old == replaced {
		t.Error("regenerate kept the old marker mesh")
	}
	if len(e.markerNode.Meshes) != 1 {
		t.Errorf("marker node holds %d meshes, want 1", len(e.markerNode.Meshes))
	}
	if replaced.Material != old.Material {
		t.Error("regenerate changed the marker material")
	}
}

func TestLayerColorsPerRibbon(t *testing.T) {
	base := scene.RGB{B: 1}
	layers := []scene.RGB{{R: 1}, {G: 1}}

	e := New(Params{
		XRadius:        1.0,
		YRadius:        1.0,
		Segments:       8,
		MaxHalfWidth:   0.1,
		LayerOpacities: []float64{1, 0.5, 0.25},
		Color:          base,
		LayerColors:    layers,
		Marker:         outline.DefaultParams(0.1),
	}, config.DefaultTunables())

	ribbons := e.Ribbons()
	if len(ribbons) != 3 {
		t.Fatalf("got %d ribbons, want 3", len(ribbons))
	}
	for i, want := range layers {
		if got := ribbons[i].Mesh().Material.Color; got != want {
			t.Errorf("layer %d color = %+v, want %+v", i, got, want)
		}
	}
	// Layers past LayerColors fall back to the base color, as does the
	// marker.
	if got := ribbons[2].Mesh().Material.Color; got != base {
		t.Errorf("layer 2 color = %+v, want base %+v", got, base)
	}
	if got := e.markerNode.Meshes[0].Material.Color; got != base {
		t.Errorf("marker color = %+v, want base %+v", got, base)
	}
}
