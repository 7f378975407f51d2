package config

// Tunables holds the hand-tuned constants of the composition. The taper and
// tail values were arrived at visually and carry no derivation; change them
// here rather than inline.
type Tunables struct {
	// TailBuffer is the extra angular slack, beyond TailDelay, the tail
	// waits for before it starts chasing the head.
	TailBuffer float64

	// SpanEpsilon is the angular span below which a ribbon is hidden.
	SpanEpsilon float64

	// TaperMarkerFactor scales the origin marker radius when converting it
	// to the angular offset that pulls the ribbon tip inward.
	TaperMarkerFactor float64
	// TaperZoneFactor multiplies that offset to size the angular zone over
	// which the width tapers down.
	TaperZoneFactor float64
	// TaperWidthFloor is the width scale reached at the very tip.
	TaperWidthFloor float64
	// TaperFallback is the taper threshold used when the drawn angle is too
	// small to derive one.
	TaperFallback float64

	// DriftInterval is the accumulated render time between drift cycles,
	// in seconds.
	DriftInterval float64
	// DriftLerp is the exponential smoothing factor applied per cycle.
	DriftLerp float64

	// PageMinPeriod and PageMaxPeriod bound the randomized time between
	// page switches, in seconds.
	PageMinPeriod float64
	PageMaxPeriod float64
	// RandomizeEvery is the number of page switches between chances to
	// re-randomize the drift oscillators.
	RandomizeEvery int
	// RandomizeChance is the probability of that re-randomization firing.
	RandomizeChance float64

	// OverlayMinPeriod and OverlayMaxPeriod bound the ambient overlay
	// toggle, in seconds. OverlayStrongTime is the length of the boosted
	// sub-phase after each transition into the high state.
	OverlayMinPeriod  float64
	OverlayMaxPeriod  float64
	OverlayStrongTime float64
}

func DefaultTunables() Tunables {
	return Tunables{
		TailBuffer:        0.5,
		SpanEpsilon:       0.001,
		TaperMarkerFactor: 0.8,
		TaperZoneFactor:   2.5,
		TaperWidthFloor:   0.6,
		TaperFallback:     0.85,
		DriftInterval:     1.2,
		DriftLerp:         0.1,
		PageMinPeriod:     4.0,
		PageMaxPeriod:     16.0,
		RandomizeEvery:    6,
		RandomizeChance:   0.25,
		OverlayMinPeriod:  5.0,
		OverlayMaxPeriod:  11.0,
		OverlayStrongTime: 0.8,
	}
}
