package models

// EllipseTarget is the canonical ellipse shape every entity drifts toward.
type EllipseTarget struct {
	XRadius  float64
	YRadius  float64
	Rotation float64
}

// DriftState parameterizes the slow oscillatory variation applied on every
// drift cycle. Time accumulates once per cycle; the remaining fields are
// re-randomized occasionally by the composer.
type DriftState struct {
	Time        float64
	Speed       float64
	Amplitude   float64
	SizeVarAmp  float64
	CurveVarAmp float64
}

// Context carries the interaction and drift state shared by every entity set.
// It is owned by the composer and passed into set and entity operations.
// Target and Drift are written only by the drift cycle and the composer's
// drift randomization; entities only read them.
type Context struct {
	Interacted bool
	Target     EllipseTarget
	Drift      DriftState
}
