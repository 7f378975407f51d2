package glrender

import (
	"math"
	"testing"
)

func TestViewportExtents(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantHalfW     float32
		wantOK        bool
	}{
		{"landscape", 800, 600, worldHalfHeight * 4.0 / 3.0, true},
		{"square", 512, 512, worldHalfHeight, true},
		{"portrait", 600, 1200, worldHalfHeight / 2, true},
		{"zero height", 800, 0, 0, false},
		{"zero width", 0, 600, 0, false},
		{"minimized", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			halfW, halfH, ok := viewportExtents(tt.width, tt.height)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(float64(halfW-tt.wantHalfW)) > 1e-6 {
				t.Errorf("halfW = %.6f, want %.6f", halfW, tt.wantHalfW)
			}
			if halfH != worldHalfHeight {
				t.Errorf("halfH = %.6f, want %.6f", halfH, float32(worldHalfHeight))
			}
		})
	}
}
