package config

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSettingsRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.OverlayAlpha = 0.6
	settings.Fullscreen = true

	data, err := json.Marshal(settings)
	if err != nil {
		t.Fatal(err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(settings, loaded); diff != "" {
		t.Errorf("settings round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPartialSettingsKeepDefaults(t *testing.T) {
	// Older settings files missing newer fields fall back to defaults for
	// what they omit.
	settings := DefaultSettings()
	if err := json.Unmarshal([]byte(`{"overlay_alpha": 0.9}`), &settings); err != nil {
		t.Fatal(err)
	}

	if settings.OverlayAlpha != 0.9 {
		t.Errorf("overlay alpha = %.2f, want 0.9", settings.OverlayAlpha)
	}
	if settings.Width != DefaultSettings().Width {
		t.Errorf("width = %d, want default %d", settings.Width, DefaultSettings().Width)
	}
}

func TestDefaultTunables(t *testing.T) {
	tun := DefaultTunables()

	if tun.TailBuffer != 0.5 {
		t.Errorf("tail buffer = %.2f, want 0.5", tun.TailBuffer)
	}
	if tun.SpanEpsilon != 0.001 {
		t.Errorf("span epsilon = %.4f, want 0.001", tun.SpanEpsilon)
	}
	if tun.DriftLerp <= 0 || tun.DriftLerp >= 1 {
		t.Errorf("drift lerp = %.2f, want in (0, 1)", tun.DriftLerp)
	}
	if tun.PageMinPeriod >= tun.PageMaxPeriod {
		t.Error("page period bounds inverted")
	}
	if tun.OverlayMinPeriod >= tun.OverlayMaxPeriod {
		t.Error("overlay period bounds inverted")
	}
	if tun.TaperWidthFloor <= 0 || tun.TaperWidthFloor > 1 {
		t.Errorf("taper width floor = %.2f, want in (0, 1]", tun.TaperWidthFloor)
	}
}
