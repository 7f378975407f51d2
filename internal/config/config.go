package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Settings struct {
	OverlayAlpha float64 `json:"overlay_alpha"`
	Fullscreen   bool    `json:"fullscreen"`
	VSync        bool    `json:"vsync"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

func DefaultSettings() Settings {
	return Settings{
		OverlayAlpha: 0.35,
		Fullscreen:   false,
		VSync:        true,
		Width:        1280,
		Height:       800,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "arctrace")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// LoadSettings reads the settings file, merging stored values over defaults
// so that older files missing newer fields stay valid.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	path, err := GetSettingsPath()
	if err != nil {
		return settings, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

func SaveSettings(settings Settings) error {
	path, err := GetSettingsPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
