package topo

import "image/color"

// VisualSettings holds the live view and lighting controls. The render path
// reads a fresh snapshot every frame and never owns or caches it.
type VisualSettings struct {
	ShowGrid  bool `yaml:"show_grid"`
	ShowXAxis bool `yaml:"show_x_axis"`
	ShowYAxis bool `yaml:"show_y_axis"`
	ShowZAxis bool `yaml:"show_z_axis"`

	AmbientIntensity   float64 `yaml:"ambient_intensity"`
	KeyLightIntensity  float64 `yaml:"key_light_intensity"`
	FillLightIntensity float64 `yaml:"fill_light_intensity"`
	RimLightIntensity  float64 `yaml:"rim_light_intensity"`

	// EnvironmentLighting switches all illumination to a single ambient
	// light sourced from EnvironmentMap; no directional lights are added in
	// that mode.
	EnvironmentLighting bool   `yaml:"use_environment_lighting"`
	EnvironmentMap      string `yaml:"environment_map,omitempty"`

	// Background is the clear color; nil means a fully transparent clear
	// (used for image export).
	Background *color.RGBA `yaml:"-"`
}

// DefaultVisualSettings returns the settings used before any record is
// loaded.
func DefaultVisualSettings() VisualSettings {
	return VisualSettings{
		ShowGrid:           true,
		ShowXAxis:          true,
		ShowYAxis:          true,
		ShowZAxis:          true,
		AmbientIntensity:   0.5,
		KeyLightIntensity:  1.5,
		FillLightIntensity: 0.6,
		RimLightIntensity:  0.4,
		Background:         &color.RGBA{26, 26, 26, 255},
	}
}

// SettingsSource supplies the current visual settings. The compositor calls
// Current once per frame, so any push-based settings store only has to keep
// its latest value readable.
type SettingsSource interface {
	Current() VisualSettings
}

// StaticSettings is a SettingsSource that always returns the same value.
type StaticSettings VisualSettings

// Current implements SettingsSource.
func (s StaticSettings) Current() VisualSettings {
	return VisualSettings(s)
}

// SettingsFunc adapts a function to the SettingsSource interface.
type SettingsFunc func() VisualSettings

// Current implements SettingsSource.
func (f SettingsFunc) Current() VisualSettings {
	return f()
}
