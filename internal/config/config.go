// Package config assembles the viewer configuration from built-in defaults,
// the preferences file and BOXVIEW_* environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"boxview/internal/shade"
	"boxview/pkg/colorutil"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "BOXVIEW"

// MaxDepthAttenuation bounds the depth attenuation factor.
const MaxDepthAttenuation = 5.0

// Preference keys.
const (
	KeyBackgroundColor     = "backgroundColor"
	KeyFrameColor          = "frameColor"
	KeyMeasurementColor    = "measurementColor"
	KeySphereColor         = "sphereColor"
	KeyXYLayerColor        = "xyLayerColor"
	KeySelectedColor       = "selectedColor"
	KeyTransparency        = "transparency"
	KeyGradientAttenuation = "gradientAttenuation"
	KeyDepthAttenuation    = "depthAttenuation"
	KeyCenteredMode        = "centeredMode"
	KeySmoothScaling       = "smoothScaling"
	KeyLogLevel            = "logLevel"
)

// Config holds the rendering settings.
type Config struct {
	BackgroundColor  colorutil.Hex `envconfig:"BACKGROUND_COLOR"`
	FrameColor       colorutil.Hex `envconfig:"FRAME_COLOR"`
	MeasurementColor colorutil.Hex `envconfig:"MEASUREMENT_COLOR"`
	SphereColor      colorutil.Hex `envconfig:"SPHERE_COLOR"`
	XYLayerColor     colorutil.Hex `envconfig:"XY_LAYER_COLOR"`
	SelectedColor    colorutil.Hex `envconfig:"SELECTED_COLOR"`

	Transparency        float64 `envconfig:"TRANSPARENCY"`
	GradientAttenuation float64 `envconfig:"GRADIENT_ATTENUATION"`
	DepthAttenuation    float64 `envconfig:"DEPTH_ATTENUATION"`

	CenteredMode  bool `envconfig:"CENTERED_MODE"`
	SmoothScaling bool `envconfig:"SMOOTH_SCALING"`

	LogLevel string `envconfig:"LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackgroundColor:     colorutil.Hex(colorutil.Black),
		FrameColor:          colorutil.Hex(colorutil.Beige),
		MeasurementColor:    colorutil.Hex(colorutil.White),
		SphereColor:         colorutil.Hex(colorutil.Green),
		XYLayerColor:        colorutil.Hex(colorutil.Blue),
		SelectedColor:       colorutil.Hex(colorutil.White),
		Transparency:        0,
		GradientAttenuation: shade.DefaultGradientAttenuation,
		DepthAttenuation:    1,
		CenteredMode:        true,
		SmoothScaling:       true,
		LogLevel:            "info",
	}
}

// Load returns the defaults overlaid with the user's preferences file and
// the environment.
func Load() (Config, error) {
	return LoadFrom(LoadPrefs())
}

// LoadFrom is Load with an explicit preferences source.
func LoadFrom(p *Prefs) (Config, error) {
	cfg := Default()
	if p != nil {
		if err := cfg.applyPrefs(p); err != nil {
			return cfg, fmt.Errorf("preferences %s: %w", p.Path(), err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

func (c *Config) applyPrefs(p *Prefs) error {
	fields := []struct {
		key string
		dst any
	}{
		{KeyBackgroundColor, &c.BackgroundColor},
		{KeyFrameColor, &c.FrameColor},
		{KeyMeasurementColor, &c.MeasurementColor},
		{KeySphereColor, &c.SphereColor},
		{KeyXYLayerColor, &c.XYLayerColor},
		{KeySelectedColor, &c.SelectedColor},
		{KeyTransparency, &c.Transparency},
		{KeyGradientAttenuation, &c.GradientAttenuation},
		{KeyDepthAttenuation, &c.DepthAttenuation},
		{KeyCenteredMode, &c.CenteredMode},
		{KeySmoothScaling, &c.SmoothScaling},
		{KeyLogLevel, &c.LogLevel},
	}
	for _, f := range fields {
		if _, err := p.Lookup(f.key, f.dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) clamp() {
	c.Transparency = colorutil.Clamp01(c.Transparency)
	c.GradientAttenuation = colorutil.Clamp01(c.GradientAttenuation)
	switch {
	case c.DepthAttenuation < 0:
		c.DepthAttenuation = 0
	case c.DepthAttenuation > MaxDepthAttenuation:
		c.DepthAttenuation = MaxDepthAttenuation
	}
}

// Shader returns the gradient shader for this configuration.
func (c Config) Shader() shade.Shader {
	s := shade.NewShader(c.GradientAttenuation, c.Transparency)
	s.SphereColor = c.SphereColor.RGBA()
	s.XYLayerColor = c.XYLayerColor.RGBA()
	s.SelectedColor = c.SelectedColor.RGBA()
	return s
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("background", c.BackgroundColor.String()),
		slog.String("frame", c.FrameColor.String()),
		slog.Float64("transparency", c.Transparency),
		slog.Float64("gradientAttenuation", c.GradientAttenuation),
		slog.Float64("depthAttenuation", c.DepthAttenuation),
		slog.Bool("centered", c.CenteredMode),
		slog.Bool("smooth", c.SmoothScaling),
	)
}
