package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/banshee-data/velocity.hud/internal/units"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// EnvPrefix prefixes environment overrides, e.g. HUD_UI_FREQUENCY_HZ.
const EnvPrefix = "HUD"

// TuningConfig represents the root configuration for the HUD. Every field
// is optional; the Get* methods supply the default for anything unset.
type TuningConfig struct {
	// Render loop
	UIFrequencyHz   *float64 `json:"ui_frequency_hz,omitempty" mapstructure:"ui_frequency_hz"`
	FPSFilterTau    *float64 `json:"fps_filter_tau,omitempty" mapstructure:"fps_filter_tau"`
	AccelFilterTau  *float64 `json:"accel_filter_tau,omitempty" mapstructure:"accel_filter_tau"`
	FrameSkipBudget *int     `json:"frame_skip_budget,omitempty" mapstructure:"frame_skip_budget"`

	// Blinker chevrons
	BlinkChevrons       *int `json:"blink_chevrons,omitempty" mapstructure:"blink_chevrons"`
	BlinkFramesPerPulse *int `json:"blink_frames_per_pulse,omitempty" mapstructure:"blink_frames_per_pulse"`
	BlinkCooldownFrames *int `json:"blink_cooldown_frames,omitempty" mapstructure:"blink_cooldown_frames"`

	// Corridor
	QuantizeHue *bool `json:"quantize_hue,omitempty" mapstructure:"quantize_hue"`

	// Display
	DisplayUnits   *string  `json:"display_units,omitempty" mapstructure:"display_units"`
	ViewportWidth  *float64 `json:"viewport_width,omitempty" mapstructure:"viewport_width"`
	ViewportHeight *float64 `json:"viewport_height,omitempty" mapstructure:"viewport_height"`

	// Alerts and badges
	ControlsUnresponsiveSeconds *float64 `json:"controls_unresponsive_seconds,omitempty" mapstructure:"controls_unresponsive_seconds"`
	TPMSLowPSI                  *float64 `json:"tpms_low_psi,omitempty" mapstructure:"tpms_low_psi"`
	TPMSHighPSI                 *float64 `json:"tpms_high_psi,omitempty" mapstructure:"tpms_high_psi"`
}

// Keys lists every configuration key.
var Keys = []string{
	"ui_frequency_hz",
	"fps_filter_tau",
	"accel_filter_tau",
	"frame_skip_budget",
	"blink_chevrons",
	"blink_frames_per_pulse",
	"blink_cooldown_frames",
	"quantize_hue",
	"display_units",
	"viewport_width",
	"viewport_height",
	"controls_unresponsive_seconds",
	"tpms_low_psi",
	"tpms_high_psi",
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to its
// default.
func DefaultTuningConfig() *TuningConfig {
	e := EmptyTuningConfig()
	return &TuningConfig{
		UIFrequencyHz:               ptrFloat64(e.GetUIFrequencyHz()),
		FPSFilterTau:                ptrFloat64(e.GetFPSFilterTau()),
		AccelFilterTau:              ptrFloat64(e.GetAccelFilterTau()),
		FrameSkipBudget:             ptrInt(e.GetFrameSkipBudget()),
		BlinkChevrons:               ptrInt(e.GetBlinkChevrons()),
		BlinkFramesPerPulse:         ptrInt(e.GetBlinkFramesPerPulse()),
		BlinkCooldownFrames:         ptrInt(e.GetBlinkCooldownFrames()),
		QuantizeHue:                 ptrBool(e.GetQuantizeHue()),
		DisplayUnits:                ptrString(e.GetDisplayUnits()),
		ViewportWidth:               ptrFloat64(e.GetViewportWidth()),
		ViewportHeight:              ptrFloat64(e.GetViewportHeight()),
		ControlsUnresponsiveSeconds: ptrFloat64(e.GetControlsUnresponsiveSeconds()),
		TPMSLowPSI:                  ptrFloat64(e.GetTPMSLowPSI()),
		TPMSHighPSI:                 ptrFloat64(e.GetTPMSHighPSI()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON or YAML file, then
// applies HUD_* environment overrides.
// Fields omitted from the file retain their default values, so partial
// configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	switch ext := filepath.Ext(cleanPath); ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	v := newViper()
	v.SetConfigFile(cleanPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// LoadFromEnv builds a TuningConfig from HUD_* environment variables alone.
func LoadFromEnv() (*TuningConfig, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range Keys {
		_ = v.BindEnv(k)
	}
	return v
}

func decode(v *viper.Viper) (*TuningConfig, error) {
	// Decode into an empty config. The Get* methods provide fallback
	// defaults for any fields not specified.
	cfg := EmptyTuningConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/tools/hud-ramps/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.UIFrequencyHz != nil && (*c.UIFrequencyHz <= 0 || *c.UIFrequencyHz > 240) {
		return fmt.Errorf("ui_frequency_hz must be in (0, 240], got %f", *c.UIFrequencyHz)
	}
	if c.FPSFilterTau != nil && *c.FPSFilterTau < 0 {
		return fmt.Errorf("fps_filter_tau must be non-negative, got %f", *c.FPSFilterTau)
	}
	if c.AccelFilterTau != nil && *c.AccelFilterTau < 0 {
		return fmt.Errorf("accel_filter_tau must be non-negative, got %f", *c.AccelFilterTau)
	}
	if c.FrameSkipBudget != nil && *c.FrameSkipBudget < 0 {
		return fmt.Errorf("frame_skip_budget must be non-negative, got %d", *c.FrameSkipBudget)
	}
	if c.BlinkChevrons != nil && *c.BlinkChevrons < 1 {
		return fmt.Errorf("blink_chevrons must be at least 1, got %d", *c.BlinkChevrons)
	}
	if c.BlinkFramesPerPulse != nil && *c.BlinkFramesPerPulse < 1 {
		return fmt.Errorf("blink_frames_per_pulse must be at least 1, got %d", *c.BlinkFramesPerPulse)
	}
	if c.BlinkCooldownFrames != nil && *c.BlinkCooldownFrames < 0 {
		return fmt.Errorf("blink_cooldown_frames must be non-negative, got %d", *c.BlinkCooldownFrames)
	}
	if c.DisplayUnits != nil && !units.IsValid(*c.DisplayUnits) {
		return fmt.Errorf("invalid display_units %q, must be one of: %s", *c.DisplayUnits, units.GetValidUnitsString())
	}
	if c.ViewportWidth != nil && *c.ViewportWidth <= 0 {
		return fmt.Errorf("viewport_width must be positive, got %f", *c.ViewportWidth)
	}
	if c.ViewportHeight != nil && *c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport_height must be positive, got %f", *c.ViewportHeight)
	}
	if c.ControlsUnresponsiveSeconds != nil && *c.ControlsUnresponsiveSeconds < 0 {
		return fmt.Errorf("controls_unresponsive_seconds must be non-negative, got %f", *c.ControlsUnresponsiveSeconds)
	}
	if c.GetTPMSLowPSI() >= c.GetTPMSHighPSI() {
		return fmt.Errorf("tpms_low_psi (%f) must be below tpms_high_psi (%f)", c.GetTPMSLowPSI(), c.GetTPMSHighPSI())
	}
	return nil
}

// GetUIFrequencyHz returns the ui_frequency_hz value or the default.
func (c *TuningConfig) GetUIFrequencyHz() float64 {
	if c.UIFrequencyHz == nil {
		return 20
	}
	return *c.UIFrequencyHz
}

// FrameInterval returns the render tick period.
func (c *TuningConfig) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.GetUIFrequencyHz())
}

// FrameDT returns the render tick period in seconds, as the filters take it.
func (c *TuningConfig) FrameDT() float64 {
	return 1 / c.GetUIFrequencyHz()
}

// GetFPSFilterTau returns the fps_filter_tau value or the default.
func (c *TuningConfig) GetFPSFilterTau() float64 {
	if c.FPSFilterTau == nil {
		return 3.0
	}
	return *c.FPSFilterTau
}

// GetAccelFilterTau returns the accel_filter_tau value or the default.
func (c *TuningConfig) GetAccelFilterTau() float64 {
	if c.AccelFilterTau == nil {
		return 0.5
	}
	return *c.AccelFilterTau
}

// GetFrameSkipBudget returns the frame_skip_budget value or the default.
func (c *TuningConfig) GetFrameSkipBudget() int {
	if c.FrameSkipBudget == nil {
		return 5
	}
	return *c.FrameSkipBudget
}

// GetBlinkChevrons returns the blink_chevrons value or the default.
func (c *TuningConfig) GetBlinkChevrons() int {
	if c.BlinkChevrons == nil {
		return 8
	}
	return *c.BlinkChevrons
}

// GetBlinkFramesPerPulse returns the blink_frames_per_pulse value or the default.
func (c *TuningConfig) GetBlinkFramesPerPulse() int {
	if c.BlinkFramesPerPulse == nil {
		return 1
	}
	return *c.BlinkFramesPerPulse
}

// GetBlinkCooldownFrames returns the blink_cooldown_frames value or the
// default of a quarter second of frames.
func (c *TuningConfig) GetBlinkCooldownFrames() int {
	if c.BlinkCooldownFrames == nil {
		return int(c.GetUIFrequencyHz() / 4)
	}
	return *c.BlinkCooldownFrames
}

// GetQuantizeHue returns the quantize_hue value or the default.
func (c *TuningConfig) GetQuantizeHue() bool {
	if c.QuantizeHue == nil {
		return true
	}
	return *c.QuantizeHue
}

// GetDisplayUnits returns the display_units value or the default.
func (c *TuningConfig) GetDisplayUnits() string {
	if c.DisplayUnits == nil || *c.DisplayUnits == "" {
		return units.KPH
	}
	return *c.DisplayUnits
}

// GetViewportWidth returns the viewport_width value or the default.
func (c *TuningConfig) GetViewportWidth() float64 {
	if c.ViewportWidth == nil {
		return 1920
	}
	return *c.ViewportWidth
}

// GetViewportHeight returns the viewport_height value or the default.
func (c *TuningConfig) GetViewportHeight() float64 {
	if c.ViewportHeight == nil {
		return 1080
	}
	return *c.ViewportHeight
}

// GetControlsUnresponsiveSeconds returns the controls_unresponsive_seconds value or the default.
func (c *TuningConfig) GetControlsUnresponsiveSeconds() float64 {
	if c.ControlsUnresponsiveSeconds == nil {
		return 5
	}
	return *c.ControlsUnresponsiveSeconds
}

// ControlsTimeoutFrames converts the unresponsive grace period to frames.
func (c *TuningConfig) ControlsTimeoutFrames() uint64 {
	return uint64(c.GetControlsUnresponsiveSeconds()*c.GetUIFrequencyHz() + 0.5)
}

// GetTPMSLowPSI returns the tpms_low_psi value or the default.
func (c *TuningConfig) GetTPMSLowPSI() float64 {
	if c.TPMSLowPSI == nil {
		return 28
	}
	return *c.TPMSLowPSI
}

// GetTPMSHighPSI returns the tpms_high_psi value or the default.
func (c *TuningConfig) GetTPMSHighPSI() float64 {
	if c.TPMSHighPSI == nil {
		return 42
	}
	return *c.TPMSHighPSI
}
