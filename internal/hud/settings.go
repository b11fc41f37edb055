package hud

import (
	"github.com/banshee-data/velocity.hud/internal/blink"
	"github.com/banshee-data/velocity.hud/internal/config"
	"github.com/banshee-data/velocity.hud/internal/dmon"
	"github.com/banshee-data/velocity.hud/internal/gradient"
	"github.com/banshee-data/velocity.hud/internal/lead"
	"github.com/banshee-data/velocity.hud/internal/status"
)

// Settings is the resolved tuning a session runs with.
type Settings struct {
	Units    string
	Viewport lead.Viewport
	// FrameDT is the render period in seconds.
	FrameDT float64

	FPSFilterTau   float64
	AccelFilterTau float64
	// FrameSkipBudget is how many consecutive frames may be skipped while
	// the camera is not ready.
	FrameSkipBudget int

	Blink    blink.Config
	Gradient gradient.Options
	// ControlsTimeoutFrames is the grace before silent controls raise the
	// critical banner.
	ControlsTimeoutFrames uint64
	TPMS                  status.TPMSConfig
	DriverMonitor         dmon.Layout
}

// SettingsFrom resolves cfg, filling defaults for unset keys.
func SettingsFrom(cfg *config.TuningConfig) Settings {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return Settings{
		Units:           cfg.GetDisplayUnits(),
		Viewport:        lead.Viewport{Width: cfg.GetViewportWidth(), Height: cfg.GetViewportHeight()},
		FrameDT:         cfg.FrameDT(),
		FPSFilterTau:    cfg.GetFPSFilterTau(),
		AccelFilterTau:  cfg.GetAccelFilterTau(),
		FrameSkipBudget: cfg.GetFrameSkipBudget(),
		Blink: blink.Config{
			Chevrons:       cfg.GetBlinkChevrons(),
			FramesPerPulse: cfg.GetBlinkFramesPerPulse(),
			CooldownFrames: cfg.GetBlinkCooldownFrames(),
		},
		Gradient:              gradient.Options{QuantizeHue: cfg.GetQuantizeHue()},
		ControlsTimeoutFrames: cfg.ControlsTimeoutFrames(),
		TPMS:                  status.TPMSConfig{LowPSI: cfg.GetTPMSLowPSI(), HighPSI: cfg.GetTPMSHighPSI()},
		DriverMonitor:         dmon.DefaultLayout(),
	}
}
