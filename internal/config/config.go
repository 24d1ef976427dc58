// Package config defines ChirpConfig, the single source of numeric
// configuration every DSP stage is built from.
//
// It exists as its own internal package — rather than living on the
// top-level sondar package — so that internal/chirp, internal/bandpass,
// internal/doppler, and the rest of the stages can all depend on the
// config type without an import cycle back to the package that depends on
// all of them. The top-level package re-exports it as sondar.ChirpConfig.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ChirpConfig carries every numeric parameter the pipeline's stages are
// built from. It is immutable once constructed: Pipeline reads it but never
// mutates it. Passing the same ChirpConfig to every stage at construction
// time keeps sample rate, chirp band, window sizes, and FFT radix
// consistent without duplicating constants across the package.
type ChirpConfig struct {
	SampleRateHz    int     `yaml:"sample_rate_hz"`
	FLoHz           float64 `yaml:"f_lo_hz"`
	FHiHz           float64 `yaml:"f_hi_hz"`
	ChirpMs         float64 `yaml:"chirp_ms"`
	InterChirpGapMs float64 `yaml:"inter_chirp_gap_ms"`
	DeviceLatencyMs float64 `yaml:"device_latency_ms"`
	EmitPeriodMs    float64 `yaml:"emit_period_ms"`

	// Doppler search tuning.
	SoundSpeedMps        float64 `yaml:"sound_speed_mps"`
	DopplerMaxSpeedMps   float64 `yaml:"doppler_max_speed_mps"`
	DopplerHypotheses    int     `yaml:"doppler_hypotheses"`
	DopplerRefineSteps   int     `yaml:"doppler_refine_steps"`
	DopplerRefineRangeMs float64 `yaml:"doppler_refine_range_mps"`
	DopplerEMAAlpha      float64 `yaml:"doppler_ema_alpha"`
	ReliabilityThreshold float64 `yaml:"reliability_threshold"`
	WeaknessThreshold    float64 `yaml:"weakness_threshold"`

	// Bandpass FIR.
	BandpassTaps int `yaml:"bandpass_taps"`

	// STFT / range-Doppler.
	STFTWindow int `yaml:"stft_window"`
	STFTHop    int `yaml:"stft_hop"`

	// Background subtraction.
	BackgroundAlpha float64 `yaml:"background_alpha"`

	// Physical mapping.
	MinMotionSamples  int     `yaml:"min_motion_samples"`
	DefaultThetaRad   float64 `yaml:"default_theta_rad"`
	MinThetaRad       float64 `yaml:"min_theta_rad"`
	SizeIntensityMin  float64 `yaml:"size_intensity_min"`
	SizeThresholdFrac float64 `yaml:"size_threshold_frac"`
	MaxSizeMm         float64 `yaml:"max_size_mm"`
}

// ErrInvalidConfig is returned by Validate when ChirpConfig's invariants
// don't hold. It is a distinct value from the top-level package's
// ErrInvalidConfig so that this package has no dependency on sondar; the
// top-level LoadChirpConfig wraps this error under its own sentinel so that
// errors.Is matches either one.
var ErrInvalidConfig = fmt.Errorf("config: invalid configuration")

// Default returns the configuration named by spec: a 48kHz 15-17kHz 20ms
// up-chirp with a 20ms inter-chirp gap, a fixed device latency of
// ~132.78ms, and a 100ms (10Hz) emission period.
func Default() ChirpConfig {
	return ChirpConfig{
		SampleRateHz:    48000,
		FLoHz:           15000,
		FHiHz:           17000,
		ChirpMs:         20,
		InterChirpGapMs: 20,
		DeviceLatencyMs: 132.78,
		EmitPeriodMs:    100,

		SoundSpeedMps:        343.0,
		DopplerMaxSpeedMps:   5.0,
		DopplerHypotheses:    41,
		DopplerRefineSteps:   10,
		DopplerRefineRangeMs: 0.5,
		DopplerEMAAlpha:      0.3,
		ReliabilityThreshold: 0.15,
		WeaknessThreshold:    50,

		BandpassTaps: 101,

		STFTWindow: 512,
		STFTHop:    16,

		BackgroundAlpha: 0.05,

		MinMotionSamples:  3,
		DefaultThetaRad:   15 * (math.Pi / 180),
		MinThetaRad:       1 * (math.Pi / 180),
		SizeIntensityMin:  0.001,
		SizeThresholdFrac: 0.3,
		MaxSizeMm:         1000,
	}
}

// Validate checks the invariants ChirpConfig must hold before it can back a
// session: the chirp band must sit strictly inside the Nyquist interval,
// and every window/step size must be positive.
func (c ChirpConfig) Validate() error {
	nyquist := float64(c.SampleRateHz) / 2
	if !(c.FLoHz > 0 && c.FLoHz < c.FHiHz && c.FHiHz < nyquist) {
		return fmt.Errorf("%w: chirp band [%.1f, %.1f] Hz must sit inside (0, %.1f) Hz", ErrInvalidConfig, c.FLoHz, c.FHiHz, nyquist)
	}
	if c.ChirpMs <= 0 || c.SampleRateHz <= 0 {
		return fmt.Errorf("%w: chirp_ms and sample_rate_hz must be positive", ErrInvalidConfig)
	}
	if c.STFTWindow <= 0 || c.STFTWindow&(c.STFTWindow-1) != 0 {
		return fmt.Errorf("%w: stft_window %d must be a power of two", ErrInvalidConfig, c.STFTWindow)
	}
	if c.STFTHop <= 0 {
		return fmt.Errorf("%w: stft_hop must be positive", ErrInvalidConfig)
	}
	if c.BandpassTaps <= 0 || c.BandpassTaps%2 == 0 {
		return fmt.Errorf("%w: bandpass_taps must be a positive odd number", ErrInvalidConfig)
	}
	if c.DopplerHypotheses <= 0 {
		return fmt.Errorf("%w: doppler_hypotheses must be positive", ErrInvalidConfig)
	}
	return nil
}

// ChirpSamples returns the number of samples in one emitted chirp.
func (c ChirpConfig) ChirpSamples() int {
	return int(float64(c.SampleRateHz) * c.ChirpMs / 1000)
}

// CaptureBufferSamples returns the number of samples the audio driver
// delivers per captured frame: sample_rate/50, matching a 20ms buffer.
func (c ChirpConfig) CaptureBufferSamples() int {
	return c.SampleRateHz / 50
}

// Load reads a ChirpConfig from a YAML file, starting from Default so an
// omitted field keeps its default rather than zeroing out.
func Load(path string) (ChirpConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return ChirpConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChirpConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return ChirpConfig{}, err
	}
	return cfg, nil
}
