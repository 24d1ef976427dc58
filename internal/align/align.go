// Package align implements EchoAligner: it Doppler-compensates a
// preprocessed frame by time-warping it against the estimated velocity,
// then strips the fixed device latency.
package align

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/doppler"
)

// Align Doppler-compensates frame and strips the configured device
// latency. It invokes search.Estimate against reference to obtain the
// velocity used for the time warp, and returns that Result alongside the
// aligned frame so the caller can publish velocity/correlation without a
// second search.
//
// Robustness clause: if the time-warped output is entirely zero, or the
// input's peak magnitude is below the configured weakness threshold, the
// original frame is used without the time warp; it is still
// latency-stripped like a warped frame (the Doppler Result is still
// computed and returned, so the caller keeps a velocity estimate even on
// a weak frame).
func Align(input []complexnum.Complex, search *doppler.Search, reference []complexnum.Complex, cfg config.ChirpConfig) ([]complexnum.Complex, doppler.Result) {
	if len(input) == 0 {
		return input, doppler.Result{}
	}

	result := search.Estimate(input, reference)

	inputMax := maxMagnitude(input)
	scale := doppler.Scale(result.VelocityMps, cfg.SoundSpeedMps)
	warped := doppler.Resample(input, scale)

	if inputMax < cfg.WeaknessThreshold || maxMagnitude(warped) == 0 {
		return stripLatency(input, cfg), result
	}

	return stripLatency(warped, cfg), result
}

// stripLatency left-shifts frame by round(device_latency_ms*sample_rate/1000)
// samples, zero-filling the trailing positions the shift vacates.
func stripLatency(frame []complexnum.Complex, cfg config.ChirpConfig) []complexnum.Complex {
	n := len(frame)
	shift := int(math.Round(cfg.DeviceLatencyMs * float64(cfg.SampleRateHz) / 1000))
	if shift <= 0 {
		out := make([]complexnum.Complex, n)
		copy(out, frame)
		return out
	}
	if shift >= n {
		return make([]complexnum.Complex, n)
	}

	out := make([]complexnum.Complex, n)
	copy(out, frame[shift:])
	return out
}

func maxMagnitude(frame []complexnum.Complex) float64 {
	var max float64
	for _, c := range frame {
		if m := c.Magnitude(); m > max {
			max = m
		}
	}
	return max
}
