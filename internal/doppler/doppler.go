// Package doppler implements the template-scaling Doppler velocity search:
// a bank of time-warped copies of the chirp reference, correlated against
// the received signal to find the warp that best explains the echo's
// time dilation.
package doppler

import (
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
)

// maxVelocityMps is the hard clamp applied to the smoothed velocity
// estimate before it is used downstream, independent of the search range
// swept by DopplerMaxSpeedMps.
const maxVelocityMps = 10.0

// Search carries the Doppler search state across calls: the last accepted
// velocity and its correlation score, the same state-across-calls shape as
// a codec's last-frame-size/last-mode fields carry concealment state
// between decode calls.
type Search struct {
	cfg           config.ChirpConfig
	lastVelocity  float64
	lastEMA       float64
	lastCorr      float64
	haveEstimate  bool
}

// New returns a Search with zeroed state, ready to process the first frame
// of a session.
func New(cfg config.ChirpConfig) *Search {
	return &Search{cfg: cfg}
}

// Scale returns the resample ratio 1 + v/c_sound for velocity v.
func Scale(v, soundSpeedMps float64) float64 {
	return 1 + v/soundSpeedMps
}

// Resample builds a new sequence of len(template) samples by evaluating
// template at i*scale via linear interpolation; indices that fall outside
// the template are treated as Complex{} (zero). This is the shared
// resample-by-interpolation routine both the template-warp bank here and
// EchoAligner's time-warp use.
func Resample(template []complexnum.Complex, scale float64) []complexnum.Complex {
	n := len(template)
	out := make([]complexnum.Complex, n)
	for i := range out {
		out[i] = sampleAt(template, float64(i)*scale)
	}
	return out
}

// sampleAt linearly interpolates template at fractional index x. Indices
// entirely outside [0, len(template)) yield Complex{}; if only one of the
// two neighbouring samples is in range, that sample is used verbatim
// (bounds degradation).
func sampleAt(template []complexnum.Complex, x float64) complexnum.Complex {
	n := len(template)
	lo := int(x)
	frac := x - float64(lo)
	hi := lo + 1

	loValid := lo >= 0 && lo < n
	hiValid := hi >= 0 && hi < n

	switch {
	case loValid && hiValid:
		return complexnum.Lerp(template[lo], template[hi], frac)
	case loValid:
		return template[lo]
	case hiValid:
		return template[hi]
	default:
		return complexnum.Zero
	}
}

// correlate scores a candidate template against signal via real-valued
// dot-product correlation over the central half of the signal, indices
// [N/4, 3N/4).
func correlate(signal, template []complexnum.Complex) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}
	start, end := n/4, 3*n/4
	var score float64
	for i := start; i < end && i < len(template); i++ {
		score += signal[i].Re*template[i].Re + signal[i].Im*template[i].Im
	}
	return score
}

// Result is the outcome of one Doppler search: the EMA-smoothed velocity
// (already clamped to ±10 m/s and forced to 0 below the reliability
// threshold) and the raw correlation score that drove that decision.
type Result struct {
	VelocityMps   float64
	RawVelocity   float64
	CorrelationScore float64
	Reliable      bool
}

// Estimate runs the full search: a 41-hypothesis sweep across
// [-max, +max] m/s, a 10-step refinement around the argmax, EMA smoothing
// of the refined estimate, and reliability gating.
func (s *Search) Estimate(signal, reference []complexnum.Complex) Result {
	best, bestScore := s.sweep(signal, reference, -s.cfg.DopplerMaxSpeedMps, s.cfg.DopplerMaxSpeedMps, s.cfg.DopplerHypotheses)
	refined, refinedScore := s.sweep(signal, reference, best-s.cfg.DopplerRefineRangeMs, best+s.cfg.DopplerRefineRangeMs, s.cfg.DopplerRefineSteps)
	if refinedScore < bestScore {
		refined, refinedScore = best, bestScore
	}

	if !s.haveEstimate {
		s.lastEMA = refined
		s.haveEstimate = true
	} else {
		alpha := s.cfg.DopplerEMAAlpha
		s.lastEMA = (1-alpha)*s.lastEMA + alpha*refined
	}
	s.lastVelocity = refined
	s.lastCorr = refinedScore

	velocity := clamp(s.lastEMA, maxVelocityMps)
	reliable := refinedScore >= s.cfg.ReliabilityThreshold
	if !reliable {
		velocity = 0
	}

	return Result{
		VelocityMps:      velocity,
		RawVelocity:       refined,
		CorrelationScore: refinedScore,
		Reliable:          reliable,
	}
}

// sweep scores n uniformly spaced velocity hypotheses across [lo, hi] and
// returns the argmax velocity and its score. n == 1 evaluates only lo.
func (s *Search) sweep(signal, reference []complexnum.Complex, lo, hi float64, n int) (float64, float64) {
	if n <= 1 {
		v := lo
		score := correlate(signal, Resample(reference, Scale(v, s.cfg.SoundSpeedMps)))
		return v, score
	}

	step := (hi - lo) / float64(n-1)
	bestV, bestScore := lo, correlate(signal, Resample(reference, Scale(lo, s.cfg.SoundSpeedMps)))
	for i := 1; i < n; i++ {
		v := lo + step*float64(i)
		score := correlate(signal, Resample(reference, Scale(v, s.cfg.SoundSpeedMps)))
		if score > bestScore {
			bestV, bestScore = v, score
		}
	}
	return bestV, bestScore
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
