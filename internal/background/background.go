// Package background implements recursive leaky-mean background
// subtraction over a TFImage: the first frame of a session bootstraps the
// background estimate, every later frame is foreground-extracted against
// it.
package background

import (
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
)

// Subtractor owns the session's running background estimate. A zero
// Subtractor is ready to use; its first Subtract call bootstraps state
// rather than requiring a separate Init step.
type Subtractor struct {
	alpha      float64
	background frame.TFImage
}

// New returns a Subtractor configured with cfg's leak rate.
func New(cfg config.ChirpConfig) *Subtractor {
	return &Subtractor{alpha: cfg.BackgroundAlpha}
}

// Subtract returns the foreground component of current. On the first call
// of a Subtractor's lifetime it bootstraps the background estimate from
// current (a deep copy) and returns current unchanged. On every later call
// it returns current minus the running background estimate, then leaks the
// estimate toward current by alpha.
func (s *Subtractor) Subtract(current frame.TFImage) frame.TFImage {
	if s.background == nil {
		s.background = current.Clone()
		return current
	}

	foreground := frame.NewTFImage(current.Rows(), current.Cols())
	for r := range current {
		for c := range current[r] {
			foreground[r][c] = current[r][c].Sub(s.background[r][c])
			s.background[r][c] = s.background[r][c].Scale(1 - s.alpha).Add(current[r][c].Scale(s.alpha))
		}
	}
	return foreground
}
