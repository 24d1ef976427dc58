// Package chirp synthesizes the linear FM up-chirp SONDAR emits and the two
// templates derived from it: the analytic reference (used for Doppler
// search and echo alignment) and the analytic down-chirp (used for
// baseband dechirp mixing).
//
// The window-table precompute pattern mirrors internal/window: a chirp's
// waveform only depends on ChirpConfig, so a session builds it once at
// start and every stage reads it as PipelineState for the rest of the
// session's life.
package chirp

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/window"
)

// Template holds the three waveforms a ChirpConfig generates: the real
// emission waveform (windowed, amplitude-scaled for playback), the
// analytic reference (the same phase, zero imaginary part), and the
// analytic down-chirp (unit-magnitude, negated phase) used as the
// baseband mixing signal.
type Template struct {
	Emission  []int16
	Reference []complexnum.Complex
	Downchirp []complexnum.Complex
}

// i16Max is the positive signed-16 amplitude ceiling; the emission
// waveform is scaled to 80% of it, per spec.
const i16Max = 32767

// New builds the up-chirp emission waveform and its two derived templates
// from cfg. Sample i has instantaneous phase 2π(f_lo·t + ½k·t²) where
// t = i/sample_rate and k = (f_hi - f_lo)/(chirp_ms/1000).
func New(cfg config.ChirpConfig) Template {
	n := cfg.ChirpSamples()
	k := (cfg.FHiHz - cfg.FLoHz) / (cfg.ChirpMs / 1000)
	sampleRate := float64(cfg.SampleRateHz)
	hamming := window.HammingTable(n)

	emission := make([]int16, n)
	reference := make([]complexnum.Complex, n)
	downchirp := make([]complexnum.Complex, n)

	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		phi := 2 * math.Pi * (cfg.FLoHz*t + 0.5*k*t*t)

		waveform := hamming[i] * math.Cos(phi) * 0.8 * i16Max
		emission[i] = int16(math.RoundToEven(waveform))
		reference[i] = complexnum.Complex{Re: waveform}

		downchirp[i] = complexnum.Complex{Re: math.Cos(-phi), Im: math.Sin(-phi)}
	}

	return Template{Emission: emission, Reference: reference, Downchirp: downchirp}
}
