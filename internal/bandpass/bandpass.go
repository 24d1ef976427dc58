// Package bandpass builds and applies the windowed-sinc FIR kernel that
// preprocesses captured frames before Doppler search and alignment.
package bandpass

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/window"
)

// Kernel is a symmetric FIR kernel, built once per session from ChirpConfig
// and reused for every captured frame — the same "build once, apply many"
// shape internal/chirp uses for its templates.
type Kernel struct {
	taps []float64
}

// sinc returns sin(x)/x, with sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// New builds a BandpassTaps-length symmetric kernel as the difference of
// two sinc functions at the normalized cut-offs 2πf_lo/Fs and 2πf_hi/Fs,
// Hamming-windowed.
func New(cfg config.ChirpConfig) Kernel {
	n := cfg.BandpassTaps
	fs := float64(cfg.SampleRateHz)
	wLo := 2 * math.Pi * cfg.FLoHz / fs
	wHi := 2 * math.Pi * cfg.FHiHz / fs
	center := float64(n-1) / 2
	hamming := window.HammingTable(n)

	taps := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) - center
		taps[i] = (wHi*sinc(wHi*x) - wLo*sinc(wLo*x)) / math.Pi * hamming[i]
	}
	return Kernel{taps: taps}
}

// Apply convolves kernel over input, treating samples outside the input as
// zero. Each output sample is Σ kernel[j]·input[i-j+K/2] applied
// independently to the real and imaginary channels.
func (k Kernel) Apply(input []complexnum.Complex) []complexnum.Complex {
	n := len(input)
	out := make([]complexnum.Complex, n)
	half := len(k.taps) / 2

	for i := 0; i < n; i++ {
		var re, im float64
		for j, tap := range k.taps {
			idx := i - j + half
			if idx < 0 || idx >= n {
				continue
			}
			re += tap * input[idx].Re
			im += tap * input[idx].Im
		}
		out[i] = complexnum.Complex{Re: re, Im: im}
	}
	return out
}
