package bandpass

import (
	"math"
	"testing"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
)

func tone(freqHz float64, cfg config.ChirpConfig, n int) []complexnum.Complex {
	out := make([]complexnum.Complex, n)
	for i := range out {
		t := float64(i) / float64(cfg.SampleRateHz)
		out[i] = complexnum.Complex{Re: 1000 * math.Cos(2*math.Pi*freqHz*t)}
	}
	return out
}

func gainDB(in, out []complexnum.Complex) float64 {
	var inRMS, outRMS float64
	// Skip the FIR's group delay at each edge to avoid measuring the
	// filter's transient response.
	skip := 200
	count := 0
	for i := skip; i < len(in)-skip; i++ {
		inRMS += in[i].Magnitude() * in[i].Magnitude()
		outRMS += out[i].Magnitude() * out[i].Magnitude()
		count++
	}
	inRMS = math.Sqrt(inRMS / float64(count))
	outRMS = math.Sqrt(outRMS / float64(count))
	if inRMS == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(outRMS/inRMS)
}

func TestPassbandCenterToneLowAttenuation(t *testing.T) {
	cfg := config.Default()
	k := New(cfg)
	center := (cfg.FLoHz + cfg.FHiHz) / 2
	in := tone(center, cfg, 2000)
	out := k.Apply(in)

	if g := gainDB(in, out); g < -1 {
		t.Errorf("center-tone gain = %.2f dB, want >= -1 dB", g)
	}
}

func TestStopbandTonesAttenuated(t *testing.T) {
	cfg := config.Default()
	k := New(cfg)

	for _, freq := range []float64{cfg.FLoHz / 2, cfg.FHiHz * 2} {
		in := tone(freq, cfg, 2000)
		out := k.Apply(in)
		if g := gainDB(in, out); g > -30 {
			t.Errorf("stopband tone %v Hz gain = %.2f dB, want <= -30 dB", freq, g)
		}
	}
}

func TestApplyPreservesLength(t *testing.T) {
	cfg := config.Default()
	k := New(cfg)
	in := make([]complexnum.Complex, 37)
	if out := k.Apply(in); len(out) != len(in) {
		t.Errorf("len(Apply(in)) = %d, want %d", len(out), len(in))
	}
}
