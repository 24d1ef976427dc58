package doppler

import (
	"math"
	"testing"

	"github.com/Kelvin23-utd/sondar1/internal/chirp"
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
)

func TestResampleFallsOffEdgeToZero(t *testing.T) {
	tpl := []complexnum.Complex{{Re: 1}, {Re: 2}, {Re: 3}}
	out := Resample(tpl, 10)
	if out[0] != tpl[0] {
		t.Errorf("Resample[0] = %+v, want %+v", out[0], tpl[0])
	}
	if out[2] != complexnum.Zero {
		t.Errorf("Resample[2] (index 20 out of range) = %+v, want zero", out[2])
	}
}

func TestResampleIdentityAtUnitScale(t *testing.T) {
	tpl := []complexnum.Complex{{Re: 1}, {Re: 2}, {Re: 3}}
	out := Resample(tpl, 1.0)
	for i, c := range out {
		if c != tpl[i] {
			t.Errorf("Resample with scale 1, index %d = %+v, want %+v", i, c, tpl[i])
		}
	}
}

func TestEstimateConvergesToConstantVelocity(t *testing.T) {
	cfg := config.Default()
	tpl := chirp.New(cfg)
	search := New(cfg)

	const trueVelocity = 1.0
	scale := Scale(trueVelocity, cfg.SoundSpeedMps)
	echo := Resample(tpl.Reference, scale)

	var result Result
	for i := 0; i < 20; i++ {
		result = search.Estimate(echo, tpl.Reference)
	}

	if !result.Reliable {
		t.Fatalf("expected reliable estimate after 20 frames, correlation=%v", result.CorrelationScore)
	}
	if math.Abs(result.VelocityMps-trueVelocity) > 0.05 {
		t.Errorf("VelocityMps = %v, want within 0.05 of %v", result.VelocityMps, trueVelocity)
	}
}

func TestEstimateClampsVelocity(t *testing.T) {
	cfg := config.Default()
	s := New(cfg)
	s.lastEMA = 1000
	s.haveEstimate = true
	v := clamp(s.lastEMA, maxVelocityMps)
	if v != maxVelocityMps {
		t.Errorf("clamp(1000, %v) = %v, want %v", maxVelocityMps, v, maxVelocityMps)
	}
}

func TestEstimateForcesZeroBelowReliabilityThreshold(t *testing.T) {
	cfg := config.Default()
	search := New(cfg)
	silence := make([]complexnum.Complex, cfg.CaptureBufferSamples())
	tpl := chirp.New(cfg)

	result := search.Estimate(silence, tpl.Reference)
	if result.Reliable {
		t.Fatalf("expected unreliable correlation against silence, got %v", result.CorrelationScore)
	}
	if result.VelocityMps != 0 {
		t.Errorf("VelocityMps = %v, want 0 for unreliable correlation", result.VelocityMps)
	}
}
