package align

import (
	"testing"

	"github.com/Kelvin23-utd/sondar1/internal/chirp"
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/doppler"
)

func TestAlignEmptyFrame(t *testing.T) {
	search := doppler.New(config.Default())
	out, result := Align(nil, search, nil, config.Default())
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
	if result.VelocityMps != 0 {
		t.Errorf("VelocityMps = %v, want 0", result.VelocityMps)
	}
}

func TestAlignWeakFrameReturnsInputStrippedOnly(t *testing.T) {
	cfg := config.Default()
	search := doppler.New(cfg)
	tpl := chirp.New(cfg)

	shift := int(cfg.DeviceLatencyMs * float64(cfg.SampleRateHz) / 1000)
	// The default latency (6373 samples) is longer than one capture buffer,
	// so the frame is made long enough for samples to survive the strip.
	weak := make([]complexnum.Complex, shift+cfg.CaptureBufferSamples())
	for i := range weak {
		weak[i] = complexnum.Complex{Re: 1} // well below WeaknessThreshold=50
	}

	out, _ := Align(weak, search, tpl.Reference, cfg)
	if len(out) != len(weak) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(weak))
	}
	if out[0] != weak[shift] {
		t.Errorf("out[0] = %+v, want weak[%d] = %+v (latency-stripped, not re-warped)", out[0], shift, weak[shift])
	}
}

func TestStripLatencyZeroFillsTrailingSamples(t *testing.T) {
	cfg := config.Default()
	n := cfg.CaptureBufferSamples()
	frame := make([]complexnum.Complex, n)
	for i := range frame {
		frame[i] = complexnum.Complex{Re: float64(i + 1)}
	}

	out := stripLatency(frame, cfg)
	if len(out) != n {
		t.Fatalf("len(out) = %d, want %d", len(out), n)
	}
	if out[n-1] != (complexnum.Complex{}) {
		t.Errorf("out[n-1] = %+v, want zero-filled", out[n-1])
	}
}
