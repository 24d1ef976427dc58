package sondar

import (
	"testing"
	"time"

	"github.com/Kelvin23-utd/sondar1/internal/config"
)

func TestSessionStartProcessesPushedFramesAndStop(t *testing.T) {
	cfg := config.Default()
	cfg.EmitPeriodMs = 20

	driver := NewSyntheticDriver()
	results := newChanResultSink(4)
	session := NewSession(cfg, driver, results, nil, nil)

	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	driver.PushFrame(make(RealFrame, cfg.CaptureBufferSamples()))

	select {
	case <-results.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published result")
	}

	if err := session.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	// Stop must be idempotent.
	if err := session.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestSessionEmitsOnTimer(t *testing.T) {
	cfg := config.Default()
	cfg.EmitPeriodMs = 10

	driver := NewSyntheticDriver()
	session := NewSession(cfg, driver, ResultSinkFunc(func(Result) {}), nil, nil)
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer session.Stop()

	deadline := time.After(2 * time.Second)
	for len(driver.Emitted()) == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for an emitted chirp")
		case <-time.After(15 * time.Millisecond):
		}
	}
}
