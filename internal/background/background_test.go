package background

import (
	"testing"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
)

func sampleImage(v float64) frame.TFImage {
	img := frame.NewTFImage(2, 2)
	for r := range img {
		for c := range img[r] {
			img[r][c] = complexnum.Complex{Re: v}
		}
	}
	return img
}

func TestFirstFrameReturnedUnchanged(t *testing.T) {
	s := New(config.Default())
	in := sampleImage(5)
	out := s.Subtract(in)

	for r := range in {
		for c := range in[r] {
			if out[r][c] != in[r][c] {
				t.Fatalf("first frame out[%d][%d] = %+v, want %+v", r, c, out[r][c], in[r][c])
			}
		}
	}
}

func TestSecondFrameSubtractsBootstrappedBackground(t *testing.T) {
	s := New(config.Default())
	s.Subtract(sampleImage(5))
	out := s.Subtract(sampleImage(7))

	want := 7.0 - 5.0
	if out[0][0].Re != want {
		t.Errorf("out[0][0].Re = %v, want %v", out[0][0].Re, want)
	}
}

func TestBackgroundLeaksTowardCurrent(t *testing.T) {
	cfg := config.Default()
	s := New(cfg)
	s.Subtract(sampleImage(0))
	s.Subtract(sampleImage(10))

	wantBackground := (1-cfg.BackgroundAlpha)*0 + cfg.BackgroundAlpha*10
	if s.background[0][0].Re != wantBackground {
		t.Errorf("background[0][0].Re = %v, want %v", s.background[0][0].Re, wantBackground)
	}
}
