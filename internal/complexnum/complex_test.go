package complexnum

import (
	"math"
	"testing"
)

func TestAddMulMagnitudePhase(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Complex
		wantAdd   Complex
		wantMul   Complex
		wantMagA  float64
		wantPhase float64
	}{
		{
			name:      "unit real",
			a:         Complex{Re: 1, Im: 0},
			b:         Complex{Re: 0, Im: 1},
			wantAdd:   Complex{Re: 1, Im: 1},
			wantMul:   Complex{Re: 0, Im: 1},
			wantMagA:  1,
			wantPhase: 0,
		},
		{
			name:      "3-4-5 triangle",
			a:         Complex{Re: 3, Im: 4},
			b:         Complex{Re: 1, Im: 0},
			wantAdd:   Complex{Re: 4, Im: 4},
			wantMul:   Complex{Re: 3, Im: 4},
			wantMagA:  5,
			wantPhase: math.Atan2(4, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); got != tt.wantAdd {
				t.Errorf("Add() = %+v, want %+v", got, tt.wantAdd)
			}
			if got := tt.a.Mul(tt.b); got != tt.wantMul {
				t.Errorf("Mul() = %+v, want %+v", got, tt.wantMul)
			}
			if got := tt.a.Magnitude(); math.Abs(got-tt.wantMagA) > 1e-9 {
				t.Errorf("Magnitude() = %v, want %v", got, tt.wantMagA)
			}
			if got := tt.a.Phase(); math.Abs(got-tt.wantPhase) > 1e-9 {
				t.Errorf("Phase() = %v, want %v", got, tt.wantPhase)
			}
		})
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	for _, phase := range []float64{0, math.Pi / 4, math.Pi / 2, -math.Pi / 3} {
		c := FromPolar(2.5, phase)
		if math.Abs(c.Magnitude()-2.5) > 1e-9 {
			t.Errorf("FromPolar(2.5, %v).Magnitude() = %v, want 2.5", phase, c.Magnitude())
		}
		if math.Abs(c.Phase()-phase) > 1e-9 {
			t.Errorf("FromPolar(2.5, %v).Phase() = %v, want %v", phase, c.Phase(), phase)
		}
	}
}

func TestLerp(t *testing.T) {
	a := Complex{Re: 0, Im: 0}
	b := Complex{Re: 10, Im: -10}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %+v, want %+v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %+v, want %+v", got, b)
	}
	if got, want := Lerp(a, b, 0.5), (Complex{Re: 5, Im: -5}); got != want {
		t.Errorf("Lerp(t=0.5) = %+v, want %+v", got, want)
	}
}
