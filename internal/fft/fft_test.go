package fft

import (
	"math"
	"testing"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
)

func TestForwardRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Forward(make([]complexnum.Complex, 100))
	if err != ErrNotPowerOfTwo {
		t.Fatalf("Forward(len=100) error = %v, want ErrNotPowerOfTwo", err)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16, 64, 512} {
		x := make([]complexnum.Complex, n)
		for i := range x {
			x[i] = complexnum.Complex{
				Re: math.Sin(2 * math.Pi * float64(i) / float64(n) * 3),
				Im: math.Cos(2 * math.Pi * float64(i) / float64(n) * 5),
			}
		}

		freq, err := Forward(x)
		if err != nil {
			t.Fatalf("Forward(n=%d): %v", n, err)
		}
		back, err := Inverse(freq)
		if err != nil {
			t.Fatalf("Inverse(n=%d): %v", n, err)
		}

		for i := range x {
			if math.Abs(back[i].Re-x[i].Re) > 1e-9 || math.Abs(back[i].Im-x[i].Im) > 1e-9 {
				t.Fatalf("round-trip mismatch at n=%d i=%d: got %+v, want %+v", n, i, back[i], x[i])
			}
		}
	}
}

func TestForwardKnownImpulse(t *testing.T) {
	x := make([]complexnum.Complex, 8)
	x[0] = complexnum.Complex{Re: 1}

	freq, err := Forward(x)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	for i, v := range freq {
		if math.Abs(v.Re-1) > 1e-9 || math.Abs(v.Im) > 1e-9 {
			t.Errorf("freq[%d] = %+v, want {1 0}", i, v)
		}
	}
}

func TestForward2DRoundTrip(t *testing.T) {
	grid := make([][]complexnum.Complex, 4)
	for r := range grid {
		grid[r] = make([]complexnum.Complex, 8)
		for c := range grid[r] {
			grid[r][c] = complexnum.Complex{Re: float64(r*8 + c), Im: float64(-(r + c))}
		}
	}

	freq, err := Forward2D(grid)
	if err != nil {
		t.Fatalf("Forward2D: %v", err)
	}
	back, err := Inverse2D(freq)
	if err != nil {
		t.Fatalf("Inverse2D: %v", err)
	}

	for r := range grid {
		for c := range grid[r] {
			if math.Abs(back[r][c].Re-grid[r][c].Re) > 1e-6 || math.Abs(back[r][c].Im-grid[r][c].Im) > 1e-6 {
				t.Fatalf("round-trip mismatch at (%d,%d): got %+v, want %+v", r, c, back[r][c], grid[r][c])
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {16, 16}, {17, 32}, {63, 64},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
