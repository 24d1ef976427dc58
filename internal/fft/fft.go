// Package fft implements a radix-2 Cooley-Tukey FFT, iterative and
// in-place, operating on power-of-two-length complex arrays only.
//
// Sizes that are not a power of two are rejected outright rather than
// falling back to a mixed-radix or Bluestein algorithm — the pipeline's
// window and padding choices already guarantee every array handed to
// Forward/Inverse is a power of two, so silently accepting other sizes
// would only hide a configuration bug upstream.
package fft

import (
	"fmt"
	"math"
	"sync"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
)

// ErrNotPowerOfTwo is returned when Forward or Inverse is asked to
// transform a slice whose length is not a power of two.
var ErrNotPowerOfTwo = fmt.Errorf("fft: length must be a power of two")

// state holds the precomputed twiddle factors and bit-reversal permutation
// for one FFT size, cached so repeated calls at the same size (the common
// case — STFT windows and range-Doppler columns are fixed-size across a
// whole session) don't recompute them.
type state struct {
	n        int
	twiddles []complexnum.Complex // twiddles[k] = exp(-2πik/n), k = 0..n/2-1
	bitrev   []int
}

var (
	cacheMu sync.Mutex
	cache   = make(map[int]*state)
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func getState(n int) (*state, error) {
	if !isPowerOfTwo(n) {
		return nil, ErrNotPowerOfTwo
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[n]; ok {
		return s, nil
	}

	s := &state{n: n}
	s.twiddles = make([]complexnum.Complex, n/2)
	for k := 0; k < n/2; k++ {
		angle := -2 * math.Pi * float64(k) / float64(n)
		s.twiddles[k] = complexnum.Complex{Re: math.Cos(angle), Im: math.Sin(angle)}
	}

	s.bitrev = make([]int, n)
	bits := int(math.Log2(float64(n)))
	for i := 0; i < n; i++ {
		s.bitrev[i] = reverseBits(i, bits)
	}

	cache[n] = s
	return s, nil
}

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// Forward computes the DFT of x and returns a new slice of the same
// length. len(x) must be a power of two.
func Forward(x []complexnum.Complex) ([]complexnum.Complex, error) {
	s, err := getState(len(x))
	if err != nil {
		return nil, err
	}
	out := make([]complexnum.Complex, s.n)
	for i, j := range s.bitrev {
		out[j] = x[i]
	}
	butterfly(out, s.twiddles)
	return out, nil
}

// butterfly performs the iterative Cooley-Tukey decimation-in-time passes
// over a bit-reversed input, in place.
func butterfly(out []complexnum.Complex, twiddles []complexnum.Complex) {
	n := len(out)
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		stride := n / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := twiddles[k*stride]
				even := out[start+k]
				odd := out[start+k+half].Mul(w)
				out[start+k] = even.Add(odd)
				out[start+k+half] = even.Sub(odd)
			}
		}
	}
}

// Inverse computes the inverse DFT: conjugate the input, run Forward,
// scale by 1/N, and conjugate the result again.
func Inverse(x []complexnum.Complex) ([]complexnum.Complex, error) {
	n := len(x)
	conjIn := make([]complexnum.Complex, n)
	for i, v := range x {
		conjIn[i] = v.Conj()
	}

	out, err := Forward(conjIn)
	if err != nil {
		return nil, err
	}

	scale := 1.0 / float64(n)
	for i := range out {
		out[i] = out[i].Conj().Scale(scale)
	}
	return out, nil
}

// Forward2D applies Forward row-wise then column-wise over a rectangular
// grid. Both dimensions must be powers of two.
func Forward2D(grid [][]complexnum.Complex) ([][]complexnum.Complex, error) {
	return transform2D(grid, Forward)
}

// Inverse2D applies Inverse row-wise then column-wise over a rectangular
// grid. Both dimensions must be powers of two.
func Inverse2D(grid [][]complexnum.Complex) ([][]complexnum.Complex, error) {
	return transform2D(grid, Inverse)
}

func transform2D(grid [][]complexnum.Complex, transform func([]complexnum.Complex) ([]complexnum.Complex, error)) ([][]complexnum.Complex, error) {
	rows := len(grid)
	if rows == 0 {
		return nil, nil
	}
	cols := len(grid[0])

	out := make([][]complexnum.Complex, rows)
	for r := 0; r < rows; r++ {
		transformed, err := transform(grid[r])
		if err != nil {
			return nil, fmt.Errorf("fft: row %d: %w", r, err)
		}
		out[r] = transformed
	}

	col := make([]complexnum.Complex, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			col[r] = out[r][c]
		}
		transformed, err := transform(col)
		if err != nil {
			return nil, fmt.Errorf("fft: column %d: %w", c, err)
		}
		for r := 0; r < rows; r++ {
			out[r][c] = transformed[r]
		}
	}
	return out, nil
}

// NextPowerOfTwo returns the smallest power of two greater than or equal
// to n. NextPowerOfTwo(0) returns 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
