// Package window computes the tapering windows the DSP stages apply before
// transforming a frame: Hamming (chirp synthesis, bandpass FIR design) and
// Hann (STFT analysis).
package window

import (
	"math"
	"sync"
)

// Hamming returns w(i) = 0.54 - 0.46*cos(2πi/(n-1)) for i in [0, n).
// A single-sample window (n == 1) is defined as 1.
func Hamming(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

// Hann returns w(i) = 0.5*(1 - cos(2πi/(n-1))) for i in [0, n).
func Hann(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

var (
	hammingCacheMu sync.Mutex
	hammingCache   = make(map[int][]float64)

	hannCacheMu sync.Mutex
	hannCache   = make(map[int][]float64)
)

// HammingTable returns a cached, precomputed Hamming window of length n.
// The slice returned must not be mutated by the caller.
func HammingTable(n int) []float64 {
	hammingCacheMu.Lock()
	defer hammingCacheMu.Unlock()

	if t, ok := hammingCache[n]; ok {
		return t
	}
	t := make([]float64, n)
	for i := range t {
		t[i] = Hamming(i, n)
	}
	hammingCache[n] = t
	return t
}

// HannTable returns a cached, precomputed Hann window of length n.
// The slice returned must not be mutated by the caller.
func HannTable(n int) []float64 {
	hannCacheMu.Lock()
	defer hannCacheMu.Unlock()

	if t, ok := hannCache[n]; ok {
		return t
	}
	t := make([]float64, n)
	for i := range t {
		t[i] = Hann(i, n)
	}
	hannCache[n] = t
	return t
}
