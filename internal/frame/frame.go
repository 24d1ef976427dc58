// Package frame defines the data shapes that flow between pipeline
// stages: RealFrame (captured PCM), ComplexFrame (preprocessed baseband),
// TFImage (time-frequency), RangeDopplerImage, and PhysicalImage.
package frame

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
)

// RealFrame is exactly one capture buffer of signed-16-bit PCM samples.
type RealFrame []int16

// ComplexFrame is a sequence of complex samples, generally the same length
// as the RealFrame it was derived from.
type ComplexFrame []complexnum.Complex

// TFImage is a time-frequency image indexed [windowIdx][freqBin], where
// freqBin covers only positive frequencies (N/2 bins per window).
type TFImage [][]complexnum.Complex

// Rows reports the number of STFT windows (time axis).
func (img TFImage) Rows() int { return len(img) }

// Cols reports the number of frequency bins per window, or 0 for an empty
// image.
func (img TFImage) Cols() int {
	if len(img) == 0 {
		return 0
	}
	return len(img[0])
}

// Clone returns a deep copy of img.
func (img TFImage) Clone() TFImage {
	out := make(TFImage, len(img))
	for i, row := range img {
		out[i] = append([]complexnum.Complex(nil), row...)
	}
	return out
}

// NewTFImage allocates a zeroed TFImage of the given shape.
func NewTFImage(rows, cols int) TFImage {
	img := make(TFImage, rows)
	for i := range img {
		img[i] = make([]complexnum.Complex, cols)
	}
	return img
}

// RangeDopplerImage is a magnitude image indexed [freqBin][slowTimeBin].
// Its width (slow-time axis) is padded to the next power of two.
type RangeDopplerImage [][]float32

// Rows reports the number of range (fast-time frequency) bins.
func (img RangeDopplerImage) Rows() int { return len(img) }

// Cols reports the number of Doppler (slow-time) bins, or 0 if empty.
func (img RangeDopplerImage) Cols() int {
	if len(img) == 0 {
		return 0
	}
	return len(img[0])
}

// NewRangeDopplerImage allocates a zeroed RangeDopplerImage of the given
// shape.
func NewRangeDopplerImage(rows, cols int) RangeDopplerImage {
	img := make(RangeDopplerImage, rows)
	for i := range img {
		img[i] = make([]float32, cols)
	}
	return img
}

// Clone returns a deep copy of img.
func (img RangeDopplerImage) Clone() RangeDopplerImage {
	out := make(RangeDopplerImage, len(img))
	for i, row := range img {
		out[i] = append([]float32(nil), row...)
	}
	return out
}

// Max returns the global maximum magnitude and its (row, col) position.
// An empty image returns (0, 0, 0).
func (img RangeDopplerImage) Max() (value float32, row, col int) {
	for r, line := range img {
		for c, v := range line {
			if v > value {
				value = v
				row, col = r, c
			}
		}
	}
	return value, row, col
}

// PhysicalImage is a RangeDopplerImage re-centred on the strongest
// reflector, together with the physical resolution of each cell.
type PhysicalImage struct {
	Magnitude           RangeDopplerImage
	RangeResolutionMm   float64 // mm per row (range axis)
	AzimuthResolutionMm float64 // mm per column (azimuth axis)
	CenterRow           int
	CenterCol           int
}

// RealFrameFromInt16 copies samples into a fresh RealFrame — the capture
// actor's contract is to own a copy before the audio driver reuses its
// buffer.
func RealFrameFromInt16(samples []int16) RealFrame {
	out := make(RealFrame, len(samples))
	copy(out, samples)
	return out
}

// ToComplexFrame lifts a RealFrame into a ComplexFrame with a zero
// imaginary part. Values stay on the signed-16 PCM scale (not normalized
// to [-1, 1]) so that weakness/reliability thresholds expressed in raw
// amplitude apply uniformly across every stage.
func (f RealFrame) ToComplexFrame() ComplexFrame {
	out := make(ComplexFrame, len(f))
	for i, s := range f {
		out[i] = complexnum.Complex{Re: float64(s)}
	}
	return out
}

// ToInt16 clamps a real-valued waveform already on the signed-16 PCM scale
// down to actual int16 samples, rounding to the nearest integer.
func ToInt16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = clampInt16(s)
	}
	return out
}

func clampInt16(scaled float64) int16 {
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(math.RoundToEven(scaled))
}

// MaxMagnitude returns the largest magnitude in a ComplexFrame, or 0 for an
// empty frame.
func (f ComplexFrame) MaxMagnitude() float64 {
	var max float64
	for _, c := range f {
		if m := c.Magnitude(); m > max {
			max = m
		}
	}
	return max
}
