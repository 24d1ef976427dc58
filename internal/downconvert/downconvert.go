// Package downconvert implements dechirp mixing, the windowed short-time
// Fourier transform, and the range-Doppler slow-time FFT — the three
// stages that turn an aligned baseband frame into a range-Doppler image.
package downconvert

import (
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/fft"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
	"github.com/Kelvin23-utd/sondar1/internal/window"
)

// Dechirp elementwise-multiplies the aligned frame against downchirp,
// collapsing the chirp's linear phase term. Positions beyond the end of
// downchirp are zeroed rather than left unmixed.
func Dechirp(aligned, downchirp []complexnum.Complex) []complexnum.Complex {
	out := make([]complexnum.Complex, len(aligned))
	for i := range aligned {
		if i < len(downchirp) {
			out[i] = aligned[i].Mul(downchirp[i])
		}
	}
	return out
}

// STFT slides a Hann-tapered window of length windowSize across baseband,
// stepped by hop, FFT-ing each window and keeping only the first
// windowSize/2 (positive-frequency) bins. The number of windows produced
// is floor((len(baseband)-windowSize)/hop) + 1; if baseband is shorter than
// windowSize, no windows are produced.
func STFT(baseband []complexnum.Complex, windowSize, hop int) (frame.TFImage, error) {
	l := len(baseband)
	if l < windowSize {
		return frame.TFImage{}, nil
	}

	numWindows := (l-windowSize)/hop + 1
	hann := window.HannTable(windowSize)
	halfWindow := windowSize / 2

	img := frame.NewTFImage(numWindows, halfWindow)
	for w := 0; w < numWindows; w++ {
		start := w * hop
		tapered := make([]complexnum.Complex, windowSize)
		for i := 0; i < windowSize; i++ {
			tapered[i] = baseband[start+i].Scale(hann[i])
		}

		spectrum, err := fft.Forward(tapered)
		if err != nil {
			return nil, err
		}
		copy(img[w], spectrum[:halfWindow])
	}
	return img, nil
}

// RangeDoppler transforms a TFImage into a RangeDopplerImage: for each
// frequency bin, the column across windows (slow time) is zero-padded to
// the next power of two and FFT'd; the magnitude of the result becomes that
// bin's output row.
func RangeDoppler(tf frame.TFImage) (frame.RangeDopplerImage, error) {
	rows := tf.Rows()
	if rows == 0 {
		return frame.RangeDopplerImage{}, nil
	}
	cols := tf.Cols()
	p := fft.NextPowerOfTwo(rows)

	out := frame.NewRangeDopplerImage(cols, p)
	for bin := 0; bin < cols; bin++ {
		column := make([]complexnum.Complex, p)
		for w := 0; w < rows; w++ {
			column[w] = tf[w][bin]
		}

		spectrum, err := fft.Forward(column)
		if err != nil {
			return nil, err
		}
		for t := 0; t < p; t++ {
			out[bin][t] = float32(spectrum[t].Magnitude())
		}
	}
	return out, nil
}
