// Package physical maps a range-Doppler image into physical (millimetre)
// space: it estimates the synthetic-aperture angle swept by target
// rotation from a distance history, derives range/azimuth resolution,
// recenters the image on its strongest reflector, and extracts a
// bounding-box size at a signal-relative threshold.
//
// No example repo in the corpus implements synthetic-aperture geometry;
// this stage is written directly from the distance/resolution/size
// formulas rather than generalized from a teacher pattern.
package physical

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
)

// MotionTheta estimates the angular aperture swept by the target from a
// history of estimated distances. Fewer than cfg.MinMotionSamples readings
// fall back to cfg.DefaultThetaRad; the result is always clamped to at
// least cfg.MinThetaRad to keep the azimuth-resolution division well
// behaved.
func MotionTheta(distances []float64, cfg config.ChirpConfig) float64 {
	if len(distances) < cfg.MinMotionSamples {
		return clampTheta(cfg.DefaultThetaRad, cfg)
	}

	dMin := distances[0]
	for _, d := range distances {
		if d < dMin {
			dMin = d
		}
	}
	first, last := distances[0], distances[len(distances)-1]
	theta := math.Acos(dMin/first) + math.Acos(dMin/last)
	return clampTheta(theta, cfg)
}

func clampTheta(theta float64, cfg config.ChirpConfig) float64 {
	if theta < cfg.MinThetaRad {
		return cfg.MinThetaRad
	}
	return theta
}

// RangeResolutionMm returns the millimetre extent of one range-axis cell:
// (c_sound_mm * T_c) / (2 * B * T_total).
func RangeResolutionMm(cfg config.ChirpConfig) float64 {
	cSoundMm := cfg.SoundSpeedMps * 1000
	tc := cfg.ChirpMs / 1000
	b := cfg.FHiHz - cfg.FLoHz
	tTotal := (cfg.ChirpMs + cfg.InterChirpGapMs) / 1000
	return (cSoundMm * tc) / (2 * b * tTotal)
}

// AzimuthResolutionMm returns the millimetre extent of one azimuth-axis
// cell: (c_sound_mm / f_lo) / (2*theta).
func AzimuthResolutionMm(thetaRad float64, cfg config.ChirpConfig) float64 {
	cSoundMm := cfg.SoundSpeedMps * 1000
	return (cSoundMm / cfg.FLoHz) / (2 * thetaRad)
}

// Map locates the global maximum of rd, recenters the image so that pixel
// lands at (rows/2, cols/2), and returns the recentered PhysicalImage
// carrying the resolutions computed from thetaRad and cfg. Positions that
// would read from outside the source image after the shift are left at
// zero.
func Map(rd frame.RangeDopplerImage, thetaRad float64, cfg config.ChirpConfig) frame.PhysicalImage {
	rows, cols := rd.Rows(), rd.Cols()
	_, peakRow, peakCol := rd.Max()

	centerRow, centerCol := rows/2, cols/2
	shiftRow, shiftCol := centerRow-peakRow, centerCol-peakCol

	out := frame.NewRangeDopplerImage(rows, cols)
	for r := 0; r < rows; r++ {
		srcR := r - shiftRow
		if srcR < 0 || srcR >= rows {
			continue
		}
		for c := 0; c < cols; c++ {
			srcC := c - shiftCol
			if srcC < 0 || srcC >= cols {
				continue
			}
			out[r][c] = rd[srcR][srcC]
		}
	}

	return frame.PhysicalImage{
		Magnitude:           out,
		RangeResolutionMm:   RangeResolutionMm(cfg),
		AzimuthResolutionMm: AzimuthResolutionMm(thetaRad, cfg),
		CenterRow:           centerRow,
		CenterCol:           centerCol,
	}
}

// ExtractSize finds the bounding box of cells whose intensity exceeds
// cfg.SizeThresholdFrac of the image's peak, then converts that box to
// millimetres using img's resolutions, capped at cfg.MaxSizeMm. If the
// peak intensity is below cfg.SizeIntensityMin the image is treated as
// empty and (0, 0) is returned.
func ExtractSize(img frame.PhysicalImage, cfg config.ChirpConfig) (lengthMm, widthMm float64) {
	peak, _, _ := img.Magnitude.Max()
	if float64(peak) < cfg.SizeIntensityMin {
		return 0, 0
	}

	threshold := float32(cfg.SizeThresholdFrac) * peak
	rMin, rMax, cMin, cMax := boundingBox(img.Magnitude, threshold)
	if rMax < rMin || cMax < cMin {
		return 0, 0
	}

	length := float64(rMax-rMin) * img.RangeResolutionMm
	width := float64(cMax-cMin) * img.AzimuthResolutionMm
	return capSize(length, cfg), capSize(width, cfg)
}

func boundingBox(img frame.RangeDopplerImage, threshold float32) (rMin, rMax, cMin, cMax int) {
	rMin, cMin = math.MaxInt32, math.MaxInt32
	rMax, cMax = -1, -1
	for r, row := range img {
		for c, v := range row {
			if v <= threshold {
				continue
			}
			if r < rMin {
				rMin = r
			}
			if r > rMax {
				rMax = r
			}
			if c < cMin {
				cMin = c
			}
			if c > cMax {
				cMax = c
			}
		}
	}
	return rMin, rMax, cMin, cMax
}

func capSize(v float64, cfg config.ChirpConfig) float64 {
	if v > cfg.MaxSizeMm {
		return cfg.MaxSizeMm
	}
	return v
}
