// Package phase implements velocity-driven column re-indexing over a
// range-Doppler image: a pure function with no session state, unlike every
// other stage package in this pipeline.
package phase

import (
	"math"

	"github.com/Kelvin23-utd/sondar1/internal/frame"
)

// Compensate re-indexes each column of input by f = 1 + v/soundSpeedMps,
// writing input[i][j] to output[i][round(j*f)] whenever the target column
// falls inside [0, cols). Multiple source columns may map to the same
// target column; later writes (higher source j) overwrite earlier ones —
// collisions are tolerated, not normalized by occupancy.
func Compensate(input frame.RangeDopplerImage, velocityMps, soundSpeedMps float64) frame.RangeDopplerImage {
	f := 1 + velocityMps/soundSpeedMps
	cols := input.Cols()
	out := frame.NewRangeDopplerImage(input.Rows(), cols)

	for i, row := range input {
		for j, v := range row {
			target := int(math.Round(float64(j) * f))
			if target >= 0 && target < cols {
				out[i][target] = v
			}
		}
	}
	return out
}
