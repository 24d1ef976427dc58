// types.go re-exports the shared frame/image types and the Complex scalar
// at the package root, mirroring the internal/config alias in config.go.

package sondar

import (
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
)

// Complex is a complex scalar (real, imaginary) pair.
type Complex = complexnum.Complex

// RealFrame is exactly one capture buffer of signed-16-bit PCM samples.
type RealFrame = frame.RealFrame

// ComplexFrame is a sequence of Complex samples.
type ComplexFrame = frame.ComplexFrame

// TFImage is a time-frequency image indexed [windowIdx][freqBin].
type TFImage = frame.TFImage

// RangeDopplerImage is a magnitude image indexed [freqBin][slowTimeBin].
type RangeDopplerImage = frame.RangeDopplerImage

// PhysicalImage is a RangeDopplerImage re-centred on the strongest
// reflector, with each cell's physical (mm) resolution attached.
type PhysicalImage = frame.PhysicalImage
