// Package complexnum implements the scalar complex arithmetic every other
// DSP stage is built on: addition, multiplication, magnitude, and phase.
package complexnum

import "math"

// Complex is a complex scalar, stored as a (real, imaginary) pair rather
// than the built-in complex128 so that a zero value is a well-defined
// "absent" sample — interpolation and convolution routines that fall off
// the edge of a frame return Complex{} rather than needing a separate
// validity flag.
type Complex struct {
	Re float64
	Im float64
}

// Zero is the additive identity, also used as the result of any
// out-of-range lookup during interpolation or convolution.
var Zero = Complex{}

// Add returns c + other.
func (c Complex) Add(other Complex) Complex {
	return Complex{Re: c.Re + other.Re, Im: c.Im + other.Im}
}

// Sub returns c - other.
func (c Complex) Sub(other Complex) Complex {
	return Complex{Re: c.Re - other.Re, Im: c.Im - other.Im}
}

// Mul returns c * other.
func (c Complex) Mul(other Complex) Complex {
	return Complex{
		Re: c.Re*other.Re - c.Im*other.Im,
		Im: c.Re*other.Im + c.Im*other.Re,
	}
}

// Scale returns c scaled by a real factor.
func (c Complex) Scale(factor float64) Complex {
	return Complex{Re: c.Re * factor, Im: c.Im * factor}
}

// Conj returns the complex conjugate of c.
func (c Complex) Conj() Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Magnitude returns |c|.
func (c Complex) Magnitude() float64 {
	return math.Hypot(c.Re, c.Im)
}

// Phase returns the phase angle of c in radians, in (-π, π].
func (c Complex) Phase() float64 {
	return math.Atan2(c.Im, c.Re)
}

// FromPolar builds a Complex from a magnitude and phase angle in radians.
func FromPolar(magnitude, phase float64) Complex {
	return Complex{Re: magnitude * math.Cos(phase), Im: magnitude * math.Sin(phase)}
}

// Lerp linearly interpolates between a and b at fraction t in [0, 1].
func Lerp(a, b Complex, t float64) Complex {
	return Complex{
		Re: a.Re + (b.Re-a.Re)*t,
		Im: a.Im + (b.Im-a.Im)*t,
	}
}
