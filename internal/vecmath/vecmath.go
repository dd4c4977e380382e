package vecmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// DeadZone is the half-width of the band around each axis inside which a
// projection component counts as zero.
const DeadZone = 0.05

// Axis names a body rotation axis.
type Axis int

const (
	AxisPitch Axis = iota // rotation about x
	AxisRoll              // rotation about y
	AxisYaw               // rotation about z
)

func (a Axis) String() string {
	switch a {
	case AxisPitch:
		return "pitch"
	case AxisRoll:
		return "roll"
	case AxisYaw:
		return "yaw"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Component returns the entry of v that belongs to the axis.
func (a Axis) Component(v r3.Vector) float64 {
	switch a {
	case AxisPitch:
		return v.X
	case AxisRoll:
		return v.Y
	default:
		return v.Z
	}
}

// Angle is an angle in [0, 2π) that may be undefined.
type Angle struct {
	rad     float64
	defined bool
}

// Defined wraps a known angle.
func Defined(rad float64) Angle { return Angle{rad: rad, defined: true} }

// Undefined returns the angle of a zero vector.
func Undefined() Angle { return Angle{} }

// Value returns the angle and whether it is defined.
func (a Angle) Value() (float64, bool) { return a.rad, a.defined }

func (a Angle) IsDefined() bool { return a.defined }

func (a Angle) String() string {
	if !a.defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", a.rad)
}

// Normalize returns v scaled to unit length.
func Normalize(v r3.Vector) (r3.Vector, error) {
	norm := v.Norm()
	if norm == 0 {
		return r3.Vector{}, ErrDivisionByZero
	}
	return v.Mul(1 / norm), nil
}

// Rotate applies a rotation about x by pitch, then about y by roll, then
// about z by yaw. Positive angles are counter-clockwise.
func Rotate(v r3.Vector, pitch, roll, yaw float64) r3.Vector {
	sp, cp := math.Sincos(pitch)
	v = r3.Vector{
		X: v.X,
		Y: cp*v.Y - sp*v.Z,
		Z: sp*v.Y + cp*v.Z,
	}

	sr, cr := math.Sincos(roll)
	v = r3.Vector{
		X: cr*v.X + sr*v.Z,
		Y: v.Y,
		Z: -sr*v.X + cr*v.Z,
	}

	sy, cy := math.Sincos(yaw)
	return r3.Vector{
		X: cy*v.X - sy*v.Y,
		Y: sy*v.X + cy*v.Y,
		Z: v.Z,
	}
}

// QuadrantAngle returns the counter-clockwise angle of (horizontal, vertical)
// measured from the positive horizontal axis.
func QuadrantAngle(horizontal, vertical float64) Angle {
	ref := func() float64 { return math.Abs(math.Atan(vertical / horizontal)) }

	switch {
	case horizontal < -DeadZone:
		switch {
		case vertical < -DeadZone:
			return Defined(math.Pi + ref())
		case vertical > DeadZone:
			return Defined(math.Pi - ref())
		default:
			return Defined(math.Pi)
		}
	case horizontal > DeadZone:
		switch {
		case vertical < -DeadZone:
			return Defined(2*math.Pi - ref())
		case vertical > DeadZone:
			return Defined(ref())
		default:
			return Defined(0)
		}
	default:
		switch {
		case vertical < -DeadZone:
			return Defined(3 * math.Pi / 2)
		case vertical > DeadZone:
			return Defined(math.Pi / 2)
		default:
			return Undefined()
		}
	}
}

// Tangent returns the counter-clockwise unit tangent about axis at angle
// theta, where theta was measured in the plane perpendicular to that axis.
func Tangent(axis Axis, theta float64) r3.Vector {
	s, c := math.Sincos(theta)
	switch axis {
	case AxisPitch:
		return r3.Vector{X: 0, Y: -s, Z: c}
	case AxisRoll:
		return r3.Vector{X: -s, Y: 0, Z: c}
	default:
		return r3.Vector{X: -s, Y: c, Z: 0}
	}
}

// FromSlice converts a three element slice into a vector.
func FromSlice(vals []float64) (r3.Vector, error) {
	if len(vals) != 3 {
		return r3.Vector{}, errors.Wrapf(ErrInvalidLength, "got %d", len(vals))
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func Slice(v r3.Vector) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
