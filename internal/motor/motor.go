// Package motor models a single thruster or wheel: where it is mounted, which
// way it pushes, and how a normalized velocity maps onto its PWM range.
package motor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	pkgerrors "github.com/pkg/errors"

	"github.com/san-kum/holodrive/internal/vecmath"
)

// ErrInvalidDirectionLength indicates a direction that is not three dimensional.
var ErrInvalidDirectionLength = errors.New("motor: direction must have exactly 3 components")

// Bounds are the PWM commands for full reverse, full stop and full forward.
type Bounds struct {
	Reverse float64
	Stop    float64
	Forward float64
}

var DefaultBounds = Bounds{Reverse: 0, Stop: 512, Forward: 1024}

// Symmetric reports whether stop sits halfway between reverse and forward.
func (b Bounds) Symmetric() bool {
	return math.Abs(b.Stop-b.Reverse) == math.Abs(b.Forward-b.Stop)
}

// ScalingFunc maps a normalized velocity in [-1, 1] to an actuator command.
type ScalingFunc func(velocity float64) float64

// AnglePosition holds the angular position of a motor around each body axis,
// taken from the projections of its mounting point.
type AnglePosition struct {
	Pitch vecmath.Angle // (y, z) plane
	Roll  vecmath.Angle // (x, z) plane
	Yaw   vecmath.Angle // (x, y) plane
}

// Axis returns the angle for one rotation axis.
func (a AnglePosition) Axis(axis vecmath.Axis) vecmath.Angle {
	switch axis {
	case vecmath.AxisPitch:
		return a.Pitch
	case vecmath.AxisRoll:
		return a.Roll
	default:
		return a.Yaw
	}
}

type Motor struct {
	name          string
	position      r3.Vector
	direction     r3.Vector
	inverted      bool
	anglePosition AnglePosition
	bounds        Bounds
	scale         ScalingFunc
}

type Option func(*Motor)

// WithScalingFunc replaces the built-in linear PWM scaling.
func WithScalingFunc(f ScalingFunc) Option {
	return func(m *Motor) { m.scale = f }
}

// New builds a motor. The direction is normalized and negated when inverted.
func New(name string, position, direction r3.Vector, inverted bool, bounds Bounds, opts ...Option) (*Motor, error) {
	m := &Motor{
		name:     name,
		position: position,
		inverted: inverted,
		bounds:   bounds,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.SetDirection(direction); err != nil {
		return nil, pkgerrors.Wrapf(err, "motor %q", name)
	}
	m.anglePosition = calculateAnglePosition(position)
	return m, nil
}

// ParseDirection converts a raw direction into a vector, rejecting anything
// that is not three dimensional.
func ParseDirection(vals []float64) (r3.Vector, error) {
	if len(vals) != 3 {
		return r3.Vector{}, pkgerrors.Wrapf(ErrInvalidDirectionLength, "got length %d", len(vals))
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func calculateAnglePosition(p r3.Vector) AnglePosition {
	return AnglePosition{
		Pitch: vecmath.QuadrantAngle(p.Y, p.Z),
		Roll:  vecmath.QuadrantAngle(p.X, p.Z),
		Yaw:   vecmath.QuadrantAngle(p.X, p.Y),
	}
}

func (m *Motor) Name() string                 { return m.name }
func (m *Motor) Position() r3.Vector          { return m.position }
func (m *Motor) Direction() r3.Vector         { return m.direction }
func (m *Motor) Inverted() bool               { return m.inverted }
func (m *Motor) AnglePosition() AnglePosition { return m.anglePosition }
func (m *Motor) Bounds() Bounds               { return m.bounds }
func (m *Motor) HasScalingFunc() bool         { return m.scale != nil }
func (m *Motor) SetScalingFunc(f ScalingFunc) { m.scale = f }
func (m *Motor) SetBounds(b Bounds)           { m.bounds = b }

// SetPosition moves the motor and recomputes its angle position.
func (m *Motor) SetPosition(p r3.Vector) {
	m.position = p
	m.anglePosition = calculateAnglePosition(p)
}

// SetDirection stores the normalized direction, negated when inverted.
// The stored direction is untouched on error.
func (m *Motor) SetDirection(d r3.Vector) error {
	unit, err := vecmath.Normalize(d)
	if err != nil {
		return err
	}
	if m.inverted {
		unit = unit.Mul(-1)
	}
	m.direction = unit
	return nil
}

// SetInverted flips the stored direction when the flag changes.
func (m *Motor) SetInverted(inverted bool) {
	if m.inverted == inverted {
		return
	}
	m.inverted = inverted
	m.direction = m.direction.Mul(-1)
}

// ScaleVelocity converts a normalized velocity into a PWM command. Each side
// of the stop point interpolates linearly over its own half-range.
func (m *Motor) ScaleVelocity(velocity float64) float64 {
	if m.scale != nil {
		return m.scale(velocity)
	}
	b := m.bounds
	switch {
	case b.Symmetric() || velocity > 0:
		return b.Stop + velocity*math.Abs(b.Forward-b.Stop)
	case velocity < 0:
		return b.Stop + velocity*math.Abs(b.Stop-b.Reverse)
	default:
		return b.Stop
	}
}

func (m *Motor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", m.name)
	fmt.Fprintf(&b, "Position: [%g %g %g]\n", m.position.X, m.position.Y, m.position.Z)
	fmt.Fprintf(&b, "Direction: [%g %g %g]\n", m.direction.X, m.direction.Y, m.direction.Z)
	fmt.Fprintf(&b, "Inverted: %t\n", m.inverted)
	b.WriteString("PWM Bounds:\n")
	fmt.Fprintf(&b, "\tFull Reverse: %g\n", m.bounds.Reverse)
	fmt.Fprintf(&b, "\tFull Stop: %g\n", m.bounds.Stop)
	fmt.Fprintf(&b, "\tFull Forward: %g\n", m.bounds.Forward)
	if m.scale == nil {
		b.WriteString("PWM Scaling Function: Undefined\n")
	} else {
		b.WriteString("PWM Scaling Function: Defined\n")
	}
	return b.String()
}
