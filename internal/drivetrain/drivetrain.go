package drivetrain

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/san-kum/holodrive/internal/motor"
)

// Reference is the orientation at which field and body frames coincide.
var Reference = r3.Vector{X: 0, Y: 0, Z: math.Pi / 2}

type Drivetrain struct {
	orientation r3.Vector
	motors      []*motor.Motor
	logger      *zap.Logger
}

type Option func(*Drivetrain)

// WithOrientation sets the starting (pitch, roll, yaw).
func WithOrientation(o r3.Vector) Option {
	return func(d *Drivetrain) { d.orientation = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Drivetrain) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns an empty drivetrain facing [Reference].
func New(opts ...Option) *Drivetrain {
	d := &Drivetrain{
		orientation: Reference,
		motors:      make([]*motor.Motor, 0),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddMotor builds a motor and appends it to the drivetrain.
func (d *Drivetrain) AddMotor(name string, position, direction r3.Vector, inverted bool, bounds motor.Bounds, opts ...motor.Option) (*motor.Motor, error) {
	m, err := motor.New(name, position, direction, inverted, bounds, opts...)
	if err != nil {
		return nil, err
	}
	d.Add(m)
	return m, nil
}

// Add appends an existing motor.
func (d *Drivetrain) Add(m *motor.Motor) {
	d.motors = append(d.motors, m)
	d.logger.Debug("motor added", zap.String("name", m.Name()), zap.Int("index", len(d.motors)-1))
}

func (d *Drivetrain) Len() int { return len(d.motors) }

// Motors returns the motors in output order. The slice is a copy.
func (d *Drivetrain) Motors() []*motor.Motor {
	out := make([]*motor.Motor, len(d.motors))
	copy(out, d.motors)
	return out
}

func (d *Drivetrain) Names() []string {
	names := make([]string, len(d.motors))
	for i, m := range d.motors {
		names[i] = m.Name()
	}
	return names
}

func (d *Drivetrain) MotorByIndex(index int) (*motor.Motor, error) {
	if index < 0 || index >= len(d.motors) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "get index %d of %d", index, len(d.motors))
	}
	return d.motors[index], nil
}

// MotorByName returns the first motor with the given name.
func (d *Drivetrain) MotorByName(name string) (*motor.Motor, bool) {
	for _, m := range d.motors {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func (d *Drivetrain) RemoveMotorByIndex(index int) error {
	if index < 0 || index >= len(d.motors) {
		return errors.Wrapf(ErrIndexOutOfRange, "remove index %d of %d", index, len(d.motors))
	}
	d.motors = append(d.motors[:index], d.motors[index+1:]...)
	return nil
}

// RemoveMotorByName removes the first motor with the given name and reports
// whether one was found.
func (d *Drivetrain) RemoveMotorByName(name string) bool {
	for i, m := range d.motors {
		if m.Name() == name {
			d.motors = append(d.motors[:i], d.motors[i+1:]...)
			return true
		}
	}
	return false
}

// Orientation returns (pitch, roll, yaw) as X, Y, Z.
func (d *Drivetrain) Orientation() r3.Vector { return d.orientation }

func (d *Drivetrain) SetOrientation(pitch, roll, yaw float64) {
	d.orientation = r3.Vector{X: pitch, Y: roll, Z: yaw}
}
