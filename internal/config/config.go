package config

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/motor"
	"github.com/san-kum/holodrive/internal/vecmath"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalidBounds = errors.New("config: pwm must have exactly 3 values")
)

const DefaultName = "rov6"

// Config describes a rig: its starting orientation and its motors in output
// order.
type Config struct {
	Name        string             `yaml:"name"`
	Orientation *OrientationConfig `yaml:"orientation,omitempty"`
	Motors      []MotorConfig      `yaml:"motors"`
}

type OrientationConfig struct {
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
	Yaw   float64 `yaml:"yaw"`
}

type MotorConfig struct {
	Name      string    `yaml:"name"`
	Inverted  bool      `yaml:"inverted"`
	Position  []float64 `yaml:"position,flow"`
	Direction []float64 `yaml:"direction,flow"`
	PWM       []float64 `yaml:"pwm,omitempty,flow"`
}

func DefaultConfig() *Config {
	cfg, _ := GetPreset(DefaultName)
	return cfg
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse rig")
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Bounds returns the motor's PWM triple, or [motor.DefaultBounds] when none
// is given.
func (m MotorConfig) Bounds() (motor.Bounds, error) {
	if len(m.PWM) == 0 {
		return motor.DefaultBounds, nil
	}
	if len(m.PWM) != 3 {
		return motor.Bounds{}, errors.Wrapf(ErrInvalidBounds, "got %d", len(m.PWM))
	}
	return motor.Bounds{Reverse: m.PWM[0], Stop: m.PWM[1], Forward: m.PWM[2]}, nil
}

// OrientationVector returns (pitch, roll, yaw), defaulting to
// [drivetrain.Reference].
func (c *Config) OrientationVector() r3.Vector {
	if c.Orientation == nil {
		return drivetrain.Reference
	}
	return r3.Vector{X: c.Orientation.Pitch, Y: c.Orientation.Roll, Z: c.Orientation.Yaw}
}

// Build adds every motor record to a new drivetrain in file order, then sets
// the orientation.
func (c *Config) Build(logger *zap.Logger) (*drivetrain.Drivetrain, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dt := drivetrain.New(drivetrain.WithLogger(logger))

	for i, mc := range c.Motors {
		position, err := vecmath.FromSlice(mc.Position)
		if err != nil {
			return nil, errors.Wrapf(err, "motor %d (%s) position", i, mc.Name)
		}
		direction, err := motor.ParseDirection(mc.Direction)
		if err != nil {
			return nil, errors.Wrapf(err, "motor %d (%s)", i, mc.Name)
		}
		bounds, err := mc.Bounds()
		if err != nil {
			return nil, errors.Wrapf(err, "motor %d (%s)", i, mc.Name)
		}
		if _, err := dt.AddMotor(mc.Name, position, direction, mc.Inverted, bounds); err != nil {
			return nil, errors.Wrapf(err, "motor %d (%s)", i, mc.Name)
		}
	}

	o := c.OrientationVector()
	dt.SetOrientation(o.X, o.Y, o.Z)
	logger.Info("rig loaded", zap.String("name", c.Name), zap.Int("motors", dt.Len()))
	return dt, nil
}

// FromDrivetrain captures a drivetrain's motors and orientation. Directions
// are written un-inverted so that Build reproduces the same motors.
func FromDrivetrain(name string, dt *drivetrain.Drivetrain) *Config {
	o := dt.Orientation()
	cfg := &Config{
		Name:        name,
		Orientation: &OrientationConfig{Pitch: o.X, Roll: o.Y, Yaw: o.Z},
	}
	for _, m := range dt.Motors() {
		dir := m.Direction()
		if m.Inverted() {
			dir = dir.Mul(-1)
		}
		b := m.Bounds()
		cfg.Motors = append(cfg.Motors, MotorConfig{
			Name:      m.Name(),
			Inverted:  m.Inverted(),
			Position:  vecmath.Slice(m.Position()),
			Direction: vecmath.Slice(dir),
			PWM:       []float64{b.Reverse, b.Stop, b.Forward},
		})
	}
	return cfg
}
