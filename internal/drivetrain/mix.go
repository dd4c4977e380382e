package drivetrain

import (
	"math"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/san-kum/holodrive/internal/motor"
	"github.com/san-kum/holodrive/internal/vecmath"
)

var rotationAxes = [...]vecmath.Axis{vecmath.AxisPitch, vecmath.AxisRoll, vecmath.AxisYaw}

// MotorVels mixes a translation and a rotation (pitch, roll and yaw rates)
// into one normalized velocity per motor. With forceLocal the translation is
// taken in the body frame; otherwise it is compensated for orientation.
func (d *Drivetrain) MotorVels(translation, rotation r3.Vector, forceLocal bool) ([]float64, error) {
	if len(d.motors) == 0 {
		return nil, ErrEmptyDrivetrain
	}

	offset := d.orientation.Sub(Reference)
	vels := make([]float64, len(d.motors))

	for i, m := range d.motors {
		local := m.Direction()
		global := local
		if !forceLocal {
			global = vecmath.Rotate(local, offset.X, offset.Y, offset.Z)
		}

		vels[i] = global.Dot(translation) + rotationTerm(m, local, rotation)
	}

	if scale := saturate(vels); scale > 1 {
		d.logger.Debug("motor velocities saturated", zap.Float64("max", scale))
	}
	return vels, nil
}

// MotorVelsScaled mixes like [Drivetrain.MotorVels] and converts each velocity
// into that motor's actuator command.
func (d *Drivetrain) MotorVelsScaled(translation, rotation r3.Vector, forceLocal bool) ([]float64, error) {
	vels, err := d.MotorVels(translation, rotation, forceLocal)
	if err != nil {
		return nil, err
	}
	cmds := make([]float64, len(vels))
	for i, v := range vels {
		cmds[i] = d.motors[i].ScaleVelocity(v)
	}
	return cmds, nil
}

// rotationTerm sums the tangential response of a motor to each axis rate.
// Axes where the motor sits on the rotation axis contribute nothing.
func rotationTerm(m *motor.Motor, local, rotation r3.Vector) float64 {
	ap := m.AnglePosition()
	sum := 0.0
	for _, axis := range rotationAxes {
		theta, ok := ap.Axis(axis).Value()
		if !ok {
			continue
		}
		sum += axis.Component(rotation) * local.Dot(vecmath.Tangent(axis, theta))
	}
	return sum
}

// saturate divides every velocity by the largest magnitude when it exceeds
// one. It returns that magnitude.
func saturate(vels []float64) float64 {
	maxMag := 0.0
	for _, v := range vels {
		maxMag = math.Max(maxMag, math.Abs(v))
	}
	if maxMag > 1 {
		for i := range vels {
			vels[i] /= maxMag
		}
	}
	return maxMag
}
