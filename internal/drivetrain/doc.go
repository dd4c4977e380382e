// Package drivetrain mixes body-frame motion commands into per-motor
// velocities for holonomic robots.
//
// A [Drivetrain] owns an ordered list of [motor.Motor] values and the robot's
// current orientation. Insertion order is the output order of every mixing
// call:
//
//	dt := drivetrain.New()
//	dt.AddMotor("fr", pos, dir, false, motor.Bounds{1100, 1500, 1900})
//	vels, err := dt.MotorVels(translation, rotation, false)
//	pwm, err := dt.MotorVelsScaled(translation, rotation, false)
//
// # Field-Oriented Control
//
// Unless forceLocal is set, translation is interpreted in the world frame.
// The orientation is compared against [Reference] (yaw π/2, "north") and each
// motor direction is rotated by the difference before the translation term is
// taken. Rotation terms always use body-frame directions.
//
// # Saturation
//
// When any motor would exceed unit magnitude, every velocity is divided by
// the largest magnitude so the mix keeps its proportions.
//
// # Thread Safety
//
// Drivetrain instances are NOT thread-safe. Callers that update orientation
// from a sensor goroutine must serialize access themselves.
package drivetrain
