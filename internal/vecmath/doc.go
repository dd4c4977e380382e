// Package vecmath provides the stateless vector helpers used by the mixer.
//
// Vectors are [r3.Vector] values. The package covers three concerns:
//
//   - [Normalize]: unit vectors, failing on zero length
//   - [Rotate]: fixed-order pitch/roll/yaw rotation (Rz·Ry·Rx)
//   - [QuadrantAngle]: angle of a 2D projection with an axis dead zone
//
// # Undefined Angles
//
// A projection that collapses to the origin has no angle. [QuadrantAngle]
// returns an [Angle] that must be unpacked with [Angle.Value]:
//
//	if theta, ok := vecmath.QuadrantAngle(x, y).Value(); ok {
//	    tangent := vecmath.Tangent(vecmath.AxisYaw, theta)
//	}
package vecmath
