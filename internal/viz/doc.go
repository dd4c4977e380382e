// Package viz renders drivetrains in the terminal.
//
// [RenderMix] prints a table of motor velocities and commands. [DrawRig]
// draws a rig from above on a braille [Canvas]. [DriveModel] is a Bubble Tea
// program for driving a rig by keyboard:
//
//	w/s  forward / back       q/e    yaw left / right
//	a/d  left / right         ←/→    turn the heading
//	r/f  up / down            o      toggle field / local frame
//	t    cycle themes         space  stop
//	esc  quit
package viz
