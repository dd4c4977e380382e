package viz

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/vecmath"
)

const (
	rigFill    = 0.6
	arrowScale = 0.5
)

// DrawRig draws the drivetrain from above in the field frame: each motor is
// a cross at its position, with an arrow along its thrust direction scaled by
// its velocity. A line from the center marks the heading.
func DrawRig(c *Canvas, dt *drivetrain.Drivetrain, vels []float64) {
	c.Clear()

	w, h := c.Pixels()
	cx, cy := w/2, h/2

	reach := 0.0
	for _, m := range dt.Motors() {
		p := m.Position()
		reach = math.Max(reach, math.Hypot(p.X, p.Y))
	}
	if reach == 0 {
		reach = 1
	}
	scale := rigFill * float64(min(w, h)) / 2 / reach

	yaw := dt.Orientation().Z - drivetrain.Reference.Z
	project := func(v r3.Vector) (int, int) {
		g := vecmath.Rotate(v, 0, 0, yaw)
		return cx + int(math.Round(g.X*scale)), cy - int(math.Round(g.Y*scale))
	}

	hx, hy := project(r3.Vector{Y: reach * 0.4})
	c.DrawLine(cx, cy, hx, hy)

	for i, m := range dt.Motors() {
		px, py := project(m.Position())
		c.DrawCross(px, py, 1)

		v := 0.0
		if i < len(vels) {
			v = vels[i]
		}
		if v == 0 {
			continue
		}
		tip := m.Position().Add(m.Direction().Mul(v * arrowScale * reach))
		tx, ty := project(tip)
		c.DrawLine(px, py, tx, ty)
	}
}
