package metrics

import "math"

// Peak is the largest absolute motor velocity seen.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak { return &Peak{name: "peak"} }

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(vels []float64, yaw float64) {
	for _, v := range vels {
		p.peak = math.Max(p.peak, math.Abs(v))
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }
