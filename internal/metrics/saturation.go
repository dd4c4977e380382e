package metrics

import "math"

// FullOutputTolerance is how close to one a velocity must be to count as
// saturated.
const FullOutputTolerance = 1e-9

// Saturation is the fraction of samples where at least one motor ran at full
// output.
type Saturation struct {
	name      string
	saturated int
	samples   int
}

func NewSaturation() *Saturation {
	return &Saturation{
		name: "saturation",
	}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) Observe(vels []float64, yaw float64) {
	s.samples++
	for _, v := range vels {
		if math.Abs(v) >= 1-FullOutputTolerance {
			s.saturated++
			break
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
