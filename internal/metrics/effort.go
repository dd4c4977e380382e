package metrics

import "math"

// Effort is the mean over samples of the summed absolute motor velocity.
type Effort struct {
	name    string
	sum     float64
	samples int
}

func NewEffort() *Effort {
	return &Effort{
		name: "effort",
	}
}

func (e *Effort) Name() string {
	return e.name
}

func (e *Effort) Observe(vels []float64, yaw float64) {
	for _, v := range vels {
		e.sum += math.Abs(v)
	}
	e.samples++
}

func (e *Effort) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Effort) Reset() {
	e.sum = 0
	e.samples = 0
}
