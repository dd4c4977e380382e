// Package metrics summarises the motor velocities produced over a sweep.
package metrics

// Metric accumulates one figure over the samples of a sweep. Observe receives
// the normalized velocities of every motor and the heading they were mixed at.
type Metric interface {
	Name() string
	Observe(vels []float64, yaw float64)
	Value() float64
	Reset()
}

// Defaults returns a fresh instance of every built-in metric.
func Defaults() []Metric {
	return []Metric{NewEffort(), NewSaturation(), NewPeak()}
}
