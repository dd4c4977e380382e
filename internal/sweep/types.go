// Package sweep mixes one command across a range of headings, the way a
// field-oriented rig sees it while it turns.
package sweep

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("sweep: invalid config")

const DefaultSteps = 72

type Config struct {
	Translation r3.Vector
	Rotation    r3.Vector
	StartYaw    float64
	EndYaw      float64
	Steps       int
	ForceLocal  bool
}

// DefaultConfig sweeps a unit forward translation through one full turn.
func DefaultConfig() Config {
	return Config{
		Translation: r3.Vector{Y: 1},
		StartYaw:    0,
		EndYaw:      2 * math.Pi,
		Steps:       DefaultSteps,
	}
}

// Yaw returns the heading of sample i. Samples run from StartYaw towards
// EndYaw in equal increments, excluding EndYaw itself.
func (c Config) Yaw(i int) float64 {
	return c.StartYaw + float64(i)*(c.EndYaw-c.StartYaw)/float64(c.Steps)
}

// Observer sees every sample as it is mixed.
type Observer interface {
	OnStep(yaw float64, vels, cmds []float64)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(yaw float64, vels, cmds []float64)

func (f ObserverFunc) OnStep(yaw float64, vels, cmds []float64) { f(yaw, vels, cmds) }

type Result struct {
	Names      []string
	Yaws       []float64
	Velocities [][]float64
	Commands   [][]float64
	Metrics    map[string]float64
	Steps      int
}

// Series returns one motor's velocity across the sweep, or nil when the index
// is out of range.
func (r *Result) Series(motor int) []float64 {
	if motor < 0 || motor >= len(r.Names) {
		return nil
	}
	out := make([]float64, len(r.Velocities))
	for i, vels := range r.Velocities {
		out[i] = vels[motor]
	}
	return out
}

// CommandSeries is [Result.Series] for actuator commands.
func (r *Result) CommandSeries(motor int) []float64 {
	if motor < 0 || motor >= len(r.Names) {
		return nil
	}
	out := make([]float64, len(r.Commands))
	for i, cmds := range r.Commands {
		out[i] = cmds[motor]
	}
	return out
}
