package sweep

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/metrics"
)

// Runner drives a single drivetrain through sweeps. A drivetrain is not safe
// for concurrent use, so neither is its Runner.
type Runner struct {
	dt        *drivetrain.Drivetrain
	metrics   []metrics.Metric
	observers []Observer
}

func New(dt *drivetrain.Drivetrain) *Runner {
	return &Runner{
		dt:        dt,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run mixes cfg at every heading of the sweep. Pitch and roll are held, and
// the drivetrain's orientation is restored before Run returns. On
// cancellation the samples gathered so far are returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Names:      r.dt.Names(),
		Yaws:       make([]float64, 0, cfg.Steps),
		Velocities: make([][]float64, 0, cfg.Steps),
		Commands:   make([][]float64, 0, cfg.Steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	start := r.dt.Orientation()
	defer r.dt.SetOrientation(start.X, start.Y, start.Z)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		yaw := cfg.Yaw(i)
		r.dt.SetOrientation(start.X, start.Y, yaw)

		vels, err := r.dt.MotorVels(cfg.Translation, cfg.Rotation, cfg.ForceLocal)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		cmds, err := r.dt.MotorVelsScaled(cfg.Translation, cfg.Rotation, cfg.ForceLocal)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}

		for _, m := range r.metrics {
			m.Observe(vels, yaw)
		}
		for _, obs := range r.observers {
			obs.OnStep(yaw, vels, cmds)
		}

		result.Yaws = append(result.Yaws, yaw)
		result.Velocities = append(result.Velocities, vels)
		result.Commands = append(result.Commands, cmds)
		result.Steps++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "steps must be positive, got %d", cfg.Steps)
	}
	for _, v := range []float64{
		cfg.StartYaw, cfg.EndYaw,
		cfg.Translation.X, cfg.Translation.Y, cfg.Translation.Z,
		cfg.Rotation.X, cfg.Rotation.Y, cfg.Rotation.Z,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrInvalidConfig, "values must be finite")
		}
	}
	return nil
}
