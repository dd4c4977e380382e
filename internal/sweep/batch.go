package sweep

import (
	"context"
	"sync"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/metrics"
)

// Batch runs the same sweep over several rigs concurrently. Each rig must be
// its own drivetrain.
type Batch struct {
	rigs       []*drivetrain.Drivetrain
	newMetrics func() []metrics.Metric
}

// NewBatch builds a batch. newMetrics is called once per rig so that no
// metric is shared between goroutines; it may be nil.
func NewBatch(rigs []*drivetrain.Drivetrain, newMetrics func() []metrics.Metric) *Batch {
	return &Batch{rigs: rigs, newMetrics: newMetrics}
}

// Run returns one result per rig in input order, or the first error.
func (b *Batch) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(b.rigs))
	errs := make([]error, len(b.rigs))

	var wg sync.WaitGroup
	for i, dt := range b.rigs {
		wg.Add(1)
		go func(idx int, dt *drivetrain.Drivetrain) {
			defer wg.Done()

			r := New(dt)
			if b.newMetrics != nil {
				for _, m := range b.newMetrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, dt)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
