package sim

import (
	"context"
	"sync"

	"github.com/marcosvz/gravsim/internal/nbody"
)

// Ensemble runs several independently constructed systems in parallel.
// Each goroutine owns its own System; parallelism is only ever across
// systems, never inside a single step.
type Ensemble struct {
	build   func() (*nbody.System, error)
	metrics []func() Metric
	runs    int
}

func NewEnsemble(build func() (*nbody.System, error), runs int) *Ensemble {
	return &Ensemble{build: build, runs: runs}
}

// AddMetric registers a metric constructor; every run gets its own
// instance so observations never cross goroutines.
func (e *Ensemble) AddMetric(newMetric func() Metric) {
	e.metrics = append(e.metrics, newMetric)
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sys, err := e.build()
			if err != nil {
				errs[idx] = err
				return
			}

			runner := New(sys)
			for _, newMetric := range e.metrics {
				runner.AddMetric(newMetric())
			}

			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MetricSummary is one named metric reduced across an ensemble's runs.
type MetricSummary struct {
	Min  float64
	Max  float64
	Mean float64
}

// SummarizeMetrics aggregates the per-run metric values of an ensemble by
// name, so no run's result is silently dropped from the report.
func SummarizeMetrics(results []*Result) map[string]MetricSummary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	summaries := make(map[string]MetricSummary)

	for _, r := range results {
		for name, val := range r.Metrics {
			s, seen := summaries[name]
			if !seen {
				s = MetricSummary{Min: val, Max: val}
			}
			if val < s.Min {
				s.Min = val
			}
			if val > s.Max {
				s.Max = val
			}
			summaries[name] = s
			sums[name] += val
			counts[name]++
		}
	}

	for name, s := range summaries {
		s.Mean = sums[name] / float64(counts[name])
		summaries[name] = s
	}

	return summaries
}
