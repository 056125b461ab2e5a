package sim

import (
	"context"
	"fmt"

	"github.com/marcosvz/gravsim/internal/nbody"
)

// Runner advances one System and records its trajectory. It owns the
// sub-stepping policy; the core itself only knows single steps.
type Runner struct {
	sys       *nbody.System
	metrics   []Metric
	observers []Observer
}

func New(sys *nbody.System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run integrates for cfg.Duration, recording one frame every
// cfg.Substeps*cfg.Dt of simulated time. Metrics observe every recorded
// frame including the initial and final states.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	frameDt := cfg.Dt * float64(cfg.Substeps)
	// Nudge before truncating so 1.0/(0.01*5) style divisions don't lose
	// a frame to floating-point rounding.
	frames := int(cfg.Duration/frameDt + 1e-9)

	result := &Result{
		Times:   make([]float64, 0, frames+1),
		States:  make([][]float64, 0, frames+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	r.record(result, t)

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for k := 0; k < cfg.Substeps; k++ {
			r.sys.Step(cfg.Dt)
		}
		t += frameDt
		r.record(result, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback integrates like Run but streams frames to the callback
// instead of accumulating them; returning false stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(sys *nbody.System, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	frameDt := cfg.Dt * float64(cfg.Substeps)
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(r.sys, t) {
			return nil
		}

		for k := 0; k < cfg.Substeps; k++ {
			r.sys.Step(cfg.Dt)
		}
		t += frameDt
	}

	return nil
}

func (r *Runner) record(result *Result, t float64) {
	for _, m := range r.metrics {
		m.Observe(r.sys, t)
	}
	for _, o := range r.observers {
		o.OnFrame(r.sys, t)
	}
	result.Times = append(result.Times, t)
	result.States = append(result.States, r.sys.State())
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", cfg.Substeps)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
