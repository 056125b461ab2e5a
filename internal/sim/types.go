package sim

import "github.com/marcosvz/gravsim/internal/nbody"

// Metric observes the system at every recorded frame and reduces the run
// to a single number.
type Metric interface {
	Name() string
	Observe(sys *nbody.System, t float64)
	Value() float64
	Reset()
}

// Observer is notified at every recorded frame.
type Observer interface {
	OnFrame(sys *nbody.System, t float64)
}

// Config drives one run. Substeps integration steps of size Dt are taken
// between consecutive recorded frames; sub-stepping trades per-frame cost
// for accuracy without changing the observation rate.
type Config struct {
	Dt       float64
	Substeps int
	Duration float64
}

// Result holds the sampled trajectory of one run. States are flat
// [x, y, vx, vy] per body, one row per recorded frame.
type Result struct {
	Times   []float64
	States  [][]float64
	Metrics map[string]float64
}
