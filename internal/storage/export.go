package storage

import (
	"encoding/json"
	"os"
)

// ExportData is the self-contained JSON form of one run: metadata plus the
// full sampled trajectory, for consumption outside gravsim.
type ExportData struct {
	Scenario  string             `json:"scenario"`
	Bodies    int                `json:"bodies"`
	G         float64            `json:"g"`
	Softening float64            `json:"softening"`
	Dt        float64            `json:"dt"`
	Substeps  int                `json:"substeps"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes the named run as a single JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Scenario:  meta.Scenario,
		Bodies:    meta.Bodies,
		G:         meta.G,
		Softening: meta.Softening,
		Dt:        meta.Dt,
		Substeps:  meta.Substeps,
		Duration:  meta.Duration,
		Frames:    len(states),
		Times:     times,
		States:    states,
		Metrics:   meta.Metrics,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
