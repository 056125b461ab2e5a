package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcosvz/gravsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0.0, 0.05},
		States: [][]float64{
			{-4.5, 0, 0, 0.459, 1.5, 0, 0, -0.153},
			{-4.499, 0.023, 0.01, 0.459, 1.499, -0.007, -0.003, -0.153},
		},
		Metrics: map[string]float64{
			"energy_drift": 1.2e-7,
		},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Scenario:  "two_body",
		Bodies:    2,
		G:         1.0,
		Softening: 1e-3,
		Dt:        0.01,
		Substeps:  5,
		Duration:  0.1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "two_body" {
		t.Errorf("expected scenario two_body, got %s", meta.Scenario)
	}
	if meta.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", meta.Bodies)
	}
	if meta.Metrics["energy_drift"] != 1.2e-7 {
		t.Errorf("expected energy_drift 1.2e-7, got %g", meta.Metrics["energy_drift"])
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames, got %d states, %d times", len(states), len(times))
	}
	if len(states[0]) != 8 {
		t.Errorf("expected 8 values per state, got %d", len(states[0]))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(sampleMeta(), sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Load("nope_123"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out := filepath.Join(dir, "export.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("parse export: %v", err)
	}

	if export.Scenario != "two_body" {
		t.Errorf("expected scenario two_body, got %s", export.Scenario)
	}
	if export.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", export.Frames)
	}
	if len(export.States) != 2 {
		t.Errorf("expected 2 states, got %d", len(export.States))
	}
}
