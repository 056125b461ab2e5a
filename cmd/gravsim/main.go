package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/marcosvz/gravsim/internal/config"
	"github.com/marcosvz/gravsim/internal/metrics"
	"github.com/marcosvz/gravsim/internal/nbody"
	"github.com/marcosvz/gravsim/internal/scenario"
	"github.com/marcosvz/gravsim/internal/sim"
	"github.com/marcosvz/gravsim/internal/storage"
	"github.com/marcosvz/gravsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	substeps   int
	duration   float64
	g          float64
	softening  float64
	m1         float64
	m2         float64
	separation float64
	fps        int

	plotBody int
	plotAxis string
	outFile  string
	steps    int
	runs     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "2D gravitational n-body simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")
	runCmd.Flags().IntVar(&runs, "runs", 1, "parallel independent runs")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation with live terminal animation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", 0, "body index")
	plotCmd.Flags().StringVar(&plotAxis, "axis", "x", "axis to plot: x, y, vx, vy")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as a single JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.json)")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark integration throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)
	benchCmd.Flags().IntVar(&steps, "steps", 100000, "steps to integrate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCENARIO\tDT\tSUBSTEPS\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%g\n",
					name, p.Scenario, p.Dt, p.Substeps, p.Duration)
			}
			return w.Flush()
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list stock scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenario.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integrator timestep")
	cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "integration steps per recorded frame")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "gravitational softening (epsilon squared)")
	cmd.Flags().Float64Var(&m1, "m1", 1.0, "first mass (two_body)")
	cmd.Flags().Float64Var(&m2, "m2", 3.0, "second mass (two_body)")
	cmd.Flags().Float64Var(&separation, "separation", 6.0, "initial separation (two_body)")
}

// resolveConfig layers preset, config file and CLI flags, flags winning
// when explicitly set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Substeps = substeps
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = g
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("m1") {
		cfg.TwoBody.M1 = m1
	}
	if cmd.Flags().Changed("m2") {
		cfg.TwoBody.M2 = m2
	}
	if cmd.Flags().Changed("separation") {
		cfg.TwoBody.Separation = separation
	}

	return cfg, nil
}

// buildScenario turns a resolved config into a concrete scenario, applying
// the configured constants.
func buildScenario(cfg *config.Config) (scenario.Scenario, error) {
	var sc scenario.Scenario
	if cfg.Scenario == "two_body" {
		sc = scenario.TwoBody(cfg.G, cfg.TwoBody.M1, cfg.TwoBody.M2, cfg.TwoBody.Separation)
	} else {
		var err error
		sc, err = scenario.Get(cfg.Scenario)
		if err != nil {
			return scenario.Scenario{}, err
		}
	}

	sc.Params = nbody.Params{G: cfg.G, Softening: cfg.Softening}
	return sc, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := sim.Config{Dt: cfg.Dt, Substeps: cfg.Substeps, Duration: cfg.Duration}

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()

	var result *sim.Result
	var summary map[string]sim.MetricSummary
	if runs > 1 {
		ensemble := sim.NewEnsemble(sc.Build, runs)
		ensemble.AddMetric(func() sim.Metric { return metrics.NewEnergyDrift() })
		ensemble.AddMetric(func() sim.Metric { return metrics.NewMomentumDrift() })
		ensemble.AddMetric(func() sim.Metric { return metrics.NewAngularMomentumDrift() })

		results, err := ensemble.Run(context.Background(), simCfg)
		if err != nil {
			return err
		}
		// The runs are identically constructed; the first one's trajectory
		// is stored, the metrics are aggregated across all of them.
		result = results[0]
		summary = sim.SummarizeMetrics(results)
	} else {
		sys, err := sc.Build()
		if err != nil {
			return err
		}

		runner := sim.New(sys)
		runner.AddMetric(metrics.NewEnergyDrift())
		runner.AddMetric(metrics.NewMomentumDrift())
		runner.AddMetric(metrics.NewAngularMomentumDrift())

		result, err = runner.Run(context.Background(), simCfg)
		if err != nil {
			return err
		}
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Scenario:  sc.Name,
		Bodies:    len(sc.Bodies),
		G:         cfg.G,
		Softening: cfg.Softening,
		Dt:        cfg.Dt,
		Substeps:  cfg.Substeps,
		Duration:  cfg.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.States))
	if summary != nil {
		fmt.Printf("\nmetrics (%d runs, min/mean/max):\n", runs)
		for name, s := range summary {
			fmt.Printf("  %s: %.6g / %.6g / %.6g\n", name, s.Min, s.Mean, s.Max)
		}
	} else {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6g\n", name, val)
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	return viz.Run(sc, cfg.Dt, cfg.Substeps, cfg.FPS)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	metas, err := st.List()
	if err != nil {
		return err
	}

	if len(metas) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tBODIES\tDT\tDURATION\tTIMESTAMP")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%s\n",
			meta.ID, meta.Scenario, meta.Bodies, meta.Dt, meta.Duration,
			meta.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s has no states", args[0])
	}

	offset := map[string]int{"x": 0, "y": 1, "vx": 2, "vy": 3}
	off, ok := offset[plotAxis]
	if !ok {
		return fmt.Errorf("unknown axis: %s (want x, y, vx or vy)", plotAxis)
	}

	col := plotBody*4 + off
	if col >= len(states[0]) {
		return fmt.Errorf("body %d out of range for run with %d bodies", plotBody, len(states[0])/4)
	}

	series := make([]float64, len(states))
	for i, state := range states {
		series[i] = state[col]
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(20),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d %s", plotBody, plotAxis))))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	path := outFile
	if path == "" {
		path = args[0] + ".json"
	}

	if err := st.ExportJSON(args[0], path); err != nil {
		return err
	}

	fmt.Printf("exported %s to %s\n", args[0], path)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	sys, err := sc.Build()
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		sys.Step(cfg.Dt)
	}
	elapsed := time.Since(start)

	fmt.Printf("%s: %d steps of %d bodies in %v (%.0f steps/s)\n",
		sc.Name, steps, sys.Len(), elapsed, float64(steps)/elapsed.Seconds())
	return nil
}
