package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
)

var captions = map[string]string{
	sim.SeriesKinetic:   "kinetic energy",
	sim.SeriesMaxSpeed:  "max node speed",
	sim.SeriesCentroidX: "centroid x",
	sim.SeriesCentroidY: "centroid y",
}

// loadRun reads a stored run's metadata and series.
func loadRun(runID string) (*storage.RunMetadata, []float64, map[string][]float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(times) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, times, series, nil
}

func runDt(meta *storage.RunMetadata) float64 {
	if meta.Config != nil {
		return meta.Config.DeltaTime
	}
	return config.DefaultDeltaTime
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, times, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scheme: %s\n", meta.Scheme)
	fmt.Printf("samples: %d\n\n", len(times))

	for _, name := range sim.SeriesNames {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[name]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, _, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	name := sim.SeriesCentroidY
	if len(args) > 1 {
		name = args[1]
	}
	data, ok := series[name]
	if !ok {
		return fmt.Errorf("unknown series: %s (available: %v)", name, sim.SeriesNames)
	}

	portrait := analysis.PhasePortraitFromSeries(data, runDt(meta))
	if portrait == nil {
		return fmt.Errorf("not enough samples for a phase portrait")
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("x: %s, y: d/dt %s\n\n", name, name)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, _, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	dt := runDt(meta)

	fmt.Printf("analysis: %s\n\n", meta.ID)

	for _, name := range sim.SeriesNames {
		data := series[name]
		stats := analysis.Summarize(data)
		fmt.Printf("%s\n", captions[name])
		fmt.Printf("  min %.4f  max %.4f  mean %.4f  final %.4f\n", stats.Min, stats.Max, stats.Mean, stats.Final)

		freq, amp, err := analysis.DominantFrequency(data, dt)
		if err != nil {
			fmt.Printf("  spectrum: %v\n", err)
			continue
		}
		fmt.Printf("  dominant frequency: %.3f hz (amplitude %.3g)\n", freq, amp)
		if freq > 0 {
			fmt.Printf("  period: %.3f s\n", 1.0/freq)
		}
	}

	ke := series[sim.SeriesKinetic]
	if idx := analysis.SettleIndex(ke, 1); idx >= 0 {
		fmt.Printf("\nsettled after tick %d (%.2f s)\n", idx, float64(idx)*dt)
	} else {
		fmt.Println("\nstill moving at the end of the run")
	}

	ps := analysis.PowerSpectrum(series[sim.SeriesCentroidY])
	if len(ps) > 8 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:len(ps)/4+1],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (centroid y)"),
		))
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, times, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"time"}, sim.SeriesNames...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range sim.SeriesNames {
			val := 0.0
			if i < len(series[name]) {
				val = series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, times, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	snap, err := storage.New(dataDir).LoadLattice(args[0])
	if err != nil {
		return err
	}

	cfg := meta.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	result := &sim.Result{
		Ticks:   meta.Ticks,
		Times:   times,
		Series:  series,
		Metrics: meta.Metrics,
		Final:   snap.Nodes,
	}

	path := "-"
	if len(args) > 1 {
		path = args[1]
	}
	return storage.ExportJSON(path, storage.NewExportData(meta.Name, cfg, result))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if len(args) > 1 {
		times, series, err := st.LoadSeries(args[0])
		if err != nil {
			return err
		}
		data, ok := series[args[1]]
		if !ok {
			return fmt.Errorf("unknown series: %s (available: %v)", args[1], sim.SeriesNames)
		}
		fmt.Println(export.SeriesToSVG(times, data, 800, 300, "#b4b4b4"))
		return nil
	}

	snap, err := st.LoadLattice(args[0])
	if err != nil {
		return err
	}
	cfg := meta.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	scale, _ := cmd.Flags().GetFloat64("scale")
	if braille, _ := cmd.Flags().GetBool("braille"); braille {
		canvas := viz.NewCanvas(int(cfg.Width/2), int(cfg.Height/4))
		export.Draw(viz.NewTermRenderer(canvas, cfg.Width, cfg.Height), snap.Nodes, snap.Rows, snap.Cols)
		fmt.Println(export.CanvasToSVG(canvas, scale))
		return nil
	}

	svg, err := export.LatticeToSVG(snap.Nodes, snap.Rows, snap.Cols, cfg.Width, cfg.Height, scale)
	if err != nil {
		return err
	}
	fmt.Println(svg)
	return nil
}
