package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/tui"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	scriptFile string

	restLength float64
	stiffness  float64
	gravity    float64
	nodeMass   float64
	damping    float64
	dt         float64
	dragRadius float64
	maxSpeed   float64
	rows       int
	cols       int
	tickRate   int
	anchors    string
	scheme     string
	dragLocked bool

	runName string
	metrics []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clothsim",
		Short:        "interactive mass-spring cloth",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	addClothFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drag the cloth with the mouse in the terminal",
		RunE:  runLive,
	}
	addClothFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "drag the cloth in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			scale, _ := cmd.Flags().GetFloat64("scale")
			return gui.Run(cfg, scale)
		},
	}
	addClothFlags(guiCmd)
	guiCmd.Flags().Float64("scale", 5, "window pixels per world unit")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "play a pointer script in plain ASCII",
		RunE:  runWatch,
	}
	addClothFlags(watchCmd)
	watchCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (yaml)")
	watchCmd.Flags().Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the result",
		RunE:  runHeadless,
	}
	addClothFlags(runCmd)
	runCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (yaml)")
	runCmd.Flags().Int("ticks", 600, "ticks to run")
	runCmd.Flags().StringVar(&runName, "name", "cloth", "run name")
	runCmd.Flags().StringSliceVar(&metrics, "metrics", nil, "metrics to record (default all)")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "re-run a stored run and compare the final lattice",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id] [series]",
		Short: "phase portrait of one series",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and settling analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export run data to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [series]",
		Short: "export the final lattice, or one series, to SVG",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64("scale", 4, "pixels per world unit")
	exportSVGCmd.Flags().Bool("braille", false, "render the lattice as braille dots")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tANCHORS\tK\tDAMPING\tSCHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.1f\t%.2f\t%s\n",
					name, p.Rows, p.Cols, p.Anchors, p.Stiffness, p.DampingRate, p.Scheme)
			}
			return w.Flush()
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [metric] [param=v1,v2,...]...",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.MinimumNArgs(2),
		RunE:  tune,
	}
	addClothFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (yaml)")
	tuneCmd.Flags().Int("ticks", 300, "ticks per candidate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max] [steps]",
		Short: "sweep one parameter",
		Args:  cobra.ExactArgs(4),
		RunE:  sweep,
	}
	addClothFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (yaml)")
	sweepCmd.Flags().Int("ticks", 300, "ticks per step")

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo [trials]",
		Short: "drag the cloth with random strokes",
		Args:  cobra.ExactArgs(1),
		RunE:  monteCarlo,
	}
	addClothFlags(montecarloCmd)
	montecarloCmd.Flags().Int("ticks", 300, "ticks per trial")
	montecarloCmd.Flags().Int("strokes", 3, "strokes per trial")
	montecarloCmd.Flags().Int64("seed", 0, "random seed (0 uses the clock)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare gauss-seidel and jacobi on the same input",
		RunE:  compareSchemes,
	}
	addClothFlags(compareCmd)
	compareCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (yaml)")
	compareCmd.Flags().Int("ticks", 600, "ticks to run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput by grid size",
		RunE:  bench,
	}
	addClothFlags(benchCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, watchCmd, runCmd, replayCmd, listCmd, plotCmd, phaseCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, tuneCmd, sweepCmd,
		montecarloCmd, compareCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addClothFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&restLength, "rest", config.DefaultRestLength, "spring rest length")
	f.Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring stiffness")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "downward acceleration")
	f.Float64Var(&nodeMass, "mass", config.DefaultNodeMass, "node mass")
	f.Float64Var(&damping, "damping", config.DefaultDampingRate, "velocity damping rate")
	f.Float64Var(&dt, "dt", config.DefaultDeltaTime, "timestep")
	f.Float64Var(&dragRadius, "radius", config.DefaultDragRadius, "drag radius")
	f.Float64Var(&maxSpeed, "max-speed", 0, "clamp node speed (0 disables)")
	f.IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	f.IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	f.IntVar(&tickRate, "fps", config.DefaultTickRate, "ticks per second")
	f.StringVar(&anchors, "anchors", config.DefaultAnchors, "anchor pattern")
	f.StringVar(&scheme, "scheme", config.DefaultScheme, "update scheme (gauss-seidel, jacobi)")
	f.BoolVar(&dragLocked, "drag-locked", false, "let the pointer move anchors")
}

// loadConfig resolves preset, then config file over it, then explicitly set
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	floats := map[string]struct {
		field *float64
		value float64
	}{
		"rest":      {&cfg.RestLength, restLength},
		"stiffness": {&cfg.Stiffness, stiffness},
		"gravity":   {&cfg.Gravity, gravity},
		"mass":      {&cfg.NodeMass, nodeMass},
		"damping":   {&cfg.DampingRate, damping},
		"dt":        {&cfg.DeltaTime, dt},
		"radius":    {&cfg.DragRadius, dragRadius},
		"max-speed": {&cfg.MaxSpeed, maxSpeed},
	}
	for name, f := range floats {
		if flags.Changed(name) {
			*f.field = f.value
		}
	}
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("fps") {
		cfg.TickRate = tickRate
	}
	if flags.Changed("anchors") {
		cfg.Anchors = anchors
	}
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("drag-locked") {
		cfg.DragLocked = dragLocked
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEvents resolves the config and the --ticks flag and, when --script is
// set, applies the script's preset and params and returns its pointer
// timeline. A script's tick count wins over the flag default.
func loadEvents(cmd *cobra.Command) (*config.Config, []sim.PointerEvent, int, error) {
	ticks, _ := cmd.Flags().GetInt("ticks")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, 0, err
	}
	if scriptFile == "" {
		return cfg, nil, ticks, nil
	}

	script, err := automation.LoadScript(scriptFile)
	if err != nil {
		return nil, nil, 0, err
	}
	cfg, err = script.Config(cfg)
	if err != nil {
		return nil, nil, 0, err
	}
	if script.Ticks > 0 && !cmd.Flags().Changed("ticks") {
		ticks = script.Ticks
	}
	return cfg, script.Timeline(), ticks, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, events, ticks, err := loadEvents(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer := tui.NewLiveRenderer(os.Stdout, "clothsim", 80, 24, cfg.Width, cfg.Height)
	driver := sim.NewDriver(exp.GetSimulator(), cfg.TickPeriod(), renderer)
	driver.OnFrame = renderer.Flush
	driver.MaxTicks = ticks

	pointer := make(chan sim.PointerEvent)
	go feedPointer(ctx, pointer, events, cfg.TickPeriod())

	renderer.Start()
	defer renderer.Stop()

	err = driver.Run(ctx, pointer)
	if err == context.Canceled {
		return nil
	}
	return err
}

// feedPointer sends each event at its tick's wall-clock offset.
func feedPointer(ctx context.Context, out chan<- sim.PointerEvent, events []sim.PointerEvent, period time.Duration) {
	defer close(out)
	start := time.Now()
	for _, e := range events {
		wait := time.Until(start.Add(time.Duration(e.Tick) * period))
		if wait > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
		select {
		case <-ctx.Done():
			return
		case out <- e:
		}
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, events, ticks, err := loadEvents(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	if len(metrics) == 0 {
		exp.Setup(registry.Metrics(cfg))
	} else {
		for _, name := range metrics {
			m, err := registry.GetMetric(name, cfg)
			if err != nil {
				return err
			}
			exp.Setup([]sim.Metric{m})
		}
	}

	fmt.Printf("running %dx%d cloth for %d ticks (%s)...\n", cfg.Rows, cfg.Cols, ticks, cfg.Scheme)
	start := time.Now()

	result, err := exp.Run(context.Background(), ticks, events)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runName, cfg, events, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stored, err := st.LoadLattice(args[0])
	if err != nil {
		return err
	}
	if meta.Config == nil {
		return fmt.Errorf("run %s has no stored config", meta.ID)
	}

	exp, err := experiment.New(meta.Config)
	if err != nil {
		return err
	}
	result, err := exp.Run(context.Background(), meta.Ticks, meta.Events)
	if err != nil {
		return err
	}

	if len(result.Final) != len(stored.Nodes) {
		return fmt.Errorf("replay produced %d nodes, stored run has %d", len(result.Final), len(stored.Nodes))
	}

	worst := 0.0
	for i, n := range result.Final {
		worst = max(worst, abs(n.X-stored.Nodes[i].X), abs(n.Y-stored.Nodes[i].Y))
	}

	fmt.Printf("replayed %s: %d ticks\n", meta.ID, result.Ticks)
	fmt.Printf("max position difference: %.3g\n", worst)
	if worst > 1e-9 {
		return fmt.Errorf("replay diverged from stored run by %.3g", worst)
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTICKS\tGRID\tSCHEME\tERRORS")

	for _, run := range runs {
		grid := "-"
		if run.Config != nil {
			grid = fmt.Sprintf("%dx%d", run.Config.Rows, run.Config.Cols)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			grid,
			run.Scheme,
			len(run.Errors),
		)
	}

	return w.Flush()
}

func tune(cmd *cobra.Command, args []string) error {
	cfg, events, ticks, err := loadEvents(cmd)
	if err != nil {
		return err
	}

	metric := args[0]
	names := make([]string, 0, len(args)-1)
	ranges := make([][]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		name, list, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected param=v1,v2,..., got %q", arg)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	fmt.Printf("tuning %v to minimise %s over %d ticks...\n", names, metric, ticks)
	best, value, err := optim.NewGridSearch(names, ranges).Search(context.Background(), cfg, ticks, events, metric)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", metric, value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, events, ticks, err := loadEvents(cmd)
	if err != nil {
		return err
	}

	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return err
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(args[3])
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), cfg, args[0], lo, hi, steps, ticks, events)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK KE\tFINAL KE\tSTATUS\n", strings.ToUpper(args[0]))
	for _, r := range results {
		status := "ok"
		switch {
		case r.Err != nil:
			status = r.Err.Error()
		case r.Diverged:
			status = "diverged"
		}
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%s\n", r.ParamValue, r.PeakKE, r.FinalKE, status)
	}
	return w.Flush()
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	trials, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	strokes, _ := cmd.Flags().GetInt("strokes")
	seed, _ := cmd.Flags().GetInt64("seed")

	results, err := automation.RunMonteCarlo(context.Background(), cfg, &automation.MonteCarloConfig{
		NumTrials: trials,
		Ticks:     ticks,
		Strokes:   strokes,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), stable, unstable)
	for _, r := range results {
		if !r.Stable {
			fmt.Printf("  trial %d: final ke %.3g, vmax %.3g\n", r.TrialID, r.FinalKE, r.MaxSpeed)
		}
	}
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, events, ticks, err := loadEvents(cmd)
	if err != nil {
		return err
	}

	schemes := []sim.Scheme{sim.GaussSeidel, sim.Jacobi}
	members := make([]*sim.Simulator, len(schemes))
	for i, s := range schemes {
		c := cfg.Clone()
		c.Scheme = s.String()
		exp, err := experiment.New(c)
		if err != nil {
			return err
		}
		exp.Setup(experiment.NewRegistry().Metrics(c))
		members[i] = exp.GetSimulator()
	}

	start := time.Now()
	results, err := sim.NewEnsemble(members...).Run(context.Background(), ticks, events)
	if err != nil {
		return err
	}

	fmt.Printf("comparing schemes over %d ticks (%v)\n\n", ticks, time.Since(start))
	names := experiment.NewRegistry().ListMetrics()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SCHEME\tTICKS")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(n))
	}
	fmt.Fprintln(w)
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%d", schemes[i], r.Ticks)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sizes := []int{10, 20, 40, 80}
	const benchTicks = 600

	fmt.Println("benchmarking tick throughput")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSCHEME\tTICKS\tTIME\tTICKS/SEC\tNODES/SEC")

	for _, n := range sizes {
		for _, s := range []sim.Scheme{sim.GaussSeidel, sim.Jacobi} {
			cfg := base.Clone()
			cfg.Rows, cfg.Cols = n, n
			cfg.Scheme = s.String()
			cfg.Width = float64(n+4) * cfg.RestLength
			cfg.Height = float64(n+4) * cfg.RestLength

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background(), benchTicks, nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			perSec := float64(result.Ticks) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%s\t%d\t%v\t%.0f\t%.0f\n",
				n, n, s, result.Ticks, elapsed, perSec, perSec*float64(n*n))
		}
	}

	return w.Flush()
}
