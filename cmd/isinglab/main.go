package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/san-kum/isinglab/internal/analysis"
	"github.com/san-kum/isinglab/internal/config"
	"github.com/san-kum/isinglab/internal/export"
	"github.com/san-kum/isinglab/internal/gui"
	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/metrics"
	"github.com/san-kum/isinglab/internal/storage"
	"github.com/san-kum/isinglab/internal/sweep"
	"github.com/san-kum/isinglab/internal/viz"
	"github.com/san-kum/isinglab/internal/web"
)

var (
	dataDir    string
	configFile string
	presetName string

	size        int
	temperature float64
	coupling    float64
	field       float64
	steps       int
	sweeps      int
	seed        int64
	replicas    int

	plotVariable string
	plotWidth    int
	plotHeight   int

	svgCell   float64
	svgSeries string
	themeName string

	animFrames int
	animEvery  int
	animCell   int
	animDelay  int

	serveAddr string
	guiScale  int

	sweepFrom     float64
	sweepTo       float64
	sweepPoints   int
	sweepReplicas int
	sweepCSV      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isinglab",
		Short: "2D Ising model laboratory",
		Long:  "Metropolis Monte Carlo simulation of the two-dimensional Ising ferromagnet,\nwith terminal and native visualization, storage, sweeps and analysis tools.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runLive(cmd, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isinglab", "directory for stored runs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and store the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sweeps, "sweeps", 0, "run this many sweeps (N*N steps each) instead of --steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	runCmd.Flags().StringVar(&presetName, "preset", "", "named preset (see 'presets')")
	runCmd.Flags().IntVar(&replicas, "replicas", 1, "independent replicas")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE:  listRuns,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse stored runs interactively",
		RunE:  browseRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "Plot a stored time series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotVariable, "var", "magnetization", "series to plot: energy|magnetization")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "Spectral and autocorrelation analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&plotVariable, "var", "magnetization", "series to analyze: energy|magnetization")

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "Print the stored time series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "Print metadata, series and final lattice as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run-id] [output-prefix]",
		Short: "Render a stored run as SVG images (lattice + series)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSVG,
	}
	svgCmd.Flags().Float64Var(&svgCell, "cell", 8, "cell size in pixels")
	svgCmd.Flags().StringVar(&svgSeries, "series", "magnetization", "series to render: energy|magnetization")
	svgCmd.Flags().StringVar(&themeName, "theme", "ferrite", "color theme")

	animateCmd := &cobra.Command{
		Use:   "animate [output.gif]",
		Short: "Simulate and record an animated GIF of the lattice",
		Args:  cobra.MaximumNArgs(1),
		RunE:  animateLattice,
	}
	addSimFlags(animateCmd)
	animateCmd.Flags().IntVar(&animFrames, "frames", 100, "number of frames")
	animateCmd.Flags().IntVar(&animEvery, "every", 1, "sweeps between frames")
	animateCmd.Flags().IntVar(&animCell, "cell", 8, "cell size in pixels")
	animateCmd.Flags().IntVar(&animDelay, "delay", 4, "delay between frames in 1/100s")
	animateCmd.Flags().StringVar(&themeName, "theme", "ferrite", "color theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Interactive terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "Native window visualization",
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().IntVar(&guiScale, "scale", 8, "pixels per lattice cell")
	guiCmd.Flags().StringVar(&themeName, "theme", "ferrite", "color theme")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a browser visualization over WebSocket",
		RunE:  runServe,
	}
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8420", "listen address")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep temperature and measure observables",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&size, "size", 16, "lattice size N")
	sweepCmd.Flags().Float64Var(&coupling, "j", config.DefaultJ, "coupling strength J")
	sweepCmd.Flags().Float64Var(&field, "field", 0, "external field h")
	sweepCmd.Flags().IntVar(&steps, "steps", 50000, "measurement steps per temperature")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "base RNG seed (0 = time-based)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1.0, "lowest temperature")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 3.5, "highest temperature")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of temperatures")
	sweepCmd.Flags().IntVar(&sweepReplicas, "replicas", 3, "replicas per temperature")
	sweepCmd.Flags().StringVar(&sweepCSV, "csv", "", "write results to a CSV file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark Metropolis throughput across lattice sizes",
		RunE:  benchModel,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		RunE:  listPresets,
	}

	curieCmd := &cobra.Command{
		Use:   "curie",
		Short: "Print the exact critical temperature",
		RunE:  printCurie,
	}
	curieCmd.Flags().Float64Var(&coupling, "j", config.DefaultJ, "coupling strength J")

	rootCmd.AddCommand(runCmd, listCmd, runsCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, svgCmd, animateCmd,
		liveCmd, guiCmd, serveCmd, sweepCmd, benchCmd, presetsCmd, curieCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "lattice size N")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature T in units of J/k_B")
	cmd.Flags().Float64Var(&coupling, "j", config.DefaultJ, "coupling strength J")
	cmd.Flags().Float64Var(&field, "field", 0, "external field h")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "elementary Metropolis steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
}

// resolveConfig layers preset, config file and explicit flags, in
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		p := config.GetPreset(presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (try 'isinglab presets')", presetName)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("size") {
		cfg.Size = size
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("j") {
		cfg.J = coupling
	}
	if cmd.Flags().Changed("field") {
		cfg.H = field
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("replicas") {
		cfg.Replicas = replicas
	}
	if f := cmd.Flags().Lookup("sweeps"); f != nil && f.Changed && sweeps > 0 {
		cfg.Steps = sweeps * cfg.Size * cfg.Size
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Replicas < 1 {
		cfg.Replicas = 1
	}
	return cfg, nil
}

func newModel(cfg *config.Config) (*ising.Model, error) {
	return ising.New(cfg.Params(), rand.New(rand.NewSource(cfg.Seed)))
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	if cfg.Replicas > 1 {
		return runEnsemble(ctx, cfg)
	}

	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	m.AddMetric(metrics.NewAcceptanceRate())
	m.AddMetric(metrics.NewMeanAbsMagnetization())
	m.AddMetric(metrics.NewSusceptibility(cfg.Size, cfg.Temperature))
	m.AddMetric(metrics.NewSpecificHeat(cfg.Size, cfg.Temperature))
	m.AddMetric(metrics.NewBinderCumulant())

	start := time.Now()
	result, err := m.Simulate(ctx, cfg.Steps)
	elapsed := time.Since(start)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(cfg.Params(), cfg.Seed, result, m.Snapshot())
	if err != nil {
		return err
	}

	if interrupted {
		fmt.Printf("Interrupted after %d of %d steps.\n", result.Steps, cfg.Steps)
	}
	fmt.Printf("Run %s finished in %s\n", runID, elapsed.Round(time.Millisecond))
	fmt.Printf("  lattice:      %dx%d  T=%.4f  J=%.2f  h=%.2f\n",
		cfg.Size, cfg.Size, cfg.Temperature, cfg.J, cfg.H)
	fmt.Printf("  steps:        %d (%.0f steps/s)\n",
		result.Steps, float64(result.Steps)/elapsed.Seconds())
	fmt.Printf("  acceptance:   %.4f\n", result.AcceptanceRate())
	fmt.Printf("  final energy: %.4f\n", m.Energy())
	fmt.Printf("  final |m|:    %.4f\n", absFloat(m.Magnetization()))
	for name, value := range result.Metrics {
		fmt.Printf("  %-13s %.6f\n", name+":", value)
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	ens := ising.NewEnsemble(cfg.Params(), cfg.Replicas, cfg.Seed)
	start := time.Now()
	results, err := ens.Run(ctx, cfg.Steps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Ensemble of %d replicas finished in %s\n", cfg.Replicas, elapsed.Round(time.Millisecond))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPLICA\tSEED\tACCEPTANCE\tFINAL E\tFINAL m")
	finals := make([]float64, 0, len(results))
	for i, r := range results {
		lastE := r.Energies[len(r.Energies)-1]
		lastM := r.Magnetizations[len(r.Magnetizations)-1]
		finals = append(finals, absFloat(lastM))
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%+.4f\n",
			i, cfg.Seed+int64(i), r.AcceptanceRate(), lastE, lastM)
	}
	w.Flush()
	fmt.Printf("mean final |m|: %.4f\n", analysis.Mean(finals))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored runs. Try 'isinglab run'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSIZE\tT\th\tSTEPS\tACCEPT\t|m|\tENERGY")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.2f\t%d\t%.3f\t%.4f\t%.2f\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Size, r.Temperature, r.H, r.Steps,
			float64(r.Accepted)/float64(max(r.Steps, 1)),
			r.FinalAbsMag, r.FinalEnergy)
	}
	return w.Flush()
}

func browseRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	browser, err := viz.NewRunBrowser(store)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(browser).Run()
	return err
}

func loadVariable(store *storage.Store, runID, variable string) ([]float64, error) {
	energies, magnetizations, err := store.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	switch variable {
	case "energy":
		return energies, nil
	case "magnetization":
		return magnetizations, nil
	default:
		return nil, fmt.Errorf("unknown variable %q: want energy or magnetization", variable)
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	series, err := loadVariable(store, args[0], plotVariable)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	fmt.Printf("%s of run %s (%d samples)\n\n", plotVariable, args[0], len(series))
	fmt.Println(asciigraph.Plot(downsample(series, plotWidth),
		asciigraph.Height(plotHeight), asciigraph.Width(plotWidth)))

	fmt.Printf("\nmean %.4f  variance %.6f  min %.4f  max %.4f\n",
		analysis.Mean(series), analysis.Variance(series), minOf(series), maxOf(series))

	snap, err := store.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	canvas := viz.NewCanvas((snap.Size+1)/2, (snap.Size+3)/4)
	canvas.DrawLattice(snap.Spins, snap.Size)
	fmt.Println("\nfinal lattice:")
	fmt.Print(canvas.String())
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	series, err := loadVariable(store, args[0], plotVariable)
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("run %s is too short to analyze", args[0])
	}

	mean := analysis.Mean(series)
	variance := analysis.Variance(series)
	tau := analysis.IntegratedAutocorrelationTime(series)

	fmt.Printf("analysis of %s, run %s\n", plotVariable, args[0])
	fmt.Printf("  samples:   %d\n", len(series))
	fmt.Printf("  mean:      %.6f\n", mean)
	fmt.Printf("  variance:  %.6f\n", variance)
	fmt.Printf("  tau_int:   %.2f steps\n", tau)
	fmt.Printf("  effective: %.0f independent samples\n", float64(len(series))/(2*tau))

	spectrum := analysis.PowerSpectrum(series)
	if len(spectrum) > 1 {
		fmt.Println("\npower spectrum (log bins):")
		fmt.Println(asciigraph.Plot(downsample(spectrum[1:], 72),
			asciigraph.Height(10), asciigraph.Width(72)))
		peak := 1
		for i := 2; i < len(spectrum); i++ {
			if spectrum[i] > spectrum[peak] {
				peak = i
			}
		}
		fmt.Printf("dominant mode: bin %d of %d\n", peak, len(spectrum))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("run %s not found", args[0])
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	energies, magnetizations, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"step", "energy", "magnetization"}); err != nil {
		return err
	}
	for i := range energies {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(energies[i], 'f', 6, 64),
			strconv.FormatFloat(magnetizations[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("run %s not found", args[0])
	}
	energies, magnetizations, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	snap, err := store.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	payload := struct {
		Run            *storage.RunRecord `json:"run"`
		Energies       []float64          `json:"energies"`
		Magnetizations []float64          `json:"magnetizations"`
		Lattice        *ising.Snapshot    `json:"lattice"`
	}{record, energies, magnetizations, snap}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	theme := viz.GetTheme(themeName)

	snap, err := store.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	series, err := loadVariable(store, args[0], svgSeries)
	if err != nil {
		return err
	}

	prefix := args[0]
	if len(args) > 1 {
		prefix = args[1]
	}

	latticeOut := prefix + "_lattice.svg"
	doc := export.LatticeToSVG(snap, svgCell, theme)
	if err := os.WriteFile(latticeOut, []byte(doc), 0o644); err != nil {
		return err
	}
	seriesOut := fmt.Sprintf("%s_%s.svg", prefix, svgSeries)
	doc = export.SeriesToSVG(downsample(series, 800), 800, 300, string(theme.Accent))
	if err := os.WriteFile(seriesOut, []byte(doc), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", latticeOut, seriesOut)
	return nil
}

func animateLattice(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	theme := viz.GetTheme(themeName)
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	if animFrames < 1 || animEvery < 1 {
		return fmt.Errorf("frames and every must be positive")
	}

	anim := export.NewAnimation(cfg.Size, animCell, animDelay, theme)
	for f := 0; f < animFrames; f++ {
		if err := anim.AddFrame(m.Snapshot()); err != nil {
			return err
		}
		for s := 0; s < animEvery; s++ {
			m.Sweep()
		}
	}

	out := "lattice.gif"
	if len(args) > 0 {
		out = args[0]
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := anim.Encode(file); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, %d sweeps apart)\n", out, anim.FrameCount(), animEvery)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewLive(m), tea.WithAltScreen()).Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	theme := viz.GetTheme(themeName)
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	if guiScale < 1 {
		guiScale = 1
	}

	ebiten.SetWindowSize(cfg.Size*guiScale, cfg.Size*guiScale)
	ebiten.SetWindowTitle(fmt.Sprintf("isinglab %dx%d T=%.3f", cfg.Size, cfg.Size, cfg.Temperature))
	if err := ebiten.RunGame(gui.New(m, guiScale, theme)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := newModel(cfg)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "isinglab",
	})
	logger.Info("serving", "addr", serveAddr, "size", cfg.Size, "T", cfg.Temperature)
	return web.NewServer(m, serveAddr, logger).Run(ctx)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepPoints < 2 {
		return fmt.Errorf("need at least 2 temperature points")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := interruptContext()
	defer stop()

	s := sweep.New(size, coupling, steps)
	s.H = field
	s.Replicas = sweepReplicas
	s.Seed = seed
	s.Logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "sweep"})

	temps := sweep.Temperatures(sweepFrom, sweepTo, sweepPoints)
	start := time.Now()
	points, err := s.Run(ctx, temps)
	if err != nil {
		return err
	}
	fmt.Printf("swept %d temperatures in %s\n\n", len(points), time.Since(start).Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\t<|m|>\tCHI\tC\tU4\tACCEPT")
	mags := make([]float64, len(points))
	chis := make([]float64, len(points))
	for i, p := range points {
		mags[i] = p.MeanAbsMag
		chis[i] = p.Susceptibility
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\n",
			p.Temperature, p.MeanAbsMag, p.Susceptibility,
			p.SpecificHeat, p.BinderCumulant, p.AcceptanceRate)
	}
	w.Flush()

	fmt.Println("\nmean |m|:")
	fmt.Println(asciigraph.Plot(mags, asciigraph.Height(8), asciigraph.Width(60)))
	fmt.Println("\nsusceptibility:")
	fmt.Println(asciigraph.Plot(chis, asciigraph.Height(8), asciigraph.Width(60)))

	if tc, err := sweep.EstimateCritical(points); err == nil {
		exact, _ := ising.CurieTemperature(coupling)
		fmt.Printf("\nestimated T_c: %.4f (exact: %.4f)\n", tc, exact)
	}

	if sweepCSV != "" {
		if err := writeSweepCSV(sweepCSV, points); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", sweepCSV)
	}
	return nil
}

func writeSweepCSV(path string, points []sweep.Point) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"temperature", "abs_magnetization", "susceptibility", "specific_heat", "binder", "acceptance"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Temperature, 'f', 6, 64),
			strconv.FormatFloat(p.MeanAbsMag, 'f', 6, 64),
			strconv.FormatFloat(p.Susceptibility, 'f', 6, 64),
			strconv.FormatFloat(p.SpecificHeat, 'f', 6, 64),
			strconv.FormatFloat(p.BinderCumulant, 'f', 6, 64),
			strconv.FormatFloat(p.AcceptanceRate, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func benchModel(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 64, 128}
	temps := []float64{1.0, 2.269, 5.0}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"SIZE"}
	for _, t := range temps {
		header = append(header, fmt.Sprintf("T=%.3f", t))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, n := range sizes {
		row := []string{strconv.Itoa(n)}
		for _, t := range temps {
			m, err := ising.New(ising.Params{Size: n, Temperature: t, J: 1}, rand.New(rand.NewSource(1)))
			if err != nil {
				return err
			}
			nsteps := 200000
			start := time.Now()
			for i := 0; i < nsteps; i++ {
				m.Step()
			}
			rate := float64(nsteps) / time.Since(start).Seconds()
			row = append(row, fmt.Sprintf("%.2fM steps/s", rate/1e6))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tT\th\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.2f\t%d\n", name, p.Size, p.Temperature, p.H, p.Steps)
	}
	return w.Flush()
}

func printCurie(cmd *cobra.Command, args []string) error {
	tc, err := ising.CurieTemperature(coupling)
	if err != nil {
		return err
	}
	fmt.Printf("T_c = %.12f (J = %.4f)\n", tc, coupling)
	return nil
}

// downsample reduces a series to at most width points by block
// averaging so terminal plots stay readable.
func downsample(series []float64, width int) []float64 {
	if width < 1 || len(series) <= width {
		return series
	}
	out := make([]float64, width)
	block := float64(len(series)) / float64(width)
	for i := 0; i < width; i++ {
		lo := int(float64(i) * block)
		hi := int(float64(i+1) * block)
		if hi > len(series) {
			hi = len(series)
		}
		out[i] = analysis.Mean(series[lo:hi])
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minOf(series []float64) float64 {
	lo := series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
	}
	return lo
}

func maxOf(series []float64) float64 {
	hi := series[0]
	for _, v := range series {
		if v > hi {
			hi = v
		}
	}
	return hi
}
