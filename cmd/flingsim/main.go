package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/config"
	"github.com/san-kum/flingsim/internal/export"
	"github.com/san-kum/flingsim/internal/logging"
	"github.com/san-kum/flingsim/internal/metrics"
	"github.com/san-kum/flingsim/internal/parser"
	"github.com/san-kum/flingsim/internal/sim"
	"github.com/san-kum/flingsim/internal/storage"
	"github.com/san-kum/flingsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	dt         float64
	duration   float64
	seed       int64
	noSave     bool
	frameRate  int
	plotBall   string
	copies     int
	jobs       int
	jitter     float64
	format     string
	speedLimit float64
	outFile    string
	svgScale   float64
	withTrace  bool
	snapDt     float64
	snapTime   float64
	benchDt    float64
	benchTime  float64
	benchSeed  int64

	log *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "flingsim",
		Short:         "flingball board simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if configFile != "" && !cmd.Flags().Changed("log-level") {
				if cfg, err := config.Load(configFile); err == nil && cfg.LogLevel != "" {
					level = cfg.LogLevel
				}
			}
			var err error
			log, err = logging.New(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultOutput, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run config file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [board]",
		Short: "run a board headless with a fixed timestep and record the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBoard,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "seed recorded with the run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().Float64Var(&speedLimit, "speed-limit", 50, "speed above which a frame counts as unstable")

	liveCmd := &cobra.Command{
		Use:   "live [board]",
		Short: "animate a board in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	checkCmd := &cobra.Command{
		Use:   "check [board...]",
		Short: "parse and validate board files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  checkBoards,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [board]",
		Short: "print a board as .fb or yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  convertBoard,
	}
	convertCmd.Flags().StringVar(&format, "format", "yaml", "output format (fb, yaml)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [board]",
		Short: "write the board as SVG after running it for --time",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotBoard,
	}
	snapshotCmd.Flags().Float64Var(&snapDt, "dt", config.DefaultDt, "timestep")
	snapshotCmd.Flags().Float64Var(&snapTime, "time", 0, "time to run before drawing")
	snapshotCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 20, "pixels per board unit")
	snapshotCmd.Flags().BoolVar(&withTrace, "trace", false, "draw ball paths")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot ball heights of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBall, "ball", "", "only plot this ball")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in boards",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [board...]",
		Short: "run boards concurrently and report throughput",
		RunE:  benchBoards,
	}
	benchCmd.Flags().Float64Var(&benchDt, "dt", config.DefaultDt, "timestep")
	benchCmd.Flags().Float64Var(&benchTime, "time", config.DefaultDuration, "duration")
	benchCmd.Flags().IntVar(&copies, "copies", 4, "copies of each board")
	benchCmd.Flags().IntVar(&jobs, "jobs", 0, "boards run at once (0 = unlimited)")
	benchCmd.Flags().Float64Var(&jitter, "jitter", 0.5, "stddev of random ball velocity changes per copy")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "jitter seed")

	rootCmd.AddCommand(runCmd, liveCmd, checkCmd, convertCmd, snapshotCmd, listCmd, plotCmd, exportCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runConfig merges the config file, if any, with flags set on cmd.
func runConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Board = args[0]
	}
	flags := cmd.Flags()
	if flags.Lookup("dt") != nil && (configFile == "" || flags.Changed("dt")) {
		cfg.Dt = dt
	}
	if flags.Lookup("time") != nil && (configFile == "" || flags.Changed("time")) {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("fps") != nil && (configFile == "" || flags.Changed("fps")) {
		cfg.FPS = frameRate
	}
	if configFile == "" || flags.Changed("data") {
		cfg.Output = dataDir
	}
	return cfg, cfg.Validate()
}

func buildBoard(ref string) (*board.Board, error) {
	d, err := config.LoadBoard(ref)
	if err != nil {
		return nil, err
	}
	return d.Build(log)
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd, args)
	if err != nil {
		return err
	}

	b, err := buildBoard(cfg.Board)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(b)
	rec := sim.NewRecorder()
	s.AddObserver(rec)
	ms := metrics.Standard(speedLimit)
	for _, m := range ms {
		s.AddObserver(m)
	}

	log.Info("running board",
		zap.String("board", b.Name()),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
	)
	start := time.Now()
	result, err := s.Run(ctx, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info("run finished", zap.Int("frames", result.Frames), zap.Duration("elapsed", elapsed))

	fmt.Printf("board: %s\n", b.Name())
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("collisions: %d\n", result.Collisions)
	fmt.Printf("absorbed: %d/%d\n", result.Absorbed, len(b.Balls()))

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
		fmt.Printf("%s: %.4f\n", m.Name(), m.Value())
	}

	if noSave {
		return nil
	}

	src, err := config.Source(cfg.Board)
	if err != nil {
		return err
	}
	st := storage.New(cfg.Output)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Board:    b.Name(),
		Source:   src,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Result:   result,
		Samples:  rec.Samples(),
		Metrics:  values,
	})
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd, args)
	if err != nil {
		return err
	}

	d, err := config.LoadBoard(cfg.Board)
	if err != nil {
		return err
	}

	m, err := viz.NewLiveModel(func() (*board.Board, error) { return d.Build(log) }, cfg.FPS)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func checkBoards(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tBOARD\tBALLS\tGADGETS\tTRIGGERS\tSTATUS")

	failed := 0
	for _, ref := range args {
		b, err := buildBoard(ref)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", ref, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\tok\n",
			ref, b.Name(), len(b.Balls()), len(b.Gadgets()), len(b.Triggers()))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d boards invalid", failed, len(args))
	}
	return nil
}

func convertBoard(cmd *cobra.Command, args []string) error {
	d, err := config.LoadBoard(args[0])
	if err != nil {
		return err
	}
	if _, err := d.Build(log); err != nil {
		return err
	}

	switch format {
	case "fb":
		fmt.Print(d.FB())
		return nil
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s (available: fb, yaml)", format)
	}
}

func snapshotBoard(cmd *cobra.Command, args []string) error {
	b, err := buildBoard(args[0])
	if err != nil {
		return err
	}

	s := sim.New(b)
	rec := sim.NewRecorder()
	if withTrace {
		s.AddObserver(rec)
	}
	if snapTime > 0 {
		if _, err := s.Run(context.Background(), sim.Config{Dt: snapDt, Duration: snapTime}); err != nil {
			return err
		}
	}

	svg := export.TraceSVG(b, rec.Samples(), svgScale)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	log.Info("snapshot written", zap.String("file", outFile), zap.Float64("time", s.Stepper().Now()))
	return nil
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
	fmt.Fprintln(w, "ID\tBOARD\tTIME\tDURATION\tDT\tFRAMES\tHITS\tSOURCE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\t%s\n",
			run.ID,
			run.Board,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Frames,
			run.Collisions,
			run.Fingerprint,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("board: %s\n", meta.Board)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	plotted := 0
	for _, name := range meta.Balls {
		if plotBall != "" && name != plotBall {
			continue
		}
		data := sim.Series(samples, name)
		if len(data) == 0 {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s height vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

	if plotted == 0 {
		return fmt.Errorf("no trace for ball %q", plotBall)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBOARD\tBALLS\tGADGETS\tTRIGGERS")

	for _, name := range config.ListPresets() {
		d, err := config.LoadBoard(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", name, d.Name, len(d.Balls), len(d.Gadgets), len(d.Fire))
	}
	return w.Flush()
}

func benchBoards(cmd *cobra.Command, args []string) error {
	refs := args
	if len(refs) == 0 {
		refs = config.ListPresets()
	}

	var ensemble []sim.Job
	for _, ref := range refs {
		d, err := config.LoadBoard(ref)
		if err != nil {
			return err
		}
		for i := 0; i < copies; i++ {
			copyDesc := jittered(d, rand.New(rand.NewPCG(uint64(benchSeed), uint64(len(ensemble)))))
			ensemble = append(ensemble, sim.Job{
				Name:  fmt.Sprintf("%s#%d", ref, i),
				Build: func() (*board.Board, error) { return copyDesc.Build(nil) },
			})
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %d boards\n\n", len(ensemble))
	start := time.Now()
	outcomes, err := sim.RunEnsemble(ctx, ensemble, sim.Config{Dt: benchDt, Duration: benchTime}, jobs)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOARD\tFRAMES\tHITS\tABSORBED\tTIME\tFRAMES/SEC")

	total := 0
	for _, o := range outcomes {
		total += o.Result.Frames
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\t%.0f\n",
			o.Name, o.Result.Frames, o.Result.Collisions, o.Result.Absorbed,
			o.Elapsed, float64(o.Result.Frames)/o.Elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal: %d frames in %v (%.0f frames/sec)\n", total, wall, float64(total)/wall.Seconds())
	return nil
}

// jittered copies d with every ball's velocity nudged by gaussian noise.
func jittered(d *parser.Description, rng *rand.Rand) *parser.Description {
	c := *d
	c.Balls = make([]parser.BallSpec, len(d.Balls))
	for i, b := range d.Balls {
		b.XVelocity += rng.NormFloat64() * jitter
		b.YVelocity += rng.NormFloat64() * jitter
		c.Balls[i] = b
	}
	return &c
}
