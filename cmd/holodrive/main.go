package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/golang/geo/r3"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/holodrive/internal/config"
	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/logging"
	"github.com/san-kum/holodrive/internal/metrics"
	"github.com/san-kum/holodrive/internal/storage"
	"github.com/san-kum/holodrive/internal/sweep"
	"github.com/san-kum/holodrive/internal/viz"
)

const driveLogFile = "drive.log"

var (
	dataDir  string
	rigFile  string
	preset   string
	logLevel string
	logger   = zap.NewNop()

	tx, ty, tz float64
	rx, ry, rz float64
	pitch      float64
	roll       float64
	yaw        float64
	local      bool

	startYaw float64
	endYaw   float64
	steps    int
	save     bool
	plot     bool
	svgPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "holodrive",
		Short: "holonomic drivetrain mixer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, true)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE:          runDrive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".holodrive", "data directory")
	rootCmd.PersistentFlags().StringVar(&rigFile, "rig", "", "rig file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", config.DefaultName, "rig preset when no rig file is given")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	mixCmd := &cobra.Command{
		Use:   "mix",
		Short: "mix one command into motor outputs",
		Args:  cobra.NoArgs,
		RunE:  runMix,
	}
	commandFlags(mixCmd)
	mixCmd.Flags().Float64Var(&pitch, "pitch", 0, "pitch angle (rad)")
	mixCmd.Flags().Float64Var(&roll, "roll", 0, "roll angle (rad)")
	mixCmd.Flags().Float64Var(&yaw, "yaw", drivetrain.Reference.Z, "yaw angle (rad)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "mix one command across a range of headings",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	commandFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&startYaw, "start", 0, "first heading (rad)")
	sweepCmd.Flags().Float64Var(&endYaw, "end", 2*math.Pi, "last heading, exclusive (rad)")
	sweepCmd.Flags().IntVar(&steps, "steps", sweep.DefaultSteps, "number of headings")
	sweepCmd.Flags().BoolVar(&save, "save", false, "store the run")
	sweepCmd.Flags().BoolVar(&plot, "plot", false, "plot motor velocities")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "sweep several presets with the same command",
		RunE:  comparePresets,
	}
	commandFlags(compareCmd)
	compareCmd.Flags().IntVar(&steps, "steps", sweep.DefaultSteps, "number of headings")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	drawCmd := &cobra.Command{
		Use:   "draw",
		Short: "draw the rig from above with its motor outputs",
		Args:  cobra.NoArgs,
		RunE:  drawRig,
	}
	commandFlags(drawCmd)
	drawCmd.Flags().Float64Var(&yaw, "yaw", drivetrain.Reference.Z, "yaw angle (rad)")
	drawCmd.Flags().StringVar(&svgPath, "svg", "", "write the drawing to an svg file")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the plot to an svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available rig presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMOTORS")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\n", name, len(cfg.Motors))
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [preset] [path]",
		Short: "write a preset as a rig file",
		Args:  cobra.MaximumNArgs(2),
		RunE:  initRig,
	}

	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "drive a rig interactively",
		Args:  cobra.NoArgs,
		RunE:  runDrive,
	}

	rootCmd.AddCommand(mixCmd, sweepCmd, compareCmd, drawCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, presetsCmd, initCmd, driveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func commandFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tx, "tx", 0, "translation x (right)")
	cmd.Flags().Float64Var(&ty, "ty", 0, "translation y (forward)")
	cmd.Flags().Float64Var(&tz, "tz", 0, "translation z (up)")
	cmd.Flags().Float64Var(&rx, "rx", 0, "pitch rate")
	cmd.Flags().Float64Var(&ry, "ry", 0, "roll rate")
	cmd.Flags().Float64Var(&rz, "rz", 0, "yaw rate")
	cmd.Flags().BoolVar(&local, "local", false, "take translation in the body frame")
}

// loadRig builds the drivetrain from --rig, or from --preset when no file is
// given.
func loadRig(l *zap.Logger) (string, *drivetrain.Drivetrain, error) {
	var (
		cfg *config.Config
		err error
	)
	if rigFile != "" {
		cfg, err = config.Load(rigFile)
	} else {
		cfg, err = config.GetPreset(preset)
	}
	if err != nil {
		return "", nil, errors.Wrapf(err, "available presets: %v", config.ListPresets())
	}

	dt, err := cfg.Build(l)
	if err != nil {
		return "", nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "rig"
	}
	return name, dt, nil
}

func runMix(cmd *cobra.Command, args []string) error {
	name, dt, err := loadRig(logger)
	if err != nil {
		return err
	}

	o := dt.Orientation()
	if cmd.Flags().Changed("pitch") {
		o.X = pitch
	}
	if cmd.Flags().Changed("roll") {
		o.Y = roll
	}
	if cmd.Flags().Changed("yaw") {
		o.Z = yaw
	}
	dt.SetOrientation(o.X, o.Y, o.Z)

	translation, rotation := r3.Vector{X: tx, Y: ty, Z: tz}, r3.Vector{X: rx, Y: ry, Z: rz}
	vels, err := dt.MotorVels(translation, rotation, local)
	if err != nil {
		return err
	}
	cmds, err := dt.MotorVelsScaled(translation, rotation, local)
	if err != nil {
		return err
	}

	logger.Debug("mixed", zap.String("rig", name), zap.Float64s("vels", vels))

	fmt.Printf("rig: %s\n", name)
	fmt.Printf("orientation: pitch %.3f roll %.3f yaw %.3f\n\n", o.X, o.Y, o.Z)
	fmt.Print(viz.RenderMix(dt.Names(), vels, cmds))
	return nil
}

// sweepConfig starts from sweep.DefaultConfig and overrides only the command
// parts given on the command line.
func sweepConfig(cmd *cobra.Command) sweep.Config {
	cfg := sweep.DefaultConfig()
	flags := cmd.Flags()
	if flags.Changed("tx") || flags.Changed("ty") || flags.Changed("tz") {
		cfg.Translation = r3.Vector{X: tx, Y: ty, Z: tz}
	}
	if flags.Changed("rx") || flags.Changed("ry") || flags.Changed("rz") {
		cfg.Rotation = r3.Vector{X: rx, Y: ry, Z: rz}
	}
	if flags.Lookup("start") != nil {
		cfg.StartYaw = startYaw
		cfg.EndYaw = endYaw
	}
	cfg.Steps = steps
	cfg.ForceLocal = local
	return cfg
}

func runSweep(cmd *cobra.Command, args []string) error {
	name, dt, err := loadRig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := sweep.New(dt)
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}

	cfg := sweepConfig(cmd)
	logger.Info("sweep started", zap.String("rig", name), zap.Int("steps", cfg.Steps))
	start := time.Now()

	result, err := r.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("rig: %s\n", name)
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d\n\nmetrics:\n", result.Steps)
	fmt.Print(viz.RenderMetrics(result.Metrics))

	if plot {
		fmt.Println()
		plotSeries(result.Names, result.Yaws, func(i int) []float64 { return result.Series(i) })
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg, result)
		if err != nil {
			return err
		}
		logger.Info("run saved", zap.String("id", runID))
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	rigs := make([]*drivetrain.Drivetrain, len(names))
	for i, name := range names {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		if rigs[i], err = cfg.Build(logger); err != nil {
			return err
		}
	}

	cfg := sweepConfig(cmd)
	results, err := sweep.NewBatch(rigs, metrics.Defaults).Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMOTORS\tEFFORT\tPEAK\tSATURATION")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.2f%%\n",
			names[i],
			len(res.Names),
			res.Metrics["effort"],
			res.Metrics["peak"],
			100*res.Metrics["saturation"],
		)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tRIG\tTIME\tSTEPS\tTRANSLATION\tROTATION\tLOCAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%v\t%t\n",
			run.ID,
			run.Rig,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Translation,
			run.Rotation,
			run.ForceLocal,
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

	yaws, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(yaws) == 0 {
		return errors.New("no data to plot")
	}

	if svgPath != "" {
		svg := viz.SeriesSVG(yaws, series, meta.Motors, 800, 300)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("rig: %s\n", meta.Rig)
	fmt.Printf("samples: %d\n\n", len(yaws))

	plotSeries(meta.Motors, yaws, func(i int) []float64 { return series[i] })
	return nil
}

func drawRig(cmd *cobra.Command, args []string) error {
	name, dt, err := loadRig(logger)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("yaw") {
		o := dt.Orientation()
		dt.SetOrientation(o.X, o.Y, yaw)
	}

	vels, err := dt.MotorVels(r3.Vector{X: tx, Y: ty, Z: tz}, r3.Vector{X: rx, Y: ry, Z: rz}, local)
	if err != nil {
		return err
	}

	c := viz.NewCanvas(40, 20)
	viz.DrawRig(c, dt, vels)

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(c.SVG(6, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Printf("rig: %s  yaw: %.3f\n", name, dt.Orientation().Z)
	fmt.Print(c.String())
	return nil
}

func plotSeries(names []string, yaws []float64, column func(int) []float64) {
	caption := fmt.Sprintf("velocity vs heading %.2f..%.2f rad", yaws[0], yaws[len(yaws)-1])
	for i, name := range names {
		graph := asciigraph.Plot(column(i),
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.LowerBound(-1),
			asciigraph.UpperBound(1),
			asciigraph.Caption(name+": "+caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func initRig(cmd *cobra.Command, args []string) error {
	name, path := preset, "rig.yaml"
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}

	cfg, err := config.GetPreset(name)
	if err != nil {
		return errors.Wrapf(err, "available presets: %v", config.ListPresets())
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("wrote %s rig to %s\n", name, path)
	return nil
}

// runDrive sends rig logs to drive.log under --data while the full-screen
// view is up.
func runDrive(cmd *cobra.Command, args []string) error {
	l, err := driveLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	name, dt, err := loadRig(l)
	if err != nil {
		return err
	}
	return viz.RunDrive(name, dt)
}

func driveLogger() (*zap.Logger, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return logging.NewFile(logLevel, filepath.Join(dataDir, driveLogFile))
}
