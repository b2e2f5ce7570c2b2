package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/export"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	preset     string
	seed       int64
	integrator string
	collision  string
	frameRate  int
	frames     int
	dt         float64
	svgFile    string
	energySVG  string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "bounce",
	})

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bounce",
		Short:         "bouncing ball simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			return nil
		},
		// Default to the window when no command given
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed, or the clock)")
	pf.StringVar(&integrator, "integrator", "", "integrator (semi_implicit, euler, verlet)")
	pf.StringVar(&collision, "collision", "", "pair collision mode (snapshot, sequential)")
	pf.IntVar(&frameRate, "fps", 0, "frame limit override")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with a fixed timestep and print metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 1200, "number of frames")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/120, "timestep in seconds")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the last frame as svg")
	runCmd.Flags().StringVar(&energySVG, "energy-svg", "", "write the energy history as svg")

	compareCmd := &cobra.Command{
		Use:   "compare [integrators...]",
		Short: "compare integrators on the same scenario",
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().IntVar(&frames, "frames", 1200, "number of frames")
	compareCmd.Flags().Float64Var(&dt, "dt", 1.0/120, "timestep in seconds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, compareCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: preset, then config file
// (which overrides the preset), then flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(config.Overrides{
		Preset:     preset,
		File:       configFile,
		Seed:       seed,
		Integrator: integrator,
		Collision:  collision,
		FPS:        frameRate,
	})
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		logger.Debug("config loaded", "path", configFile, "preset", preset)
	}
	return cfg, nil
}

// finish logs the outcome of an interactive run. Ctrl-C is a normal exit.
func finish(res *sim.Result, err error) error {
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("closed", "reason", res.Reason, "frames", res.Frames, "sim_time", fmt.Sprintf("%.2fs", res.SimTime))
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	logger.Debug("starting window", "seed", exp.Seed(), "integrator", cfg.Integrator, "collision", cfg.Physics.Collision)
	return finish(gui.Run(cmd.Context(), exp, logger))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)

	// The terminal owns the screen while the view is up, so the simulator
	// logs nowhere.
	return finish(viz.Run(cmd.Context(), exp, nil))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	win := sim.NewHeadlessWindow(cfg.Window.Width, cfg.Window.Height, 0)

	logger.Info("running headless", "frames", frames, "dt", dt, "bodies", len(cfg.Bodies), "seed", exp.Seed())
	start := time.Now()

	res, err := exp.RunHeadless(cmd.Context(), win, frames, dt, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(headerStyle.Render("RESULT"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", res.Frames)
	fmt.Fprintf(w, "sim time\t%.3fs\n", res.SimTime)
	fmt.Fprintf(w, "wall hits\t%d\n", res.WallHits)
	fmt.Fprintf(w, "pair hits\t%d\n", res.PairHits)
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	w.Flush()

	fmt.Println("\n" + headerStyle.Render("METRICS"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range exp.Metrics() {
		fmt.Fprintf(w, "%s\t%.6f\n", m.Name(), res.Metrics[m.Name()])
	}
	w.Flush()

	hist := exp.EnergyHistory()
	if len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("Energy"))
		fmt.Println("\n" + graphStyle.Render(chart))
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.FrameToSVG(win.Last, win.Width, win.Height)), 0644); err != nil {
			return err
		}
		logger.Info("frame written", "path", svgFile)
	}
	if energySVG != "" {
		if err := os.WriteFile(energySVG, []byte(export.SeriesToSVG(hist, 600, 200, "#00ff88")), 0644); err != nil {
			return err
		}
		logger.Info("energy plot written", "path", energySVG)
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	fmt.Printf("comparing integrators (dt=%.4f, frames=%d)\n\n", dt, frames)
	fmt.Printf("%-14s  %-12s  %-10s  %-10s  %-10s\n", "integrator", "energy_drift", "wall_hits", "pair_hits", "time_ms")
	fmt.Println(strings.Repeat("-", 64))

	for _, name := range names {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Integrator = name
		if cfg.Seed == 0 {
			// Every integrator must see the same jitter sequence.
			cfg.Seed = 1
		}

		exp := experiment.New(cfg)
		start := time.Now()
		res, err := exp.RunHeadless(cmd.Context(), nil, frames, dt)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-14s  %12.2e  %10d  %10d  %10.2f\n", name, res.Metrics["energy_drift"], res.WallHits, res.PairHits, float64(elapsed.Microseconds())/1000)
	}

	return nil
}
