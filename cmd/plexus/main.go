package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/web"
)

var (
	configFile string
	seed       int64
	count      int
	width      int
	height     int
	frameRate  int
	// tui
	theme     string
	tuiOutput string
	// run
	runFrames    int
	runHover     bool
	runLive      bool
	runDuration  time.Duration
	scenarioFile string
	csvFile      string
	// snapshot
	snapshotFrames int
	snapshotHover  bool
	snapshotOutput string
	// record
	recordFrames int
	recordHover  bool
	recordOutput string
	every        int
	gifWidth     int
	// bench
	benchFrames int
	// sweep
	sweepFrames int
	sweepHover  bool
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	// contact
	firstName string
	lastName  string
	email     string
	subject   string
	message   string
	endpoint  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands; the root opens the GUI when no
// subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plexus",
		Short: "interactive particle-field backgrounds",
		RunE:  runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed)")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "window or surface width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "window or surface height")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open a raylib window with the background and hero fields",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "run the page as an ebiten game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return web.Run(cfg)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [preset]",
		Short: "show one field in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&count, "count", 0, "particle count (0 keeps the preset)")
	tuiCmd.Flags().StringVar(&theme, "theme", "plexus", "color theme")
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "plexus.gif", "GIF path for recordings")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a field headless and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&count, "count", 0, "particle count (0 keeps the preset)")
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to run")
	runCmd.Flags().BoolVar(&runHover, "hover", false, "hold the pointer at the centre")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write the metric series to a CSV file")
	runCmd.Flags().BoolVar(&runLive, "live", false, "run both fields in real time on an event loop")
	runCmd.Flags().DurationVar(&runDuration, "duration", 10*time.Second, "how long a live run lasts")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render one frame to PNG or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&count, "count", 0, "particle count (0 keeps the preset)")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to advance before the snapshot")
	snapshotCmd.Flags().BoolVar(&snapshotHover, "hover", true, "hold the pointer at the centre")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "plexus.png", "output file (.png or .svg)")

	recordCmd := &cobra.Command{
		Use:   "record [preset]",
		Short: "record an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&count, "count", 0, "particle count (0 keeps the preset)")
	recordCmd.Flags().IntVar(&recordFrames, "frames", 180, "frames to record")
	recordCmd.Flags().BoolVar(&recordHover, "hover", true, "hold the pointer at the centre")
	recordCmd.Flags().IntVar(&every, "every", 2, "keep every n-th frame")
	recordCmd.Flags().IntVar(&gifWidth, "gif-width", 480, "GIF width in pixels")
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "plexus.gif", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark frame throughput for several particle counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one field parameter and compare metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per run")
	sweepCmd.Flags().BoolVar(&sweepHover, "hover", true, "hold the pointer at the centre")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "pointer_force", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list field presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "plexus.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	impactCmd := &cobra.Command{
		Use:   "impact <amount>",
		Short: "show the impact note for a donation amount",
		Args:  cobra.ExactArgs(1),
		RunE:  runImpact,
	}

	counterCmd := &cobra.Command{
		Use:   "counter <text>",
		Short: "print the frames of a stat counter animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runCounter,
	}

	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "send a message through the contact form relay",
		Args:  cobra.NoArgs,
		RunE:  runContact,
	}
	contactCmd.Flags().StringVar(&firstName, "first", "", "first name")
	contactCmd.Flags().StringVar(&lastName, "last", "", "last name")
	contactCmd.Flags().StringVar(&email, "email", "", "reply address")
	contactCmd.Flags().StringVar(&subject, "subject", "", "subject")
	contactCmd.Flags().StringVar(&message, "message", "", "message body")
	contactCmd.Flags().StringVar(&endpoint, "endpoint", "", "relay endpoint override")

	rootCmd.AddCommand(guiCmd, webCmd, tuiCmd, runCmd, snapshotCmd, recordCmd, benchCmd, sweepCmd, presetsCmd, initCmd, impactCmd, counterCmd, contactCmd)
	return rootCmd
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg)
}

// loadConfig reads the config file when given; flags override it only when
// set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FrameRate = frameRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadField picks the field named by args[0], looking in the config
// before the presets, and applies --count.
func loadField(cmd *cobra.Command, cfg *config.Config, args []string) (config.Field, error) {
	name := "background"
	if len(args) > 0 {
		name = args[0]
	}
	f, ok := cfg.Field(name)
	if !ok {
		p := config.GetPreset(name)
		if p == nil {
			return config.Field{}, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		f = *p
	}
	if cmd.Flags().Lookup("count") != nil && cmd.Flags().Changed("count") {
		f.Count = count
	}
	if err := f.Validate(); err != nil {
		return config.Field{}, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
