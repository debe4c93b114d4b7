package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/plexus/internal/automation"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/site"
	"github.com/san-kum/plexus/internal/viz"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := loadField(cmd, cfg, args)
	if err != nil {
		return err
	}
	return viz.Run(viz.Options{
		Field:     f,
		Rand:      rand.New(rand.NewSource(cfg.Seed)),
		Theme:     theme,
		FrameRate: cfg.Window.FrameRate,
		GIFPath:   tuiOutput,
	})
}

// scenarioFor builds a scenario from the flags, or loads --scenario when
// given. Flags set explicitly still override the file.
func scenarioFor(cmd *cobra.Command, args []string, frames int, hover bool) (*automation.Scenario, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Lookup("scenario") != nil && scenarioFile != "" {
		s, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		if flags.Changed("frames") {
			s.Frames = frames
		}
		if flags.Changed("seed") {
			s.Seed = seed
		}
		return s, nil
	}

	f, err := loadField(cmd, cfg, args)
	if err != nil {
		return nil, err
	}
	s := &automation.Scenario{
		Name:   f.Name,
		Seed:   cfg.Seed,
		Frames: frames,
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
		Field:  &f,
	}
	if hover {
		s.Events = append(s.Events, automation.Event{Frame: 1, Kind: "pointer", X: s.Width / 2, Y: s.Height / 2})
	}
	return s, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if runLive {
		return runLiveScene(cmd)
	}
	s, err := scenarioFor(cmd, args, runFrames, runHover)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	stability := metrics.NewStability()
	ms := []metrics.Metric{metrics.NewMeanSpeed(), metrics.NewLinks(), metrics.NewConnections(), stability}

	fmt.Printf("running %s for %d frames (seed %d)...\n", s.Name, s.Frames, s.Seed)
	start := time.Now()
	res, err := automation.Replay(ctx, s, automation.Options{Metrics: ms, Quiet: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("\ncompleted in %v (%.0f frames/sec)\n", elapsed, float64(res.Frames)/elapsed.Seconds())
	fmt.Printf("particles: %d\n", len(res.Field.Particles()))
	for _, m := range ms {
		fmt.Printf("  %-12s mean=%.4f final=%.4f\n", m.Name(), metrics.Mean(m.Series()), m.Value())
	}
	fmt.Printf("  %-12s %.1f%%\n", "stable", stability.Ratio()*100)

	plotSeries(res.Series, "mean_speed", "mean speed")
	plotSeries(res.Series, "links", "pointer links")

	if csvFile != "" {
		if err := writeCSV(csvFile, res); err != nil {
			return err
		}
		fmt.Printf("\nseries written to %s\n", csvFile)
	}
	return nil
}

func plotSeries(series map[string][]float64, key, caption string) {
	data := series[key]
	if len(data) < 2 {
		return
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
}

func writeCSV(path string, res *automation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(res.Series))
	for _, m := range metrics.Standard() {
		if _, ok := res.Series[m.Name()]; ok {
			names = append(names, m.Name())
		}
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"frame"}, names...)); err != nil {
		return err
	}
	for i := 0; i < res.Frames; i++ {
		row := []string{strconv.Itoa(i + 1)}
		for _, n := range names {
			v := ""
			if s := res.Series[n]; i < len(s) {
				v = strconv.FormatFloat(s[i], 'f', 6, 64)
			}
			row = append(row, v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := scenarioFor(cmd, args, snapshotFrames, snapshotHover)
	if err != nil {
		return err
	}
	size := dynamo.Size{W: s.Width, H: s.Height}
	ctx, cancel := interruptContext()
	defer cancel()

	switch strings.ToLower(filepath.Ext(snapshotOutput)) {
	case ".svg":
		svg := export.NewSVG(size, export.Background)
		if _, err := automation.Replay(ctx, s, automation.Options{Surface: svg, Quiet: true}); err != nil {
			return err
		}
		if err := svg.Save(snapshotOutput); err != nil {
			return err
		}
	case ".png":
		r := export.NewRaster(size, export.Background)
		if _, err := automation.Replay(ctx, s, automation.Options{Surface: r, Quiet: true}); err != nil {
			return err
		}
		if err := export.SavePNG(snapshotOutput, r.Image()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .png or .svg)", filepath.Ext(snapshotOutput))
	}
	fmt.Printf("wrote %s after %d frames\n", snapshotOutput, s.Frames)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	s, err := scenarioFor(cmd, args, recordFrames, recordHover)
	if err != nil {
		return err
	}
	f, err := s.FieldConfig()
	if err != nil {
		return err
	}
	fg, err := dynamo.ParseHex(f.Style.Color)
	if err != nil {
		return err
	}

	r := export.NewRaster(dynamo.Size{W: s.Width, H: s.Height}, export.Background)
	rec := export.NewRecorder(r, fg)
	rec.Every = every
	rec.Width = gifWidth

	ctx, cancel := interruptContext()
	defer cancel()
	if _, err := automation.Replay(ctx, s, automation.Options{
		Surface:   r,
		Observers: []sim.Observer{rec},
		Quiet:     true,
	}); err != nil {
		return err
	}
	if err := rec.Save(recordOutput); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", recordOutput, rec.Frames())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, err := loadField(cmd, cfg, args)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("benchmarking %s, %d frames per run\n\n", base.Name, benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tMEAN LINKS")
	fmt.Fprintln(w, "---------\t------\t----\t----------\t----------")
	for _, n := range []int{25, 50, 100, 200, 400, 800} {
		f := base
		f.Count = n
		s := &automation.Scenario{
			Name:   f.Name,
			Seed:   cfg.Seed,
			Frames: benchFrames,
			Width:  float64(cfg.Window.Width),
			Height: float64(cfg.Window.Height),
			Field:  &f,
			Events: []automation.Event{{Frame: 1, Kind: "pointer", X: float64(cfg.Window.Width) / 2, Y: float64(cfg.Window.Height) / 2}},
		}
		r := export.NewRaster(dynamo.Size{W: s.Width, H: s.Height}, export.Background)

		start := time.Now()
		res, err := automation.Replay(ctx, s, automation.Options{Surface: r, Quiet: true})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\n",
			n, res.Frames, elapsed.Round(time.Millisecond),
			float64(res.Frames)/elapsed.Seconds(), metrics.Mean(res.Series["links"]))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := scenarioFor(cmd, args, sweepFrames, sweepHover)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Scenario:  *s,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN SPEED\tMEAN LINKS\tMEAN CONNECTIONS\n", strings.ToUpper(sweepParam))
	speeds := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.2f\t%.2f\n", r.ParamValue, r.MeanSpeed, r.MeanLinks, r.MeanConnections)
		speeds = append(speeds, r.MeanSpeed)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(speeds) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds, asciigraph.Height(8), asciigraph.Caption("mean speed by "+sweepParam)))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tLINK DIST\tPOINTER R\tFORCE\tDAMPING\tCOLOR")
	for _, name := range config.ListPresets() {
		f := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.3f\t%.3f\t%s\n",
			name, f.Count, f.ConnectionDistance, f.PointerRadius, f.PointerForce, f.Damping, f.Style.Color)
	}
	return w.Flush()
}

func runImpact(cmd *cobra.Command, args []string) error {
	form := site.NewDonationForm()
	if err := form.SetCustom(args[0]); err != nil {
		return fmt.Errorf("amount %q: %w", args[0], err)
	}
	fmt.Println(form.Note())
	return nil
}

func runCounter(cmd *cobra.Command, args []string) error {
	stat, err := site.NewStat(args[0])
	if err != nil {
		return err
	}
	stat.Observe(1, 0)
	const step = 100 * time.Millisecond
	for now := time.Duration(0); now <= site.CounterDuration; now += step {
		fmt.Printf("%5dms  %s\n", now.Milliseconds(), stat.Text(now))
	}
	return nil
}

func runContact(cmd *cobra.Command, args []string) error {
	relay := site.NewRelay()
	if endpoint != "" {
		relay.Endpoint = endpoint
	}
	sender := site.NewSender(relay)
	sender.OnStatus = func(st site.ContactStatus) {
		fmt.Printf("%s\n", st)
	}

	ctx, cancel := interruptContext()
	defer cancel()
	return sender.Submit(ctx, site.ContactForm{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Subject:   subject,
		Message:   message,
	})
}
