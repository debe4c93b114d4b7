package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/scene"
	"github.com/san-kum/plexus/internal/sim"
)

// pointerPeriod is how often a live run moves the simulated pointer.
const pointerPeriod = 50 * time.Millisecond

// liveRun is a page running in real time on an event loop. Every driver
// call happens on the loop goroutine; the caller only dispatches input.
type liveRun struct {
	loop  *sim.Loop
	scene *scene.Scene
	stats [][]metrics.Metric
	errc  chan error
	stop  context.CancelFunc
}

func newLiveRun(cfg *config.Config) *liveRun {
	loop := sim.NewLoop(cfg.Window.FrameRate)
	sc := scene.New(loop, cfg,
		export.NewRaster(dynamo.Size{}, export.Background),
		export.NewRaster(dynamo.Size{}, export.Background),
		scene.Options{Seed: cfg.Seed, Quiet: true})

	lr := &liveRun{loop: loop, scene: sc}
	for _, d := range sc.Drivers() {
		ms := metrics.Standard()
		for _, m := range ms {
			d.AddObserver(m)
		}
		lr.stats = append(lr.stats, ms)
	}
	return lr
}

// start runs the loop and starts both drivers on it.
func (lr *liveRun) start() error {
	ctx, cancel := context.WithCancel(context.Background())
	lr.stop = cancel
	lr.errc = make(chan error, 1)
	go func() { lr.errc <- lr.loop.Run(ctx) }()

	started := make(chan error, 1)
	lr.loop.Post(func() { started <- lr.scene.Start() })
	if err := <-started; err != nil {
		lr.shutdown()
		return err
	}
	return nil
}

// shutdown stops the drivers on the loop, then the loop itself.
func (lr *liveRun) shutdown() error {
	stopped := make(chan struct{})
	lr.loop.Post(func() {
		lr.scene.Stop()
		close(stopped)
	})
	<-stopped
	lr.stop()
	if err := <-lr.errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// circle places the pointer on a circle around the hero's centre, one
// revolution every two seconds.
func (lr *liveRun) circle(elapsed time.Duration, center dynamo.Vec2, radius float64) {
	a := math.Pi * elapsed.Seconds()
	lr.scene.PointerMove(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
}

func runLiveScene(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lr := newLiveRun(cfg)

	// read before the loop starts; the page is not changed afterwards
	hero := lr.scene.Page.Hero
	center := hero.Origin().Add(dynamo.Vec2{X: hero.W / 2, Y: hero.H / 2})
	radius := math.Min(hero.W, hero.H) / 3

	fmt.Printf("running page live for %v at %d fps (ctrl-c to stop)...\n", runDuration, cfg.Window.FrameRate)
	if err := lr.start(); err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()
	ctx, cancelRun := context.WithTimeout(ctx, runDuration)
	defer cancelRun()

	ticker := time.NewTicker(pointerPeriod)
	start := time.Now()
	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case now := <-ticker.C:
			if runHover {
				lr.circle(now.Sub(start), center, radius)
			}
		}
	}
	ticker.Stop()
	elapsed := time.Since(start)

	if err := lr.shutdown(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nFIELD\tFRAMES\tFRAMES/SEC\tMEAN SPEED\tMEAN LINKS\tMEAN CONNECTIONS")
	for i, d := range lr.scene.Drivers() {
		ms := lr.stats[i]
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.4f\t%.2f\t%.2f\n",
			d.Name(), d.Frames(), float64(d.Frames())/elapsed.Seconds(),
			metrics.Mean(ms[0].Series()), metrics.Mean(ms[1].Series()), metrics.Mean(ms[2].Series()))
	}
	return w.Flush()
}
