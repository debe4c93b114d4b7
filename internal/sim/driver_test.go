package sim_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/pointer"
	"github.com/san-kum/plexus/internal/sim"
)

type countingSurface struct {
	size     dynamo.Size
	clears   int
	presents int
	lines    int
	disks    int
	spots    int
}

func (s *countingSurface) Size() dynamo.Size    { return s.size }
func (s *countingSurface) Resize(n dynamo.Size) { s.size = n }
func (s *countingSurface) Clear()               { s.clears++ }
func (s *countingSurface) Present()             { s.presents++ }
func (s *countingSurface) StrokeLine(a, b dynamo.Vec2, w float64, c dynamo.RGBA) {
	s.lines++
}
func (s *countingSurface) FillCircle(p dynamo.Vec2, r float64, c dynamo.RGBA) { s.disks++ }
func (s *countingSurface) FillRadialGradient(p dynamo.Vec2, r float64, c dynamo.RGBA, st []dynamo.GradientStop) {
	s.spots++
}

type frameLog struct {
	frames []int
	stopAt int
	driver *sim.Driver
}

func (l *frameLog) OnFrame(f *physics.Field, frame int) {
	l.frames = append(l.frames, frame)
	if l.stopAt > 0 && frame == l.stopAt {
		l.driver.Stop()
	}
}

var _ = Describe("Driver", func() {
	var (
		host    *sim.Manual
		surface *countingSurface
		measure dynamo.Size
		cfg     config.Field
		driver  *sim.Driver
	)

	newDriver := func(opts sim.Options) *sim.Driver {
		opts.Rand = rand.New(rand.NewSource(1))
		opts.Quiet = true
		if opts.Measure == nil {
			opts.Measure = func() dynamo.Size { return measure }
		}
		return sim.New(host, surface, cfg, opts)
	}

	BeforeEach(func() {
		host = sim.NewManual()
		surface = &countingSurface{}
		measure = dynamo.Size{W: 400, H: 300}
		cfg = config.DefaultBackground()
		cfg.Count = 20
	})

	AfterEach(func() {
		if driver != nil {
			driver.Stop()
		}
	})

	Describe("Start", func() {
		BeforeEach(func() {
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())
		})

		It("sizes the surface and seeds the field", func() {
			Expect(surface.Size()).To(Equal(measure))
			Expect(driver.Field().Particles()).To(HaveLen(20))
			Expect(driver.Field().Size()).To(Equal(measure))
		})

		It("registers listeners and one frame", func() {
			Expect(host.Listeners(sim.PointerMove)).To(Equal(1))
			Expect(host.Listeners(sim.Resize)).To(Equal(1))
			Expect(host.Listeners(sim.Scroll)).To(Equal(1))
			Expect(host.Pending()).To(Equal(1))
		})

		It("refuses to start twice", func() {
			Expect(driver.Start()).To(MatchError(dynamo.ErrAlreadyRunning))
		})

		It("starts the pointer at the sentinel", func() {
			Expect(driver.Tracker().Position()).To(Equal(pointer.Sentinel))
		})
	})

	Describe("frames", func() {
		BeforeEach(func() {
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())
		})

		It("advances, renders and reschedules exactly once per step", func() {
			for i := 1; i <= 5; i++ {
				Expect(host.Step(time.Duration(i) * 16 * time.Millisecond)).To(Equal(1))
			}
			Expect(driver.Frames()).To(Equal(5))
			Expect(surface.clears).To(Equal(5))
			Expect(surface.presents).To(Equal(5))
			Expect(surface.disks).To(Equal(5 * 20))
			Expect(host.Pending()).To(Equal(1))
			Expect(driver.LastTimestamp()).To(Equal(80 * time.Millisecond))
		})

		It("keeps every particle on the surface", func() {
			for i := 0; i < 200; i++ {
				host.Step(time.Duration(i) * time.Millisecond)
			}
			for _, p := range driver.Field().Particles() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<", measure.W))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<", measure.H))
			}
			Expect(driver.Field().Validate()).To(Succeed())
		})

		It("draws the spotlight only once the pointer is on the surface", func() {
			host.Step(0)
			Expect(surface.spots).To(Equal(0))

			host.Dispatch(sim.Event{Kind: sim.PointerMove, X: 200, Y: 150})
			host.Step(time.Millisecond)
			Expect(surface.spots).To(Equal(1))
		})

		It("notifies observers in frame order", func() {
			log := &frameLog{}
			driver.AddObserver(log)
			host.Step(0)
			host.Step(1)
			host.Step(2)
			Expect(log.frames).To(Equal([]int{1, 2, 3}))
		})
	})

	Describe("pointer mapping", func() {
		It("maps the pointer once per frame at frame time", func() {
			scroll := 0.0
			calls := 0
			mapper := func(p dynamo.Vec2) dynamo.Vec2 {
				calls++
				return pointer.ScrollOffset(func() float64 { return scroll })(p)
			}
			driver = newDriver(sim.Options{Mapper: mapper})
			Expect(driver.Start()).To(Succeed())

			host.Dispatch(sim.Event{Kind: sim.PointerMove, X: 10, Y: 20})
			scroll = 100
			host.Dispatch(sim.Event{Kind: sim.PointerMove, X: 30, Y: 40})
			host.Step(0)

			Expect(calls).To(Equal(1))
			Expect(driver.Field().LastFrame().Pointer).To(Equal(dynamo.Vec2{X: 30, Y: 140}))
		})
	})

	Describe("resizing", func() {
		It("follows window resizes without redistributing", func() {
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())
			before := append([]physics.Particle(nil), driver.Field().Particles()...)

			measure = dynamo.Size{W: 200, H: 100}
			host.Dispatch(sim.Event{Kind: sim.Resize})

			Expect(surface.Size()).To(Equal(measure))
			Expect(driver.Field().Size()).To(Equal(measure))
			Expect(driver.Field().Particles()).To(Equal(before))
		})

		It("redistributes when configured to", func() {
			cfg.RedistributeOnResize = true
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())

			measure = dynamo.Size{W: 50, H: 40}
			host.Dispatch(sim.Event{Kind: sim.Resize})

			for _, p := range driver.Field().Particles() {
				Expect(p.X).To(BeNumerically("<", 50))
				Expect(p.Y).To(BeNumerically("<", 40))
			}
		})

		It("ignores document height jitter below the threshold", func() {
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())

			measure = dynamo.Size{W: 400, H: 350}
			host.Dispatch(sim.Event{Kind: sim.Scroll})
			Expect(surface.Size().H).To(Equal(300.0))

			measure = dynamo.Size{W: 400, H: 1000}
			host.Dispatch(sim.Event{Kind: sim.Scroll})
			Expect(surface.Size().H).To(Equal(1000.0))
		})

		It("does not listen for scroll when height tracking is off", func() {
			cfg = config.DefaultHero()
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())
			Expect(host.Listeners(sim.Scroll)).To(Equal(0))
		})
	})

	Describe("Stop", func() {
		BeforeEach(func() {
			driver = newDriver(sim.Options{})
			Expect(driver.Start()).To(Succeed())
		})

		It("deregisters listeners and cancels the pending frame", func() {
			driver.Stop()

			Expect(driver.Running()).To(BeFalse())
			Expect(host.Listeners(sim.PointerMove)).To(Equal(0))
			Expect(host.Listeners(sim.Resize)).To(Equal(0))
			Expect(host.Listeners(sim.Scroll)).To(Equal(0))
			Expect(host.Pending()).To(Equal(0))
			Expect(host.Step(0)).To(Equal(0))
			Expect(driver.Frames()).To(Equal(0))
		})

		It("is idempotent", func() {
			driver.Stop()
			driver.Stop()
			Expect(host.Pending()).To(Equal(0))
		})

		It("can be called from an observer mid-frame", func() {
			log := &frameLog{stopAt: 2, driver: driver}
			driver.AddObserver(log)
			host.Step(0)
			host.Step(1)
			Expect(host.Pending()).To(Equal(0))
			Expect(host.Step(2)).To(Equal(0))
			Expect(log.frames).To(Equal([]int{1, 2}))
		})

		It("resumes the same particles after a restart", func() {
			host.Step(0)
			snapshot := append([]physics.Particle(nil), driver.Field().Particles()...)
			driver.Stop()
			Expect(driver.Start()).To(Succeed())
			Expect(driver.Field().Particles()).To(Equal(snapshot))
			Expect(host.Pending()).To(Equal(1))
		})

		It("forgets the pointer so a restart begins at the sentinel", func() {
			host.Dispatch(sim.Event{Kind: sim.PointerMove, X: 40, Y: 40})
			host.Step(0)
			Expect(driver.Tracker().Seen()).To(BeTrue())

			driver.Stop()
			Expect(driver.Start()).To(Succeed())
			Expect(driver.Tracker().Position()).To(Equal(pointer.Sentinel))
			Expect(driver.Tracker().Seen()).To(BeFalse())
			host.Step(1)
			Expect(driver.Field().LastFrame().Links).To(BeEmpty())
		})

		It("stops following the pointer", func() {
			driver.Stop()
			host.Dispatch(sim.Event{Kind: sim.PointerMove, X: 1, Y: 1})
			Expect(driver.Tracker().Position()).To(Equal(pointer.Sentinel))
		})
	})
})
