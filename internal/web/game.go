package web

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/scene"
	"github.com/san-kum/plexus/internal/sim"
)

const scrollStep = 60

var (
	colBg   = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	colHero = color.RGBA{R: 18, G: 18, B: 24, A: 255}
)

// Game implements ebiten.Game around a scene on a manual host.
type Game struct {
	host       *sim.Manual
	scene      *scene.Scene
	background *Layer
	hero       *Layer
	outside    dynamo.Size
	cursor     [2]int
	paused     bool
	showHUD    bool
	start      time.Time
}

func NewGame(cfg *config.Config) (*Game, error) {
	g := &Game{
		host:       sim.NewManual(),
		background: NewLayer(dynamo.Size{}),
		hero:       NewLayer(dynamo.Size{}),
		outside:    dynamo.Size{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)},
		cursor:     [2]int{-1, -1},
		showHUD:    true,
		start:      time.Now(),
	}
	g.scene = scene.New(g.host, cfg, g.background, g.hero, scene.Options{Seed: cfg.Seed})
	if err := g.scene.Start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Scene() *scene.Scene { return g.scene }

func (g *Game) Update() error {
	g.scene.Resize(g.outside)

	if x, y := ebiten.CursorPosition(); x != g.cursor[0] || y != g.cursor[1] {
		g.cursor = [2]int{x, y}
		g.scene.PointerMove(float64(x), float64(y))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scene.ScrollBy(-dy * scrollStep)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.scene.Stop()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		for _, d := range g.scene.Drivers() {
			d.Field().Initialize(d.Field().Config().Count, d.Surface().Size())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	}

	g.host.Step(time.Since(g.start))
	return nil
}

func (g *Game) togglePause() {
	if g.paused {
		if err := g.scene.Start(); err != nil {
			log.Printf("[Web] restart: %v", err)
			return
		}
	} else {
		g.scene.Stop()
	}
	g.paused = !g.paused
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)

	if img := g.background.Image(); img != nil {
		off := g.scene.BackgroundOffset()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(off.X, off.Y)
		screen.DrawImage(img, op)
	}

	page := g.scene.Page
	hero := page.HeroOnScreen()
	if img := g.hero.Image(); img != nil && hero.Y+page.Hero.H > 0 {
		vector.DrawFilledRect(screen, float32(hero.X), float32(hero.Y), float32(page.Hero.W), float32(page.Hero.H), colHero, false)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(hero.X, hero.Y)
		screen.DrawImage(img, op)
	}

	if g.showHUD {
		status := "RUNNING"
		if g.paused {
			status = "PAUSED"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("plexus  %s  %.0f FPS  scroll %.0f/%.0f",
			status, ebiten.ActualFPS(), page.ScrollY, page.MaxScroll()), 12, 12)
		ebitenutil.DebugPrintAt(screen, "SPACE pause  R reset  WHEEL scroll  H hud  Q quit", 12, int(page.Viewport.H)-24)
	}
}

// Layout follows the window so the page reflows like a browser viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outside = dynamo.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Run blocks until the window is closed or the user quits.
func Run(cfg *config.Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("plexus")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.FrameRate)

	log.Printf("[Web] running %dx%d", cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	g.scene.Stop()
	return nil
}
