package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/scene"
	"github.com/san-kum/plexus/internal/sim"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColHero    = rl.NewColor(18, 18, 24, 255)
)

// scrollStep is how far one wheel notch scrolls the page.
const scrollStep = 60

type App struct {
	Config     *config.Config
	Host       *sim.Manual
	Scene      *scene.Scene
	Background *Layer
	Hero       *Layer
	Paused     bool
	ShowHUD    bool
	start      time.Time
}

func initWindow(w config.Window) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), "plexus")
	rl.SetTargetFPS(int32(w.FrameRate))
	rl.SetExitKey(0)
}

// NewApp builds the scene on a manual host stepped by the raylib loop. The
// window must already be open; layers get their textures when the scene
// starts.
func NewApp(cfg *config.Config) *App {
	a := &App{
		Config:     cfg,
		Host:       sim.NewManual(),
		Background: NewLayer(dynamo.Size{}),
		Hero:       NewLayer(dynamo.Size{}),
		ShowHUD:    true,
		start:      time.Now(),
	}
	a.Scene = scene.New(a.Host, cfg, a.Background, a.Hero, scene.Options{Seed: cfg.Seed})
	return a
}

// Run opens a window with both fields and blocks until it is closed.
func Run(cfg *config.Config) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	a := NewApp(cfg)
	if err := a.Scene.Start(); err != nil {
		return err
	}
	defer a.Close()
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update polls input, turns it into scene events and steps the host. It
// reports false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.Scene.Resize(dynamo.Size{W: float64(rl.GetScreenWidth()), H: float64(rl.GetScreenHeight())})
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Scene.ScrollBy(float64(-wheel) * scrollStep)
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		m := rl.GetMousePosition()
		a.Scene.PointerMove(float64(m.X), float64(m.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.togglePause()
	case rl.IsKeyPressed(rl.KeyR):
		for _, d := range a.Scene.Drivers() {
			d.Field().Initialize(d.Field().Config().Count, d.Surface().Size())
		}
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	case rl.IsKeyPressed(rl.KeyPageDown):
		a.Scene.ScrollBy(a.Scene.Page.Viewport.H)
	case rl.IsKeyPressed(rl.KeyPageUp):
		a.Scene.ScrollBy(-a.Scene.Page.Viewport.H)
	}

	a.Host.Step(time.Since(a.start))
	return true
}

func (a *App) togglePause() {
	if a.Paused {
		if err := a.Scene.Start(); err != nil {
			log.Printf("[GUI] restart: %v", err)
			return
		}
	} else {
		a.Scene.Stop()
	}
	a.Paused = !a.Paused
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	page := a.Scene.Page
	a.Background.DrawAt(a.Scene.BackgroundOffset())
	hero := page.HeroOnScreen()
	if hero.Y+page.Hero.H > 0 {
		rl.DrawRectangle(int32(hero.X), int32(hero.Y), int32(page.Hero.W), int32(page.Hero.H), ColHero)
		a.Hero.DrawAt(hero)
	}

	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	page := a.Scene.Page
	rl.DrawText("plexus", 30, 30, 24, ColSelect)

	status, col := "RUNNING", ColSelect
	if a.Paused {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(page.Viewport.W)-130, 30, 16, col)

	y := int32(70)
	for _, d := range a.Scene.Drivers() {
		fr := d.Field().LastFrame()
		line := fmt.Sprintf("%-10s %4d pts  %4d lines  %3d links", d.Name(), len(d.Field().Particles()), len(fr.Connections), len(fr.Links))
		rl.DrawText(line, 30, y, 14, ColText)
		y += 20
	}
	rl.DrawText(fmt.Sprintf("scroll %.0f / %.0f", page.ScrollY, page.MaxScroll()), 30, y, 14, ColText)

	h := int32(page.Viewport.H)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [WHEEL/PGUP/PGDN] SCROLL  [H] HUD  [Q] QUIT", 30, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(page.Viewport.W)-90, h-30, 14, ColTextDim)
}

func (a *App) Close() {
	a.Scene.Stop()
	a.Background.Unload()
	a.Hero.Unload()
}
