package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/system"
	"github.com/milk9111/charkit/tuning"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickRate = 1.0 / 60.0
)

type Game struct {
	frames int

	world   *ecs.World
	level   *Level
	render  *system.RenderSystem
	scripts *system.ScriptSystem

	ui      *ebitenui.UI
	paused  bool
	watcher *tuning.Watcher
}

func NewGame(debug bool) (*Game, error) {
	world := ecs.NewWorld()
	level, err := BuildLevel(world)
	if err != nil {
		return nil, fmt.Errorf("build level: %w", err)
	}

	scripts := system.NewScriptSystem()
	world.AddSystem(system.NewInputSystem())
	world.AddSystem(scripts)
	world.AddSystem(system.NewPlatformSystem(level.space))
	world.AddSystem(system.NewControllerSystem())
	world.AddSystem(system.NewPhysicsSystem(level.space))
	world.AddSystem(system.NewDynamicSyncSystem(level.space))

	g := &Game{
		world:   world,
		level:   level,
		render:  system.NewRenderSystem(debug),
		scripts: scripts,
	}
	g.ui = NewPauseUI(g)

	// Live tuning reload is best effort; without a tuning/ dir on disk the
	// embedded defaults simply stay in effect.
	if watcher, err := tuning.NewWatcher("tuning", "tuning/scripts"); err == nil {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.drainTuningEvents()
	g.world.Update(tickRate)
	return nil
}

func (g *Game) drainTuningEvents() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name := <-g.watcher.Events:
			fmt.Printf("tuning: %s changed\n", name)
			reload = true
		case err := <-g.watcher.Errors:
			fmt.Printf("tuning: watch error: %v\n", err)
		default:
			if reload {
				g.level.ReloadTuning()
				g.scripts.Invalidate()
			}
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
