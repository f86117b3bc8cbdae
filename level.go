package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/controller"
	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
	"github.com/milk9111/charkit/physics"
	"github.com/milk9111/charkit/tuning"
)

// actorRef remembers which tuning file a core was built from, for live
// reload.
type actorRef struct {
	core *controller.Core
	file string
}

// Level owns the physics space and the scene: floor, slope, wall-jump wall,
// a slide chute, a moving and a spinning platform, a shoveable crate, the
// player, and a scripted patroller.
type Level struct {
	space  *physics.World
	buses  map[controller.Object]*controller.Bus
	actors []actorRef
	player ecs.Entity
}

func BuildLevel(world *ecs.World) (*Level, error) {
	defParams, err := tuning.Params("default.yaml")
	if err != nil {
		return nil, err
	}
	flyingParams, err := tuning.Params("flying.yaml")
	if err != nil {
		return nil, err
	}
	npcParams, err := tuning.Params("npc.yaml")
	if err != nil {
		return nil, err
	}

	lvl := &Level{
		space: physics.NewWorld(defParams.Gravity),
		buses: map[controller.Object]*controller.Bus{},
	}

	lvl.buildGeometry(world)
	lvl.buildPlatforms(world)
	lvl.buildCrate(world)
	if err := lvl.buildPlayer(world, defParams, flyingParams); err != nil {
		return nil, err
	}
	if err := lvl.buildPatroller(world, npcParams, flyingParams); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) staticBox(world *ecs.World, center common.Vec3, w, h float64, surface controller.Surface, clr color.Color) {
	l.space.AddStaticBox(center, w, h, surface)
	e := world.Create()
	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: center.X, Y: center.Y})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: w, Height: h, Color: clr})
}

func (l *Level) buildGeometry(world *ecs.World) {
	// Floor across the whole scene, top surface at y=40.
	l.staticBox(world, common.Vec3{X: 640, Y: 20}, 1280, 40, controller.Surface{}, colornames.Darkslategray)

	// Outer walls.
	l.staticBox(world, common.Vec3{X: 10, Y: 360}, 20, 720, controller.Surface{}, colornames.Darkslategray)
	l.staticBox(world, common.Vec3{X: 1270, Y: 360}, 20, 720, controller.Surface{}, colornames.Darkslategray)

	// Walkable 30 degree slope.
	l.space.AddStaticSegment(common.Vec3{X: 200, Y: 40}, common.Vec3{X: 420, Y: 167}, 4, controller.Surface{})

	// A wall-jumpable tower face.
	l.staticBox(world, common.Vec3{X: 1100, Y: 240}, 40, 400,
		controller.Surface{WallJumpable: true}, colornames.Steelblue)

	// An icy chute that forces sliding no matter how shallow it is.
	l.space.AddStaticSegment(common.Vec3{X: 480, Y: 320}, common.Vec3{X: 640, Y: 260}, 4,
		controller.Surface{AlwaysSlide: true})
}

func (l *Level) buildPlatforms(world *ecs.World) {
	carrier := l.space.AddPlatform(common.Vec3{X: 600, Y: 150}, 120, 16, controller.Surface{})
	e := world.Create()
	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: 600, Y: 150})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: 120, Height: 16, Color: colornames.Peru})
	_ = ecs.Add(world, e, component.PlatformComponent, component.Platform{
		Object:    carrier,
		Waypoints: []common.Vec3{{X: 600, Y: 150}, {X: 900, Y: 150}, {X: 900, Y: 320}},
		Speed:     60,
		Forward:   true,
	})

	spinner := l.space.AddPlatform(common.Vec3{X: 300, Y: 320}, 100, 16, controller.Surface{})
	e = world.Create()
	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: 300, Y: 320})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: 100, Height: 16, Color: colornames.Peru})
	_ = ecs.Add(world, e, component.PlatformComponent, component.Platform{
		Object:    spinner,
		Waypoints: []common.Vec3{{X: 300, Y: 320}},
		Spin:      0.4,
	})
}

func (l *Level) buildCrate(world *ecs.World) {
	crate := l.space.AddCrate(common.Vec3{X: 760, Y: 80}, 32, 32, 2)
	e := world.Create()
	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: 760, Y: 80})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: 32, Height: 32, Color: colornames.Burlywood})
	_ = ecs.Add(world, e, component.DynamicComponent, component.Dynamic{Object: crate})

	crateBus := &controller.Bus{}
	crateBus.Subscribe(&controller.Listener{
		Touched: func(ct controller.Contact) {
			fmt.Printf("crate: shoved, normal=(%.2f, %.2f)\n", ct.Normal.X, ct.Normal.Y)
		},
	})
	l.buses[crate] = crateBus
}

// routeTouch forwards a core's contact to the collided object's bus.
func (l *Level) routeTouch(obj controller.Object, ct controller.Contact) {
	if b, ok := l.buses[obj]; ok {
		b.NotifyTouched(ct)
	}
}

func (l *Level) newActor(world *ecs.World, e ecs.Entity, body *physics.Character, params, flying controller.Params, file string) (*controller.Core, error) {
	core, err := controller.NewCore(controller.Config{
		Params:       params,
		FlyingParams: flying,
		Mover:        body,
		Frames:       l.space,
		Size: func() float64 {
			// Size lives on the Actor component so it can change at runtime.
			if a, ok := ecs.Get(world, e, component.ActorComponent); ok {
				return a.Size
			}
			return 1
		},
		Touch: l.routeTouch,
	})
	if err != nil {
		return nil, err
	}
	l.actors = append(l.actors, actorRef{core: core, file: file})
	l.buses[body.Object()] = core.Bus()
	return core, nil
}

func (l *Level) buildPlayer(world *ecs.World, params, flying controller.Params) error {
	spawn := common.Vec3{X: 100, Y: 100}
	e := world.Create()
	body := l.space.AddCharacterBox(spawn, 28, 56)
	core, err := l.newActor(world, e, body, params, flying, "default.yaml")
	if err != nil {
		return err
	}

	core.Bus().Subscribe(&controller.Listener{
		BeginJump: func(delay float64) {
			fmt.Printf("player: winding up jump for %.2fs\n", delay)
		},
		WallJump: func() {
			fmt.Println("player: wall jump")
		},
	})

	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: spawn.X, Y: spawn.Y})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: 28, Height: 56, Color: colornames.Crimson})
	_ = ecs.Add(world, e, component.ActorComponent, component.Actor{Body: body, Core: core, Size: 1})
	_ = ecs.Add(world, e, component.InputComponent, component.Input{})
	_ = ecs.Add(world, e, component.PlayerComponent, component.Player{})
	l.player = e
	return nil
}

func (l *Level) buildPatroller(world *ecs.World, params, flying controller.Params) error {
	spawn := common.Vec3{X: 820, Y: 80}
	e := world.Create()
	body := l.space.AddCharacterSphere(spawn, 16)
	core, err := l.newActor(world, e, body, params, flying, "npc.yaml")
	if err != nil {
		return err
	}

	_ = ecs.Add(world, e, component.TransformComponent, component.Transform{X: spawn.X, Y: spawn.Y})
	_ = ecs.Add(world, e, component.SpriteComponent, component.Sprite{Width: 32, Height: 32, Color: colornames.Mediumseagreen})
	_ = ecs.Add(world, e, component.ActorComponent, component.Actor{Body: body, Core: core, Size: 1})
	_ = ecs.Add(world, e, component.InputComponent, component.Input{})
	_ = ecs.Add(world, e, component.ScriptComponent, component.Script{Path: "patrol.tengo"})
	return nil
}

// ReloadTuning re-reads every actor's parameter file plus the shared flying
// set and swaps them in place.
func (l *Level) ReloadTuning() {
	flying, err := tuning.Params("flying.yaml")
	if err != nil {
		fmt.Printf("tuning: reload flying.yaml: %v\n", err)
		return
	}
	for _, ref := range l.actors {
		p, err := tuning.Params(ref.file)
		if err != nil {
			fmt.Printf("tuning: reload %s: %v\n", ref.file, err)
			continue
		}
		ref.core.SetDefaultParams(p)
		ref.core.SetFlyingParams(flying)
	}
	fmt.Println("tuning: reloaded")
}
