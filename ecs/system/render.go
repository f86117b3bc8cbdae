package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
)

// RenderSystem draws sprite rectangles at their transforms. World
// coordinates are y-up; the draw flips them into screen space.
type RenderSystem struct {
	images map[ecs.Entity]*ebiten.Image
	debug  bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{images: map[ecs.Entity]*ebiten.Image{}, debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screenH := float64(screen.Bounds().Dy())

	ecs.Each(w, component.SpriteComponent, func(e ecs.Entity, sp *component.Sprite) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		img := r.imageFor(e, sp)
		bw := float64(img.Bounds().Dx())
		bh := float64(img.Bounds().Dy())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-bw/2, -bh/2)
		// Screen angles run clockwise, world angles counterclockwise.
		op.GeoM.Rotate(-t.Angle)
		op.GeoM.Translate(t.X, screenH-t.Y)
		screen.DrawImage(img, op)
	})

	if r.debug {
		r.drawDebug(w, screen)
	}
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	ecs.Each(w, component.PlayerComponent, func(e ecs.Entity, _ *component.Player) {
		a, ok := ecs.Get(w, e, component.ActorComponent)
		if !ok || a.Core == nil {
			return
		}
		st := a.Core.State()
		vel := a.Core.Velocity()
		text := fmt.Sprintf(
			"grounded: %v slope: %.1f sliding: %v flying: %v\nvel: (%.1f, %.1f) float: %.2f",
			st.IsGrounded, st.SlopeAngle, st.IsSliding, st.IsFlying,
			vel.X, vel.Y, st.TimeFloating,
		)
		ebitenutil.DebugPrintAt(screen, text, 10, 10)
	})
}

func (r *RenderSystem) imageFor(e ecs.Entity, sp *component.Sprite) *ebiten.Image {
	img, ok := r.images[e]
	wantW := max(int(sp.Width), 1)
	wantH := max(int(sp.Height), 1)
	if ok && img.Bounds().Dx() == wantW && img.Bounds().Dy() == wantH {
		return img
	}
	img = ebiten.NewImage(wantW, wantH)
	img.Fill(sp.Color)
	r.images[e] = img
	return img
}
