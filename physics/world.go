package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/controller"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
	collisionTypeCharacter
)

// surfaceTag rides on a shape's UserData and carries the per-surface
// collision behaviour plus the owning object's handle.
type surfaceTag struct {
	object  controller.Object
	surface controller.Surface
}

// World owns the Chipmunk space: static geometry, kinematic platforms, and
// dynamic props live here. Characters are kinematic bodies moved directly by
// their controller, so Step only advances the dynamic props.
type World struct {
	space      *cp.Space
	nextObject controller.Object
	bodies     map[controller.Object]*cp.Body
}

// NewWorld creates a space with the given gravity acting on dynamic bodies.
// Characters resolve their own gravity and are unaffected.
func NewWorld(gravity common.Vec3) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(toCP(gravity))
	return &World{
		space:      space,
		nextObject: 1,
		bodies:     make(map[controller.Object]*cp.Body),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Step advances the dynamic bodies. Characters and platforms are kinematic
// and unaffected.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

func (w *World) register(body *cp.Body) controller.Object {
	obj := w.nextObject
	w.nextObject++
	w.bodies[obj] = body
	return obj
}

// AddStaticBox adds an axis-aligned static box centered at center.
func (w *World) AddStaticBox(center common.Vec3, width, height float64, surface controller.Surface) controller.Object {
	body := w.space.StaticBody
	bb := cp.BB{
		L: center.X - width/2,
		B: center.Y - height/2,
		R: center.X + width/2,
		T: center.Y + height/2,
	}
	shape := cp.NewBox2(body, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)

	obj := w.register(body)
	shape.UserData = surfaceTag{object: obj, surface: surface}
	return obj
}

// AddStaticSegment adds a static line segment from a to b, used for slopes
// and walls.
func (w *World) AddStaticSegment(a, b common.Vec3, radius float64, surface controller.Surface) controller.Object {
	shape := cp.NewSegment(w.space.StaticBody, toCP(a), toCP(b), radius)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)

	obj := w.register(w.space.StaticBody)
	shape.UserData = surfaceTag{object: obj, surface: surface}
	return obj
}

// AddPlatform adds a kinematic box body, driven externally through SetFrame.
// Characters grounded on it follow its frame tick to tick.
func (w *World) AddPlatform(center common.Vec3, width, height float64, surface controller.Surface) controller.Object {
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(center))
	w.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)

	obj := w.register(body)
	shape.UserData = surfaceTag{object: obj, surface: surface}
	return obj
}

// AddCrate adds a dynamic box that characters can shove around through the
// momentum-transfer impulse.
func (w *World) AddCrate(center common.Vec3, width, height, mass float64) controller.Object {
	moment := cp.MomentForBox(mass, width, height)
	body := cp.NewBody(mass, moment)
	body.SetPosition(toCP(center))
	w.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeDynamic)
	w.space.AddShape(shape)

	obj := w.register(body)
	shape.UserData = surfaceTag{object: obj}
	return obj
}

// SetFrame moves an object's body to the given frame. Intended for kinematic
// platforms; a teleport here is followed exactly by anchored characters.
func (w *World) SetFrame(obj controller.Object, frame controller.Frame) {
	if w == nil {
		return
	}
	body, ok := w.bodies[obj]
	if !ok || body.GetType() == cp.BODY_STATIC {
		return
	}
	body.SetPosition(toCP(frame.Position))
	body.SetAngle(frame.Angle)
	body.EachShape(func(s *cp.Shape) { s.CacheBB() })
}

// Frame reports an object's current position and angle. Implements
// controller.FrameSource.
func (w *World) Frame(obj controller.Object) (controller.Frame, bool) {
	if w == nil {
		return controller.Frame{}, false
	}
	body, ok := w.bodies[obj]
	if !ok {
		return controller.Frame{}, false
	}
	return controller.Frame{
		Position: fromCP(body.Position()),
		Angle:    body.Angle(),
	}, true
}

// Remove deletes an object's body and shapes from the space. Characters
// anchored to it see their handle go stale on the next tick.
func (w *World) Remove(obj controller.Object) {
	if w == nil {
		return
	}
	body, ok := w.bodies[obj]
	if !ok {
		return
	}
	delete(w.bodies, obj)
	if body == w.space.StaticBody {
		// The shared static body stays; only the object's shapes go.
		var doomed []*cp.Shape
		body.EachShape(func(s *cp.Shape) {
			if tag, ok := s.UserData.(surfaceTag); ok && tag.object == obj {
				doomed = append(doomed, s)
			}
		})
		for _, s := range doomed {
			w.space.RemoveShape(s)
		}
		return
	}
	body.EachShape(func(s *cp.Shape) {
		w.space.RemoveShape(s)
	})
	w.space.RemoveBody(body)
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y}
}
