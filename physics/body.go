package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/controller"
)

// Character is a kinematic body moved directly by its controller rather than
// by the space. Move teleports the body by the requested delta and then
// pushes it back out of whatever it overlaps, reporting the deepest overlap
// as the contact. Implements controller.Mover.
type Character struct {
	world *World
	body  *cp.Body
	shape *cp.Shape
	kind  controller.ShapeKind
	obj   controller.Object
}

// AddCharacterBox adds a box-shaped character at center.
func (w *World) AddCharacterBox(center common.Vec3, width, height float64) *Character {
	return w.addCharacter(center, controller.ShapeBox, func(body *cp.Body) *cp.Shape {
		return cp.NewBox(body, width, height, 0)
	})
}

// AddCharacterSphere adds a circle-shaped character at center.
func (w *World) AddCharacterSphere(center common.Vec3, radius float64) *Character {
	return w.addCharacter(center, controller.ShapeSphere, func(body *cp.Body) *cp.Shape {
		return cp.NewCircle(body, radius, cp.Vector{})
	})
}

func (w *World) addCharacter(center common.Vec3, kind controller.ShapeKind, build func(*cp.Body) *cp.Shape) *Character {
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(center))
	w.space.AddBody(body)

	shape := build(body)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	w.space.AddShape(shape)

	obj := w.register(body)
	shape.UserData = surfaceTag{object: obj}
	return &Character{world: w, body: body, shape: shape, kind: kind, obj: obj}
}

// Object returns the character's own handle in the world.
func (c *Character) Object() controller.Object {
	if c == nil {
		return controller.NoObject
	}
	return c.obj
}

// Position reports the character's current world position.
func (c *Character) Position() common.Vec3 {
	return fromCP(c.body.Position())
}

// Translate moves the character without collision resolution. Used for
// platform following, where the target position is known to be valid.
func (c *Character) Translate(delta common.Vec3) {
	c.body.SetPosition(c.body.Position().Add(toCP(delta.ClampZ())))
	c.body.EachShape(func(s *cp.Shape) { s.CacheBB() })
}

type overlap struct {
	shape  *cp.Shape
	normal cp.Vector
	point  cp.Vector
	depth  float64
}

// Move displaces the character by delta and resolves any resulting overlap
// by pushing the body back along the contact normal. The deepest overlap of
// the attempt is returned.
func (c *Character) Move(delta common.Vec3) (controller.Contact, bool) {
	c.Translate(delta)

	var first *overlap
	// A push-out can expose a second overlap in a corner, so resolve a few
	// times before giving up for this tick.
	for i := 0; i < 4; i++ {
		hit := c.deepestOverlap()
		if hit == nil {
			break
		}
		if first == nil {
			h := *hit
			first = &h
		}
		c.Translate(fromCP(hit.normal.Mult(hit.depth)))
	}
	if first == nil {
		return controller.Contact{}, false
	}
	return c.contactFor(first), true
}

// deepestOverlap queries the space for shapes the character currently
// penetrates and returns the worst one.
func (c *Character) deepestOverlap() *overlap {
	var best *overlap
	c.world.space.ShapeQuery(c.shape, func(other *cp.Shape, points *cp.ContactPointSet) {
		if other == c.shape || other.Sensor() {
			return
		}
		for i := 0; i < points.Count; i++ {
			pt := points.Points[i]
			if pt.Distance >= 0 {
				continue
			}
			// The query normal points from the character into the other
			// shape; the contact surface normal is the opposite.
			cand := overlap{
				shape:  other,
				normal: points.Normal.Neg(),
				point:  pt.PointA,
				depth:  -pt.Distance,
			}
			if best == nil || cand.depth > best.depth {
				o := cand
				best = &o
			}
		}
	})
	return best
}

func (c *Character) contactFor(hit *overlap) controller.Contact {
	tag, _ := hit.shape.UserData.(surfaceTag)
	normal := fromCP(hit.normal)
	if c.kind == controller.ShapeSphere {
		// Circle queries use the circle as the collision reference shape,
		// which flips the reported normal; consumers compensate by kind.
		normal = normal.Neg()
	}

	other := hit.shape.Body()
	ct := controller.Contact{
		Normal:  normal,
		Point:   fromCP(hit.point),
		Object:  tag.object,
		Shape:   c.kind,
		Surface: tag.surface,
	}
	if other != nil && other.GetType() == cp.BODY_DYNAMIC {
		ct.ApplyImpulse = func(impulse, at common.Vec3) {
			other.ApplyImpulseAtWorldPoint(toCP(impulse), toCP(at))
		}
	}
	return ct
}
