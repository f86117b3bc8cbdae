package component

import (
	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/controller"
)

// Platform drives a kinematic body back and forth along waypoints, with an
// optional constant spin. Leg and Forward are the ping-pong cursor.
type Platform struct {
	Object    controller.Object
	Waypoints []common.Vec3
	Speed     float64
	Spin      float64

	Leg     int
	Forward bool
	Angle   float64
}

var PlatformComponent = NewHandle[Platform]()

// TargetIndex is the waypoint the platform is currently heading for.
func (p *Platform) TargetIndex() int {
	if len(p.Waypoints) == 0 {
		return 0
	}
	if p.Forward {
		return min(p.Leg+1, len(p.Waypoints)-1)
	}
	return max(p.Leg-1, 0)
}

// Advance moves the cursor past the reached waypoint, reversing direction at
// either end.
func (p *Platform) Advance() {
	target := p.TargetIndex()
	p.Leg = target
	if target == len(p.Waypoints)-1 {
		p.Forward = false
	} else if target == 0 {
		p.Forward = true
	}
}
