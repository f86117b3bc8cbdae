package controller

// Listener is a table of per-event callbacks. Nil entries are skipped, so a
// subscriber fills in only the events it cares about. Touched fires when
// the core collides with the object the listener was registered for
// elsewhere; it is the typed replacement for send-a-message-to-the-thing-I-
// hit style dispatch.
type Listener struct {
	BeginJump     func(delay float64)
	PerformJump   func()
	WallJump      func()
	PreCollision  func(Contact)
	PostCollision func(Contact)
	Touched       func(Contact)
}

// Bus notifies an ordered set of listeners. Notification order equals
// subscription order. Listeners must not call back into the owning core's
// mutating operations; queue such commands for the next tick instead.
type Bus struct {
	listeners []*Listener
}

// Subscribe registers a listener. Subscribing the same listener twice fails
// silently and returns false.
func (b *Bus) Subscribe(l *Listener) bool {
	if b == nil || l == nil {
		return false
	}
	for _, cur := range b.listeners {
		if cur == l {
			return false
		}
	}
	b.listeners = append(b.listeners, l)
	return true
}

// Unsubscribe removes a listener, returning false if it was not subscribed.
func (b *Bus) Unsubscribe(l *Listener) bool {
	if b == nil || l == nil {
		return false
	}
	for i, cur := range b.listeners {
		if cur == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the subscriber count.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.listeners)
}

func (b *Bus) notifyBeginJump(delay float64) {
	for _, l := range b.listeners {
		if l.BeginJump != nil {
			l.BeginJump(delay)
		}
	}
}

func (b *Bus) notifyPerformJump() {
	for _, l := range b.listeners {
		if l.PerformJump != nil {
			l.PerformJump()
		}
	}
}

func (b *Bus) notifyWallJump() {
	for _, l := range b.listeners {
		if l.WallJump != nil {
			l.WallJump()
		}
	}
}

func (b *Bus) notifyPreCollision(c Contact) {
	for _, l := range b.listeners {
		if l.PreCollision != nil {
			l.PreCollision(c)
		}
	}
}

func (b *Bus) notifyPostCollision(c Contact) {
	for _, l := range b.listeners {
		if l.PostCollision != nil {
			l.PostCollision(c)
		}
	}
}

// NotifyTouched delivers the touch event to this bus's subscribers. It is
// called by whatever routes core contacts to the collided object's own bus,
// not by the core that produced the contact.
func (b *Bus) NotifyTouched(c Contact) {
	if b == nil {
		return
	}
	for _, l := range b.listeners {
		if l.Touched != nil {
			l.Touched(c)
		}
	}
}
