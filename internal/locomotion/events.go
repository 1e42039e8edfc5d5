package locomotion

// Event is a discrete state change reported by the controller.
type Event interface {
	locomotionEvent()
}

// LandedEvent fires on the tick the character goes from airborne to grounded.
type LandedEvent struct{}

func (LandedEvent) locomotionEvent() {}

// CrouchChangedEvent fires when the crouch state actually changes.
type CrouchChangedEvent struct {
	Crouching bool
}

func (CrouchChangedEvent) locomotionEvent() {}

// JumpedEvent fires when a jump impulse is applied.
type JumpedEvent struct {
	Impulse float64
}

func (JumpedEvent) locomotionEvent() {}

// FlippedEvent fires when the facing direction changes.
type FlippedEvent struct {
	FacingRight bool
}

func (FlippedEvent) locomotionEvent() {}

// Listener receives every event emitted by a controller.
type Listener func(Event)

// Subscribe registers a listener for all events. Listeners run
// synchronously, in registration order, on the caller of the tick.
func (c *Controller) Subscribe(l Listener) {
	if l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// OnLanded registers a callback for LandedEvent.
func (c *Controller) OnLanded(fn func()) {
	if fn == nil {
		return
	}
	c.Subscribe(func(e Event) {
		if _, ok := e.(LandedEvent); ok {
			fn()
		}
	})
}

// OnCrouchChanged registers a callback for CrouchChangedEvent.
func (c *Controller) OnCrouchChanged(fn func(crouching bool)) {
	if fn == nil {
		return
	}
	c.Subscribe(func(e Event) {
		if ev, ok := e.(CrouchChangedEvent); ok {
			fn(ev.Crouching)
		}
	})
}

// OnJumped registers a callback for JumpedEvent.
func (c *Controller) OnJumped(fn func()) {
	if fn == nil {
		return
	}
	c.Subscribe(func(e Event) {
		if _, ok := e.(JumpedEvent); ok {
			fn()
		}
	})
}

// OnFlipped registers a callback for FlippedEvent.
func (c *Controller) OnFlipped(fn func(facingRight bool)) {
	if fn == nil {
		return
	}
	c.Subscribe(func(e Event) {
		if ev, ok := e.(FlippedEvent); ok {
			fn(ev.FacingRight)
		}
	})
}

func (c *Controller) emit(e Event) {
	for _, l := range c.listeners {
		l(e)
	}
}
