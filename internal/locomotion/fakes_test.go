package locomotion

import "github.com/vovakirdan/tui-platformer/internal/core"

// fakeWorld answers ground and ceiling checks from scripted values.
// Checks above ceilingLine count as ceiling queries.
type fakeWorld struct {
	groundHits  int
	ceilingHits int
	ceilingLine float64

	groundQueries  int
	ceilingQueries int
	lastMask       core.LayerMask
	lastRadius     float64
	lastCenter     core.Vec2
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{ceilingLine: 1}
}

func (w *fakeWorld) OverlapCircleAll(center core.Vec2, radius float64, mask core.LayerMask) []core.ColliderID {
	w.lastMask = mask
	w.lastRadius = radius
	w.lastCenter = center

	n := w.groundHits
	if center.Y > w.ceilingLine {
		w.ceilingQueries++
		n = w.ceilingHits
	} else {
		w.groundQueries++
	}

	hits := make([]core.ColliderID, n)
	for i := range hits {
		hits[i] = core.ColliderID(i + 1)
	}
	return hits
}

// fakeBody records every actuation.
type fakeBody struct {
	pos      core.Vec2
	scale    core.Vec2
	vel      core.Vec2
	impulses []core.Vec2
	setCalls int
}

func newFakeBody() *fakeBody {
	return &fakeBody{scale: core.V2(1, 1)}
}

func (b *fakeBody) Velocity() core.Vec2 { return b.vel }

func (b *fakeBody) SetVelocity(v core.Vec2) {
	b.vel = v
	b.setCalls++
}

func (b *fakeBody) ApplyImpulse(i core.Vec2) {
	b.impulses = append(b.impulses, i)
	b.vel = b.vel.Add(i)
}

func (b *fakeBody) Position() core.Vec2  { return b.pos }
func (b *fakeBody) Scale() core.Vec2     { return b.scale }
func (b *fakeBody) SetScale(s core.Vec2) { b.scale = s }

// fakeCollider records enable toggles.
type fakeCollider struct {
	enabled bool
	calls   int
}

func (c *fakeCollider) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.calls++
}

// recorder collects events in emission order.
type recorder struct {
	events []Event
}

func (r *recorder) listen(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
}

func isLanded(e Event) bool {
	_, ok := e.(LandedEvent)
	return ok
}

func isCrouch(e Event) bool {
	_, ok := e.(CrouchChangedEvent)
	return ok
}

func isJump(e Event) bool {
	_, ok := e.(JumpedEvent)
	return ok
}

func isFlip(e Event) bool {
	_, ok := e.(FlippedEvent)
	return ok
}
