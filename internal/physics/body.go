package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Collider is one box of a body's compound shape, relative to the feet.
type Collider struct {
	shape   core.Box
	enabled bool
}

// SetEnabled switches the collider on or off.
func (c *Collider) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether the collider takes part in collisions.
func (c *Collider) Enabled() bool {
	return c.enabled
}

// Shape returns the collider box relative to the body origin.
func (c *Collider) Shape() core.Box {
	return c.shape
}

// Body is a dynamic box-shaped body. Its origin is the bottom center (feet).
// In the space it is a single object sized to its enabled colliders.
type Body struct {
	pos       core.Vec2
	vel       core.Vec2
	mass      float64
	scale     core.Vec2
	colliders []*Collider
	obj       *resolv.Object
}

// AddCollider attaches a box, relative to the feet, to the body.
func (b *Body) AddCollider(shape core.Box) *Collider {
	c := &Collider{shape: shape, enabled: true}
	b.colliders = append(b.colliders, c)
	return c
}

// Position returns the world position of the feet.
func (b *Body) Position() core.Vec2 {
	return b.pos
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p core.Vec2) {
	b.pos = p
}

// Velocity returns the current velocity.
func (b *Body) Velocity() core.Vec2 {
	return b.vel
}

// SetVelocity overrides the current velocity.
func (b *Body) SetVelocity(v core.Vec2) {
	b.vel = v
}

// ApplyImpulse changes velocity by impulse / mass.
func (b *Body) ApplyImpulse(impulse core.Vec2) {
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// Scale returns the visual scale. A negative X means mirrored.
func (b *Body) Scale() core.Vec2 {
	return b.scale
}

// SetScale sets the visual scale.
func (b *Body) SetScale(s core.Vec2) {
	b.scale = s
}

// Bounds returns the world box covering all enabled colliders.
func (b *Body) Bounds() (core.Box, bool) {
	local, ok := b.localBounds()
	if !ok {
		return core.Box{}, false
	}
	return local.Translate(b.pos), true
}

func (b *Body) localBounds() (core.Box, bool) {
	var (
		out   core.Box
		found bool
	)
	for _, c := range b.colliders {
		if !c.enabled {
			continue
		}
		if !found {
			out = c.shape
			found = true
			continue
		}
		out = out.Union(c.shape)
	}
	return out, found
}
