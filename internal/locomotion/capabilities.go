package locomotion

import "github.com/vovakirdan/tui-platformer/internal/core"

// OverlapQuery finds colliders intersecting a circle.
// Used for both the ground and the ceiling check.
type OverlapQuery interface {
	OverlapCircleAll(center core.Vec2, radius float64, mask core.LayerMask) []core.ColliderID
}

// RigidBody2D is the velocity-actuation side of the character's body.
type RigidBody2D interface {
	Velocity() core.Vec2
	SetVelocity(v core.Vec2)
	ApplyImpulse(impulse core.Vec2)
}

// Orientation exposes the character's transform. Check offsets are
// resolved against Position, and flipping negates the X scale.
type Orientation interface {
	Position() core.Vec2
	Scale() core.Vec2
	SetScale(s core.Vec2)
}

// CrouchCollider is a collision volume that is switched off while crouching.
type CrouchCollider interface {
	SetEnabled(enabled bool)
}
