// Package locomotion implements a 2D character locomotion and ground-contact
// state machine: grounded detection, crouching, horizontal velocity
// smoothing, facing and jumping.
//
// The controller does no physics of its own. It queries an OverlapQuery for
// ground and ceiling contact and drives a RigidBody2D, so it runs the same
// against the tile world in internal/physics and against scripted fakes.
//
// Per fixed step call UpdateGroundContact once, then Move.
package locomotion

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// State is a snapshot of the controller's internal state.
type State struct {
	Grounded          bool
	WasGrounded       bool
	FacingRight       bool
	Crouching         bool
	SmoothingVelocity core.Vec2
}

// Controller translates movement intent into velocity commands and events.
type Controller struct {
	cfg    Config
	body   RigidBody2D
	xform  Orientation
	world  OverlapQuery
	crouch CrouchCollider // optional

	state     State
	listeners []Listener
}

// Option configures optional collaborators of a Controller.
type Option func(*Controller)

// WithCrouchCollider sets the collider that is disabled while crouching.
func WithCrouchCollider(cc CrouchCollider) Option {
	return func(c *Controller) {
		c.crouch = cc
	}
}

// WithListener registers an event listener at construction.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.Subscribe(l)
	}
}

// New creates a controller. The body, transform and world are required.
func New(cfg Config, body RigidBody2D, xform Orientation, world OverlapQuery, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case body == nil:
		return nil, fmt.Errorf("locomotion: %w: rigid body", ErrMissingCapability)
	case xform == nil:
		return nil, fmt.Errorf("locomotion: %w: orientation", ErrMissingCapability)
	case world == nil:
		return nil, fmt.Errorf("locomotion: %w: overlap query", ErrMissingCapability)
	}

	c := &Controller{
		cfg:   cfg,
		body:  body,
		xform: xform,
		world: world,
		state: State{FacingRight: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Grounded reports whether the character is on the ground.
func (c *Controller) Grounded() bool {
	return c.state.Grounded
}

// Crouching reports whether the character is crouching.
func (c *Controller) Crouching() bool {
	return c.state.Crouching
}

// FacingRight reports the current facing direction.
func (c *Controller) FacingRight() bool {
	return c.state.FacingRight
}

// UpdateGroundContact refreshes the grounded flag from the ground check.
// Call once per fixed step, before Move.
func (c *Controller) UpdateGroundContact() {
	c.state.WasGrounded = c.state.Grounded

	hits := c.world.OverlapCircleAll(c.checkPoint(c.cfg.GroundCheck), c.cfg.GroundRadius, c.cfg.GroundMask)
	c.state.Grounded = len(hits) > 0

	if !c.state.WasGrounded && c.state.Grounded {
		c.emit(LandedEvent{})
	}
}

// Move applies one tick of movement intent. move is the horizontal input in
// [-1, 1]; crouch and jump are the held/pressed flags for this tick.
func (c *Controller) Move(move float64, crouch, jump bool) {
	// A ceiling overhead keeps the character crouched.
	if !crouch && c.ceilingBlocked() {
		crouch = true
	}

	if c.state.Grounded || c.cfg.AirControl {
		c.applyCrouch(crouch)

		speed := move
		if crouch {
			speed *= c.cfg.CrouchSpeed
		}

		current := c.body.Velocity()
		target := core.V2(speed*MoveSpeedScale, current.Y)
		c.body.SetVelocity(SmoothDamp(current, target, &c.state.SmoothingVelocity,
			c.cfg.MovementSmoothing, math.Inf(1), c.cfg.TimeStep))

		if (move > 0 && !c.state.FacingRight) || (move < 0 && c.state.FacingRight) {
			c.flip()
		}
	}

	if c.state.Grounded && jump {
		c.state.Grounded = false
		c.body.ApplyImpulse(core.V2(0, c.cfg.JumpForce))
		c.emit(JumpedEvent{Impulse: c.cfg.JumpForce})
	}
}

func (c *Controller) applyCrouch(crouch bool) {
	if crouch != c.state.Crouching {
		c.state.Crouching = crouch
		c.emit(CrouchChangedEvent{Crouching: crouch})
	}
	if c.crouch != nil {
		c.crouch.SetEnabled(!crouch)
	}
}

func (c *Controller) ceilingBlocked() bool {
	hits := c.world.OverlapCircleAll(c.checkPoint(c.cfg.CeilingCheck), c.cfg.CeilingRadius, c.cfg.GroundMask)
	return len(hits) > 0
}

func (c *Controller) flip() {
	c.state.FacingRight = !c.state.FacingRight

	s := c.xform.Scale()
	s.X = -s.X
	c.xform.SetScale(s)

	c.emit(FlippedEvent{FacingRight: c.state.FacingRight})
}

// checkPoint resolves a check offset in world space. Offsets mirror with
// the transform's X scale, like child transforms of a flipped sprite.
func (c *Controller) checkPoint(offset core.Vec2) core.Vec2 {
	if c.xform.Scale().X < 0 {
		offset.X = -offset.X
	}
	return c.xform.Position().Add(offset)
}
