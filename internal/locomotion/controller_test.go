package locomotion

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type harness struct {
	ctrl     *Controller
	world    *fakeWorld
	body     *fakeBody
	collider *fakeCollider
	events   *recorder
}

func newHarness(t *testing.T, mutate func(*Config)) *harness {
	t.Helper()

	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		world:    newFakeWorld(),
		body:     newFakeBody(),
		collider: &fakeCollider{enabled: true},
		events:   &recorder{},
	}

	ctrl, err := New(cfg, h.body, h.body, h.world,
		WithCrouchCollider(h.collider),
		WithListener(h.events.listen),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	h.ctrl = ctrl
	return h
}

// ground puts the character on the ground for the next ticks.
func (h *harness) ground() {
	h.world.groundHits = 1
	h.ctrl.UpdateGroundContact()
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, nil)

	st := h.ctrl.State()
	if st.Grounded || st.WasGrounded || st.Crouching {
		t.Errorf("initial state should be airborne and standing, got %+v", st)
	}
	if !st.FacingRight {
		t.Error("initial state should face right")
	}
	if st.SmoothingVelocity != (core.Vec2{}) {
		t.Errorf("initial smoothing derivative should be zero, got %v", st.SmoothingVelocity)
	}
}

func TestLandingEdgeDetection(t *testing.T) {
	h := newHarness(t, nil)
	contacts := []bool{false, false, true, true, false, true}

	var landedAt []int
	h.ctrl.OnLanded(func() {
		landedAt = append(landedAt, len(landedAt))
	})

	var fired []int
	for i, grounded := range contacts {
		before := h.events.count(isLanded)
		h.world.groundHits = 0
		if grounded {
			h.world.groundHits = 1
		}
		h.ctrl.UpdateGroundContact()
		if h.events.count(isLanded) > before {
			fired = append(fired, i)
		}
		if h.ctrl.Grounded() != grounded {
			t.Errorf("tick %d: Grounded() = %v, expected %v", i, h.ctrl.Grounded(), grounded)
		}
	}

	if len(fired) != 2 || fired[0] != 2 || fired[1] != 5 {
		t.Errorf("Landed fired at %v, expected [2 5]", fired)
	}
	if len(landedAt) != 2 {
		t.Errorf("OnLanded callback ran %d times, expected 2", len(landedAt))
	}
}

func TestLandingFiresOnceForManyContacts(t *testing.T) {
	h := newHarness(t, nil)
	h.world.groundHits = 5

	h.ctrl.UpdateGroundContact()

	if n := h.events.count(isLanded); n != 1 {
		t.Errorf("Landed fired %d times for 5 contacts, expected 1", n)
	}
}

func TestGroundCheckUsesConfig(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.GroundCheck = core.V2(0.25, -0.1)
		c.GroundRadius = 0.3
		c.GroundMask = core.MaskOf(core.LayerGround, core.LayerObstacle)
	})
	h.body.pos = core.V2(4, 2)

	h.ctrl.UpdateGroundContact()

	if h.world.lastCenter != core.V2(4.25, 1.9) {
		t.Errorf("ground check at %v, expected (4.25, 1.9)", h.world.lastCenter)
	}
	if h.world.lastRadius != 0.3 {
		t.Errorf("ground check radius %v, expected 0.3", h.world.lastRadius)
	}
	if h.world.lastMask != core.MaskOf(core.LayerGround, core.LayerObstacle) {
		t.Errorf("ground check mask %b", h.world.lastMask)
	}
}

func TestCheckOffsetMirrorsWhenFlipped(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.GroundCheck = core.V2(0.3, 0)
	})
	h.ground()
	h.ctrl.Move(-1, false, false) // flip to the left

	h.ctrl.UpdateGroundContact()

	if h.world.lastCenter.X != -0.3 {
		t.Errorf("mirrored check X = %v, expected -0.3", h.world.lastCenter.X)
	}
}

func TestCrouchIgnoredWhileAirborneWithoutAirControl(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.AirControl = false })

	h.ctrl.Move(0, true, false)

	if h.ctrl.Crouching() {
		t.Error("crouch should be ignored while airborne")
	}
	if n := h.events.count(isCrouch); n != 0 {
		t.Errorf("CrouchChanged fired %d times, expected 0", n)
	}
	if h.collider.calls != 0 {
		t.Errorf("crouch collider toggled %d times, expected 0", h.collider.calls)
	}
	if h.body.setCalls != 0 {
		t.Errorf("velocity written %d times while airborne, expected 0", h.body.setCalls)
	}
}

func TestCrouchAllowedWhileAirborneWithAirControl(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.AirControl = true })

	h.ctrl.Move(0, true, false)

	if !h.ctrl.Crouching() {
		t.Error("air control should allow crouching in the air")
	}
	if h.collider.enabled {
		t.Error("crouch collider should be disabled")
	}
}

func TestCrouchIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()

	for i := 0; i < 5; i++ {
		h.ctrl.Move(0.5, true, false)
	}
	if n := h.events.count(isCrouch); n != 1 {
		t.Fatalf("CrouchChanged fired %d times while holding crouch, expected 1", n)
	}
	if ev := h.events.events[0].(CrouchChangedEvent); !ev.Crouching {
		t.Error("first crouch event should report crouching=true")
	}
	if h.collider.calls != 5 || h.collider.enabled {
		t.Errorf("collider should be disabled on every call, calls=%d enabled=%v", h.collider.calls, h.collider.enabled)
	}

	h.events.reset()
	for i := 0; i < 3; i++ {
		h.ctrl.Move(0.5, false, false)
	}
	if n := h.events.count(isCrouch); n != 1 {
		t.Errorf("CrouchChanged fired %d times on release, expected 1", n)
	}
	if !h.collider.enabled {
		t.Error("collider should be enabled after releasing crouch")
	}
}

func TestCrouchStatePersistsWhileAirborne(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()
	h.ctrl.Move(0, true, false)

	h.world.groundHits = 0
	h.ctrl.UpdateGroundContact()
	h.ctrl.Move(0, false, false)

	if !h.ctrl.Crouching() {
		t.Error("crouch release should be ignored while airborne without air control")
	}
}

func TestCeilingForcesCrouch(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.MovementSmoothing = 0
		c.CrouchSpeed = 0.5
	})
	h.ground()
	h.world.ceilingHits = 1

	h.ctrl.Move(1, false, false)

	if !h.ctrl.Crouching() {
		t.Fatal("ceiling overlap should force crouch")
	}
	if n := h.events.count(isCrouch); n != 1 {
		t.Errorf("CrouchChanged fired %d times, expected 1", n)
	}
	want := 1 * 0.5 * MoveSpeedScale
	if math.Abs(h.body.vel.X-want) > 0.01 {
		t.Errorf("velocity X = %v, expected about %v (crouch speed)", h.body.vel.X, want)
	}

	// Clearing the ceiling lets the character stand on the next call.
	h.world.ceilingHits = 0
	h.ctrl.Move(1, false, false)
	if h.ctrl.Crouching() {
		t.Error("character should stand once the ceiling is clear")
	}
}

func TestCeilingNotQueriedWhenCrouchRequested(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()

	h.ctrl.Move(0, true, false)

	if h.world.ceilingQueries != 0 {
		t.Errorf("ceiling queried %d times while crouch requested, expected 0", h.world.ceilingQueries)
	}
}

func TestJumpConsumesGrounded(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.JumpForce = 9 })
	h.ground()

	h.ctrl.Move(0, false, true)

	if h.ctrl.Grounded() {
		t.Error("jump should clear grounded immediately")
	}
	if len(h.body.impulses) != 1 {
		t.Fatalf("impulse applied %d times, expected 1", len(h.body.impulses))
	}
	if h.body.impulses[0] != core.V2(0, 9) {
		t.Errorf("impulse = %v, expected (0, 9)", h.body.impulses[0])
	}
	if n := h.events.count(isJump); n != 1 {
		t.Errorf("Jumped fired %d times, expected 1", n)
	}

	// A second request in the same tick has nothing to consume.
	h.ctrl.Move(0, false, true)
	if len(h.body.impulses) != 1 {
		t.Errorf("second jump applied an impulse, total %d", len(h.body.impulses))
	}
}

func TestJumpIgnoredWhileAirborne(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.AirControl = true })

	h.ctrl.Move(1, false, true)

	if len(h.body.impulses) != 0 {
		t.Errorf("airborne jump applied %d impulses", len(h.body.impulses))
	}
}

func TestRegroundAfterJump(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()
	h.ctrl.Move(0, false, true)

	// The check still touches the floor on the next tick.
	h.ctrl.UpdateGroundContact()

	if !h.ctrl.Grounded() {
		t.Error("next tick query should report ground again")
	}
	if n := h.events.count(isLanded); n != 2 {
		t.Errorf("Landed fired %d times, expected 2 (initial + re-contact)", n)
	}
}

func TestFacingFlip(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()

	inputs := []float64{1, 1, -1, 0, 1}
	var flippedAt []int
	for i, move := range inputs {
		before := h.events.count(isFlip)
		h.ctrl.Move(move, false, false)
		if h.events.count(isFlip) > before {
			flippedAt = append(flippedAt, i+1)
		}
	}

	if len(flippedAt) != 2 || flippedAt[0] != 3 || flippedAt[1] != 5 {
		t.Errorf("flips at calls %v, expected [3 5]", flippedAt)
	}
	if !h.ctrl.FacingRight() {
		t.Error("should face right after the sequence")
	}
	if h.body.scale.X != 1 {
		t.Errorf("scale X = %v, expected 1 after two flips", h.body.scale.X)
	}
}

func TestZeroInputNeverFlips(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()
	h.ctrl.Move(-1, false, false)

	var facing []bool
	h.ctrl.OnFlipped(func(right bool) { facing = append(facing, right) })
	for i := 0; i < 10; i++ {
		h.ctrl.Move(0, false, false)
	}

	if len(facing) != 0 {
		t.Errorf("zero input flipped %d times", len(facing))
	}
	if h.ctrl.FacingRight() || h.body.scale.X != -1 {
		t.Error("character should still face left with mirrored scale")
	}
}

func TestNoFlipWhileAirborne(t *testing.T) {
	h := newHarness(t, nil)

	h.ctrl.Move(-1, false, false)

	if !h.ctrl.FacingRight() {
		t.Error("airborne without air control should not flip")
	}
}

func TestSmoothingConvergence(t *testing.T) {
	const target = MoveSpeedScale

	for _, smoothing := range []float64{0, 0.01, 0.05, 0.15, 0.3} {
		h := newHarness(t, func(c *Config) { c.MovementSmoothing = smoothing })
		h.ground()

		dt := h.ctrl.Config().TimeStep
		bound := int(math.Ceil(smoothing/dt*6)) + 2

		prev := 0.0
		reachedAt := -1
		for step := 1; step <= 400; step++ {
			h.ctrl.Move(1, false, false)
			v := h.body.vel.X

			if v > target+1e-9 {
				t.Fatalf("smoothing %v: overshoot at step %d: %v", smoothing, step, v)
			}
			if v < prev-1e-9 {
				t.Fatalf("smoothing %v: not monotonic at step %d: %v < %v", smoothing, step, v, prev)
			}
			prev = v
			if reachedAt < 0 && target-v < 0.01*target {
				reachedAt = step
			}
		}

		if reachedAt < 0 || reachedAt > bound {
			t.Errorf("smoothing %v: reached 1%% band at step %d, bound %d", smoothing, reachedAt, bound)
		}
	}
}

func TestSmoothingKeepsVerticalVelocity(t *testing.T) {
	h := newHarness(t, nil)
	h.ground()
	h.body.vel = core.V2(0, -3)

	h.ctrl.Move(1, false, false)

	if h.body.vel.Y != -3 {
		t.Errorf("vertical velocity = %v, expected -3 unchanged", h.body.vel.Y)
	}
	if h.ctrl.State().SmoothingVelocity.X == 0 {
		t.Error("smoothing derivative should persist after a move")
	}
}

func TestNewValidation(t *testing.T) {
	body := newFakeBody()
	world := newFakeWorld()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero jump force", func(c *Config) { c.JumpForce = 0 }},
		{"crouch speed above one", func(c *Config) { c.CrouchSpeed = 1.5 }},
		{"negative crouch speed", func(c *Config) { c.CrouchSpeed = -0.1 }},
		{"smoothing too large", func(c *Config) { c.MovementSmoothing = 0.31 }},
		{"smoothing NaN", func(c *Config) { c.MovementSmoothing = math.NaN() }},
		{"negative ground radius", func(c *Config) { c.GroundRadius = -1 }},
		{"negative ceiling radius", func(c *Config) { c.CeilingRadius = -1 }},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := New(cfg, body, body, world)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(DefaultConfig(), nil, body, world); !errors.Is(err, ErrMissingCapability) {
		t.Errorf("nil body: error = %v, expected ErrMissingCapability", err)
	}
	if _, err := New(DefaultConfig(), body, body, nil); !errors.Is(err, ErrMissingCapability) {
		t.Errorf("nil world: error = %v, expected ErrMissingCapability", err)
	}
}

func TestMissingCrouchColliderTolerated(t *testing.T) {
	body := newFakeBody()
	world := newFakeWorld()
	world.groundHits = 1

	ctrl, err := New(DefaultConfig(), body, body, world)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ctrl.UpdateGroundContact()
	ctrl.Move(1, true, false)
	ctrl.Move(1, false, false)

	if ctrl.Crouching() {
		t.Error("crouch should release normally without a collider")
	}
}

func TestTypedCallbacks(t *testing.T) {
	h := newHarness(t, nil)

	var crouches []bool
	jumps := 0
	h.ctrl.OnCrouchChanged(func(c bool) { crouches = append(crouches, c) })
	h.ctrl.OnJumped(func() { jumps++ })
	h.ctrl.OnLanded(nil) // ignored

	h.ground()
	h.ctrl.Move(0, true, false)
	h.ctrl.Move(0, false, true)

	if len(crouches) != 2 || !crouches[0] || crouches[1] {
		t.Errorf("crouch callbacks = %v, expected [true false]", crouches)
	}
	if jumps != 1 {
		t.Errorf("jump callbacks = %d, expected 1", jumps)
	}
}
