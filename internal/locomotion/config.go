package locomotion

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// MoveSpeedScale converts the [-1, 1] movement input into world units per second.
const MoveSpeedScale = 10.0

// Default check radius for both ground and ceiling checks.
const DefaultCheckRadius = 0.2

// MaxMovementSmoothing is the upper bound for Config.MovementSmoothing.
const MaxMovementSmoothing = 0.3

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid locomotion config")

	// ErrMissingCapability is returned when a required collaborator is nil.
	ErrMissingCapability = errors.New("missing capability")
)

// Config holds the controller's tuning. It is copied at construction and
// never changes afterwards.
type Config struct {
	JumpForce         float64 // Upward impulse applied on jump
	CrouchSpeed       float64 // Fraction of speed kept while crouching, [0, 1]
	MovementSmoothing float64 // Smoothing time in seconds, [0, 0.3]
	AirControl        bool    // Whether the character can steer while airborne

	GroundMask    core.LayerMask // Layers that count as ground
	GroundCheck   core.Vec2      // Ground check offset from the character origin
	CeilingCheck  core.Vec2      // Ceiling check offset from the character origin
	GroundRadius  float64
	CeilingRadius float64

	// TimeStep is the duration of one Move call in seconds.
	TimeStep float64
}

// DefaultConfig returns the stock tuning for a one-cell-wide, two-cell-tall
// character at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		JumpForce:         12,
		CrouchSpeed:       0.36,
		MovementSmoothing: 0.05,
		AirControl:        false,
		GroundMask:        core.MaskOf(core.LayerGround),
		GroundCheck:       core.V2(0, 0),
		CeilingCheck:      core.V2(0, 1.5),
		GroundRadius:      DefaultCheckRadius,
		CeilingRadius:     DefaultCheckRadius,
		TimeStep:          1.0 / 60.0,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	switch {
	case !(c.JumpForce > 0) || math.IsInf(c.JumpForce, 0):
		return fmt.Errorf("locomotion: %w: jump force must be > 0, got %v", ErrInvalidConfig, c.JumpForce)
	case !(c.CrouchSpeed >= 0 && c.CrouchSpeed <= 1):
		return fmt.Errorf("locomotion: %w: crouch speed must be in [0, 1], got %v", ErrInvalidConfig, c.CrouchSpeed)
	case !(c.MovementSmoothing >= 0 && c.MovementSmoothing <= MaxMovementSmoothing):
		return fmt.Errorf("locomotion: %w: movement smoothing must be in [0, %v], got %v",
			ErrInvalidConfig, MaxMovementSmoothing, c.MovementSmoothing)
	case !(c.GroundRadius >= 0):
		return fmt.Errorf("locomotion: %w: ground radius must be >= 0, got %v", ErrInvalidConfig, c.GroundRadius)
	case !(c.CeilingRadius >= 0):
		return fmt.Errorf("locomotion: %w: ceiling radius must be >= 0, got %v", ErrInvalidConfig, c.CeilingRadius)
	case !(c.TimeStep > 0):
		return fmt.Errorf("locomotion: %w: time step must be > 0, got %v", ErrInvalidConfig, c.TimeStep)
	}
	return nil
}
