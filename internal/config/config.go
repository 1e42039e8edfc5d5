// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer games.
package config

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/locomotion"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// PhysicsConfig defines world parameters shared by all games.
// Units are terminal cells and seconds.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	GravityModifier float64 `yaml:"gravity_modifier"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
}

// World converts the section into a physics world config.
func (p PhysicsConfig) World() physics.Config {
	cfg := physics.DefaultConfig()
	cfg.Gravity = p.Gravity
	cfg.GravityModifier = p.GravityModifier
	cfg.MaxFallSpeed = p.MaxFallSpeed
	return cfg
}

// CharacterConfig defines the controlled character's body and movement tuning.
type CharacterConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Mass              float64 `yaml:"mass"`
	JumpForce         float64 `yaml:"jump_force"`
	CrouchSpeed       float64 `yaml:"crouch_speed"`
	MovementSmoothing float64 `yaml:"movement_smoothing"`
	AirControl        bool    `yaml:"air_control"`
	GroundRadius      float64 `yaml:"ground_radius"`
	CeilingRadius     float64 `yaml:"ceiling_radius"`
}

// ceilingSkin keeps the widened ceiling check short of the body's sides, so
// a wall the character leans on is not taken for a ceiling.
const ceilingSkin = 0.05

// Locomotion converts the section into a controller config.
// The ceiling check sits in the middle of the crouch collider (upper half)
// and reaches almost to its sides: the character only stands up once no
// part of the head is still under a ceiling.
func (c CharacterConfig) Locomotion(timeStep float64) locomotion.Config {
	cfg := locomotion.DefaultConfig()
	cfg.JumpForce = c.JumpForce
	cfg.CrouchSpeed = c.CrouchSpeed
	cfg.MovementSmoothing = c.MovementSmoothing
	cfg.AirControl = c.AirControl
	cfg.GroundMask = core.MaskOf(core.LayerGround)
	cfg.GroundCheck = core.V2(0, 0)
	cfg.CeilingCheck = core.V2(0, c.Height*0.75)
	cfg.GroundRadius = c.GroundRadius
	cfg.CeilingRadius = math.Max(c.CeilingRadius, c.Width/2-ceilingSkin)
	cfg.TimeStep = timeStep
	return cfg
}

// PlatformerConfig contains all configuration for the Platformer game.
type PlatformerConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Character CharacterConfig `yaml:"character"`
	Level     LevelConfig     `yaml:"level"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// LevelConfig holds an ASCII level map, top row first.
//
//	# solid ground   = solid ceiling   @ spawn   * coin   F flag
type LevelConfig struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ScoringConfig defines point values for the Platformer game.
type ScoringConfig struct {
	Coin       int `yaml:"coin"`
	ParSeconds int `yaml:"par_seconds"` // Finish bonus is max(0, par - elapsed seconds)
}

// RunnerConfig contains all configuration for the Runner game.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Character  CharacterConfig  `yaml:"character"`
	Player     RunnerPlayer     `yaml:"player"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPlayer places the character on screen.
type RunnerPlayer struct {
	X            float64 `yaml:"x"`             // Fixed world column of the character
	GroundOffset int     `yaml:"ground_offset"` // Rows between ground line and screen bottom
}

// RunnerObstacles defines obstacle shapes and travel for the Runner game.
type RunnerObstacles struct {
	BaseSpeed float64 `yaml:"base_speed"` // Cells per second at difficulty 0
	SpawnX    float64 `yaml:"spawn_x"`
	LeftBound float64 `yaml:"left_bound"`
	MinWidth  int     `yaml:"min_width"`
	MaxWidth  int     `yaml:"max_width"`
	MinHeight int     `yaml:"min_height"`
	MaxHeight int     `yaml:"max_height"`
	BarChance float64 `yaml:"bar_chance"` // Probability that a spawn is an overhead bar
	BarWidth  int     `yaml:"bar_width"`
}

// SpawnerConfig controls obstacle timing, in seconds.
type SpawnerConfig struct {
	StartDelay float64 `yaml:"start_delay"`
	RepeatRate float64 `yaml:"repeat_rate"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
