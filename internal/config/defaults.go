package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

func defaultCharacter() CharacterConfig {
	return CharacterConfig{
		Width:             0.8,
		Height:            2,
		Mass:              1,
		JumpForce:         12,
		CrouchSpeed:       0.36,
		MovementSmoothing: 0.05,
		AirControl:        false,
		GroundRadius:      0.1,
		CeilingRadius:     0.2,
	}
}

// DefaultPlatformerConfig returns the default Platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:         30,
			GravityModifier: 1,
			MaxFallSpeed:    20,
		},
		Character: defaultCharacter(),
		Level: LevelConfig{
			Name: "fallback",
			Rows: []string{
				"                              ",
				"                 *            ",
				"          ======       ####   ",
				"  @                  *     F  ",
				"##############################",
				"##############################",
			},
		},
		Scoring: ScoringConfig{
			Coin:       10,
			ParSeconds: 60,
		},
	}
}

// DefaultRunnerConfig returns the default Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:         30,
			GravityModifier: 1,
			MaxFallSpeed:    20,
		},
		Character: defaultCharacter(),
		Player: RunnerPlayer{
			X:            8,
			GroundOffset: 2,
		},
		Obstacles: RunnerObstacles{
			BaseSpeed: 15,
			SpawnX:    80,
			LeftBound: -5,
			MinWidth:  1,
			MaxWidth:  2,
			MinHeight: 1,
			MaxHeight: 2,
			BarChance: 0.25,
			BarWidth:  3,
		},
		Spawner: SpawnerConfig{
			StartDelay: 2,
			RepeatRate: 1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	case "runner":
		return defaultRunnerYAML
	default:
		return nil
	}
}
