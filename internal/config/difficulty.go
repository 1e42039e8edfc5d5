package config

import "math"

// Shortest obstacle interval the spawner will use, in seconds.
const minSpawnInterval = 0.4

// Progression types understood by DifficultyManager.
const (
	ProgressNone  = "none"
	ProgressScore = "score"
	ProgressTime  = "time" // measured in ticks
)

// DifficultyManager maps run progress to a difficulty level in [0, 1] and
// scales runner parameters by it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // Level at the start of a run
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: clampF(cfg.InitialLevel, 0, 1)}
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.floor = clampF(level, 0, 1)
}

// IsEnabled reports whether the level rises during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// progress returns how far the run is towards Progression.MaxAt, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = score
	case ProgressTime:
		done = ticks
	default:
		return 0
	}
	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)
	return clampF(float64(done)/maxAt, 0, 1)
}

// Level returns the difficulty for the given run progress. It starts at the
// initial level and reaches 1 at Progression.MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	return d.floor + d.progress(score, ticks)*(1-d.floor)
}

// Speed scales baseSpeed up to baseSpeed*(1+SpeedMultiplier) at level 1.
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens the spawn interval (seconds) by up to IntervalReduction
// of its base value. It never drops below minSpawnInterval unless the base
// interval already does.
func (d *DifficultyManager) Interval(baseInterval float64, score, ticks int) float64 {
	cut := d.Level(score, ticks) * clampF(d.cfg.Scaling.IntervalReduction, 0, 1)
	return math.Max(baseInterval*(1-cut), math.Min(minSpawnInterval, baseInterval))
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
