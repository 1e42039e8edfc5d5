package runner

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Spawner decides on which ticks a new obstacle appears. The first spawn
// happens after the start delay, then every repeat interval as shortened by
// the difficulty manager.
type Spawner struct {
	cfg        config.SpawnerConfig
	difficulty *config.DifficultyManager
	tickRate   float64
	next       int
	stopped    bool
}

// NewSpawner creates a spawner. tickRate is ticks per second.
func NewSpawner(cfg config.SpawnerConfig, diff *config.DifficultyManager, tickRate int) *Spawner {
	if tickRate <= 0 {
		tickRate = 60
	}
	s := &Spawner{
		cfg:        cfg,
		difficulty: diff,
		tickRate:   float64(tickRate),
	}
	s.next = s.toTicks(cfg.StartDelay)
	return s
}

// Due reports whether an obstacle should spawn on this tick and schedules
// the following one.
func (s *Spawner) Due(tick, score int) bool {
	if s.stopped || tick < s.next {
		return false
	}
	interval := s.difficulty.Interval(s.cfg.RepeatRate, score, tick)
	s.next = tick + max(1, s.toTicks(interval))
	return true
}

// Next returns the tick of the next scheduled spawn.
func (s *Spawner) Next() int {
	return s.next
}

// Stop cancels all future spawns.
func (s *Spawner) Stop() {
	s.stopped = true
}

// Stopped reports whether spawning was cancelled.
func (s *Spawner) Stopped() bool {
	return s.stopped
}

func (s *Spawner) toTicks(seconds float64) int {
	return int(math.Round(seconds * s.tickRate))
}
