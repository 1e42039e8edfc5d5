package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

func testConfig(barChance float64) config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.Enabled = false
	cfg.Spawner.StartDelay = 0.5
	cfg.Obstacles.BarChance = barChance
	cfg.Obstacles.MinWidth, cfg.Obstacles.MaxWidth = 1, 1
	cfg.Obstacles.MinHeight, cfg.Obstacles.MaxHeight = 1, 1
	return cfg
}

func newTestGame(cfg config.RunnerConfig) *Game {
	g := NewWithConfig(cfg)
	rt := core.DefaultConfig()
	rt.Seed = 42
	g.Reset(rt)
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestSpawnerSchedule(t *testing.T) {
	diff := config.NewDifficultyManager(config.DifficultyConfig{Enabled: false})
	s := NewSpawner(config.SpawnerConfig{StartDelay: 1, RepeatRate: 1.5}, diff, 60)

	if s.Due(59, 0) {
		t.Error("nothing should spawn before the start delay")
	}
	if !s.Due(60, 0) {
		t.Fatal("first spawn should happen at the start delay")
	}
	if s.Next() != 150 {
		t.Errorf("next spawn = %d, expected 150", s.Next())
	}
	if s.Due(149, 0) || !s.Due(150, 0) {
		t.Error("second spawn should happen one interval later")
	}

	s.Stop()
	if s.Due(10000, 0) {
		t.Error("stopped spawner should never fire")
	}
}

func TestSpawnerIntervalShrinksWithDifficulty(t *testing.T) {
	diff := config.NewDifficultyManager(config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: config.ProgressScore, MaxAt: 100},
		Scaling:     config.ScalingConfig{IntervalReduction: 0.5},
	})
	s := NewSpawner(config.SpawnerConfig{StartDelay: 0, RepeatRate: 2}, diff, 60)

	s.Due(0, 100)
	if s.Next() != 60 {
		t.Errorf("next spawn = %d, expected 60 at max difficulty", s.Next())
	}
}

func TestObstacleLifecycle(t *testing.T) {
	w := physics.NewWorld(physics.DefaultConfig())
	cfg := testConfig(0).Obstacles
	cfg.SpawnX = 10
	cfg.LeftBound = 0
	om := NewObstacleManager(1, w, cfg, 1)

	cactus := om.SpawnKind(KindCactus)
	bar := om.SpawnKind(KindBar)

	if cactus.Box.Min.Y != 0 || cactus.Box.Height() != 1 {
		t.Errorf("cactus box = %v, expected on the ground", cactus.Box)
	}
	if bar.Box.Min.Y != 1 || bar.Box.Width() != float64(cfg.BarWidth) {
		t.Errorf("bar box = %v, expected to start at crouch height", bar.Box)
	}

	om.Update(5)
	box, ok := w.StaticBox(cactus.ID)
	if !ok || box.Min.X != 5 {
		t.Errorf("cactus collider = %v, %v; expected moved to x=5", box, ok)
	}

	om.Update(5)
	// Cactus spans 0..1 and stays; a further move pushes everything out.
	om.Update(5)
	if len(om.Obstacles()) != 0 {
		t.Errorf("obstacles left = %d, expected all removed", len(om.Obstacles()))
	}
	if _, ok := w.StaticBox(cactus.ID); ok {
		t.Error("removed obstacle should free its collider")
	}
}

func TestStandingStillHitsCactus(t *testing.T) {
	g := newTestGame(testConfig(0))

	for i := 0; i < 600 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.State().GameOver {
		t.Fatal("idle runner should hit the first cactus")
	}
	if !g.spawner.Stopped() {
		t.Error("spawning should stop on game over")
	}

	score := g.State().Score
	g.Step(input(core.ActionJump))
	if g.State().Score != score {
		t.Error("score should not change after game over")
	}
}

func TestJumpingClearsCacti(t *testing.T) {
	g := newTestGame(testConfig(0))
	right := g.cfg.Player.X + g.cfg.Character.Width/2

	for i := 0; i < 900; i++ {
		in := core.NewInputFrame()
		for _, o := range g.obstacles.Obstacles() {
			if gap := o.Box.Min.X - right; gap > 2 && gap <= 4 {
				in.Set(core.ActionJump)
			}
		}
		g.Step(in)
		if g.State().GameOver {
			t.Fatalf("runner hit a cactus at tick %d", i)
		}
	}

	stats := g.Stats()
	if stats.Jumps < 5 {
		t.Errorf("jumps = %d, expected several", stats.Jumps)
	}
	if stats.Landings != stats.Jumps && stats.Landings != stats.Jumps-1 {
		t.Errorf("landings = %d for %d jumps", stats.Landings, stats.Jumps)
	}
}

func TestCrouchingPassesUnderBars(t *testing.T) {
	t.Run("crouching", func(t *testing.T) {
		g := newTestGame(testConfig(1))
		for i := 0; i < 600; i++ {
			g.Step(input(core.ActionCrouch))
		}
		if g.State().GameOver {
			t.Error("crouched runner should pass under every bar")
		}
		if g.Stats().Crouches != 1 {
			t.Errorf("crouches = %d, expected 1", g.Stats().Crouches)
		}
		if g.State().Score != 600 {
			t.Errorf("score = %d, expected one point per tick", g.State().Score)
		}
	})

	t.Run("standing", func(t *testing.T) {
		g := newTestGame(testConfig(1))
		for i := 0; i < 600 && !g.State().GameOver; i++ {
			g.Step(core.NewInputFrame())
		}
		if !g.State().GameOver {
			t.Error("standing runner should hit a bar")
		}
	})
}

func TestRender(t *testing.T) {
	g := newTestGame(testConfig(0))
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, r := range []rune{GroundChar, HeadChar, CactusChar} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("render missing %q", r)
		}
	}
	if !strings.Contains(screen.Row(0), "Score: 60") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("runner") {
		t.Fatal("runner should be registered")
	}
}
