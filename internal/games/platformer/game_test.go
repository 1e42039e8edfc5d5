package platformer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/replay"
)

func newTestGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	cfg := config.DefaultPlatformerConfig()
	cfg.Level = config.LevelConfig{Name: t.Name(), Rows: rows}
	g := NewWithConfig(cfg)
	g.Reset(core.DefaultConfig())
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func steps(g *Game, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr error
	}{
		{"empty", nil, ErrEmptyLevel},
		{"blank rows", []string{"", ""}, ErrEmptyLevel},
		{"no spawn", []string{"  F", "###"}, ErrNoSpawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLevel(tt.rows); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseLevel() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}

	if _, err := ParseLevel([]string{"@ @", "###"}); err == nil {
		t.Error("expected error for two spawns")
	}
}

func TestParseLevelContents(t *testing.T) {
	lvl, err := ParseLevel([]string{
		"  *  ",
		"@ == F",
		"####",
	})
	if err != nil {
		t.Fatalf("ParseLevel() error: %v", err)
	}

	if lvl.Width != 6 || lvl.Height != 3 {
		t.Errorf("size = %dx%d, expected 6x3", lvl.Width, lvl.Height)
	}
	if len(lvl.Solids) != 4 || len(lvl.Ceilings) != 2 || len(lvl.Coins) != 1 || len(lvl.Flags) != 1 {
		t.Errorf("counts: solids=%d ceilings=%d coins=%d flags=%d",
			len(lvl.Solids), len(lvl.Ceilings), len(lvl.Coins), len(lvl.Flags))
	}

	// Bottom row sits on y=0, so the spawn row's feet are at y=1.
	if got := lvl.SpawnPoint(); got != core.V2(0.5, 1) {
		t.Errorf("SpawnPoint() = %v, expected (0.5, 1)", got)
	}
	if got := lvl.CellBox(Cell{Col: 2, Row: 0}); got != core.NewBox(2, 2, 1, 1) {
		t.Errorf("CellBox() = %v", got)
	}
}

func TestSpawnSettlesAndLands(t *testing.T) {
	g := newTestGame(t, "@    ", "#####")

	steps(g, 10, core.NewInputFrame())

	if !g.Controller().Grounded() {
		t.Error("character should be grounded on the floor")
	}
	if g.Body().Position().Y != 1 {
		t.Errorf("feet y = %v, expected 1", g.Body().Position().Y)
	}
	if g.Stats().Landings != 0 {
		t.Errorf("landings = %d, expected the spawn touchdown not to count", g.Stats().Landings)
	}
	if g.Stats().Ticks != 10 {
		t.Errorf("ticks = %d, expected 10", g.Stats().Ticks)
	}
}

func TestJumpAndLandAgain(t *testing.T) {
	g := newTestGame(t, "@    ", "#####")
	steps(g, 5, core.NewInputFrame())

	g.Step(input(core.ActionJump))
	steps(g, 5, core.NewInputFrame())

	if g.Controller().Grounded() {
		t.Error("character should be airborne shortly after jumping")
	}
	if g.Body().Position().Y <= 1 {
		t.Errorf("feet y = %v, expected above the floor", g.Body().Position().Y)
	}

	steps(g, 120, core.NewInputFrame())

	stats := g.Stats()
	if stats.Jumps != 1 || stats.Landings != 1 {
		t.Errorf("jumps=%d landings=%d, expected 1 and 1", stats.Jumps, stats.Landings)
	}
}

func TestCollectCoin(t *testing.T) {
	g := newTestGame(t, "@  *     ", "#########")

	steps(g, 30, input(core.ActionRight))

	if g.State().Score != 10 {
		t.Errorf("score = %d, expected 10", g.State().Score)
	}
	if g.coinsLeft != 0 {
		t.Errorf("coins left = %d, expected 0", g.coinsLeft)
	}
}

func TestReachFlag(t *testing.T) {
	g := newTestGame(t, "@ F", "###")

	for i := 0; i < 120 && !g.State().GameOver; i++ {
		g.Step(input(core.ActionRight))
	}

	if !g.Won() || !g.State().GameOver {
		t.Fatal("reaching the flag should win the level")
	}
	// Under a second elapsed, so the full par bonus applies.
	if g.State().Score != 60 {
		t.Errorf("score = %d, expected par bonus 60", g.State().Score)
	}

	before := g.Stats().Ticks
	g.Step(input(core.ActionRight))
	if g.Stats().Ticks != before {
		t.Error("game should not advance after game over")
	}
}

func TestFallEndsRun(t *testing.T) {
	g := newTestGame(t, "@  ", "#  ")

	for i := 0; i < 240 && !g.State().GameOver; i++ {
		g.Step(input(core.ActionRight))
	}

	if !g.State().GameOver || g.Won() {
		t.Errorf("falling should end the run without winning (over=%v won=%v)", g.State().GameOver, g.Won())
	}
}

func TestCeilingKeepsCrouch(t *testing.T) {
	rows := []string{
		"        ",
		"   =====",
		"@       ",
		"########",
	}

	t.Run("standing is blocked", func(t *testing.T) {
		g := newTestGame(t, rows...)
		steps(g, 60, input(core.ActionRight))
		if x := g.Body().Position().X; x > 2.6+1e-9 {
			t.Errorf("standing character passed under low ceiling, x = %v", x)
		}
	})

	t.Run("crouched passes and stays crouched", func(t *testing.T) {
		g := newTestGame(t, rows...)
		steps(g, 90, input(core.ActionRight, core.ActionCrouch))

		if x := g.Body().Position().X; x < 4 {
			t.Fatalf("crouched character should be in the tunnel, x = %v", x)
		}

		steps(g, 3, core.NewInputFrame())
		if !g.Controller().Crouching() {
			t.Error("ceiling overhead should keep the character crouched")
		}
		if g.Stats().Crouches != 1 {
			t.Errorf("crouches = %d, expected 1", g.Stats().Crouches)
		}
	})
}

func TestLeavingTunnelStandsOnFloor(t *testing.T) {
	rows := []string{
		"                        ",
		"  ===                   ",
		"@                       ",
		"########################",
	}
	crouchRight := input(core.ActionRight, core.ActionCrouch)

	for extra := 0; extra <= 30; extra += 3 {
		t.Run(fmt.Sprintf("crouch %d more ticks", extra), func(t *testing.T) {
			g := newTestGame(t, rows...)
			for i := 0; i < 200 && g.Body().Position().X < 3; i++ {
				g.Step(crouchRight)
			}
			steps(g, extra, crouchRight)
			steps(g, 90, input(core.ActionRight))

			pos := g.Body().Position()
			if pos.Y != 1 {
				t.Errorf("feet y = %v, expected the floor at 1", pos.Y)
			}
			if pos.X < 5.4 {
				t.Errorf("x = %v, expected past the tunnel exit", pos.X)
			}
			if g.Controller().Crouching() || !g.Controller().Grounded() {
				t.Errorf("crouching=%v grounded=%v, expected standing on the floor",
					g.Controller().Crouching(), g.Controller().Grounded())
			}
		})
	}
}

func TestFlipMirrorsBody(t *testing.T) {
	g := newTestGame(t, "   @   ", "#######")
	steps(g, 2, core.NewInputFrame())

	steps(g, 3, input(core.ActionLeft))

	if g.Controller().FacingRight() {
		t.Error("character should face left")
	}
	if g.Body().Scale().X != -1 {
		t.Errorf("scale x = %v, expected -1", g.Body().Scale().X)
	}
	if g.Stats().Flips != 1 {
		t.Errorf("flips = %d, expected 1", g.Stats().Flips)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, "@    ", "#####")
	steps(g, 2, core.NewInputFrame())

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	pos := g.Body().Position()
	steps(g, 10, input(core.ActionRight))
	if g.Body().Position() != pos || g.Stats().Ticks != 2 {
		t.Error("paused game should not simulate")
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestInvalidLevelFallsBack(t *testing.T) {
	g := newTestGame(t, "####", "####")

	if g.cfg.Level.Name != "fallback" {
		t.Errorf("level = %q, expected fallback", g.cfg.Level.Name)
	}
	if g.Body() == nil || g.Controller() == nil {
		t.Fatal("fallback level should still build a character")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "@ * F", "#####")
	screen := core.NewScreen(40, 10)

	g.Render(screen)
	out := screen.String()

	for _, r := range []rune{HeadRight, LegsGrounded, CoinChar, FlagChar, GroundChar} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("render missing %q", r)
		}
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("platformer") {
		t.Fatal("platformer should be registered")
	}
	g, err := registry.Create("platformer")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := registry.StatsOf(g); !ok {
		t.Error("platformer should report run stats")
	}
}

func TestLoadedConfigOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.SetDifficulty("hard")
	g.Reset(core.DefaultConfig())
	if g.cfg.Physics.GravityModifier != 1.2 || g.Controller().Config().AirControl {
		t.Errorf("hard preset not applied: gravity modifier %v, air control %v",
			g.cfg.Physics.GravityModifier, g.Controller().Config().AirControl)
	}

	SetAirControl(true)
	defer SetAirControl(false)
	g.Reset(core.DefaultConfig())
	if !g.Controller().Config().AirControl {
		t.Error("forced air control should win over the preset")
	}
}

func TestReplayScript(t *testing.T) {
	script, err := replay.Parse([]byte(`
seed: 1
steps:
  - ticks: 5
  - ticks: 125
    jump: true
  - ticks: 10
    move: -1
`))
	if err != nil {
		t.Fatalf("replay.Parse() error: %v", err)
	}

	g := newTestGame(t, "    @    ", "#########")
	for _, f := range script.Frames() {
		g.Step(f)
	}

	want := core.RunStats{Ticks: 140, Jumps: 1, Landings: 1, Flips: 1}
	if got := g.Stats(); got != want {
		t.Errorf("stats = %+v, expected %+v", got, want)
	}
	if g.Controller().FacingRight() {
		t.Error("character should face left after moving left")
	}
}
