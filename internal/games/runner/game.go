// Package runner implements an endless runner. The character holds a fixed
// column while obstacles scroll in from the right: jump over cacti and crouch
// under overhead bars.
package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/locomotion"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Visual characters for rendering
const (
	HeadChar    = '◗'
	LegsFrame1  = 'Λ'
	LegsFrame2  = 'ʌ'
	LegsAir     = '╨'
	CrouchChar  = '▶'
	CactusChar  = '▓'
	BarChar     = '▬'
	GroundChar  = '═'
	legFrameLen = 10
)

// Game implements the Runner game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	fixed      *config.RunnerConfig // Set by NewWithConfig; skips loading
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	log        *log.Logger

	world     *physics.World
	body      *physics.Body
	ctrl      *locomotion.Controller
	obstacles *ObstacleManager
	spawner   *Spawner

	score     int
	tickCount int
	gameOver  bool
	paused    bool
	stats     core.RunStats
	legFrame  int

	touchedDown bool // The spawn touchdown has happened
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a new Runner game instance.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(cfg config.RunnerConfig) *Game {
	return &Game{fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.With("game", g.ID())
	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	obs := g.cfg.Obstacles
	world := g.cfg.Physics.World()
	world.Bounds = core.NewBox(obs.LeftBound-g.cfg.Player.X-2, -4,
		obs.SpawnX-obs.LeftBound+2*g.cfg.Player.X+float64(max(obs.MaxWidth, obs.BarWidth))+4, 16)
	g.world = physics.NewWorld(world)
	g.world.AddStatic(core.NewBox(obs.LeftBound-g.cfg.Player.X, -1, obs.SpawnX-obs.LeftBound+2*g.cfg.Player.X, 1), core.LayerGround)

	ch := g.cfg.Character
	half := ch.Height / 2
	g.body = g.world.AddBody(core.V2(g.cfg.Player.X, 0), ch.Mass)
	g.body.AddCollider(core.NewBox(-ch.Width/2, 0, ch.Width, half))
	head := g.body.AddCollider(core.NewBox(-ch.Width/2, half, ch.Width, half))

	ctrl, err := locomotion.New(ch.Locomotion(runtime.TimeStep()), g.body, g.body, g.world,
		locomotion.WithCrouchCollider(head),
		locomotion.WithListener(g.onEvent),
	)
	if err != nil {
		g.log.Error("invalid character config, using defaults", "err", err)
		g.cfg.Character = config.DefaultRunnerConfig().Character
		ctrl, _ = locomotion.New(g.cfg.Character.Locomotion(runtime.TimeStep()), g.body, g.body, g.world,
			locomotion.WithCrouchCollider(head),
			locomotion.WithListener(g.onEvent),
		)
	}
	g.ctrl = ctrl

	g.obstacles = NewObstacleManager(runtime.Seed, g.world, obs, half)
	g.spawner = NewSpawner(g.cfg.Spawner, g.difficulty, runtime.TickRate)

	g.score = 0
	g.tickCount = 0
	g.gameOver = false
	g.paused = false
	g.stats = core.RunStats{}
	g.touchedDown = false
	g.legFrame = 0
}

func (g *Game) loadConfig() config.RunnerConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		g.log.Warn("config load failed, using defaults", "err", err)
		cfg = config.DefaultRunnerConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyRunnerPreset(&cfg, preset)
	}
	return cfg
}

// SetDifficulty overrides the package-wide preset for this instance.
// It takes effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.stats.Ticks++
	g.legFrame = (g.legFrame + 1) % legFrameLen
	dt := g.runtime.TimeStep()

	// The column is fixed, so horizontal input is ignored.
	g.ctrl.UpdateGroundContact()
	g.ctrl.Move(0, in.Has(core.ActionCrouch), in.Has(core.ActionJump))
	g.world.Step(dt)

	if g.spawner.Due(g.tickCount, g.score) {
		o := g.obstacles.Spawn()
		g.log.Debug("spawn", "tick", g.tickCount, "kind", o.Kind, "next", g.spawner.Next())
	}
	g.obstacles.Update(g.Speed() * dt)

	g.score++

	if bounds, ok := g.body.Bounds(); ok && g.obstacles.Hits(bounds) {
		g.gameOver = true
		g.spawner.Stop()
		g.log.Info("hit obstacle", "tick", g.tickCount, "score", g.score)
	}

	return core.StepResult{State: g.State()}
}

// Speed returns the current scroll speed in cells per second.
func (g *Game) Speed() float64 {
	return g.difficulty.Speed(g.cfg.Obstacles.BaseSpeed, g.score, g.tickCount)
}

func (g *Game) onEvent(e locomotion.Event) {
	switch ev := e.(type) {
	case locomotion.LandedEvent:
		if !g.touchedDown {
			g.touchedDown = true
			break
		}
		g.stats.Landings++
		g.log.Debug("landed", "tick", g.tickCount)
	case locomotion.CrouchChangedEvent:
		if ev.Crouching {
			g.stats.Crouches++
		}
		g.log.Debug("crouch", "tick", g.tickCount, "crouching", ev.Crouching)
	case locomotion.JumpedEvent:
		g.stats.Jumps++
		g.log.Debug("jumped", "tick", g.tickCount, "impulse", ev.Impulse)
	case locomotion.FlippedEvent:
		g.stats.Flips++
	}
}

// groundRow returns the screen row of the ground line.
func (g *Game) groundRow(dst *core.Screen) int {
	return dst.Height() - g.cfg.Player.GroundOffset
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	groundY := g.groundRow(dst)

	// Draw ground
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorTerrain)

	// Draw obstacles
	for _, o := range g.obstacles.Obstacles() {
		g.drawObstacle(dst, o, groundY)
	}

	g.drawRunner(dst, groundY)

	// Draw HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	if g.difficulty.IsEnabled() {
		levelText := fmt.Sprintf(" Spd: %.1f ", g.Speed())
		dst.DrawText(dst.Width()-len(levelText)-2, 0, levelText)
	}

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}

	if g.gameOver {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawRunner renders the character above the ground line.
func (g *Game) drawRunner(dst *core.Screen, groundY int) {
	pos := g.body.Position()
	x := int(pos.X)
	feetRow := groundY - 1 - int(pos.Y+1e-9)

	if g.ctrl.Crouching() {
		dst.SetColored(x, feetRow, CrouchChar, core.ColorPlayer)
		return
	}

	legs := LegsAir
	if g.ctrl.Grounded() {
		legs = LegsFrame1
		if g.legFrame >= legFrameLen/2 {
			legs = LegsFrame2
		}
	}
	dst.SetColored(x, feetRow, legs, core.ColorPlayer)
	dst.SetColored(x, feetRow-1, HeadChar, core.ColorPlayer)
}

// drawObstacle renders a single obstacle.
func (g *Game) drawObstacle(dst *core.Screen, o Obstacle, groundY int) {
	r, c := CactusChar, core.ColorGreen
	if o.Kind == KindBar {
		r, c = BarChar, core.ColorHazard
	}
	left := int(o.Box.Min.X)
	bottom := int(o.Box.Min.Y)
	for dy := 0; dy < int(o.Box.Height()); dy++ {
		for dx := 0; dx < int(o.Box.Width()); dx++ {
			dst.SetColored(left+dx, groundY-1-bottom-dy, r, c)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Stats returns locomotion counters for the current run.
func (g *Game) Stats() core.RunStats {
	return g.stats
}

// Register the game with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
