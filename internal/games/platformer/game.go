// Package platformer implements a side-scrolling platformer driven by the
// locomotion controller. The player runs, jumps and crouches through an ASCII
// level collecting coins on the way to the flag.
package platformer

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/locomotion"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// How far below the level's bottom edge the run ends.
const fallMargin = 2.0

// Ticks a landing dust puff stays on screen.
const dustTicks = 6

// Empty cells kept around the level inside the collision space.
const worldMargin = 8

// Game implements the Platformer game logic.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.PlatformerConfig
	fixed   *config.PlatformerConfig // Set by NewWithConfig; skips loading
	preset  config.DifficultyPreset
	level   *Level
	log     *log.Logger

	world *physics.World
	body  *physics.Body
	head  *physics.Collider
	ctrl  *locomotion.Controller

	coinIDs   []core.ColliderID // Parallel to level.Coins
	coinsLeft int
	score     int
	ticks     int
	gameOver  bool
	won       bool
	paused    bool
	stats     core.RunStats

	touchedDown bool      // The spawn touchdown has happened
	dust        int       // Remaining ticks of landing dust
	dustAt      core.Vec2 // Where the last landing happened
	camX        int
	camY        int
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	forceAirControl  bool
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

// SetAirControl forces air control on regardless of config and preset.
func SetAirControl(on bool) {
	forceAirControl = on
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a new Platformer game instance.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(cfg config.PlatformerConfig) *Game {
	return &Game{fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "platformer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.With("game", g.ID())
	g.cfg = g.loadConfig()

	lvl, err := ParseLevel(g.cfg.Level.Rows)
	if err != nil {
		g.log.Error("invalid level, using fallback", "level", g.cfg.Level.Name, "err", err)
		g.cfg.Level = config.DefaultPlatformerConfig().Level
		lvl, _ = ParseLevel(g.cfg.Level.Rows)
	}
	g.level = lvl

	g.buildWorld()

	g.score = 0
	g.ticks = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.stats = core.RunStats{}
	g.touchedDown = false
	g.dust = 0

	g.log.Debug("reset", "level", g.cfg.Level.Name, "coins", g.coinsLeft, "spawn", g.body.Position())
}

func (g *Game) loadConfig() config.PlatformerConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		g.log.Warn("config load failed, using defaults", "err", err)
		cfg = config.DefaultPlatformerConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPlatformerPreset(&cfg, preset)
	}
	if forceAirControl {
		cfg.Character.AirControl = true
	}
	return cfg
}

// SetDifficulty overrides the package-wide preset for this instance.
// It takes effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// buildWorld creates the physics world, the character body and its
// controller from the parsed level.
func (g *Game) buildWorld() {
	world := g.cfg.Physics.World()
	world.Bounds = core.NewBox(-worldMargin, -worldMargin,
		float64(g.level.Width)+2*worldMargin, float64(g.level.Height)+2*worldMargin)
	g.world = physics.NewWorld(world)

	for _, c := range g.level.Solids {
		g.world.AddStatic(g.level.CellBox(c), core.LayerGround)
	}
	for _, c := range g.level.Ceilings {
		g.world.AddStatic(g.level.CellBox(c), core.LayerGround)
	}
	g.coinIDs = g.coinIDs[:0]
	for _, c := range g.level.Coins {
		g.coinIDs = append(g.coinIDs, g.world.AddStatic(g.level.CellBox(c), core.LayerPickup))
	}
	for _, c := range g.level.Flags {
		g.world.AddStatic(g.level.CellBox(c), core.LayerGoal)
	}
	g.coinsLeft = len(g.level.Coins)

	ch := g.cfg.Character
	g.body = g.world.AddBody(g.level.SpawnPoint(), ch.Mass)
	half := ch.Height / 2
	g.body.AddCollider(core.NewBox(-ch.Width/2, 0, ch.Width, half))
	g.head = g.body.AddCollider(core.NewBox(-ch.Width/2, half, ch.Width, half))

	ctrl, err := locomotion.New(ch.Locomotion(g.runtime.TimeStep()), g.body, g.body, g.world,
		locomotion.WithCrouchCollider(g.head),
		locomotion.WithListener(g.onEvent),
	)
	if err != nil {
		g.log.Error("invalid character config, using defaults", "err", err)
		g.cfg.Character = config.DefaultPlatformerConfig().Character
		ctrl, _ = locomotion.New(g.cfg.Character.Locomotion(g.runtime.TimeStep()), g.body, g.body, g.world,
			locomotion.WithCrouchCollider(g.head),
			locomotion.WithListener(g.onEvent),
		)
	}
	g.ctrl = ctrl
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

	g.ticks++
	g.stats.Ticks++
	if g.dust > 0 {
		g.dust--
	}

	g.ctrl.UpdateGroundContact()
	g.ctrl.Move(in.Horizontal(), in.Has(core.ActionCrouch), in.Has(core.ActionJump))
	g.world.Step(g.runtime.TimeStep())

	g.collectCoins()
	g.checkFlag()
	g.checkFall()

	return core.StepResult{State: g.State()}
}

func (g *Game) collectCoins() {
	bounds, ok := g.body.Bounds()
	if !ok {
		return
	}
	for _, id := range g.world.OverlapBox(bounds, core.MaskOf(core.LayerPickup)) {
		g.world.RemoveStatic(id)
		g.coinsLeft--
		g.score += g.cfg.Scoring.Coin
		g.log.Debug("coin", "tick", g.ticks, "score", g.score, "left", g.coinsLeft)
	}
}

func (g *Game) checkFlag() {
	bounds, ok := g.body.Bounds()
	if !ok || g.gameOver {
		return
	}
	if len(g.world.OverlapBox(bounds, core.MaskOf(core.LayerGoal))) == 0 {
		return
	}
	seconds := int(float64(g.ticks) * g.runtime.TimeStep())
	bonus := max(0, g.cfg.Scoring.ParSeconds-seconds)
	g.score += bonus
	g.won = true
	g.gameOver = true
	g.log.Info("level complete", "tick", g.ticks, "bonus", bonus, "score", g.score)
}

func (g *Game) checkFall() {
	if g.gameOver || g.body.Position().Y > -fallMargin {
		return
	}
	g.gameOver = true
	g.log.Info("fell out of the level", "tick", g.ticks, "score", g.score)
}

// onEvent counts controller events and logs them.
func (g *Game) onEvent(e locomotion.Event) {
	switch ev := e.(type) {
	case locomotion.LandedEvent:
		// The first contact after spawning is the character settling.
		if !g.touchedDown {
			g.touchedDown = true
			break
		}
		g.stats.Landings++
		g.dust = dustTicks
		g.dustAt = g.body.Position()
		g.log.Debug("landed", "tick", g.ticks, "x", g.dustAt.X)
	case locomotion.CrouchChangedEvent:
		if ev.Crouching {
			g.stats.Crouches++
		}
		g.log.Debug("crouch", "tick", g.ticks, "crouching", ev.Crouching)
	case locomotion.JumpedEvent:
		g.stats.Jumps++
		g.log.Debug("jumped", "tick", g.ticks, "impulse", ev.Impulse)
	case locomotion.FlippedEvent:
		g.stats.Flips++
		g.log.Debug("flipped", "tick", g.ticks, "facing_right", ev.FacingRight)
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

// Won reports whether the flag was reached.
func (g *Game) Won() bool {
	return g.won
}

// Controller exposes the character controller for inspection.
func (g *Game) Controller() *locomotion.Controller {
	return g.ctrl
}

// Body exposes the character body for inspection.
func (g *Game) Body() *physics.Body {
	return g.body
}

// Register the game with the registry
func init() {
	registry.Register("platformer", func() registry.Game {
		return New()
	})
}
