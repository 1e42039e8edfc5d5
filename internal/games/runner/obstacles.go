package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Kind distinguishes obstacles by how they are avoided.
type Kind int

const (
	KindCactus Kind = iota // Jump over it
	KindBar                // Crouch under it
)

// Obstacle is a moving hazard registered in the physics world.
type Obstacle struct {
	ID   core.ColliderID
	Kind Kind
	Box  core.Box
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	obstacles []Obstacle
	rng       *rand.Rand
	world     *physics.World
	cfg       config.RunnerObstacles
	barBottom float64 // Crouched head height; bars start here
}

// NewObstacleManager creates an obstacle manager with the given RNG seed.
// Bars are placed so a character of crouchHeight fits underneath.
func NewObstacleManager(seed int64, world *physics.World, cfg config.RunnerObstacles, crouchHeight float64) *ObstacleManager {
	return &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rand.New(rand.NewSource(seed)),
		world:     world,
		cfg:       cfg,
		barBottom: crouchHeight,
	}
}

// Spawn creates a random obstacle at the spawn column.
func (om *ObstacleManager) Spawn() Obstacle {
	kind := KindCactus
	if om.rng.Float64() < om.cfg.BarChance {
		kind = KindBar
	}
	return om.SpawnKind(kind)
}

// SpawnKind creates an obstacle of the given kind at the spawn column.
func (om *ObstacleManager) SpawnKind(kind Kind) Obstacle {
	var box core.Box
	switch kind {
	case KindBar:
		box = core.NewBox(om.cfg.SpawnX, om.barBottom, float64(max(1, om.cfg.BarWidth)), 1)
	default:
		width := randRange(om.rng, om.cfg.MinWidth, om.cfg.MaxWidth)
		height := randRange(om.rng, om.cfg.MinHeight, om.cfg.MaxHeight)
		box = core.NewBox(om.cfg.SpawnX, 0, float64(width), float64(height))
	}

	o := Obstacle{
		ID:   om.world.AddStatic(box, core.LayerObstacle),
		Kind: kind,
		Box:  box,
	}
	om.obstacles = append(om.obstacles, o)
	return o
}

// Update moves obstacles left by dx and removes those past the left bound.
func (om *ObstacleManager) Update(dx float64) {
	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		o.Box = o.Box.Translate(core.V2(-dx, 0))
		if o.Box.Max.X < om.cfg.LeftBound {
			om.world.RemoveStatic(o.ID)
			continue
		}
		om.world.MoveStatic(o.ID, o.Box)
		kept = append(kept, o)
	}
	om.obstacles = kept
}

// Obstacles returns the live obstacles, oldest first.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// Hits reports whether box touches any obstacle.
func (om *ObstacleManager) Hits(box core.Box) bool {
	return len(om.world.OverlapBox(box, core.MaskOf(core.LayerObstacle))) > 0
}

func randRange(rng *rand.Rand, lo, hi int) int {
	lo = max(1, lo)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
