package platformer

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Level map characters.
const (
	TileGround  = '#'
	TileCeiling = '='
	TileSpawn   = '@'
	TileCoin    = '*'
	TileFlag    = 'F'
	TileEmpty   = ' '
)

var (
	ErrEmptyLevel = errors.New("level has no rows")
	ErrNoSpawn    = errors.New("level has no spawn")
)

// Cell is a level grid position. Row 0 is the top of the map.
type Cell struct {
	Col, Row int
}

// Level is a parsed ASCII map.
type Level struct {
	Width, Height int
	Spawn         Cell
	Solids        []Cell
	Ceilings      []Cell
	Coins         []Cell
	Flags         []Cell
}

// ParseLevel reads an ASCII map, top row first. Short rows are padded with
// empty cells and unknown characters are treated as empty.
func ParseLevel(rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyLevel
	}

	lvl := &Level{Height: len(rows)}
	spawns := 0
	for r, row := range rows {
		cells := []rune(row)
		lvl.Width = max(lvl.Width, len(cells))
		for c, ch := range cells {
			cell := Cell{Col: c, Row: r}
			switch ch {
			case TileGround:
				lvl.Solids = append(lvl.Solids, cell)
			case TileCeiling:
				lvl.Ceilings = append(lvl.Ceilings, cell)
			case TileSpawn:
				lvl.Spawn = cell
				spawns++
			case TileCoin:
				lvl.Coins = append(lvl.Coins, cell)
			case TileFlag:
				lvl.Flags = append(lvl.Flags, cell)
			}
		}
	}

	switch {
	case lvl.Width == 0:
		return nil, ErrEmptyLevel
	case spawns == 0:
		return nil, ErrNoSpawn
	case spawns > 1:
		return nil, fmt.Errorf("level has %d spawns, expected one", spawns)
	}
	return lvl, nil
}

// CellBox returns the world box of a cell. World Y grows upward and the
// bottom row of the map sits on y=0.
func (l *Level) CellBox(c Cell) core.Box {
	return core.NewBox(float64(c.Col), float64(l.Height-1-c.Row), 1, 1)
}

// SpawnPoint returns the world position of the character's feet at spawn.
func (l *Level) SpawnPoint() core.Vec2 {
	b := l.CellBox(l.Spawn)
	return core.V2(b.Min.X+0.5, b.Min.Y)
}
