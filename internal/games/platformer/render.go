package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '█'
	CeilingChar  = '▀'
	CoinChar     = '$'
	FlagChar     = '⚑'
	HeadRight    = '◗'
	HeadLeft     = '◖'
	LegsGrounded = 'Λ'
	LegsAirborne = 'ʌ'
	CrouchRight  = '▶'
	CrouchLeft   = '◀'
	DustChar     = '·'
)

// updateCamera keeps the character centered, clamped to the level edges.
// Row 0 of the screen is reserved for the HUD.
func (g *Game) updateCamera(screenW, screenH int) {
	pos := g.body.Position()
	viewH := screenH - 1

	g.camX = core.Clamp(int(pos.X)-screenW/2, 0, max(0, g.level.Width-screenW))
	g.camY = core.Clamp(int(pos.Y)-viewH/2, 0, max(0, g.level.Height-viewH))
}

// toScreen converts a world cell (y up) to a screen cell (y down).
func (g *Game) toScreen(dst *core.Screen, cx, cy int) (int, int) {
	return cx - g.camX, dst.Height() - 1 - (cy - g.camY)
}

func (g *Game) drawCell(dst *core.Screen, c Cell, r rune, col core.Color) {
	box := g.level.CellBox(c)
	x, y := g.toScreen(dst, int(box.Min.X), int(box.Min.Y))
	if y < 1 {
		return
	}
	dst.SetColored(x, y, r, col)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.updateCamera(dst.Width(), dst.Height())

	for _, c := range g.level.Solids {
		g.drawCell(dst, c, GroundChar, core.ColorGreen)
	}
	for _, c := range g.level.Ceilings {
		g.drawCell(dst, c, CeilingChar, core.ColorTerrain)
	}
	for i, c := range g.level.Coins {
		if _, ok := g.world.StaticBox(g.coinIDs[i]); ok {
			g.drawCell(dst, c, CoinChar, core.ColorPickup)
		}
	}
	for _, c := range g.level.Flags {
		g.drawCell(dst, c, FlagChar, core.ColorGoal)
	}

	g.drawDust(dst)
	g.drawCharacter(dst)

	// Draw HUD
	seconds := int(float64(g.ticks) * g.runtime.TimeStep())
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))
	status := fmt.Sprintf(" Coins: %d  Time: %ds ", g.coinsLeft, seconds)
	dst.DrawText(dst.Width()-len(status)-2, 0, status)

	switch {
	case g.paused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	case g.won:
		dst.DrawMessageBox("LEVEL COMPLETE", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.gameOver:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawCharacter renders the sprite, mirrored by facing and swapped when
// crouching.
func (g *Game) drawCharacter(dst *core.Screen) {
	pos := g.body.Position()
	x, y := g.toScreen(dst, int(math.Floor(pos.X)), int(math.Floor(pos.Y+1e-9)))
	right := g.ctrl.FacingRight()

	if g.ctrl.Crouching() {
		r := CrouchRight
		if !right {
			r = CrouchLeft
		}
		dst.SetColored(x, y, r, core.ColorPlayer)
		return
	}

	head := HeadRight
	if !right {
		head = HeadLeft
	}
	legs := LegsGrounded
	if !g.ctrl.Grounded() {
		legs = LegsAirborne
	}
	dst.SetColored(x, y, legs, core.ColorPlayer)
	if y-1 >= 1 {
		dst.SetColored(x, y-1, head, core.ColorPlayer)
	}
}

func (g *Game) drawDust(dst *core.Screen) {
	if g.dust == 0 {
		return
	}
	x, y := g.toScreen(dst, int(math.Floor(g.dustAt.X)), int(math.Floor(g.dustAt.Y+1e-9)))
	dst.SetColored(x-1, y, DustChar, core.ColorEffect)
	dst.SetColored(x+1, y, DustChar, core.ColorEffect)
}
