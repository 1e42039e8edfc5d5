package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// fakeGame ends after a fixed number of ticks and records what it saw.
type fakeGame struct {
	endAfter int
	ticks    int
	resets   int
	preset   string
	lastIn   core.InputFrame
	state    core.GameState
}

func (g *fakeGame) ID() string    { return "tui-fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if !g.state.Paused && !g.state.GameOver {
		g.ticks++
		g.state.Score = g.ticks * 10
		g.state.GameOver = g.endAfter > 0 && g.ticks >= g.endAfter
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Stats() core.RunStats    { return core.RunStats{Ticks: g.ticks, Jumps: 1} }
func (g *fakeGame) SetDifficulty(p string)  { g.preset = p }

func init() {
	registry.Register("tui-fake", func() registry.Game { return &fakeGame{endAfter: 3} })
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func TestModelReservesFooter(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig())
	if m.screen.Height() != 11 || m.config.ScreenH != 11 {
		t.Errorf("game height = %d/%d, expected 11", m.screen.Height(), m.config.ScreenH)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	if m.screen.Width() != 50 || m.screen.Height() != 19 {
		t.Errorf("after resize %dx%d, expected 50x19", m.screen.Width(), m.screen.Height())
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{endAfter: 10}
	m := NewModel(g, nil, testConfig())
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	m = update(t, m, TickMsg{})

	if g.resets != 0 || g.ticks != 3 {
		t.Errorf("resets=%d ticks=%d, expected the run to continue through a resize", g.resets, g.ticks)
	}
	if m.config.ScreenW != 60 || m.config.ScreenH != 29 {
		t.Errorf("config %dx%d, expected 60x29", m.config.ScreenW, m.config.ScreenH)
	}
}

func TestModelHeldKeyReachesGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if g.lastIn.Horizontal() != 1 {
		t.Errorf("held right should still be active on the second tick, got %v", g.lastIn.Horizontal())
	}
}

func TestModelRecordsRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	g := &fakeGame{endAfter: 2}
	m := NewModel(g, store, testConfig())
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	scores, _ := store.TopScores(g.ID(), 10)
	if len(scores) != 1 || scores[0].Score != 20 {
		t.Errorf("scores = %+v, expected a single 20", scores)
	}
	runs, _ := store.RecentRuns(g.ID(), 10)
	if len(runs) != 1 || runs[0].Stats.Ticks != 2 {
		t.Errorf("runs = %+v, expected one run of 2 ticks", runs)
	}

	// Restart only counts once the game is over.
	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{})
	if g.resets != 1 || m.saved {
		t.Errorf("restart: resets=%d saved=%v", g.resets, m.saved)
	}
}

func TestModelBack(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())

	m = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = update(t, m, runeKey("p"))
	m = update(t, m, TickMsg{})
	_, cmd := m.Update(runeKey("b"))
	if cmd == nil {
		t.Error("standalone back should quit the program")
	}

	m.embedded = true
	m = update(t, m, runeKey("b"))
	if !m.BackToMenu() || m.View() != "" {
		t.Error("embedded back should return to the menu")
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty = %q, expected easy", m.Difficulty())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("difficulty = %q, expected hard after wrapping", m.Difficulty())
	}

	if !m.Result().Quit {
		t.Error("menu without a selection should report quit")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := next.(MenuModel).Result()
	if res.GameID == "" || res.Difficulty != config.DifficultyHard {
		t.Errorf("result = %+v", res)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, testConfig(), nil)

	// Move the cursor onto the fake game.
	for i, item := range s.menu.items {
		if item.GameID == "tui-fake" {
			s.menu.cursor = i
		}
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRight})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.game == nil {
		t.Fatal("selecting a game should start it")
	}
	fake, ok := s.game.game.(*fakeGame)
	if !ok {
		t.Fatalf("game = %T, expected the fake", s.game.game)
	}
	if fake.preset != string(config.DifficultyEasy) {
		t.Errorf("preset = %q, expected easy", fake.preset)
	}

	for i := 0; i < 4; i++ {
		next, _ = s.Update(TickMsg{})
		s = next.(SessionModel)
	}
	next, _ = s.Update(runeKey("b"))
	s = next.(SessionModel)
	if s.game != nil || s.quitting {
		t.Error("back after game over should return to the menu")
	}

	_, cmd := s.Update(runeKey("q"))
	if cmd == nil {
		t.Error("quitting from the menu should end the session")
	}
}
