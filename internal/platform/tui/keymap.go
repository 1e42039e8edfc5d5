package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DefaultHoldTicks is how long a directional or crouch key stays active after
// a press. Terminals report key repeats, not key releases, so a held key is
// one that was pressed recently.
const DefaultHoldTicks = 15

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Crouch     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Crouch, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Crouch},
		{k.Pause, k.Restart, k.Back, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space/↑", "jump"),
		),
		Crouch: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "crouch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu (paused/over)"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Crouch):
		return core.ActionCrouch
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// HeldInput turns key presses into per-tick input frames. Left, Right and
// Crouch stay active for a hold window after each press; other actions fire
// on the next frame only.
type HeldInput struct {
	window int
	held   map[core.Action]int // Remaining ticks per held action
	pulse  core.InputFrame
}

// NewHeldInput creates an input tracker. window <= 0 uses DefaultHoldTicks.
func NewHeldInput(window int) *HeldInput {
	if window <= 0 {
		window = DefaultHoldTicks
	}
	return &HeldInput{
		window: window,
		held:   make(map[core.Action]int),
		pulse:  core.NewInputFrame(),
	}
}

func isHoldable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionCrouch
}

// Press records a key press.
func (h *HeldInput) Press(a core.Action) {
	switch {
	case a == core.ActionNone:
		return
	case isHoldable(a):
		h.held[a] = h.window
		// Pressing one direction releases the other.
		switch a {
		case core.ActionLeft:
			delete(h.held, core.ActionRight)
		case core.ActionRight:
			delete(h.held, core.ActionLeft)
		}
	default:
		h.pulse.Set(a)
	}
}

// Frame returns the input for the next tick and ages the held keys.
func (h *HeldInput) Frame() core.InputFrame {
	frame := h.pulse.Clone()
	h.pulse.Clear()

	for a, left := range h.held {
		frame.Set(a)
		if left <= 1 {
			delete(h.held, a)
		} else {
			h.held[a] = left - 1
		}
	}
	return frame
}

// Reset drops all held and pending input.
func (h *HeldInput) Reset() {
	clear(h.held)
	h.pulse.Clear()
}
