// Package replay loads scripted input sequences used to drive games
// headlessly, e.g. for the sim command and regression tests.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is wrapped by every script validation failure.
var ErrInvalidScript = errors.New("invalid replay script")

// Step holds one input for a number of consecutive ticks.
type Step struct {
	Ticks  int     `yaml:"ticks"`
	Move   float64 `yaml:"move"`
	Crouch bool    `yaml:"crouch"`
	Jump   bool    `yaml:"jump"` // Pressed on the first tick only
	Pause  bool    `yaml:"pause"`
}

// Script is a seeded input recording.
type Script struct {
	Seed  int64  `yaml:"seed"`
	Steps []Step `yaml:"steps"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: failed to read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks tick counts and move ranges.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return fmt.Errorf("%w: step %d: ticks must be > 0, got %d", ErrInvalidScript, i, st.Ticks)
		}
		if !(st.Move >= -1 && st.Move <= 1) {
			return fmt.Errorf("%w: step %d: move must be in [-1, 1], got %v", ErrInvalidScript, i, st.Move)
		}
	}
	return nil
}

// TotalTicks returns the number of frames the script expands to.
func (s *Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Frames expands the script into one input frame per tick.
func (s *Script) Frames() []core.InputFrame {
	frames := make([]core.InputFrame, 0, s.TotalTicks())
	for _, st := range s.Steps {
		for t := 0; t < st.Ticks; t++ {
			f := core.NewInputFrame()
			f.Move = st.Move
			if st.Crouch {
				f.Set(core.ActionCrouch)
			}
			if t == 0 && st.Jump {
				f.Set(core.ActionJump)
			}
			if t == 0 && st.Pause {
				f.Set(core.ActionPause)
			}
			frames = append(frames, f)
		}
	}
	return frames
}
