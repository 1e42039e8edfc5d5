package replay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

const sample = `
seed: 7
steps:
  - ticks: 3
    move: 1
  - ticks: 2
    jump: true
    crouch: true
  - ticks: 1
    pause: true
`

func TestParseAndFrames(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if s.Seed != 7 || s.TotalTicks() != 6 {
		t.Errorf("seed=%d ticks=%d, expected 7 and 6", s.Seed, s.TotalTicks())
	}

	frames := s.Frames()
	if len(frames) != 6 {
		t.Fatalf("frames = %d, expected 6", len(frames))
	}

	tests := []struct {
		tick   int
		move   float64
		jump   bool
		crouch bool
		pause  bool
	}{
		{0, 1, false, false, false},
		{2, 1, false, false, false},
		{3, 0, true, true, false},
		{4, 0, false, true, false},
		{5, 0, false, false, true},
	}

	for _, tt := range tests {
		f := frames[tt.tick]
		if f.Horizontal() != tt.move {
			t.Errorf("tick %d: move = %v, expected %v", tt.tick, f.Horizontal(), tt.move)
		}
		if f.Has(core.ActionJump) != tt.jump {
			t.Errorf("tick %d: jump = %v, expected %v", tt.tick, f.Has(core.ActionJump), tt.jump)
		}
		if f.Has(core.ActionCrouch) != tt.crouch {
			t.Errorf("tick %d: crouch = %v, expected %v", tt.tick, f.Has(core.ActionCrouch), tt.crouch)
		}
		if f.Has(core.ActionPause) != tt.pause {
			t.Errorf("tick %d: pause = %v, expected %v", tt.tick, f.Has(core.ActionPause), tt.pause)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no steps", "seed: 1\n"},
		{"zero ticks", "steps:\n  - ticks: 0\n"},
		{"move too large", "steps:\n  - ticks: 1\n    move: 1.5\n"},
		{"move too small", "steps:\n  - ticks: 1\n    move: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("Parse() error = %v, expected ErrInvalidScript", err)
			}
		})
	}

	if _, err := Parse([]byte("steps: 12\n")); err == nil || errors.Is(err, ErrInvalidScript) {
		t.Errorf("malformed YAML should fail to parse, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(s.Steps) != 3 {
		t.Errorf("steps = %d, expected 3", len(s.Steps))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
