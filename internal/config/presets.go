package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset names a canned pipe-gap setting.
type DifficultyPreset string

const (
	PresetEasy   DifficultyPreset = "easy"
	PresetNormal DifficultyPreset = "normal"
	PresetHard   DifficultyPreset = "hard"
)

// Presets lists the available presets in increasing difficulty.
var Presets = []DifficultyPreset{PresetEasy, PresetNormal, PresetHard}

// ParsePreset converts a string to a DifficultyPreset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetEasy, PresetNormal, PresetHard:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown preset %q (want easy, normal or hard)", ErrInvalidConfig, s)
}

// PipeGap returns the vertical gap used by the preset.
func (p DifficultyPreset) PipeGap() float64 {
	switch p {
	case PresetEasy:
		return 130
	case PresetHard:
		return 85
	default:
		return 100
	}
}

// ApplyFlappyPreset sets the pipe gap of a difficulty preset.
// A gap below the configured min_pipe_gap is left for Validate to reject.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	cfg.Obstacles.PipeGap = preset.PipeGap()
}
