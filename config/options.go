// Package config implements the Options value object the game host
// hands the core engine, as a YAML file a caller can load instead of
// constructing the struct literally.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/markassa/gochess/board"
)

const (
	minDepth = 2
	maxDepth = 20
)

// Options mirrors the UI-collaborator value object.
type Options struct {
	Board       board.Cells `yaml:"board"`
	FirstColour string      `yaml:"firstColour"`
	HumanFirst  bool        `yaml:"humanFirst"`
	SimpleEval  bool        `yaml:"simpleEval"`
	Depth       int         `yaml:"depth"`
}

// Load reads and validates an Options file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Save writes opts to path as YAML.
func (o Options) Save(path string) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate clamps Depth to [2,20], rejects the board[0][0]=='x'
// marker with ErrBoardRejected, and checks FirstColour names a real
// color.
func (o *Options) Validate() error {
	if o.Board[0][0] == 'x' {
		return ErrBoardRejected
	}
	switch o.FirstColour {
	case "White", "Black":
	default:
		return fmt.Errorf("config: firstColour must be White or Black, got %q", o.FirstColour)
	}
	if o.Depth < minDepth {
		o.Depth = minDepth
	}
	if o.Depth > maxDepth {
		o.Depth = maxDepth
	}
	return nil
}

// Color returns the board.Color corresponding to FirstColour.
func (o Options) Color() board.Color {
	if o.FirstColour == "Black" {
		return board.Black
	}
	return board.White
}

// ErrBoardRejected is returned by Validate when the UI collaborator's
// board[0][0]=='x' reject marker is set.
var ErrBoardRejected = fmt.Errorf("config: board rejected")
