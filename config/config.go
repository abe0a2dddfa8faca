// Package config loads the runtime settings of a pathfinding run from yaml:
// which scenario to build, the board dimensions and seed, the search
// endpoints, the replay pacing, the serving address, and the optional plot
// output.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/g2mo/A-star-pathfinding/grid_world"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// The known scenario kinds.
const (
	KindMaze2D = "maze2d"
	KindMaze3D = "maze3d"
	KindSample = "sample"
)

// OuterConfig is the envelope of every config file: a scenario kind and an
// arbitrary definition whose schema the kind selects.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Config carries every tunable of a run. Fields omitted from the file
// receive the defaults of the chosen kind.
//
// Note that the definition block reaches this struct through viper, which
// lowercases keys, and is then matched by yaml against lowercased field
// names. Keys in the file may therefore be written in any case.
type Config struct {
	Kind string `yaml:"-"`

	Maze      MazeConfig
	Search    SearchConfig
	Animation AnimationConfig
	Server    ServerConfig
	Output    OutputConfig
}

// MazeConfig sizes and seeds the generated board. Depth only applies to the
// 3d scenario.
type MazeConfig struct {
	Width  int
	Height int
	Depth  int
	// Seed drives the maze generator; zero or below draws a fresh seed
	// per run.
	Seed int64
	// ExtraPaths is the share of interior cells knocked open after
	// generation. Zero means the default share; set below zero to
	// disable.
	ExtraPaths float64
}

// SearchConfig holds the endpoints. A nil start means the origin and a nil
// goal means the cell farthest from it.
type SearchConfig struct {
	Start []int
	Goal  []int
}

// AnimationConfig paces the browser replay. Learning mode slows the replay
// down and writes f scores into the frontier cells.
type AnimationConfig struct {
	Enabled            *bool
	IntervalMs         int
	LearningMode       bool
	LearningIntervalMs int
}

type ServerConfig struct {
	Addr string
}

// OutputConfig selects artifacts written after the search. An empty
// PlotPath writes no plot.
type OutputConfig struct {
	PlotPath string
}

// FromYaml reads and resolves a config file.
func FromYaml(ymlPath string) (*Config, error) {
	return FromYamlKind(ymlPath, "")
}

// FromYamlKind reads a config file but forces the passed scenario kind when
// it is non-empty, so a flag can override the file.
func FromYamlKind(ymlPath, kind string) (cfg *Config, err error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(ymlPath))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(ymlPath))
	if err = vp.ReadInConfig(); err != nil {
		return
	}

	outer := &OuterConfig{}
	if err = vp.Unmarshal(outer); err != nil {
		return
	}
	if kind != "" {
		outer.Kind = kind
	}

	// Re-marshal the def block and unmarshal it into the typed config.
	// This two pass approach lets the file carry arbitrary definitions
	// while the kind picks their meaning.
	var def []byte
	if def, err = yaml.Marshal(outer.Def); err != nil {
		return
	}

	cfg = &Config{Kind: outer.Kind}
	if err = yaml.Unmarshal(def, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return
}

func (cfg *Config) applyDefaults() {
	if cfg.Kind == "" {
		cfg.Kind = KindMaze2D
	}

	if cfg.Kind == KindMaze3D {
		if cfg.Maze.Width == 0 {
			cfg.Maze.Width = 8
		}
		if cfg.Maze.Height == 0 {
			cfg.Maze.Height = 8
		}
		if cfg.Maze.Depth == 0 {
			cfg.Maze.Depth = 8
		}
		if cfg.Animation.IntervalMs == 0 {
			cfg.Animation.IntervalMs = 10
		}
		if cfg.Animation.LearningIntervalMs == 0 {
			cfg.Animation.LearningIntervalMs = 500
		}
	} else {
		if cfg.Maze.Width == 0 {
			cfg.Maze.Width = 25
		}
		if cfg.Maze.Height == 0 {
			cfg.Maze.Height = 15
		}
		if cfg.Animation.IntervalMs == 0 {
			cfg.Animation.IntervalMs = 50
		}
		if cfg.Animation.LearningIntervalMs == 0 {
			cfg.Animation.LearningIntervalMs = 250
		}
	}

	if cfg.Maze.ExtraPaths == 0 {
		cfg.Maze.ExtraPaths = 0.25
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}

// Validate rejects configs no scenario could run.
func (cfg *Config) Validate() error {
	switch cfg.Kind {
	case KindMaze2D, KindSample:
		if cfg.Maze.Width < 2 || cfg.Maze.Height < 2 {
			return fmt.Errorf("a 2d maze requires width and height of at least 2, got %dx%d",
				cfg.Maze.Width, cfg.Maze.Height)
		}
	case KindMaze3D:
		if cfg.Maze.Width < 4 || cfg.Maze.Height < 4 || cfg.Maze.Depth < 4 {
			return fmt.Errorf("a 3d maze requires every axis to be at least 4, got %dx%dx%d",
				cfg.Maze.Width, cfg.Maze.Height, cfg.Maze.Depth)
		}
	default:
		return fmt.Errorf("unknown scenario kind %q", cfg.Kind)
	}

	if cfg.Animation.IntervalMs < 0 || cfg.Animation.LearningIntervalMs < 0 {
		return fmt.Errorf("animation intervals must be positive")
	}
	return nil
}

// Animate reports whether the replay server should run; it defaults to true
// when the file says nothing.
func (cfg *Config) Animate() bool {
	return cfg.Animation.Enabled == nil || *cfg.Animation.Enabled
}

// FrameInterval returns the replay pacing for the requested mode.
func (cfg *Config) FrameInterval(learning bool) time.Duration {
	ms := cfg.Animation.IntervalMs
	if learning {
		ms = cfg.Animation.LearningIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (cfg *Config) dims() int {
	if cfg.Kind == KindMaze3D {
		return 3
	}
	return 2
}

// StartCoord resolves the configured start, defaulting to the origin.
func (cfg *Config) StartCoord() (grid_world.Coord, error) {
	if len(cfg.Search.Start) == 0 {
		if cfg.dims() == 3 {
			return grid_world.XYZ(0, 0, 0), nil
		}
		return grid_world.XY(0, 0), nil
	}
	return cfg.coord(cfg.Search.Start, "start")
}

// GoalCoord resolves the configured goal against the board extent,
// defaulting to the cell farthest from the origin.
func (cfg *Config) GoalCoord(extent []int) (grid_world.Coord, error) {
	if len(cfg.Search.Goal) == 0 {
		far := make([]int, len(extent))
		for i, n := range extent {
			far[i] = n - 1
		}
		return grid_world.FromSlice(far)
	}
	return cfg.coord(cfg.Search.Goal, "goal")
}

func (cfg *Config) coord(vals []int, role string) (grid_world.Coord, error) {
	c, err := grid_world.FromSlice(vals)
	if err != nil {
		return c, fmt.Errorf("%s: %w", role, err)
	}
	if c.Arity() != cfg.dims() {
		return c, fmt.Errorf("%s %v does not fit a %dd scenario", role, vals, cfg.dims())
	}
	return c, nil
}
