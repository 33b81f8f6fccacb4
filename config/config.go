package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SimConfig contains the tunables of the combat simulation. None of these
// change the meaning of a fighter definition; they only set up a match.
type SimConfig struct {
	// Fixed step rate used by the real-time loop (steps per second).
	TickRate int `env:"FIGHTCORE_TICK_RATE"`

	// Capacity of each fighter's input ring.
	InputBuffer int `env:"FIGHTCORE_INPUT_BUFFER"`

	// Health given to a fighter whose definition does not set one.
	DefaultHealth uint32 `env:"FIGHTCORE_DEFAULT_HEALTH"`

	// Horizontal distance between the two spawn points.
	SpawnDistance float64 `env:"FIGHTCORE_SPAWN_DISTANCE"`
	SpawnY        float64

	// Broadphase grid cell size used by the collision resolver.
	CellSize int `env:"FIGHTCORE_CELL_SIZE"`
}

// ReplayConfig controls where replays are written.
type ReplayConfig struct {
	AppName string `env:"FIGHTCORE_REPLAY_APP"`
}

// Global configuration instances
var Sim SimConfig
var Replay ReplayConfig

func init() {
	Sim = SimConfig{
		TickRate:      60,
		InputBuffer:   10,
		DefaultHealth: 1000,
		SpawnDistance: 70,
		SpawnY:        0,
		CellSize:      16,
	}

	Replay = ReplayConfig{
		AppName: "fightcore",
	}
}

// LoadEnv overrides the defaults set in init with FIGHTCORE_* environment
// variables. Unset variables keep their default.
func LoadEnv() error {
	if err := env.Parse(&Sim); err != nil {
		return fmt.Errorf("parse sim config: %w", err)
	}
	if err := env.Parse(&Replay); err != nil {
		return fmt.Errorf("parse replay config: %w", err)
	}
	if Sim.TickRate < 1 {
		return fmt.Errorf("FIGHTCORE_TICK_RATE must be positive, got %d", Sim.TickRate)
	}
	if Sim.InputBuffer < 1 {
		return fmt.Errorf("FIGHTCORE_INPUT_BUFFER must be positive, got %d", Sim.InputBuffer)
	}
	if Sim.CellSize < 1 {
		return fmt.Errorf("FIGHTCORE_CELL_SIZE must be positive, got %d", Sim.CellSize)
	}
	return nil
}
