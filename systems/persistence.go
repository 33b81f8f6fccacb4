package systems

import (
	"errors"
	"fmt"
	"log"

	cfg "github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/quasilyte/gdata"
)

// Replay is a recorded match: the fighters that took part, the inputs of
// every step and the snapshot the match ended on. Replaying the inputs from a
// fresh match must reproduce FinalSnapshot byte for byte.
type Replay struct {
	Fighters      [2]string                `codec:"fighters"`
	Inputs        [][2]netconfig.InputMask `codec:"inputs"`
	FinalSnapshot []byte                   `codec:"final"`
}

// ErrReplayNotFound is returned by LoadReplay for names never saved.
var ErrReplayNotFound = errors.New("replay not found")

// ItemStore is the subset of gdata.Manager the replay store relies on.
type ItemStore interface {
	SaveItem(itemKey string, data []byte) error
	LoadItem(itemKey string) ([]byte, error)
}

// ReplayStore keeps replays in the user's application data directory.
type ReplayStore struct {
	items ItemStore
}

// OpenReplayStore opens the gdata storage named by cfg.Replay.AppName.
func OpenReplayStore() (*ReplayStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Replay.AppName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize replay storage: %v", err)
		return nil, err
	}
	return NewReplayStore(m), nil
}

func NewReplayStore(items ItemStore) *ReplayStore {
	return &ReplayStore{items: items}
}

func replayKey(name string) string {
	return "replay_" + name
}

// SaveReplay writes r under name, replacing any previous replay of that name.
func (s *ReplayStore) SaveReplay(name string, r Replay) error {
	if name == "" {
		return errors.New("replay name is empty")
	}

	var data []byte
	if err := codec.NewEncoderBytes(&data, snapshotHandle).Encode(r); err != nil {
		log.Printf("Warning: Could not serialize replay %q: %v", name, err)
		return fmt.Errorf("encode replay %q: %w", name, err)
	}

	if err := s.items.SaveItem(replayKey(name), data); err != nil {
		log.Printf("Warning: Could not save replay %q: %v", name, err)
		return fmt.Errorf("save replay %q: %w", name, err)
	}
	return nil
}

// LoadReplay reads the replay stored under name.
func (s *ReplayStore) LoadReplay(name string) (Replay, error) {
	data, err := s.items.LoadItem(replayKey(name))
	if err != nil {
		log.Printf("Warning: Could not load replay %q: %v", name, err)
		return Replay{}, fmt.Errorf("load replay %q: %w", name, err)
	}
	if data == nil {
		return Replay{}, fmt.Errorf("%w: %q", ErrReplayNotFound, name)
	}

	var r Replay
	if err := codec.NewDecoderBytes(data, snapshotHandle).Decode(&r); err != nil {
		log.Printf("Warning: Could not parse replay %q: %v", name, err)
		return Replay{}, fmt.Errorf("decode replay %q: %w", name, err)
	}
	return r, nil
}
