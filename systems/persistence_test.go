package systems

import (
	"errors"
	"reflect"
	"testing"

	"github.com/automoto/fightcore/shared/netconfig"
)

type memoryItems map[string][]byte

func (m memoryItems) SaveItem(key string, data []byte) error {
	m[key] = append([]byte(nil), data...)
	return nil
}

func (m memoryItems) LoadItem(key string) ([]byte, error) {
	return m[key], nil
}

type failingItems struct{}

func (failingItems) SaveItem(string, []byte) error   { return errors.New("disk full") }
func (failingItems) LoadItem(string) ([]byte, error) { return nil, errors.New("unreadable") }

func TestReplayStoreRoundTrip(t *testing.T) {
	store := NewReplayStore(memoryItems{})
	r := Replay{
		Fighters:      [2]string{"ryoko", "dummy"},
		Inputs:        [][2]netconfig.InputMask{{netconfig.Right, 0}, {0, netconfig.ButtonA | netconfig.Down}},
		FinalSnapshot: []byte{1, 2, 3},
	}

	if err := store.SaveReplay("bout", r); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadReplay("bout")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Fatalf("got %+v, want %+v", got, r)
	}
}

func TestReplayStoreErrors(t *testing.T) {
	store := NewReplayStore(memoryItems{})
	if _, err := store.LoadReplay("missing"); !errors.Is(err, ErrReplayNotFound) {
		t.Fatalf("expected ErrReplayNotFound, got %v", err)
	}
	if err := store.SaveReplay("", Replay{}); err == nil {
		t.Fatalf("expected error for empty name")
	}

	broken := NewReplayStore(failingItems{})
	if err := broken.SaveReplay("bout", Replay{}); err == nil {
		t.Fatalf("expected save error")
	}
	if _, err := broken.LoadReplay("bout"); err == nil {
		t.Fatalf("expected load error")
	}
}
