// Command fightsim runs a headless match between two fighters and prints
// every hit together with the final state of both fighters.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/automoto/fightcore/assets"
	cfg "github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/network"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/automoto/fightcore/sim"
	"github.com/automoto/fightcore/systems"
)

const idleFrames = 120

func main() {
	p1Name := flag.String("p1", "ryoko", "Player 1 fighter (embedded name or YAML path)")
	p2Name := flag.String("p2", "dummy", "Player 2 fighter (embedded name or YAML path)")
	scriptPath := flag.String("script", "", "YAML input script (empty = both players idle)")
	frames := flag.Int("frames", 0, "Frames to simulate (0 = script length)")
	realtime := flag.Bool("realtime", false, "Step at the configured tick rate instead of as fast as possible")
	verify := flag.Bool("verify-rollback", false, "Rewind over the recorded history and check the match resimulates identically")
	saveReplay := flag.String("save-replay", "", "Save the match as a replay under this name")
	playReplay := flag.String("replay", "", "Play back a saved replay and check it ends on the recorded snapshot")
	flag.Parse()

	if err := cfg.LoadEnv(); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if v, ok := systems.IsInvariantViolation(r); ok {
				log.Fatalf("Simulation aborted: %v", v)
			}
			panic(r)
		}
	}()

	if *playReplay != "" {
		if err := runReplay(*playReplay); err != nil {
			log.Fatalf("Replay %q: %v", *playReplay, err)
		}
		return
	}

	p1, err := loadFighter(*p1Name)
	if err != nil {
		log.Fatalf("Player 1: %v", err)
	}
	p2, err := loadFighter(*p2Name)
	if err != nil {
		log.Fatalf("Player 2: %v", err)
	}

	inputs, err := loadInputs(*scriptPath, *frames)
	if err != nil {
		log.Fatalf("Inputs: %v", err)
	}

	match, err := sim.NewMatch(p1, p2)
	if err != nil {
		log.Fatalf("Failed to create match: %v", err)
	}
	log.Printf("Match %s vs %s, %d frames", p1.Name, p2.Name, len(inputs))

	var played [][2]netconfig.InputMask
	record := func(_ uint32, in [2]netconfig.InputMask, hits []messages.HitEvent) {
		played = append(played, in)
		printHits(hits)
	}

	switch {
	case *verify:
		if err := runWithHistory(match, inputs, record); err != nil {
			log.Fatalf("Rollback check failed: %v", err)
		}
	case *realtime:
		loop := sim.NewLoop(match, sim.SliceSource(inputs), cfg.Sim.TickRate)
		loop.OnStep(record)
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err := loop.Run(ctx)
		stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Loop error: %v", err)
		}
	default:
		loop := sim.NewLoop(match, sim.SliceSource(inputs), cfg.Sim.TickRate)
		loop.OnStep(record)
		loop.RunFrames(len(inputs))
	}

	printFighters(match)

	if *saveReplay != "" {
		if err := storeReplay(*saveReplay, match, [2]string{*p1Name, *p2Name}, played); err != nil {
			log.Fatalf("Failed to save replay: %v", err)
		}
		log.Printf("Saved replay %q (%d frames)", *saveReplay, len(played))
	}
}

// loadFighter treats names ending in .yaml/.yml or containing a path
// separator as files and everything else as an embedded fighter.
func loadFighter(name string) (*statedata.Table, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") || strings.ContainsRune(name, filepath.Separator) {
		return statedata.Load(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	return assets.LoadFighter(name)
}

func loadInputs(path string, frames int) ([][2]netconfig.InputMask, error) {
	if frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", frames)
	}

	var inputs [][2]netconfig.InputMask
	if path != "" {
		script, err := sim.LoadScript(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return nil, err
		}
		inputs = script.Inputs()
	}

	n := frames
	if n == 0 {
		n = len(inputs)
		if n == 0 {
			n = idleFrames
		}
	}
	if n < len(inputs) {
		return inputs[:n], nil
	}
	for len(inputs) < n {
		inputs = append(inputs, [2]netconfig.InputMask{})
	}
	return inputs, nil
}

// runWithHistory plays the inputs through a rollback history, then rewinds to
// the oldest recorded frame and checks that resimulating lands on the same
// snapshot.
func runWithHistory(m *sim.Match, inputs [][2]netconfig.InputMask, record sim.StepHook) error {
	var h network.History
	for _, in := range inputs {
		frame := m.Frame() + 1
		hits, err := h.Advance(m, in)
		if err != nil {
			return err
		}
		record(frame, in, hits)
	}
	if h.Latest() == 0 {
		return nil
	}

	want, err := m.Snapshot()
	if err != nil {
		return err
	}
	from := h.Oldest()
	if _, err := h.Rewind(m, from, nil); err != nil {
		return err
	}
	got, err := m.Snapshot()
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("resimulating frames %d..%d diverged", from, h.Latest())
	}
	log.Printf("Rollback verified over frames %d..%d", from, h.Latest())
	return nil
}

func storeReplay(name string, m *sim.Match, fighters [2]string, played [][2]netconfig.InputMask) error {
	store, err := systems.OpenReplayStore()
	if err != nil {
		return err
	}
	final, err := m.Snapshot()
	if err != nil {
		return err
	}
	return store.SaveReplay(name, systems.Replay{
		Fighters:      fighters,
		Inputs:        played,
		FinalSnapshot: final,
	})
}

func runReplay(name string) error {
	store, err := systems.OpenReplayStore()
	if err != nil {
		return err
	}
	r, err := store.LoadReplay(name)
	if err != nil {
		return err
	}

	var tables [2]*statedata.Table
	for i, fighter := range r.Fighters {
		if tables[i], err = loadFighter(fighter); err != nil {
			return err
		}
	}
	match, err := sim.NewMatch(tables[0], tables[1])
	if err != nil {
		return err
	}
	log.Printf("Replaying %s vs %s, %d frames", tables[0].Name, tables[1].Name, len(r.Inputs))

	loop := sim.NewLoop(match, sim.SliceSource(r.Inputs), cfg.Sim.TickRate)
	loop.OnStep(func(_ uint32, _ [2]netconfig.InputMask, hits []messages.HitEvent) {
		printHits(hits)
	})
	loop.RunFrames(len(r.Inputs))
	printFighters(match)

	final, err := match.Snapshot()
	if err != nil {
		return err
	}
	if !bytes.Equal(final, r.FinalSnapshot) {
		return errors.New("final snapshot differs from the recording")
	}
	log.Printf("Replay matches its recording")
	return nil
}

func printHits(hits []messages.HitEvent) {
	for _, h := range hits {
		fmt.Printf("frame %4d  %s hits %s with hitbox %d for %d (%d left)\n",
			h.Frame, h.Attacker, h.Recipient, h.Hitbox.ID, h.Damage(), h.RemainingHealth)
	}
}

func printFighters(m *sim.Match) {
	fmt.Printf("after frame %d:\n", m.Frame())
	for _, p := range netconfig.Players {
		if v, ok := m.Fighter(p); ok {
			fmt.Printf("  %s\n", v)
		}
	}
}
