package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/automoto/fightcore/shared/netconfig"
	"gopkg.in/yaml.v3"
)

// ScriptFrame is one line of an input script: the buttons each player holds,
// for Repeat consecutive frames (at least one).
type ScriptFrame struct {
	P1     []string `yaml:"p1"`
	P2     []string `yaml:"p2"`
	Repeat int      `yaml:"repeat"`
}

// Script is a canned sequence of inputs for both players, used by the CLI and
// by tests.
type Script struct {
	Frames []ScriptFrame `yaml:"frames"`

	inputs [][2]netconfig.InputMask
}

// ParseScript decodes a YAML input script. Unknown fields and button names
// are errors.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input script")
		}
		return nil, fmt.Errorf("decode input script: %w", err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads and parses an input script from fsys.
func LoadScript(fsys fs.FS, name string) (*Script, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return s, nil
}

func (s *Script) compile() error {
	s.inputs = s.inputs[:0]
	for i, f := range s.Frames {
		p1, err := netconfig.ParseInputMask(f.P1)
		if err != nil {
			return fmt.Errorf("frames[%d].p1: %w", i, err)
		}
		p2, err := netconfig.ParseInputMask(f.P2)
		if err != nil {
			return fmt.Errorf("frames[%d].p2: %w", i, err)
		}
		repeat := f.Repeat
		switch {
		case repeat < 0:
			return fmt.Errorf("frames[%d].repeat: must not be negative, got %d", i, repeat)
		case repeat == 0:
			repeat = 1
		}
		for range repeat {
			s.inputs = append(s.inputs, [2]netconfig.InputMask{p1, p2})
		}
	}
	return nil
}

// Inputs returns one entry per simulated frame, first frame first.
func (s *Script) Inputs() [][2]netconfig.InputMask {
	return slices.Clone(s.inputs)
}

// Len is the number of frames the script covers.
func (s *Script) Len() int {
	return len(s.inputs)
}

// Source plays the script from the given match frame on: frame start+1 gets
// the first entry.
func (s *Script) Source(start uint32) InputSource {
	return &sliceSource{inputs: s.Inputs(), start: start}
}

// SliceSource plays a fixed list of inputs starting at frame 1.
func SliceSource(inputs [][2]netconfig.InputMask) InputSource {
	return &sliceSource{inputs: inputs}
}

type sliceSource struct {
	inputs [][2]netconfig.InputMask
	start  uint32
}

func (s *sliceSource) Inputs(frame uint32) ([2]netconfig.InputMask, bool) {
	if frame <= s.start {
		return [2]netconfig.InputMask{}, false
	}
	i := int(frame - s.start - 1)
	if i >= len(s.inputs) {
		return [2]netconfig.InputMask{}, false
	}
	return s.inputs[i], true
}

// IdleSource feeds neutral inputs forever.
type IdleSource struct{}

func (IdleSource) Inputs(uint32) ([2]netconfig.InputMask, bool) {
	return [2]netconfig.InputMask{}, true
}
