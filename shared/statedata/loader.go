package statedata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML fighter definition and builds its table. Unknown
// fields are rejected.
func Parse(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec FighterSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty fighter definition")
		}
		return nil, fmt.Errorf("decode fighter definition: %w", err)
	}
	return Build(spec)
}

// Load reads and parses one definition. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func Load(fsys fs.FS, name string) (*Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return t, nil
}

// LoadAll loads every .yaml/.yml definition in dir, keyed by file stem, and
// returns the sorted stems.
func LoadAll(fsys fs.FS, dir string) (map[string]*Table, []string, error) {
	var matches []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no fighter definitions found in %s", dir)
	}

	tables := make(map[string]*Table, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		t, err := Load(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, dup := tables[stem]; dup {
			return nil, nil, fmt.Errorf("duplicate fighter definition %q in %s", stem, dir)
		}
		tables[stem] = t
		names = append(names, stem)
	}

	sort.Strings(names)
	return tables, names, nil
}
