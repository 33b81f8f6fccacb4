package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/automoto/fightcore/shared/statedata"
)

var (
	//go:embed all:fighters
	fighterFS embed.FS
)

// FighterLoader parses embedded fighter definitions on first use and keeps
// the resulting tables. Tables are immutable, so sharing them is safe.
type FighterLoader struct {
	mu    sync.Mutex
	cache map[string]*statedata.Table
}

func NewFighterLoader() *FighterLoader {
	return &FighterLoader{
		cache: make(map[string]*statedata.Table),
	}
}

func (l *FighterLoader) LoadFighter(name string) (*statedata.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.cache[name]; ok {
		return t, nil
	}

	p, err := fighterPath(name)
	if err != nil {
		return nil, err
	}
	t, err := statedata.Load(fighterFS, p)
	if err != nil {
		return nil, err
	}

	l.cache[name] = t
	return t, nil
}

func (l *FighterLoader) MustLoadFighter(name string) *statedata.Table {
	t, err := l.LoadFighter(name)
	if err != nil {
		panic(fmt.Sprintf("Failed to load fighter %s: %v", name, err))
	}
	return t
}

func fighterPath(name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		p := path.Join("fighters", name+ext)
		if _, err := fs.Stat(fighterFS, p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown fighter %q (have %s)", name, strings.Join(FighterNames(), ", "))
}

// FighterNames lists the embedded fighters in alphabetical order.
func FighterNames() []string {
	entries, err := fighterFS.ReadDir("fighters")
	if err != nil {
		panic(fmt.Sprintf("Failed to read fighters directory: %v", err))
	}

	var names []string
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names
}

// FS exposes the embedded definitions, rooted above the fighters directory.
func FS() fs.FS {
	return fighterFS
}

var fighterLoader = NewFighterLoader()

// LoadFighter returns the table of an embedded fighter.
func LoadFighter(name string) (*statedata.Table, error) {
	return fighterLoader.LoadFighter(name)
}

func MustLoadFighter(name string) *statedata.Table {
	return fighterLoader.MustLoadFighter(name)
}
