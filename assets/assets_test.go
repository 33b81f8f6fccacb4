package assets

import (
	"slices"
	"strings"
	"testing"

	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
)

func TestEmbeddedFightersLoad(t *testing.T) {
	names := FighterNames()
	if !slices.Equal(names, []string{"dummy", "ryoko"}) {
		t.Fatalf("unexpected fighters %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			table, err := LoadFighter(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if table.Name != name {
				t.Fatalf("definition name %q does not match file %q", table.Name, name)
			}
			if _, ok := table.Lookup(netconfig.NeutralState); !ok {
				t.Fatalf("missing neutral state")
			}
			again, _ := LoadFighter(name)
			if again != table {
				t.Fatalf("expected cached table")
			}
		})
	}

	tables, _, err := statedata.LoadAll(FS(), "fighters")
	if err != nil || len(tables) != len(names) {
		t.Fatalf("LoadAll: %v (%d tables)", err, len(tables))
	}
}

func TestUnknownFighter(t *testing.T) {
	_, err := LoadFighter("nobody")
	if err == nil || !strings.Contains(err.Error(), "ryoko") {
		t.Fatalf("expected error listing known fighters, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustLoadFighter("nobody")
}
