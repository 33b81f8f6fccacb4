package config

import "testing"

func TestLoadEnv(t *testing.T) {
	saved := Sim
	t.Cleanup(func() { Sim = saved })

	t.Setenv("FIGHTCORE_TICK_RATE", "30")
	t.Setenv("FIGHTCORE_INPUT_BUFFER", "16")
	t.Setenv("FIGHTCORE_DEFAULT_HEALTH", "250")

	if err := LoadEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Sim.TickRate != 30 || Sim.InputBuffer != 16 || Sim.DefaultHealth != 250 {
		t.Fatalf("env not applied: %+v", Sim)
	}
	if Sim.CellSize != saved.CellSize {
		t.Fatalf("unset variable should keep default, got %d", Sim.CellSize)
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"FIGHTCORE_TICK_RATE":    "0",
		"FIGHTCORE_INPUT_BUFFER": "-1",
		"FIGHTCORE_CELL_SIZE":    "abc",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			saved := Sim
			t.Cleanup(func() { Sim = saved })
			t.Setenv(name, value)
			if err := LoadEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", name, value)
			}
		})
	}
}
