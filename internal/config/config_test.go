package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
database:
  path: "/tmp/test.db"
abilities:
  - id: fireball
    name: Fireball
    type: magic
    cooldown: 8
    mana_cost: 15
    direct:
      type: magic
      multiplier: 1.5
  - id: battle_cry
    name: Battle Cry
    kind: buff
    cooldown: 20
    buff:
      type: damageIncrease
      amount: 25
      duration: 12
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected configured address, got %q", cfg.ServerAddress)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Fatalf("expected configured db path, got %q", cfg.DatabasePath)
	}
	if len(cfg.Abilities) != 2 {
		t.Fatalf("expected 2 abilities, got %d", len(cfg.Abilities))
	}
	// Missing kind defaults to direct.
	if cfg.Abilities[0].Kind != game.EffectDirect {
		t.Fatalf("expected default kind direct, got %q", cfg.Abilities[0].Kind)
	}
}

func TestLoadConfig_DefaultAddress(t *testing.T) {
	path := writeConfig(t, `
abilities:
  - id: jab
    name: Jab
    cooldown: 2
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %q", cfg.ServerAddress)
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty abilities", "abilities: []\n", "abilities is empty"},
		{"missing id", "abilities:\n  - name: Jab\n", "missing 'id'"},
		{"duplicate id", "abilities:\n  - id: jab\n    name: Jab\n  - id: jab\n    name: Jab Two\n", "duplicate ability id"},
		{"negative cooldown", "abilities:\n  - id: jab\n    name: Jab\n    cooldown: -1\n", "negative cooldown"},
		{"unknown kind", "abilities:\n  - id: jab\n    name: Jab\n    kind: summon\n", "unknown ability kind"},
		{"buff without block", "abilities:\n  - id: cry\n    name: Cry\n    kind: buff\n", "requires a 'buff' block"},
		{"unknown buff type", "abilities:\n  - id: cry\n    name: Cry\n    kind: buff\n    buff:\n      type: haste\n      amount: 10\n      duration: 5\n", "unknown buff type"},
		{"dot without interval", "abilities:\n  - id: venom\n    name: Venom\n    kind: dot\n    dot:\n      type: poison\n      damage: 4\n      duration: 8\n", "interval and duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
