package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"

	"gopkg.in/yaml.v3"
)

type rawConfig struct {
	Server *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database *struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Abilities []game.Ability `yaml:"abilities"`
}

// LoadedConfig carries the ability catalog entries and server settings.
type LoadedConfig struct {
	Abilities     []game.Ability
	ServerAddress string
	DatabasePath  string
}

var validBuffTypes = map[game.BuffType]struct{}{
	game.BuffDamageIncrease:       {},
	game.BuffPhysicalReduction:    {},
	game.BuffMagicReduction:       {},
	game.BuffAttackSpeedReduction: {},
}

var validPeriodicTypes = map[game.PeriodicType]struct{}{
	game.PeriodicPoison:       {},
	game.PeriodicBurning:      {},
	game.PeriodicManaDrain:    {},
	game.PeriodicRegeneration: {},
	game.PeriodicManaRegen:    {},
}

// LoadConfig reads the YAML configuration at path. It requires a non-empty
// `abilities` list and validates each entry against its declared kind.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.Abilities) == 0 {
		return nil, fmt.Errorf("config file %s: abilities is empty (provide an 'abilities' array)", path)
	}

	idSet := make(map[string]struct{}, len(rc.Abilities))
	nameSet := make(map[string]struct{}, len(rc.Abilities))
	for i := range rc.Abilities {
		a := &rc.Abilities[i]
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("config file %s: ability entry missing 'id'", path)
		}
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("config file %s: ability '%s' missing 'name'", path, a.ID)
		}
		if _, exists := idSet[a.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability id '%s'", path, a.ID)
		}
		idSet[a.ID] = struct{}{}
		ln := strings.ToLower(a.Name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability name '%s'", path, a.Name)
		}
		nameSet[ln] = struct{}{}
		if a.Cooldown < 0 {
			return nil, fmt.Errorf("config file %s: ability '%s' has negative cooldown", path, a.ID)
		}
		if a.Kind == "" {
			a.Kind = game.EffectDirect
		}
		if err := validateKind(a); err != nil {
			return nil, fmt.Errorf("config file %s: ability '%s': %w", path, a.ID, err)
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	dbPath := ""
	if rc.Database != nil {
		dbPath = rc.Database.Path
	}

	return &LoadedConfig{
		Abilities:     rc.Abilities,
		ServerAddress: addr,
		DatabasePath:  dbPath,
	}, nil
}

func validateKind(a *game.Ability) error {
	switch a.Kind {
	case game.EffectDirect:
		if a.CriticalEffect != nil {
			if _, ok := validPeriodicTypes[a.CriticalEffect.Type]; !ok {
				return fmt.Errorf("unknown critical_effect type '%s'", a.CriticalEffect.Type)
			}
		}
	case game.EffectBuff:
		if a.Buff == nil {
			return fmt.Errorf("kind 'buff' requires a 'buff' block")
		}
		if _, ok := validBuffTypes[a.Buff.Type]; !ok {
			return fmt.Errorf("unknown buff type '%s'", a.Buff.Type)
		}
		if a.Buff.Duration <= 0 {
			return fmt.Errorf("buff duration must be positive")
		}
	case game.EffectHeal:
		if a.Heal == nil || a.Heal.Multiplier <= 0 {
			return fmt.Errorf("kind 'heal' requires a 'heal' block with a positive multiplier")
		}
	case game.EffectDot:
		if a.Dot == nil {
			return fmt.Errorf("kind 'dot' requires a 'dot' block")
		}
		if _, ok := validPeriodicTypes[a.Dot.Type]; !ok {
			return fmt.Errorf("unknown dot type '%s'", a.Dot.Type)
		}
		if a.Dot.Interval <= 0 || a.Dot.Duration <= 0 {
			return fmt.Errorf("dot interval and duration must be positive")
		}
	case game.EffectPeriodic:
		if a.Periodic == nil {
			return fmt.Errorf("kind 'periodic' requires a 'periodic' block")
		}
		if _, ok := validPeriodicTypes[a.Periodic.Type]; !ok {
			return fmt.Errorf("unknown periodic type '%s'", a.Periodic.Type)
		}
		if a.Periodic.Interval <= 0 || a.Periodic.Duration <= 0 {
			return fmt.Errorf("periodic interval and duration must be positive")
		}
	case game.EffectMultiAttack:
		if a.Multi == nil || a.Multi.Hits < 1 {
			return fmt.Errorf("kind 'multi_attack' requires a 'multi_attack' block with at least one hit")
		}
		if a.Multi.Delay < 0 {
			return fmt.Errorf("multi_attack delay cannot be negative")
		}
	default:
		return fmt.Errorf("unknown ability kind '%s'", a.Kind)
	}
	return nil
}
