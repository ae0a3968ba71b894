package game

import (
	"testing"

	"gorm.io/datatypes"
)

func TestNewBattleState_FromCharacter(t *testing.T) {
	c := &Character{
		Name:        "Tester",
		OwnerID:     "owner-a",
		Health:      120,
		Mana:        60,
		AttackSpeed: 2.5,
		AttackType:  "magic",
	}
	if err := c.SetRotation([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := NewBattleState(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentHealth != 120 || s.CurrentMana != 60 {
		t.Fatalf("expected resources at maximum, got %d/%d", s.CurrentHealth, s.CurrentMana)
	}
	if len(s.Rotation) != 3 || s.Rotation[0] != "a" {
		t.Fatalf("expected decoded rotation, got %v", s.Rotation)
	}
	if s.AttackType != DamageMagic {
		t.Fatalf("expected magic attack type, got %s", s.AttackType)
	}
}

func TestNewBattleState_CorruptRotation(t *testing.T) {
	c := &Character{Name: "Broken", Health: 10}
	c.Rotation = datatypes.JSON("{not json")
	if _, err := NewBattleState(c); err == nil {
		t.Fatalf("expected an error for a corrupt rotation column")
	}
}

func TestEffectiveAttackSpeed_SlowsCompose(t *testing.T) {
	s := &CharacterBattleState{Stats: Stats{AttackSpeed: 10}}
	s.Buffs = []Buff{
		{Type: BuffAttackSpeedReduction, Amount: 20, EndTime: 100},
		{Type: BuffAttackSpeedReduction, Amount: 50, EndTime: 100},
	}
	// 10 * 1.2 * 1.5
	if got := s.EffectiveAttackSpeed(); got != 18 {
		t.Fatalf("expected slowed speed 18, got %v", got)
	}
}

func TestHealthPercent(t *testing.T) {
	s := &CharacterBattleState{Stats: Stats{Health: 40}, CurrentHealth: 38}
	if got := s.HealthPercent(); got != 0.95 {
		t.Fatalf("expected 0.95, got %v", got)
	}
	zero := &CharacterBattleState{}
	if got := zero.HealthPercent(); got != 0 {
		t.Fatalf("expected 0 for zero max health, got %v", got)
	}
}

func TestGainResources_Capped(t *testing.T) {
	s := &CharacterBattleState{Stats: Stats{Health: 100, Mana: 50}, CurrentHealth: 95, CurrentMana: 49}
	if applied := s.GainHealth(20); applied != 5 || s.CurrentHealth != 100 {
		t.Fatalf("expected 5 applied health up to the cap, got %d (%d)", applied, s.CurrentHealth)
	}
	if applied := s.GainMana(10); applied != 1 || s.CurrentMana != 50 {
		t.Fatalf("expected 1 applied mana up to the cap, got %d (%d)", applied, s.CurrentMana)
	}
	if applied := s.GainHealth(-3); applied != 0 {
		t.Fatalf("negative gain must apply nothing, got %d", applied)
	}
}
