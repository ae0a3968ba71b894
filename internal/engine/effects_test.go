package engine

import (
	"testing"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
)

func collectEvents() (func(game.BattleEvent), *[]game.BattleEvent) {
	events := &[]game.BattleEvent{}
	return func(ev game.BattleEvent) { *events = append(*events, ev) }, events
}

func countType(events []game.BattleEvent, t game.BattleEventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func TestApplyBuff_RefreshDoesNotStack(t *testing.T) {
	emit, events := collectEvents()
	c := fixedState("A", game.Stats{Health: 100})

	ApplyBuff(c, "Battle Cry", game.BuffDamageIncrease, 25, 12, 0, emit)
	ApplyBuff(c, "Battle Cry", game.BuffDamageIncrease, 25, 12, 5, emit)

	if len(c.Buffs) != 1 {
		t.Fatalf("expected a single buff after refresh, got %d", len(c.Buffs))
	}
	if c.Buffs[0].EndTime != 17 {
		t.Fatalf("expected refreshed end time 17, got %v", c.Buffs[0].EndTime)
	}
	if got := countType(*events, game.EventBuffApplied); got != 1 {
		t.Fatalf("refresh must not emit a second applied event, got %d", got)
	}
}

func TestApplyPeriodicEffect_RefreshResetsProcClock(t *testing.T) {
	emit, _ := collectEvents()
	c := fixedState("D", game.Stats{Health: 100})

	ApplyPeriodicEffect("A", c, "Venom Strike", game.PeriodicPoison, 4, 2, 8, 0, emit)
	ApplyPeriodicEffect("A", c, "Venom Strike", game.PeriodicPoison, 4, 2, 8, 3, emit)

	if len(c.PeriodicEffects) != 1 {
		t.Fatalf("expected a single effect after refresh, got %d", len(c.PeriodicEffects))
	}
	e := c.PeriodicEffects[0]
	if e.LastProcTime != 3 || e.EndTime != 11 {
		t.Fatalf("expected proc clock reset to 3 and end time 11, got %v/%v", e.LastProcTime, e.EndTime)
	}
}

func TestTickEffects_PoisonProcsAndExpires(t *testing.T) {
	emit, events := collectEvents()
	c := fixedState("D", game.Stats{Health: 100})
	opp := fixedState("A", game.Stats{Health: 100})

	ApplyPeriodicEffect("A", c, "Venom Strike", game.PeriodicPoison, 4, 2, 6, 0, emit)

	TickEffects(c, opp, 2, emit)
	TickEffects(c, opp, 3, emit) // one second later, no full interval elapsed
	TickEffects(c, opp, 4, emit)
	TickEffects(c, opp, 6, emit) // expiry boundary, no tick

	if got := countType(*events, game.EventEffectTick); got != 2 {
		t.Fatalf("expected ticks at 2s and 4s only, got %d", got)
	}
	if c.CurrentHealth != 92 {
		t.Fatalf("expected health 92 after two 4-damage ticks, got %d", c.CurrentHealth)
	}
	if got := countType(*events, game.EventEffectExpired); got != 1 {
		t.Fatalf("expected one expiry event, got %d", got)
	}
	if len(c.PeriodicEffects) != 0 {
		t.Fatalf("expected effect removed after expiry")
	}
}

func TestTickEffects_PoisonCanDefeat(t *testing.T) {
	emit, events := collectEvents()
	c := fixedState("D", game.Stats{Health: 100})
	c.CurrentHealth = 3
	opp := fixedState("A", game.Stats{Health: 100})

	ApplyPeriodicEffect("A", c, "Venom Strike", game.PeriodicPoison, 4, 2, 8, 0, emit)
	TickEffects(c, opp, 2, emit)

	if c.Alive() {
		t.Fatalf("expected the poison tick to be lethal")
	}
	if got := countType(*events, game.EventDefeat); got != 1 {
		t.Fatalf("expected a defeat event, got %d", got)
	}
}

func TestTickEffects_ManaDrainIsPartialAndTransfers(t *testing.T) {
	emit, _ := collectEvents()
	c := fixedState("D", game.Stats{Health: 100, Mana: 50})
	c.CurrentMana = 5
	opp := fixedState("A", game.Stats{Health: 100, Mana: 50})
	opp.CurrentMana = 48

	ApplyPeriodicEffect("A", c, "Mana Leech", game.PeriodicManaDrain, 8, 3, 9, 0, emit)
	TickEffects(c, opp, 3, emit)

	if c.CurrentMana != 0 {
		t.Fatalf("expected target drained to zero, got %d", c.CurrentMana)
	}
	// Only 5 were available and the receiver caps at 50.
	if opp.CurrentMana != 50 {
		t.Fatalf("expected receiver capped at 50 mana, got %d", opp.CurrentMana)
	}
}

func TestTickEffects_RegenerationCapped(t *testing.T) {
	emit, events := collectEvents()
	c := fixedState("A", game.Stats{Health: 100})
	c.CurrentHealth = 97
	opp := fixedState("D", game.Stats{Health: 100})

	ApplyPeriodicEffect("A", c, "Regrowth", game.PeriodicRegeneration, 6, 2, 10, 0, emit)
	TickEffects(c, opp, 2, emit)

	if c.CurrentHealth != 100 {
		t.Fatalf("expected health capped at 100, got %d", c.CurrentHealth)
	}
	for _, ev := range *events {
		if ev.Type == game.EventEffectTick && ev.Amount != 3 {
			t.Fatalf("expected tick to report 3 applied health, got %d", ev.Amount)
		}
	}
}

func TestTickEffects_BuffExpiry(t *testing.T) {
	emit, events := collectEvents()
	c := fixedState("A", game.Stats{Health: 100})
	opp := fixedState("D", game.Stats{Health: 100})

	ApplyBuff(c, "Stone Skin", game.BuffPhysicalReduction, 30, 10, 0, emit)
	TickEffects(c, opp, 9.9, emit)
	if len(c.Buffs) != 1 {
		t.Fatalf("expected buff still active before end time")
	}
	TickEffects(c, opp, 10, emit)
	if len(c.Buffs) != 0 {
		t.Fatalf("expected buff removed at end time")
	}
	if got := countType(*events, game.EventBuffExpired); got != 1 {
		t.Fatalf("expected one buff expiry event, got %d", got)
	}
}
