package engine

import (
	"fmt"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/logging"
)

// ApplyBuff inserts a buff on the target, or refreshes the end time when a
// buff of the same type is already active. Refreshes never stack the
// magnitude and emit no event; only a fresh application is logged.
func ApplyBuff(target *game.CharacterBattleState, name string, btype game.BuffType, amount, duration, now float64, emit func(game.BattleEvent)) {
	if b := target.FindBuff(btype); b != nil {
		b.EndTime = now + duration
		return
	}
	target.Buffs = append(target.Buffs, game.Buff{
		Name:    name,
		Type:    btype,
		Amount:  amount,
		EndTime: now + duration,
	})
	emit(game.BattleEvent{
		Time:    now,
		Type:    game.EventBuffApplied,
		Target:  target.Name,
		Effect:  name,
		Amount:  int(amount),
		Message: fmt.Sprintf("%s gains %s for %.0fs", target.Name, name, duration),
	})
}

// ApplyPeriodicEffect inserts a periodic effect on the target, or refreshes
// it when one of the same type is active. A refresh also resets the proc
// clock, so the next tick waits a full interval from now.
func ApplyPeriodicEffect(sourceName string, target *game.CharacterBattleState, name string, ptype game.PeriodicType, amount int, interval, duration, now float64, emit func(game.BattleEvent)) {
	if e := target.FindPeriodicEffect(ptype); e != nil {
		e.EndTime = now + duration
		e.LastProcTime = now
		return
	}
	target.PeriodicEffects = append(target.PeriodicEffects, game.PeriodicEffect{
		Name:         name,
		Type:         ptype,
		Amount:       amount,
		Interval:     interval,
		LastProcTime: now,
		EndTime:      now + duration,
		SourceName:   sourceName,
	})
	emit(game.BattleEvent{
		Time:    now,
		Type:    game.EventEffectApplied,
		Target:  target.Name,
		Effect:  name,
		Message: fmt.Sprintf("%s is afflicted with %s", target.Name, name),
	})
}

// TickEffects fires due periodic effects on c at the current battle time
// and removes anything past its end time. The opponent receives resources
// transferred by drain effects. Effects tick when a full interval has
// elapsed since the last proc and the effect has not yet expired; the end
// time itself is an expiry boundary, not a tick.
func TickEffects(c, opponent *game.CharacterBattleState, now float64, emit func(game.BattleEvent)) {
	for i := range c.PeriodicEffects {
		e := &c.PeriodicEffects[i]
		if now < e.LastProcTime+e.Interval || now >= e.EndTime {
			continue
		}
		switch e.Type {
		case game.PeriodicPoison, game.PeriodicBurning:
			c.CurrentHealth -= e.Amount
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventEffectTick,
				Target:  c.Name,
				Effect:  e.Name,
				Amount:  e.Amount,
				Health:  c.CurrentHealth,
				Message: fmt.Sprintf("%s takes %d %s damage", c.Name, e.Amount, e.Type),
			})
			if c.CurrentHealth <= 0 {
				msg := fmt.Sprintf("%s succumbs to poison", c.Name)
				if e.Type == game.PeriodicBurning {
					msg = fmt.Sprintf("%s is consumed by flames", c.Name)
				}
				emit(game.BattleEvent{Time: now, Type: game.EventDefeat, Target: c.Name, Message: msg})
			}
		case game.PeriodicManaDrain:
			drained := e.Amount
			if drained > c.CurrentMana {
				drained = c.CurrentMana
			}
			c.CurrentMana -= drained
			opponent.GainMana(drained)
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventManaDrain,
				Actor:   e.SourceName,
				Target:  c.Name,
				Effect:  e.Name,
				Amount:  drained,
				Mana:    c.CurrentMana,
				Message: fmt.Sprintf("%s drains %d mana from %s", e.SourceName, drained, c.Name),
			})
		case game.PeriodicRegeneration:
			applied := c.GainHealth(e.Amount)
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventEffectTick,
				Target:  c.Name,
				Effect:  e.Name,
				Amount:  applied,
				Health:  c.CurrentHealth,
				Message: fmt.Sprintf("%s recovers %d health from %s", c.Name, applied, e.Name),
			})
		case game.PeriodicManaRegen:
			applied := c.GainMana(e.Amount)
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventEffectTick,
				Target:  c.Name,
				Effect:  e.Name,
				Amount:  applied,
				Mana:    c.CurrentMana,
				Message: fmt.Sprintf("%s recovers %d mana from %s", c.Name, applied, e.Name),
			})
		default:
			logging.Warn("unknown periodic effect type", logging.Fields{constants.LogFieldEffectType: string(e.Type)})
		}
		e.LastProcTime = now
	}

	remaining := c.PeriodicEffects[:0]
	for _, e := range c.PeriodicEffects {
		if now >= e.EndTime {
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventEffectExpired,
				Target:  c.Name,
				Effect:  e.Name,
				Message: fmt.Sprintf("%s fades from %s", e.Name, c.Name),
			})
			continue
		}
		remaining = append(remaining, e)
	}
	c.PeriodicEffects = remaining

	keptBuffs := c.Buffs[:0]
	for _, b := range c.Buffs {
		if now >= b.EndTime {
			emit(game.BattleEvent{
				Time:    now,
				Type:    game.EventBuffExpired,
				Target:  c.Name,
				Effect:  b.Name,
				Message: fmt.Sprintf("%s fades from %s", b.Name, c.Name),
			})
			continue
		}
		keptBuffs = append(keptBuffs, b)
	}
	c.Buffs = keptBuffs
}
