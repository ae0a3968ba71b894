package engine

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/logging"
)

// maxBattleDuration caps simulated time; a battle that reaches it is
// decided by remaining health percentage, with exact equality a draw.
const maxBattleDuration = 300.0

// NewBattleRand derives a deterministic RNG from the battle id so a battle
// can be re-simulated for inspection given its id.
func NewBattleRand(battleID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(battleID))
	seed := int64(h.Sum64())
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Outcome is what a simulation produces: an ordered event log, the winner
// (nil on a draw), and how far the clock ran.
type Outcome struct {
	Winner   *uint
	Rounds   int
	Duration float64
	Events   []game.BattleEvent
}

// Engine runs one battle between two combatant snapshots. Both states are
// mutated in place; the engine is not reusable across battles.
type Engine struct {
	catalog *game.Catalog
	rng     *rand.Rand
	events  []game.BattleEvent
}

func NewEngine(catalog *game.Catalog, rng *rand.Rand) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

func round1(t float64) float64 {
	return math.Round(t*10) / 10
}

func (e *Engine) emit(ev game.BattleEvent) {
	ev.Time = round1(ev.Time)
	e.events = append(e.events, ev)
}

// Simulate drives the battle to completion. Each macro-step resolves the
// combatant whose next attack comes first (ties favor the first combatant),
// advances that side's clock by its effective attack speed, then ticks
// periodic effects and buff expiry for both sides at the new time.
func (e *Engine) Simulate(c1, c2 *game.CharacterBattleState) Outcome {
	cd1 := NewCooldownTracker()
	cd2 := NewCooldownTracker()
	next1 := round1(c1.EffectiveAttackSpeed())
	next2 := round1(c2.EffectiveAttackSpeed())
	battleTime := 0.0
	rounds := 0

	for c1.Alive() && c2.Alive() && battleTime < maxBattleDuration {
		if next1 <= next2 {
			battleTime = next1
			e.takeTurn(c1, c2, cd1, battleTime)
			next1 = round1(battleTime + c1.EffectiveAttackSpeed())
		} else {
			battleTime = next2
			e.takeTurn(c2, c1, cd2, battleTime)
			next2 = round1(battleTime + c2.EffectiveAttackSpeed())
		}
		rounds++
		TickEffects(c1, c2, battleTime, e.emit)
		TickEffects(c2, c1, battleTime, e.emit)
	}

	winner := decideWinner(c1, c2)
	e.emit(game.BattleEvent{
		Time: battleTime,
		Type: game.EventFinalState,
		Message: fmt.Sprintf("Final state: %s %d HP %d MP | %s %d HP %d MP",
			c1.Name, floorZero(c1.CurrentHealth), floorZero(c1.CurrentMana),
			c2.Name, floorZero(c2.CurrentHealth), floorZero(c2.CurrentMana)),
	})

	return Outcome{Winner: winner, Rounds: rounds, Duration: round1(battleTime), Events: e.events}
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// decideWinner applies the termination rule: a dead opponent loses, mutual
// defeat (backlash) is a draw, and at the time cap the strictly higher
// health percentage wins.
func decideWinner(c1, c2 *game.CharacterBattleState) *uint {
	switch {
	case !c1.Alive() && !c2.Alive():
		return nil
	case !c2.Alive():
		id := c1.ID
		return &id
	case !c1.Alive():
		id := c2.ID
		return &id
	}
	p1, p2 := c1.HealthPercent(), c2.HealthPercent()
	if p1 > p2 {
		id := c1.ID
		return &id
	}
	if p2 > p1 {
		id := c2.ID
		return &id
	}
	return nil
}

// takeTurn resolves one action for actor. The rotation ability at the
// current index is used when it is off cooldown and affordable; otherwise
// the actor falls back to a basic attack without advancing the rotation.
func (e *Engine) takeTurn(actor, defender *game.CharacterBattleState, cds *CooldownTracker, now float64) {
	if len(actor.Rotation) > 0 {
		id := actor.Rotation[actor.NextAbilityIndex]
		ability, ok := e.catalog.Get(id)
		if !ok {
			// Data-integrity gap: degrade to a basic attack, never abort.
			logging.Warn("rotation references unknown ability", logging.Fields{constants.LogFieldAbilityID: id})
			e.basicAttack(actor, defender, now)
			return
		}
		if !cds.IsOnCooldown(id, now) && (ability.ManaCost == 0 || actor.CurrentMana >= ability.ManaCost) {
			actor.CurrentMana -= ability.ManaCost
			cds.SetOnCooldown(id, ability.Cooldown, now)
			e.resolveAbility(actor, defender, ability, now)
			actor.NextAbilityIndex = (actor.NextAbilityIndex + 1) % len(actor.Rotation)
			return
		}
	}
	e.basicAttack(actor, defender, now)
}

func (e *Engine) basicAttack(actor, defender *game.CharacterBattleState, now float64) {
	dtype := actor.AttackType
	if dtype == "" {
		dtype = game.DamagePhysical
	}
	res := Attack(e.rng, actor, defender, dtype, 1.0, false)
	defender.CurrentHealth -= res.Damage
	msg := fmt.Sprintf("%s hits %s with a Basic Attack for %d damage", actor.Name, defender.Name, res.Damage)
	if res.IsCritical {
		msg += " (critical)"
	}
	e.emit(game.BattleEvent{
		Time:     now,
		Type:     game.EventBasicAttack,
		Actor:    actor.Name,
		Target:   defender.Name,
		Amount:   res.Damage,
		Critical: res.IsCritical,
		Health:   defender.CurrentHealth,
		Message:  msg,
	})
	if !defender.Alive() {
		e.emit(game.BattleEvent{
			Time:    now + 0.1,
			Type:    game.EventDefeat,
			Target:  defender.Name,
			Message: fmt.Sprintf("%s has been defeated", defender.Name),
		})
	}
}

func (e *Engine) resolveAbility(actor, defender *game.CharacterBattleState, ability *game.Ability, now float64) {
	e.emit(game.BattleEvent{
		Time:    now,
		Type:    game.EventCast,
		Actor:   actor.Name,
		Ability: ability.Name,
		Message: fmt.Sprintf("%s casts %s", actor.Name, ability.Name),
	})

	switch ability.Kind {
	case game.EffectBuff:
		e.applyBuffAbility(actor, defender, ability, now)
	case game.EffectHeal:
		healed := Healing(actor, ability.Heal.Multiplier)
		e.emit(game.BattleEvent{
			Time:    now + 0.1,
			Type:    game.EventHeal,
			Actor:   actor.Name,
			Target:  actor.Name,
			Ability: ability.Name,
			Amount:  healed,
			Health:  actor.CurrentHealth,
			Message: fmt.Sprintf("%s heals for %d", actor.Name, healed),
		})
	case game.EffectDot:
		dot := ability.Dot
		if dot.HitType != "" {
			e.directHit(actor, defender, dot.HitType, dot.HitMultiplier, false, ability.Name, now+0.1)
		}
		if defender.Alive() {
			ApplyPeriodicEffect(actor.Name, defender, ability.Name, dot.Type, dot.Damage, dot.Interval, dot.Duration, now+0.2, e.emit)
		}
	case game.EffectPeriodic:
		p := ability.Periodic
		target := defender
		if p.Type == game.PeriodicRegeneration || p.Type == game.PeriodicManaRegen {
			target = actor
		}
		ApplyPeriodicEffect(actor.Name, target, ability.Name, p.Type, p.Amount, p.Interval, p.Duration, now+0.1, e.emit)
		if p.Type == game.PeriodicManaDrain {
			// Drains begin working the moment they land.
			drained := p.Amount
			if drained > defender.CurrentMana {
				drained = defender.CurrentMana
			}
			defender.CurrentMana -= drained
			actor.GainMana(drained)
			e.emit(game.BattleEvent{
				Time:    now + 0.2,
				Type:    game.EventManaDrain,
				Actor:   actor.Name,
				Target:  defender.Name,
				Effect:  ability.Name,
				Amount:  drained,
				Mana:    defender.CurrentMana,
				Message: fmt.Sprintf("%s drains %d mana from %s", actor.Name, drained, defender.Name),
			})
		}
	case game.EffectMultiAttack:
		multi := ability.Multi
		for i := 0; i < multi.Hits; i++ {
			if !defender.Alive() {
				break
			}
			hitAt := now + 0.1 + float64(i)*multi.Delay
			e.directHit(actor, defender, multi.Type, multi.Multiplier, false, ability.Name, hitAt)
		}
	default:
		e.resolveDirect(actor, defender, ability, now)
	}
}

// applyBuffAbility resolves magnitude scaling and routes the buff to self
// or to the opponent (a debuff) when the spec says so.
func (e *Engine) applyBuffAbility(actor, defender *game.CharacterBattleState, ability *game.Ability, now float64) {
	spec := ability.Buff
	amount := spec.Amount
	if spec.ScalingRate > 0 {
		scaled := spec.Amount + math.Round(actor.AverageMagicDamage()*spec.ScalingRate)
		amount = math.Min(spec.MaxAmount, scaled)
	}
	target := actor
	if spec.TargetsOpponent {
		target = defender
	}
	ApplyBuff(target, ability.Name, spec.Type, amount, spec.Duration, now+0.1, e.emit)
}

// resolveDirect lands a plain damage hit with the optional modifiers:
// forced crit, self-damage backlash, and burning applied on a crit.
func (e *Engine) resolveDirect(actor, defender *game.CharacterBattleState, ability *game.Ability, now float64) {
	dtype := ability.Type
	mult := 1.0
	if ability.Direct != nil {
		if ability.Direct.Type != "" {
			dtype = ability.Direct.Type
		}
		if ability.Direct.Multiplier > 0 {
			mult = ability.Direct.Multiplier
		}
	}
	if dtype == "" {
		dtype = game.DamagePhysical
	}
	res := e.directHit(actor, defender, dtype, mult, ability.GuaranteedCrit, ability.Name, now+0.1)

	if ability.SelfDamagePercent > 0 {
		backlash := int(math.Round(float64(res.Damage) * ability.SelfDamagePercent / 100.0))
		if backlash > 0 {
			actor.CurrentHealth -= backlash
			e.emit(game.BattleEvent{
				Time:    now + 0.2,
				Type:    game.EventDamage,
				Actor:   actor.Name,
				Target:  actor.Name,
				Ability: ability.Name,
				Amount:  backlash,
				Health:  actor.CurrentHealth,
				Message: fmt.Sprintf("%s takes %d backlash damage from %s", actor.Name, backlash, ability.Name),
			})
			if !actor.Alive() {
				e.emit(game.BattleEvent{
					Time:    now + 0.2,
					Type:    game.EventDefeat,
					Target:  actor.Name,
					Message: fmt.Sprintf("%s collapses from the backlash", actor.Name),
				})
			}
		}
	}

	if ability.CriticalEffect != nil && res.IsCritical && defender.Alive() {
		ce := ability.CriticalEffect
		burn := int(math.Round(actor.AverageMagicDamage() * ce.Multiplier))
		ApplyPeriodicEffect(actor.Name, defender, ability.Name, ce.Type, burn, ce.Interval, ce.Duration, now+0.2, e.emit)
	}
}

// directHit applies one computed hit and logs it, including a defeat line
// when it is lethal. Returns the attack result for modifier handling.
func (e *Engine) directHit(actor, defender *game.CharacterBattleState, dtype game.DamageType, multiplier float64, guaranteedCrit bool, abilityName string, t float64) AttackResult {
	res := Attack(e.rng, actor, defender, dtype, multiplier, guaranteedCrit)
	defender.CurrentHealth -= res.Damage
	msg := fmt.Sprintf("%s hits %s with %s for %d damage", actor.Name, defender.Name, abilityName, res.Damage)
	if res.IsCritical {
		msg += " (critical)"
	}
	e.emit(game.BattleEvent{
		Time:     t,
		Type:     game.EventDamage,
		Actor:    actor.Name,
		Target:   defender.Name,
		Ability:  abilityName,
		Amount:   res.Damage,
		Critical: res.IsCritical,
		Health:   defender.CurrentHealth,
		Message:  msg,
	})
	if !defender.Alive() {
		e.emit(game.BattleEvent{
			Time:    t + 0.1,
			Type:    game.EventDefeat,
			Target:  defender.Name,
			Message: fmt.Sprintf("%s has been defeated", defender.Name),
		})
	}
	return res
}
