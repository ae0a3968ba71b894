package engine

import (
	"math"
	"math/rand"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
)

// maxDamageReduction caps stacked reductions so no combatant becomes
// invulnerable; combined with the min-1 clamp, damage always lands.
const maxDamageReduction = 0.8

// AttackResult reports one resolved hit.
type AttackResult struct {
	Damage     int
	IsCritical bool
	BaseDamage int
	DamageType game.DamageType
}

// RandomInt returns a uniform integer in [min, max].
func RandomInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// PhysicalAttack rolls a physical hit from attacker against defender.
// Damage-increase buffs compose multiplicatively; the defender's stat
// reduction plus physicalReduction buffs are capped at 80%.
func PhysicalAttack(rng *rand.Rand, attacker, defender *game.CharacterBattleState, multiplier float64, guaranteedCrit bool) AttackResult {
	roll := RandomInt(rng, attacker.Stats.MinPhysicalDamage, attacker.Stats.MaxPhysicalDamage)
	base := math.Round(float64(roll) * multiplier)
	dmg := base
	for _, b := range attacker.Buffs {
		if b.Type == game.BuffDamageIncrease {
			dmg *= 1.0 + b.Amount/100.0
		}
	}
	crit := guaranteedCrit || rng.Float64()*100.0 <= attacker.Stats.CriticalChance
	if crit {
		dmg *= 2
	}
	reduction := defender.Stats.PhysicalDamageReduction / 100.0
	for _, b := range defender.Buffs {
		if b.Type == game.BuffPhysicalReduction {
			reduction += b.Amount / 100.0
		}
	}
	if reduction > maxDamageReduction {
		reduction = maxDamageReduction
	}
	final := int(math.Round(dmg * (1.0 - reduction)))
	if final < 1 {
		final = 1
	}
	return AttackResult{Damage: final, IsCritical: crit, BaseDamage: int(base), DamageType: game.DamagePhysical}
}

// MagicAttack is the magic-school twin of PhysicalAttack: magic damage
// range, spell crit chance and magicReduction buffs.
func MagicAttack(rng *rand.Rand, attacker, defender *game.CharacterBattleState, multiplier float64, guaranteedCrit bool) AttackResult {
	roll := RandomInt(rng, attacker.Stats.MinMagicDamage, attacker.Stats.MaxMagicDamage)
	base := math.Round(float64(roll) * multiplier)
	dmg := base
	for _, b := range attacker.Buffs {
		if b.Type == game.BuffDamageIncrease {
			dmg *= 1.0 + b.Amount/100.0
		}
	}
	crit := guaranteedCrit || rng.Float64()*100.0 <= attacker.Stats.SpellCritChance
	if crit {
		dmg *= 2
	}
	reduction := defender.Stats.MagicDamageReduction / 100.0
	for _, b := range defender.Buffs {
		if b.Type == game.BuffMagicReduction {
			reduction += b.Amount / 100.0
		}
	}
	if reduction > maxDamageReduction {
		reduction = maxDamageReduction
	}
	final := int(math.Round(dmg * (1.0 - reduction)))
	if final < 1 {
		final = 1
	}
	return AttackResult{Damage: final, IsCritical: crit, BaseDamage: int(base), DamageType: game.DamageMagic}
}

// Attack dispatches to the matching school.
func Attack(rng *rand.Rand, attacker, defender *game.CharacterBattleState, dtype game.DamageType, multiplier float64, guaranteedCrit bool) AttackResult {
	if dtype == game.DamageMagic {
		return MagicAttack(rng, attacker, defender, multiplier, guaranteedCrit)
	}
	return PhysicalAttack(rng, attacker, defender, multiplier, guaranteedCrit)
}

// Healing restores health scaled from the character's average magic damage
// and returns the amount actually applied after the max-health clamp.
func Healing(c *game.CharacterBattleState, multiplier float64) int {
	amount := int(math.Round(c.AverageMagicDamage() * multiplier))
	return c.GainHealth(amount)
}
