package game

import "strings"

// DamageType is the school of an attack or ability.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagic    DamageType = "magic"
)

// EffectKind discriminates what an ability does when it resolves.
// Exactly one kind applies per ability; crit/backlash modifiers attach
// to direct hits only.
type EffectKind string

const (
	EffectDirect      EffectKind = "direct"
	EffectBuff        EffectKind = "buff"
	EffectHeal        EffectKind = "heal"
	EffectDot         EffectKind = "dot"
	EffectPeriodic    EffectKind = "periodic"
	EffectMultiAttack EffectKind = "multi_attack"
)

// BuffType tags a timed percentage modifier. At most one buff per type
// may be active on a combatant.
type BuffType string

const (
	BuffDamageIncrease       BuffType = "damageIncrease"
	BuffPhysicalReduction    BuffType = "physicalReduction"
	BuffMagicReduction       BuffType = "magicReduction"
	BuffAttackSpeedReduction BuffType = "attackSpeedReduction"
)

// PeriodicType tags an interval-firing effect. At most one per type per target.
type PeriodicType string

const (
	PeriodicPoison       PeriodicType = "poison"
	PeriodicBurning      PeriodicType = "burning"
	PeriodicManaDrain    PeriodicType = "manaDrain"
	PeriodicRegeneration PeriodicType = "regeneration"
	PeriodicManaRegen    PeriodicType = "manaRegen"
)

// DirectSpec is a plain damage hit.
type DirectSpec struct {
	Type       DamageType `yaml:"type"`
	Multiplier float64    `yaml:"multiplier"`
}

// BuffSpec applies a timed percentage modifier. TargetsOpponent puts the
// buff on the enemy (debuff). When ScalingRate is set, the magnitude grows
// with the caster's average magic damage up to MaxAmount.
type BuffSpec struct {
	Type            BuffType `yaml:"type"`
	Amount          float64  `yaml:"amount"`
	Duration        float64  `yaml:"duration"`
	TargetsOpponent bool     `yaml:"targets_opponent"`
	ScalingRate     float64  `yaml:"scaling_rate"`
	MaxAmount       float64  `yaml:"max_amount"`
}

// HealSpec restores health scaled from average magic damage.
type HealSpec struct {
	Multiplier float64 `yaml:"multiplier"`
}

// DotSpec optionally lands a direct hit, then applies periodic damage.
type DotSpec struct {
	Type     PeriodicType `yaml:"type"`
	Damage   int          `yaml:"damage"`
	Interval float64      `yaml:"interval"`
	Duration float64      `yaml:"duration"`
	// Optional direct hit before the effect lands. Empty HitType means none.
	HitType       DamageType `yaml:"hit_type"`
	HitMultiplier float64    `yaml:"hit_multiplier"`
}

// PeriodicSpec applies a non-damage periodic effect (drain, regeneration).
type PeriodicSpec struct {
	Type     PeriodicType `yaml:"type"`
	Amount   int          `yaml:"amount"`
	Interval float64      `yaml:"interval"`
	Duration float64      `yaml:"duration"`
}

// MultiAttackSpec lands several staggered hits in one action.
type MultiAttackSpec struct {
	Type       DamageType `yaml:"type"`
	Multiplier float64    `yaml:"multiplier"`
	Hits       int        `yaml:"hits"`
	Delay      float64    `yaml:"delay"`
}

// CriticalEffectSpec applies burning when a direct hit crits. Damage is
// derived from the caster's average magic damage, not from the hit.
type CriticalEffectSpec struct {
	Type       PeriodicType `yaml:"type"`
	Multiplier float64      `yaml:"multiplier"`
	Interval   float64      `yaml:"interval"`
	Duration   float64      `yaml:"duration"`
}

// Ability is a catalog entry. Kind selects which spec pointer is set;
// GuaranteedCrit, SelfDamagePercent and CriticalEffect are orthogonal
// modifiers valid on direct hits.
type Ability struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Type     DamageType `yaml:"type"`
	Kind     EffectKind `yaml:"kind"`
	Cooldown float64    `yaml:"cooldown"`
	ManaCost int        `yaml:"mana_cost"`

	Direct   *DirectSpec      `yaml:"direct,omitempty"`
	Buff     *BuffSpec        `yaml:"buff,omitempty"`
	Heal     *HealSpec        `yaml:"heal,omitempty"`
	Dot      *DotSpec         `yaml:"dot,omitempty"`
	Periodic *PeriodicSpec    `yaml:"periodic,omitempty"`
	Multi    *MultiAttackSpec `yaml:"multi_attack,omitempty"`

	GuaranteedCrit    bool                `yaml:"guaranteed_crit"`
	SelfDamagePercent float64             `yaml:"self_damage_percent"`
	CriticalEffect    *CriticalEffectSpec `yaml:"critical_effect,omitempty"`
}

// Catalog is a read-only ability lookup built once at startup.
type Catalog struct {
	byID   map[string]*Ability
	byName map[string]*Ability
	order  []*Ability
}

func NewCatalog(abilities []Ability) *Catalog {
	c := &Catalog{
		byID:   make(map[string]*Ability, len(abilities)),
		byName: make(map[string]*Ability, len(abilities)),
		order:  make([]*Ability, 0, len(abilities)),
	}
	for i := range abilities {
		a := &abilities[i]
		c.byID[a.ID] = a
		c.byName[strings.ToLower(a.Name)] = a
		c.order = append(c.order, a)
	}
	return c
}

func (c *Catalog) Get(id string) (*Ability, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// GetByName looks an ability up by display name (case-insensitive).
func (c *Catalog) GetByName(name string) (*Ability, bool) {
	a, ok := c.byName[strings.ToLower(name)]
	return a, ok
}

// All returns abilities in config order.
func (c *Catalog) All() []Ability {
	out := make([]Ability, 0, len(c.order))
	for _, a := range c.order {
		out = append(out, *a)
	}
	return out
}
