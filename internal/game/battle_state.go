package game

// Stats is the derived stat record a character brings into combat. The
// derivation from attributes happens outside this module; these ten fields
// are consumed as data.
type Stats struct {
	Health                  int     `json:"health"`
	Mana                    int     `json:"mana"`
	MinPhysicalDamage       int     `json:"min_physical_damage"`
	MaxPhysicalDamage       int     `json:"max_physical_damage"`
	MinMagicDamage          int     `json:"min_magic_damage"`
	MaxMagicDamage          int     `json:"max_magic_damage"`
	AttackSpeed             float64 `json:"attack_speed"`
	CriticalChance          float64 `json:"critical_chance"`
	SpellCritChance         float64 `json:"spell_crit_chance"`
	PhysicalDamageReduction float64 `json:"physical_damage_reduction"`
	MagicDamageReduction    float64 `json:"magic_damage_reduction"`
}

// Buff is an active timed percentage modifier. Re-applying a buff of the
// same type refreshes EndTime instead of stacking.
type Buff struct {
	Name    string   `json:"name"`
	Type    BuffType `json:"type"`
	Amount  float64  `json:"amount"`
	EndTime float64  `json:"end_time"`
}

// PeriodicEffect fires every Interval seconds until EndTime. SourceName
// identifies the combatant that receives transferred resources (mana drain).
type PeriodicEffect struct {
	Name         string       `json:"name"`
	Type         PeriodicType `json:"type"`
	Amount       int          `json:"amount"`
	Interval     float64      `json:"interval"`
	LastProcTime float64      `json:"last_proc_time"`
	EndTime      float64      `json:"end_time"`
	SourceName   string       `json:"source_name"`
}

// CharacterBattleState is a combatant snapshot for a single battle. It is
// built fresh from the persisted character, mutated in place while the
// simulation runs and discarded afterwards; only experience and level
// deltas flow back to the character record.
type CharacterBattleState struct {
	ID               uint
	Name             string
	OwnerID          string
	Stats            Stats
	CurrentHealth    int
	CurrentMana      int
	Rotation         []string
	NextAbilityIndex int
	AttackType       DamageType
	Buffs            []Buff
	PeriodicEffects  []PeriodicEffect
}

// NewBattleState builds a fresh combatant snapshot from a character record.
func NewBattleState(c *Character) (*CharacterBattleState, error) {
	rotation, err := c.RotationIDs()
	if err != nil {
		return nil, err
	}
	stats := c.Stats()
	return &CharacterBattleState{
		ID:            c.ID,
		Name:          c.Name,
		OwnerID:       c.OwnerID,
		Stats:         stats,
		CurrentHealth: stats.Health,
		CurrentMana:   stats.Mana,
		Rotation:      rotation,
		AttackType:    DamageType(c.AttackType),
	}, nil
}

func (s *CharacterBattleState) Alive() bool { return s.CurrentHealth > 0 }

// HealthPercent is the time-cap tiebreaker: currentHealth / maxHealth.
func (s *CharacterBattleState) HealthPercent() float64 {
	if s.Stats.Health <= 0 {
		return 0
	}
	return float64(s.CurrentHealth) / float64(s.Stats.Health)
}

// AverageMagicDamage feeds healing, buff scaling and crit-burn magnitudes.
func (s *CharacterBattleState) AverageMagicDamage() float64 {
	return (float64(s.Stats.MinMagicDamage) + float64(s.Stats.MaxMagicDamage)) / 2.0
}

// EffectiveAttackSpeed is the base speed widened by every active
// attackSpeedReduction buff; factors compose multiplicatively.
func (s *CharacterBattleState) EffectiveAttackSpeed() float64 {
	speed := s.Stats.AttackSpeed
	for _, b := range s.Buffs {
		if b.Type == BuffAttackSpeedReduction {
			speed *= 1.0 + b.Amount/100.0
		}
	}
	return speed
}

// FindBuff returns the active buff of the given type, if any.
func (s *CharacterBattleState) FindBuff(t BuffType) *Buff {
	for i := range s.Buffs {
		if s.Buffs[i].Type == t {
			return &s.Buffs[i]
		}
	}
	return nil
}

// FindPeriodicEffect returns the active effect of the given type, if any.
func (s *CharacterBattleState) FindPeriodicEffect(t PeriodicType) *PeriodicEffect {
	for i := range s.PeriodicEffects {
		if s.PeriodicEffects[i].Type == t {
			return &s.PeriodicEffects[i]
		}
	}
	return nil
}

// GainHealth adds health capped at the maximum and returns the applied amount.
func (s *CharacterBattleState) GainHealth(amount int) int {
	if amount < 0 {
		amount = 0
	}
	applied := amount
	if s.CurrentHealth+applied > s.Stats.Health {
		applied = s.Stats.Health - s.CurrentHealth
	}
	s.CurrentHealth += applied
	return applied
}

// GainMana adds mana capped at the maximum and returns the applied amount.
func (s *CharacterBattleState) GainMana(amount int) int {
	if amount < 0 {
		amount = 0
	}
	applied := amount
	if s.CurrentMana+applied > s.Stats.Mana {
		applied = s.Stats.Mana - s.CurrentMana
	}
	s.CurrentMana += applied
	return applied
}
