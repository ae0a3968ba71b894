package game

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Character is the persisted character record. Stat derivation happens
// outside this service; the ten combat stats are stored as plain columns.
type Character struct {
	gorm.Model
	Name       string `json:"name" gorm:"size:32"`
	OwnerID    string `json:"owner_id" gorm:"index"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	AttackType string `json:"attack_type"`
	// Rotation holds the ordered ability id list as a JSON array. Callers
	// must keep it at three entries or more; the engine itself tolerates
	// shorter lists by falling back to basic attacks.
	Rotation datatypes.JSON `json:"rotation"`

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

func (Character) TableName() string { return "characters" }

// RotationIDs decodes the stored rotation column.
func (c *Character) RotationIDs() ([]string, error) {
	if len(c.Rotation) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(c.Rotation, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetRotation encodes the ability id list into the rotation column.
func (c *Character) SetRotation(ids []string) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	c.Rotation = datatypes.JSON(b)
	return nil
}

// Stats assembles the combat stat record from the stored columns.
func (c *Character) Stats() Stats {
	return Stats{
		Health:                  c.Health,
		Mana:                    c.Mana,
		MinPhysicalDamage:       c.MinPhysicalDamage,
		MaxPhysicalDamage:       c.MaxPhysicalDamage,
		MinMagicDamage:          c.MinMagicDamage,
		MaxMagicDamage:          c.MaxMagicDamage,
		AttackSpeed:             c.AttackSpeed,
		CriticalChance:          c.CriticalChance,
		SpellCritChance:         c.SpellCritChance,
		PhysicalDamageReduction: c.PhysicalDamageReduction,
		MagicDamageReduction:    c.MagicDamageReduction,
	}
}

// BattleEventType discriminates structured battle log entries. The UI
// renders playback from these; it never recomputes combat outcomes.
type BattleEventType string

const (
	EventCast          BattleEventType = "cast"
	EventBasicAttack   BattleEventType = "basic_attack"
	EventDamage        BattleEventType = "damage"
	EventHeal          BattleEventType = "heal"
	EventBuffApplied   BattleEventType = "buff_applied"
	EventBuffExpired   BattleEventType = "buff_expired"
	EventEffectApplied BattleEventType = "effect_applied"
	EventEffectTick    BattleEventType = "effect_tick"
	EventEffectExpired BattleEventType = "effect_expired"
	EventManaDrain     BattleEventType = "mana_drain"
	EventDefeat        BattleEventType = "defeat"
	EventFinalState    BattleEventType = "final_state"
)

// BattleEvent is one battle log entry. Time is simulated seconds with one
// decimal place; simultaneous sub-events carry +0.1/+0.2 offsets so cause
// sorts before effect. Numeric fields carry the data, Message is rendered
// for display at the presentation boundary.
type BattleEvent struct {
	Time     float64         `json:"time"`
	Type     BattleEventType `json:"type"`
	Message  string          `json:"message"`
	Actor    string          `json:"actor,omitempty"`
	Target   string          `json:"target,omitempty"`
	Ability  string          `json:"ability,omitempty"`
	Effect   string          `json:"effect,omitempty"`
	Amount   int             `json:"amount,omitempty"`
	Critical bool            `json:"critical,omitempty"`
	Health   int             `json:"health,omitempty"`
	Mana     int             `json:"mana,omitempty"`
}

// CharacterSummary is the per-side snapshot embedded in a battle result.
type CharacterSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	OwnerID          string `json:"owner_id"`
	Level            int    `json:"level"`
	ExperienceGained int    `json:"experience_gained"`
	Stats            Stats  `json:"stats"`
}

// BattleResult is the produced battle record, persisted to battle_records
// and returned verbatim to API callers. Winner is nil on a draw.
type BattleResult struct {
	ID          string           `json:"id"`
	Character1  CharacterSummary `json:"character1"`
	Character2  CharacterSummary `json:"character2"`
	Winner      *uint            `json:"winner"`
	Log         []BattleEvent    `json:"log"`
	Timestamp   time.Time        `json:"timestamp"`
	Rounds      int              `json:"rounds"`
	IsMatchmade bool             `json:"is_matchmade"`
}

// BattleRecord is the persisted row for a finished battle. The full
// BattleResult is stored as JSON; indexed columns support lookups.
type BattleRecord struct {
	gorm.Model
	BattleUUID   string         `json:"battle_uuid" gorm:"uniqueIndex"`
	Character1ID uint           `json:"character1_id" gorm:"index"`
	Character2ID uint           `json:"character2_id" gorm:"index"`
	WinnerID     *uint          `json:"winner_id"`
	Rounds       int            `json:"rounds"`
	IsMatchmade  bool           `json:"is_matchmade"`
	Result       datatypes.JSON `json:"result"`
}

func (BattleRecord) TableName() string { return "battle_records" }

// DecodeResult unpacks the stored BattleResult JSON.
func (r *BattleRecord) DecodeResult() (*BattleResult, error) {
	var res BattleResult
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NewBattleRecord wraps a result into its persisted row.
func NewBattleRecord(res *BattleResult) (*BattleRecord, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return &BattleRecord{
		BattleUUID:   res.ID,
		Character1ID: res.Character1.ID,
		Character2ID: res.Character2.ID,
		WinnerID:     res.Winner,
		Rounds:       res.Rounds,
		IsMatchmade:  res.IsMatchmade,
		Result:       datatypes.JSON(b),
	}, nil
}

// User stores aggregate owner stats for the leaderboard.
type User struct {
	gorm.Model
	OwnerID       string `json:"owner_id" gorm:"uniqueIndex"`
	Name          string `json:"name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
}

func (User) TableName() string { return "player_profiles" }
