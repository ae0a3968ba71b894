package storage

import (
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateCharacter(c *game.Character) error {
	return r.db.Create(c).Error
}

func (r *sqliteRepository) GetCharacterByID(id uint) (*game.Character, error) {
	var c game.Character
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) GetCharactersByOwner(ownerID string) ([]game.Character, error) {
	var chars []game.Character
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at asc").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *sqliteRepository) UpdateCharacter(c *game.Character) error {
	return r.db.Save(c).Error
}

func (r *sqliteRepository) SaveBattle(rec *game.BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByUUID(battleUUID string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.Where("battle_uuid = ?", battleUUID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) GetBattlesForCharacter(characterID uint, limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []game.BattleRecord
	err := r.db.
		Where("character1_id = ? OR character2_id = ?", characterID, characterID).
		Order("created_at desc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// RecordBattleForOwner upserts the owner profile row and bumps its
// counters in place.
func (r *sqliteRepository) RecordBattleForOwner(ownerID, name string, won, draw bool) error {
	wins := 0
	if won {
		wins = 1
	}
	draws := 0
	if draw {
		draws = 1
	}
	u := game.User{OwnerID: ownerID, Name: name, BattlesPlayed: 1, Wins: wins, Draws: draws}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":           name,
			"battles_played": gorm.Expr("battles_played + 1"),
			"wins":           gorm.Expr("wins + ?", wins),
			"draws":          gorm.Expr("draws + ?", draws),
		}),
	}).Create(&u).Error
}

// GetTopPlayers returns top N owners ordered by Wins desc, then BattlesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
