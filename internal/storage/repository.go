package storage

import "github.com/jonathan-hinds/Idle-RPGv2/internal/game"

type Repository interface {
	CreateCharacter(c *game.Character) error
	GetCharacterByID(id uint) (*game.Character, error)
	GetCharactersByOwner(ownerID string) ([]game.Character, error)
	UpdateCharacter(c *game.Character) error

	// SaveBattle persists a finished battle. A failure here must abort the
	// enclosing operation; results are never silently dropped.
	SaveBattle(rec *game.BattleRecord) error
	GetBattleByUUID(battleUUID string) (*game.BattleRecord, error)
	GetBattlesForCharacter(characterID uint, limit int) ([]game.BattleRecord, error)

	// RecordBattleForOwner bumps the owner's aggregate profile counters.
	RecordBattleForOwner(ownerID, name string, won, draw bool) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
