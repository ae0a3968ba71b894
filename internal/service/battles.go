package service

import (
	"errors"
	"time"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/engine"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/logging"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/progression"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrSameCharacter     = errors.New("a character cannot battle itself")
	ErrCorruptCharacter  = errors.New("character record is corrupt")
)

// BattleService loads two characters, runs the authoritative simulation
// and persists the result. There is exactly one engine; clients replay
// the produced log for presentation and never recompute outcomes.
type BattleService struct {
	repo    storage.Repository
	catalog *game.Catalog
}

func NewBattleService(repo storage.Repository, catalog *game.Catalog) *BattleService {
	return &BattleService{repo: repo, catalog: catalog}
}

// Challenge runs a direct (non-matchmade) battle between two characters.
// Direct challenges never award experience.
func (s *BattleService) Challenge(char1ID, char2ID uint) (*game.BattleResult, error) {
	if char1ID == char2ID {
		return nil, ErrSameCharacter
	}
	return s.Run(char1ID, char2ID, false)
}

// Run simulates a battle between the two characters and persists the
// result. Matchmade battles additionally award experience to both sides.
func (s *BattleService) Run(char1ID, char2ID uint, isMatchmade bool) (*game.BattleResult, error) {
	c1, err := s.repo.GetCharacterByID(char1ID)
	if err != nil {
		return nil, ErrCharacterNotFound
	}
	c2, err := s.repo.GetCharacterByID(char2ID)
	if err != nil {
		return nil, ErrCharacterNotFound
	}

	s1, err := game.NewBattleState(c1)
	if err != nil {
		return nil, ErrCorruptCharacter
	}
	s2, err := game.NewBattleState(c2)
	if err != nil {
		return nil, ErrCorruptCharacter
	}

	battleID := uuid.NewString()
	eng := engine.NewEngine(s.catalog, engine.NewBattleRand(battleID))
	outcome := eng.Simulate(s1, s2)

	won1 := outcome.Winner != nil && *outcome.Winner == c1.ID
	won2 := outcome.Winner != nil && *outcome.Winner == c2.ID
	xp1 := progression.AwardBattleExperience(won1, c1.Level, isMatchmade)
	xp2 := progression.AwardBattleExperience(won2, c2.Level, isMatchmade)

	result := &game.BattleResult{
		ID:          battleID,
		Character1:  summarize(c1, xp1),
		Character2:  summarize(c2, xp2),
		Winner:      outcome.Winner,
		Log:         outcome.Events,
		Timestamp:   time.Now().UTC(),
		Rounds:      outcome.Rounds,
		IsMatchmade: isMatchmade,
	}

	rec, err := game.NewBattleRecord(result)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveBattle(rec); err != nil {
		// Persistence failures abort: the battle result must not be
		// returned as if it were recorded.
		return nil, err
	}

	if isMatchmade {
		if err := s.awardExperience(c1, xp1); err != nil {
			return nil, err
		}
		if err := s.awardExperience(c2, xp2); err != nil {
			return nil, err
		}
	}

	if err := s.repo.RecordBattleForOwner(c1.OwnerID, c1.Name, won1, outcome.Winner == nil); err != nil {
		logging.Error("failed to update owner profile", err, logging.Fields{constants.LogFieldOwnerID: c1.OwnerID})
	}
	if err := s.repo.RecordBattleForOwner(c2.OwnerID, c2.Name, won2, outcome.Winner == nil); err != nil {
		logging.Error("failed to update owner profile", err, logging.Fields{constants.LogFieldOwnerID: c2.OwnerID})
	}

	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: battleID,
		"rounds":                   outcome.Rounds,
		"duration":                 outcome.Duration,
		"matchmade":                isMatchmade,
	})
	return result, nil
}

func (s *BattleService) awardExperience(c *game.Character, xp int) error {
	c.Experience += xp
	progression.ApplyPendingLevelUps(c)
	return s.repo.UpdateCharacter(c)
}

func summarize(c *game.Character, xp int) game.CharacterSummary {
	return game.CharacterSummary{
		ID:               c.ID,
		Name:             c.Name,
		OwnerID:          c.OwnerID,
		Level:            c.Level,
		ExperienceGained: xp,
		Stats:            c.Stats(),
	}
}
