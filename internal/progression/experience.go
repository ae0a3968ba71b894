package progression

import "github.com/jonathan-hinds/Idle-RPGv2/internal/game"

// AwardBattleExperience returns the XP a participant earns from a finished
// battle. Only matchmade battles award experience; winners earn more and
// the award shrinks as the character levels.
func AwardBattleExperience(isWinner bool, level int, isMatchmade bool) int {
	if !isMatchmade {
		return 0
	}
	if level < 1 {
		level = 1
	}
	base := 40
	if isWinner {
		base = 100
	}
	award := base - (level-1)*3
	if award < 10 {
		award = 10
	}
	return award
}

// ExperienceForLevel is the XP needed to advance past the given level.
func ExperienceForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 * level
}

// ApplyPendingLevelUps consumes banked experience into level gains.
func ApplyPendingLevelUps(c *game.Character) *game.Character {
	if c.Level < 1 {
		c.Level = 1
	}
	for c.Experience >= ExperienceForLevel(c.Level) {
		c.Experience -= ExperienceForLevel(c.Level)
		c.Level++
	}
	return c
}
