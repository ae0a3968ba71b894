package api

import (
	"net/http"
	"strconv"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/service"

	"github.com/gin-gonic/gin"
)

type ChallengeRequest struct {
	CharacterID uint `json:"character_id" binding:"required"`
	OpponentID  uint `json:"opponent_id" binding:"required"`
}

// Challenge runs a direct battle between the caller's character and a
// chosen opponent. No experience is awarded.
func (h *Handler) Challenge(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if _, ok := h.ownedCharacter(c, req.CharacterID, owner); !ok {
		return
	}

	result, err := h.battles.Challenge(req.CharacterID, req.OpponentID)
	if err != nil {
		switch err {
		case service.ErrSameCharacter:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSameCharacter})
		case service.ErrCharacterNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterNotFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunBattle})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBattle returns a stored battle result by its UUID.
func (h *Handler) GetBattle(c *gin.Context) {
	rec, err := h.repo.GetBattleByUUID(c.Param("battleID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	result, err := rec.DecodeResult()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListCharacterBattles returns recent battles involving a character,
// newest first.
func (h *Handler) ListCharacterBattles(c *gin.Context) {
	id, ok := characterIDParam(c)
	if !ok {
		return
	}
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	recs, err := h.repo.GetBattlesForCharacter(id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	results := make([]*game.BattleResult, 0, len(recs))
	for i := range recs {
		res, err := recs[i].DecodeResult()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
			return
		}
		results = append(results, res)
	}
	c.JSON(http.StatusOK, results)
}
