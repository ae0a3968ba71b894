package api

import (
	"net/http"
	"strconv"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"

	"github.com/gin-gonic/gin"
)

type QueueRequest struct {
	CharacterID uint `json:"character_id" binding:"required"`
}

func (h *Handler) queueRequest(c *gin.Context) (uint, string, bool) {
	owner, ok := ownerID(c)
	if !ok {
		return 0, "", false
	}
	var req QueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return 0, "", false
	}
	if _, ok := h.ownedCharacter(c, req.CharacterID, owner); !ok {
		return 0, "", false
	}
	return req.CharacterID, owner, true
}

// JoinQueue enters a character into matchmaking. When an opponent is
// already waiting the battle runs immediately and the result is returned.
func (h *Handler) JoinQueue(c *gin.Context) {
	characterID, owner, ok := h.queueRequest(c)
	if !ok {
		return
	}
	status, err := h.matchmaker.Enqueue(characterID, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedQueueOp})
		return
	}
	c.JSON(http.StatusOK, status)
}

// QueueStatus reports the character's queue position or delivers a
// finished match result.
func (h *Handler) QueueStatus(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(c.Query("character_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCharacterID})
		return
	}
	characterID := uint(n)
	if _, ok := h.ownedCharacter(c, characterID, owner); !ok {
		return
	}
	status, err := h.matchmaker.Status(characterID, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedQueueOp})
		return
	}
	c.JSON(http.StatusOK, status)
}

// LeaveQueue removes the character from the waiting list. A match that
// already completed is kept and delivered on the next status call.
func (h *Handler) LeaveQueue(c *gin.Context) {
	characterID, _, ok := h.queueRequest(c)
	if !ok {
		return
	}
	status := "not_queued"
	if h.matchmaker.Dequeue(characterID) {
		status = "removed"
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: status})
}
