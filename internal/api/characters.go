package api

import (
	"net/http"
	"strconv"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"

	"github.com/gin-gonic/gin"
)

type CreateCharacterRequest struct {
	Name       string   `json:"name" binding:"required"`
	AttackType string   `json:"attack_type"`
	Rotation   []string `json:"rotation"`

	Health                  int     `json:"health" binding:"required"`
	Mana                    int     `json:"mana"`
	MinPhysicalDamage       int     `json:"min_physical_damage"`
	MaxPhysicalDamage       int     `json:"max_physical_damage"`
	MinMagicDamage          int     `json:"min_magic_damage"`
	MaxMagicDamage          int     `json:"max_magic_damage"`
	AttackSpeed             float64 `json:"attack_speed" binding:"required"`
	CriticalChance          float64 `json:"critical_chance"`
	SpellCritChance         float64 `json:"spell_crit_chance"`
	PhysicalDamageReduction float64 `json:"physical_damage_reduction"`
	MagicDamageReduction    float64 `json:"magic_damage_reduction"`
}

// CreateCharacter registers a new character for the calling owner.
func (h *Handler) CreateCharacter(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if msg, ok := h.validateRotation(req.Rotation); !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: msg})
		return
	}

	char := &game.Character{
		Name:       req.Name,
		OwnerID:    owner,
		Level:      1,
		AttackType: req.AttackType,

		Health:                  req.Health,
		Mana:                    req.Mana,
		MinPhysicalDamage:       req.MinPhysicalDamage,
		MaxPhysicalDamage:       req.MaxPhysicalDamage,
		MinMagicDamage:          req.MinMagicDamage,
		MaxMagicDamage:          req.MaxMagicDamage,
		AttackSpeed:             req.AttackSpeed,
		CriticalChance:          req.CriticalChance,
		SpellCritChance:         req.SpellCritChance,
		PhysicalDamageReduction: req.PhysicalDamageReduction,
		MagicDamageReduction:    req.MagicDamageReduction,
	}
	if err := char.SetRotation(req.Rotation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.CreateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveCharacter})
		return
	}
	c.JSON(http.StatusCreated, char)
}

// ListCharacters returns the calling owner's characters.
func (h *Handler) ListCharacters(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	chars, err := h.repo.GetCharactersByOwner(owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveCharacter})
		return
	}
	c.JSON(http.StatusOK, chars)
}

// GetCharacter returns one character by ID. Reading other owners'
// characters is allowed so opponents can be inspected.
func (h *Handler) GetCharacter(c *gin.Context) {
	id, ok := characterIDParam(c)
	if !ok {
		return
	}
	char, err := h.repo.GetCharacterByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterNotFound})
		return
	}
	c.JSON(http.StatusOK, char)
}

type UpdateRotationRequest struct {
	Rotation []string `json:"rotation" binding:"required"`
}

// UpdateRotation replaces a character's ability rotation.
func (h *Handler) UpdateRotation(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := characterIDParam(c)
	if !ok {
		return
	}
	char, ok := h.ownedCharacter(c, id, owner)
	if !ok {
		return
	}
	var req UpdateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if msg, ok := h.validateRotation(req.Rotation); !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: msg})
		return
	}
	if err := char.SetRotation(req.Rotation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.UpdateCharacter(char); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveCharacter})
		return
	}
	c.JSON(http.StatusOK, char)
}

// validateRotation enforces the minimum rotation length and that every
// entry resolves against the catalog.
func (h *Handler) validateRotation(ids []string) (string, bool) {
	if len(ids) < 3 {
		return constants.ErrRotationTooShort, false
	}
	for _, id := range ids {
		if _, ok := h.catalog.Get(id); !ok {
			return constants.ErrUnknownAbility, false
		}
	}
	return "", true
}

// ListAbilities returns the full ability catalog in config order.
func (h *Handler) ListAbilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.All())
}

// ListLeaderboard returns the top owners by wins (desc), top 10 by default.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaders})
		return
	}
	c.JSON(http.StatusOK, users)
}
