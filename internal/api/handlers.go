package api

import (
	"net/http"
	"strconv"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/service"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler bundles the repository and services used by the HTTP endpoints.
type Handler struct {
	repo       storage.Repository
	catalog    *game.Catalog
	battles    *service.BattleService
	matchmaker *service.Matchmaker
}

func NewHandler(repo storage.Repository, catalog *game.Catalog, battles *service.BattleService, matchmaker *service.Matchmaker) *Handler {
	return &Handler{repo: repo, catalog: catalog, battles: battles, matchmaker: matchmaker}
}

// RegisterRoutes wires every endpoint under the API prefix.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteAbilities, h.ListAbilities)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		apiRoutes.POST(constants.RouteCharacters, h.CreateCharacter)
		apiRoutes.GET(constants.RouteCharacters, h.ListCharacters)
		apiRoutes.GET(constants.RouteCharacterByID, h.GetCharacter)
		apiRoutes.PUT(constants.RouteCharacterRotation, h.UpdateRotation)
		apiRoutes.GET(constants.RouteCharacterBattles, h.ListCharacterBattles)

		apiRoutes.POST(constants.RouteChallenge, h.Challenge)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.GET(constants.RouteBattleStream, h.StreamBattle)

		apiRoutes.POST(constants.RouteQueueJoin, h.JoinQueue)
		apiRoutes.GET(constants.RouteQueueStatus, h.QueueStatus)
		apiRoutes.POST(constants.RouteQueueLeave, h.LeaveQueue)
	}
}

// ownerID extracts the calling owner's identity. Authentication happens
// upstream; this service trusts the forwarded header.
func ownerID(c *gin.Context) (string, bool) {
	id := c.GetHeader(constants.HeaderOwnerID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrOwnerRequired})
		return "", false
	}
	return id, true
}

func characterIDParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("characterID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCharacterID})
		return 0, false
	}
	return uint(n), true
}

// ownedCharacter loads a character and verifies the caller owns it.
func (h *Handler) ownedCharacter(c *gin.Context, id uint, owner string) (*game.Character, bool) {
	char, err := h.repo.GetCharacterByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterNotFound})
		return nil, false
	}
	if char.OwnerID != owner {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotCharacterOwner})
		return nil, false
	}
	return char, true
}
