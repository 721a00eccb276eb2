package handlers

import (
	"net/http"

	"gamecenter/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dashboard godoc
// @Summary   Developer balance and per-game sales
// @Tags      developer
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} shop.Dashboard
// @Failure   403 {object} ErrorResponse
// @Router    /developer/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.shop.DeveloperDashboard(c.Request.Context(), session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// PublishGame godoc
// @Summary   List a new game
// @Tags      developer
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body models.PublishGameInput true "game"
// @Success   201 {object} models.Game
// @Failure   403 {object} ErrorResponse
// @Router    /developer/games [post]
func (h *Handler) PublishGame(c *gin.Context) {
	var in models.PublishGameInput
	if !bind(c, &in) {
		return
	}
	ctx := c.Request.Context()
	game, err := h.shop.PublishGame(ctx, session(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	cacheWarn(h.cache.InvalidateGames(ctx), "games cache invalidation failed")
	logFields(c, logrus.Fields{"game_id": game.ID, "developer_id": game.DeveloperID}).Info("game published")
	c.JSON(http.StatusCreated, game)
}

// PublishDLC godoc
// @Summary   Add a DLC to one of the developer's games
// @Tags      developer
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id   path int                    true "game id"
// @Param     body body models.PublishDLCInput true "dlc"
// @Success   201 {object} models.DLC
// @Failure   403 {object} ErrorResponse
// @Failure   404 {object} ErrorResponse
// @Router    /developer/games/{id}/dlcs [post]
func (h *Handler) PublishDLC(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PublishDLCInput
	if !bind(c, &in) {
		return
	}
	ctx := c.Request.Context()
	dlc, err := h.shop.PublishDLC(ctx, session(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	cacheWarn(h.cache.InvalidateGame(ctx, id), "game cache invalidation failed")
	c.JSON(http.StatusCreated, dlc)
}
