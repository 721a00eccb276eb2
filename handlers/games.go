package handlers

import (
	"net/http"

	"gamecenter/shop"

	"github.com/gin-gonic/gin"
)

// ListGames godoc
// @Summary  Every game in the catalog
// @Tags     catalog
// @Produce  json
// @Success  200 {array} models.Game
// @Router   /games [get]
func (h *Handler) ListGames(c *gin.Context) {
	ctx := c.Request.Context()
	cached, hit, err := h.cache.Games(ctx)
	cacheWarn(err, "games cache read failed")
	if hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	games, err := h.shop.ListGames(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	cacheWarn(h.cache.SetGames(ctx, games), "games cache write failed")
	c.JSON(http.StatusOK, games)
}

// SearchGames godoc
// @Summary  Search titles and descriptions
// @Tags     catalog
// @Produce  json
// @Param    q query string true "search text"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} ErrorResponse
// @Router   /games/search [get]
func (h *Handler) SearchGames(c *gin.Context) {
	query := c.Query("q")
	games, err := h.shop.SearchGames(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"results":     games,
		"total_found": len(games),
	})
}

// GetGame godoc
// @Summary  Game page with DLCs and rating; viewer flags when logged in
// @Tags     catalog
// @Produce  json
// @Param    id path int true "game id"
// @Success  200 {object} shop.GameDetail
// @Failure  404 {object} ErrorResponse
// @Router   /games/{id} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sess := optionalSession(c)

	view, hit, err := h.cache.GameView(ctx, id)
	cacheWarn(err, "game cache read failed")
	if !hit {
		detail, err := h.shop.GameDetail(ctx, id, sess)
		if err != nil {
			respondError(c, err)
			return
		}
		cacheWarn(h.cache.SetGameView(ctx, &detail.GameView), "game cache write failed")
		c.JSON(http.StatusOK, detail)
		return
	}

	detail := shop.GameDetail{GameView: *view}
	if sess != nil {
		flags, err := h.shop.Flags(ctx, *sess, id)
		if err != nil {
			respondError(c, err)
			return
		}
		detail.Viewer = flags
	}
	c.JSON(http.StatusOK, detail)
}
