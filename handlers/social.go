package handlers

import (
	"net/http"

	"gamecenter/models"

	"github.com/gin-gonic/gin"
)

// RateGame godoc
// @Summary   Rate a game from 1 to 5; rating again replaces the score
// @Tags      catalog
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id   path int                true "game id"
// @Param     body body models.RatingInput true "score"
// @Success   200 {object} models.Rating
// @Failure   404 {object} ErrorResponse
// @Router    /games/{id}/rating [post]
func (h *Handler) RateGame(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.RatingInput
	if !bind(c, &in) {
		return
	}

	ctx := c.Request.Context()
	rating, err := h.shop.RateGame(ctx, session(c), id, in.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	cacheWarn(h.cache.InvalidateGame(ctx, id), "game cache invalidation failed")
	c.JSON(http.StatusOK, rating)
}

// AddWishlist godoc
// @Summary   Put a game on the wishlist
// @Tags      wishlist
// @Security  BearerAuth
// @Param     id path int true "game id"
// @Success   201 {object} map[string]bool
// @Success   200 {object} map[string]bool
// @Failure   409 {object} ErrorResponse
// @Router    /games/{id}/wishlist [post]
func (h *Handler) AddWishlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	created, err := h.shop.AddWishlist(c.Request.Context(), session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"created": created})
}

// RemoveWishlist godoc
// @Summary   Take a game off the wishlist
// @Tags      wishlist
// @Security  BearerAuth
// @Param     id path int true "game id"
// @Success   204
// @Failure   404 {object} ErrorResponse
// @Router    /games/{id}/wishlist [delete]
func (h *Handler) RemoveWishlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.shop.RemoveWishlist(c.Request.Context(), session(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFriend godoc
// @Summary   Add the account registered under an email as a friend
// @Tags      friends
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body models.FriendInput true "friend"
// @Success   201 {object} models.FriendLink
// @Success   200 {object} models.FriendLink
// @Failure   400 {object} ErrorResponse
// @Failure   404 {object} ErrorResponse
// @Router    /friends [post]
func (h *Handler) AddFriend(c *gin.Context) {
	var in models.FriendInput
	if !bind(c, &in) {
		return
	}
	link, created, err := h.shop.AddFriend(c.Request.Context(), session(c), in.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, link)
}

// RemoveFriend godoc
// @Summary   Remove a friend link the caller is part of
// @Tags      friends
// @Security  BearerAuth
// @Param     id path int true "link id"
// @Success   204
// @Failure   404 {object} ErrorResponse
// @Router    /friends/{id} [delete]
func (h *Handler) RemoveFriend(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.shop.RemoveFriend(c.Request.Context(), session(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
