package handlers

import (
	"net/http"

	"gamecenter/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Me godoc
// @Summary   Current account
// @Tags      account
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} models.Account
// @Router    /account [get]
func (h *Handler) Me(c *gin.Context) {
	account, err := h.shop.Account(c.Request.Context(), session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// TopUp godoc
// @Summary   Add the fixed top-up amount to the balance
// @Tags      account
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} map[string]string
// @Router    /account/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	sess := session(c)
	balance, err := h.shop.TopUp(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	monitoring.RecordTopUp()
	logFields(c, logrus.Fields{"account_id": sess.AccountID, "balance": balance.String()}).Info("balance topped up")
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetLibrary godoc
// @Summary   Owned items, wishlist and friends
// @Tags      account
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} shop.Library
// @Router    /library [get]
func (h *Handler) GetLibrary(c *gin.Context) {
	lib, err := h.shop.Library(c.Request.Context(), session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib)
}
