package handlers

import (
	"errors"
	"net/http"
	"time"

	"gamecenter/events"
	"gamecenter/models"
	"gamecenter/monitoring"
	"gamecenter/shop"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func purchaseOutcome(err error) string {
	switch {
	case err == nil:
		return "completed"
	case errors.Is(err, shop.ErrAlreadyOwned):
		return "already_owned"
	case errors.Is(err, shop.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, shop.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Purchase godoc
// @Summary   Buy a game or a DLC with the account balance
// @Tags      store
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body models.PurchaseInput true "item"
// @Success   201 {object} shop.Receipt
// @Failure   402 {object} ErrorResponse
// @Failure   404 {object} ErrorResponse
// @Failure   409 {object} ErrorResponse
// @Router    /purchases [post]
func (h *Handler) Purchase(c *gin.Context) {
	var in models.PurchaseInput
	if !bind(c, &in) {
		return
	}
	kind, ok := models.ParseItemKind(in.ItemKind)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "item_kind must be game or dlc"})
		return
	}

	sess := session(c)
	receipt, err := h.shop.Purchase(c.Request.Context(), sess, kind, in.ItemID)
	price := decimal.Zero
	if receipt != nil {
		price = receipt.Price
	}
	monitoring.RecordPurchase(string(kind), purchaseOutcome(err), price)
	if err != nil {
		respondError(c, err)
		return
	}

	logFields(c, logrus.Fields{
		"account_id": sess.AccountID,
		"item_kind":  kind,
		"item_id":    in.ItemID,
		"price":      receipt.Price.String(),
	}).Info("purchase completed")
	h.publish(c, events.SubjectPurchaseCompleted, events.PurchaseCompleted{
		AccountID:   sess.AccountID,
		ItemKind:    string(kind),
		ItemID:      in.ItemID,
		GameID:      receipt.Ownership.GameID,
		DeveloperID: receipt.DeveloperID,
		Price:       receipt.Price,
		At:          time.Now().UTC(),
	})
	c.JSON(http.StatusCreated, receipt)
}
