// Package handlers exposes the storefront over HTTP with gin.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gamecenter/auth"
	"gamecenter/cache"
	"gamecenter/events"
	"gamecenter/middleware"
	"gamecenter/shop"
	"gamecenter/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	shop    *shop.Service
	tokens  *auth.Issuer
	revoker auth.Revoker
	cache   *cache.Cache
	events  events.Publisher
}

// Deps are the collaborators of a Handler. Cache may be nil and Events
// defaults to events.Discard.
type Deps struct {
	Shop    *shop.Service
	Tokens  *auth.Issuer
	Revoker auth.Revoker
	Cache   *cache.Cache
	Events  events.Publisher
}

func New(d Deps) *Handler {
	h := &Handler{
		shop:    d.Shop,
		tokens:  d.Tokens,
		revoker: d.Revoker,
		cache:   d.Cache,
		events:  d.Events,
	}
	if h.events == nil {
		h.events = events.Discard{}
	}
	if h.revoker == nil {
		h.revoker = auth.NewMemoryRevoker()
	}
	return h
}

// Mount registers every storefront route on rg.
func (h *Handler) Mount(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)

	rg.GET("/games", h.ListGames)
	rg.GET("/games/search", h.SearchGames)
	rg.GET("/games/:id", h.OptionalSession(), h.GetGame)

	protected := rg.Group("/", h.RequireSession())
	{
		protected.POST("/auth/logout", h.Logout)

		protected.GET("/account", h.Me)
		protected.POST("/account/topup", h.TopUp)
		protected.GET("/library", h.GetLibrary)

		protected.POST("/games/:id/rating", h.RateGame)
		protected.POST("/games/:id/wishlist", h.AddWishlist)
		protected.DELETE("/games/:id/wishlist", h.RemoveWishlist)

		protected.POST("/purchases", h.Purchase)

		protected.POST("/friends", h.AddFriend)
		protected.DELETE("/friends/:id", h.RemoveFriend)

		protected.GET("/developer/dashboard", h.Dashboard)
		protected.POST("/developer/games", h.PublishGame)
		protected.POST("/developer/games/:id/dlcs", h.PublishDLC)
	}
}

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps shop errors to HTTP statuses. Unknown errors are logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, shop.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, shop.ErrInsufficientFunds):
		status, msg = http.StatusPaymentRequired, "Insufficient funds"
	case errors.Is(err, shop.ErrNotDeveloper):
		status, msg = http.StatusForbidden, "Developer access only"
	case errors.Is(err, shop.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, shop.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, shop.ErrEmailTaken):
		status, msg = http.StatusConflict, "Email already registered"
	case errors.Is(err, shop.ErrAlreadyOwned):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, shop.ErrInvalidInput), errors.Is(err, shop.ErrSelfLink):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// bind decodes the JSON body into dst and validates it. It writes the 400
// response itself and reports false when the input is unusable.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.ValidationErrorResponse(c, err)
		c.Abort()
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// publish sends an event after the change is committed. A broker failure
// does not fail the request.
func (h *Handler) publish(c *gin.Context, subject string, event interface{}) {
	if err := h.events.Publish(c.Request.Context(), subject, event); err != nil {
		utils.Log.WithError(err).WithField("subject", subject).Warn("event not published")
	}
}

func cacheWarn(err error, msg string) {
	if err != nil {
		utils.Log.WithError(err).Warn(msg)
	}
}

func logFields(c *gin.Context, fields logrus.Fields) *logrus.Entry {
	if id, ok := c.Get(middleware.RequestIDKey); ok {
		fields["request_id"] = id
	}
	return utils.Log.WithFields(fields)
}
