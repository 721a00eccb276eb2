package handlers

import (
	"net/http"
	"strings"
	"time"

	"gamecenter/auth"
	"gamecenter/events"
	"gamecenter/middleware"
	"gamecenter/models"
	"gamecenter/monitoring"
	"gamecenter/shop"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	sessionKey = "session"
	claimsKey  = "claims"
)

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

// authenticate resolves the bearer token of the request. It returns nil
// claims without an error when the request carries no token.
func (h *Handler) authenticate(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, auth.ErrInvalidToken
	}

	claims, err := h.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	revoked, err := h.revoker.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrRevoked
	}
	return claims, nil
}

func setSession(c *gin.Context, claims *auth.Claims) {
	id, _ := claims.AccountID()
	c.Set(sessionKey, shop.Session{AccountID: id})
	c.Set(claimsKey, claims)
	c.Set(middleware.AccountIDKey, id)
}

// RequireSession rejects requests without a valid, unrevoked session token.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.authenticate(c)
		if err != nil || claims == nil {
			if err != nil {
				logFields(c, logrus.Fields{"error": err.Error()}).Debug("session rejected")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Login required"})
			return
		}
		setSession(c, claims)
		c.Next()
	}
}

// OptionalSession attaches the session when the token is valid and ignores
// it otherwise.
func (h *Handler) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := h.authenticate(c); err == nil && claims != nil {
			setSession(c, claims)
		}
		c.Next()
	}
}

func session(c *gin.Context) shop.Session {
	return c.MustGet(sessionKey).(shop.Session)
}

func optionalSession(c *gin.Context) *shop.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess := v.(shop.Session)
	return &sess
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body models.RegisterInput true "account"
// @Success  201 {object} models.Account
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in models.RegisterInput
	if !bind(c, &in) {
		return
	}

	account, err := h.shop.Register(c.Request.Context(), shop.RegisterParams{
		Nickname: in.Nickname,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logFields(c, logrus.Fields{"account_id": account.ID, "role": account.Role}).Info("account registered")
	h.publish(c, events.SubjectAccountRegistered, events.AccountRegistered{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      string(account.Role),
		At:        account.CreatedAt,
	})
	c.JSON(http.StatusCreated, account)
}

// Login godoc
// @Summary  Exchange credentials for a session token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body models.LoginInput true "credentials"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bind(c, &in) {
		return
	}

	account, err := h.shop.Authenticate(c.Request.Context(), in.Email, in.Password)
	monitoring.RecordLogin(err == nil)
	if err != nil {
		respondError(c, err)
		return
	}

	token, claims, err := h.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   account,
	})
}

// Logout godoc
// @Summary   Revoke the current session token
// @Tags      auth
// @Security  BearerAuth
// @Success   200 {object} map[string]string
// @Failure   401 {object} ErrorResponse
// @Router    /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*auth.Claims)
	if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
