package middleware

import (
	"context"
	"errors"
	"strings"

	"sankofa/internal/config"
	"sankofa/internal/domain/user"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// Accounts loads the stored account behind a verified token.
type Accounts interface {
	Resolve(ctx context.Context, id uuid.UUID, email, role string) (*user.User, error)
}

// AuthMiddleware verifies the bearer token issued by Supabase Auth. Websocket
// clients that cannot set headers may pass it as the token query parameter.
// With accounts set, the stored role and status decide access rather than
// the token claims, so deactivation and role changes apply immediately.
func AuthMiddleware(cfg *config.Config, accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, appErrors.Unauthorized("MISSING_TOKEN", "Authorization header required"))
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			logger.Debug("token rejected", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			abortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		userID, err := claims.Identity()
		if err != nil {
			abortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		email, role := claims.Email, claims.AppRole()
		if accounts != nil {
			account, err := accounts.Resolve(c.Request.Context(), userID, email, role)
			if err != nil {
				logger.Warn("account lookup failed",
					zap.String("request_id", GetRequestID(c)),
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				if errors.Is(err, user.ErrUserNotFound) {
					err = appErrors.ErrUnauthorized
				}
				abortWithError(c, err)
				return
			}
			if !account.IsActive() {
				abortWithError(c, user.ErrUserInactive)
				return
			}
			email, role = account.Email, string(account.Role)
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, email)
		c.Set(ContextRole, role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, true
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUserID returns the authenticated caller's id.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, appErrors.ErrUnauthorized
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, appErrors.ErrUnauthorized
	}
	return id, nil
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

func CurrentEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

func abortWithError(c *gin.Context, err error) {
	utils.ErrorResponse(c, appErrors.StatusOf(err), appErrors.MessageOf(err))
	c.Abort()
}
