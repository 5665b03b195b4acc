package middleware

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

// Context keys for the authenticated principal
const (
	UserKey   = "user"
	UserIDKey = "user_id"
	TokenKey  = "token"
)

// TokenBlacklist checks whether a token has been revoked. Nil disables
// revocation checks entirely.
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret string
	userRepo  repository.UserRepository
	blacklist TokenBlacklist
}

func NewAuthMiddleware(jwtSecret string, userRepo repository.UserRepository, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		userRepo:  userRepo,
		blacklist: blacklist,
	}
}

// Authenticate validates the bearer token, resolves the principal from the
// store and attaches it to the request context. It never writes to the
// store and holds no state across requests.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.Warn("Missing or malformed authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.UnprocessableEntity(c, "Missing auth token")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if stderrors.Is(err, util.ErrExpiredToken) {
				errors.Unauthorized(c, "Token expired")
			} else {
				errors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		if m.blacklist != nil {
			revoked, err := m.blacklist.IsRevoked(c.Request.Context(), token)
			if err != nil {
				log.Error("Failed to check token blacklist", err)
				errors.InternalError(c, "Internal server error")
				c.Abort()
				return
			}
			if revoked {
				log.Warn("Rejected revoked token", map[string]interface{}{
					"user_id": claims.UserID,
				})
				errors.Unauthorized(c, "Token revoked")
				c.Abort()
				return
			}
		}

		user, err := m.userRepo.FindByID(claims.UserID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Token refers to a missing user", map[string]interface{}{
					"user_id": claims.UserID,
				})
				errors.NotFound(c, "User not found")
			} else {
				log.Error("Failed to resolve user for token", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
				errors.InternalError(c, "Internal server error")
			}
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})

		c.Next()
	}
}

// GetCurrentUser extracts the resolved principal from context
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// GetUserID extracts the principal's id from context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return value.(uint), true
}

// GetToken extracts the raw bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	return value.(string), true
}
