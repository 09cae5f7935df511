package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/bookswap/backend/internal/infrastructure/auth"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the guard chain
const (
	IdentityKey   = "auth_identity"
	ClaimsKey     = "auth_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication guard
type AuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Users resolves the token subject to a live identity
	Users identity.UserRepository
	// TokenBlacklist is optional; when set, revoked tokens are rejected
	TokenBlacklist auth.TokenBlacklist
	// Logger for guard logging
	Logger *zap.Logger
}

// Authenticate returns the authentication guard. It resolves the bearer
// token to a User and attaches it to the request context. The role is read
// from the identity store on every request, so role changes apply without
// reissuing tokens.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Token has expired")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open for availability; the token still carries a
				// valid signature and expiry
				log.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		subjectID, err := claims.SubjectUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		user, err := cfg.Users.FindByID(c.Request.Context(), subjectID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortUnauthorized(c, "User not found")
				return
			}
			log.Error("Failed to resolve token subject",
				zap.String("subject", subjectID.String()),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("An unexpected error occurred"))
			return
		}

		c.Set(IdentityKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole returns the authorization guard. It must be stacked after
// Authenticate and fails with 403 unless the attached identity carries
// exactly the given role. Role checks are not hierarchical.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetIdentity(c)
		if user == nil {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		if !user.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the authenticated user from the gin context,
// or nil when the request did not pass the authentication guard
func GetIdentity(c *gin.Context) *identity.User {
	if value, exists := c.Get(IdentityKey); exists {
		if user, ok := value.(*identity.User); ok {
			return user
		}
	}
	return nil
}

// GetClaims retrieves the validated token claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
