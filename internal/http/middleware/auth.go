package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey   = "userID"
	ContextRoleKey     = "role"
	ContextIdentityKey = "identity"
)

// Authenticator проверяет токен и возвращает вызывающего.
type Authenticator interface {
	Authenticate(token string) (valueobject.Identity, error)
}

// AuthMiddleware проверяет Bearer токен и кладёт Identity в контекст.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, apperror.ErrUnauthorized)
			return
		}

		identity, err := auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(ContextUserIDKey, identity.UserID)
		c.Set(ContextRoleKey, string(identity.Role))
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// RequireRole пропускает только перечисленные роли.
func RequireRole(roles ...valueobject.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.AbortError(c, apperror.ErrUnauthorized)
			return
		}
		if err := identity.Require(roles...); err != nil {
			response.AbortError(c, err)
			return
		}
		c.Next()
	}
}

// IdentityFrom достаёт вызывающего, положенного AuthMiddleware.
func IdentityFrom(c *gin.Context) (valueobject.Identity, bool) {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return valueobject.Identity{}, false
	}
	identity, ok := v.(valueobject.Identity)
	return identity, ok
}
