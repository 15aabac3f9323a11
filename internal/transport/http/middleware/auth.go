package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gophertrophy/internal/app"
	"gophertrophy/internal/model"
	"gophertrophy/internal/transport/http/response"
)

const ContextUserKey = "auth_user"

// RequireAuth resolves the caller through the auth guard at the given
// privilege level and stores the user in the gin context.
func RequireAuth(authService *app.AuthService, level app.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.Authenticate(c.GetHeader("Authorization"), level)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrMissingCredentials):
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			case errors.Is(err, app.ErrInvalidToken):
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			case errors.Is(err, app.ErrInsufficientPrivilege):
				response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
			default:
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFromContext returns the user placed by RequireAuth.
func UserFromContext(c *gin.Context) (*model.User, bool) {
	userAny, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := userAny.(*model.User)
	return user, ok
}
