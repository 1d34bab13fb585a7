package middleware

import (
	"net/http"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWTAuthMiddleware rejects requests without a valid bearer access token and
// stores the caller's user_id and role in the context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := helpers.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		claims, err := helpers.ParseAccessToken(secret, tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		c.Set("user_id", userID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// StaffOnlyMiddleware must run after JWTAuthMiddleware.
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleStaff {
			helpers.RespondWithError(c, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}
