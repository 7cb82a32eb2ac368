package api

import (
	"net/http"

	"github.com/classpage/announcements-backend/internal/auth"
	"github.com/classpage/announcements-backend/internal/pkg/response"
	"github.com/classpage/announcements-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "user not found"})
			return
		}

		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
