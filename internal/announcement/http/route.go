package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the announcement endpoints. Authorization is the
// service's per-operation identity check rather than router middleware:
// /active is public, and the rest take the caller identifier as input.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/announcements")

	group.GET("/active", h.GetActive)
	group.GET("/all", h.ListAll)
	group.POST("", h.Create)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
