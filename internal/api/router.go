package api

import (
	"strings"

	"github.com/classpage/announcements-backend/internal/announcement"
	annHttp "github.com/classpage/announcements-backend/internal/announcement/http"
	"github.com/classpage/announcements-backend/internal/auth"
	"github.com/classpage/announcements-backend/internal/user"
	userHttp "github.com/classpage/announcements-backend/internal/user/http"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService user.Service
	AnnService  announcement.Service
	JWTManager  *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Recovery) and registers routes for
// the user and announcement modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger writes request lines to the console; Recovery converts panics
	// into 500 responses instead of crashing the server.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the JWT on the user-facing endpoints.
	// Announcement operations are gated inside the service by the
	// user-existence check instead.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	annHandler := annHttp.NewHandler(cfg.AnnService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		annHttp.RegisterRoutes(v1, annHandler)
	}

	return r
}
