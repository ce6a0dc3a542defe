package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-decisions/internal/auth"
	"go-decisions/internal/config"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	subpath := cfg.Server.Subpath // e.g. "/decisions-api" or empty

	group := r.Group(subpath)
	{
		group.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Decision Analytics API"})
		})
		group.GET("/health", healthHandler)

		// Auth
		group.POST("/auth/register", RegisterHandler(cfg, rdb))
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb), MeHandler())

		// Decisions
		group.POST("/decisions", auth.AuthMiddleware(cfg, rdb), CreateDecisionHandler())
		group.GET("/decisions", auth.AuthMiddleware(cfg, rdb), ListDecisionsHandler())
		group.GET("/decisions/:id", auth.AuthMiddleware(cfg, rdb), GetDecisionHandler())
		group.PUT("/decisions/:id", auth.AuthMiddleware(cfg, rdb), UpdateDecisionHandler())
		group.POST("/decisions/:id/assumptions", auth.AuthMiddleware(cfg, rdb), AddAssumptionHandler())
		group.PATCH("/assumptions/:assumption_id", auth.AuthMiddleware(cfg, rdb), UpdateAssumptionHandler())
		group.POST("/decisions/:id/review", auth.AuthMiddleware(cfg, rdb), SubmitReviewHandler())

		// Analytics
		group.GET("/analytics/overview", auth.AuthMiddleware(cfg, rdb), AnalyticsOverviewHandler())
	}
	return r
}
