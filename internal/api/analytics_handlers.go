package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-decisions/internal/analytics"
	"go-decisions/internal/db"
)

// GET /analytics/overview
func AnalyticsOverviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		overview, err := analytics.ComputeOverview(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}
