package controllers

import (
	"net/http"

	"Gamenight/services/analytics"

	"github.com/gin-gonic/gin"
)

// @Summary Query the analytics log
// @Description Returns the recorded analytics sessions and rounds
// @Tags analytics
// @Produce json
// @Success 200 {object} object{sessions=[]object,rounds=[]object}
// @Router /auth/analytics [get]
func GetAnalytics(analyticsLog *analytics.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, rounds := analyticsLog.Snapshot()
		c.JSON(http.StatusOK, gin.H{"sessions": sessions, "rounds": rounds})
	}
}
