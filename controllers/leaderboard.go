package controllers

import (
	"net/http"
	"strings"

	"Gamenight/services/points"

	"github.com/gin-gonic/gin"
)

// @Summary Query a leaderboard
// @Description Returns the sorted rows of the global, per-game or per-region leaderboard
// @Tags leaderboard
// @Produce json
// @Param scope query string false "Scope: global, game or region" default(global)
// @Param game query string false "Game name (scope=game)"
// @Param region query string false "Region key (scope=region)"
// @Success 200 {object} object{scope=string,rows=[]object{userId=string,username=string,points=integer}}
// @Router /leaderboard [get]
func GetLeaderboard(pointsStore *points.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := strings.ToLower(c.DefaultQuery("scope", "global"))
		switch scope {
		case "game":
			gameType := c.Query("game")
			c.JSON(http.StatusOK, gin.H{"scope": "game", "game": gameType, "rows": pointsStore.ForGame(gameType)})
		case "region":
			region := c.Query("region")
			c.JSON(http.StatusOK, gin.H{"scope": "region", "region": points.NormalizeRegion(region), "rows": pointsStore.ForRegion(region)})
		default:
			c.JSON(http.StatusOK, gin.H{"scope": "global", "rows": pointsStore.Global()})
		}
	}
}
