package player

import (
	"github.com/gin-gonic/gin"

	"github.com/screenlab/screener-api/api/types"
)

// RegisterRoutes registers the player WebSocket route
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/session", Connect(deps))
}
