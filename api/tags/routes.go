package tags

import (
	"github.com/gin-gonic/gin"

	"github.com/screenlab/screener-api/api/types"
)

// RegisterRoutes registers tag-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListTags(deps))
	router.POST("", CreateTag(deps))
	router.GET("/:id", GetTag(deps))
	router.PUT("/:id", UpdateTag(deps))
	router.DELETE("/:id", DeleteTag(deps))
}
