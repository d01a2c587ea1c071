package videos

import (
	"github.com/gin-gonic/gin"

	"github.com/screenlab/screener-api/api/types"
)

// RegisterRoutes registers video-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListVideos(deps))
	router.POST("", CreateVideo(deps))
	router.GET("/:id", GetVideo(deps))
	router.PUT("/:id", UpdateVideo(deps))
	router.DELETE("/:id", DeleteVideo(deps))

	router.GET("/:id/tags", GetVideoTags(deps))
	router.POST("/:id/generate-tags", GenerateTags(deps))
}
