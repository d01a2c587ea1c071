package videos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/internal/models"
)

// ListVideos returns the whole video library
// @Summary      List videos
// @Description  Retrieve all videos in insertion order
// @Tags         videos
// @Produce      json
// @Success      200 {array} models.Video "List of videos"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/videos [get]
func ListVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := deps.VideoService.ListVideos(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		if videos == nil {
			videos = []models.Video{}
		}
		c.JSON(http.StatusOK, videos)
	}
}

// GetVideo returns a single video
// @Summary      Get video
// @Description  Retrieve one video by its id
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200 {object} models.Video "Video"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{id} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		video, err := deps.VideoService.GetVideoByUUID(c.Request.Context(), videoID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// CreateVideo adds a new video. An uploaded file becomes a direct video
// stored under /uploads; a "url" form value instead registers an external
// video without local media.
// @Summary      Add video
// @Description  Upload a video file, or register an external video by URL
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        name formData string true "Video name"
// @Param        file formData file false "Video file"
// @Param        url formData string false "External video URL (instead of a file)"
// @Success      201 {object} models.Video "Created video"
// @Failure      400 {object} types.ErrorResponse "Missing file or name"
// @Router       /api/v1/videos [post]
func CreateVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			types.SendBadRequest(c, "Video name is required")
			return
		}

		video := models.Video{Name: name}

		fileHeader, err := c.FormFile("file")
		switch {
		case err == nil:
			file, err := fileHeader.Open()
			if err != nil {
				types.SendBadRequest(c, "Could not read uploaded file")
				return
			}
			defer file.Close()

			publicPath, err := deps.MediaStore.SaveUpload(c.Request.Context(), fileHeader.Filename, file)
			if err != nil {
				types.SendError(c, err)
				return
			}
			video.Path = publicPath
			video.SourceType = models.SourceDirect

		case c.PostForm("url") != "":
			video.Path = c.PostForm("url")
			video.SourceType = models.SourceYouTube

		default:
			types.SendBadRequest(c, "No file selected")
			return
		}

		if err := deps.VideoService.CreateVideo(c.Request.Context(), &video); err != nil {
			types.SendError(c, err)
			return
		}

		deps.Logger.Info().
			Str("video_id", video.UUID).
			Str("path", video.Path).
			Msg("Video created")
		c.JSON(http.StatusCreated, video)
	}
}

type updateVideoRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// UpdateVideo applies a partial patch to a video
// @Summary      Update video
// @Description  Update a video's name and/or path; empty fields keep prior values
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        id path string true "Video ID"
// @Param        video body updateVideoRequest true "Fields to update"
// @Success      200 {object} models.Video "Updated video"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{id} [put]
func UpdateVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req updateVideoRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		video, err := deps.VideoService.UpdateVideo(c.Request.Context(), videoID, req.Name, req.Path)
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// DeleteVideo removes a video, its tags and its media file
// @Summary      Delete video
// @Description  Delete a video; its tags and backing media file go with it
// @Tags         videos
// @Param        id path string true "Video ID"
// @Success      204 "Video deleted"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{id} [delete]
func DeleteVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		if err := deps.VideoService.DeleteVideo(c.Request.Context(), videoID); err != nil {
			types.SendError(c, err)
			return
		}

		deps.Logger.Info().Str("video_id", videoID).Msg("Video deleted")
		c.Status(http.StatusNoContent)
	}
}

// GetVideoTags returns the tags bound to one video
// @Summary      Get tags for video
// @Description  Retrieve all tags of a video in insertion order
// @Tags         tags
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200 {array} models.Tag "List of tags"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{id}/tags [get]
func GetVideoTags(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		if _, err := deps.VideoService.GetVideoByUUID(c.Request.Context(), videoID); err != nil {
			types.SendError(c, err)
			return
		}

		tags, err := deps.TagService.GetTagsByVideoUUID(c.Request.Context(), videoID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		c.JSON(http.StatusOK, tags)
	}
}

// GenerateTags runs the external analyzer for a video and stores the
// resulting tags
// @Summary      Generate tags
// @Description  Run the analyzer over a video's media and persist the detected tags
// @Tags         tags
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200 {object} types.GenerateTagsResponse "Analyzer findings"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Failure      500 {object} types.ErrorResponse "Analyzer failure with diagnostic excerpt"
// @Router       /api/v1/videos/{id}/generate-tags [post]
func GenerateTags(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		result, err := deps.GenerationService.GenerateTags(c.Request.Context(), videoID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		deps.Sessions.MergeGenerated(videoID, result.Created)

		c.JSON(http.StatusOK, types.GenerateTagsResponse{
			Status: types.StatusDone,
			Tags:   result.Raw,
		})
	}
}
