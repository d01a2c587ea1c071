package tags

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/internal/models"
	tagsvc "github.com/screenlab/screener-api/internal/services/tags"
)

// ListTags returns every stored tag
// @Summary      List tags
// @Description  Retrieve all tags across all videos
// @Tags         tags
// @Produce      json
// @Success      200 {array} models.Tag "List of tags"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/tags [get]
func ListTags(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := deps.TagService.ListTags(c.Request.Context())
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

// GetTag returns a single tag
// @Summary      Get tag
// @Description  Retrieve one tag by its id
// @Tags         tags
// @Produce      json
// @Param        id path string true "Tag ID"
// @Success      200 {object} models.Tag "Tag"
// @Failure      404 {object} types.ErrorResponse "Tag not found"
// @Router       /api/v1/tags/{id} [get]
func GetTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		tag, err := deps.TagService.GetTagByUUID(c.Request.Context(), tagID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, tag)
	}
}

// CreateTag creates a new tag
// @Summary      Create tag
// @Description  Create a named, colored tag bound to a time interval of a video
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        tag body models.Tag true "Tag data"
// @Success      201 {object} models.Tag "Created tag"
// @Failure      400 {object} types.ErrorResponse "Missing or malformed field"
// @Router       /api/v1/tags [post]
func CreateTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tag models.Tag
		if !types.BindJSONOrError(c, &tag) {
			return
		}

		if err := deps.TagService.CreateTag(c.Request.Context(), &tag); err != nil {
			types.SendError(c, err)
			return
		}
		deps.Sessions.TagCreated(&tag)

		deps.Logger.Debug().
			Str("tag_id", tag.UUID).
			Str("video_id", tag.VideoUUID).
			Msg("Tag created")
		c.JSON(http.StatusCreated, tag)
	}
}

type updateTagRequest struct {
	Name              *string `json:"name"`
	Color             *string `json:"color"`
	Description       *string `json:"description"`
	TimeIntervalStart *string `json:"timeIntervalstart"`
	TimeIntervalEnd   *string `json:"timeIntervalend"`
}

// patch converts the request into a service-level partial update. Fields
// absent from the body, and present-but-empty strings, keep stored values;
// description alone may be set to empty.
func (r *updateTagRequest) patch() tagsvc.TagUpdate {
	update := tagsvc.TagUpdate{Description: r.Description}
	if r.Name != nil && *r.Name != "" {
		update.Name = r.Name
	}
	if r.Color != nil && *r.Color != "" {
		update.Color = r.Color
	}
	if r.TimeIntervalStart != nil && *r.TimeIntervalStart != "" {
		update.TimeIntervalStart = r.TimeIntervalStart
	}
	if r.TimeIntervalEnd != nil && *r.TimeIntervalEnd != "" {
		update.TimeIntervalEnd = r.TimeIntervalEnd
	}
	return update
}

// UpdateTag applies a partial patch to an existing tag
// @Summary      Update tag
// @Description  Update a tag's fields; unspecified fields keep prior values
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path string true "Tag ID"
// @Param        tag body updateTagRequest true "Fields to update"
// @Success      200 {object} models.Tag "Updated tag"
// @Failure      400 {object} types.ErrorResponse "Malformed field"
// @Failure      404 {object} types.ErrorResponse "Tag not found"
// @Router       /api/v1/tags/{id} [put]
func UpdateTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req updateTagRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		tag, err := deps.TagService.UpdateTag(c.Request.Context(), tagID, req.patch())
		if err != nil {
			types.SendError(c, err)
			return
		}
		deps.Sessions.TagUpdated(tag)
		c.JSON(http.StatusOK, tag)
	}
}

// DeleteTag deletes a tag
// @Summary      Delete tag
// @Description  Delete an existing tag by id
// @Tags         tags
// @Param        id path string true "Tag ID"
// @Success      204 "Tag deleted"
// @Failure      404 {object} types.ErrorResponse "Tag not found"
// @Router       /api/v1/tags/{id} [delete]
func DeleteTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		// The row is gone after the delete, so the video binding needed for
		// the overlay broadcast has to be read first.
		tag, err := deps.TagService.GetTagByUUID(c.Request.Context(), tagID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		if err := deps.TagService.DeleteTag(c.Request.Context(), tagID); err != nil {
			types.SendError(c, err)
			return
		}
		deps.Sessions.TagDeleted(tag.VideoUUID, tagID)
		c.Status(http.StatusNoContent)
	}
}
