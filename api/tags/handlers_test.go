package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/internal/models"
	"github.com/screenlab/screener-api/internal/player"
	tagsvc "github.com/screenlab/screener-api/internal/services/tags"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// MockTagService is a mock implementation of the tag service
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) CreateTag(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	if args.Error(0) == nil && tag.UUID == "" {
		tag.UUID = "tag-assigned"
	}
	return args.Error(0)
}

func (m *MockTagService) GetTagByUUID(ctx context.Context, uuid string) (*models.Tag, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagService) GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error) {
	args := m.Called(ctx, videoUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagService) UpdateTag(ctx context.Context, uuid string, patch tagsvc.TagUpdate) (*models.Tag, error) {
	args := m.Called(ctx, uuid, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagService) DeleteTag(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func setupRouter(service *MockTagService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	deps := &types.Dependencies{TagService: service, Logger: zerolog.Nop()}
	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/tags"), deps)
	return engine
}

func TestCreateTagHandler(t *testing.T) {
	t.Run("creates tag and returns 201", func(t *testing.T) {
		service := new(MockTagService)
		service.On("CreateTag", mock.Anything, mock.AnythingOfType("*models.Tag")).Return(nil)
		router := setupRouter(service)

		body := `{
			"name": "intro",
			"color": "#ff0000",
			"timeIntervalstart": "00:00:05,000",
			"timeIntervalend": "00:00:10,000",
			"videoId": "vid-1"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created models.Tag
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "intro", created.Name)
		assert.NotEmpty(t, created.UUID)
	})

	t.Run("missing color returns 400 naming the field", func(t *testing.T) {
		service := new(MockTagService)
		service.On("CreateTag", mock.Anything, mock.AnythingOfType("*models.Tag")).
			Return(apperrors.MissingField("color"))
		router := setupRouter(service)

		body := `{"name": "intro", "timeIntervalstart": "00:00:05,000", "timeIntervalend": "00:00:10,000", "videoId": "vid-1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "color")
		assert.Equal(t, "MISSING_FIELD", resp.Code)
	})
}

func TestListTagsHandler(t *testing.T) {
	service := new(MockTagService)
	service.On("ListTags", mock.Anything).Return([]models.Tag{
		{UUID: "t1", Name: "intro"},
		{UUID: "t2", Name: "outro"},
	}, nil)
	router := setupRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var tags []models.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "t1", tags[0].UUID)
}

func TestUpdateTagHandler(t *testing.T) {
	t.Run("partial update keeps empty fields out of the patch", func(t *testing.T) {
		service := new(MockTagService)
		service.On("UpdateTag", mock.Anything, "t1", mock.MatchedBy(func(patch tagsvc.TagUpdate) bool {
			return patch.Name != nil && *patch.Name == "renamed" &&
				patch.Color == nil && patch.TimeIntervalStart == nil
		})).Return(&models.Tag{UUID: "t1", Name: "renamed"}, nil)
		router := setupRouter(service)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tags/t1", bytes.NewBufferString(`{"name": "renamed", "color": ""}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("unknown tag returns 404", func(t *testing.T) {
		service := new(MockTagService)
		service.On("UpdateTag", mock.Anything, "missing", mock.Anything).
			Return(nil, apperrors.NotFound("tag", "missing"))
		router := setupRouter(service)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tags/missing", bytes.NewBufferString(`{"name": "x"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type sessionVideos struct {
	video *models.Video
}

func (s sessionVideos) GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error) {
	if s.video != nil && s.video.UUID == uuid {
		return s.video, nil
	}
	return nil, apperrors.NotFound("video", uuid)
}

type sessionTags struct {
	tags []models.Tag
}

func (s sessionTags) GetTagsByVideoUUID(ctx context.Context, videoUUID string) ([]models.Tag, error) {
	return s.tags, nil
}

func waitReady(t *testing.T, events chan player.Event) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Type == "state" && e.State != nil && e.State.State == "ready" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for session to become ready")
		}
	}
}

func TestTagMutationsReachLiveSessions(t *testing.T) {
	seeded := models.Tag{
		UUID:              "t1",
		Name:              "intro",
		Color:             "#ff0000",
		TimeIntervalStart: "00:00:05,000",
		TimeIntervalEnd:   "00:00:10,000",
		VideoUUID:         "vid-1",
	}
	video := &models.Video{UUID: "vid-1", Name: "demo", Path: "yt123", SourceType: models.SourceYouTube}

	events := make(chan player.Event, 64)
	session := player.NewSession(
		sessionVideos{video: video},
		sessionTags{tags: []models.Tag{seeded}},
		nil, nil, 1000, zerolog.Nop(),
		func(e player.Event) { events <- e },
	)
	defer session.Close()
	require.NoError(t, session.Select(context.Background(), "vid-1"))
	waitReady(t, events)

	registry := player.NewRegistry()
	registry.Add(session)

	service := new(MockTagService)
	service.On("GetTagByUUID", mock.Anything, "t1").Return(&seeded, nil)
	service.On("DeleteTag", mock.Anything, "t1").Return(nil)
	service.On("CreateTag", mock.Anything, mock.AnythingOfType("*models.Tag")).Return(nil)

	gin.SetMode(gin.TestMode)
	deps := &types.Dependencies{TagService: service, Logger: zerolog.Nop(), Sessions: registry}
	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/tags"), deps)

	// Deleting the seeded tag over REST drops its region from the live overlay.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tags/t1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, session.Snapshot().Regions)

	// Creating a tag over REST projects a fresh region onto the same overlay.
	body := `{
		"name": "outro",
		"color": "#00ff00",
		"timeIntervalstart": "00:01:00,000",
		"timeIntervalend": "00:01:05,000",
		"videoId": "vid-1"
	}`
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	regions := session.Snapshot().Regions
	require.Len(t, regions, 1)
	assert.Equal(t, "region-tag-assigned", regions[0].ID)
	assert.Equal(t, "outro", regions[0].Label)

	// Updating rebuilds the region with the new values.
	renamed := models.Tag{
		UUID:              "tag-assigned",
		Name:              "finale",
		Color:             "#00ff00",
		TimeIntervalStart: "00:01:00,000",
		TimeIntervalEnd:   "00:01:05,000",
		VideoUUID:         "vid-1",
	}
	service.On("UpdateTag", mock.Anything, "tag-assigned", mock.Anything).Return(&renamed, nil)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/tags/tag-assigned", bytes.NewBufferString(`{"name": "finale"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	regions = session.Snapshot().Regions
	require.Len(t, regions, 1)
	assert.Equal(t, "finale", regions[0].Label)
}

func TestDeleteTagHandler(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		service := new(MockTagService)
		service.On("GetTagByUUID", mock.Anything, "t1").
			Return(&models.Tag{UUID: "t1", VideoUUID: "vid-1"}, nil)
		service.On("DeleteTag", mock.Anything, "t1").Return(nil)
		router := setupRouter(service)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tags/t1", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("returns 404 for unknown tag", func(t *testing.T) {
		service := new(MockTagService)
		service.On("GetTagByUUID", mock.Anything, "missing").
			Return(nil, apperrors.NotFound("tag", "missing"))
		router := setupRouter(service)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tags/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		service.AssertNotCalled(t, "DeleteTag", mock.Anything, mock.Anything)
	})
}
