package videos

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/internal/models"
	"github.com/screenlab/screener-api/internal/services/generation"
	"github.com/screenlab/screener-api/internal/services/media"
	tagsvc "github.com/screenlab/screener-api/internal/services/tags"
	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// MockVideoService is a mock implementation of the video service
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) CreateVideo(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	if args.Error(0) == nil && video.UUID == "" {
		video.UUID = "vid-assigned"
	}
	return args.Error(0)
}

func (m *MockVideoService) GetVideoByUUID(ctx context.Context, uuid string) (*models.Video, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoService) ListVideos(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoService) UpdateVideo(ctx context.Context, uuid string, name, path string) (*models.Video, error) {
	args := m.Called(ctx, uuid, name, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoService) DeleteVideo(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// MockTagService covers the slice of the tag service the video routes use
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) CreateTag(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
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

// MockGenerationService is a mock implementation of the generation service
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateTags(ctx context.Context, videoUUID string) (*generation.Result, error) {
	args := m.Called(ctx, videoUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.Result), args.Error(1)
}

func setupRouter(t *testing.T, deps *types.Dependencies) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps.Logger = zerolog.Nop()
	if deps.MediaStore == nil {
		store, err := media.NewLocalStore(t.TempDir())
		require.NoError(t, err)
		deps.MediaStore = store
	}
	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/videos"), deps)
	return engine
}

func TestCreateVideoHandler(t *testing.T) {
	t.Run("upload creates direct video under /uploads", func(t *testing.T) {
		videoSvc := new(MockVideoService)
		videoSvc.On("CreateVideo", mock.Anything, mock.AnythingOfType("*models.Video")).Return(nil)
		router := setupRouter(t, &types.Dependencies{VideoService: videoSvc})

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("name", "demo"))
		part, err := writer.CreateFormFile("file", "demo.mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte("not really mp4 bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created models.Video
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "demo", created.Name)
		assert.Equal(t, models.SourceDirect, created.SourceType)
		assert.Regexp(t, `^/uploads/[0-9a-f-]+\.mp4$`, created.Path)
	})

	t.Run("url registers external video", func(t *testing.T) {
		videoSvc := new(MockVideoService)
		videoSvc.On("CreateVideo", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
			return v.SourceType == models.SourceYouTube && v.Path == "https://youtu.be/abc"
		})).Return(nil)
		router := setupRouter(t, &types.Dependencies{VideoService: videoSvc})

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("name", "external"))
		require.NoError(t, writer.WriteField("url", "https://youtu.be/abc"))
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		videoSvc.AssertExpectations(t)
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		router := setupRouter(t, &types.Dependencies{VideoService: new(MockVideoService)})

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Video name is required")
	})

	t.Run("missing file and url returns 400", func(t *testing.T) {
		router := setupRouter(t, &types.Dependencies{VideoService: new(MockVideoService)})

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("name", "demo"))
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No file selected")
	})
}

func TestGetVideoTagsHandler(t *testing.T) {
	t.Run("returns empty array rather than null", func(t *testing.T) {
		videoSvc := new(MockVideoService)
		videoSvc.On("GetVideoByUUID", mock.Anything, "vid-1").Return(&models.Video{UUID: "vid-1"}, nil)
		tagSvc := new(MockTagService)
		tagSvc.On("GetTagsByVideoUUID", mock.Anything, "vid-1").Return(nil, nil)
		router := setupRouter(t, &types.Dependencies{VideoService: videoSvc, TagService: tagSvc})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/tags", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("unknown video returns 404 before listing tags", func(t *testing.T) {
		videoSvc := new(MockVideoService)
		videoSvc.On("GetVideoByUUID", mock.Anything, "missing").
			Return(nil, apperrors.NotFound("video", "missing"))
		tagSvc := new(MockTagService)
		router := setupRouter(t, &types.Dependencies{VideoService: videoSvc, TagService: tagSvc})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos/missing/tags", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		tagSvc.AssertNotCalled(t, "GetTagsByVideoUUID", mock.Anything, mock.Anything)
	})
}

func TestGenerateTagsHandler(t *testing.T) {
	t.Run("echoes analyzer document verbatim", func(t *testing.T) {
		raw := json.RawMessage(`{"00:00:05,000": ["intro"], "00:00:02,000": ["cold open"]}`)
		genSvc := new(MockGenerationService)
		genSvc.On("GenerateTags", mock.Anything, "vid-1").
			Return(&generation.Result{Raw: raw}, nil)
		router := setupRouter(t, &types.Dependencies{
			VideoService:      new(MockVideoService),
			GenerationService: genSvc,
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/videos/vid-1/generate-tags", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string          `json:"status"`
			Tags   json.RawMessage `json:"tags"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "done", resp.Status)
		assert.JSONEq(t, string(raw), string(resp.Tags))
	})

	t.Run("analyzer failure surfaces as 500 with diagnostics", func(t *testing.T) {
		genSvc := new(MockGenerationService)
		genSvc.On("GenerateTags", mock.Anything, "vid-1").
			Return(nil, apperrors.Generation("analyzer process failed", "Traceback (most recent", nil))
		router := setupRouter(t, &types.Dependencies{
			VideoService:      new(MockVideoService),
			GenerationService: genSvc,
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/videos/vid-1/generate-tags", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "GENERATION", resp.Code)
	})
}

func TestDeleteVideoHandler(t *testing.T) {
	videoSvc := new(MockVideoService)
	videoSvc.On("DeleteVideo", mock.Anything, "vid-1").Return(nil)
	router := setupRouter(t, &types.Dependencies{VideoService: videoSvc})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/videos/vid-1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
