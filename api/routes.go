package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/screenlab/screener-api/api/health"
	playerws "github.com/screenlab/screener-api/api/player"
	"github.com/screenlab/screener-api/api/tags"
	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/api/version"
	"github.com/screenlab/screener-api/api/videos"
	_ "github.com/screenlab/screener-api/docs/swagger"
	"github.com/screenlab/screener-api/internal/logging"
	"github.com/screenlab/screener-api/internal/player"
	"github.com/screenlab/screener-api/internal/services/generation"
	"github.com/screenlab/screener-api/internal/services/media"
	tagsService "github.com/screenlab/screener-api/internal/services/tags"
	videosService "github.com/screenlab/screener-api/internal/services/videos"
	"github.com/screenlab/screener-api/pkg/config"
	"github.com/screenlab/screener-api/pkg/ffmpeg"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.DB == nil || deps.DB.DB == nil {
		return fmt.Errorf("database is not configured")
	}

	if err := initializeServices(deps, cfg); err != nil {
		return err
	}

	// Uploaded media is served statically, same paths the video records carry.
	engine.Static(media.PublicPrefix, deps.MediaStore.BasePath())

	v1 := engine.Group("/api/v1")

	// Video routes with general rate limiting (10 req/s, burst of 20)
	videoGroup := v1.Group("/videos")
	videoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	videos.RegisterRoutes(videoGroup, deps)

	// Tag routes with general rate limiting (10 req/s, burst of 20)
	tagGroup := v1.Group("/tags")
	tagGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	tags.RegisterRoutes(tagGroup, deps)

	// Player WebSocket; no rate limit, the session is long-lived.
	playerGroup := v1.Group("/player")
	playerws.RegisterRoutes(playerGroup, deps)

	return nil
}

// initializeServices wires the service graph behind the handlers
func initializeServices(deps *types.Dependencies, cfg *config.Config) error {
	if deps.Sessions == nil {
		deps.Sessions = player.NewRegistry()
	}

	if deps.MediaStore == nil {
		store, err := media.NewLocalStore(cfg.Storage.UploadsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize media store: %w", err)
		}
		deps.MediaStore = store
	}

	if deps.VideoService == nil {
		videoRepo := videosService.NewRepository(deps.DB.DB)
		deps.VideoService = videosService.NewService(videoRepo, deps.MediaStore)
	}

	if deps.TagService == nil {
		tagRepo := tagsService.NewRepository(deps.DB.DB)
		deps.TagService = tagsService.NewService(tagRepo)
	}

	if deps.Waveforms == nil {
		deps.Waveforms = ffmpeg.New(cfg.Waveform.FFmpegPath, cfg.Waveform.FFprobePath, cfg.Waveform.Timeout)
	}
	if deps.WaveformResolution <= 0 {
		deps.WaveformResolution = cfg.Waveform.Resolution
	}

	if deps.GenerationService == nil {
		generationLogger := logging.WithComponent(deps.Logger, "generation")
		runner := generation.NewScriptRunner(
			cfg.Generation.PythonBin,
			cfg.Generation.ScriptPath,
			cfg.Generation.Timeout,
			generationLogger,
		)
		svc, err := generation.NewService(
			runner,
			deps.VideoService,
			deps.MediaStore,
			deps.TagService,
			cfg.Storage.GeneratedTagsDir,
			generationLogger,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize generation service: %w", err)
		}
		deps.GenerationService = svc
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
