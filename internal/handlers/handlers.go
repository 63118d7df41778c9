package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imagedrop/api/internal/config"
	"imagedrop/api/internal/metrics"
	"imagedrop/api/internal/repository"
	"imagedrop/api/internal/service"
	"imagedrop/api/internal/storage"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	uploads   *service.UploadService
	db        *pgxpool.Pool
	cache     *redis.Client
	collector *metrics.Collector
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, blobs *storage.Disk, collector *metrics.Collector, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)

	auth := service.NewAuthService(
		userRepo,
		cfg.Security.JWTSecret,
		cfg.Security.TokenTTL,
		cfg.Postgres.StoreTimeout,
		log,
	)
	uploads := service.NewUploadService(
		imageRepo,
		blobs,
		cfg.Upload.PublicPath,
		cfg.Upload.MaxFiles,
		cfg.Upload.MaxFileBytes,
		cfg.Postgres.StoreTimeout,
		log,
	)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		auth:      auth,
		uploads:   uploads,
		db:        db,
		cache:     cache,
		collector: collector,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.GET("/check-login-status", h.CheckLoginStatus)
		auth.POST("/logout", h.Logout)
		auth.POST("/upload-images", h.UploadImages)
		auth.GET("/images", h.ListImages)
	}
}
