package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/config"
	"github.com/kolo-pohody/backend/internal/api"
	"github.com/kolo-pohody/backend/internal/database"
	"github.com/kolo-pohody/backend/internal/middleware"
	"github.com/kolo-pohody/backend/internal/service"
)

// Server assembles the database, services and HTTP router.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	cfg    *config.Config
}

// New connects to the database, runs migrations and wires every handler.
// Optional integrations (redis, LLM, S3) log a warning and are skipped
// when unconfigured.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, inspiration caching disabled: %v", err)
		redisClient = nil
	}

	var generator service.TextGenerator
	if llmService, err := service.NewLLMService(cfg); err != nil {
		log.Printf("Warning: LLM unavailable, inspiration falls back to canned content: %v", err)
	} else {
		generator = llmService
	}

	var imageService service.IImageService
	if s3Config, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Warning: S3 unavailable, avatar upload disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Config)
	}

	api.InitOAuthProviders(cfg)

	authService := service.NewAuthService(db, cfg.JWTSecret)

	router := gin.Default()
	router.Use(middleware.CORS())
	api.RegisterRoutes(router, db, authService, generator, redisClient, imageService)

	return &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}, nil
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}
	log.Printf("Starting server on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
