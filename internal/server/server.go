// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "yapp/docs" // swagger docs
	"yapp/internal/cache"
	"yapp/internal/config"
	"yapp/internal/database"
	"yapp/internal/middleware"
	"yapp/internal/repository"
	"yapp/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config       *config.Config
	db           *gorm.DB
	redis        *redis.Client
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	mediaRepo    repository.MediaRepository
	downvoteRepo repository.DownvoteRepository
	badWordRepo  repository.BadWordRepository
	userService  *service.UserService
	feedService  *service.FeedService
	profanity    *service.ProfanityService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	downvoteRepo := repository.NewDownvoteRepository(db)
	badWordRepo := repository.NewBadWordRepository(db)

	profanity := service.NewProfanityService(badWordRepo)

	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     userRepo,
		postRepo:     postRepo,
		mediaRepo:    mediaRepo,
		downvoteRepo: downvoteRepo,
		badWordRepo:  badWordRepo,
		userService:  service.NewUserService(userRepo, mediaRepo),
		feedService:  service.NewFeedService(postRepo, profanity),
		profanity:    profanity,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry tracing
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	prom := fiberprometheus.New("yapp-api")
	prom.RegisterAt(app, "/api/metrics")
	app.Use(prom.Middleware)

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api/swagger/index.html", fiber.StatusFound)
	})

	api := app.Group("/api")

	// Liveness probes
	api.Get("/status", s.Status)
	api.Get("/status/db", s.StatusDB)

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Authentication
	api.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Post("/logout", s.Logout)
	api.Patch("/change_password", s.ChangePassword)

	// Users
	api.Put("/user", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.CreateUser)
	api.Patch("/user", s.UpdateUser)
	api.Get("/user", s.GetAllUsers)
	api.Get("/user/:id", s.GetUserProfile)

	// Posts and downvotes; the downvote routes precede the generic /post/:id
	api.Put("/post/downvote/:id", s.AddDownvote)
	api.Delete("/post/downvote/:id", s.RemoveDownvote)
	api.Put("/post", s.CreatePost)
	api.Get("/post", s.GetFeed)
	api.Delete("/post/:id", s.DeletePost)

	// Media
	api.Put("/media", s.CreateMedia)
}

// Status handles GET /api/status
// @Summary API liveness probe
// @Tags Status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /status [get]
func (s *Server) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "API is online"})
}

// StatusDB handles GET /api/status/db
// @Summary Database liveness probe
// @Tags Status
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} models.ErrorResponse
// @Router /status/db [get]
func (s *Server) StatusDB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "database unavailable",
		})
	}
	return c.JSON(fiber.Map{"message": "database is online"})
}

// Shutdown gracefully releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
