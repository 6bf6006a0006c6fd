// Package server contains the HTTP transport: the Fiber app, routes,
// middleware and handlers for the API.
package server

import (
	"context"
	"log"
	"strings"
	"time"

	"scribe/internal/cache"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/seed"
	"scribe/internal/service"
	"scribe/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	tokens      *token.Service
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	demoRepo    repository.DemoRepository
	auth        *service.AuthService
	users       *service.UserService
	posts       *service.PostService
	comments    *service.CommentService
	demos       *service.DemoService
}

// NewServer creates a new server instance with all dependencies and
// seeds the role table, which is idempotent across restarts.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	srv := NewServerWithDB(cfg, db, cache.GetClient())

	if err := seed.SeedRoles(context.Background(), srv.roleRepo); err != nil {
		return nil, err
	}

	return srv, nil
}

// NewServerWithDB wires a server onto an existing database connection.
// Tests use it with an in-memory database and a nil Redis client.
func NewServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	demoRepo := repository.NewDemoRepository(db)

	tokens := token.NewService(cfg.SecretKey)

	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		tokens:      tokens,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		demoRepo:    demoRepo,
		auth:        service.NewAuthService(userRepo, roleRepo, tokens, cfg),
		users:       service.NewUserService(userRepo, roleRepo, postRepo),
		posts:       service.NewPostService(postRepo),
		comments:    service.NewCommentService(commentRepo, postRepo),
		demos:       service.NewDemoService(demoRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// Prometheus HTTP metrics
	prometheus := fiberprometheus.New("scribe")
	prometheus.RegisterAt(app, "/api/metrics")
	app.Use(prometheus.Middleware)

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/activate", s.RequireAuth, s.Activate)
	auth.Post("/resend", s.RequireAuth, s.ResendActivation)

	// Public read routes resolve an identity when a token is present
	// but never require one.
	api.Get("/users", s.LoadIdentity, s.ListUsers)
	api.Get("/users/:id/posts", s.LoadIdentity, s.GetUserPosts)
	api.Get("/users/:id", s.LoadIdentity, s.GetUser)

	api.Get("/posts", s.LoadIdentity, s.ListPosts)
	api.Get("/posts/:id/comments", s.LoadIdentity, s.GetThread)
	api.Get("/posts/:slug", s.LoadIdentity, s.GetPost)

	api.Get("/demos", s.LoadIdentity, s.ListDemos)
	api.Get("/demos/:slug", s.LoadIdentity, s.GetDemo)
	api.Get("/images/:filename", s.GetImage)

	// Protected routes
	protected := api.Group("", s.RequireAuth)

	protected.Get("/me", s.GetMyProfile)
	protected.Put("/me", s.UpdateMyProfile)
	protected.Post("/users/:id/role", s.RequirePermission(models.PermAdmin), s.AssignRole)

	protected.Post("/posts", s.RequirePermission(models.PermWrite), s.CreatePost)
	protected.Put("/posts/:id", s.UpdatePost)
	protected.Delete("/posts/:id", s.DeletePost)

	protected.Post("/posts/:id/comments",
		s.RequirePermission(models.PermComment),
		middleware.RateLimit(s.redis, 6, time.Minute, "create_comment"),
		s.CreateComment)
	protected.Put("/comments/:id", s.UpdateComment)
	protected.Post("/comments/:id/disable", s.RequirePermission(models.PermModerate), s.DisableComment)
	protected.Post("/comments/:id/enable", s.RequirePermission(models.PermModerate), s.EnableComment)

	protected.Post("/demos", s.RequirePermission(models.PermAdmin), s.CreateDemo)
	protected.Put("/demos/:id", s.RequirePermission(models.PermAdmin), s.UpdateDemo)
	protected.Delete("/demos/:id", s.RequirePermission(models.PermAdmin), s.DeleteDemo)
	protected.Post("/images", s.RequirePermission(models.PermAdmin), s.UploadImage)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "scribe",
		"status":  "healthy",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth enforces a valid auth token, resolves the current user,
// and records activity on the account.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user := s.auth.VerifyAuthToken(c.UserContext(), tokenString)
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	if err := s.auth.Seen(c.UserContext(), user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	user.LastSeen = time.Now().UTC()

	c.Locals("userID", user.ID)
	c.Locals("currentUser", user)
	return c.Next()
}

// LoadIdentity resolves the current user when a valid token is present
// but lets the request through as anonymous otherwise.
func (s *Server) LoadIdentity(c *fiber.Ctx) error {
	if tokenString := bearerToken(c); tokenString != "" {
		if user := s.auth.VerifyAuthToken(c.UserContext(), tokenString); user != nil {
			c.Locals("userID", user.ID)
			c.Locals("currentUser", user)
		}
	}
	return c.Next()
}

// currentUser returns the authenticated user, or nil on public routes.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// currentIdentity never returns nil: unauthenticated requests act as
// the anonymous identity, which denies every permission.
func currentIdentity(c *fiber.Ctx) models.Identity {
	if user := currentUser(c); user != nil {
		return user
	}
	return models.AnonymousUser{}
}

// RequirePermission gates a route on one permission bit.
func (s *Server) RequirePermission(perm models.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !currentIdentity(c).Can(perm) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("insufficient permissions"))
		}
		return c.Next()
	}
}

// App builds the configured Fiber application.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "scribe",
		BodyLimit: 10 * 1024 * 1024, // 10MB limit, images included
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start runs the HTTP server until the process is told to stop.
func (s *Server) Start() error {
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
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
