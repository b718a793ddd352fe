// Package server contains the HTTP handlers and routing for the blog API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"datablog/internal/auth"
	"datablog/internal/cache"
	"datablog/internal/config"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// claimsLocal holds the verified *auth.Claims so logout can revoke the token.
const claimsLocal = "claims"

// Server owns the Fiber app and every service the handlers call.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	authService     *service.AuthService
	userService     *service.UserService
	roleService     *service.RoleService
	categoryService *service.CategoryService
	postService     *service.PostService
	tagService      *service.TagService
	commentService  *service.CommentService
}

// NewServerWithDeps builds the server around existing connections. rdb may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration)
	users := service.NewUserService(store)

	return &Server{
		config:          cfg,
		db:              db,
		redis:           rdb,
		promMiddleware:  middleware.InitMetrics("datablog-api"),
		authService:     service.NewAuthService(store, users, tokens, cache.NewTokenBlacklist(rdb)),
		userService:     users,
		roleService:     service.NewRoleService(store),
		categoryService: service.NewCategoryService(store),
		postService:     service.NewPostService(store),
		tagService:      service.NewTagService(store),
		commentService:  service.NewCommentService(store),
	}, nil
}

// App builds the Fiber application with the full middleware chain and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "datablog API",
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return models.RespondWithError(c, fe.Code, fe)
	}
	return respondError(c, err)
}

// SetupMiddleware installs the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes registers every endpoint.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	authGroup := app.Group("/auth")
	authGroup.Get("/home", s.Home)
	authGroup.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	authGroup.Post("/logout", s.AuthRequired(), s.Logout)

	api := app.Group("/api", s.AuthRequired())
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleUser)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api.Get("/metrics/dashboard", adminOnly, monitor.New(monitor.Config{
		Title: "datablog Metrics Dashboard",
	}))

	users := api.Group("/users")
	users.Get("/", anyRole, s.ListUsers)
	users.Get("/email/:email", anyRole, s.GetUserByEmail)
	users.Get("/:id", anyRole, s.GetUser)
	users.Post("/", adminOnly, s.CreateUser)
	users.Put("/:id", adminOnly, s.UpdateUser)
	users.Delete("/:id", adminOnly, s.DeleteUser)

	roles := api.Group("/roles")
	roles.Get("/", adminOnly, s.ListRoles)
	roles.Get("/:id", anyRole, s.GetRole)
	roles.Post("/", adminOnly, s.CreateRole)
	roles.Put("/:id", adminOnly, s.UpdateRole)
	roles.Delete("/:id", adminOnly, s.DeleteRole)

	categories := api.Group("/category")
	categories.Get("/", anyRole, s.ListCategories)
	categories.Get("/title/:title", anyRole, s.GetCategoryByTitle)
	categories.Get("/:id", anyRole, s.GetCategory)
	categories.Post("/", adminOnly, s.CreateCategory)
	categories.Put("/:id", adminOnly, s.UpdateCategory)
	categories.Delete("/:id", adminOnly, s.DeleteCategory)

	posts := api.Group("/posts")
	posts.Get("/", anyRole, s.ListPosts)
	posts.Get("/user/:userId", anyRole, s.ListPostsByUser)
	posts.Get("/category/:categoryId", anyRole, s.ListPostsByCategory)
	posts.Get("/title/:title", anyRole, s.GetPostByTitle)
	posts.Get("/:id", anyRole, s.GetPost)
	posts.Post("/", adminOnly, s.CreatePost)
	posts.Put("/:id", adminOnly, s.UpdatePost)
	posts.Delete("/:id", adminOnly, s.DeletePost)

	tags := api.Group("/tags")
	tags.Get("/", anyRole, s.ListTags)
	tags.Get("/post", anyRole, s.ListTagsByPost)
	tags.Get("/:id", anyRole, s.GetTag)
	tags.Post("/", adminOnly, s.CreateTag)
	tags.Put("/:id", adminOnly, s.UpdateTag)
	tags.Delete("/:id", adminOnly, s.DeleteTag)

	comments := api.Group("/comment")
	comments.Get("/", anyRole, s.ListComments)
	comments.Get("/:commentId", anyRole, s.GetComment)
	comments.Post("/", anyRole, s.CreateComment)
	comments.Put("/:commentId", adminOnly, s.UpdateComment)
	comments.Delete("/:commentId", adminOnly, s.DeleteComment)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports 503 when the database cannot be reached. Redis is optional
// and only reported.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired verifies the bearer token and resolves the caller's principal.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authorization required"))
		}

		principal, claims, err := s.authService.Authenticate(c.UserContext(), token)
		if err != nil {
			return respondError(c, err)
		}

		c.Locals(middleware.PrincipalLocal, principal)
		c.Locals(claimsLocal, claims)
		c.SetUserContext(auth.WithPrincipal(c.UserContext(), principal))
		return c.Next()
	}
}

// Start builds the app and blocks serving on the configured port.
func (s *Server) Start() error {
	s.app = s.App()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
