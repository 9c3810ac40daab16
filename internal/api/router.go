package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pictobox/pictobox-api/internal/api/handler"
	"github.com/pictobox/pictobox-api/internal/api/middleware"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

// Dependencies are the collaborators NewRouter wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Comments ports.CommentService
	Social   ports.SocialService

	Tokens       middleware.TokenVerifier
	LoginLimiter middleware.Limiter
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.DependencyCheck

	AllowedOrigins []string
	Log            zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, where the service counters live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pictobox",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	postHandler := handler.NewPostHandler(deps.Posts)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	socialHandler := handler.NewSocialHandler(deps.Social)

	requireAuth := middleware.Auth(deps.Tokens)
	optionalAuth := middleware.OptionalAuth(deps.Tokens)
	self := middleware.RequireSelf()

	// --- Auth routes (throttled per IP) ---
	if deps.LoginLimiter != nil {
		e.POST("/login", authHandler.Login, middleware.RateLimit(deps.LoginLimiter, "login", deps.Log))
		e.POST("/register", authHandler.Register, middleware.RateLimit(deps.LoginLimiter, "register", deps.Log))
	} else {
		e.POST("/login", authHandler.Login)
		e.POST("/register", authHandler.Register)
	}

	// --- Profile routes ---
	e.GET("/profile", profileHandler.GetOwnProfile, requireAuth)
	e.PUT("/profile/profile-picture", profileHandler.SetProfilePicture, requireAuth)
	e.DELETE("/profile/profile-picture", profileHandler.ClearProfilePicture, requireAuth)
	e.GET("/profile/:username", profileHandler.GetProfile, optionalAuth)
	e.PUT("/profile/:username/profile-data", profileHandler.UpdateProfileData, requireAuth, self)
	e.PUT("/profile/:username/password-change", authHandler.ChangePassword, requireAuth, self)

	// --- Post and comment routes ---
	e.POST("/profile/:username/posts", postHandler.CreatePost, requireAuth, self)
	e.GET("/profile/:username/posts/:postId", postHandler.GetProfilePost, optionalAuth)
	e.DELETE("/profile/:username/posts/:postId", postHandler.DeletePost, requireAuth, self)
	e.POST("/profile/:username/posts/:postId/comments", commentHandler.AddComment, requireAuth)
	e.PUT("/profile/:username/posts/:postId/comments/:commentId", commentHandler.UpdateComment, requireAuth)
	e.DELETE("/profile/:username/posts/:postId/comments/:commentId", commentHandler.DeleteComment, requireAuth)

	e.GET("/posts/:postId", postHandler.GetPost, optionalAuth)
	e.POST("/posts/:postId/like", socialHandler.Like, requireAuth)
	e.DELETE("/posts/:postId/like", socialHandler.Unlike, requireAuth)

	// --- User routes ---
	e.GET("/users/search", profileHandler.SearchUsers, optionalAuth)
	e.POST("/users/:followeeId/follow", socialHandler.Follow, requireAuth)
	e.DELETE("/users/:followeeId/unfollow", socialHandler.Unfollow, requireAuth)

	// --- Health probes (no auth required) ---
	checks := deps.Checks
	if checks == nil {
		checks = map[string]handler.DependencyCheck{}
	}
	e.GET("/health", handler.NewHealthHandler().Liveness)                 // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(checks).Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
