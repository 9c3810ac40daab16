// Command server runs the Pictobox HTTP API.
//
// @title                       Pictobox API
// @version                     1.0
// @description                 Photo sharing backend: accounts, profiles, posts, comments, follows and likes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/pictobox/pictobox-api/docs"
	"github.com/pictobox/pictobox-api/internal/api"
	"github.com/pictobox/pictobox-api/internal/api/handler"
	"github.com/pictobox/pictobox-api/internal/core/auth"
	"github.com/pictobox/pictobox-api/internal/core/service"
	mongodb "github.com/pictobox/pictobox-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pictobox/pictobox-api/internal/infrastructure/db/redis"
	"github.com/pictobox/pictobox-api/internal/pkg/config"
	"github.com/pictobox/pictobox-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pictobox-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}
	hasher := auth.NewPasswordHasher(cfg.Bcrypt.Cost)

	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	comments := mongodb.NewCommentRepository(db)
	follows := mongodb.NewFollowRepository(db)
	likes := mongodb.NewLikeRepository(db)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, hasher, tokens, logger.Component("auth")),
		Profiles:     service.NewProfileService(users, posts, follows, tokens, logger.Component("profile")),
		Posts:        service.NewPostService(posts, comments, likes, users, logger.Component("post")),
		Comments:     service.NewCommentService(comments, posts, users, logger.Component("comment")),
		Social:       service.NewSocialService(users, posts, follows, likes, logger.Component("social")),
		Tokens:       tokens,
		LoginLimiter: redisdb.NewFixedWindowLimiter(rdb, "auth", cfg.RateLimit.Limit, cfg.RateLimit.Window),
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		AllowedOrigins: cfg.AllowedOrigins(),
		Log:            logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

