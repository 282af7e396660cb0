package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devcamper/bootcamp-api/internal/api"
	mongodb "github.com/devcamper/bootcamp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devcamper/bootcamp-api/internal/infrastructure/db/redis"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/mail"
	"github.com/devcamper/bootcamp-api/internal/pkg/config"
	"github.com/devcamper/bootcamp-api/pkg/logger"
)

// @title        DevCamper API
// @version      1.0
// @description  Bootcamp directory backend with cookie/JWT authentication.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewBootcampRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootcamp index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
		FromAddr: cfg.SMTP.FromEmail,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client setup failed")
	}

	e, err := api.NewRouter(cfg, db, rdb, mailer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErrors:
		log.Error().Err(err).Msg("http server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("http server stopped")
}
