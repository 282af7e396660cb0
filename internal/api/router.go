package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devcamper/bootcamp-api/docs"
	"github.com/devcamper/bootcamp-api/internal/api/handler"
	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
	"github.com/devcamper/bootcamp-api/internal/core/service"
	mongodb "github.com/devcamper/bootcamp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devcamper/bootcamp-api/internal/infrastructure/db/redis"
	"github.com/devcamper/bootcamp-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("devcamper"))

	// --- Dependencies ---
	issuer, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire)
	if err != nil {
		return nil, err
	}

	userRepo := mongodb.NewUserRepository(db)
	bootcampRepo := mongodb.NewBootcampRepository(db)
	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max)

	authService := service.NewAuthService(userRepo, mailer, issuer, cfg.ResetTokenTTL, log)
	bootcampService := service.NewBootcampService(bootcampRepo, log)

	cookie := handler.CookieConfig{
		ExpireDays: cfg.JWTCookieExpireDays,
		Secure:     cfg.IsProduction(),
	}
	authHandler := handler.NewAuthHandler(authService, limiter, cookie, log)
	bootcampHandler := handler.NewBootcampHandler(bootcampService)

	authRequired := middleware.Auth(issuer)
	publisherOnly := middleware.RequireRoles(domain.RolePublisher, domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.POST("/forgotpassword", authHandler.ForgotPassword)
	auth.PUT("/resetpassword/:resettoken", authHandler.ResetPassword)
	auth.PUT("/updatedetails", authHandler.UpdateDetails, authRequired)
	auth.PUT("/updatepassword", authHandler.UpdatePassword, authRequired)
	auth.GET("/logout", authHandler.Logout, authRequired)

	// --- Bootcamp routes ---
	bootcamps := e.Group("/api/v1/bootcamps")
	bootcamps.GET("", bootcampHandler.List)
	bootcamps.GET("/:id", bootcampHandler.Get)
	bootcamps.POST("", bootcampHandler.Create, authRequired, publisherOnly)
	bootcamps.PUT("/:id", bootcampHandler.Update, authRequired, publisherOnly)
	bootcamps.DELETE("/:id", bootcampHandler.Delete, authRequired, publisherOnly)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
