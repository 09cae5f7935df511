package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bookswap/backend/internal/application/catalog"
	exchangeapp "github.com/bookswap/backend/internal/application/exchange"
	identityapp "github.com/bookswap/backend/internal/application/identity"
	"github.com/bookswap/backend/internal/infrastructure/auth"
	"github.com/bookswap/backend/internal/infrastructure/config"
	"github.com/bookswap/backend/internal/infrastructure/logger"
	"github.com/bookswap/backend/internal/infrastructure/persistence"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/handler"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/bookswap/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BookSwap Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist: Redis when configured, in-process fallback otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	} else {
		blacklist = auth.NewMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist, revocations are lost on restart")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	bookRepo := persistence.NewGormBookRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	exchangeRepo := persistence.NewGormExchangeRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	bookService := catalogapp.NewBookService(bookRepo, log)
	collectionService := catalogapp.NewCollectionService(collectionRepo, bookRepo, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, bookRepo, log)
	exchangeService := exchangeapp.NewService(exchangeRepo, userRepo, bookRepo, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.Secure(),
	)

	if err := dto.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// Routes
	authConfig := middleware.AuthConfig{
		JWTService:     jwtService,
		Users:          userRepo,
		TokenBlacklist: blacklist,
		Logger:         log,
	}
	router.NewRouter(engine, authConfig).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewBookHandler(bookService, reviewService)).
		Register(handler.NewCollectionHandler(collectionService)).
		Register(handler.NewReviewHandler(reviewService)).
		Register(handler.NewTransactionHandler(exchangeService)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
