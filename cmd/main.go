package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ourhour/weddinghub/internal/config"
	"ourhour/weddinghub/internal/handler"
	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/service"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func main() {
	// 1. Load configuration (.env first so it can feed the environment overlay)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWT.SigningKey == "" {
		log.Fatal("jwt.signing_key must be set")
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize refresh-token store (Redis or in-memory)
	var refreshTokens repository.RefreshTokenStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		refreshTokens = repository.NewRedisRefreshTokenStore(redisClient)
		logger.Info("using Redis refresh-token store")
	case "memory":
		refreshTokens = repository.NewMemoryRefreshTokenStore()
		logger.Info("using in-memory refresh-token store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewPGUserRepository(db)
	templateRepo := repository.NewPGTemplateRepository(db)
	invitationRepo := repository.NewPGInvitationRepository(db)
	rsvpRepo := repository.NewPGRSVPRepository(db)
	guestbookRepo := repository.NewPGGuestbookRepository(db)
	paymentRepo := repository.NewPGPaymentRepository(db)

	// 7. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.SigningKey,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, refreshTokens, jwtManager)
	templateService := service.NewTemplateService(templateRepo)
	invitationService := service.NewInvitationService(
		tx, invitationRepo, templateRepo,
		service.WithLogger(logger.Named("invitation")),
	)
	rsvpService := service.NewRSVPService(invitationRepo, rsvpRepo)
	guestbookService := service.NewGuestbookService(invitationRepo, guestbookRepo)
	paymentService := service.NewPaymentService(tx, paymentRepo, invitationRepo, service.PlanPrices{
		model.PlanTypePremium:     cfg.Pricing.Premium,
		model.PlanTypePremiumPlus: cfg.Pricing.PremiumPlus,
	})

	// 9. Initialize handlers and router
	router := handler.SetupRouter(cfg, logger, jwtManager, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, logger),
		Template:   handler.NewTemplateHandler(templateService, logger),
		Invitation: handler.NewInvitationHandler(invitationService, logger),
		RSVP:       handler.NewRSVPHandler(rsvpService, logger),
		Guestbook:  handler.NewGuestbookHandler(guestbookService, logger),
		Payment:    handler.NewPaymentHandler(paymentService, logger),
		Admin:      handler.NewAdminHandler(templateService, paymentService, logger),
	})

	// 10. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 11. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
