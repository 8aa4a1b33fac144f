package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/config"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-pos/internal/domain/repository"
	"github.com/sangkips/investify-pos/internal/infrastructure/repository"
	"github.com/sangkips/investify-pos/internal/presentation/http/handler"
	"github.com/sangkips/investify-pos/internal/presentation/http/middleware"
	"github.com/sangkips/investify-pos/internal/presentation/http/routes"
	"github.com/sangkips/investify-pos/pkg/logger"
	"github.com/sangkips/investify-pos/pkg/printer"
	"github.com/sangkips/investify-pos/pkg/utils"
	"go.uber.org/zap"
)

const responsePurgeInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := cfg.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed the terminal operator
	pinHash, err := utils.HashPassword(cfg.Operator.PIN)
	if err != nil {
		zapLogger.Fatal("failed to hash operator PIN", zap.Error(err))
	}
	operatorRepo := repository.NewOperatorRepository(entity.Operator{
		ID:      uuid.New(),
		Name:    cfg.Operator.Username,
		PINHash: pinHash,
		Roles:   []string{"cashier"},
	})
	responses := repository.NewResponseStore()
	go purgeStoredResponses(ctx, responses, zapLogger)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		zapLogger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
		cfg.Printer.Type = printer.TypeNone
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(operatorRepo, jwtManager)
	checkoutService := service.NewCheckoutService(cfg.Checkout.TaxRate, cfg.Checkout.StoreName)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width, zapLogger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Checkout:   handler.NewCheckoutHandler(checkoutService),
		Calculator: handler.NewCalculatorHandler(checkoutService),
		Payment:    handler.NewPaymentHandler(checkoutService),
		Printer:    handler.NewPrinterHandler(printerService, checkoutService),
	}

	rateLimiter := middleware.NewOperatorRateLimiter(routes.RateLimiterConfig(cfg))
	go rateLimiter.Run(ctx)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		Responses:   responses,
		RateLimiter: rateLimiter,
		Logger:      zapLogger,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("printer", cfg.Printer.Type),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func purgeStoredResponses(ctx context.Context, store domainRepo.ResponseStore, logger *zap.Logger) {
	ticker := time.NewTicker(responsePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.Purge(ctx, now)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Warn("failed to purge stored responses", zap.Error(err))
				}
				continue
			}
			if n > 0 {
				logger.Debug("purged stored responses", zap.Int("count", n))
			}
		}
	}
}
