package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/config"
	domainRepo "github.com/sangkips/investify-pos/internal/domain/repository"
	"github.com/sangkips/investify-pos/internal/presentation/http/handler"
	"github.com/sangkips/investify-pos/internal/presentation/http/middleware"
	"github.com/sangkips/investify-pos/pkg/utils"
	"go.uber.org/zap"
)

// Roles allowed to drive the checkout.
var checkoutRoles = []string{"cashier", "supervisor"}

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Checkout   *handler.CheckoutHandler
	Calculator *handler.CalculatorHandler
	Payment    *handler.PaymentHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Responses   domainRepo.ResponseStore
	RateLimiter *middleware.OperatorRateLimiter
	Logger      *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewOperatorRateLimiter(RateLimiterConfig(deps.Cfg))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": rateLimiter.Stats(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		protected.GET("/auth/me", h.Auth.Me)

		registerCheckoutRoutes(protected, h, deps, logger)
		registerPrinterRoutes(protected, h)
	}

	return router
}

// RateLimiterConfig derives the per-operator limiter settings from cfg:
// RATE_LIMIT_REQUESTS per RATE_LIMIT_DURATION seconds, bursting up to the full quota.
func RateLimiterConfig(cfg *config.Config) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		rl.BurstSize = cfg.RateLimit.Requests
	}
	return rl
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, logger *zap.Logger) {
	checkout := protected.Group("/checkout")
	checkout.Use(middleware.RequireRole(checkoutRoles...))
	checkout.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  deps.Responses,
		TTL:    deps.Cfg.Checkout.IdempotencyTTL,
		Logger: logger,
	}))
	{
		checkout.GET("", h.Checkout.Get)
		checkout.DELETE("", h.Checkout.Reset)

		// Order ledger
		checkout.POST("/lines", h.Checkout.AddLine)
		checkout.PATCH("/lines/:id", h.Checkout.SetQuantity)
		checkout.DELETE("/lines/:id", h.Checkout.RemoveLine)
		checkout.DELETE("/lines", h.Checkout.ClearLines)
		checkout.PUT("/tax-rate", h.Checkout.SetTaxRate)

		// Calculator
		calculator := checkout.Group("/calculator")
		{
			calculator.GET("", h.Calculator.Get)
			calculator.POST("/digit", h.Calculator.Digit)
			calculator.POST("/decimal", h.Calculator.Decimal)
			calculator.POST("/operation", h.Calculator.Operation)
			calculator.POST("/clear", h.Calculator.Clear)
			calculator.POST("/load", h.Calculator.LoadRemaining)
			calculator.POST("/keys", h.Calculator.Keys)
		}

		// Payment allocation
		checkout.GET("/payment-methods", h.Payment.Methods)
		payments := checkout.Group("/payments")
		{
			payments.PUT("/active-method", h.Payment.SetActiveMethod)
			payments.PUT("/reference", h.Payment.SetReference)
			payments.POST("", h.Payment.Assign)
			payments.POST("/remaining", h.Payment.AssignShare(service.ShareRemaining))
			payments.POST("/half", h.Payment.AssignShare(service.ShareHalf))
			payments.POST("/quarter", h.Payment.AssignShare(service.ShareQuarter))
			payments.DELETE("/:id", h.Payment.Remove)
			payments.DELETE("", h.Payment.RemoveByMethod)
		}

		checkout.POST("/receipt", h.Printer.PrintReceipt)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
	}
}
