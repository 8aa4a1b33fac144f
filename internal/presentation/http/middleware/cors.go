package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/config"
)

var (
	// The terminal UI is served from the same machine.
	defaultTerminalOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultAllowedMethods  = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultAllowedHeaders  = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// Headers the terminal reads to explain refusals and replays to the cashier.
	terminalExposedHeaders = []string{
		"Content-Length",
		"Content-Type",
		"X-Request-ID",
		ReplayedHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware allows the configured terminal origins. Tokens travel in the
// Authorization header, so credentials (cookies) are not allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	headers := orDefault(cfg.AllowedHeaders, defaultAllowedHeaders)
	if !slices.Contains(headers, IdempotencyKeyHeader) {
		headers = append(headers, IdempotencyKeyHeader)
	}

	return cors.Config{
		AllowOrigins:  orDefault(cfg.AllowedOrigins, defaultTerminalOrigins),
		AllowMethods:  orDefault(cfg.AllowedMethods, defaultAllowedMethods),
		AllowHeaders:  headers,
		ExposeHeaders: terminalExposedHeaders,
		MaxAge:        12 * time.Hour,
	}
}

// orDefault returns a copy of values, or of def when values is empty.
func orDefault(values, def []string) []string {
	if len(values) == 0 {
		values = def
	}
	return slices.Clone(values)
}
