package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/repository"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/utils"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader carries the client's retry key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader is set to "true" on replayed responses.
	ReplayedHeader = "X-Idempotency-Replayed"
	// DefaultIdempotencyKeyTTL applies when no TTL is configured.
	DefaultIdempotencyKeyTTL = time.Hour
)

// IdempotencyConfig configures Idempotency.
type IdempotencyConfig struct {
	Store  repository.ResponseStore
	TTL    time.Duration
	Logger *zap.Logger
}

// bodyRecorder copies everything the handler writes.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a mutating request retried with
// the same Idempotency-Key by the same operator. The key is reserved before the
// handler runs, so a retry that arrives while the first request is still being
// processed gets 409 instead of running twice. Only 2xx responses are stored; a
// failed or panicking request releases the key so a rejected payment can be
// retried after the cause is fixed. A key reused on another endpoint is
// rejected. Requests without a key pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultIdempotencyKeyTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !mutating(c.Request.Method) {
			c.Next()
			return
		}

		operatorID, ok := c.Value(utils.ContextOperatorID).(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "Operator not authenticated")
			c.Abort()
			return
		}

		// The outcome is recorded even when the client has gone away.
		ctx := context.WithoutCancel(c.Request.Context())
		endpoint := c.Request.Method + " " + c.FullPath()
		log := cfg.Logger.With(zap.String("idempotency_key", key), zap.String("endpoint", endpoint))

		now := time.Now()
		held, err := cfg.Store.Reserve(ctx, &entity.StoredResponse{
			Key:        key,
			OperatorID: operatorID,
			Endpoint:   endpoint,
			Pending:    true,
			StoredAt:   now,
			ExpiresAt:  now.Add(cfg.TTL),
		}, now)
		if err != nil {
			// Without the store the request runs unprotected.
			log.Warn("idempotency reservation failed", zap.Error(err))
			c.Next()
			return
		}

		if held != nil {
			switch {
			case held.Endpoint != endpoint:
				response.Error(c, apperror.ErrIdempotencyKeyReused)
			case held.Pending:
				response.Error(c, apperror.ErrIdempotencyKeyInFlight)
			default:
				log.Debug("replaying stored response")
				c.Header(ReplayedHeader, "true")
				c.Data(held.Status, held.ContentType, held.Body)
			}
			c.Abort()
			return
		}

		completed := false
		defer func() {
			if completed {
				return
			}
			if err := cfg.Store.Release(ctx, operatorID, key); err != nil {
				log.Warn("idempotency release failed", zap.Error(err))
			}
		}()

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		// From here on the request took effect. If saving fails the claim
		// stays pending until it expires, so retries get 409 rather than
		// running again.
		completed = true
		now = time.Now()
		err = cfg.Store.Save(ctx, &entity.StoredResponse{
			Key:         key,
			OperatorID:  operatorID,
			Endpoint:    endpoint,
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
			StoredAt:    now,
			ExpiresAt:   now.Add(cfg.TTL),
		})
		if err != nil {
			log.Warn("idempotency store failed", zap.Error(err))
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
