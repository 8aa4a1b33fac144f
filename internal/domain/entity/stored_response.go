package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoredResponse is the first successful response to a request that carried an
// Idempotency-Key. Retries with the same key get it back instead of running
// the request again. While the first request is still running the entry is
// Pending and holds no response.
type StoredResponse struct {
	Key         string
	OperatorID  uuid.UUID
	Endpoint    string // method and route, e.g. "POST /api/v1/checkout/payments"
	Pending     bool
	Status      int
	ContentType string
	Body        []byte
	StoredAt    time.Time
	ExpiresAt   time.Time
}

// ExpiredAt reports whether the response can no longer be replayed at now.
func (r *StoredResponse) ExpiredAt(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
