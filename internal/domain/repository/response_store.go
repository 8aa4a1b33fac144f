package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
)

// ResponseStore keeps replayable responses per operator and idempotency key.
type ResponseStore interface {
	// Reserve records claim, a Pending entry, unless a live entry already holds
	// its key at now. It returns that entry, or nil when the claim was recorded.
	// Check and insert are atomic.
	Reserve(ctx context.Context, claim *entity.StoredResponse, now time.Time) (*entity.StoredResponse, error)
	// Save stores resp, replacing the claim under the same key.
	Save(ctx context.Context, resp *entity.StoredResponse) error
	// Release drops a Pending claim so the key can be used again. Completed
	// responses are kept.
	Release(ctx context.Context, operatorID uuid.UUID, key string) error
	// Purge drops the entries expired at now and returns how many it dropped.
	Purge(ctx context.Context, now time.Time) (int, error)
}
