package repository

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-pos/internal/domain/repository"
)

type responseID struct {
	operatorID uuid.UUID
	key        string
}

type responseStore struct {
	mu        sync.Mutex
	responses map[responseID]entity.StoredResponse
}

// NewResponseStore creates an in-memory response store. Responses do not
// survive a restart.
func NewResponseStore() domainRepo.ResponseStore {
	return &responseStore{responses: make(map[responseID]entity.StoredResponse)}
}

func (s *responseStore) Reserve(ctx context.Context, claim *entity.StoredResponse, now time.Time) (*entity.StoredResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := responseID{operatorID: claim.OperatorID, key: claim.Key}

	s.mu.Lock()
	defer s.mu.Unlock()

	if held, ok := s.responses[id]; ok && !held.ExpiredAt(now) {
		held.Body = bytes.Clone(held.Body)
		return &held, nil
	}

	stored := *claim
	stored.Pending = true
	stored.Body = nil
	if stored.StoredAt.IsZero() {
		stored.StoredAt = now
	}
	s.responses[id] = stored
	return nil, nil
}

func (s *responseStore) Save(ctx context.Context, resp *entity.StoredResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *resp
	stored.Pending = false
	stored.Body = bytes.Clone(resp.Body)
	if stored.StoredAt.IsZero() {
		stored.StoredAt = time.Now()
	}

	s.mu.Lock()
	s.responses[responseID{operatorID: resp.OperatorID, key: resp.Key}] = stored
	s.mu.Unlock()
	return nil
}

func (s *responseStore) Release(ctx context.Context, operatorID uuid.UUID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := responseID{operatorID: operatorID, key: key}

	s.mu.Lock()
	defer s.mu.Unlock()

	if held, ok := s.responses[id]; ok && held.Pending {
		delete(s.responses, id)
	}
	return nil
}

func (s *responseStore) Purge(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, resp := range s.responses {
		if resp.ExpiredAt(now) {
			delete(s.responses, id)
			purged++
		}
	}
	return purged, nil
}
