package repository

import (
	"context"

	"github.com/sangkips/investify-pos/internal/domain/entity"
)

// OperatorRepository looks up terminal operators
type OperatorRepository interface {
	// GetByName returns the operator with the given name, or nil if none exists
	GetByName(ctx context.Context, name string) (*entity.Operator, error)
}
