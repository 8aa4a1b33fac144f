package repository

import (
	"context"
	"strings"

	"github.com/sangkips/investify-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-pos/internal/domain/repository"
)

type operatorRepository struct {
	operators map[string]entity.Operator
}

// NewOperatorRepository creates a read-only operator store seeded at startup.
// Names are matched case-insensitively.
func NewOperatorRepository(operators ...entity.Operator) domainRepo.OperatorRepository {
	r := &operatorRepository{operators: make(map[string]entity.Operator, len(operators))}
	for _, op := range operators {
		r.operators[strings.ToLower(op.Name)] = op
	}
	return r
}

func (r *operatorRepository) GetByName(ctx context.Context, name string) (*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op, ok := r.operators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, nil
	}
	return &op, nil
}
