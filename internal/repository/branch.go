package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

type BranchRepository struct {
	pool PgxPool
}

func NewBranchRepository(pool PgxPool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	query := `
		SELECT id, name, timezone, capacity, is_active, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch domain.Branch
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.Name,
		&branch.Timezone,
		&branch.Capacity,
		&branch.IsActive,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get branch by id: %w", err)
	}

	if branch.Capacity == nil {
		branch.Capacity = make(map[string]int)
	}

	return &branch, nil
}
