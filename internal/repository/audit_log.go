package repository

import (
	"context"
	"fmt"

	"github.com/parqueo-gt/parqueo/internal/audit"
)

// AuditLogRepository reads the append-only audit trail. Writes go through
// audit.Recorder; there is deliberately no update or delete here.
type AuditLogRepository struct {
	pool PgxPool
}

func NewAuditLogRepository(pool PgxPool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

func (r *AuditLogRepository) List(ctx context.Context, module string, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, module, entity, operation_type, user_id, previous_values, new_values, client_ip, created_at
		FROM audit_log
		WHERE ($1 = '' OR module = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, module, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID,
			&e.Module,
			&e.Entity,
			&e.Operation,
			&e.UserID,
			&e.PreviousValues,
			&e.NewValues,
			&e.ClientIP,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
