package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

// LogRepository is the append-only audit sink. Entries are never read back
// by the application; there is deliberately no query method.
type LogRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{DB: db}
}

func (r *LogRepository) Append(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO logs (action, endpoint, method, status, user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.Action, e.Endpoint, e.Method, e.Status, e.UserID, e.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
