package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

// ConversionRepository owns the conversion event's transactional boundary:
// two paid payments, the full stage set and the lead status flip commit
// together or not at all.
type ConversionRepository struct {
	DB *sql.DB
}

func NewConversionRepository(db *sql.DB) *ConversionRepository {
	return &ConversionRepository{DB: db}
}

func (r *ConversionRepository) ConvertLead(ctx context.Context, leadID int64, registration, medical *entity.Payment, stageNames []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin conversion: %w", err)
	}
	defer tx.Rollback()

	insertPayment := `
		INSERT INTO payments (
			lead_id, type, amount, paid_amount, status, method,
			transaction_id, file_url, completed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`
	for _, p := range []*entity.Payment{registration, medical} {
		err := tx.QueryRowContext(ctx, insertPayment,
			p.LeadID, p.Type, p.Amount, p.PaidAmount, p.Status, p.Method,
			p.TransactionID, p.FileURL, p.CompletedAt,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return entity.ErrDuplicateTransactionID
			}
			return fmt.Errorf("failed to create %s payment: %w", p.Type, err)
		}
	}

	insertStage := `
		INSERT INTO stages (lead_id, stage_name, completed)
		VALUES ($1, $2, FALSE)
	`
	for _, name := range stageNames {
		if _, err := tx.ExecContext(ctx, insertStage, leadID, name); err != nil {
			return fmt.Errorf("failed to create stage %q: %w", name, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`,
		entity.LeadStatusConverted, leadID,
	)
	if err != nil {
		return fmt.Errorf("failed to flip lead status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}

	return tx.Commit()
}
