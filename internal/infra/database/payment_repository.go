package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (
			lead_id, type, amount, paid_amount, status, method,
			transaction_id, file_url, completed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.LeadID, p.Type, p.Amount, p.PaidAmount, p.Status, p.Method,
		p.TransactionID, p.FileURL, p.CompletedAt,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateTransactionID
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// SumPaidAmount totals paid_amount over (lead, type) with no regard for each
// row's status. No rows means zero, not an error.
func (r *PaymentRepository) SumPaidAmount(ctx context.Context, leadID int64, serviceType string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(paid_amount), 0)
		FROM payments
		WHERE lead_id = $1 AND type = $2
	`
	var total int64
	if err := r.DB.QueryRowContext(ctx, query, leadID, serviceType).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

func (r *PaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE transaction_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, transactionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transaction id: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Payment, error) {
	query := `
		SELECT id, lead_id, type, amount, paid_amount, status, method,
		       transaction_id, file_url, completed_at, created_at
		FROM payments
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(
			&p.ID, &p.LeadID, &p.Type, &p.Amount, &p.PaidAmount, &p.Status,
			&p.Method, &p.TransactionID, &p.FileURL, &p.CompletedAt,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
