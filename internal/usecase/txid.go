package usecase

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/orionte/placement-api/internal/entity"
)

const txidMaxRetries = 3

var txidUpper = big.NewInt(1e14)

func randomTransactionID() (string, error) {
	n, err := rand.Int(rand.Reader, txidUpper)
	if err != nil {
		return "", err
	}
	// Zero-pad to keep exactly 14 digits.
	s := n.String()
	for len(s) < 14 {
		s = "0" + s
	}
	return s, nil
}

// IssueTransactionID generates a candidate 14-digit transaction id and checks
// it against existing payments, retrying a few times on collision. If every
// retry collides it hands out one more fresh candidate unchecked: residual
// duplicate probability over a 14-digit keyspace is accepted, and the
// insert-time unique constraint still catches the loser.
func (uc *LedgerUseCase) IssueTransactionID(ctx context.Context) (string, error) {
	for i := 0; i < txidMaxRetries; i++ {
		id, err := randomTransactionID()
		if err != nil {
			return "", NewStorageError("failed to generate transaction id: " + err.Error())
		}

		exists, err := uc.Payments.ExistsByTransactionID(ctx, id)
		if err != nil {
			return "", NewStorageError("failed to check transaction id: " + err.Error())
		}
		if !exists {
			return id, nil
		}
	}

	id, err := randomTransactionID()
	if err != nil {
		return "", NewStorageError("failed to generate transaction id: " + err.Error())
	}
	return id, nil
}

// CheckTransactionID reports a conflict for an already-used id, mirroring the
// pre-submission check the payment form runs.
func (uc *LedgerUseCase) CheckTransactionID(ctx context.Context, actor entity.Actor, id string) error {
	if !IsValidTransactionID(id) {
		return NewValidationError("transaction ID must be a 14-digit number")
	}
	exists, err := uc.Payments.ExistsByTransactionID(ctx, id)
	if err != nil {
		return NewStorageError("failed to check transaction id: " + err.Error())
	}
	if exists {
		return NewConflictError("transaction ID already exists")
	}
	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Checked Transaction ID", "/payments/check-transaction-id", "GET", 200, actor.ID,
		map[string]any{"transactionId": id},
	))
	return nil
}
