package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/orionte/placement-api/internal/entity"
)

type RecordPaymentInput struct {
	LeadID        int64  `json:"leadId"`
	Type          string `json:"type"`
	PaidAmount    int64  `json:"paidAmount"`
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
	FileURL       string `json:"fileUrl"`
}

// LedgerUseCase computes per-service payment totals for a lead and records
// new payment transactions against them.
type LedgerUseCase struct {
	Payments PaymentRepositoryInterface
	Leads    LeadRepositoryInterface
	Prices   ServicePriceRepositoryInterface
	Audit    AuditLoggerInterface
	Now      Clock
}

func NewLedgerUseCase(
	payments PaymentRepositoryInterface,
	leads LeadRepositoryInterface,
	prices ServicePriceRepositoryInterface,
	audit AuditLoggerInterface,
) *LedgerUseCase {
	return &LedgerUseCase{
		Payments: payments,
		Leads:    leads,
		Prices:   prices,
		Audit:    audit,
		Now:      time.Now,
	}
}

// TotalPaid sums paid amounts over every payment matching (lead, type),
// regardless of each payment's own status. Unknown service types simply
// yield 0; there is no error case.
func (uc *LedgerUseCase) TotalPaid(ctx context.Context, leadID int64, serviceType string) (int64, error) {
	total, err := uc.Payments.SumPaidAmount(ctx, leadID, serviceType)
	if err != nil {
		return 0, NewStorageError("failed to compute total paid: " + err.Error())
	}
	return total, nil
}

// RecordPayment validates and persists one payment transaction. The stored
// status is derived from the cumulative paid total (prior payments plus this
// one) against the live service price.
func (uc *LedgerUseCase) RecordPayment(ctx context.Context, actor entity.Actor, input RecordPaymentInput) (*entity.Payment, error) {
	if errs := ValidateRecordPaymentInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	// Transaction-id uniqueness is global across all payments. The check
	// runs pre-insert; the schema constraint backs it against races and the
	// repository maps the constraint violation to the same conflict code.
	if input.TransactionID != "" {
		exists, err := uc.Payments.ExistsByTransactionID(ctx, input.TransactionID)
		if err != nil {
			return nil, NewStorageError("failed to check transaction id: " + err.Error())
		}
		if exists {
			return nil, NewConflictError("transaction ID already exists")
		}
	}

	if _, err := uc.Leads.FindByID(ctx, input.LeadID); err != nil {
		return nil, NewNotFoundError("lead not found")
	}

	price, err := uc.Prices.FindByName(ctx, input.Type)
	if err != nil {
		return nil, NewValidationError("unknown service type: " + input.Type)
	}

	previous, err := uc.Payments.SumPaidAmount(ctx, input.LeadID, input.Type)
	if err != nil {
		return nil, NewStorageError("failed to compute total paid: " + err.Error())
	}

	fileURL := input.FileURL
	if !entity.MethodRequiresProof(input.Method) {
		fileURL = entity.ProofNotApplicable
	}

	now := uc.Now()
	payment := &entity.Payment{
		LeadID:        input.LeadID,
		Type:          input.Type,
		Amount:        price.Price,
		PaidAmount:    input.PaidAmount,
		Status:        entity.DerivePaymentStatus(previous+input.PaidAmount, price.Price),
		Method:        input.Method,
		TransactionID: input.TransactionID,
		FileURL:       fileURL,
		CompletedAt:   &now,
	}

	if err := uc.Payments.Create(ctx, payment); err != nil {
		if errors.Is(err, entity.ErrDuplicateTransactionID) {
			return nil, NewConflictError("transaction ID already exists")
		}
		return nil, NewStorageError("failed to record payment: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Created Single Payment", "/payments/total-paid", "POST", 201, actor.ID,
		map[string]any{
			"leadId":        payment.LeadID,
			"paymentId":     payment.ID,
			"type":          payment.Type,
			"amount":        payment.Amount,
			"paidAmount":    payment.PaidAmount,
			"method":        payment.Method,
			"transactionId": payment.TransactionID,
			"status":        payment.Status,
		},
	))

	return payment, nil
}

// OutstandingBalance is the live remainder for one service: price minus
// total paid, floored at zero.
func (uc *LedgerUseCase) OutstandingBalance(ctx context.Context, leadID int64, serviceType string) (int64, error) {
	price, err := uc.Prices.FindByName(ctx, serviceType)
	if err != nil {
		return 0, NewValidationError("unknown service type: " + serviceType)
	}
	paid, err := uc.TotalPaid(ctx, leadID, serviceType)
	if err != nil {
		return 0, err
	}
	if paid >= price.Price {
		return 0, nil
	}
	return price.Price - paid, nil
}
