package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/orionte/placement-api/internal/entity"
	"github.com/orionte/placement-api/internal/infra/queue"
)

type AcceptInitialPaymentInput struct {
	LeadID        int64  `json:"leadId"`
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
	FileURL       string `json:"fileUrl"`
}

type AcceptInitialPaymentOutput struct {
	Registration *entity.Payment `json:"registration"`
	Medical      *entity.Payment `json:"medical"`
}

// ConversionUseCase handles the one-time event that turns a pending lead into
// a converted client: the combined Registration + Medical Check payment.
type ConversionUseCase struct {
	Conversions ConversionRepositoryInterface
	Payments    PaymentRepositoryInterface
	Leads       LeadRepositoryInterface
	Prices      ServicePriceRepositoryInterface
	Audit       AuditLoggerInterface
	Queue       QueueProducerInterface
	Now         Clock
}

func NewConversionUseCase(
	conversions ConversionRepositoryInterface,
	payments PaymentRepositoryInterface,
	leads LeadRepositoryInterface,
	prices ServicePriceRepositoryInterface,
	audit AuditLoggerInterface,
	producer QueueProducerInterface,
) *ConversionUseCase {
	return &ConversionUseCase{
		Conversions: conversions,
		Payments:    payments,
		Leads:       leads,
		Prices:      prices,
		Audit:       audit,
		Queue:       producer,
		Now:         time.Now,
	}
}

// Execute accepts the initial payment. In one database transaction it creates
// a paid Registration payment, a paid Medical Check payment and the full
// 12-stage pipeline, then flips the lead to converted. Partial application is
// never observable: either all effects land or none do.
func (uc *ConversionUseCase) Execute(ctx context.Context, actor entity.Actor, input AcceptInitialPaymentInput) (*AcceptInitialPaymentOutput, error) {
	if errs := ValidateAcceptInitialPaymentInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	exists, err := uc.Payments.ExistsByTransactionID(ctx, input.TransactionID)
	if err != nil {
		return nil, NewStorageError("failed to check transaction id: " + err.Error())
	}
	if exists {
		return nil, NewConflictError("transaction ID already exists")
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, NewNotFoundError("lead not found")
	}
	if lead.Status == entity.LeadStatusConverted {
		return nil, NewConflictError("lead has already been converted")
	}

	registrationPrice, err := uc.Prices.FindByName(ctx, "Registration")
	if err != nil {
		return nil, NewValidationError("service price for Registration not found")
	}
	medicalPrice, err := uc.Prices.FindByName(ctx, "Medical Check")
	if err != nil {
		return nil, NewValidationError("service price for Medical Check not found")
	}

	fileURL := input.FileURL
	if !entity.MethodRequiresProof(input.Method) {
		fileURL = entity.ProofNotApplicable
	}

	now := uc.Now()
	registration := &entity.Payment{
		LeadID:        lead.ID,
		Type:          "Registration",
		Amount:        registrationPrice.Price,
		PaidAmount:    registrationPrice.Price,
		Status:        entity.PaymentStatusPaid,
		Method:        input.Method,
		TransactionID: input.TransactionID,
		FileURL:       fileURL,
		CompletedAt:   &now,
	}
	medical := &entity.Payment{
		LeadID:        lead.ID,
		Type:          "Medical Check",
		Amount:        medicalPrice.Price,
		PaidAmount:    medicalPrice.Price,
		Status:        entity.PaymentStatusPaid,
		Method:        input.Method,
		TransactionID: input.TransactionID,
		FileURL:       fileURL,
		CompletedAt:   &now,
	}

	if err := uc.Conversions.ConvertLead(ctx, lead.ID, registration, medical, entity.Pipeline); err != nil {
		if errors.Is(err, entity.ErrDuplicateTransactionID) {
			return nil, NewConflictError("transaction ID already exists")
		}
		return nil, NewStorageError("failed to convert lead: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Created Payments", "/payments", "POST", 201, actor.ID,
		map[string]any{
			"leadId":        lead.ID,
			"paymentIds":    []int64{registration.ID, medical.ID},
			"types":         []string{"Registration", "Medical Check"},
			"totalAmount":   registrationPrice.Price + medicalPrice.Price,
			"transactionId": input.TransactionID,
		},
	))

	// Queue publish is best-effort: the lead is converted in the database
	// regardless of whether the notification lands.
	if uc.Queue != nil {
		payload := queue.ConversionPayload{
			LeadID:    lead.ID,
			Name:      lead.FirstName + " " + lead.LastName,
			Email:     lead.Email,
			Phone:     lead.PhoneNumber,
			Origin:    "CONVERSION",
			PaidTotal: registrationPrice.Price + medicalPrice.Price,
		}
		if err := uc.Queue.PublishConversion(ctx, payload); err != nil {
			log.Printf("lead %d converted but conversion event not published: %v", lead.ID, err)
		}
	}

	return &AcceptInitialPaymentOutput{Registration: registration, Medical: medical}, nil
}
