package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orionte/placement-api/internal/entity"
	"github.com/orionte/placement-api/internal/infra/queue"
)

func newConversionForTest(
	conversions *MockConversionRepository,
	payments *MockPaymentRepository,
	leads *MockLeadRepository,
	prices *MockServicePriceRepository,
	producer *MockQueueProducer,
) *ConversionUseCase {
	uc := NewConversionUseCase(conversions, payments, leads, prices, okAuditLogger{}, producer)
	uc.Now = fixedClock
	return uc
}

func pendingLead() *entity.Lead {
	return &entity.Lead{
		ID:          7,
		FirstName:   "Amina",
		LastName:    "Okello",
		Email:       "amina@example.com",
		PhoneNumber: "+256700000001",
		Status:      entity.LeadStatusPending,
	}
}

func stubConversionPrices(prices *MockServicePriceRepository) {
	prices.On("FindByName", mock.Anything, "Registration").Return(&entity.ServicePrice{ID: 1, Name: "Registration", Price: 50000}, nil)
	prices.On("FindByName", mock.Anything, "Medical Check").Return(&entity.ServicePrice{ID: 2, Name: "Medical Check", Price: 150000}, nil)
}

func TestAcceptInitialPaymentConvertsLead(t *testing.T) {
	conversions := new(MockConversionRepository)
	payments := new(MockPaymentRepository)
	leads := new(MockLeadRepository)
	prices := new(MockServicePriceRepository)
	producer := new(MockQueueProducer)

	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	leads.On("FindByID", mock.Anything, int64(7)).Return(pendingLead(), nil)
	stubConversionPrices(prices)
	conversions.On("ConvertLead", mock.Anything, int64(7), mock.Anything, mock.Anything, entity.Pipeline).Return(nil)
	producer.On("PublishConversion", mock.Anything, mock.Anything).Return(nil)

	uc := newConversionForTest(conversions, payments, leads, prices, producer)

	out, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodMobileMoney,
		TransactionID: "12345678901234",
		FileURL:       "/payments/proof.png",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, out.Registration.Status)
	assert.Equal(t, entity.PaymentStatusPaid, out.Medical.Status)
	// Both payments share the event's transaction id.
	assert.Equal(t, "12345678901234", out.Registration.TransactionID)
	assert.Equal(t, "12345678901234", out.Medical.TransactionID)
	assert.Equal(t, int64(50000), out.Registration.PaidAmount)
	assert.Equal(t, int64(150000), out.Medical.PaidAmount)

	producer.AssertCalled(t, "PublishConversion", mock.Anything, mock.MatchedBy(func(p queue.ConversionPayload) bool {
		return p.LeadID == 7 && p.PaidTotal == 200000 && p.Origin == "CONVERSION"
	}))
}

func TestAcceptInitialPaymentCashNeedsNoProof(t *testing.T) {
	conversions := new(MockConversionRepository)
	payments := new(MockPaymentRepository)
	leads := new(MockLeadRepository)
	prices := new(MockServicePriceRepository)
	producer := new(MockQueueProducer)

	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	leads.On("FindByID", mock.Anything, int64(7)).Return(pendingLead(), nil)
	stubConversionPrices(prices)
	conversions.On("ConvertLead", mock.Anything, int64(7), mock.Anything, mock.Anything, entity.Pipeline).Return(nil)
	producer.On("PublishConversion", mock.Anything, mock.Anything).Return(nil)

	uc := newConversionForTest(conversions, payments, leads, prices, producer)

	out, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodCash,
		TransactionID: "12345678901234",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.ProofNotApplicable, out.Registration.FileURL)
	assert.Equal(t, entity.ProofNotApplicable, out.Medical.FileURL)
}

func TestAcceptInitialPaymentRejectsUsedTransactionID(t *testing.T) {
	payments := new(MockPaymentRepository)
	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(true, nil)

	conversions := new(MockConversionRepository)
	uc := newConversionForTest(conversions, payments, new(MockLeadRepository), new(MockServicePriceRepository), new(MockQueueProducer))

	_, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodCash,
		TransactionID: "12345678901234",
	})

	assert.Equal(t, CodeConflict, DomainCode(err))
	conversions.AssertNotCalled(t, "ConvertLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptInitialPaymentRejectsConvertedLead(t *testing.T) {
	payments := new(MockPaymentRepository)
	leads := new(MockLeadRepository)

	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	converted := pendingLead()
	converted.Status = entity.LeadStatusConverted
	leads.On("FindByID", mock.Anything, int64(7)).Return(converted, nil)

	uc := newConversionForTest(new(MockConversionRepository), payments, leads, new(MockServicePriceRepository), new(MockQueueProducer))

	_, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodCash,
		TransactionID: "12345678901234",
	})

	assert.Equal(t, CodeConflict, DomainCode(err))
}

func TestAcceptInitialPaymentFailedTransactionLeavesNoPartialState(t *testing.T) {
	conversions := new(MockConversionRepository)
	payments := new(MockPaymentRepository)
	leads := new(MockLeadRepository)
	prices := new(MockServicePriceRepository)
	producer := new(MockQueueProducer)

	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	leads.On("FindByID", mock.Anything, int64(7)).Return(pendingLead(), nil)
	stubConversionPrices(prices)
	conversions.On("ConvertLead", mock.Anything, int64(7), mock.Anything, mock.Anything, entity.Pipeline).Return(errors.New("deadlock detected"))

	uc := newConversionForTest(conversions, payments, leads, prices, producer)

	_, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodCash,
		TransactionID: "12345678901234",
	})

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	producer.AssertNotCalled(t, "PublishConversion", mock.Anything, mock.Anything)
}

func TestAcceptInitialPaymentSucceedsWhenPublishFails(t *testing.T) {
	conversions := new(MockConversionRepository)
	payments := new(MockPaymentRepository)
	leads := new(MockLeadRepository)
	prices := new(MockServicePriceRepository)
	producer := new(MockQueueProducer)

	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	leads.On("FindByID", mock.Anything, int64(7)).Return(pendingLead(), nil)
	stubConversionPrices(prices)
	conversions.On("ConvertLead", mock.Anything, int64(7), mock.Anything, mock.Anything, entity.Pipeline).Return(nil)
	producer.On("PublishConversion", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))

	uc := newConversionForTest(conversions, payments, leads, prices, producer)

	out, err := uc.Execute(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, AcceptInitialPaymentInput{
		LeadID:        7,
		Method:        entity.MethodCash,
		TransactionID: "12345678901234",
	})

	assert.NoError(t, err)
	assert.NotNil(t, out)
}
