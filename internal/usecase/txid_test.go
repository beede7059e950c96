package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orionte/placement-api/internal/entity"
)

func TestRandomTransactionIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := randomTransactionID()
		assert.NoError(t, err)
		assert.True(t, IsValidTransactionID(id), "generated id %q is not 14 digits", id)
	}
}

func TestIssueTransactionIDRetriesOnCollision(t *testing.T) {
	payments := new(MockPaymentRepository)
	// First candidate collides, second one is free.
	payments.On("ExistsByTransactionID", mock.Anything, mock.Anything).Return(true, nil).Once()
	payments.On("ExistsByTransactionID", mock.Anything, mock.Anything).Return(false, nil).Once()

	uc := newLedgerForTest(payments, new(MockLeadRepository), new(MockServicePriceRepository))

	id, err := uc.IssueTransactionID(context.Background())

	assert.NoError(t, err)
	assert.True(t, IsValidTransactionID(id))
	payments.AssertNumberOfCalls(t, "ExistsByTransactionID", 2)
}

func TestIssueTransactionIDFallsBackAfterExhaustedRetries(t *testing.T) {
	payments := new(MockPaymentRepository)
	var checked []string
	payments.On("ExistsByTransactionID", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			checked = append(checked, args.String(1))
		}).
		Return(true, nil)

	uc := newLedgerForTest(payments, new(MockLeadRepository), new(MockServicePriceRepository))

	id, err := uc.IssueTransactionID(context.Background())

	// After every checked candidate collided, the fallback is a fresh
	// candidate handed out unchecked; the unique index is the final arbiter
	// at insert time.
	assert.NoError(t, err)
	assert.True(t, IsValidTransactionID(id))
	assert.NotContains(t, checked, id)
	payments.AssertNumberOfCalls(t, "ExistsByTransactionID", txidMaxRetries)
}

func TestIssueTransactionIDConcurrent(t *testing.T) {
	payments := new(MockPaymentRepository)
	payments.On("ExistsByTransactionID", mock.Anything, mock.Anything).Return(false, nil)

	uc := newLedgerForTest(payments, new(MockLeadRepository), new(MockServicePriceRepository))

	var wg sync.WaitGroup
	ids := make(chan string, 1000)
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := uc.IssueTransactionID(context.Background())
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		assert.Len(t, id, 14)
	}
}

func TestCheckTransactionID(t *testing.T) {
	payments := new(MockPaymentRepository)
	payments.On("ExistsByTransactionID", mock.Anything, "12345678901234").Return(false, nil)
	payments.On("ExistsByTransactionID", mock.Anything, "99999999999999").Return(true, nil)

	uc := newLedgerForTest(payments, new(MockLeadRepository), new(MockServicePriceRepository))
	actor := entity.Actor{ID: 1, Role: entity.RoleStaff}

	assert.NoError(t, uc.CheckTransactionID(context.Background(), actor, "12345678901234"))
	assert.Equal(t, CodeConflict, DomainCode(uc.CheckTransactionID(context.Background(), actor, "99999999999999")))
	assert.Equal(t, CodeValidation, DomainCode(uc.CheckTransactionID(context.Background(), actor, "not-a-number")))
}
