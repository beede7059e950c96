package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orionte/placement-api/internal/entity"
)

func validLeadInput() CreateLeadInput {
	return CreateLeadInput{
		FirstName:             "Amina",
		LastName:              "Okello",
		Email:                 "amina@example.com",
		PhoneNumber:           "+256700000001",
		Nationality:           "Ugandan",
		HighestEducationLevel: "Bachelor",
		ProgramPlacement:      []string{"Nursing"},
		CountryInterest:       []string{"Germany", "Poland"},
		University:            "Makerere University",
	}
}

func newLeadsForTest(leads *MockLeadRepository, stages *MockStageRepository, documents *MockDocumentRepository) *LeadUseCase {
	uc := NewLeadUseCase(leads, stages, documents, okAuditLogger{})
	uc.Now = fixedClock
	return uc
}

func TestCreateLeadStartsPending(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByEmail", mock.Anything, "amina@example.com").Return(nil, entity.ErrNotFound)
	leads.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newLeadsForTest(leads, new(MockStageRepository), new(MockDocumentRepository))

	lead, err := uc.Create(context.Background(), staffActor, validLeadInput())

	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStatusPending, lead.Status)
	assert.Equal(t, staffActor.ID, lead.RegisteredByID)
}

func TestCreateLeadDuplicateEmail(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByEmail", mock.Anything, "amina@example.com").Return(&entity.Lead{ID: 3, Email: "amina@example.com"}, nil)

	uc := newLeadsForTest(leads, new(MockStageRepository), new(MockDocumentRepository))

	_, err := uc.Create(context.Background(), staffActor, validLeadInput())

	assert.Equal(t, CodeConflict, DomainCode(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadValidation(t *testing.T) {
	uc := newLeadsForTest(new(MockLeadRepository), new(MockStageRepository), new(MockDocumentRepository))

	_, err := uc.Create(context.Background(), staffActor, CreateLeadInput{})

	assert.Equal(t, CodeValidation, DomainCode(err))
}

func TestTrackerAssemblesLeadStagesDocuments(t *testing.T) {
	leads := new(MockLeadRepository)
	stages := new(MockStageRepository)
	documents := new(MockDocumentRepository)

	leads.On("FindByID", mock.Anything, int64(7)).Return(&entity.Lead{ID: 7, Status: entity.LeadStatusConverted}, nil)
	stages.On("FindByLeadID", mock.Anything, int64(7)).Return([]*entity.Stage{{ID: 1, StageName: "Registration", Completed: true}}, nil)
	documents.On("FindByLeadID", mock.Anything, int64(7)).Return([]*entity.Document{{ID: 2, Type: "Transcript"}}, nil)

	uc := newLeadsForTest(leads, stages, documents)

	view, err := uc.Tracker(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), view.Lead.ID)
	assert.Len(t, view.Stages, 1)
	assert.Len(t, view.Documents, 1)
}

func TestTrackerLeadNotFound(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrNotFound)

	uc := newLeadsForTest(leads, new(MockStageRepository), new(MockDocumentRepository))

	_, err := uc.Tracker(context.Background(), 99)

	assert.Equal(t, CodeNotFound, DomainCode(err))
}

func TestDeleteLeadNotFound(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrNotFound)

	uc := newLeadsForTest(leads, new(MockStageRepository), new(MockDocumentRepository))

	err := uc.Delete(context.Background(), staffActor, 99)

	assert.Equal(t, CodeNotFound, DomainCode(err))
}
