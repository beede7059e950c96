package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orionte/placement-api/internal/entity"
)

func TestIsStageCompletedCaseInsensitive(t *testing.T) {
	stages := []*entity.Stage{
		{StageName: "Medical Check", Completed: true},
		{StageName: "Video CV", Completed: false},
	}

	assert.True(t, IsStageCompleted(stages, "Medical Check"))
	assert.True(t, IsStageCompleted(stages, "medical check"))
	assert.True(t, IsStageCompleted(stages, "  MEDICAL CHECK  "))
	assert.False(t, IsStageCompleted(stages, "Video CV"))
	assert.False(t, IsStageCompleted(stages, "Air Ticket"))
}

func TestIsStageCompletedStoredCasingVaries(t *testing.T) {
	stages := []*entity.Stage{
		{StageName: "medical check", Completed: true},
	}

	assert.True(t, IsStageCompleted(stages, "Medical Check"))
}

func TestCanUploadForRequiresFullPayment(t *testing.T) {
	stage := &entity.Stage{StageName: "IELTS Test"}

	assert.False(t, CanUploadFor(stage, 0, 1400000))
	assert.False(t, CanUploadFor(stage, 1399999, 1400000))
	assert.True(t, CanUploadFor(stage, 1400000, 1400000))
	assert.True(t, CanUploadFor(stage, 2000000, 1400000))
	assert.False(t, CanUploadFor(nil, 1400000, 1400000))
}

func TestCanUploadForZeroPricedServiceIsOpen(t *testing.T) {
	stage := &entity.Stage{StageName: "Video CV"}

	assert.True(t, CanUploadFor(stage, 0, 0))
}

func TestCanCompleteRequiresEveryDocumentType(t *testing.T) {
	stage := &entity.Stage{StageName: "Academic Documents"}
	required := []string{"Transcript", "Degree Certificate"}

	none := []*entity.Document{}
	some := []*entity.Document{{Type: "Transcript"}}
	all := []*entity.Document{{Type: "transcript"}, {Type: "Degree Certificate"}}

	assert.False(t, CanComplete(stage, none, required))
	assert.False(t, CanComplete(stage, some, required))
	assert.True(t, CanComplete(stage, all, required))
	assert.True(t, CanComplete(stage, none, nil))
}

func TestCompleteStageStampsTimeAndData(t *testing.T) {
	stages := new(MockStageRepository)
	stage := &entity.Stage{ID: 3, LeadID: 7, StageName: "IELTS Test"}
	stages.On("FindByID", mock.Anything, int64(3)).Return(stage, nil)
	stages.On("Update", mock.Anything, stage).Return(nil)

	uc := NewProgressUseCase(stages, okAuditLogger{})
	uc.Now = fixedClock

	data := json.RawMessage(`{"listening":7.5,"reading":8.0}`)
	updated, err := uc.CompleteStage(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, 3, data)

	assert.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, fixedClock(), *updated.CompletedAt)
	assert.JSONEq(t, `{"listening":7.5,"reading":8.0}`, string(updated.Data))
}

func TestCompleteStageNotFound(t *testing.T) {
	stages := new(MockStageRepository)
	stages.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrNotFound)

	uc := NewProgressUseCase(stages, okAuditLogger{})

	_, err := uc.CompleteStage(context.Background(), entity.Actor{ID: 1, Role: entity.RoleStaff}, 99, nil)

	assert.Equal(t, CodeNotFound, DomainCode(err))
}

func TestRevertStageMissingStageIsNotAnError(t *testing.T) {
	stages := new(MockStageRepository)
	stages.On("FindFirstByNameContains", mock.Anything, int64(7), "Academic Documents").Return(nil, entity.ErrNotFound)

	uc := NewProgressUseCase(stages, okAuditLogger{})

	assert.NoError(t, uc.RevertStage(context.Background(), 7, "Academic Documents"))
	stages.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRevertStageClearsCompletion(t *testing.T) {
	stages := new(MockStageRepository)
	done := fixedClock()
	stage := &entity.Stage{ID: 2, LeadID: 7, StageName: "Academic Documents", Completed: true, CompletedAt: &done}
	stages.On("FindFirstByNameContains", mock.Anything, int64(7), "Academic Documents").Return(stage, nil)
	stages.On("Update", mock.Anything, stage).Return(nil)

	uc := NewProgressUseCase(stages, okAuditLogger{})

	assert.NoError(t, uc.RevertStage(context.Background(), 7, "Academic Documents"))
	assert.False(t, stage.Completed)
	assert.Nil(t, stage.CompletedAt)
}

func TestStagesForLeadPipelineOrder(t *testing.T) {
	stages := new(MockStageRepository)
	stages.On("FindByLeadID", mock.Anything, int64(7)).Return([]*entity.Stage{
		{ID: 1, StageName: "Airport Transfer"},
		{ID: 2, StageName: "Registration"},
		{ID: 3, StageName: "video cv"},
		{ID: 4, StageName: "Medical Check"},
	}, nil)

	uc := NewProgressUseCase(stages, okAuditLogger{})

	ordered, err := uc.StagesForLead(context.Background(), 7)

	assert.NoError(t, err)
	names := make([]string, len(ordered))
	for i, s := range ordered {
		names[i] = s.StageName
	}
	assert.Equal(t, []string{"Registration", "Medical Check", "video cv", "Airport Transfer"}, names)
}
