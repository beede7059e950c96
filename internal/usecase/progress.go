package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/orionte/placement-api/internal/entity"
)

// IsStageCompleted reports whether a stage with the given name exists in the
// collection and is completed. The match is case-insensitive; an absent stage
// is simply false, not an error.
func IsStageCompleted(stages []*entity.Stage, name string) bool {
	for _, s := range stages {
		if entity.StageNameEqual(s.StageName, name) && s.Completed {
			return true
		}
	}
	return false
}

// CanUploadFor is the payment gate: a payment-gated stage exposes its
// document-upload sub-step only once the service is fully paid. A zero-priced
// service is considered paid from the start.
func CanUploadFor(stage *entity.Stage, totalPaid, price int64) bool {
	if stage == nil {
		return false
	}
	return totalPaid >= price
}

// CanComplete is the document gate: a document-gated stage may be completed
// only when every required document type has a corresponding upload.
func CanComplete(stage *entity.Stage, documents []*entity.Document, requiredTypes []string) bool {
	if stage == nil {
		return false
	}
	for _, required := range requiredTypes {
		found := false
		for _, d := range documents {
			if entity.StageNameEqual(d.Type, required) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ProgressUseCase mutates per-lead pipeline state. It does not re-validate
// gating rules; callers decide when completion is permitted.
type ProgressUseCase struct {
	Stages StageRepositoryInterface
	Audit  AuditLoggerInterface
	Now    Clock
}

func NewProgressUseCase(stages StageRepositoryInterface, audit AuditLoggerInterface) *ProgressUseCase {
	return &ProgressUseCase{Stages: stages, Audit: audit, Now: time.Now}
}

// CompleteStage marks the stage done and stamps the completion time,
// optionally replacing the stage's opaque data payload.
func (uc *ProgressUseCase) CompleteStage(ctx context.Context, actor entity.Actor, stageID int64, data json.RawMessage) (*entity.Stage, error) {
	stage, err := uc.Stages.FindByID(ctx, stageID)
	if err != nil {
		return nil, NewNotFoundError("stage not found")
	}

	stage.Complete(uc.Now())
	if len(data) > 0 {
		stage.Data = data
	}

	if err := uc.Stages.Update(ctx, stage); err != nil {
		return nil, NewStorageError("failed to update stage: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Updated Stage", fmt.Sprintf("/stages/%d", stageID), "PATCH", 200, actor.ID,
		map[string]any{"stageId": stageID, "stageName": stage.StageName, "completed": true},
	))

	return stage, nil
}

// RevertStage flips the first stage whose name contains substr back to
// incomplete. The substring match is case-sensitive; completion checks are
// not. The asymmetry is inherited behavior, pinned by tests.
func (uc *ProgressUseCase) RevertStage(ctx context.Context, leadID int64, substr string) error {
	stage, err := uc.Stages.FindFirstByNameContains(ctx, leadID, substr)
	if err != nil {
		// No matching stage is not a failure; the delete flow proceeds.
		return nil
	}

	stage.Revert()
	if err := uc.Stages.Update(ctx, stage); err != nil {
		return NewStorageError("failed to revert stage: " + err.Error())
	}
	return nil
}

// StagesForLead returns the lead's stages ordered by the fixed pipeline
// sequence. Stages with names outside the vocabulary sort last in stored
// order.
func (uc *ProgressUseCase) StagesForLead(ctx context.Context, leadID int64) ([]*entity.Stage, error) {
	stages, err := uc.Stages.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, NewStorageError("failed to load stages: " + err.Error())
	}

	rank := func(name string) int {
		for i, s := range entity.Pipeline {
			if entity.StageNameEqual(s, name) {
				return i
			}
		}
		return len(entity.Pipeline)
	}
	ordered := make([]*entity.Stage, len(stages))
	copy(ordered, stages)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && rank(ordered[j].StageName) < rank(ordered[j-1].StageName); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered, nil
}
