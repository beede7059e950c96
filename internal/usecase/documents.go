package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/orionte/placement-api/internal/entity"
)

// academicDocumentsStage is the literal substring document deletion reverts,
// regardless of the deleted document's own type. Inherited behavior: deleting
// a Passport document still reverts Academic Documents and nothing else.
const academicDocumentsStage = "Academic Documents"

type UploadDocumentInput struct {
	LeadID   int64
	Type     string
	Filename string
	File     io.Reader
}

// DocumentUseCase owns the one-document-per-type invariant and its coupling
// to stage state.
type DocumentUseCase struct {
	Documents DocumentRepositoryInterface
	Leads     LeadRepositoryInterface
	Stages    StageRepositoryInterface
	Store     FileStore
	Audit     AuditLoggerInterface
	Now       Clock
}

func NewDocumentUseCase(
	documents DocumentRepositoryInterface,
	leads LeadRepositoryInterface,
	stages StageRepositoryInterface,
	store FileStore,
	audit AuditLoggerInterface,
) *DocumentUseCase {
	return &DocumentUseCase{
		Documents: documents,
		Leads:     leads,
		Stages:    stages,
		Store:     store,
		Audit:     audit,
		Now:       time.Now,
	}
}

// Upload stores the file and registers the document. The disk write and the
// row insert share no database transaction, so the pair runs as a
// compensated sequence: a failed insert removes the stored file.
func (uc *DocumentUseCase) Upload(ctx context.Context, actor entity.Actor, input UploadDocumentInput) (*entity.Document, error) {
	if input.LeadID <= 0 || input.Type == "" || input.File == nil {
		return nil, NewValidationError("leadId, type and file are required")
	}

	if _, err := uc.Leads.FindByID(ctx, input.LeadID); err != nil {
		return nil, NewNotFoundError("lead not found")
	}

	if existing, err := uc.Documents.FindByLeadAndType(ctx, input.LeadID, input.Type); err == nil && existing != nil {
		return nil, NewConflictError("this document has already been uploaded for this client")
	}

	doc := &entity.Document{
		LeadID:     input.LeadID,
		Type:       input.Type,
		UploadedAt: uc.Now(),
	}

	txn := NewTransaction()
	txn.AddOperation("store_file", func(ctx context.Context) error {
		url, err := uc.Store.Save("documents", input.Filename, input.File)
		if err != nil {
			return err
		}
		doc.FileURL = url
		return nil
	})
	txn.AddCompensation("remove_file", func(ctx context.Context) error {
		return uc.Store.Remove(doc.FileURL)
	})
	txn.AddOperation("create_document", func(ctx context.Context) error {
		return uc.Documents.Create(ctx, doc)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrDuplicateDocument) {
			return nil, NewConflictError("this document has already been uploaded for this client")
		}
		return nil, NewStorageError("failed to upload document: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Uploaded Document", "/documents/upload", "POST", 201, actor.ID,
		map[string]any{"documentId": doc.ID, "leadId": doc.LeadID, "type": doc.Type, "fileUrl": doc.FileURL},
	))

	return doc, nil
}

// Delete removes the document and its stored file, then reverts the
// Academic Documents stage for the owning lead. File removal is best-effort;
// a failed unlink is logged and the deletion still succeeds.
func (uc *DocumentUseCase) Delete(ctx context.Context, actor entity.Actor, documentID int64) error {
	doc, err := uc.Documents.FindByID(ctx, documentID)
	if err != nil {
		return NewNotFoundError("document not found")
	}

	if err := uc.Store.Remove(doc.FileURL); err != nil {
		log.Printf("failed to remove stored file %s: %v", doc.FileURL, err)
	}

	if err := uc.Documents.Delete(ctx, doc.ID); err != nil {
		return NewStorageError("failed to delete document: " + err.Error())
	}

	if stage, err := uc.Stages.FindFirstByNameContains(ctx, doc.LeadID, academicDocumentsStage); err == nil {
		stage.Revert()
		if err := uc.Stages.Update(ctx, stage); err != nil {
			return NewStorageError("document deleted but stage not reverted: " + err.Error())
		}
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Deleted Document", fmt.Sprintf("/documents/%d", documentID), "DELETE", 200, actor.ID,
		map[string]any{"documentId": doc.ID, "leadId": doc.LeadID, "type": doc.Type, "fileUrl": doc.FileURL},
	))

	return nil
}

// UploadVideoCV stores a video CV as a document and, when the lead's
// Video CV stage exists, marks it complete in the same action.
func (uc *DocumentUseCase) UploadVideoCV(ctx context.Context, actor entity.Actor, leadID int64, filename string, file io.Reader) (*entity.Document, bool, error) {
	if leadID <= 0 || file == nil {
		return nil, false, NewValidationError("leadId and video file are required")
	}

	if existing, err := uc.Documents.FindByLeadAndType(ctx, leadID, "Video CV"); err == nil && existing != nil {
		return nil, false, NewConflictError("a video CV has already been uploaded for this client")
	}

	doc := &entity.Document{
		LeadID:     leadID,
		Type:       "Video CV",
		UploadedAt: uc.Now(),
	}

	txn := NewTransaction()
	txn.AddOperation("store_file", func(ctx context.Context) error {
		url, err := uc.Store.Save("videocv", filename, file)
		if err != nil {
			return err
		}
		doc.FileURL = url
		return nil
	})
	txn.AddCompensation("remove_file", func(ctx context.Context) error {
		return uc.Store.Remove(doc.FileURL)
	})
	txn.AddOperation("create_document", func(ctx context.Context) error {
		return uc.Documents.Create(ctx, doc)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrDuplicateDocument) {
			return nil, false, NewConflictError("a video CV has already been uploaded for this client")
		}
		return nil, false, NewStorageError("failed to upload video CV: " + err.Error())
	}

	stageCompleted := false
	if stages, err := uc.Stages.FindByLeadID(ctx, leadID); err == nil {
		for _, stage := range stages {
			if entity.StageNameEqual(stage.StageName, "Video CV") {
				stage.Complete(uc.Now())
				if err := uc.Stages.Update(ctx, stage); err == nil {
					stageCompleted = true
				}
				break
			}
		}
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Uploaded Video CV", fmt.Sprintf("/videocv/%d", leadID), "POST", 201, actor.ID,
		map[string]any{"leadId": leadID, "documentId": doc.ID, "fileUrl": doc.FileURL, "stageCompleted": stageCompleted},
	))

	return doc, stageCompleted, nil
}
