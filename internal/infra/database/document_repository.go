package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (lead_id, type, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, doc.LeadID, doc.Type, doc.FileURL, doc.UploadedAt).Scan(&doc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateDocument
		}
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*entity.Document, error) {
	query := `SELECT id, lead_id, type, file_url, uploaded_at FROM documents WHERE id = $1`
	var d entity.Document
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.LeadID, &d.Type, &d.FileURL, &d.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &d, nil
}

func (r *DocumentRepository) FindByLeadAndType(ctx context.Context, leadID int64, docType string) (*entity.Document, error) {
	query := `
		SELECT id, lead_id, type, file_url, uploaded_at
		FROM documents
		WHERE lead_id = $1 AND LOWER(type) = LOWER($2)
		LIMIT 1
	`
	var d entity.Document
	err := r.DB.QueryRowContext(ctx, query, leadID, docType).Scan(&d.ID, &d.LeadID, &d.Type, &d.FileURL, &d.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document by type: %w", err)
	}
	return &d, nil
}

func (r *DocumentRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Document, error) {
	query := `
		SELECT id, lead_id, type, file_url, uploaded_at
		FROM documents WHERE lead_id = $1 ORDER BY uploaded_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.LeadID, &d.Type, &d.FileURL, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
