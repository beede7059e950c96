package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

type StageRepository struct {
	DB *sql.DB
}

func NewStageRepository(db *sql.DB) *StageRepository {
	return &StageRepository{DB: db}
}

func (r *StageRepository) FindByID(ctx context.Context, id int64) (*entity.Stage, error) {
	query := `
		SELECT id, lead_id, stage_name, completed, completed_at, data
		FROM stages WHERE id = $1
	`
	var s entity.Stage
	var data sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.LeadID, &s.StageName, &s.Completed, &s.CompletedAt, &data,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stage: %w", err)
	}
	if data.Valid {
		s.Data = []byte(data.String)
	}
	return &s, nil
}

func (r *StageRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Stage, error) {
	query := `
		SELECT id, lead_id, stage_name, completed, completed_at, data
		FROM stages WHERE lead_id = $1 ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []*entity.Stage
	for rows.Next() {
		var s entity.Stage
		var data sql.NullString
		if err := rows.Scan(&s.ID, &s.LeadID, &s.StageName, &s.Completed, &s.CompletedAt, &data); err != nil {
			return nil, err
		}
		if data.Valid {
			s.Data = []byte(data.String)
		}
		stages = append(stages, &s)
	}
	return stages, rows.Err()
}

// FindFirstByNameContains matches case-sensitively by substring, in id order.
// Completion checks elsewhere are case-insensitive; this one deliberately is
// not.
func (r *StageRepository) FindFirstByNameContains(ctx context.Context, leadID int64, substr string) (*entity.Stage, error) {
	query := `
		SELECT id, lead_id, stage_name, completed, completed_at, data
		FROM stages
		WHERE lead_id = $1 AND stage_name LIKE '%' || $2 || '%'
		ORDER BY id
		LIMIT 1
	`
	var s entity.Stage
	var data sql.NullString
	err := r.DB.QueryRowContext(ctx, query, leadID, substr).Scan(
		&s.ID, &s.LeadID, &s.StageName, &s.Completed, &s.CompletedAt, &data,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stage by name: %w", err)
	}
	if data.Valid {
		s.Data = []byte(data.String)
	}
	return &s, nil
}

func (r *StageRepository) Update(ctx context.Context, stage *entity.Stage) error {
	query := `
		UPDATE stages
		SET completed = $1, completed_at = $2, data = $3
		WHERE id = $4
	`
	var data any
	if len(stage.Data) > 0 {
		data = string(stage.Data)
	}
	res, err := r.DB.ExecContext(ctx, query, stage.Completed, stage.CompletedAt, data, stage.ID)
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
