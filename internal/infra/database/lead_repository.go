package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/orionte/placement-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, first_name, middle_name, last_name, email, phone_number, nationality,
	highest_education_level, program_placement, country_interest, university,
	ielts_certificate, next_of_kin, kin_address, kin_phone_number, nin,
	passport_number, passport_issue_date, passport_expiry_date, dob, address,
	chosen_program, registered_by_id, status, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.FirstName, &l.MiddleName, &l.LastName, &l.Email,
		&l.PhoneNumber, &l.Nationality, &l.HighestEducationLevel,
		pq.Array(&l.ProgramPlacement), pq.Array(&l.CountryInterest),
		&l.University, &l.IELTSCertificate, &l.NextOfKin, &l.KinAddress,
		&l.KinPhoneNumber, &l.NIN, &l.PassportNumber, &l.PassportIssueDate,
		&l.PassportExpiryDate, &l.DOB, &l.Address, &l.ChosenProgram,
		&l.RegisteredByID, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			first_name, middle_name, last_name, email, phone_number,
			nationality, highest_education_level, program_placement,
			country_interest, university, ielts_certificate, next_of_kin,
			kin_address, kin_phone_number, nin, passport_number,
			passport_issue_date, passport_expiry_date, dob, address,
			chosen_program, registered_by_id, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.FirstName, lead.MiddleName, lead.LastName, lead.Email,
		lead.PhoneNumber, lead.Nationality, lead.HighestEducationLevel,
		pq.Array(lead.ProgramPlacement), pq.Array(lead.CountryInterest),
		lead.University, lead.IELTSCertificate, lead.NextOfKin,
		lead.KinAddress, lead.KinPhoneNumber, lead.NIN, lead.PassportNumber,
		lead.PassportIssueDate, lead.PassportExpiryDate, lead.DOB,
		lead.Address, lead.ChosenProgram, lead.RegisteredByID, lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE email = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lead by email: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// FindConverted returns converted leads together with the completion time of
// their latest paid Registration payment.
func (r *LeadRepository) FindConverted(ctx context.Context) ([]*entity.ConvertedClient, error) {
	query := `
		SELECT` + leadColumns + `,
			(
				SELECT p.completed_at FROM payments p
				WHERE p.lead_id = leads.id
				  AND p.type = 'Registration'
				  AND p.status = 'paid'
				ORDER BY p.completed_at DESC
				LIMIT 1
			) AS registration_paid_at
		FROM leads
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, entity.LeadStatusConverted)
	if err != nil {
		return nil, fmt.Errorf("failed to list converted clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.ConvertedClient
	for rows.Next() {
		var c entity.ConvertedClient
		err := rows.Scan(
			&c.ID, &c.FirstName, &c.MiddleName, &c.LastName, &c.Email,
			&c.PhoneNumber, &c.Nationality, &c.HighestEducationLevel,
			pq.Array(&c.ProgramPlacement), pq.Array(&c.CountryInterest),
			&c.University, &c.IELTSCertificate, &c.NextOfKin, &c.KinAddress,
			&c.KinPhoneNumber, &c.NIN, &c.PassportNumber,
			&c.PassportIssueDate, &c.PassportExpiryDate, &c.DOB, &c.Address,
			&c.ChosenProgram, &c.RegisteredByID, &c.Status, &c.CreatedAt,
			&c.UpdatedAt, &c.RegistrationPaidAt,
		)
		if err != nil {
			return nil, err
		}
		// Leads converted before any Registration payment landed are not
		// shown in the converted-clients listing.
		if c.RegistrationPaidAt == nil {
			continue
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			first_name = $1, middle_name = $2, last_name = $3, email = $4,
			phone_number = $5, nationality = $6, highest_education_level = $7,
			program_placement = $8, country_interest = $9, university = $10,
			ielts_certificate = $11, next_of_kin = $12, kin_address = $13,
			kin_phone_number = $14, nin = $15, passport_number = $16,
			passport_issue_date = $17, passport_expiry_date = $18, dob = $19,
			address = $20, chosen_program = $21, status = $22,
			updated_at = NOW()
		WHERE id = $23
	`
	res, err := r.DB.ExecContext(ctx, query,
		lead.FirstName, lead.MiddleName, lead.LastName, lead.Email,
		lead.PhoneNumber, lead.Nationality, lead.HighestEducationLevel,
		pq.Array(lead.ProgramPlacement), pq.Array(lead.CountryInterest),
		lead.University, lead.IELTSCertificate, lead.NextOfKin,
		lead.KinAddress, lead.KinPhoneNumber, lead.NIN, lead.PassportNumber,
		lead.PassportIssueDate, lead.PassportExpiryDate, lead.DOB,
		lead.Address, lead.ChosenProgram, lead.Status, lead.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
