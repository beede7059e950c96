package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orionte/placement-api/internal/entity"
)

type CreateLeadInput struct {
	FirstName             string   `json:"firstName"`
	MiddleName            *string  `json:"middleName"`
	LastName              string   `json:"lastName"`
	Email                 string   `json:"email"`
	PhoneNumber           string   `json:"phoneNumber"`
	Nationality           string   `json:"nationality"`
	HighestEducationLevel string   `json:"highestEducationLevel"`
	ProgramPlacement      []string `json:"programPlacement"`
	CountryInterest       []string `json:"countryInterest"`
	University            string   `json:"university"`
	IELTSCertificate      bool     `json:"ieltsCertificate"`
	NextOfKin             *string  `json:"nextOfKin"`
	KinAddress            *string  `json:"kinAddress"`
	KinPhoneNumber        *string  `json:"kinPhoneNumber"`
	NIN                   *string  `json:"nin"`
	PassportNumber        *string  `json:"passportNumber"`
	PassportIssueDate     *time.Time `json:"passportIssueDate"`
	PassportExpiryDate    *time.Time `json:"passportExpiryDate"`
	DOB                   *time.Time `json:"dob"`
	Address               *string  `json:"address"`
	ChosenProgram         *string  `json:"chosenProgram"`
}

type UpdateLeadInput struct {
	ID int64 `json:"id"`
	CreateLeadInput
	Status string `json:"status"`
}

// TrackerView is a lead with its pipeline stages and uploaded documents, the
// shape the client tracker consumes.
type TrackerView struct {
	Lead      *entity.Lead       `json:"lead"`
	Stages    []*entity.Stage    `json:"stages"`
	Documents []*entity.Document `json:"documents"`
}

type LeadUseCase struct {
	Leads     LeadRepositoryInterface
	Stages    StageRepositoryInterface
	Documents DocumentRepositoryInterface
	Audit     AuditLoggerInterface
	Now       Clock
}

func NewLeadUseCase(
	leads LeadRepositoryInterface,
	stages StageRepositoryInterface,
	documents DocumentRepositoryInterface,
	audit AuditLoggerInterface,
) *LeadUseCase {
	return &LeadUseCase{Leads: leads, Stages: stages, Documents: documents, Audit: audit, Now: time.Now}
}

func (uc *LeadUseCase) Create(ctx context.Context, actor entity.Actor, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	if existing, err := uc.Leads.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, NewConflictError("email already exists")
	}

	lead := &entity.Lead{
		FirstName:             input.FirstName,
		MiddleName:            input.MiddleName,
		LastName:              input.LastName,
		Email:                 input.Email,
		PhoneNumber:           input.PhoneNumber,
		Nationality:           input.Nationality,
		HighestEducationLevel: input.HighestEducationLevel,
		ProgramPlacement:      input.ProgramPlacement,
		CountryInterest:       input.CountryInterest,
		University:            input.University,
		IELTSCertificate:      input.IELTSCertificate,
		NextOfKin:             input.NextOfKin,
		KinAddress:            input.KinAddress,
		KinPhoneNumber:        input.KinPhoneNumber,
		NIN:                   input.NIN,
		PassportNumber:        input.PassportNumber,
		PassportIssueDate:     input.PassportIssueDate,
		PassportExpiryDate:    input.PassportExpiryDate,
		DOB:                   input.DOB,
		Address:               input.Address,
		ChosenProgram:         input.ChosenProgram,
		RegisteredByID:        actor.ID,
		Status:                entity.LeadStatusPending,
		CreatedAt:             uc.Now(),
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError("email already exists")
		}
		return nil, NewStorageError("failed to create lead: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Created New Lead", "/leads", "POST", 201, actor.ID,
		map[string]any{"leadId": lead.ID, "email": lead.Email},
	))

	return lead, nil
}

func (uc *LeadUseCase) List(ctx context.Context, actor entity.Actor) ([]*entity.Lead, error) {
	leads, err := uc.Leads.FindAll(ctx)
	if err != nil {
		return nil, NewStorageError("failed to list leads: " + err.Error())
	}
	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Fetched Leads", "/leads", "GET", 200, actor.ID,
		map[string]any{"leadCount": len(leads)},
	))
	return leads, nil
}

// Tracker returns the lead with stages in pipeline order plus its documents.
func (uc *LeadUseCase) Tracker(ctx context.Context, leadID int64) (*TrackerView, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, NewNotFoundError("lead not found")
	}

	stages, err := uc.Stages.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, NewStorageError("failed to load stages: " + err.Error())
	}
	documents, err := uc.Documents.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, NewStorageError("failed to load documents: " + err.Error())
	}

	return &TrackerView{Lead: lead, Stages: stages, Documents: documents}, nil
}

func (uc *LeadUseCase) Update(ctx context.Context, actor entity.Actor, input UpdateLeadInput) (*entity.Lead, error) {
	if input.ID <= 0 {
		return nil, NewValidationError("lead ID is required")
	}

	lead, err := uc.Leads.FindByID(ctx, input.ID)
	if err != nil {
		return nil, NewNotFoundError("lead not found")
	}

	if input.Email != "" && input.Email != lead.Email {
		if existing, err := uc.Leads.FindByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, NewConflictError("email already exists")
		}
		lead.Email = input.Email
	}

	lead.FirstName = input.FirstName
	lead.MiddleName = input.MiddleName
	lead.LastName = input.LastName
	lead.PhoneNumber = input.PhoneNumber
	lead.Nationality = input.Nationality
	lead.HighestEducationLevel = input.HighestEducationLevel
	lead.ProgramPlacement = input.ProgramPlacement
	lead.CountryInterest = input.CountryInterest
	lead.University = input.University
	lead.IELTSCertificate = input.IELTSCertificate
	lead.NextOfKin = input.NextOfKin
	lead.KinAddress = input.KinAddress
	lead.KinPhoneNumber = input.KinPhoneNumber
	lead.NIN = input.NIN
	lead.PassportNumber = input.PassportNumber
	lead.PassportIssueDate = input.PassportIssueDate
	lead.PassportExpiryDate = input.PassportExpiryDate
	lead.DOB = input.DOB
	lead.Address = input.Address
	lead.ChosenProgram = input.ChosenProgram
	if input.Status != "" {
		lead.Status = input.Status
	}

	if err := uc.Leads.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError("email already exists")
		}
		return nil, NewStorageError("failed to update lead: " + err.Error())
	}

	action := "Updated Lead Details"
	if input.Status != "" {
		action = "Updated Lead Status"
	}
	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		action, "/leads", "PUT", 200, actor.ID,
		map[string]any{"leadId": lead.ID, "email": lead.Email, "status": lead.Status},
	))

	return lead, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, actor entity.Actor, leadID int64) error {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return NewNotFoundError("lead not found")
	}

	if err := uc.Leads.Delete(ctx, leadID); err != nil {
		return NewStorageError("failed to delete lead: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Deleted Lead", fmt.Sprintf("/leads/%d", leadID), "DELETE", 200, actor.ID,
		map[string]any{"leadId": leadID, "email": lead.Email},
	))

	return nil
}

// ConvertedClients lists converted leads with the completion time of their
// paid Registration payment.
func (uc *LeadUseCase) ConvertedClients(ctx context.Context) ([]*entity.ConvertedClient, error) {
	clients, err := uc.Leads.FindConverted(ctx)
	if err != nil {
		return nil, NewStorageError("failed to list converted clients: " + err.Error())
	}
	return clients, nil
}
