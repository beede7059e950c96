package entity

import (
	"errors"
	"time"
)

// Lead status values. The only legal transition is pending -> converted,
// fired exactly once by the initial Registration+Medical payment.
const (
	LeadStatusPending   = "pending"
	LeadStatusConverted = "converted"
)

type Lead struct {
	ID                    int64    `json:"id"`
	FirstName             string   `json:"firstName"`
	MiddleName            *string  `json:"middleName,omitempty"`
	LastName              string   `json:"lastName"`
	Email                 string   `json:"email"`
	PhoneNumber           string   `json:"phoneNumber"`
	Nationality           string   `json:"nationality"`
	HighestEducationLevel string   `json:"highestEducationLevel"`
	ProgramPlacement      []string `json:"programPlacement"`
	CountryInterest       []string `json:"countryInterest"`
	University            string   `json:"university"`
	IELTSCertificate      bool     `json:"ieltsCertificate"`

	// Filled in as the lead moves through the pipeline; nullable until then.
	NextOfKin          *string    `json:"nextOfKin,omitempty"`
	KinAddress         *string    `json:"kinAddress,omitempty"`
	KinPhoneNumber     *string    `json:"kinPhoneNumber,omitempty"`
	NIN                *string    `json:"nin,omitempty"`
	PassportNumber     *string    `json:"passportNumber,omitempty"`
	PassportIssueDate  *time.Time `json:"passportIssueDate,omitempty"`
	PassportExpiryDate *time.Time `json:"passportExpiryDate,omitempty"`
	DOB                *time.Time `json:"dob,omitempty"`
	Address            *string    `json:"address,omitempty"`
	ChosenProgram      *string    `json:"chosenProgram,omitempty"`

	RegisteredByID int64     `json:"registeredById"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (l *Lead) Validate() error {
	if l.FirstName == "" {
		return errors.New("first name is required")
	}
	if l.LastName == "" {
		return errors.New("last name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if l.PhoneNumber == "" {
		return errors.New("phone number is required")
	}
	if l.Nationality == "" {
		return errors.New("nationality is required")
	}
	if l.HighestEducationLevel == "" {
		return errors.New("highest education level is required")
	}
	if len(l.ProgramPlacement) == 0 {
		return errors.New("at least one program placement is required")
	}
	if len(l.CountryInterest) == 0 {
		return errors.New("at least one country of interest is required")
	}
	if l.University == "" {
		return errors.New("university is required")
	}
	return nil
}

// ConvertedClient is a converted lead annotated with the moment its
// Registration payment was completed, for the converted-clients listing.
type ConvertedClient struct {
	Lead
	RegistrationPaidAt *time.Time `json:"registrationPaidAt"`
}
