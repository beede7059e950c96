package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/orionte/placement-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// joinValidationErrors flattens field errors into one DomainError message.
func joinValidationErrors(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return NewValidationError("validation failed: " + strings.Join(parts, ", "))
}

var transactionIDPattern = regexp.MustCompile(`^\d{14}$`)

// IsValidTransactionID accepts exactly 14 digits, nothing else.
func IsValidTransactionID(id string) bool {
	return transactionIDPattern.MatchString(id)
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"firstName", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"lastName", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		errs = append(errs, ValidationError{"phoneNumber", "is required"})
	}
	if strings.TrimSpace(input.Nationality) == "" {
		errs = append(errs, ValidationError{"nationality", "is required"})
	}
	if strings.TrimSpace(input.HighestEducationLevel) == "" {
		errs = append(errs, ValidationError{"highestEducationLevel", "is required"})
	}
	if len(input.ProgramPlacement) == 0 {
		errs = append(errs, ValidationError{"programPlacement", "at least one program is required"})
	}
	if len(input.CountryInterest) == 0 {
		errs = append(errs, ValidationError{"countryInterest", "at least one country is required"})
	}
	if strings.TrimSpace(input.University) == "" {
		errs = append(errs, ValidationError{"university", "is required"})
	}

	return errs
}

func ValidateRecordPaymentInput(input RecordPaymentInput) []ValidationError {
	var errs []ValidationError

	if input.LeadID <= 0 {
		errs = append(errs, ValidationError{"leadId", "is required"})
	}
	if strings.TrimSpace(input.Type) == "" {
		errs = append(errs, ValidationError{"type", "is required"})
	}
	if input.PaidAmount < 0 {
		errs = append(errs, ValidationError{"paidAmount", "must not be negative"})
	}
	if !entity.IsValidPaymentMethod(input.Method) {
		errs = append(errs, ValidationError{"method", "must be cash, mobile_money, visa or bank_transfer"})
	}

	if entity.MethodRequiresProof(input.Method) {
		if !IsValidTransactionID(input.TransactionID) {
			errs = append(errs, ValidationError{"transactionId", "must be a 14-digit number"})
		}
		if strings.TrimSpace(input.FileURL) == "" {
			errs = append(errs, ValidationError{"fileUrl", "proof of payment is required for non-cash methods"})
		}
	} else if input.TransactionID != "" && !IsValidTransactionID(input.TransactionID) {
		errs = append(errs, ValidationError{"transactionId", "must be a 14-digit number"})
	}

	return errs
}

func ValidateAcceptInitialPaymentInput(input AcceptInitialPaymentInput) []ValidationError {
	var errs []ValidationError

	if input.LeadID <= 0 {
		errs = append(errs, ValidationError{"leadId", "is required"})
	}
	if !entity.IsValidPaymentMethod(input.Method) {
		errs = append(errs, ValidationError{"method", "must be cash, mobile_money, visa or bank_transfer"})
	}
	if !IsValidTransactionID(input.TransactionID) {
		errs = append(errs, ValidationError{"transactionId", "must be a 14-digit number"})
	}
	if entity.MethodRequiresProof(input.Method) && strings.TrimSpace(input.FileURL) == "" {
		errs = append(errs, ValidationError{"fileUrl", "proof of payment is required for non-cash methods"})
	}

	return errs
}

func ValidateCreateUserInput(input CreateUserInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if len(input.Password) < 8 {
		errs = append(errs, ValidationError{"password", "must have at least 8 characters"})
	}
	if !entity.IsValidRole(input.Role) {
		errs = append(errs, ValidationError{"role", "must be admin, staff or client"})
	}

	return errs
}
