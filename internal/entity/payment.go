package entity

import "time"

// Payment status values derived from cumulative paid amount vs service price.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Recognized payment methods.
const (
	MethodCash         = "cash"
	MethodMobileMoney  = "mobile_money"
	MethodVisa         = "visa"
	MethodBankTransfer = "bank_transfer"
)

// ProofNotApplicable is the sentinel proof reference stored for cash
// payments, which carry no uploaded proof file.
const ProofNotApplicable = "Not Applicable"

// IsValidPaymentMethod reports whether m is in the method vocabulary.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodVisa, MethodBankTransfer:
		return true
	}
	return false
}

// MethodRequiresProof reports whether the method needs a transaction id and
// an uploaded proof of payment. Only cash is exempt.
func MethodRequiresProof(m string) bool {
	return m != MethodCash
}

// Payment is one payment transaction record. Rows are never updated or
// deleted; each partial payment is a new row and totals are re-derived by
// summation.
type Payment struct {
	ID     int64  `json:"id"`
	LeadID int64  `json:"leadId"`
	Type   string `json:"type"`
	// Amount is the full service price at charge time; PaidAmount is what
	// this transaction actually paid. Minor currency units.
	Amount        int64      `json:"amount"`
	PaidAmount    int64      `json:"paidAmount"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transactionId"`
	FileURL       string     `json:"fileUrl"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DerivePaymentStatus maps a cumulative paid total against the service price.
// There is no overpaid kind: anything at or above the price is paid.
func DerivePaymentStatus(totalPaid, price int64) string {
	switch {
	case price > 0 && totalPaid >= price:
		return PaymentStatusPaid
	case totalPaid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}
