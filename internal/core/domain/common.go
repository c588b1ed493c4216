package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Actor identifies the authenticated caller of a service operation.
// It is derived from the JWT claims by the auth middleware.
type Actor struct {
	UserID   string
	TempleID string
	Role     UserRole
}

// PaymentMode identifies how money changed hands for a domain transaction.
type PaymentMode string

const (
	PaymentCash         PaymentMode = "CASH"
	PaymentUPI          PaymentMode = "UPI"
	PaymentCard         PaymentMode = "CARD"
	PaymentBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentCheque       PaymentMode = "CHEQUE"
)

// SettledViaBank reports whether the mode settles into a bank account
// rather than the cash box.
func (m PaymentMode) SettledViaBank() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentBankTransfer, PaymentCheque:
		return true
	default:
		return false
	}
}
