package payments

import "time"

// FiscalInfo is the billing identity block required for invoicing. It is
// collected for every payment method.
type FiscalInfo struct {
	DocumentNumber string `json:"document_number" binding:"required"`
	FullName       string `json:"full_name" binding:"required"` // person or business name
	Email          string `json:"email" binding:"omitempty,email"`
	Address        string `json:"address"`
}

// CardDetails holds the card fields collected when Method == CARD.
type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`
}

// BankDetails holds the fields for the PSE-style local bank transfer.
type BankDetails struct {
	BankID         string `json:"bank_id"`
	DocumentNumber string `json:"document_number"`
}

// Request is the payment submission coming from the wizard's payment step.
type Request struct {
	Method           Method       `json:"method"`
	Card             *CardDetails `json:"card,omitempty"`
	Bank             *BankDetails `json:"bank,omitempty"`
	FiscalInfo       FiscalInfo   `json:"fiscal_info"`
	AcceptedTerms    bool         `json:"accepted_terms"`
	AcceptedPolicies bool         `json:"accepted_policies"`
}

// Status of a processed payment.
type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
)

// Result is the synthesized outcome of a processed payment. The external
// processor integration is out of scope; this record is what the rest of the
// system consumes.
type Result struct {
	Method            Method     `json:"method"`
	Status            Status     `json:"status"`
	TransactionID     string     `json:"transaction_id"`
	AuthorizationCode string     `json:"authorization_code"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	FiscalInfo        FiscalInfo `json:"fiscal_info"`
	ProcessedAt       time.Time  `json:"processed_at"`
}

// Approved reports whether the payment went through.
func (r *Result) Approved() bool {
	return r != nil && r.Status == StatusApproved
}
