package payments

import (
	"fmt"
	"regexp"
)

// ValidationError names the first violated rule. Validation is sequential
// with early exit: the user sees one message at a time, fixes it, resubmits.
type ValidationError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payment validation failed (%s): %s", e.Rule, e.Message)
}

func violation(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	expiryMMYY = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvShape   = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate checks a payment request against the always-required rules and the
// method-specific ones. Returns nil on success or the first violated rule.
func Validate(req Request) error {
	// Always required, regardless of method.
	if !req.Method.IsValid() {
		return violation("method_invalid", "unsupported payment method")
	}
	if req.FiscalInfo.DocumentNumber == "" {
		return violation("fiscal_document_required", "billing document number is required")
	}
	if req.FiscalInfo.FullName == "" {
		return violation("fiscal_name_required", "billing name or business name is required")
	}
	if !req.AcceptedTerms {
		return violation("terms_not_accepted", "terms and conditions must be accepted")
	}
	if !req.AcceptedPolicies {
		return violation("policies_not_accepted", "travel policies must be accepted")
	}

	switch {
	case req.Method.RequiresCardDetails():
		return validateCard(req.Card)
	case req.Method.RequiresBankDetails():
		return validateBank(req.Bank)
	}

	// Wallet, wire transfer and cash at office need nothing beyond the
	// always-required set.
	return nil
}

func validateCard(card *CardDetails) error {
	if card == nil {
		return violation("card_details_required", "card details are required")
	}
	if !digitsOnly.MatchString(card.Number) || len(card.Number) < 13 || len(card.Number) > 19 {
		return violation("card_number_invalid", "card number must be 13-19 digits")
	}
	if !luhnValid(card.Number) {
		return violation("card_number_checksum", "card number failed checksum")
	}
	if card.HolderName == "" {
		return violation("card_holder_required", "cardholder name is required")
	}
	if !expiryMMYY.MatchString(card.Expiry) {
		return violation("card_expiry_invalid", "expiry must be in MM/YY format")
	}
	if !cvvShape.MatchString(card.CVV) {
		return violation("card_cvv_invalid", "security code must be 3 or 4 digits")
	}
	return nil
}

func validateBank(bank *BankDetails) error {
	if bank == nil {
		return violation("bank_details_required", "bank transfer details are required")
	}
	if bank.BankID == "" {
		return violation("bank_id_required", "bank selection is required")
	}
	if bank.DocumentNumber == "" {
		return violation("bank_document_required", "account holder document number is required")
	}
	return nil
}
