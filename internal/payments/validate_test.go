package payments

import (
	"errors"
	"testing"
)

func validCardRequest() Request {
	return Request{
		Method: MethodCard,
		Card: &CardDetails{
			Number:     "4111111111111111",
			HolderName: "A B",
			Expiry:     "12/30",
			CVV:        "123",
		},
		FiscalInfo: FiscalInfo{
			DocumentNumber: "900123456",
			FullName:       "A B",
		},
		AcceptedTerms:    true,
		AcceptedPolicies: true,
	}
}

func TestValidateCardSuccess(t *testing.T) {
	if err := Validate(validCardRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateTermsNotAccepted(t *testing.T) {
	req := validCardRequest()
	req.AcceptedTerms = false

	err := Validate(req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Rule != "terms_not_accepted" {
		t.Fatalf("violated rule = %q, want terms_not_accepted", verr.Rule)
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	// Both the fiscal block and the card are broken; sequential validation
	// must report the fiscal rule first.
	req := validCardRequest()
	req.FiscalInfo.DocumentNumber = ""
	req.Card.Number = "1234"

	err := Validate(req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Rule != "fiscal_document_required" {
		t.Fatalf("violated rule = %q, want fiscal_document_required", verr.Rule)
	}
}

func TestValidateCardRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		rule   string
	}{
		{"missing card block", func(r *Request) { r.Card = nil }, "card_details_required"},
		{"short number", func(r *Request) { r.Card.Number = "411111111111" }, "card_number_invalid"},
		{"long number", func(r *Request) { r.Card.Number = "41111111111111111111" }, "card_number_invalid"},
		{"letters in number", func(r *Request) { r.Card.Number = "4111x11111111111" }, "card_number_invalid"},
		{"bad checksum", func(r *Request) { r.Card.Number = "4111111111111112" }, "card_number_checksum"},
		{"missing holder", func(r *Request) { r.Card.HolderName = "" }, "card_holder_required"},
		{"bad expiry month", func(r *Request) { r.Card.Expiry = "13/30" }, "card_expiry_invalid"},
		{"expiry wrong shape", func(r *Request) { r.Card.Expiry = "1230" }, "card_expiry_invalid"},
		{"bad cvv", func(r *Request) { r.Card.CVV = "12" }, "card_cvv_invalid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCardRequest()
			tc.mutate(&req)

			err := Validate(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Rule != tc.rule {
				t.Fatalf("violated rule = %q, want %q", verr.Rule, tc.rule)
			}
		})
	}
}

func TestValidateBankTransfer(t *testing.T) {
	req := Request{
		Method:           MethodBankTransfer,
		Bank:             &BankDetails{BankID: "bancolombia", DocumentNumber: "123456"},
		FiscalInfo:       FiscalInfo{DocumentNumber: "900123456", FullName: "Acme Travel SAS"},
		AcceptedTerms:    true,
		AcceptedPolicies: true,
	}
	if err := Validate(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.Bank.BankID = ""
	err := Validate(req)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Rule != "bank_id_required" {
		t.Fatalf("expected bank_id_required, got %v", err)
	}
}

func TestValidateSimpleMethodsNeedNoExtraFields(t *testing.T) {
	for _, m := range []Method{MethodWallet, MethodWireTransfer, MethodCashAtOffice} {
		req := Request{
			Method:           m,
			FiscalInfo:       FiscalInfo{DocumentNumber: "1", FullName: "N"},
			AcceptedTerms:    true,
			AcceptedPolicies: true,
		}
		if err := Validate(req); err != nil {
			t.Errorf("method %s: expected valid, got %v", m, err)
		}
	}
}

func TestValidateUnknownMethod(t *testing.T) {
	req := validCardRequest()
	req.Method = Method("CHECK")

	err := Validate(req)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Rule != "method_invalid" {
		t.Fatalf("expected method_invalid, got %v", err)
	}
}

func TestLuhn(t *testing.T) {
	valid := []string{"4111111111111111", "5500005555555559", "378282246310005"}
	for _, n := range valid {
		if !luhnValid(n) {
			t.Errorf("luhnValid(%s) = false, want true", n)
		}
	}
	if luhnValid("4111111111111112") {
		t.Error("luhnValid accepted a bad checksum")
	}
}
