package payments

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestSimulatedChargeApproves(t *testing.T) {
	p := NewSimulatedProcessor(0, 0)

	res, err := p.Charge(context.Background(), validCardRequest(), 3570, "USD")
	if err != nil {
		t.Fatalf("Charge failed: %v", err)
	}
	if !res.Approved() {
		t.Fatalf("status = %s, want APPROVED", res.Status)
	}
	if res.Amount != 3570 {
		t.Errorf("amount = %v, want 3570", res.Amount)
	}
	if !regexp.MustCompile(`^TXN_\d+_[A-Z0-9]{8}$`).MatchString(res.TransactionID) {
		t.Errorf("transaction id %q has unexpected shape", res.TransactionID)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(res.AuthorizationCode) {
		t.Errorf("authorization code %q has unexpected shape", res.AuthorizationCode)
	}
	if res.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}
}

func TestSimulatedChargeDeclines(t *testing.T) {
	p := NewSimulatedProcessor(0, 1.0)
	p.decider = func() float64 { return 0 } // always below the rate

	res, err := p.Charge(context.Background(), validCardRequest(), 100, "USD")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if res == nil || res.Status != StatusDeclined {
		t.Fatalf("expected declined result, got %+v", res)
	}
	if res.TransactionID != "" {
		t.Error("declined charge must not carry a transaction id")
	}
}

func TestSimulatedChargeHonorsContext(t *testing.T) {
	p := NewSimulatedProcessor(time.Minute, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Charge(ctx, validCardRequest(), 100, "USD"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatedChargeRejectsNegativeAmount(t *testing.T) {
	p := NewSimulatedProcessor(0, 0)
	if _, err := p.Charge(context.Background(), validCardRequest(), -1, "USD"); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
