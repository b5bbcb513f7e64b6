package payments

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDeclined is returned when the simulated gateway declines a charge.
var ErrDeclined = fmt.Errorf("payment declined by gateway")

// Processor charges a validated payment request and synthesizes a Result.
type Processor interface {
	Charge(ctx context.Context, req Request, amount float64, currency string) (*Result, error)
}

// SimulatedProcessor stands in for the real gateway. It sleeps for a
// configurable latency, declines a configurable fraction of charges, and
// otherwise approves with generated transaction and authorization codes.
type SimulatedProcessor struct {
	Latency     time.Duration
	DeclineRate float64 // 0 disables the decline branch

	// test seams
	now     func() time.Time
	decider func() float64
}

// NewSimulatedProcessor creates a processor with the given latency and
// decline rate.
func NewSimulatedProcessor(latency time.Duration, declineRate float64) *SimulatedProcessor {
	return &SimulatedProcessor{
		Latency:     latency,
		DeclineRate: declineRate,
		now:         time.Now,
		decider:     cryptoFloat,
	}
}

// Charge simulates processing. Validation must have passed already; Charge
// only models the gateway interaction.
func (p *SimulatedProcessor) Charge(ctx context.Context, req Request, amount float64, currency string) (*Result, error) {
	if amount < 0 {
		return nil, fmt.Errorf("invalid charge amount: %v", amount)
	}

	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.DeclineRate > 0 && p.decider() < p.DeclineRate {
		return &Result{
			Method:      req.Method,
			Status:      StatusDeclined,
			Amount:      amount,
			Currency:    currency,
			FiscalInfo:  req.FiscalInfo,
			ProcessedAt: p.now(),
		}, ErrDeclined
	}

	return &Result{
		Method:            req.Method,
		Status:            StatusApproved,
		TransactionID:     generateTransactionID(p.now()),
		AuthorizationCode: generateAuthorizationCode(),
		Amount:            amount,
		Currency:          currency,
		FiscalInfo:        req.FiscalInfo,
		ProcessedAt:       p.now(),
	}, nil
}

// generateTransactionID produces a mock transaction ID.
func generateTransactionID(now time.Time) string {
	shortUUID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", now.Unix(), strings.ToUpper(shortUUID))
}

// generateAuthorizationCode produces a 6-digit mock authorization code.
func generateAuthorizationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// cryptoFloat returns a uniform value in [0,1) from crypto/rand.
func cryptoFloat() float64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<53))
	if err != nil {
		return 0
	}
	return float64(n.Int64()) / (1 << 53)
}
