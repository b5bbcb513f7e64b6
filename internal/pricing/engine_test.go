package pricing

import (
	"math"
	"testing"
)

var testRates = Rates{TaxRate: 0.19, ChildDiscountFactor: 0.7}

func TestEstimateWeighsChildren(t *testing.T) {
	// 2 adults + 1 child at 1500/adult -> 1500 × (2 + 0.7) = 4050
	got := Estimate(1500, 2, 1, testRates)
	if got != 4050 {
		t.Fatalf("Estimate(1500, 2, 1) = %v, want 4050", got)
	}
}

func TestEstimateNegativeCountsClamped(t *testing.T) {
	if got := Estimate(1500, -1, -5, testRates); got != 0 {
		t.Fatalf("Estimate with negative counts = %v, want 0", got)
	}
}

func TestPriceBillsAdultsOnly(t *testing.T) {
	// Same party as the estimate test: the billed subtotal ignores children.
	q := Price(Input{PricePerAdult: 1500, Adults: 2, Children: 1}, testRates)

	if q.Subtotal != 3000 {
		t.Errorf("Subtotal = %v, want 3000", q.Subtotal)
	}
	if q.Taxes != 570 {
		t.Errorf("Taxes = %v, want 570", q.Taxes)
	}
	if q.Total != 3570 {
		t.Errorf("Total = %v, want 3570", q.Total)
	}
}

func TestPriceWithExtrasAndDiscount(t *testing.T) {
	q := Price(Input{
		PricePerAdult: 1000,
		Adults:        1,
		Extras: []LineItem{
			{Name: "Travel insurance", Price: 50},
			{Name: "Car rental", Price: 120},
			{Name: "City tour", Price: 30},
		},
		Discount: 100,
	}, testRates)

	if q.ExtrasTotal != 200 {
		t.Errorf("ExtrasTotal = %v, want 200", q.ExtrasTotal)
	}
	if q.Taxable != 1100 {
		t.Errorf("Taxable = %v, want 1100", q.Taxable)
	}
	if q.Taxes != 209 {
		t.Errorf("Taxes = %v, want 209", q.Taxes)
	}
	if q.Total != 1309 {
		t.Errorf("Total = %v, want 1309", q.Total)
	}
}

func TestPriceInvariants(t *testing.T) {
	cases := []Input{
		{},
		{PricePerAdult: 0.01, Adults: 1},
		{PricePerAdult: 999.99, Adults: 10, Children: 10},
		{PricePerAdult: 100, Adults: 2, Discount: 500}, // discount larger than taxable
		{PricePerAdult: 33.33, Adults: 3, Extras: []LineItem{{Name: "x", Price: 0.01}}},
		{PricePerAdult: 1500, Adults: -2}, // invalid upstream, must still not go negative
	}

	for _, in := range cases {
		q := Price(in, testRates)

		if q.Taxable < 0 || q.Total < 0 {
			t.Errorf("Price(%+v): negative amounts in %+v", in, q)
		}
		if q.Total < q.Taxable {
			t.Errorf("Price(%+v): total %v < taxable %v", in, q.Total, q.Taxable)
		}
		if want := Round(q.Taxable * testRates.TaxRate); math.Abs(q.Taxes-want) > 0.005 {
			t.Errorf("Price(%+v): taxes %v, want %v", in, q.Taxes, want)
		}
		if got := Round(q.Taxable + q.Taxes); q.Total != got {
			t.Errorf("Price(%+v): total %v != taxable+taxes %v", in, q.Total, got)
		}
	}
}

func TestPriceNegativeExtrasIgnored(t *testing.T) {
	q := Price(Input{
		PricePerAdult: 100,
		Adults:        1,
		Extras:        []LineItem{{Name: "bogus", Price: -40}},
	}, testRates)
	if q.ExtrasTotal != 0 {
		t.Fatalf("negative extra counted: ExtrasTotal = %v", q.ExtrasTotal)
	}
}

func TestRound(t *testing.T) {
	cases := map[float64]float64{
		0:        0,
		1.005:    1.0, // float64 representation of 1.005 is just below the midpoint
		1.015:    1.02,
		569.9999: 570,
		-1.234:   -1.23,
	}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %v, want %v", in, got, want)
		}
	}
}
