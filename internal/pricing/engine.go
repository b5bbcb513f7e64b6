package pricing

import "math"

// Rates holds the tunable pricing parameters. Values come from config so the
// engine itself stays free of environment lookups.
type Rates struct {
	TaxRate             float64 // local VAT, e.g. 0.19
	ChildDiscountFactor float64 // weight of a child seat in the browse estimate, e.g. 0.7
}

// LineItem is a flat-priced add-on charge (insurance, car rental, one excursion).
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Quote is the full price breakdown for a draft booking. It is a derived
// value: callers recompute it from current state instead of storing it.
type Quote struct {
	Subtotal    float64    `json:"subtotal"`
	Items       []LineItem `json:"items,omitempty"` // the extras charged into ExtrasTotal
	ExtrasTotal float64    `json:"extras_total"`
	Discount    float64    `json:"discount"`
	Taxable     float64    `json:"taxable"`
	Taxes       float64    `json:"taxes"`
	Total       float64    `json:"total"`
}

// Input describes everything the billed quote depends on.
type Input struct {
	PricePerAdult float64
	Adults        int
	Children      int
	Extras        []LineItem
	Discount      float64 // coupon/promotional discount; no input path yet, kept for forward compatibility
}

// Estimate returns the quick browse-time total shown next to a package before
// the wizard reaches the payment step. It weighs children at the configured
// discount factor. This is deliberately a different formula from Price: the
// estimate bills children at a discount, the final quote bills adults only.
// Both are kept as named, separately tested functions.
func Estimate(pricePerAdult float64, adults, children int, r Rates) float64 {
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}
	weight := float64(adults) + float64(children)*r.ChildDiscountFactor
	return Round(pricePerAdult * weight)
}

// Price computes the billed quote for the payment step.
//
//	subtotal = pricePerAdult × adults
//	taxable  = subtotal + extras − discount
//	taxes    = round(taxable × taxRate)
//	total    = taxable + taxes
//
// All amounts are rounded to cents; the quote is never negative.
func Price(in Input, r Rates) Quote {
	adults := in.Adults
	if adults < 0 {
		adults = 0
	}

	subtotal := Round(in.PricePerAdult * float64(adults))

	var extras float64
	var items []LineItem
	for _, item := range in.Extras {
		if item.Price > 0 {
			extras += item.Price
			items = append(items, item)
		}
	}
	extras = Round(extras)

	discount := in.Discount
	if discount < 0 {
		discount = 0
	}

	taxable := Round(subtotal + extras - discount)
	if taxable < 0 {
		taxable = 0
	}

	taxes := Round(taxable * r.TaxRate)

	return Quote{
		Subtotal:    subtotal,
		Items:       items,
		ExtrasTotal: extras,
		Discount:    Round(discount),
		Taxable:     taxable,
		Taxes:       taxes,
		Total:       Round(taxable + taxes),
	}
}

// Round rounds a monetary amount to cents.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}
