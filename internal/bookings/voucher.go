package bookings

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// GenerateVoucher renders the booking confirmation voucher as a PDF: trip
// summary, traveler roster, charged extras and the price breakdown.
func GenerateVoucher(b *Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Booking Number : %s", b.BookingNumber),
		fmt.Sprintf("Status         : %s", b.Status),
		fmt.Sprintf("Package        : %s", orDash(b.PackageName)),
		fmt.Sprintf("Country        : %s", orDash(b.Country)),
		fmt.Sprintf("Duration       : %s", orDash(b.DurationLabel)),
		fmt.Sprintf("Travel Dates   : %s", travelDates(b)),
		fmt.Sprintf("Party          : %d traveler(s) (%d adult(s), %d child(ren))", b.PartyTotal(), b.Adults, b.Children),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Travelers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, t := range b.Travelers {
		role := "Adult"
		if t.IsChild {
			role = "Child"
		}
		name := strings.TrimSpace(t.FirstName + " " + t.LastName)
		line := fmt.Sprintf("%d) %s (%s)", i+1, orDash(name), role)
		if t.DocumentNumber != "" {
			line += " - Doc " + t.DocumentNumber
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(b.Extras) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Extras:")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, e := range b.Extras {
			pdf.Cell(0, 6, fmt.Sprintf("- %s: %s", e.Name, formatAmount(e.Price)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Price Breakdown:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	breakdown := []string{
		fmt.Sprintf("Package (%d adult(s) x %s): %s", b.Adults, formatAmount(b.PricePerAdult), formatAmount(b.Subtotal)),
		fmt.Sprintf("Extras: %s", formatAmount(b.ExtrasTotal)),
		fmt.Sprintf("Taxes: %s", formatAmount(b.Taxes)),
	}
	for _, line := range breakdown {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, "Total: "+formatAmount(b.TotalPrice))
	pdf.Ln(11)

	if len(b.Payments) > 0 {
		p := b.Payments[0]
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Paid via %s, transaction %s", p.PaymentMethod, orDash(p.TransactionID)))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this voucher together with a valid ID document for every traveler at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render voucher: %w", err)
	}
	return buf.Bytes(), nil
}

// VoucherFilename builds the download filename for a booking voucher.
func VoucherFilename(b *Booking) string {
	return fmt.Sprintf("VOUCHER_%s.pdf", strings.ReplaceAll(b.BookingNumber, "-", "_"))
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func travelDates(b *Booking) string {
	if b.DepartureDate == nil {
		return "-"
	}
	out := b.DepartureDate.Format("2006-01-02")
	if b.ReturnDate != nil {
		out += " to " + b.ReturnDate.Format("2006-01-02")
	}
	return out
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
