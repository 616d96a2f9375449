// Package pricing computes invoice totals from order lines. The computation
// is pure and is re-run whenever lines, the discount or the VAT rate change;
// totals are never cached or re-derived from stored invoices.
package pricing

import "github.com/farzadkfc/cafetill/internal/models"

type Totals struct {
	Subtotal float64
	VAT      float64
	Total    float64
}

// Compute returns subtotal, VAT and total for the given lines, a flat
// invoice-level discount amount and a VAT percentage. The VAT base
// (subtotal - discount) is not clamped at zero: a discount larger than the
// subtotal yields a negative VAT contribution.
func Compute(items []models.OrderItem, discount, vatPercent float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	vat := (subtotal - discount) * vatPercent / 100
	return Totals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal - discount + vat,
	}
}
