package models

import "time"

// Invoice is a finalized sales record. Items are frozen at save time and the
// totals are whatever the pricing computation produced then; they are never
// recalculated from stored fields on read.
type Invoice struct {
	ID          string      `json:"id"`
	Timestamp   int64       `json:"timestamp"` // epoch millis, creation time, kept on edit
	PersianDate string      `json:"persianDate"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Discount    float64     `json:"discount"` // flat invoice-level amount
	VAT         float64     `json:"vat"`
	Total       float64     `json:"total"`
	TableNumber string      `json:"tableNumber,omitempty"`
}

// NewInvoiceID derives a human-readable id from local wall-clock time,
// YYMMDD-HHMMSS. Two saves within the same second collide and the later one
// upserts over the earlier; acceptable for a single till.
func NewInvoiceID(t time.Time) string {
	return t.Format("060102-150405")
}
