package models

// OrderItem is one line of an in-progress order: a menu item snapshot plus a
// quantity. Discount is a per-line percentage that is carried through
// persistence but not consulted by the total computation; only the
// invoice-level flat discount is.
type OrderItem struct {
	MenuItem
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount"`
}
