package models

// MenuItem is a sellable product sourced from the published sheet. The menu
// is transient: it is rebuilt from scratch on every sync and never persisted.
type MenuItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Active   bool    `json:"active"`
}
