package models

// Settings is the single persisted configuration record for the till.
// There is exactly one row, always stored under SettingsID.
type Settings struct {
	ID            int64   `json:"id"`
	CafeName      string  `json:"cafeName"`
	CafePhone     string  `json:"cafePhone"`
	SheetURL      string  `json:"googleSheetUrl"`
	SyncInterval  int     `json:"syncInterval"` // seconds between menu re-fetches
	Currency      string  `json:"currency"`
	ReceiptHeader string  `json:"receiptHeader"`
	ReceiptFooter string  `json:"receiptFooter"`
	VATPercent    float64 `json:"vatPercent"`
}

const SettingsID = 1

func DefaultSettings() Settings {
	return Settings{
		ID:            SettingsID,
		CafeName:      "کافه شما",
		CafePhone:     "021-12345678",
		SheetURL:      "",
		SyncInterval:  30,
		Currency:      "تومان",
		ReceiptHeader: "به فیش‌کافه خوش آمدید",
		ReceiptFooter: "متشکریم از انتخاب شما",
		VATPercent:    9,
	}
}
