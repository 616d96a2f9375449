package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farzadkfc/cafetill/internal/models"
)

func testInvoice() models.Invoice {
	ts := time.Date(2025, 8, 28, 14, 30, 5, 0, time.Local)
	return models.Invoice{
		ID:          "250828-143005",
		Timestamp:   ts.UnixMilli(),
		PersianDate: "1404/06/06",
		Items: []models.OrderItem{
			{
				MenuItem: models.MenuItem{ItemID: "tea", Name: `Tea "Special"`, Price: 20000, Category: "Hot Drinks", Active: true},
				Quantity: 2,
			},
			{
				MenuItem: models.MenuItem{ItemID: "cake", Name: "Cake", Price: 55000, Category: "Bakery", Active: true},
				Quantity: 1,
			},
		},
		Subtotal:    95000,
		Discount:    5000,
		VAT:         8100,
		Total:       98100,
		TableNumber: "3",
	}
}

func TestInvoicesCSV(t *testing.T) {
	out := InvoicesCSV([]models.Invoice{testInvoice()})

	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "report must start with a BOM")

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\r\n")
	require.Len(t, lines, 3) // header plus one row per line item
	assert.Contains(t, lines[0], "شماره فیش")
	assert.Contains(t, lines[0], "مبلغ نهایی")

	// embedded quotes are escaped by doubling inside a quoted cell
	assert.Contains(t, lines[1], `"Tea ""Special"""`)
	assert.Contains(t, lines[1], `"250828-143005"`)
	assert.Contains(t, lines[1], "1404/06/06")
	assert.Contains(t, lines[1], "14:30:05")

	// vat and total are formatted to two decimals, line totals as given
	assert.True(t, strings.HasSuffix(lines[1], "8100.00,98100.00"), "got %q", lines[1])
	assert.Contains(t, lines[1], ",40000,")
	assert.Contains(t, lines[2], ",55000,")
}

func TestInvoicesCSVEmpty(t *testing.T) {
	out := InvoicesCSV(nil)
	assert.Equal(t, "\uFEFF"+strings.Join(reportHeaders, ","), out)
}

func TestInvoicesCSVNoTrailingNewline(t *testing.T) {
	out := InvoicesCSV([]models.Invoice{testInvoice()})
	assert.False(t, strings.HasSuffix(out, "\r\n"))
}
