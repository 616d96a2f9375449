package factories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuCoversAllCategories(t *testing.T) {
	menu := (&MenuFactory{}).CreateMenu()
	require.NotEmpty(t, menu)

	categories := map[string]bool{}
	ids := map[string]bool{}
	for _, item := range menu {
		categories[item.Category] = true
		assert.True(t, item.Active)
		assert.Greater(t, item.Price, 0.0)
		assert.False(t, ids[item.ItemID], "item ids must be unique")
		ids[item.ItemID] = true
	}
	assert.Len(t, categories, len(demoMenu))
}

func TestCreateInvoicesTotalsConsistent(t *testing.T) {
	menu := (&MenuFactory{}).CreateMenu()
	invoices := (&InvoiceFactory{}).CreateInvoices(menu, 20, 7, 9)
	require.Len(t, invoices, 20)

	for _, inv := range invoices {
		require.NotEmpty(t, inv.Items)
		assert.NotEmpty(t, inv.ID)
		assert.NotEmpty(t, inv.PersianDate)

		var subtotal float64
		for _, line := range inv.Items {
			subtotal += line.Price * float64(line.Quantity)
		}
		assert.InDelta(t, subtotal, inv.Subtotal, 0.001)
		assert.InDelta(t, inv.Subtotal-inv.Discount+inv.VAT, inv.Total, 0.001)
	}
}
