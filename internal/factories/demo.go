// Package factories generates plausible demo data for a freshly installed
// till: a café menu and a backlog of invoices spread over recent days.
package factories

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/farzadkfc/cafetill/internal/calendar"
	"github.com/farzadkfc/cafetill/internal/models"
	"github.com/farzadkfc/cafetill/internal/pricing"
)

var fake = faker.New()

// demoMenu is a typical Iranian café card, prices in toman.
var demoMenu = map[string][]struct {
	name  string
	price float64
}{
	"نوشیدنی گرم": {
		{"اسپرسو", 45000},
		{"کاپوچینو", 65000},
		{"لاته", 70000},
		{"چای", 30000},
		{"هات چاکلت", 75000},
	},
	"نوشیدنی سرد": {
		{"آیس لاته", 80000},
		{"لیموناد", 60000},
		{"شیک شکلات", 95000},
	},
	"کیک و دسر": {
		{"چیزکیک", 110000},
		{"کیک شکلاتی", 90000},
		{"تیرامیسو", 120000},
	},
}

type MenuFactory struct{}

func (mf *MenuFactory) CreateMenu() []models.MenuItem {
	var items []models.MenuItem
	for category, entries := range demoMenu {
		for _, entry := range entries {
			items = append(items, models.MenuItem{
				ItemID:   cuid.New(),
				Name:     entry.name,
				Price:    entry.price,
				Category: category,
				Active:   true,
			})
		}
	}
	return items
}

type InvoiceFactory struct{}

// CreateInvoices spreads count invoices over the past days, one save time
// per invoice, so lists and reports have a realistic date range to show.
func (f *InvoiceFactory) CreateInvoices(menu []models.MenuItem, count, days int, vatPercent float64) []models.Invoice {
	if days < 1 {
		days = 1
	}
	invoices := make([]models.Invoice, 0, count)
	for i := 0; i < count; i++ {
		age := time.Duration(rand.Intn(days)) * 24 * time.Hour
		when := time.Now().Add(-age).Add(-time.Duration(rand.Intn(12*3600)) * time.Second)
		invoices = append(invoices, f.createInvoice(menu, when, vatPercent))
	}
	return invoices
}

func (f *InvoiceFactory) createInvoice(menu []models.MenuItem, when time.Time, vatPercent float64) models.Invoice {
	lineCount := rand.Intn(3) + 1
	items := make([]models.OrderItem, 0, lineCount)
	picked := map[string]bool{}
	for len(items) < lineCount {
		item := menu[rand.Intn(len(menu))]
		if picked[item.ItemID] {
			continue
		}
		picked[item.ItemID] = true
		items = append(items, models.OrderItem{
			MenuItem: item,
			Quantity: rand.Intn(3) + 1,
		})
	}

	var discount float64
	if fake.Bool() {
		discount = float64(rand.Intn(5)) * 10000
	}
	totals := pricing.Compute(items, discount, vatPercent)

	inv := models.Invoice{
		ID:          models.NewInvoiceID(when),
		Timestamp:   when.UnixMilli(),
		PersianDate: calendar.ToSolarDate(when),
		Items:       items,
		Subtotal:    totals.Subtotal,
		Discount:    discount,
		VAT:         totals.VAT,
		Total:       totals.Total,
	}
	if fake.Bool() {
		inv.TableNumber = fake.RandomStringElement([]string{"1", "2", "3", "4", "5", "6"})
	}
	return inv
}
