// Package export serializes invoices into report files: a spreadsheet-ready
// CSV and a parquet file for analytics hand-off.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farzadkfc/cafetill/internal/models"
)

// reportHeaders is the fixed Persian header row: receipt number, date, time,
// table, item name, category, quantity, unit price, line total, subtotal,
// discount, vat, grand total.
var reportHeaders = []string{
	"شماره فیش", "تاریخ", "زمان", "میز",
	"نام آیتم", "دسته", "تعداد", "قیمت واحد", "جمع آیتم",
	"جمع کل", "تخفیف", "مالیات", "مبلغ نهایی",
}

// InvoicesCSV renders one row per invoice line item, BOM-prefixed with CRLF
// line endings so spreadsheet tools open it as UTF-8. The whole report is
// built in memory before being emitted; this is a report dump, not a
// streaming writer.
func InvoicesCSV(invoices []models.Invoice) string {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(reportHeaders, ","))

	for _, inv := range invoices {
		when := time.UnixMilli(inv.Timestamp)
		for _, item := range inv.Items {
			fields := []string{
				quote(inv.ID), // quoted so spreadsheets keep it as text
				inv.PersianDate,
				when.Format("15:04:05"),
				inv.TableNumber,
				quote(item.Name),
				quote(item.Category),
				strconv.Itoa(item.Quantity),
				amount(item.Price),
				amount(item.Price * float64(item.Quantity)),
				amount(inv.Subtotal),
				amount(inv.Discount),
				fmt.Sprintf("%.2f", inv.VAT),
				fmt.Sprintf("%.2f", inv.Total),
			}
			b.WriteString("\r\n")
			b.WriteString(strings.Join(fields, ","))
		}
	}
	return b.String()
}

// quote wraps a text field in double quotes, doubling any embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func amount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
