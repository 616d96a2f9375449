package export

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/farzadkfc/cafetill/internal/models"
)

// invoiceRow mirrors the CSV report shape: one flattened row per line item.
type invoiceRow struct {
	InvoiceID   string  `parquet:"name=invoice_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp   int64   `parquet:"name=timestamp, type=INT64"`
	PersianDate string  `parquet:"name=persian_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	TableNumber string  `parquet:"name=table_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemID      string  `parquet:"name=item_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemName    string  `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category    string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity    int32   `parquet:"name=quantity, type=INT32"`
	UnitPrice   float64 `parquet:"name=unit_price, type=DOUBLE"`
	LineTotal   float64 `parquet:"name=line_total, type=DOUBLE"`
	Subtotal    float64 `parquet:"name=subtotal, type=DOUBLE"`
	Discount    float64 `parquet:"name=discount, type=DOUBLE"`
	VAT         float64 `parquet:"name=vat, type=DOUBLE"`
	Total       float64 `parquet:"name=total, type=DOUBLE"`
}

// ParquetWriter writes the flattened invoice report to a local parquet file.
type ParquetWriter struct {
	fw source.ParquetFile
	pw *writer.ParquetWriter
}

func NewParquetWriter(path string) (*ParquetWriter, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(invoiceRow), 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	return &ParquetWriter{fw: fw, pw: pw}, nil
}

// WriteInvoice appends one row per line item of inv.
func (w *ParquetWriter) WriteInvoice(inv models.Invoice) error {
	for _, item := range inv.Items {
		row := invoiceRow{
			InvoiceID:   inv.ID,
			Timestamp:   inv.Timestamp,
			PersianDate: inv.PersianDate,
			TableNumber: inv.TableNumber,
			ItemID:      item.ItemID,
			ItemName:    item.Name,
			Category:    item.Category,
			Quantity:    int32(item.Quantity),
			UnitPrice:   item.Price,
			LineTotal:   item.Price * float64(item.Quantity),
			Subtotal:    inv.Subtotal,
			Discount:    inv.Discount,
			VAT:         inv.VAT,
			Total:       inv.Total,
		}
		if err := w.pw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for invoice %s: %w", inv.ID, err)
		}
	}
	return nil
}

func (w *ParquetWriter) Close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.fw.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return w.fw.Close()
}

// WriteInvoicesParquet is the one-shot form of the writer.
func WriteInvoicesParquet(path string, invoices []models.Invoice) error {
	w, err := NewParquetWriter(path)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if err := w.WriteInvoice(inv); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
