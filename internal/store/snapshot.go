package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/farzadkfc/cafetill/internal/models"
)

// snapshot is the backup file shape: a JSON object with one array per
// collection. Extra fields are ignored so older backups stay importable.
type snapshot struct {
	Settings []models.Settings `json:"settings"`
	Invoices []models.Invoice  `json:"invoices"`
}

// rawSnapshot defers decoding of each collection so a malformed one can be
// skipped without rejecting the whole file.
type rawSnapshot struct {
	Settings json.RawMessage `json:"settings"`
	Invoices json.RawMessage `json:"invoices"`
}

// ExportAll serializes the full settings and invoice collections into a
// stable, round-trippable JSON snapshot.
func (s *Store) ExportAll(ctx context.Context) ([]byte, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, err
	}

	settings, err := s.allSettings(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}

	data, err := json.MarshalIndent(snapshot{Settings: settings, Invoices: invoices}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}
	return data, nil
}

// ImportAll is a destructive restore: each collection present and well-formed
// in the snapshot is cleared and repopulated inside its own transaction, so a
// failed restore rolls back instead of leaving the collection emptied. A
// collection missing or malformed in the snapshot is left untouched.
func (s *Store) ImportAll(ctx context.Context, data []byte) error {
	if err := s.ensureInit(ctx); err != nil {
		return err
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	if len(raw.Settings) > 0 {
		var settings []models.Settings
		// a JSON null decodes to a nil slice and is treated as absent; an
		// explicit empty array still clears the collection
		if err := json.Unmarshal(raw.Settings, &settings); err == nil && settings != nil {
			err := s.execTx(ctx, func(tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
					return err
				}
				for _, st := range settings {
					if err := s.putSettings(ctx, tx, st); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("error restoring settings: %w", err)
			}
		}
	}

	if len(raw.Invoices) > 0 {
		var invoices []models.Invoice
		if err := json.Unmarshal(raw.Invoices, &invoices); err == nil && invoices != nil {
			err := s.execTx(ctx, func(tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, `DELETE FROM invoices`); err != nil {
					return err
				}
				for _, inv := range invoices {
					if err := s.putInvoice(ctx, tx, inv); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("error restoring invoices: %w", err)
			}
		}
	}
	return nil
}

func (s *Store) allSettings(ctx context.Context) ([]models.Settings, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cafe_name, cafe_phone, sheet_url, sync_interval, currency, receipt_header, receipt_footer, vat_percent
		FROM settings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying settings: %w", err)
	}
	defer rows.Close()

	settings := []models.Settings{}
	for rows.Next() {
		var st models.Settings
		if err := rows.Scan(&st.ID, &st.CafeName, &st.CafePhone, &st.SheetURL, &st.SyncInterval,
			&st.Currency, &st.ReceiptHeader, &st.ReceiptFooter, &st.VATPercent); err != nil {
			return nil, fmt.Errorf("error scanning settings row: %w", err)
		}
		settings = append(settings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings rows: %w", err)
	}
	return settings, nil
}
