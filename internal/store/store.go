// Package store persists the till's settings record and invoices in a local
// SQLite file: two keyed collections (settings under a constant id, invoices
// by invoice id) plus a schema version row for future migration.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/farzadkfc/cafetill/internal/models"
)

// ErrBadSnapshot means a restore payload is not valid structured data.
var ErrBadSnapshot = errors.New("store: snapshot is not valid json")

const schemaVersion = 1

type Store struct {
	db       *sql.DB
	initOnce sync.Once
	initErr  error
}

// Open connects to the SQLite file at path, creating it if absent. Schema
// creation is deferred to the first operation (or an explicit Init).
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}
	// sqlite has a single writer; one connection keeps every operation
	// serialized and makes racing first calls safe
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Init creates the schema and seeds the default settings record. It is
// idempotent and safe to call concurrently; every other operation routes
// through it, so calling it explicitly is optional.
func (s *Store) Init(ctx context.Context) error {
	return s.ensureInit(ctx)
}

func (s *Store) ensureInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.migrate(ctx)
	})
	return s.initErr
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_info (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id             INTEGER PRIMARY KEY,
			cafe_name      TEXT NOT NULL,
			cafe_phone     TEXT NOT NULL,
			sheet_url      TEXT NOT NULL,
			sync_interval  INTEGER NOT NULL,
			currency       TEXT NOT NULL,
			receipt_header TEXT NOT NULL,
			receipt_footer TEXT NOT NULL,
			vat_percent    REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id           TEXT PRIMARY KEY,
			ts           INTEGER NOT NULL,
			persian_date TEXT NOT NULL,
			items        TEXT NOT NULL,
			subtotal     REAL NOT NULL,
			discount     REAL NOT NULL,
			vat          REAL NOT NULL,
			total        REAL NOT NULL,
			table_number TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_ts ON invoices (ts DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}

	var versions int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_info`).Scan(&versions); err != nil {
		return fmt.Errorf("error reading schema version: %w", err)
	}
	if versions == 0 {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("error stamping schema version: %w", err)
		}
	}

	// seed defaults on first-ever run only; INSERT OR IGNORE keeps repeat
	// initialization a no-op against existing data
	def := models.DefaultSettings()
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO settings
			(id, cafe_name, cafe_phone, sheet_url, sync_interval, currency, receipt_header, receipt_footer, vat_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		def.ID, def.CafeName, def.CafePhone, def.SheetURL, def.SyncInterval,
		def.Currency, def.ReceiptHeader, def.ReceiptFooter, def.VATPercent,
	); err != nil {
		return fmt.Errorf("error seeding default settings: %w", err)
	}
	return nil
}

// GetSettings returns the current settings record, or the defaults if the
// record is somehow absent.
func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	if err := s.ensureInit(ctx); err != nil {
		return models.Settings{}, err
	}

	var st models.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT id, cafe_name, cafe_phone, sheet_url, sync_interval, currency, receipt_header, receipt_footer, vat_percent
		FROM settings WHERE id = ?`, models.SettingsID,
	).Scan(&st.ID, &st.CafeName, &st.CafePhone, &st.SheetURL, &st.SyncInterval,
		&st.Currency, &st.ReceiptHeader, &st.ReceiptFooter, &st.VATPercent)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("error reading settings: %w", err)
	}
	return st, nil
}

// SaveSettings replaces the singleton record, preserving its fixed identity.
func (s *Store) SaveSettings(ctx context.Context, st models.Settings) error {
	if err := s.ensureInit(ctx); err != nil {
		return err
	}
	st.ID = models.SettingsID
	return s.putSettings(ctx, s.db, st)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) putSettings(ctx context.Context, db execer, st models.Settings) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings
			(id, cafe_name, cafe_phone, sheet_url, sync_interval, currency, receipt_header, receipt_footer, vat_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.CafeName, st.CafePhone, st.SheetURL, st.SyncInterval,
		st.Currency, st.ReceiptHeader, st.ReceiptFooter, st.VATPercent)
	if err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}

// SaveInvoice inserts or replaces an invoice by id. The caller guarantees the
// computed totals are correct; no validation happens here.
func (s *Store) SaveInvoice(ctx context.Context, inv models.Invoice) error {
	if err := s.ensureInit(ctx); err != nil {
		return err
	}
	return s.putInvoice(ctx, s.db, inv)
}

func (s *Store) putInvoice(ctx context.Context, db execer, inv models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("error encoding invoice items: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT OR REPLACE INTO invoices
			(id, ts, persian_date, items, subtotal, discount, vat, total, table_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Timestamp, inv.PersianDate, string(items),
		inv.Subtotal, inv.Discount, inv.VAT, inv.Total, nullableString(inv.TableNumber))
	if err != nil {
		return fmt.Errorf("error saving invoice %s: %w", inv.ID, err)
	}
	return nil
}

// ListInvoices returns every invoice, newest first by timestamp.
func (s *Store) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, persian_date, items, subtotal, discount, vat, total, table_number
		FROM invoices ORDER BY ts DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var items string
		var table sql.NullString

		if err := rows.Scan(&inv.ID, &inv.Timestamp, &inv.PersianDate, &items,
			&inv.Subtotal, &inv.Discount, &inv.VAT, &inv.Total, &table); err != nil {
			return nil, fmt.Errorf("error scanning invoice row: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &inv.Items); err != nil {
			return nil, fmt.Errorf("error decoding items for invoice %s: %w", inv.ID, err)
		}
		if table.Valid {
			inv.TableNumber = table.String
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// DeleteInvoice removes the record if present; deleting an unknown id is not
// an error.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.ensureInit(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("error deleting invoice %s: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) execTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx failed: %v, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
