// Package app ties the core together into a till register: it owns the
// settings, the in-memory menu and the order being built, refreshes the menu
// on a timer and finalizes orders into persisted invoices.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/farzadkfc/cafetill/internal/calendar"
	"github.com/farzadkfc/cafetill/internal/models"
	"github.com/farzadkfc/cafetill/internal/pricing"
)

// ErrEmptyOrder is returned when saving an order with no lines.
var ErrEmptyOrder = errors.New("app: order is empty")

const defaultSyncInterval = 30 * time.Second

type MenuFetcher interface {
	FetchMenu(ctx context.Context, url string) ([]models.MenuItem, error)
}

type InvoiceStore interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	SaveInvoice(ctx context.Context, inv models.Invoice) error
}

// editTarget remembers which invoice an edit session overwrites; id and
// creation timestamp are kept, everything else is recomputed at save.
type editTarget struct {
	id string
	ts int64
}

// Register is the single owner of settings, menu and order state. All state
// is replaced wholesale under one mutex; nothing is mutated concurrently.
type Register struct {
	store   InvoiceStore
	fetcher MenuFetcher

	mu          sync.Mutex
	settings    models.Settings
	menu        []models.MenuItem
	order       []models.OrderItem
	discount    float64
	tableNumber string
	editing     *editTarget

	resync chan struct{} // wakes the run loop to rebuild its timer
	now    func() time.Time
}

func NewRegister(store InvoiceStore, fetcher MenuFetcher) *Register {
	return &Register{
		store:   store,
		fetcher: fetcher,
		resync:  make(chan struct{}, 1),
		now:     time.Now,
	}
}

// Start loads the persisted settings and performs the first menu refresh. A
// refresh failure is logged, not fatal: the till starts with an empty menu.
func (r *Register) Start(ctx context.Context) error {
	settings, err := r.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	r.mu.Lock()
	r.settings = settings
	r.mu.Unlock()

	if err := r.RefreshMenu(ctx); err != nil {
		log.Printf("initial menu refresh failed: %v", err)
	}
	return nil
}

// Run starts the register and re-fetches the menu every sync interval until
// ctx is cancelled. A settings update restarts the timer with the new
// interval; the old one is stopped first, so a fetch never races a mid-update
// settings record.
func (r *Register) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	for {
		timer := time.NewTimer(r.syncInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			if err := r.RefreshMenu(ctx); err != nil {
				log.Printf("menu refresh failed: %v", err)
			}
		case <-r.resync:
			timer.Stop()
		}
	}
}

func (r *Register) syncInterval() time.Duration {
	interval := time.Duration(r.Settings().SyncInterval) * time.Second
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return interval
}

// RefreshMenu replaces the in-memory menu from the configured sheet. An
// unset url quietly clears the menu; a failed fetch clears it too, so a
// stale-but-wrong menu is never kept, and returns the error.
func (r *Register) RefreshMenu(ctx context.Context) error {
	url := r.Settings().SheetURL
	if url == "" {
		r.setMenu(nil)
		return nil
	}
	items, err := r.fetcher.FetchMenu(ctx, url)
	if err != nil {
		r.setMenu(nil)
		return err
	}
	r.setMenu(items)
	return nil
}

func (r *Register) setMenu(items []models.MenuItem) {
	r.mu.Lock()
	r.menu = items
	r.mu.Unlock()
}

func (r *Register) Menu() []models.MenuItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	menu := make([]models.MenuItem, len(r.menu))
	copy(menu, r.menu)
	return menu
}

func (r *Register) Settings() models.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// UpdateSettings persists the new record, swaps it in, restarts the sync
// timer and refreshes the menu against the new url.
func (r *Register) UpdateSettings(ctx context.Context, s models.Settings) error {
	if err := r.store.SaveSettings(ctx, s); err != nil {
		return err
	}
	r.mu.Lock()
	r.settings = s
	r.settings.ID = models.SettingsID
	r.mu.Unlock()

	select {
	case r.resync <- struct{}{}:
	default:
	}
	return r.RefreshMenu(ctx)
}

// AddItem appends a menu item to the order. Adding an item already present
// increments its quantity instead of creating a second line, keeping item
// ids unique within the order.
func (r *Register) AddItem(item models.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.order {
		if r.order[i].ItemID == item.ItemID {
			r.order[i].Quantity++
			return
		}
	}
	r.order = append(r.order, models.OrderItem{MenuItem: item, Quantity: 1})
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (r *Register) SetQuantity(itemID string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quantity <= 0 {
		kept := r.order[:0]
		for _, line := range r.order {
			if line.ItemID != itemID {
				kept = append(kept, line)
			}
		}
		r.order = kept
		return
	}
	for i := range r.order {
		if r.order[i].ItemID == itemID {
			r.order[i].Quantity = quantity
			return
		}
	}
}

func (r *Register) SetDiscount(amount float64) {
	r.mu.Lock()
	r.discount = amount
	r.mu.Unlock()
}

func (r *Register) SetTableNumber(table string) {
	r.mu.Lock()
	r.tableNumber = table
	r.mu.Unlock()
}

func (r *Register) Order() []models.OrderItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := make([]models.OrderItem, len(r.order))
	copy(order, r.order)
	return order
}

// Totals recomputes the current order's totals from scratch; nothing is
// cached between calls.
func (r *Register) Totals() pricing.Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pricing.Compute(r.order, r.discount, r.settings.VATPercent)
}

// LoadInvoice starts an edit session: the invoice's lines, discount and
// table fill the order, and a later SaveOrder overwrites it in place.
func (r *Register) LoadInvoice(inv models.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := make([]models.OrderItem, len(inv.Items))
	copy(order, inv.Items)
	r.order = order
	r.discount = inv.Discount
	r.tableNumber = inv.TableNumber
	r.editing = &editTarget{id: inv.ID, ts: inv.Timestamp}
}

// ClearOrder discards the in-progress order and any edit session.
func (r *Register) ClearOrder() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.discount = 0
	r.tableNumber = ""
	r.editing = nil
}

// SaveOrder finalizes the current order into an invoice: totals are
// recomputed from the current lines, discount and VAT rate, the save time is
// stamped as a solar date, and the record is persisted. Editing keeps the
// original id and timestamp; a new order gets a time-derived id. The order
// is cleared on success.
func (r *Register) SaveOrder(ctx context.Context) (models.Invoice, error) {
	r.mu.Lock()
	if len(r.order) == 0 {
		r.mu.Unlock()
		return models.Invoice{}, ErrEmptyOrder
	}
	items := make([]models.OrderItem, len(r.order))
	copy(items, r.order)
	discount := r.discount
	table := r.tableNumber
	editing := r.editing
	vatPercent := r.settings.VATPercent
	r.mu.Unlock()

	now := r.now()
	ts := now.UnixMilli()
	id := models.NewInvoiceID(now)
	if editing != nil {
		ts = editing.ts
		id = editing.id
	}

	totals := pricing.Compute(items, discount, vatPercent)
	inv := models.Invoice{
		ID:          id,
		Timestamp:   ts,
		PersianDate: calendar.ToSolarDate(time.UnixMilli(ts)),
		Items:       items,
		Subtotal:    totals.Subtotal,
		Discount:    discount,
		VAT:         totals.VAT,
		Total:       totals.Total,
		TableNumber: table,
	}

	if err := r.store.SaveInvoice(ctx, inv); err != nil {
		return models.Invoice{}, fmt.Errorf("saving invoice %s: %w", inv.ID, err)
	}
	r.ClearOrder()
	return inv, nil
}
