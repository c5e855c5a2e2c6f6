// Package service implements the product catalog: creation, quantity
// adjustment, soft removal and recovery, restock alerts, and transaction
// history. Operations validate input, surface typed failures, and never
// prompt or print. Everything runs synchronously against the flat-file
// stores; there is no locking, so the catalog expects a single caller.
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techmart/internal/clock"
	"techmart/internal/models"
	"techmart/internal/money"
	"techmart/internal/store"
)

// Catalog manages the active and inactive product sets and the per-product
// transaction ledgers behind them.
type Catalog struct {
	active   *store.Store
	inactive *store.Store
	ledgers  *store.LedgerDir
	step     decimal.Decimal
	clock    clock.Clock
	logger   *zap.Logger
}

// NewCatalog wires a catalog over its two record sets and ledger directory.
// step controls monetary precision; pass money.DefaultStep unless configured
// otherwise.
func NewCatalog(active, inactive *store.Store, ledgers *store.LedgerDir, step decimal.Decimal, clk clock.Clock, logger *zap.Logger) *Catalog {
	return &Catalog{
		active:   active,
		inactive: inactive,
		ledgers:  ledgers,
		step:     step,
		clock:    clk,
		logger:   logger,
	}
}

// CreateProduct registers a new product with quantity zero, a fresh id, and
// the current timestamp, then starts its empty ledger. Restock thresholds are
// fixed at creation; threshold 1 must sit strictly above threshold 2.
func (c *Catalog) CreateProduct(name string, thresholdHigh, thresholdLow int) (models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return models.Product{}, ErrEmptyName
	}
	if strings.ContainsAny(name, store.FieldDelimiter+store.RowDelimiter+"\r") {
		return models.Product{}, ErrNameHasDelimiter
	}
	if thresholdHigh <= thresholdLow {
		return models.Product{}, ErrThresholdOrder
	}

	p := models.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Quantity:      0,
		ThresholdHigh: thresholdHigh,
		ThresholdLow:  thresholdLow,
		LastUpdated:   c.clock.Now(),
	}
	if err := c.active.AppendOne(p.Record()); err != nil {
		c.logger.Error("failed to add product", zap.String("product_id", p.ID), zap.Error(err))
		return models.Product{}, fmt.Errorf("failed to add product: %w", err)
	}
	if err := c.ledgers.Create(p.ID); err != nil {
		c.logger.Error("failed to start ledger", zap.String("product_id", p.ID), zap.Error(err))
		return models.Product{}, fmt.Errorf("failed to start ledger for product %s: %w", p.ID, err)
	}

	c.logger.Info("product added",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
	)
	return p, nil
}

// FindActiveIndex returns the position of id in the active set. Lookup is
// strict equality on the id field, never substring matching.
func (c *Catalog) FindActiveIndex(id string) (int, error) {
	rows, err := c.active.ReadAll()
	if err != nil {
		return 0, err
	}
	if i := indexByID(rows, id); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
}

// ActiveProducts returns every product in the active set, in file order.
func (c *Catalog) ActiveProducts() ([]models.Product, error) {
	return readProducts(c.active)
}

// InactiveProducts returns every product in the inactive set, in file order.
func (c *Catalog) InactiveProducts() ([]models.Product, error) {
	return readProducts(c.inactive)
}

// ActiveProduct returns the active product with the given id.
func (c *Catalog) ActiveProduct(id string) (models.Product, error) {
	rows, err := c.active.ReadAll()
	if err != nil {
		return models.Product{}, err
	}
	i := indexByID(rows, id)
	if i < 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	p, err := models.ParseProduct(rows[i])
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return p, nil
}

// AdjustQuantity applies one buy or sell of deltaQty units at unitPrice. A
// sell larger than the current quantity fails with insufficient stock before
// anything is written. On success the active set is rewritten with the new
// quantity and timestamp, then the transaction is appended to the product's
// ledger. The two writes are sequential, not atomic: a crash between them
// leaves an updated quantity with no matching ledger row.
func (c *Catalog) AdjustQuantity(id string, kind models.TxnKind, deltaQty int, unitPrice decimal.Decimal) (models.Product, models.LedgerEntry, error) {
	if !kind.Valid() {
		return models.Product{}, models.LedgerEntry{}, fmt.Errorf("%w %q", ErrUnknownKind, string(kind))
	}
	if deltaQty <= 0 {
		return models.Product{}, models.LedgerEntry{}, ErrNonPositiveQuantity
	}
	if unitPrice.IsNegative() {
		return models.Product{}, models.LedgerEntry{}, ErrNegativeUnitPrice
	}

	rows, err := c.active.ReadAll()
	if err != nil {
		return models.Product{}, models.LedgerEntry{}, err
	}
	idx := indexByID(rows, id)
	if idx < 0 {
		return models.Product{}, models.LedgerEntry{}, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	p, err := models.ParseProduct(rows[idx])
	if err != nil {
		return models.Product{}, models.LedgerEntry{}, fmt.Errorf("failed to decode product %s: %w", id, err)
	}

	entry := models.LedgerEntry{
		TxnID:     uuid.New().String(),
		Kind:      kind,
		StartQty:  p.Quantity,
		UnitPrice: unitPrice,
		Timestamp: c.clock.Now(),
	}
	switch kind {
	case models.KindBuy:
		entry.DeltaAdd = deltaQty
		p.Quantity += deltaQty
	case models.KindSell:
		if deltaQty > p.Quantity {
			return models.Product{}, models.LedgerEntry{}, &InsufficientStockError{
				ProductID: id,
				Available: p.Quantity,
				Requested: deltaQty,
			}
		}
		entry.DeltaRemove = deltaQty
		p.Quantity -= deltaQty
	}
	entry.EndQty = p.Quantity
	entry.TotalValue = money.Product(decimal.NewFromInt(int64(deltaQty)), unitPrice, c.step)
	p.LastUpdated = entry.Timestamp

	rows[idx] = p.Record()
	if err := c.active.WriteAll(rows); err != nil {
		c.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return models.Product{}, models.LedgerEntry{}, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if err := c.ledgers.Append(id, entry.Record()); err != nil {
		c.logger.Error("failed to record transaction", zap.String("product_id", id), zap.String("txn_id", entry.TxnID), zap.Error(err))
		return models.Product{}, models.LedgerEntry{}, fmt.Errorf("failed to record transaction for product %s: %w", id, err)
	}

	c.logger.Info("quantity adjusted",
		zap.String("product_id", id),
		zap.String("txn_id", entry.TxnID),
		zap.String("kind", string(kind)),
		zap.Int("start_qty", entry.StartQty),
		zap.Int("end_qty", entry.EndQty),
		zap.String("total_value", entry.TotalValue.String()),
	)
	return p, entry, nil
}

// RemoveProduct moves an active product to the inactive set, stamping its
// last-updated field. The ledger stays in place as audit history.
func (c *Catalog) RemoveProduct(id string) (models.Product, error) {
	return c.transfer(id, c.active, c.inactive, "product removed")
}

// RecoverProduct moves an inactive product back to the active set, stamping
// its last-updated field.
func (c *Catalog) RecoverProduct(id string) (models.Product, error) {
	return c.transfer(id, c.inactive, c.active, "product recovered")
}

func (c *Catalog) transfer(id string, from, to *store.Store, event string) (models.Product, error) {
	rows, err := from.ReadAll()
	if err != nil {
		return models.Product{}, err
	}
	if indexByID(rows, id) < 0 {
		return models.Product{}, fmt.Errorf("product %s not in %s set: %w", id, from.Name(), ErrProductNotFound)
	}

	stamp := c.clock.Now().Format(models.TimestampLayout)
	moved, err := from.PurgeAndTransfer(store.MatchSubstring(id), to, stamp)
	if err != nil {
		c.logger.Error("failed to move product", zap.String("product_id", id), zap.Error(err))
		return models.Product{}, fmt.Errorf("failed to move product %s: %w", id, err)
	}
	p, err := models.ParseProduct(moved)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to decode product %s: %w", id, err)
	}

	c.logger.Info(event, zap.String("product_id", id))
	return p, nil
}

// CheckRestockAlert reports how far an active product's quantity has fallen
// relative to its two thresholds. Comparisons are strict: sitting exactly at
// a threshold raises nothing.
func (c *Catalog) CheckRestockAlert(id string) (models.RestockAlert, error) {
	p, err := c.ActiveProduct(id)
	if err != nil {
		return models.NoAlert, err
	}
	return alertFor(p), nil
}

// ProductAlert pairs a product with its restock alert level.
type ProductAlert struct {
	Product models.Product
	Alert   models.RestockAlert
}

// RestockReport returns every active product sitting below a threshold, in
// file order.
func (c *Catalog) RestockReport() ([]ProductAlert, error) {
	products, err := c.ActiveProducts()
	if err != nil {
		return nil, err
	}
	var report []ProductAlert
	for _, p := range products {
		if alert := alertFor(p); alert != models.NoAlert {
			report = append(report, ProductAlert{Product: p, Alert: alert})
		}
	}
	return report, nil
}

// History returns the product's ledger entries in insertion order. The id
// must be in the active set.
func (c *Catalog) History(id string) ([]models.LedgerEntry, error) {
	if _, err := c.FindActiveIndex(id); err != nil {
		return nil, err
	}
	rows, err := c.ledgers.ReadAll(id)
	if err != nil {
		return nil, err
	}
	entries := make([]models.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := models.ParseLedgerEntry(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ledger for product %s: %w", id, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func alertFor(p models.Product) models.RestockAlert {
	switch {
	case p.Quantity < p.ThresholdLow:
		return models.BelowBoth
	case p.Quantity < p.ThresholdHigh:
		return models.BelowHigh
	default:
		return models.NoAlert
	}
}

func indexByID(rows [][]string, id string) int {
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			return i
		}
	}
	return -1
}

func readProducts(s *store.Store) ([]models.Product, error) {
	rows, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p, err := models.ParseProduct(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s set: %w", s.Name(), err)
		}
		products = append(products, p)
	}
	return products, nil
}
