package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnKind is the direction of a stock movement.
type TxnKind string

// Transaction kinds as persisted in ledger rows.
const (
	KindBuy  TxnKind = "buy"
	KindSell TxnKind = "sell"
)

// Valid reports whether k is a known transaction kind.
func (k TxnKind) Valid() bool {
	return k == KindBuy || k == KindSell
}

// RestockAlert grades how far a product's quantity has fallen below its
// restock thresholds. BelowBoth implies BelowHigh.
type RestockAlert int

const (
	NoAlert RestockAlert = iota
	BelowHigh
	BelowBoth
)

func (a RestockAlert) String() string {
	switch a {
	case BelowHigh:
		return "below threshold 1"
	case BelowBoth:
		return "below thresholds 1 and 2"
	default:
		return "no alert"
	}
}

// Product is one row of the active or inactive inventory set.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	ThresholdHigh int       `json:"threshold_high"`
	ThresholdLow  int       `json:"threshold_low"`
	LastUpdated   time.Time `json:"last_updated"`
}

// LedgerEntry is one row of a product's transaction ledger. Exactly one of
// DeltaAdd/DeltaRemove is populated, matching Kind, and
// EndQty = StartQty + DeltaAdd - DeltaRemove.
type LedgerEntry struct {
	TxnID       string          `json:"txn_id"`
	Kind        TxnKind         `json:"kind"`
	StartQty    int             `json:"start_qty"`
	DeltaAdd    int             `json:"delta_add"`
	DeltaRemove int             `json:"delta_remove"`
	EndQty      int             `json:"end_qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Timestamp   time.Time       `json:"timestamp"`
}
