package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the fixed-width form timestamps take in persisted rows.
// It contains neither the field nor the record delimiter.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Field counts of the persisted row shapes.
const (
	ProductFields = 6
	LedgerFields  = 9
)

// ErrMalformedRecord is returned when a persisted row cannot be decoded.
var ErrMalformedRecord = errors.New("malformed record")

// Record encodes the product as one inventory row:
// [id, name, quantity, thresholdHigh, thresholdLow, lastUpdated].
func (p Product) Record() []string {
	return []string{
		p.ID,
		p.Name,
		strconv.Itoa(p.Quantity),
		strconv.Itoa(p.ThresholdHigh),
		strconv.Itoa(p.ThresholdLow),
		p.LastUpdated.Format(TimestampLayout),
	}
}

// ParseProduct decodes one inventory row.
func ParseProduct(row []string) (Product, error) {
	if len(row) != ProductFields {
		return Product{}, fmt.Errorf("%w: product row has %d fields, want %d", ErrMalformedRecord, len(row), ProductFields)
	}
	qty, err := atoiField(row[2], "quantity", row[0])
	if err != nil {
		return Product{}, err
	}
	high, err := atoiField(row[3], "threshold 1", row[0])
	if err != nil {
		return Product{}, err
	}
	low, err := atoiField(row[4], "threshold 2", row[0])
	if err != nil {
		return Product{}, err
	}
	updated, err := timeField(row[5], "last updated", row[0])
	if err != nil {
		return Product{}, err
	}
	return Product{
		ID:            row[0],
		Name:          row[1],
		Quantity:      qty,
		ThresholdHigh: high,
		ThresholdLow:  low,
		LastUpdated:   updated,
	}, nil
}

// Record encodes the entry as one ledger row:
// [txnId, kind, startQty, deltaAdd, deltaRemove, endQty, unitPrice, totalValue, timestamp].
// The delta slot opposite the kind is left empty.
func (e LedgerEntry) Record() []string {
	add, remove := "", ""
	switch e.Kind {
	case KindBuy:
		add = strconv.Itoa(e.DeltaAdd)
	case KindSell:
		remove = strconv.Itoa(e.DeltaRemove)
	}
	return []string{
		e.TxnID,
		string(e.Kind),
		strconv.Itoa(e.StartQty),
		add,
		remove,
		strconv.Itoa(e.EndQty),
		e.UnitPrice.String(),
		e.TotalValue.String(),
		e.Timestamp.Format(TimestampLayout),
	}
}

// ParseLedgerEntry decodes one ledger row. Exactly one delta slot must be
// populated and it must match the row's kind.
func ParseLedgerEntry(row []string) (LedgerEntry, error) {
	if len(row) != LedgerFields {
		return LedgerEntry{}, fmt.Errorf("%w: ledger row has %d fields, want %d", ErrMalformedRecord, len(row), LedgerFields)
	}
	kind := TxnKind(row[1])
	if !kind.Valid() {
		return LedgerEntry{}, fmt.Errorf("%w: txn %s: unknown kind %q", ErrMalformedRecord, row[0], row[1])
	}
	start, err := atoiField(row[2], "start qty", row[0])
	if err != nil {
		return LedgerEntry{}, err
	}
	var add, remove int
	switch kind {
	case KindBuy:
		if row[3] == "" || row[4] != "" {
			return LedgerEntry{}, fmt.Errorf("%w: txn %s: buy row must populate only the add delta", ErrMalformedRecord, row[0])
		}
		if add, err = atoiField(row[3], "add delta", row[0]); err != nil {
			return LedgerEntry{}, err
		}
	case KindSell:
		if row[4] == "" || row[3] != "" {
			return LedgerEntry{}, fmt.Errorf("%w: txn %s: sell row must populate only the remove delta", ErrMalformedRecord, row[0])
		}
		if remove, err = atoiField(row[4], "remove delta", row[0]); err != nil {
			return LedgerEntry{}, err
		}
	}
	end, err := atoiField(row[5], "end qty", row[0])
	if err != nil {
		return LedgerEntry{}, err
	}
	price, err := decimalField(row[6], "unit price", row[0])
	if err != nil {
		return LedgerEntry{}, err
	}
	total, err := decimalField(row[7], "total value", row[0])
	if err != nil {
		return LedgerEntry{}, err
	}
	ts, err := timeField(row[8], "timestamp", row[0])
	if err != nil {
		return LedgerEntry{}, err
	}
	return LedgerEntry{
		TxnID:       row[0],
		Kind:        kind,
		StartQty:    start,
		DeltaAdd:    add,
		DeltaRemove: remove,
		EndQty:      end,
		UnitPrice:   price,
		TotalValue:  total,
		Timestamp:   ts,
	}, nil
}

func atoiField(raw, field, id string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: bad %s %q", ErrMalformedRecord, id, field, raw)
	}
	return n, nil
}

func decimalField(raw, field, id string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s: bad %s %q", ErrMalformedRecord, id, field, raw)
	}
	return d, nil
}

func timeField(raw, field, id string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: bad %s %q", ErrMalformedRecord, id, field, raw)
	}
	return t, nil
}
