// Package insights computes read-only analytics over a product's transaction
// history. Every function is pure: it takes decoded ledger entries and
// returns derived numbers without touching storage.
package insights

import (
	"github.com/shopspring/decimal"

	"techmart/internal/models"
)

// TotalBought returns the exact sum of TotalValue over buy entries.
func TotalBought(entries []models.LedgerEntry) decimal.Decimal {
	return sumValues(entries, models.KindBuy)
}

// TotalSold returns the exact sum of TotalValue over sell entries.
func TotalSold(entries []models.LedgerEntry) decimal.Decimal {
	return sumValues(entries, models.KindSell)
}

// TotalRevenue returns sold minus bought. Negative revenue means more money
// has gone into stock than has come out of it.
func TotalRevenue(entries []models.LedgerEntry) decimal.Decimal {
	return TotalSold(entries).Sub(TotalBought(entries))
}

// MinMaxPrice returns the lowest and highest unit price among entries of the
// given kind. With no matching entries both values are zero; that is the
// documented default, not an error.
func MinMaxPrice(entries []models.LedgerEntry, kind models.TxnKind) (min, max decimal.Decimal) {
	first := true
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		if first {
			min, max = e.UnitPrice, e.UnitPrice
			first = false
			continue
		}
		if e.UnitPrice.LessThan(min) {
			min = e.UnitPrice
		}
		if e.UnitPrice.GreaterThan(max) {
			max = e.UnitPrice
		}
	}
	return min, max
}

// AveragePrice returns the mean unit price among entries of the given kind,
// rounded to two decimal places half-even. Zero when nothing matches.
func AveragePrice(entries []models.LedgerEntry, kind models.TxnKind) decimal.Decimal {
	var (
		sum   decimal.Decimal
		count int64
	)
	for _, e := range entries {
		if e.Kind == kind {
			sum = sum.Add(e.UnitPrice)
			count++
		}
	}
	if count == 0 {
		return decimal.Decimal{}
	}
	return sum.Div(decimal.NewFromInt(count)).RoundBank(2)
}

// TransactionCounts returns how many entries there are in total and per kind.
func TransactionCounts(entries []models.LedgerEntry) (total, buys, sells int) {
	for _, e := range entries {
		switch e.Kind {
		case models.KindBuy:
			buys++
		case models.KindSell:
			sells++
		}
	}
	return len(entries), buys, sells
}

// Stats aggregates every analytic for one ledger.
type Stats struct {
	Transactions int
	Buys         int
	Sells        int
	TotalBought  decimal.Decimal
	TotalSold    decimal.Decimal
	Revenue      decimal.Decimal
	MinBuyPrice  decimal.Decimal
	MaxBuyPrice  decimal.Decimal
	AvgBuyPrice  decimal.Decimal
	MinSellPrice decimal.Decimal
	MaxSellPrice decimal.Decimal
	AvgSellPrice decimal.Decimal
}

// Summarize computes the full set of analytics for one product's history.
func Summarize(entries []models.LedgerEntry) Stats {
	var s Stats
	s.Transactions, s.Buys, s.Sells = TransactionCounts(entries)
	s.TotalBought = TotalBought(entries)
	s.TotalSold = TotalSold(entries)
	s.Revenue = s.TotalSold.Sub(s.TotalBought)
	s.MinBuyPrice, s.MaxBuyPrice = MinMaxPrice(entries, models.KindBuy)
	s.AvgBuyPrice = AveragePrice(entries, models.KindBuy)
	s.MinSellPrice, s.MaxSellPrice = MinMaxPrice(entries, models.KindSell)
	s.AvgSellPrice = AveragePrice(entries, models.KindSell)
	return s
}

func sumValues(entries []models.LedgerEntry, kind models.TxnKind) decimal.Decimal {
	var sum decimal.Decimal
	for _, e := range entries {
		if e.Kind == kind {
			sum = sum.Add(e.TotalValue)
		}
	}
	return sum
}
