// Package money performs precision-safe price arithmetic. All amounts are
// decimals and every product of two amounts is floored toward zero onto a
// configurable step so stored values never carry more precision than the
// engine tracks.
package money

import "github.com/shopspring/decimal"

// DefaultStep is the finest amount the engine distinguishes by default,
// one unit in the eighth decimal place.
var DefaultStep = decimal.New(1, -8)

// StepPrecision reports how many fractional digits a step keeps. A step of
// 0.01 keeps two digits; any whole-number step keeps none.
func StepPrecision(step decimal.Decimal) int32 {
	if step.IsInteger() {
		return 0
	}
	return -step.Exponent()
}

// FloorToStep truncates v toward zero onto the step's precision. It never
// rounds up, so a computed value is always representable at the step and a
// reported total never exceeds the exact product it came from.
func FloorToStep(v, step decimal.Decimal) decimal.Decimal {
	return v.RoundDown(StepPrecision(step))
}

// Product multiplies quantity by unit price exactly, then floors the result
// onto the step. Both operands are taken as decimals, so binary float error
// never enters the calculation.
func Product(qty, unitPrice, step decimal.Decimal) decimal.Decimal {
	return FloorToStep(qty.Mul(unitPrice), step)
}
