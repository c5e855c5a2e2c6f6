package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func TestProductIsExactWhereFloatsAreNot(t *testing.T) {
	// 0.1 * 3 must come out as exactly 0.3, not 0.30000000000000004.
	got := Product(dec(t, "3"), dec(t, "0.1"), DefaultStep)
	assert.True(t, got.Equal(dec(t, "0.3")), "got %s", got)
}

func TestProductFloorsTowardZeroAtStep(t *testing.T) {
	cases := []struct {
		name      string
		qty       string
		unitPrice string
		step      string
		want      string
	}{
		{"already representable", "20", "2.50", "0.00000001", "50"},
		{"excess digits dropped", "3", "0.333333333333", "0.00000001", "0.99999999"},
		{"never rounds up", "1", "0.999999999", "0.00000001", "0.99999999"},
		{"coarse step", "3", "1.339", "0.01", "4.01"},
		{"whole step floors to integer", "3", "1.75", "1", "5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Product(dec(t, tc.qty), dec(t, tc.unitPrice), dec(t, tc.step))
			assert.True(t, got.Equal(dec(t, tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestStepPrecision(t *testing.T) {
	assert.Equal(t, int32(8), StepPrecision(DefaultStep))
	assert.Equal(t, int32(2), StepPrecision(dec(t, "0.01")))
	assert.Equal(t, int32(0), StepPrecision(dec(t, "1")))
	assert.Equal(t, int32(0), StepPrecision(dec(t, "1.00")))
}

func TestFloorToStepKeepsNegativesTowardZero(t *testing.T) {
	got := FloorToStep(dec(t, "-1.239"), dec(t, "0.01"))
	assert.True(t, got.Equal(dec(t, "-1.23")), "got %s", got)
}
