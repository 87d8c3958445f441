package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "$0"},
		{decimal.NewFromInt(999), "$999"},
		{decimal.NewFromInt(1000), "$1,000"},
		{decimal.NewFromFloat(1234567.6), "$1,234,568"},
		{decimal.NewFromInt(-25000), "-$25,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in))
	}
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "▲", TrendIndicator(true))
	assert.Equal(t, "▼", TrendIndicator(false))
	assert.Equal(t, ChartColors(0), ChartColors(4))
}
