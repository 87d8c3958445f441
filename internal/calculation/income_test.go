package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(int) decimal.Decimal
		expected []int64
	}{
		{
			name:     "constant",
			fn:       ConstantIncome(d(500)),
			expected: []int64{500, 500, 500, 500},
		},
		{
			name:     "grant ends after duration",
			fn:       GrantIncome(d(3000), 2),
			expected: []int64{3000, 3000, 0, 0},
		},
		{
			name:     "zero length grant",
			fn:       GrantIncome(d(3000), 0),
			expected: []int64{0, 0, 0, 0},
		},
		{
			name:     "work starts at month index",
			fn:       WorkIncome(d(9000), 2),
			expected: []int64{0, 0, 9000, 9000},
		},
		{
			name:     "grant and work combined",
			fn:       CombineIncome(GrantIncome(d(3000), 3), WorkIncome(d(9000), 1)),
			expected: []int64{3000, 12000, 12000, 9000},
		},
		{
			name:     "combine skips nil",
			fn:       CombineIncome(nil, ConstantIncome(d(10)), nil),
			expected: []int64{10, 10, 10, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for m, want := range tt.expected {
				got := tt.fn(m)
				assert.True(t, got.Equal(d(want)), "month %d: expected %d, got %s", m, want, got)
			}
		})
	}
}

func TestGrantIncome_NegativeMonthPaysNothing(t *testing.T) {
	assert.True(t, GrantIncome(d(100), 5)(-1).IsZero())
}

func TestIncomeSchedule(t *testing.T) {
	schedule := IncomeSchedule(GrantIncome(d(1000), 2), 4)
	require.Len(t, schedule, 4)
	assert.True(t, schedule[1].Equal(d(1000)))
	assert.True(t, schedule[2].IsZero())

	assert.Empty(t, IncomeSchedule(ConstantIncome(d(1)), -2))
}
