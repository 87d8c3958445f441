package calculation

import (
	"testing"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLumpSum(t *testing.T) {
	t.Run("equal split over default months", func(t *testing.T) {
		schedule := SplitLumpSum(d(20000), DefaultLumpSumMonths...)
		require.Len(t, schedule, 2)
		assert.True(t, schedule[3].Equal(d(10000)))
		assert.True(t, schedule[8].Equal(d(10000)))
	})

	t.Run("repeated months accumulate", func(t *testing.T) {
		schedule := SplitLumpSum(d(900), 2, 2, 5)
		require.Len(t, schedule, 2)
		assert.True(t, schedule[2].Equal(d(600)))
		assert.True(t, schedule[5].Equal(d(300)))
	})

	t.Run("zero total yields empty schedule", func(t *testing.T) {
		assert.Empty(t, SplitLumpSum(decimal.Zero, 3, 8))
	})

	t.Run("no months yields empty schedule", func(t *testing.T) {
		assert.Empty(t, SplitLumpSum(d(5000)))
	})
}

func TestTotalLumpSums(t *testing.T) {
	assert.True(t, TotalLumpSums(domain.LumpSumSchedule{3: d(100), 8: d(250)}).Equal(d(350)))
	assert.True(t, TotalLumpSums(nil).IsZero())
}
