package config

import (
	"testing"
	"time"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePlan(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()
	config.StartDate = time.Date(2025, 3, 15, 10, 30, 0, 0, time.FixedZone("EST", -5*3600))

	plan := DerivePlan(config, time.Now())

	// 40000 + 25000 + 15000 + (30000 - 10000)
	assert.True(t, plan.Start.Earning.Equal(decimal.NewFromInt(100000)), plan.Start.Earning.String())
	assert.True(t, plan.Start.Cash.Equal(decimal.NewFromInt(10000)))
	assert.True(t, plan.Start.Debt.Equal(decimal.NewFromInt(15000)))
	assert.True(t, plan.MonthlyExpenses.Equal(decimal.NewFromInt(4000)))
	assert.True(t, plan.InvestBuffer.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), plan.StartDate)

	require.Len(t, plan.LumpSums, 2)
	assert.True(t, plan.LumpSums[3].Equal(decimal.NewFromInt(10000)))
	assert.True(t, plan.LumpSums[8].Equal(decimal.NewFromInt(10000)))

	assert.Equal(t, "Quarter Million", plan.NearTarget.Name)
	assert.Equal(t, 60, plan.NearTarget.HorizonMonths)
	assert.Equal(t, 240, plan.FarTarget.HorizonMonths)
	assert.Equal(t, 6, plan.Income.WorkStartMonth)
}

func TestDerivePlan_CashBelowBuffer(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()
	config.StartingBalances.CashTotal = decimal.NewFromInt(4000)
	config.StartingBalances.CashBuffer = decimal.NewFromInt(10000)

	plan := DerivePlan(config, time.Now())

	// No negative surplus leaks into earning; all cash stays liquid
	assert.True(t, plan.Start.Earning.Equal(decimal.NewFromInt(80000)))
	assert.True(t, plan.Start.Cash.Equal(decimal.NewFromInt(4000)))
}

func TestDerivePlan_Defaults(t *testing.T) {
	config := &domain.Configuration{
		Income: domain.IncomeConfig{LumpSumTotal: decimal.NewFromInt(9000)},
		Targets: domain.Targets{
			Near: domain.TargetConfig{Amount: decimal.NewFromInt(1), HorizonMonths: 1},
			Far:  domain.TargetConfig{Amount: decimal.NewFromInt(2), HorizonMonths: 2},
		},
	}
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	plan := DerivePlan(config, now)

	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), plan.StartDate)
	assert.Equal(t, "Near", plan.NearTarget.Name)
	assert.Equal(t, "Far", plan.FarTarget.Name)
	assert.True(t, plan.LumpSums[3].Equal(decimal.NewFromInt(4500)))
	assert.True(t, plan.LumpSums[8].Equal(decimal.NewFromInt(4500)))
	assert.True(t, plan.Start.Cash.IsZero())
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)
}
