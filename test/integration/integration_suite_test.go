package integration

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Data_Consistency", TestDataConsistency)
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	path := writeExamplePlan(t, "plan.yaml")

	t.Run("calculation_consistency", func(t *testing.T) {
		first := runPlan(t, path)
		second := runPlan(t, path)

		require.Len(t, second.Results, len(first.Results))
		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		for i := range first.Results {
			a, b := first.Results[i], second.Results[i]
			assert.Equal(t, a.ScenarioName, b.ScenarioName)
			for j, o := range a.Outcomes() {
				other := b.Outcomes()[j]
				assert.Equal(t, o.Reached, other.Reached)
				assert.Equal(t, o.MonthsToGoal, other.MonthsToGoal)
				assert.True(t, o.FinalNetWorth.Equal(other.FinalNetWorth), "%s final net worth differs", a.ScenarioName)
			}
		}
	})

	t.Run("formats_agree", func(t *testing.T) {
		yamlSet := runPlan(t, path)
		tomlSet := runPlan(t, writeExamplePlan(t, "plan.toml"))

		require.Len(t, tomlSet.Results, len(yamlSet.Results))
		for i := range yamlSet.Results {
			assert.True(t, yamlSet.Results[i].Far.FinalNetWorth.Equal(tomlSet.Results[i].Far.FinalNetWorth))
		}
	})

	t.Run("output_format_consistency", func(t *testing.T) {
		report := output.NewReport(runPlan(t, path), solvePlan(t, path), nil)

		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
				var buf bytes.Buffer
				err := output.GenerateReport(&buf, report, format)
				assert.NoError(t, err, "Should generate %s output", format)
				assert.NotZero(t, buf.Len(), "%s output should not be empty", format)
			})
		}
	})
}

// TestIntegrationBenchmarks runs performance benchmarks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	path := writeExamplePlan(t, "plan.yaml")

	start := time.Now()
	set := runPlan(t, path)
	duration := time.Since(start)

	assert.Less(t, duration, 30*time.Second, "Comparison should complete within 30 seconds")
	t.Logf("Comparison completed in %v", duration)
	t.Logf("Processed %d engine runs", set.RunCount())
}

// writeExamplePlan saves the example configuration to a temporary file
func writeExamplePlan(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	parser := config.NewInputParser()
	require.NoError(t, parser.SaveToFile(parser.CreateExampleConfiguration(), path))
	return path
}

func loadPlan(t *testing.T, path string) *domain.PlanInputs {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err, "Should load configuration successfully")
	return config.DerivePlan(cfg, testNow)
}

func runPlan(t *testing.T, path string) *compare.ComparisonSet {
	t.Helper()
	set, err := compare.NewCompareEngine(nil).Compare(context.Background(), loadPlan(t, path), compare.CompareOptions{ConfigPath: path})
	require.NoError(t, err, "Should run scenarios successfully")
	return set
}

func solvePlan(t *testing.T, path string) *breakeven.MultiTargetResult {
	t.Helper()
	result, err := breakeven.NewDefaultSolver().SolveTargets(context.Background(), loadPlan(t, path))
	require.NoError(t, err)
	return result
}
