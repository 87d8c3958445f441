package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestSet(t *testing.T) *ComparisonSet {
	t.Helper()
	compSet, err := NewCompareEngine(nil).Compare(context.Background(), createTestPlan(), CompareOptions{ConfigPath: "/path/to/plan.yaml"})
	require.NoError(t, err)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(runTestSet(t))

	assert.Contains(t, result, "NET WORTH SCENARIO COMPARISON")
	assert.Contains(t, result, "Base Scenario: Base")
	assert.Contains(t, result, "Configuration: /path/to/plan.yaml")
	assert.Contains(t, result, "Start Date:    2025-01-01")
	assert.Contains(t, result, "Base (base)")
	assert.Contains(t, result, "Aggressive")
	assert.Contains(t, result, "COMPARISON TO BASE")
	assert.Contains(t, result, "months sooner")
	assert.Contains(t, result, "RECOMMENDATIONS")
}

func TestTableFormatter_Format_Empty(t *testing.T) {
	result := (&TableFormatter{}).Format(&ComparisonSet{BaseScenarioName: "Base"})
	assert.Contains(t, result, "No scenarios were run.")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(runTestSet(t))

	assert.True(t, strings.HasPrefix(result, "Base: Base | Aggressive: "))
	assert.Equal(t, 3, strings.Count(result, " | "))
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "1.50M", tf.formatDecimal(d(1500000)))
	assert.Equal(t, "12.3K", tf.formatDecimal(d(12345)))
	assert.Equal(t, "999", tf.formatDecimal(d(999)))
	assert.Equal(t, "+", tf.deltaSymbol(d(1)))
	assert.Equal(t, "-", tf.deltaSymbol(d(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(d(0)))
	assert.Equal(t, "3 months sooner", tf.formatMonthsDiff(-3))
	assert.Equal(t, "2 months later", tf.formatMonthsDiff(2))
	assert.Equal(t, "not reached", tf.formatGoal(&TargetOutcome{}))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(runTestSet(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7, "header plus one row per scenario and target")

	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "Aggressive", rows[1][0])
	assert.Equal(t, "Near", rows[1][2])
	assert.Equal(t, "Far", rows[2][2])
	assert.Equal(t, "base", rows[3][1])
	assert.Equal(t, "true", rows[3][6])
	assert.Equal(t, "0", rows[3][13])
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := runTestSet(t)

	full, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	require.NoError(t, err)
	assert.Contains(t, full, "\n  \"baseScenarioName\": \"Base\"")
	assert.Contains(t, full, "\"net_worth\"")

	summary, err := (&JSONFormatter{Summary: true}).Format(compSet)
	require.NoError(t, err)
	assert.NotContains(t, summary, "\"earning_balance\"")
	assert.Less(t, len(summary), len(full))

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(summary), &decoded))
	require.Len(t, decoded.Results, 3)
	assert.NotNil(t, decoded.Results[0].Near.Result.Hit)

	// Summary output must not strip the caller's records
	assert.Len(t, compSet.Results[0].Near.Result.Records, 36)
}
