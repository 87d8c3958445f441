package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/tui/components"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

var hundred = decimal.NewFromInt(100)

var (
	resultsUp       = key.NewBinding(key.WithKeys("up", "k"))
	resultsDown     = key.NewBinding(key.WithKeys("down", "j"))
	resultsPageUp   = key.NewBinding(key.WithKeys("pgup", "b"))
	resultsPageDown = key.NewBinding(key.WithKeys("pgdown", "f", " "))
	resultsGoal     = key.NewBinding(key.WithKeys("g"))
)

// defaultTableRows is the monthly table height when the terminal size is unknown
const defaultTableRows = 12

// ResultsModel shows the monthly series of one scenario against one target
type ResultsModel struct {
	result      *compare.ComparisonResult
	baseName    string
	targetIndex int
	offset      int // first visible table row
	width       int
	height      int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults updates the scenario to display and resets scrolling
func (m *ResultsModel) SetResults(result *compare.ComparisonResult, baseName string) {
	m.result = result
	m.baseName = baseName
	m.offset = 0
}

// SetTarget selects the near (0) or far (1) target and resets scrolling
func (m *ResultsModel) SetTarget(index int) {
	if index != m.targetIndex {
		m.offset = 0
	}
	m.targetIndex = index
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Offset returns the first visible month row
func (m *ResultsModel) Offset() int {
	return m.offset
}

func (m *ResultsModel) outcome() *compare.TargetOutcome {
	if m.result == nil {
		return nil
	}
	return m.result.Outcomes()[m.targetIndex]
}

func (m *ResultsModel) records() []domain.MonthlyRecord {
	o := m.outcome()
	if o == nil || o.Result == nil {
		return nil
	}
	return o.Result.Records
}

func (m *ResultsModel) tableRows() int {
	if m.height <= 0 {
		return defaultTableRows
	}
	return max(5, m.height-30)
}

// Update handles scrolling of the monthly table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows := m.tableRows()
	switch {
	case key.Matches(keyMsg, resultsUp):
		m.scrollTo(m.offset - 1)
	case key.Matches(keyMsg, resultsDown):
		m.scrollTo(m.offset + 1)
	case key.Matches(keyMsg, resultsPageUp):
		m.scrollTo(m.offset - rows)
	case key.Matches(keyMsg, resultsPageDown):
		m.scrollTo(m.offset + rows)
	case key.Matches(keyMsg, resultsGoal):
		if o := m.outcome(); o != nil && o.Reached {
			m.scrollTo(o.MonthsToGoal - 1 - rows/2)
		}
	}
	return m, nil
}

func (m *ResultsModel) scrollTo(offset int) {
	limit := max(0, len(m.records())-m.tableRows())
	m.offset = min(max(offset, 0), limit)
}

// View renders the results scene
func (m *ResultsModel) View() string {
	o := m.outcome()
	if o == nil {
		return tuistyles.BorderStyle.Render("No results to display.\n\nSelect a scenario on the Compare screen.")
	}

	title := m.result.ScenarioName
	if m.result.ScenarioName == m.baseName {
		title += " (base)"
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(title),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s target: %s within %d months",
			o.Target.Name, tuistyles.FormatCurrency(o.Target.Amount), o.Target.HorizonMonths)),
	)

	chart := components.NewASCIIChart("").
		AddSeries("Net worth", o.Result.NetWorthSeries(), tuistyles.ColorChartLine1).
		WithSize(max(40, min(m.width-6, 100)), 8).
		WithThreshold(o.Target.Amount.InexactFloat64())

	progress := components.NewGoalProgress("Progress", o.FinalNetWorth, o.Target.Amount).
		WithWidth(30).
		MarkReached(o.Reached)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderMetrics(o),
		"",
		progress.Render(),
		"",
		chart.Render(),
		m.renderTable(o),
		tuistyles.SubtitleStyle.Render("↑/↓ scroll • pgup/pgdn page • g jump to goal • t switch target • esc back"),
	)
}

func (m *ResultsModel) renderMetrics(o *compare.TargetOutcome) string {
	goal := components.NewMetricCard("Goal reached", "not reached")
	if o.Reached {
		goal.Value = o.GoalDate.Format("Jan 2006")
		goal.WithDescription(fmt.Sprintf("month %d", o.MonthsToGoal))
	} else {
		goal.WithDescription("short " + tuistyles.FormatCurrency(o.Shortfall))
	}
	if o.MonthsDiffFromBase != nil && m.result.ScenarioName != m.baseName {
		diff := *o.MonthsDiffFromBase
		goal.WithTrend(diff <= 0, monthsVsBase(diff))
	}

	final := components.NewMetricCard("Final net worth", tuistyles.FormatCurrency(o.FinalNetWorth)).
		WithDescription(fmt.Sprintf("after %d months", len(m.records())))
	if m.result.ScenarioName != m.baseName {
		final.WithTrend(!o.NetWorthDiffFromBase.IsNegative(),
			fmt.Sprintf("%s (%s%%)", tuistyles.FormatCurrency(o.NetWorthDiffFromBase), o.NetWorthPctFromBase.StringFixed(1)))
	}

	rate := components.NewMetricCard("Annual return", m.result.AnnualReturnRate.Mul(hundred).StringFixed(2)+"%")
	if m.result.Config != nil {
		inc := m.result.Config.Income
		rate.WithDescription(fmt.Sprintf("work %s from month %d", tuistyles.FormatCurrency(inc.WorkMonthly), inc.WorkStartMonth))
	}

	return components.MetricGrid([]*components.MetricCard{goal, final, rate}, 3)
}

func (m *ResultsModel) renderTable(o *compare.TargetOutcome) string {
	records := m.records()
	if len(records) == 0 {
		return tuistyles.InfoStyle.Render("No months simulated")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%6s  %-8s  %14s  %14s  %12s", "Month", "Date", "Net Worth", "Invested", "Cash")))
	b.WriteString("\n")

	end := min(len(records), m.offset+m.tableRows())
	for _, rec := range records[m.offset:end] {
		line := fmt.Sprintf("%6d  %-8s  %14s  %14s  %12s",
			rec.Month,
			rec.Date.Format("Jan 06"),
			tuistyles.FormatCurrency(rec.NetWorth),
			tuistyles.FormatCurrency(rec.EarningBalance),
			tuistyles.FormatCurrency(rec.CashBalance))
		style := tuistyles.TableCellStyle
		if o.Reached && rec.Month == o.MonthsToGoal {
			style = tuistyles.TableHighlightStyle
			line += "  ← goal"
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("months %d-%d of %d", m.offset+1, end, len(records))))
	b.WriteString("\n")
	return b.String()
}
