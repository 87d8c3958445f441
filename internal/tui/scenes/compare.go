package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/tui/components"
	"github.com/rgehrsitz/networth/internal/tui/tuimsg"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

var (
	compareLeft   = key.NewBinding(key.WithKeys("left", "h"))
	compareRight  = key.NewBinding(key.WithKeys("right", "l"))
	compareSelect = key.NewBinding(key.WithKeys("enter"))
)

// CompareModel shows every scenario side by side for the selected target
type CompareModel struct {
	set         *compare.ComparisonSet
	cursorIndex int
	targetIndex int
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetResults stores the comparison results
func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.set = set
	if set == nil || m.cursorIndex >= len(set.Results) {
		m.cursorIndex = 0
	}
}

// SetTarget selects the near (0) or far (1) target
func (m *CompareModel) SetTarget(index int) {
	m.targetIndex = index
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the highlighted scenario index
func (m *CompareModel) Cursor() int {
	return m.cursorIndex
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if m.set == nil || len(m.set.Results) == 0 {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, compareLeft):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, compareRight):
		if m.cursorIndex < len(m.set.Results)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, compareSelect):
		selected := m.set.Results[m.cursorIndex]
		index := m.cursorIndex
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{Index: index, Name: selected.ScenarioName}
		}
	}
	return m, nil
}

// View renders the comparison
func (m *CompareModel) View() string {
	if m.set == nil || len(m.set.Results) == 0 {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("No scenarios were run"))
	}

	var content strings.Builder
	target := m.set.Results[0].Outcomes()[m.targetIndex].Target
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).
		Render(fmt.Sprintf("Scenario Comparison: %s (%s in %d months)",
			target.Name, tuistyles.FormatCurrency(target.Amount), target.HorizonMonths)))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("←/→ select scenario • enter for details • t switch target"))
	content.WriteString("\n\n")

	cardWidth := 34
	if m.width > 0 {
		cardWidth = max(24, min(40, (m.width-8)/len(m.set.Results)))
	}

	cards := make([]*components.ScenarioCard, len(m.set.Results))
	for i := range m.set.Results {
		res := &m.set.Results[i]
		o := res.Outcomes()[m.targetIndex]

		goal := "not reached"
		if o.Reached {
			goal = fmt.Sprintf("%s (month %d)", o.GoalDate.Format("Jan 2006"), o.MonthsToGoal)
		}
		card := components.NewScenarioCard(res.ScenarioName).
			WithWidth(cardWidth).
			SetBase(res.ScenarioName == m.set.BaseScenarioName).
			SetSelected(i == m.cursorIndex).
			AddHighlight("Return " + res.AnnualReturnRate.Mul(hundred).StringFixed(2) + "%").
			AddHighlight("Goal " + goal).
			AddHighlight("Final " + tuistyles.FormatCurrency(o.FinalNetWorth))
		if !o.Reached {
			card.AddHighlight("Short " + tuistyles.FormatCurrency(o.Shortfall))
		}
		if o.MonthsDiffFromBase != nil && res.ScenarioName != m.set.BaseScenarioName {
			card.AddHighlight(monthsVsBase(*o.MonthsDiffFromBase))
		}
		cards[i] = card
	}
	content.WriteString(components.ScenarioRow(cards))
	content.WriteString("\n\n")

	chart := components.NewASCIIChart("").
		WithSize(max(40, min(m.width-6, 100)), 10).
		WithThreshold(target.Amount.InexactFloat64())
	for i := range m.set.Results {
		o := m.set.Results[i].Outcomes()[m.targetIndex]
		chart.AddSeries(m.set.Results[i].ScenarioName, o.Result.NetWorthSeries(), tuistyles.ChartColors(i))
	}
	content.WriteString(chart.Render())

	if len(m.set.Recommendations) > 0 {
		content.WriteString("\n")
		for _, r := range m.set.Recommendations {
			content.WriteString(tuistyles.MetricLabelStyle.Render("• " + r))
			content.WriteString("\n")
		}
	}

	return strings.TrimRight(content.String(), "\n")
}

func monthsVsBase(diff int) string {
	switch {
	case diff < 0:
		return fmt.Sprintf("%d months sooner than base", -diff)
	case diff > 0:
		return fmt.Sprintf("%d months later than base", diff)
	default:
		return "same month as base"
	}
}
