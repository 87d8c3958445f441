package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/tui/components"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

// ContributionsModel shows the required monthly contribution for each target
type ContributionsModel struct {
	result *breakeven.MultiTargetResult
	width  int
	height int
}

// NewContributionsModel creates a new contributions scene model
func NewContributionsModel() *ContributionsModel {
	return &ContributionsModel{}
}

// SetResults stores the solver output
func (m *ContributionsModel) SetResults(result *breakeven.MultiTargetResult) {
	m.result = result
}

// SetSize updates the model dimensions
func (m *ContributionsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders one card per target followed by the recommendations
func (m *ContributionsModel) View() string {
	if m.result == nil || len(m.result.Results) == 0 {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("No contribution results"))
	}

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Required Monthly Contributions"))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("Closed-form amount to invest each month, starting balances grown at the base return"))
	content.WriteString("\n\n")

	cards := make([]*components.MetricCard, 0, len(m.result.Results))
	for i := range m.result.Results {
		res := &m.result.Results[i]
		card := components.NewMetricCard(
			fmt.Sprintf("%s: %s in %d mo", res.Name, tuistyles.FormatCurrency(res.Params.Target), res.Params.HorizonMonths),
			tuistyles.FormatCurrency(res.Display)+"/mo",
		)
		if res.OnTrack {
			card.WithTrend(true, "on track, surplus "+tuistyles.FormatCurrency(res.Required.Neg())+"/mo")
		} else {
			card.WithTrend(false, "gap "+tuistyles.FormatCurrency(res.Gap))
		}
		card.WithDescription(fmt.Sprintf("grown balance %s • annuity factor %s",
			tuistyles.FormatCurrency(res.FutureValue), res.AnnuityFactor.StringFixed(2)))
		if m.width > 0 {
			card.WithWidth(max(30, (m.width-8)/2))
		}
		cards = append(cards, card)
	}
	content.WriteString(components.MetricGrid(cards, 2))
	content.WriteString("\n\n")

	if len(m.result.Recommendations) > 0 {
		content.WriteString(tuistyles.TableHeaderStyle.Render("Recommendations"))
		content.WriteString("\n")
		for _, rec := range m.result.Recommendations {
			content.WriteString(tuistyles.MetricLabelStyle.Render("• " + rec))
			content.WriteString("\n")
		}
	}

	return strings.TrimRight(content.String(), "\n")
}
