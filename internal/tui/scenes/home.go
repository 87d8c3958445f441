package scenes

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

// HomeModel represents the plan overview scene
type HomeModel struct {
	plan        *domain.PlanInputs
	configPath  string
	assumptions []string
	width       int
	height      int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetPlan updates the plan shown on the dashboard
func (m *HomeModel) SetPlan(plan *domain.PlanInputs, configPath string, assumptions []string) {
	m.plan = plan
	m.configPath = configPath
	m.assumptions = assumptions
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is passive - navigation handled by parent
	return m, nil
}

// View renders the plan overview
func (m *HomeModel) View() string {
	if m.plan == nil {
		return tuistyles.BorderStyle.Render("Loading plan...")
	}

	var content strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)
	labelStyle := tuistyles.MetricLabelStyle
	valueStyle := tuistyles.MetricValueStyle

	row := func(label, value string) {
		content.WriteString(labelStyle.Render(fmt.Sprintf("  %-22s", label)))
		content.WriteString(valueStyle.Render(value))
		content.WriteString("\n")
	}

	content.WriteString(titleStyle.Render("Net Worth Plan"))
	content.WriteString("\n")
	if m.configPath != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(m.configPath))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	p := m.plan
	content.WriteString(sectionStyle.Render("Starting Position"))
	content.WriteString("\n")
	row("Start month", p.StartDate.Format("January 2006"))
	row("Invested", tuistyles.FormatCurrency(p.Start.Earning))
	row("Cash", tuistyles.FormatCurrency(p.Start.Cash))
	row("Debt", tuistyles.FormatCurrency(p.Start.Debt))
	row("Net worth", tuistyles.FormatCurrency(p.Start.NetWorth()))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Cash Flow"))
	content.WriteString("\n")
	row("Grant", fmt.Sprintf("%s x %d months", tuistyles.FormatCurrency(p.Income.GrantMonthly), p.Income.GrantMonths))
	row("Work", fmt.Sprintf("%s from month %d", tuistyles.FormatCurrency(p.Income.WorkMonthly), p.Income.WorkStartMonth))
	row("Monthly expenses", tuistyles.FormatCurrency(p.MonthlyExpenses))
	row("Cash buffer", tuistyles.FormatCurrency(p.InvestBuffer))
	row("Lump sums", formatLumpSums(p.LumpSums))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Targets"))
	content.WriteString("\n")
	for _, t := range p.Targets() {
		row(t.Name, fmt.Sprintf("%s within %d months", tuistyles.FormatCurrency(t.Amount), t.HorizonMonths))
	}

	if len(m.assumptions) > 0 {
		content.WriteString("\n")
		content.WriteString(sectionStyle.Render("Assumptions"))
		content.WriteString("\n")
		for _, a := range m.assumptions {
			content.WriteString(labelStyle.Render("  • " + a))
			content.WriteString("\n")
		}
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func formatLumpSums(schedule domain.LumpSumSchedule) string {
	if len(schedule) == 0 {
		return "none"
	}
	months := slices.Sorted(maps.Keys(schedule))
	parts := make([]string, len(months))
	for i, month := range months {
		parts[i] = fmt.Sprintf("%s at month %d", tuistyles.FormatCurrency(schedule[month]), month)
	}
	return strings.Join(parts, ", ")
}
