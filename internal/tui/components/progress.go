package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// GoalProgress shows how far a net worth is toward a target
type GoalProgress struct {
	Label    string
	Current  decimal.Decimal
	Target   decimal.Decimal
	Width    int
	Finished bool // the goal latch fired
}

// NewGoalProgress creates a new progress bar toward target
func NewGoalProgress(label string, current, target decimal.Decimal) *GoalProgress {
	return &GoalProgress{Label: label, Current: current, Target: target, Width: 30}
}

// WithWidth sets the bar width
func (p *GoalProgress) WithWidth(width int) *GoalProgress {
	p.Width = max(width, 1)
	return p
}

// MarkReached flags the goal as hit even if the current value has dipped since
func (p *GoalProgress) MarkReached(reached bool) *GoalProgress {
	p.Finished = reached
	return p
}

// Fraction returns progress clamped to [0, 1]
func (p *GoalProgress) Fraction() float64 {
	if p.Finished {
		return 1
	}
	if !p.Target.IsPositive() {
		return 0
	}
	f := p.Current.Div(p.Target).InexactFloat64()
	return min(max(f, 0), 1)
}

// Render returns the styled progress bar
func (p *GoalProgress) Render() string {
	fraction := p.Fraction()
	filled := int(float64(p.Width) * fraction)
	empty := p.Width - filled

	barColor := tuistyles.ColorInfo
	if p.Finished {
		barColor = tuistyles.ColorSuccess
	}

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Render(p.Label))
		b.WriteString("\n")
	}
	b.WriteString("[")
	b.WriteString(lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", empty)))
	b.WriteString("] ")
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(fmt.Sprintf("%.1f%%", fraction*100)))
	b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf(" of %s", tuistyles.FormatCurrency(p.Target))))

	return b.String()
}
