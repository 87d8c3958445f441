package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneContributions:
		content = m.contributionsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Title (2) + status (1) + padding (1)
	contentHeight := max(0, m.height-4)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("Net Worth Projection")

	breadcrumb := m.currentScene.String()
	if m.plan != nil {
		target := m.plan.Targets()[m.targetIndex]
		breadcrumb = fmt.Sprintf("%s / %s target", breadcrumb, target.Name)
		if m.currentScene == SceneResults && m.selectedScenario != "" {
			breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedScenario)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tuistyles.SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	statusText := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.comparison != nil && m.comparison.Fingerprint != "" {
		fp := tuistyles.SubtitleStyle.Render(m.comparison.Fingerprint)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(fp) - 2
		statusText = statusText + strings.Repeat(" ", max(1, width)) + fp
	}

	return tuistyles.StatusBarStyle.Width(m.width).Render(statusText)
}

// renderLoading renders the spinner while the plan is projected
func (m Model) renderLoading() string {
	return tuistyles.BorderStyle.Render(
		fmt.Sprintf("%s Projecting %s...", m.spinner.View(), m.configPath),
	)
}

// renderError renders an error message
func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress r to reload, q to quit, any other key to continue...", m.err),
	)
}

// renderHelp renders the full key reference
func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(full.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("Compare: ←/→ select a scenario, enter for monthly detail"))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("Results: ↑/↓ scroll months, g jumps to the goal month"))
	return tuistyles.BorderStyle.Render(b.String())
}
