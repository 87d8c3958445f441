package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/networth/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	// Custom messages
	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.loading = false
		m.err = nil
		m.applyPlan(msg)
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		m.selectedScenario = msg.Name
		if m.comparison != nil {
			m.resultsModel.SetResults(m.comparison.Find(msg.Name), m.comparison.BaseScenarioName)
			m.resultsModel.SetTarget(m.targetIndex)
		}
		return m, navigate(SceneResults)

	case tuimsg.TargetSelectedMsg:
		m.setTarget(msg.Index)
		return m, nil

	case tuimsg.ReloadRequestedMsg:
		return m.reload()
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, loadPlanCmd(m.configPath, m.now()))
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error; reload retries
	if m.err != nil {
		if key.Matches(msg, m.keys.Reload) {
			return m.reload()
		}
		m.err = nil
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneHome {
			if m.previousScene != m.currentScene {
				return m, navigate(m.previousScene)
			}
			return m, navigate(SceneHome)
		}
		return m, nil

	case key.Matches(msg, m.keys.Home):
		return m, navigate(SceneHome)

	case key.Matches(msg, m.keys.Compare):
		return m, navigate(SceneCompare)

	case key.Matches(msg, m.keys.Results):
		return m, navigate(SceneResults)

	case key.Matches(msg, m.keys.Contributions):
		return m, navigate(SceneContributions)

	case key.Matches(msg, m.keys.Target):
		next := (m.targetIndex + 1) % 2
		return m, func() tea.Msg {
			return tuimsg.TargetSelectedMsg{Index: next}
		}

	case key.Matches(msg, m.keys.Reload):
		return m, func() tea.Msg {
			return tuimsg.ReloadRequestedMsg{}
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
