package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/tui/scenes"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath    string
	config        *domain.Configuration
	plan          *domain.PlanInputs
	comparison    *compare.ComparisonSet
	contributions *breakeven.MultiTargetResult

	// Current selections
	selectedScenario string
	targetIndex      int

	// Scene models
	homeModel          *scenes.HomeModel
	compareModel       *scenes.CompareModel
	resultsModel       *scenes.ResultsModel
	contributionsModel *scenes.ContributionsModel

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Error state
	err error

	// Loading state
	loading bool

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(configPath string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuistyles.InfoStyle

	return Model{
		currentScene:       SceneHome,
		configPath:         configPath,
		homeModel:          scenes.NewHomeModel(),
		compareModel:       scenes.NewCompareModel(),
		resultsModel:       scenes.NewResultsModel(),
		contributionsModel: scenes.NewContributionsModel(),
		keys:               defaultKeyMap(),
		help:               help.New(),
		spinner:            sp,
		loading:            true,
		width:              80,
		height:             24,
		now:                time.Now,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadPlanCmd(m.configPath, m.now()),
	)
}

// loadPlanCmd returns a command that loads the plan file and runs every projection
func loadPlanCmd(path string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		plan := config.DerivePlan(cfg, now)
		ctx := context.Background()

		set, err := compare.NewCompareEngine(nil).Compare(ctx, plan, compare.CompareOptions{ConfigPath: path})
		if err != nil {
			return ErrorMsg{Err: err}
		}

		contributions, err := breakeven.NewDefaultSolver().SolveTargets(ctx, plan)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return PlanLoadedMsg{
			Config:        cfg,
			Plan:          plan,
			Comparison:    set,
			Contributions: contributions,
		}
	}
}

// applyPlan distributes freshly loaded results to every scene
func (m *Model) applyPlan(msg PlanLoadedMsg) {
	m.config = msg.Config
	m.plan = msg.Plan
	m.comparison = msg.Comparison
	m.contributions = msg.Contributions

	var assumptions []string
	if msg.Config != nil {
		assumptions = msg.Config.GenerateAssumptions()
	}
	m.homeModel.SetPlan(msg.Plan, m.configPath, assumptions)
	m.compareModel.SetResults(msg.Comparison)
	m.contributionsModel.SetResults(msg.Contributions)

	if msg.Comparison != nil {
		if m.selectedScenario == "" || msg.Comparison.Find(m.selectedScenario) == nil {
			m.selectedScenario = msg.Comparison.BaseScenarioName
		}
		m.resultsModel.SetResults(msg.Comparison.Find(m.selectedScenario), msg.Comparison.BaseScenarioName)
	}
	m.setTarget(m.targetIndex)
	m.resize()
}

func (m *Model) setTarget(index int) {
	m.targetIndex = index
	m.compareModel.SetTarget(index)
	m.resultsModel.SetTarget(index)
}

func (m *Model) resize() {
	contentHeight := max(0, m.height-4)
	m.homeModel.SetSize(m.width, contentHeight)
	m.compareModel.SetSize(m.width, contentHeight)
	m.resultsModel.SetSize(m.width, contentHeight)
	m.contributionsModel.SetSize(m.width, contentHeight)
	m.help.Width = m.width
}
