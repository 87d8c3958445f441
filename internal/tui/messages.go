package tui

import (
	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneCompare
	SceneResults
	SceneContributions
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneCompare:
		return "Compare"
	case SceneResults:
		return "Results"
	case SceneContributions:
		return "Contributions"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PlanLoadedMsg carries everything computed from the plan file
type PlanLoadedMsg struct {
	Config        *domain.Configuration
	Plan          *domain.PlanInputs
	Comparison    *compare.ComparisonSet
	Contributions *breakeven.MultiTargetResult
}
