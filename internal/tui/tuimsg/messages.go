// Package tuimsg defines the messages scenes send to the root model. It is
// separate from tui so scenes can import it without a cycle.
package tuimsg

// ScenarioSelectedMsg signals a scenario has been chosen for the detail view
type ScenarioSelectedMsg struct {
	Index int
	Name  string
}

// TargetSelectedMsg signals the near (0) or far (1) target has been chosen
type TargetSelectedMsg struct {
	Index int
}

// ReloadRequestedMsg asks the root model to reload the plan file
type ReloadRequestedMsg struct{}
