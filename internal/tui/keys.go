package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home          key.Binding
	Compare       key.Binding
	Results       key.Binding
	Contributions key.Binding
	Target        key.Binding
	Reload        key.Binding
	Back          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home:          key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Compare:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "compare")),
		Results:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "results")),
		Contributions: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "contributions")),
		Target:        key.NewBinding(key.WithKeys("t", "tab"), key.WithHelp("t", "near/far")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Compare, k.Results, k.Contributions, k.Target, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Compare, k.Results, k.Contributions},
		{k.Target, k.Reload, k.Back},
		{k.Help, k.Quit},
	}
}
