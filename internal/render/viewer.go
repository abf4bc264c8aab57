package render

import (
	tea "github.com/charmbracelet/bubbletea"
)

// viewerModel shows a rendered plot fullscreen until dismissed, standing in
// for an interactive figure window.
type viewerModel struct {
	frame string
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "enter", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m viewerModel) View() string {
	return m.frame + "\n" + helpStyle.Render("q, esc or enter to close")
}

func runViewer(frame string) error {
	p := tea.NewProgram(viewerModel{frame: frame}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
